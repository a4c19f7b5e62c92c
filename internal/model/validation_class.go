package model

// ValidationClass is the outcome of classifying raw operator input. Lookups
// fire as-you-type, so callers must check Resolvable before resolving.
type ValidationClass int

const (
	// ClassEmpty is the empty string.
	ClassEmpty ValidationClass = iota
	// ClassTooShort is input too short to classify further.
	ClassTooShort
	// ClassPartialFormat is input the operator is still typing.
	ClassPartialFormat
	// ClassCompleteCanonical is the canonical "AA-BB" form.
	ClassCompleteCanonical
	// ClassCompleteCompact is four bare digits, e.g. "5801".
	ClassCompleteCompact
	// ClassCompleteFull is the verbose building-prefixed form, e.g. "3-58-01-1".
	ClassCompleteFull
	// ClassPartialFull is the verbose form missing its trailing segment.
	ClassPartialFull
	// ClassInvalidCharacters is input containing characters other than digits and dashes.
	ClassInvalidCharacters
	// ClassInvalidFormat is digit/dash input in no recognized shape.
	ClassInvalidFormat
)

// Resolvable reports whether input of this class is complete enough to
// trigger a store lookup.
func (c ValidationClass) Resolvable() bool {
	switch c {
	case ClassCompleteCanonical, ClassCompleteCompact, ClassCompleteFull:
		return true
	default:
		return false
	}
}

// String returns a short human-readable name for the class.
func (c ValidationClass) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassTooShort:
		return "too short"
	case ClassPartialFormat:
		return "partial"
	case ClassCompleteCanonical:
		return "canonical"
	case ClassCompleteCompact:
		return "compact"
	case ClassCompleteFull:
		return "full"
	case ClassPartialFull:
		return "partial full"
	case ClassInvalidCharacters:
		return "invalid characters"
	case ClassInvalidFormat:
		return "invalid format"
	default:
		return "unknown"
	}
}
