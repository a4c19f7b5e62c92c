// Package station interprets the shorthand codes operators type for pick and
// drop locations. It is pure string logic: no I/O, no state, never errors.
//
// Operators type the same station three ways: four bare digits ("5801"),
// the canonical aisle-position pair ("58-01"), or the verbose form the
// legacy terminal prints ("3-58-01-1" / "03-58-01-01"). All of them
// normalize to the canonical "AA-BB" key; the building travels separately.
package station

import (
	"regexp"
	"strings"

	"github.com/morrisraybrooks/PalletManager/internal/model"
)

var (
	reCanonical   = regexp.MustCompile(`^\d{2}-\d{2}$`)
	reCompact     = regexp.MustCompile(`^\d{4}$`)
	reFull        = regexp.MustCompile(`^\d{1,2}-\d{2}-\d{2}-\d{1,2}$`)
	rePartialFull = regexp.MustCompile(`^\d{1,2}-\d{2}-\d{2}$`)
	rePartial     = regexp.MustCompile(`^(\d{2}-\d|\d{1,2}-|\d{3})$`)
	reClean       = regexp.MustCompile(`[^0-9-]`)
)

// Classify reports how complete the raw input is. It is total: any string
// maps to exactly one class. Longer fully-qualified shapes are checked
// before shorter partial ones so a complete verbose code is never
// misclassified as partial.
func Classify(raw string) model.ValidationClass {
	switch {
	case raw == "":
		return model.ClassEmpty
	case reCanonical.MatchString(raw):
		return model.ClassCompleteCanonical
	case reCompact.MatchString(raw):
		return model.ClassCompleteCompact
	case reFull.MatchString(raw):
		return model.ClassCompleteFull
	case rePartialFull.MatchString(raw):
		return model.ClassPartialFull
	case len(raw) < 3:
		return model.ClassTooShort
	case rePartial.MatchString(raw):
		return model.ClassPartialFormat
	case reClean.MatchString(raw):
		return model.ClassInvalidCharacters
	default:
		return model.ClassInvalidFormat
	}
}

// Normalize converts any recognized shorthand into the canonical StationKey.
// Unrecognized input passes through cleaned but unchanged; such a key simply
// won't resolve, which the caller surfaces as "not found". Idempotent on its
// own output.
func Normalize(raw string) model.StationKey {
	cleaned := strings.TrimSpace(reClean.ReplaceAllString(raw, ""))

	switch {
	case reCanonical.MatchString(cleaned):
		return model.StationKey{Aisle: cleaned[0:2], Position: cleaned[3:5]}
	case reCompact.MatchString(cleaned):
		return model.StationKey{Aisle: cleaned[0:2], Position: cleaned[2:4]}
	case reFull.MatchString(cleaned), rePartialFull.MatchString(cleaned):
		// Verbose form: the middle two groups are aisle and position; the
		// building prefix and trailing suffix are context, not identity.
		parts := strings.Split(cleaned, "-")
		return model.StationKey{Aisle: parts[1], Position: parts[2]}
	default:
		// Not a recognized shape. Preserve the cleaned text so the caller
		// can still show what was attempted.
		return model.StationKey{Aisle: cleaned}
	}
}

// Suggest returns up to three example completions for partial input.
// Advisory only; no exhaustiveness contract.
func Suggest(raw string) []string {
	cleaned := strings.TrimSpace(reClean.ReplaceAllString(raw, ""))
	digits := strings.ReplaceAll(cleaned, "-", "")

	switch Classify(cleaned) {
	case model.ClassEmpty, model.ClassTooShort:
		return []string{"58-01", "5801", "3-58-01-1"}
	case model.ClassPartialFormat:
		switch {
		case len(digits) == 3 && !strings.Contains(cleaned, "-"):
			// "580" could grow into compact "5801" or canonical "58-01".
			return []string{digits + "1", digits[:2] + "-" + digits[2:] + "1"}
		case strings.HasSuffix(cleaned, "-"):
			return []string{cleaned + "01", cleaned + "15"}
		default:
			return []string{cleaned + "1", cleaned + "5"}
		}
	case model.ClassPartialFull:
		return []string{cleaned + "-1", cleaned + "-01"}
	default:
		return nil
	}
}
