package tui

import (
	"github.com/morrisraybrooks/PalletManager/internal/lookup"
	"github.com/morrisraybrooks/PalletManager/internal/model"
)

// lookupResultMsg carries a completed station resolution. The embedded
// result echoes the query that triggered it; Update drops it when the
// operator has typed past that query.
type lookupResultMsg struct {
	result lookup.Result
}

// mostUsedLoadedMsg carries the quick-access ranking for a building.
type mostUsedLoadedMsg struct {
	err      error
	records  []model.StationRecord
	building int
}

// usageRecordedMsg reports the outcome of a usage increment.
type usageRecordedMsg struct {
	err error
}
