package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morrisraybrooks/PalletManager/internal/lookup"
	"github.com/morrisraybrooks/PalletManager/internal/model"
	"github.com/morrisraybrooks/PalletManager/internal/station"
	"github.com/morrisraybrooks/PalletManager/internal/testutil"
)

func newTestModel(t *testing.T) (Model, *testutil.MockStorage) {
	t.Helper()
	store := testutil.NewMockStorage()
	require.NoError(t, store.UpsertStation(context.Background(), &model.StationRecord{
		BuildingID: 3,
		Key:        station.Normalize("58-01"),
		CheckDigit: "42",
	}))
	return newModel(Config{Storage: store, Building: 3}), store
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestUpdate_AppliesResultForCurrentInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeString(m, "58-01")

	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   3,
		CheckDigit: "42",
		Key:        station.Normalize("58-01"),
	}})
	m = updated.(Model)

	require.NotNil(t, m.result)
	assert.Equal(t, "42", m.result.CheckDigit)
}

func TestUpdate_DiscardsStaleResult(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeString(m, "58-01")

	// Apply the current answer, then let a result for older input arrive
	// late. The displayed answer must not regress.
	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   3,
		CheckDigit: "42",
	}})
	m = updated.(Model)

	updated, _ = m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-0",
		Building:   3,
		CheckDigit: "99",
	}})
	m = updated.(Model)

	require.NotNil(t, m.result)
	assert.Equal(t, "42", m.result.CheckDigit, "stale result must never overwrite the current one")
}

func TestUpdate_DiscardsResultForOtherBuilding(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeString(m, "58-01")

	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   4,
		CheckDigit: "99",
	}})
	m = updated.(Model)

	assert.Nil(t, m.result)
}

func TestUpdate_ClearingInputDropsResult(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeString(m, "58-01")

	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   3,
		CheckDigit: "42",
	}})
	m = updated.(Model)
	require.NotNil(t, m.result)

	for i := 0; i < 5; i++ {
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		m = updated.(Model)
	}

	assert.Empty(t, m.input.Value())
	assert.Nil(t, m.result)
}

func TestUpdate_TabSwitchesBuildingAndDropsContext(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeString(m, "58-01")

	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   3,
		CheckDigit: "42",
	}})
	m = updated.(Model)
	m.mostUsed = []model.StationRecord{{BuildingID: 3}}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	assert.Equal(t, 4, m.building, "tab cycles 3 -> 4")
	assert.Nil(t, m.result, "previous building's answer is gone")
	assert.Empty(t, m.mostUsed)
	assert.NotNil(t, cmd, "switching reloads the quick list")
}

func TestUpdate_MostUsedForOtherBuildingIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(mostUsedLoadedMsg{
		building: 4,
		records:  []model.StationRecord{{BuildingID: 4}},
	})
	m = updated.(Model)

	assert.Empty(t, m.mostUsed)
}

func TestUpdate_EnterRecordsUsageOnHit(t *testing.T) {
	m, store := newTestModel(t)
	m = typeString(m, "58-01")

	updated, _ := m.Update(lookupResultMsg{result: lookup.Result{
		Query:      "58-01",
		Building:   3,
		CheckDigit: "42",
		Key:        station.Normalize("58-01"),
	}})
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Run the command synchronously and verify the increment landed.
	msg := cmd()
	_, isUsage := msg.(usageRecordedMsg)
	require.True(t, isUsage)

	record, err := store.GetStation(context.Background(), 3, station.Normalize("58-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, record.UsageCount)
}

func TestView_RendersWithoutResult(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "Building 3")
}
