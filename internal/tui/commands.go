package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morrisraybrooks/PalletManager/internal/model"
)

const storageTimeout = 5 * time.Second

// lookupCmd resolves raw input for a building. The command closes over the
// exact query string; the resolver cancels whatever was in flight before.
func (m Model) lookupCmd(building int, raw string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		result, ok := <-m.resolver.Lookup(ctx, building, raw)
		if !ok {
			// Superseded before completion; nothing to apply.
			return nil
		}
		return lookupResultMsg{result: result}
	}
}

// loadMostUsed loads the quick-access ranking for a building.
func (m Model) loadMostUsed(building int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		records, err := m.storage.MostUsed(ctx, building, 5)
		return mostUsedLoadedMsg{
			building: building,
			records:  records,
			err:      err,
		}
	}
}

// recordUsage bumps the usage counter for a confirmed hit.
func (m Model) recordUsage(building int, key model.StationKey) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		err := m.storage.RecordUsage(ctx, building, key)
		return usageRecordedMsg{err: err}
	}
}
