package tui

import (
	"fmt"
	"strings"

	"github.com/morrisraybrooks/PalletManager/internal/cli"
	"github.com/morrisraybrooks/PalletManager/internal/model"
)

// View renders the lookup screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(cli.FormatTitle(fmt.Sprintf("Check Digit Lookup · Building %d", m.building)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderResult())
	b.WriteString("\n")
	b.WriteString(m.renderMostUsed())
	b.WriteString("\n")
	b.WriteString(cli.FormatSubtle("tab: switch building • enter: confirm • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderResult() string {
	if m.err != nil {
		return cli.FormatError("storage error: "+m.err.Error()) + "\n" +
			cli.FormatSubtle("retry, or check the database file")
	}

	if m.result == nil {
		return cli.FormatSubtle("type a station code")
	}

	r := m.result
	switch {
	case r.CheckDigit != "":
		return fmt.Sprintf("%s  %s",
			cli.CheckDigitStyle.Render(r.CheckDigit),
			cli.FormatSubtle("station "+r.Key.String()))
	case r.NotFound:
		return cli.FormatWarning(fmt.Sprintf("station %s not found, enter manually", r.Key))
	case r.Class == model.ClassInvalidCharacters:
		return cli.FormatError("only digits and dashes are allowed")
	case r.Class == model.ClassInvalidFormat:
		return cli.FormatError("unrecognized station format")
	case len(r.Suggestions) > 0:
		return cli.FormatSubtle("keep typing, e.g. " + strings.Join(r.Suggestions, ", "))
	default:
		return cli.FormatSubtle("keep typing…")
	}
}

func (m Model) renderMostUsed() string {
	if len(m.mostUsed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatSubtle("most used:"))
	b.WriteString("\n")
	for _, rec := range m.mostUsed {
		b.WriteString(fmt.Sprintf("  %s → %s  %s\n",
			rec.Key,
			cli.FormatSuccess(rec.CheckDigit),
			cli.FormatSubtle(fmt.Sprintf("(%d uses)", rec.UsageCount))))
	}
	return b.String()
}
