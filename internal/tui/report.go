package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leandrodaf/midiplay/sdk/contracts"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle  = lipgloss.NewStyle().PaddingRight(2)
)

// RenderReport formats an analysis for the terminal.
func RenderReport(path string, res *contracts.AnalysisResult, lower, upper uint8) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(path))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d notes, %d tracks, %d ticks/beat, %d tempo changes\n",
		len(res.Events)/2, len(res.Tracks), res.TicksPerBeat, len(res.TempoMap))
	if res.Dangling > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d unterminated notes dropped", res.Dangling)))
		b.WriteString("\n")
	}

	s := res.Summary
	fmt.Fprintf(&b, "range %s..%s (playable %d..%d)  ", orDash(s.MinNoteName), orDash(s.MaxNoteName), lower, upper)
	if s.TotalOverLimitCount == 0 {
		b.WriteString(okStyle.Render("all notes playable"))
	} else {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d below, %d above", s.UnderMinCount, s.OverMaxCount)))
	}
	b.WriteString("\n\n")

	if len(res.Tracks) > 0 {
		b.WriteString(trackTable(res.Tracks))
	}
	return b.String()
}

func trackTable(tracks []contracts.TrackInfo) string {
	cols := [][]string{
		{"#"}, {"track"}, {"notes"}, {"lowest"}, {"highest"}, {"suggestion"},
	}
	for _, tr := range tracks {
		a := tr.Analysis
		cols[0] = append(cols[0], fmt.Sprint(tr.ID))
		cols[1] = append(cols[1], tr.Name)
		cols[2] = append(cols[2], fmt.Sprint(tr.NoteCount))
		cols[3] = append(cols[3], rangeCell(a.MinNoteName, a.MinNoteGroup, a.IsMinOverLimit))
		cols[4] = append(cols[4], rangeCell(a.MaxNoteName, a.MaxNoteGroup, a.IsMaxOverLimit))
		cols[5] = append(cols[5], suggestion(a))
	}

	rendered := make([]string, len(cols))
	for i, col := range cols {
		rendered[i] = cellStyle.Render(lipgloss.JoinVertical(lipgloss.Left, col...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func rangeCell(name, group string, over bool) string {
	cell := fmt.Sprintf("%s %s", name, group)
	if over {
		return warnStyle.Render(cell)
	}
	return cell
}

func suggestion(a contracts.TrackAnalysis) string {
	var parts []string
	if a.SuggestedMax != nil {
		parts = append(parts, "high: "+formatShift(*a.SuggestedMax))
	}
	if a.SuggestedMin != nil {
		parts = append(parts, "low: "+formatShift(*a.SuggestedMin))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func formatShift(s contracts.Shift) string {
	return fmt.Sprintf("transpose %+d octave %+d", s.Transpose, s.Octave)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
