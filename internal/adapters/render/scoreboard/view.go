package scoreboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/rauberskat-cli/internal/application"
	"github.com/bnema/rauberskat-cli/internal/domain"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// HistoryLimit caps the history table to the most recent plays. Zero
	// shows every play.
	HistoryLimit int
	Settlement   *domain.Settlement
}

// Render draws the scoreboard of one session.
func Render(view application.StandingsView, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderView(view, opts, s)
	})
}

func renderView(view application.StandingsView, opts RenderOptions, s styles) string {
	session := view.Session
	lines := []string{
		s.title.Render(sessionTitle(session)),
		s.header.Render(fmt.Sprintf("round: %s | dealer: %s | plays: %d", session.RoundMode, session.Dealer(), len(session.History))),
	}

	if session.RamschDecision.Awaiting() {
		lines = append(lines, s.warning.Render(fmt.Sprintf(
			"ramsch tie: waiting for %s to accept or reject a Ramsch replay",
			strings.Join(session.RamschDecision.Candidates, ", "),
		)))
	}

	lines = append(lines, s.section.Render(renderStandings(view, s)))
	lines = append(lines, s.section.Render(renderHistory(session.History, opts.HistoryLimit, s)))

	if opts.Settlement != nil {
		lines = append(lines, s.section.Render(renderSettlement(*opts.Settlement, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionTitle(session domain.GameSession) string {
	if name := strings.TrimSpace(session.Metadata["name"]); name != "" {
		return fmt.Sprintf("Räuberskat: %s (%s)", name, session.ID)
	}
	return fmt.Sprintf("Räuberskat (%s)", session.ID)
}

func renderStandings(view application.StandingsView, s styles) string {
	nameWidth := 0
	for _, standing := range view.Standings {
		nameWidth = max(nameWidth, lipgloss.Width(standing.Player))
	}

	lines := make([]string, 0, len(view.Standings)+1)
	lines = append(lines, s.header.Render("standings"))
	for _, standing := range view.Standings {
		nameStyle := s.player
		if standing.Leader {
			nameStyle = s.leader
		}

		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			nameStyle.Render(padRight(standing.Player, nameWidth)),
			"  ",
			s.score(standing.Score).Render(fmt.Sprintf("%6d", standing.Score)),
		)
		if markers := standingMarkers(standing); markers != "" {
			line += " " + s.marker.Render(markers)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func standingMarkers(standing domain.Standing) string {
	var markers []string
	if standing.Leader {
		markers = append(markers, "leader")
	}
	if standing.Dealer {
		markers = append(markers, "dealer")
	}
	if standing.SittingOut {
		markers = append(markers, "sits out")
	}
	if len(markers) == 0 {
		return ""
	}
	return "[" + strings.Join(markers, ", ") + "]"
}

func renderHistory(history []domain.PlayRecord, limit int, s styles) string {
	if len(history) == 0 {
		return s.empty.Render("No plays recorded yet.")
	}

	shown := history
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	titles := []string{"#", "Player", "Game", "Points", "Dealer"}
	rows := make([]table.Row, 0, len(shown))
	for _, record := range shown {
		rows = append(rows, table.Row{
			strconv.Itoa(record.Sequence),
			playerLabel(record),
			gameLabel(record),
			pointsLabel(record),
			record.DealerAtPlay,
		})
	}

	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := lipgloss.Width(title)
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[i]))
		}
		columns[i] = table.Column{Title: title, Width: width}
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = s.tableHead
	tableStyles.Cell = s.tableCell
	tableStyles.Selected = lipgloss.NewStyle()

	// Height counts the header and its border, so every row stays visible.
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithStyles(tableStyles),
		table.WithHeight(len(rows)+2),
	)

	header := s.header.Render("history")
	if len(shown) < len(history) {
		header = s.header.Render(fmt.Sprintf("history (last %d of %d)", len(shown), len(history)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, t.View())
}

func playerLabel(record domain.PlayRecord) string {
	if record.TieWinner != "" && record.TieWinner != record.ScoringPlayer {
		return record.ScoringPlayer + " + " + record.TieWinner
	}
	return record.ScoringPlayer
}

func gameLabel(record domain.PlayRecord) string {
	parts := []string{string(record.GameType)}
	if record.Modifiers.ComSem != nil {
		parts = append(parts, fmt.Sprintf("com/sem %d", *record.Modifiers.ComSem))
	}
	if record.Modifiers.RamschPoints != nil {
		parts = append(parts, fmt.Sprintf("%d pts", *record.Modifiers.RamschPoints))
	}
	for _, flag := range record.Modifiers.Flags() {
		parts = append(parts, string(flag))
	}
	if record.Modifiers.SkatPushed > 0 {
		parts = append(parts, fmt.Sprintf("skat x%d", record.Modifiers.SkatPushed))
	}
	return strings.Join(parts, " ")
}

func pointsLabel(record domain.PlayRecord) string {
	return fmt.Sprintf("%+d %s", record.Result.Points, record.RoundModeAtPlay.Suffix())
}

func renderSettlement(settlement domain.Settlement, s styles) string {
	lines := []string{
		s.header.Render(fmt.Sprintf("settlement at %s per point", formatCents(settlement.CentsPerPoint))),
		s.leader.Render(fmt.Sprintf("winners: %s (%d)", strings.Join(settlement.Winners, ", "), settlement.WinningScore)),
	}

	if len(settlement.Fees) == 0 {
		lines = append(lines, s.empty.Render("Nobody pays."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, fee := range settlement.Fees {
		lines = append(lines, fmt.Sprintf(
			"%s pays %s (%d behind)",
			s.player.Render(fee.Player),
			s.money.Render(formatCents(fee.Cents)),
			fee.PointsBehind,
		))
	}
	lines = append(lines, s.title.Render("total: "+formatCents(settlement.TotalCents)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatCents(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func padRight(value string, width int) string {
	if gap := width - lipgloss.Width(value); gap > 0 {
		return value + strings.Repeat(" ", gap)
	}
	return value
}
