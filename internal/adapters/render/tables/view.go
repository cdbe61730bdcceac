package tables

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/coffeetable/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const costBarWidth = 16

type RenderOptions struct {
	Participants int
	RepeatCost   float64
	// Notice is printed below the tables, e.g. the dry-run message.
	Notice string
}

func RenderArrangement(arrangement domain.Arrangement, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return arrangementView(arrangement, opts, s)
	})
}

func RenderHistory(history domain.History) (string, error) {
	return run(func(s styles) string {
		return historyView(history, s)
	})
}

func RenderPairs(pairs []domain.PairCost) (string, error) {
	return run(func(s styles) string {
		return pairsView(pairs, s)
	})
}

func arrangementView(arrangement domain.Arrangement, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Coffee tables"),
		s.header.Render(fmt.Sprintf("participants: %d  tables: %d  repeat cost: %.2f",
			opts.Participants, len(arrangement), opts.RepeatCost)),
		s.section.Render(tableLines(arrangement, "", s)),
	}

	if opts.Notice != "" {
		lines = append(lines, s.section.Render(s.notice.Render(opts.Notice)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func tableLines(arrangement domain.Arrangement, indent string, s styles) string {
	lines := make([]string, 0, len(arrangement))
	for i, table := range arrangement {
		lines = append(lines, indent+lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.tableLabel.Render(fmt.Sprintf("Table %d:", i+1)),
			" ",
			s.names.Render(joinNames(table)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyView(history domain.History, s styles) string {
	lines := []string{
		s.title.Render("Seating history"),
		s.header.Render(fmt.Sprintf("rounds: %d", len(history))),
	}

	if len(history) == 0 {
		lines = append(lines, s.empty.Render("No rounds recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i := len(history) - 1; i >= 0; i-- {
		age := len(history) - 1 - i
		block := lipgloss.JoinVertical(lipgloss.Left,
			s.round.Render(fmt.Sprintf("Round %d (%s)", i+1, roundAge(age))),
			tableLines(history[i], "  ", s),
		)
		lines = append(lines, s.section.Render(block))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func pairsView(pairs []domain.PairCost, s styles) string {
	lines := []string{
		s.title.Render("Repeat pairs"),
		s.header.Render(fmt.Sprintf("pairs: %d", len(pairs))),
	}

	if len(pairs) == 0 {
		lines = append(lines, s.empty.Render("No pairings recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	highest := pairs[0].Cost
	for _, pair := range pairs[1:] {
		highest = math.Max(highest, pair.Cost)
	}

	rows := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			renderCostBar(pair.Cost, highest, costBarWidth, s),
			" ",
			s.cost.Render(fmt.Sprintf("%5.2f", pair.Cost)),
			" ",
			s.names.Render(pair.Pair.String()),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCostBar(cost, highest float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if highest > 0 {
		filled = int(math.Round(float64(width) * cost / highest))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func roundAge(age int) string {
	switch age {
	case 0:
		return "latest"
	case 1:
		return "1 round ago"
	default:
		return fmt.Sprintf("%d rounds ago", age)
	}
}

func joinNames(table domain.Table) string {
	if len(table) == 0 {
		return "(empty)"
	}

	names := make([]string, 0, len(table))
	for _, person := range table {
		names = append(names, sanitizeForTerminal(string(person)))
	}
	return strings.Join(names, " ")
}
