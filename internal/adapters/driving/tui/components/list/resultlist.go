// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/noema/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/noema/internal/core/domain"
)

// ResultList displays ranked search results in a navigable list.
type ResultList struct {
	results  []domain.RankedResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
		}
		switch msg.String() {
		case "k":
			r.MoveUp()
		case "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))), "")

	// Each result occupies two lines, title and snippet.
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single ranked result.
func (r *ResultList) renderResult(index int, result *domain.RankedResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = result.ContentID
	}
	maxTitleLen := r.width - 24
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	head := fmt.Sprintf("%s%s  %.2f %s", indicator, title, result.Score, result.Strategy)
	if index == r.selected {
		head = r.styles.Selected.Render(head)
	} else {
		head = r.styles.Normal.Render(head)
	}

	if result.Snippet == "" {
		return head
	}
	return head + "\n" + r.styles.Muted.Render("    "+result.Snippet)
}

// SetResults replaces the displayed results and resets the selection.
func (r *ResultList) SetResults(results []domain.RankedResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.RankedResult {
	return r.results
}

// SelectedResult returns the currently selected result, or nil.
func (r *ResultList) SelectedResult() *domain.RankedResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// SelectedIndex returns the index of the selected result.
func (r *ResultList) SelectedIndex() int {
	return r.selected
}

// MoveUp moves the selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves the selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions updates the rendering dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
