// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/noema/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/noema/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/noema/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/noema/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
)

// maxSuggestionsShown bounds the completion line under the input.
const maxSuggestionsShown = 4

// View represents the search view with input, suggestions, results and
// an optional record detail pane.
type View struct {
	styles *styles.Styles
	input  *input.QueryInput
	list   *list.ResultList

	searchService driving.SearchService
	contentStore  driven.ContentStore
	ctx           context.Context

	width  int
	height int

	focusInput  bool // true = typing, false = navigating results
	suggestions []domain.Suggestion
	detail      *domain.ContentRecord
	searching   bool
	err         error
}

// NewView creates a new search view.
func NewView(s *styles.Styles, searchService driving.SearchService, contentStore driven.ContentStore) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		searchService: searchService,
		contentStore:  contentStore,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.searching = false
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetResults(msg.Results)
		}
		return v, nil

	case messages.SuggestionsReady:
		// Stale completions for an older input are dropped.
		if msg.Partial == v.input.Value() {
			v.suggestions = msg.Suggestions
		}
		return v, nil

	case messages.RecordLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.detail = msg.Record
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Detail pane swallows everything except its dismissal.
	if v.detail != nil {
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			v.detail = nil
		}
		return v, nil
	}

	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			v.focusInput = true
			return v, v.input.Focus()
		}
		v.input.Reset()
		v.suggestions = nil
		return v, nil
	}

	if msg.Type == tea.KeyEnter && v.focusInput {
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.searching = true
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	// Tab accepts the top completion.
	if msg.Type == tea.KeyTab && v.focusInput && len(v.suggestions) > 0 {
		v.input.SetValue(v.suggestions[0].Text)
		v.suggestions = nil
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, tea.Batch(cmd, v.fetchSuggestions(v.input.Value()))
	}

	// Results mode.
	switch msg.Type {
	case tea.KeyEnter:
		return v, v.loadSelected()
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	default:
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n":
		v.focusInput = true
		v.input.Reset()
		v.suggestions = nil
		return v, v.input.Focus()
	}

	return v, nil
}

// performSearch returns a command that runs the search asynchronously.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := v.searchService.Search(v.ctx, query, domain.SearchFilters{})
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// fetchSuggestions returns a command that computes query completions.
func (v *View) fetchSuggestions(partial string) tea.Cmd {
	if strings.TrimSpace(partial) == "" {
		return func() tea.Msg {
			return messages.SuggestionsReady{Partial: partial}
		}
	}
	return func() tea.Msg {
		suggestions, err := v.searchService.Suggest(v.ctx, partial)
		if err != nil {
			suggestions = nil
		}
		return messages.SuggestionsReady{Partial: partial, Suggestions: suggestions}
	}
}

// loadSelected returns a command that loads the selected record.
func (v *View) loadSelected() tea.Cmd {
	result := v.list.SelectedResult()
	if result == nil || v.contentStore == nil {
		return nil
	}
	id := result.ContentID
	return func() tea.Msg {
		record, err := v.contentStore.Get(v.ctx, id)
		return messages.RecordLoaded{Record: record, Err: err}
	}
}

// View renders the search view.
func (v *View) View() string {
	if v.detail != nil {
		return v.renderDetail()
	}

	var b strings.Builder
	b.WriteString(v.input.View())
	b.WriteString("\n")

	if v.focusInput && len(v.suggestions) > 0 {
		shown := v.suggestions
		if len(shown) > maxSuggestionsShown {
			shown = shown[:maxSuggestionsShown]
		}
		texts := make([]string, len(shown))
		for i, s := range shown {
			texts[i] = s.Text
		}
		b.WriteString(v.styles.Muted.Render("  " + strings.Join(texts, "  |  ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.searching {
		b.WriteString(v.styles.Muted.Render("Searching..."))
	} else if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	} else {
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("enter search · tab complete · j/k navigate · n new · esc back · q quit"))
	return b.String()
}

// renderDetail shows the loaded record's text.
func (v *View) renderDetail() string {
	var b strings.Builder
	title := v.detail.Title
	if title == "" {
		title = v.detail.ID
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(string(v.detail.Type) + " · " + v.detail.Source))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(v.detail.CombinedText()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("esc back"))
	return b.String()
}

// SetDimensions updates the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
}

// FocusedOnInput reports whether keystrokes go to the query input.
func (v *View) FocusedOnInput() bool {
	return v.focusInput
}

// ShowingDetail reports whether the record detail pane is open.
func (v *View) ShowingDetail() bool {
	return v.detail != nil
}

// Results returns the currently displayed results.
func (v *View) Results() []domain.RankedResult {
	return v.list.Results()
}
