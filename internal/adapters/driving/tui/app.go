package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/noema/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/noema/internal/adapters/driving/tui/views/search"
)

// App is the root TUI model following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	searchView *search.View

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		searchView: search.NewView(s, ports.Search, ports.Content),
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return a.searchView.Init()
}

// Update handles messages and routes them to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		// q quits only outside the query input, where it is a letter,
		// and outside the detail pane, where it dismisses.
		if msg.String() == "q" && !a.searchView.FocusedOnInput() && !a.searchView.ShowingDetail() {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// Ready reports whether the app has received its terminal dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// View renders the application.
func (a *App) View() string {
	header := a.styles.Title.Render("noema") +
		a.styles.Muted.Render("  content intelligence")
	return header + "\n\n" + a.searchView.View()
}
