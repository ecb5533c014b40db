package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/browser"
	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle     = "Ocean Road Archive"
	loadFailed   = "Failed to load posts"
	errorHint    = "Check your store configuration (archive config) and restart the server."
	loadTimeout  = 30 * time.Second
	sidebarWidth = 30
)

// Loader supplies the item set: the HTTP client, or the fetcher in-process.
type Loader interface {
	Load(ctx context.Context) (posts.Response, error)
}

type mode int

const (
	modeNormal mode = iota
	modeHelp
)

type App struct {
	loader  Loader
	openURL func(string) error

	items   []posts.Item
	visible []posts.Item
	cursor  int
	mode    mode

	width  int
	height int

	spinner   spinner.Model
	filterBar filterBar

	loading bool
	errMsg  string
	status  string
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Loader     Loader
	Categories []string
	OpenURL    func(string) error
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	open := opts.OpenURL
	if open == nil {
		open = browser.Open
	}

	return &App{
		loader:    opts.Loader,
		openURL:   open,
		spinner:   sp,
		filterBar: newFilterBar(opts.Categories),
		loading:   true,
		items:     []posts.Item{},
		visible:   []posts.Item{},
	}
}

// Init loads the items once. There is no refetch; a new load needs a new App.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

func (a *App) loadCmd() tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		if loader == nil {
			return postsLoadedMsg{err: fmt.Errorf("no loader configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		resp, err := loader.Load(ctx)
		return postsLoadedMsg{resp: resp, err: err}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) applyFilter() {
	a.visible = posts.Filter(a.items, a.filterBar.current())
	a.cursor = 0
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.status = ""
		return a.handleKey(msg)

	case postsLoadedMsg:
		a.loading = false
		a.items = []posts.Item{}
		if msg.err != nil {
			a.errMsg = loadFailed
		} else {
			if msg.resp.Posts != nil {
				a.items = msg.resp.Posts
			}
			a.errMsg = msg.resp.Error
		}
		a.applyFilter()
		return a, nil

	case openErrMsg:
		a.status = msg.err.Error()
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if a.mode == modeHelp {
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "l", "right", "tab":
		if a.filterBar.next() {
			a.applyFilter()
		}
		return a, nil
	case "h", "left", "shift+tab":
		if a.filterBar.prev() {
			a.applyFilter()
		}
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if a.filterBar.selectIndex(int(msg.String()[0] - '1')) {
			a.applyFilter()
		}
		return a, nil
	case "f":
		a.filterBar.toggleFilters()
		return a, nil
	case "s":
		a.filterBar.toggleSources()
		return a, nil
	case "o", "enter":
		if a.cursor < len(a.visible) {
			return a, a.openCmd(a.visible[a.cursor].URL)
		}
		return a, nil
	case "?":
		a.mode = modeHelp
		return a, nil
	}
	return a, nil
}

// mainContent applies the display precedence: loading, error, empty, list.
func (a *App) mainContent(width, height int) string {
	switch {
	case a.loading:
		return centered(a.spinner.View()+" "+messageStyle.Render("Loading posts..."), width, height)
	case a.errMsg != "":
		return centered(errorStyle.Render(a.errMsg), width, height) + "\n" +
			centered(messageStyle.Render(errorHint), width, 0)
	case len(a.visible) == 0:
		return centered(messageStyle.Render("No posts found"), width, height)
	default:
		return renderList(a.visible, a.cursor, height, width)
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render(appTitle)
	}
	if a.mode == modeHelp {
		return a.renderHelp()
	}

	header := a.renderHeader()
	status := renderStatusBar(len(a.visible), len(a.items), a.filterBar.current(), a.width, a.status)

	bodyHeight := a.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	var body string
	if a.width >= 80 {
		// Side-by-side: sidebar on the left, list on the right
		innerH := bodyHeight - 2
		sidebar := sidebarStyle.Width(sidebarWidth - 2).Height(innerH).
			Render(a.filterBar.render(a.items, sidebarWidth-4))
		mainW := a.width - sidebarWidth
		main := mainPaneStyle.Width(mainW - 2).Height(innerH).
			Render(a.mainContent(mainW-4, innerH))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	} else {
		sidebar := sidebarStyle.Width(a.width - 2).Render(a.filterBar.render(a.items, a.width-4))
		mainH := bodyHeight - lipgloss.Height(sidebar) - 2
		if mainH < 3 {
			mainH = 3
		}
		main := mainPaneStyle.Width(a.width - 2).Height(mainH).Render(a.mainContent(a.width-4, mainH))
		body = lipgloss.JoinVertical(lipgloss.Left, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a *App) renderHeader() string {
	left := logoStyle.Render("OR") + headerStyle.Render(appTitle)
	right := headerCountStyle.Render(fmt.Sprintf("%d posts", len(a.visible)))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderHelp() string {
	title := headerStyle.Render(appTitle)
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓       Move through posts\n\n" +
		dim.Render("Filters") + "\n" +
		"  ←/→, h/l, tab  Previous / next category\n" +
		"  1-9            Select category by number\n" +
		"  f              Open or close the filter panel\n" +
		"  s              Expand or collapse sources\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter       Open post in browser\n\n" +
		dim.Render("General") + "\n" +
		"  ?              Toggle this help\n" +
		"  q, ctrl+c      Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
