package tui

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/pie-314/trx/install"
	"github.com/pie-314/trx/prompter"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/searcher"
	"github.com/pie-314/trx/selection"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	viewQuery   = "query"
	viewResults = "results"
	viewDetails = "details"
	viewStatus  = "status"
)

// Config holds the App's dependencies
type Config struct {
	Session   *searcher.Session
	Providers provider.Registry
	Details   *provider.DetailsCache
	Selection *selection.Store
	Logger    *zap.Logger
	// Stdio is handed to install commands while the UI is suspended
	Stdio install.Stdio
}

// App is the interactive package search UI
type App struct {
	session   *searcher.Session
	providers provider.Registry
	details   *provider.DetailsCache
	selection *selection.Store
	logger    *zap.Logger
	stdio     install.Stdio
	input     *bufio.Reader

	ctx    context.Context
	cancel context.CancelFunc

	searching *atomic.Bool

	mu               sync.Mutex
	g                *gocui.Gui
	model            *model
	editing          bool
	installRequested bool
}

// New creates an App. The UI starts in editing mode.
func New(conf Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		session:   conf.Session,
		providers: conf.Providers,
		details:   conf.Details,
		selection: conf.Selection,
		logger:    conf.Logger,
		stdio:     conf.Stdio,
		input:     bufio.NewReader(conf.Stdio.In),
		ctx:       ctx,
		cancel:    cancel,
		searching: atomic.NewBool(false),
		model:     newModel(),
		editing:   true,
	}
}

// Run shows the UI until the user quits. Installing closes the UI, runs on the plain terminal, then starts a new UI.
func (a *App) Run() error {
	defer a.cancel()
	go a.consume()
	for {
		g, err := gocui.NewGui(gocui.OutputNormal)
		if err != nil {
			return err
		}
		g.InputEsc = true
		g.SetManagerFunc(a.layout)
		if err := a.bindKeys(g); err != nil {
			g.Close()
			return err
		}
		a.setGui(g)
		err = g.MainLoop()
		a.setGui(nil)
		g.Close()

		if a.takeInstallRequest() {
			a.runInstall()
			continue
		}
		if err != nil && err != gocui.ErrQuit {
			return err
		}
		return nil
	}
}

func (a *App) setGui(g *gocui.Gui) {
	a.mu.Lock()
	a.g = g
	a.mu.Unlock()
}

func (a *App) takeInstallRequest() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	requested := a.installRequested
	a.installRequested = false
	return requested
}

// redraw schedules a layout pass from outside the main loop
func (a *App) redraw() {
	a.mu.Lock()
	g := a.g
	a.mu.Unlock()
	if g != nil {
		g.Update(func(*gocui.Gui) error { return nil })
	}
}

// consume applies results of the latest query as they arrive
func (a *App) consume() {
	for {
		select {
		case results := <-a.session.Results():
			if !a.session.Accept(results) {
				a.logger.Debug("Discarding stale results", zap.String("query", results.Query))
				continue
			}
			a.mu.Lock()
			a.model.apply(results)
			a.mu.Unlock()
			a.searching.Store(false)
			a.fetchDetails()
			a.redraw()
		case <-a.session.Done():
			return
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) onQueryChange(query string) {
	a.mu.Lock()
	a.model.query = query
	a.mu.Unlock()
	trimmed := strings.TrimSpace(query)
	a.searching.Store(trimmed != "" && trimmed != a.session.Latest())
	a.session.Input(query)
}

// fetchDetails loads the highlighted package's details in the background, once per package
func (a *App) fetchDetails() {
	a.mu.Lock()
	current, ok := a.model.current()
	if !ok {
		a.mu.Unlock()
		return
	}
	key := current.Key()
	if _, exists := a.model.details[key]; exists {
		a.mu.Unlock()
		return
	}
	a.model.details[key] = detailsEntry{loading: true}
	a.mu.Unlock()

	go func() {
		var entry detailsEntry
		if p, found := a.providers.Find(current.Provider); found {
			entry.details, entry.err = a.details.Details(a.ctx, p, current.FullName())
		} else {
			entry.err = errors.Errorf("Unknown provider: %q", current.Provider)
		}
		if entry.err != nil {
			a.logger.Warn("Failed to load package details", zap.String("package", current.Key()), zap.Error(entry.err))
		}
		a.mu.Lock()
		a.model.details[key] = entry
		a.mu.Unlock()
		a.redraw()
	}()
}

func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	listWidth := maxX * 3 / 5

	a.mu.Lock()
	defer a.mu.Unlock()

	if v, err := g.SetView(viewQuery, 0, 0, maxX-1, 2); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Search"
		v.Editable = true
		v.Editor = queryEditor{app: a}
		fmt.Fprint(v, a.model.query)
		width, _ := v.Size()
		origin, cursor := queryCursor(len([]rune(a.model.query)), width)
		if err := v.SetOrigin(origin, 0); err != nil {
			return err
		}
		if err := v.SetCursor(cursor, 0); err != nil {
			return err
		}
	}

	if v, err := g.SetView(viewResults, 0, 3, listWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Packages"
	}
	if v, err := g.View(viewResults); err == nil {
		v.Clear()
		_, height := v.Size()
		for _, row := range a.model.renderRows(height, a.selection.Selected) {
			fmt.Fprintln(v, row)
		}
	}

	if v, err := g.SetView(viewDetails, listWidth+1, 3, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Details"
		v.Wrap = true
	}
	if v, err := g.View(viewDetails); err == nil {
		v.Clear()
		fmt.Fprint(v, a.model.renderDetails())
	}

	if v, err := g.SetView(viewStatus, 0, maxY-2, maxX-1, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
	}
	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		fmt.Fprint(v, a.model.renderStatus(a.searching.Load(), a.selection.Len()))
		if a.editing {
			fmt.Fprint(v, colorDim+"  Enter/Esc: browse results"+colorReset)
		} else {
			fmt.Fprint(v, colorDim+"  e: search  space: select  i: install  q: quit"+colorReset)
		}
	}

	g.Cursor = a.editing
	current := viewResults
	if a.editing {
		current = viewQuery
	}
	_, err := g.SetCurrentView(current)
	return err
}

func (a *App) bindKeys(g *gocui.Gui) error {
	bindings := []struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, quit},
		{viewQuery, gocui.KeyEnter, a.setEditing(false)},
		{viewQuery, gocui.KeyEsc, a.setEditing(false)},
		{viewResults, 'e', a.setEditing(true)},
		{viewResults, '/', a.setEditing(true)},
		{viewResults, 'j', a.moveSel(1)},
		{viewResults, 'k', a.moveSel(-1)},
		{viewResults, gocui.KeyArrowDown, a.moveSel(1)},
		{viewResults, gocui.KeyArrowUp, a.moveSel(-1)},
		{viewResults, gocui.KeySpace, a.toggle},
		{viewResults, 'i', a.install},
		{viewResults, 'q', quit},
	}
	for _, b := range bindings {
		if err := g.SetKeybinding(b.view, b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func quit(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }

func (a *App) setEditing(editing bool) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.mu.Lock()
		a.editing = editing
		a.mu.Unlock()
		return nil
	}
}

func (a *App) moveSel(delta int) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		a.mu.Lock()
		a.model.move(delta)
		a.mu.Unlock()
		a.fetchDetails()
		return nil
	}
}

func (a *App) toggle(*gocui.Gui, *gocui.View) error {
	a.mu.Lock()
	current, ok := a.model.current()
	a.mu.Unlock()
	if !ok {
		return nil
	}
	if _, err := a.selection.Toggle(current.Package); err != nil {
		a.logger.Error("Failed to update selection", zap.String("package", current.Key()), zap.Error(err))
	}
	return nil
}

func (a *App) install(*gocui.Gui, *gocui.View) error {
	if a.selection.Len() == 0 {
		return nil
	}
	a.mu.Lock()
	a.installRequested = true
	a.mu.Unlock()
	return gocui.ErrQuit
}

// runInstall runs the install flow on the plain terminal, then waits for Enter
func (a *App) runInstall() {
	out := a.stdio.Out
	err := a.installSelection()
	switch {
	case err == nil:
		fmt.Fprintln(out, "Installation complete")
	case err == install.ErrCancelled:
		fmt.Fprintln(out, err.Error())
	default:
		a.logger.Error("Installation failed", zap.Error(err))
		fmt.Fprintln(out, "Installation failed:", err.Error())
	}
	fmt.Fprint(out, "Press Enter to return")
	if _, err := a.input.ReadString('\n'); err != nil {
		a.logger.Warn("Failed to wait for Enter", zap.Error(err))
	}
}

func (a *App) installSelection() error {
	packages, err := a.selection.List()
	if err != nil {
		return err
	}
	plan, err := install.NewPlan(packages, a.providers)
	if err != nil {
		return err
	}
	installer := install.New(prompter.NewTerminal(a.input, a.stdio.Out), a.details, a.stdio, a.logger)
	if err := installer.Run(a.ctx, plan); err != nil {
		return err
	}
	return a.selection.Clear()
}

// queryCursor places the cursor after n runes in a view width cells wide, scrolling long queries
func queryCursor(n, width int) (origin, cursor int) {
	if width <= 0 {
		return 0, 0
	}
	if n < width {
		return 0, n
	}
	return n - width + 1, width - 1
}

// queryEditor edits the single line query and starts a search after every change
type queryEditor struct {
	app *App
}

func (e queryEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	case key == gocui.KeyDelete:
		v.EditDelete(false)
	case key == gocui.KeyArrowLeft:
		v.MoveCursor(-1, 0, false)
	case key == gocui.KeyArrowRight:
		v.MoveCursor(1, 0, false)
	case key == gocui.KeyHome || key == gocui.KeyCtrlA:
		_ = v.SetCursor(0, 0)
	case key == gocui.KeyEnd || key == gocui.KeyCtrlE:
		_ = v.SetCursor(len([]rune(viewLine(v))), 0)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	default:
		return
	}
	e.app.onQueryChange(viewLine(v))
}

func viewLine(v *gocui.View) string {
	return strings.TrimRight(v.Buffer(), "\n")
}
