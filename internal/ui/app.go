package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kitchen/internal/auth"
	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/idle"
	"github.com/five82/kitchen/internal/inventory"
	"github.com/five82/kitchen/internal/kitchen"
	"github.com/five82/kitchen/internal/prefs"
	"github.com/five82/kitchen/internal/session"
	"github.com/five82/kitchen/internal/state"
	"github.com/five82/kitchen/internal/tier"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewIngredients
	ViewRecipes
	ViewFavorites
	ViewProfiles
	ViewScanner
)

var mainViews = []View{ViewIngredients, ViewRecipes, ViewFavorites, ViewProfiles, ViewScanner}

func (v View) titleKey() string {
	switch v {
	case ViewIngredients:
		return "nav.ingredients"
	case ViewRecipes:
		return "nav.recipes"
	case ViewFavorites:
		return "nav.favorites"
	case ViewProfiles:
		return "nav.profiles"
	case ViewScanner:
		return "nav.scanner"
	default:
		return "login.title"
	}
}

// API is the part of the endpoint facade the views call directly.
// *kitchen.Client satisfies it.
type API interface {
	GenerateRecipes(ctx context.Context, req kitchen.RecipeRequest) (*kitchen.RecipeList, error)
	RecipeHistory(ctx context.Context, page kitchen.PageRequest) ([]kitchen.Recipe, error)
	Favorites(ctx context.Context) (*kitchen.FavoriteList, error)
	AddFavorite(ctx context.Context, recipeID int64) (*kitchen.Favorite, error)
	RemoveFavorite(ctx context.Context, favoriteID int64) error
	Profiles(ctx context.Context, active *bool) (*kitchen.DietProfileList, error)
	ProfileTemplates(ctx context.Context) (map[string]any, error)
	CreateProfileFromTemplate(ctx context.Context, profileType string) (*kitchen.DietProfile, error)
	UpdateDietProfile(ctx context.Context, id int64, patch kitchen.DietProfilePatch) (*kitchen.DietProfile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       API
	Auth      *auth.Adapter
	Inventory *inventory.Service
	Store     *state.Store
	Session   *session.Session
	// Idle is optional; when set it is started on login and touched on
	// every key or mouse event.
	Idle      *idle.Monitor
	Bridge    *Bridge
	Logger    *slog.Logger
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Prefs     prefs.Prefs
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	api       API
	auth      *auth.Adapter
	inventory *inventory.Service
	store     *state.Store
	session   *session.Session
	idle      *idle.Monitor
	logger    *slog.Logger
	prefsPath string
	prefs     prefs.Prefs
	pollTick  time.Duration
	now       func() time.Time
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	lang        string
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	user        *kitchen.User
	tierInfo    tier.Descriptor
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Feedback
	flash       string
	flashErr    bool
	idleWarning string
	busy        bool

	// Recipe detail overlay, shared by recipes and favorites
	detail       viewport.Model
	detailOpen   bool
	detailRecipe kitchen.Recipe

	login     loginForm
	pantry    pantryState
	recipes   recipeState
	favorites listCursor
	profiles  profileState
	scanner   scannerState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	lang := i18n.Default
	if opts.Session != nil && opts.Session.Locale() != "" {
		lang = i18n.Normalize(opts.Session.Locale())
	}

	m := Model{
		ctx:         ctx,
		api:         opts.API,
		auth:        opts.Auth,
		inventory:   opts.Inventory,
		store:       opts.Store,
		session:     opts.Session,
		idle:        opts.Idle,
		logger:      logger,
		prefsPath:   prefsPath,
		prefs:       opts.Prefs,
		pollTick:    pollTick,
		now:         now,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewLogin,
		lang:        lang,
		tierInfo:    tier.Describe(tier.Demo),
		snapshot:    state.Snapshot{Remaining: -1},
		detail:      viewport.New(0, 0),
		login:       newLoginForm(lang),
		pantry:      newPantryState(lang),
		scanner:     newScannerState(lang),
	}

	if m.auth.RedirectIfAuthenticated() {
		m.currentView = ViewIngredients
		m.loadUser()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.currentView == ViewLogin {
		cmds = append(cmds, textinput.Blink)
		return tea.Batch(cmds...)
	}
	if m.idle != nil {
		m.idle.Start()
	}
	cmds = append(cmds, m.reloadCmd())
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.touch()
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.touch()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = m.now()
		m.clampCursors()
		return m, nil

	case pageMsg:
		return m.handlePage(kitchen.Page(msg))

	case idleWarnMsg:
		m.idleWarning = i18n.T(m.lang, "session.timeout_warning")
		return m, nil

	case idleExpiredMsg:
		return m, m.logoutCmd(i18n.T(m.lang, "session.logged_out"))

	case loggedOutMsg:
		m = m.toLogin()
		m.setFlash(msg.reason, false)
		return m, textinput.Blink

	case loginMsg:
		return m.handleLoginResult(msg)

	case actionMsg:
		return m.handleAction(msg)

	case pantryMsg:
		return m.handlePantry(msg)

	case recipesMsg:
		return m.handleRecipes(msg)

	case historyMsg:
		return m.handleHistory(msg)

	case templatesMsg:
		return m.handleTemplates(msg)

	case scanMsg:
		return m.handleScan(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return i18n.T(m.lang, "common.loading")
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.currentView == ViewLogin {
		return m.renderLogin()
	}

	return m.renderMain()
}

func (m *Model) touch() {
	if m.idle != nil {
		m.idle.Touch()
	}
	m.idleWarning = ""
}

// handleKey processes keyboard input. Views with a focused text input get
// the key first so typing is never taken as a command.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.currentView == ViewLogin:
		return m.handleLoginKey(msg)
	case m.pantry.editing:
		return m.handlePantryInput(msg)
	case m.currentView == ViewScanner && m.scanner.product == nil:
		return m.handleScannerInput(msg)
	case m.detailOpen:
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Language):
		m.cycleLanguage()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m, m.logoutCmd(i18n.T(m.lang, "common.logged_out"))

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.offsetView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView(m.offsetView(-1))

	case key.Matches(msg, m.keys.ViewIngredients):
		return m.switchView(ViewIngredients)
	case key.Matches(msg, m.keys.ViewRecipes):
		return m.switchView(ViewRecipes)
	case key.Matches(msg, m.keys.ViewFavorites):
		return m.switchView(ViewFavorites)
	case key.Matches(msg, m.keys.ViewProfiles):
		return m.switchView(ViewProfiles)
	case key.Matches(msg, m.keys.ViewScanner):
		return m.switchView(ViewScanner)
	}

	switch m.currentView {
	case ViewIngredients:
		return m.handlePantryKey(msg)
	case ViewRecipes:
		return m.handleRecipesKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewProfiles:
		return m.handleProfilesKey(msg)
	case ViewScanner:
		return m.handleScannerResultKey(msg)
	}
	return m, nil
}

func (m Model) offsetView(delta int) View {
	for i, v := range mainViews {
		if v == m.currentView {
			n := len(mainViews)
			return mainViews[((i+delta)%n+n)%n]
		}
	}
	return mainViews[0]
}

// switchView changes the active main view. The auth guard sends the user
// back to the login page when the session vanished in the background.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if !m.auth.RequireAuth() {
		return m, nil
	}
	m.currentView = v
	m.detailOpen = false
	m.profiles.showTemplates = false
	if v == ViewScanner && m.scanner.product == nil {
		cmd := m.scanner.input.Focus()
		return m, cmd
	}
	m.scanner.input.Blur()
	return m, nil
}

func (m Model) handlePage(page kitchen.Page) (tea.Model, tea.Cmd) {
	switch page {
	case kitchen.PageEntry:
		if m.currentView == ViewLogin {
			return m, nil
		}
		m = m.toLogin()
		return m, textinput.Blink
	case kitchen.PageMain:
		if m.currentView != ViewLogin {
			return m, nil
		}
		return m.startSession()
	}
	return m, nil
}

// startSession enters the main views after a successful login.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	m.loadUser()
	m.currentView = ViewIngredients
	m.login.reset()
	if m.idle != nil {
		m.idle.Start()
	}
	return m, m.reloadCmd()
}

// toLogin drops everything tied to the previous user.
func (m Model) toLogin() Model {
	if m.idle != nil {
		m.idle.Stop()
	}
	if m.store != nil {
		m.store.Reset()
	}
	m.currentView = ViewLogin
	m.user = nil
	m.tierInfo = tier.Describe(tier.Demo)
	m.snapshot = state.Snapshot{Remaining: -1}
	m.detailOpen = false
	m.idleWarning = ""
	m.busy = false
	m.pantry = newPantryState(m.lang)
	m.recipes = recipeState{}
	m.favorites = listCursor{}
	m.profiles = profileState{}
	m.scanner = newScannerState(m.lang)
	m.login.reset()
	return m
}

func (m *Model) loadUser() {
	if user, ok := m.auth.CurrentUser(); ok {
		m.user = user
	}
	m.tierInfo = m.auth.TierInfo()
}

func (m *Model) cycleLanguage() {
	m.lang = i18n.Next(m.lang)
	if m.session != nil {
		if err := m.session.SetLocale(m.lang); err != nil {
			m.logger.Warn("store locale failed", slog.String("error", err.Error()))
		}
	}
	m.login.relabel(m.lang)
	m.pantry.input.Placeholder = i18n.T(m.lang, "ingredients.add_prompt")
	m.scanner.input.Placeholder = i18n.T(m.lang, "scanner.prompt")
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", slog.String("error", err.Error()))
	}
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

// setError shows err in the status line. API errors already carry
// user-facing text.
func (m *Model) setError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	m.setFlash(i18n.T(m.lang, "common.error")+err.Error(), true)
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.setError(msg.err)
	} else if msg.text != "" {
		m.setFlash(msg.text, false)
	}
	return m, fetchSnapshotCmd(m.store)
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.currentView != ViewLogin {
		m.loadUser()
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) clampCursors() {
	m.pantry.cursor = clampIndex(m.pantry.cursor, len(m.pantryRows()))
	m.recipes.cursor = clampIndex(m.recipes.cursor, len(m.recipeList()))
	m.favorites.index = clampIndex(m.favorites.index, len(m.snapshot.Favorites))
	m.profiles.cursor = clampIndex(m.profiles.cursor, len(m.snapshot.Profiles))
}

func (m *Model) resizeDetail() {
	w := m.width - 4
	h := m.contentHeight() - 2
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.detail.Width = w
	m.detail.Height = h
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.detailOpen = false
		return m, nil
	case key.Matches(msg, m.keys.Favorite) && m.currentView == ViewRecipes:
		return m.toggleFavorite()
	case key.Matches(msg, m.keys.Collapse):
		m.toggleCompactRecipes()
		m.detail.SetContent(m.renderRecipeDetail(m.detailRecipe))
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) openDetail(r kitchen.Recipe) {
	m.resizeDetail()
	m.detailRecipe = r
	m.detail.SetContent(m.renderRecipeDetail(r))
	m.detail.GotoTop()
	m.detailOpen = true
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if m.idleWarning != "" {
		b.WriteString(m.theme.Styles().Banner.Width(m.width).Render(m.idleWarning))
		b.WriteString("\n")
	}

	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	if m.detailOpen {
		return m.theme.Styles().Panel.
			BorderForeground(m.focusColor()).
			Render(m.detail.View())
	}
	switch m.currentView {
	case ViewIngredients:
		return m.renderPantry()
	case ViewRecipes:
		return m.renderRecipes()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewProfiles:
		return m.renderProfiles()
	case ViewScanner:
		return m.renderScanner()
	default:
		return ""
	}
}

// contentHeight is the number of rows left for the active view.
func (m Model) contentHeight() int {
	h := m.height - 3 // header, command bar, status line
	if m.idleWarning != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// actionMsg reports the outcome of a mutation.
type actionMsg struct {
	text string
	err  error
}

type loggedOutMsg struct {
	reason string
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// call runs fn off the event loop with a bounded context.
func (m Model) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, ActionTimeout)
		defer cancel()
		return fn(ctx)
	}
}

// reloadCmd refreshes the pantry, favorites and profiles.
func (m Model) reloadCmd() tea.Cmd {
	api, inv, store, logger := m.api, m.inventory, m.store, m.logger
	return m.call(func(ctx context.Context) tea.Msg {
		if err := inv.Reload(ctx); err != nil {
			logger.DebugContext(ctx, "reload ingredients failed", slog.String("error", err.Error()))
		}
		reloadFavorites(ctx, api, store)
		reloadProfiles(ctx, api, store)
		return snapshotMsg(store.Snapshot())
	})
}

func reloadFavorites(ctx context.Context, api API, store *state.Store) {
	list, err := api.Favorites(ctx)
	if err != nil {
		store.UpdateFavorites(nil, err)
		return
	}
	store.UpdateFavorites(list.Favorites, nil)
}

func reloadProfiles(ctx context.Context, api API, store *state.Store) {
	list, err := api.Profiles(ctx, nil)
	if err != nil {
		store.UpdateProfiles(nil, err)
		return
	}
	store.UpdateProfiles(list.Profiles, nil)
}

func (m Model) logoutCmd(reason string) tea.Cmd {
	a := m.auth
	return m.call(func(ctx context.Context) tea.Msg {
		a.Logout(ctx)
		return loggedOutMsg{reason: reason}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	if opts.Bridge != nil {
		opts.Bridge.attach(p)
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
