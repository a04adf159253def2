package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavesearch/internal/config"
	"github.com/llehouerou/wavesearch/internal/errmsg"
	"github.com/llehouerou/wavesearch/internal/globalsearch"
	"github.com/llehouerou/wavesearch/internal/playlist"
	"github.com/llehouerou/wavesearch/internal/state"
	"github.com/llehouerou/wavesearch/internal/ui/searchview"
)

// Engine is a globalsearch.Engine that delivers its responses on a channel.
type Engine interface {
	globalsearch.Engine
	Events() <-chan globalsearch.Event
}

// Deps are the collaborators of the root model.
type Deps struct {
	Engine   Engine
	Settings globalsearch.Settings
	State    state.Store
	Queue    *playlist.Queue // nil starts an empty queue
	// Reload re-reads the configuration file (ctrl+l).
	Reload func() (*config.Config, error)
	Logger *slog.Logger
}

// Model is the root application model.
type Model struct {
	Search     *globalsearch.Search
	Queue      *playlist.Queue
	SearchView searchview.Model

	engine   Engine
	sched    *cmdScheduler
	listener *listener
	state    state.Store
	reload   func() (*config.Config, error)
	logger   *slog.Logger

	savedQuery string
	StatusMsg  string
	ErrorMsg   string
	ShowHelp   bool
	Width      int
	Height     int
}

// New creates the root model. The engine's current providers are
// registered right away; later ones arrive as events.
func New(deps Deps) (Model, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	st := deps.State
	if st == nil {
		st = state.NewMock()
	}

	queue := deps.Queue
	if queue == nil {
		queue = playlist.NewQueue()
	}

	sched := &cmdScheduler{}
	l := &listener{}
	search, err := globalsearch.New(deps.Engine,
		globalsearch.WithScheduler(sched),
		globalsearch.WithListener(l),
		globalsearch.WithLogger(logger),
		globalsearch.WithSettings(deps.Settings),
	)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		Search:     search,
		Queue:      queue,
		SearchView: searchview.New(search),
		engine:     deps.Engine,
		sched:      sched,
		listener:   l,
		state:      st,
		reload:     deps.Reload,
		logger:     logger,
	}

	if q, err := st.LastQuery(); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpStateLoad, err)
	} else if q != "" {
		m.savedQuery = q
		m.SearchView.SetQuery(q)
	}

	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.SearchView.Init(),
		watchEngine(m.engine.Events()),
		restoreQuery(m.savedQuery),
	)
}
