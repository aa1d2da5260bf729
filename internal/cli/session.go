package cli

import (
	"io"

	"github.com/rileyhilliard/ntxmon/internal/config"
	"github.com/rileyhilliard/ntxmon/internal/daemon"
	"github.com/rileyhilliard/ntxmon/internal/logger"
	"github.com/rileyhilliard/ntxmon/internal/stats"
	"github.com/rileyhilliard/ntxmon/internal/table"
	"github.com/rileyhilliard/ntxmon/internal/ui"
	"github.com/rileyhilliard/ntxmon/internal/watch"
	"github.com/rileyhilliard/ntxmon/pkg/sshutil"
)

// session is a loaded config with its daemon endpoints open.
type session struct {
	cfg       *config.Config
	path      string
	entities  []stats.Entity
	endpoints map[string]daemon.Endpoint
	pool      *daemon.Pool
	log       logger.Logger
}

// openSession loads and validates the config, applies flag overrides and
// opens an endpoint per coin. Nothing is dialed yet; SSH connections are
// made on first use.
func openSession(o Options) (*session, error) {
	cfg, path, err := config.LoadFound(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := o.apply(cfg); err != nil {
		return nil, err
	}

	log := logger.NewEnvLogger("ntxmon")
	logger.SetDefault(log)
	log.Debug("loaded %s: %d coins, interval %s", path, len(cfg.Coins), cfg.Interval)

	pool := daemon.NewPool(cfg.RPCTimeout)
	endpoints, err := daemon.OpenAll(cfg, cfg.CoinOrder(), pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &session{
		cfg:       cfg,
		path:      path,
		entities:  stats.EntitiesFromConfig(cfg),
		endpoints: endpoints,
		pool:      pool,
		log:       log,
	}, nil
}

func (s *session) collector() *stats.Collector {
	c := stats.NewCollector(s.cfg, s.endpoints)
	c.SetLogger(s.log)
	return c
}

// painter honours output.color for w. The mode was validated at load.
func (s *session) painter(w io.Writer) *ui.Painter {
	mode, err := ui.ParseColorMode(s.cfg.Output.Color)
	if err != nil {
		mode = ui.ColorAuto
	}
	return ui.NewPainter(w, mode)
}

func (s *session) board(w io.Writer) *watch.Board {
	renderer := table.NewRenderer(stats.Columns(), s.painter(w))
	return watch.NewBoard(s.collector(), s.entities, renderer)
}

// Close drops pooled SSH connections and the agent socket.
func (s *session) Close() {
	s.pool.Close()
	sshutil.CloseAgent()
}
