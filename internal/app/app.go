// Package app wires configuration and logging around the puzzle solvers.
package app

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/donabrams/advent-of-code-2015/core/circuit"
	"github.com/donabrams/advent-of-code-2015/core/floor"
	"github.com/donabrams/advent-of-code-2015/core/lights"
	"github.com/donabrams/advent-of-code-2015/internal/config"
	"github.com/donabrams/advent-of-code-2015/internal/logger"
)

type App struct {
	cfg   config.Config
	log   logr.Logger
	flush func()
	floor *floor.Scanner
	rule  lights.Rule
}

// New validates cfg and builds the logger and solvers it describes.
func New(cfg config.Config) (*App, error) {
	log, flush, err := logger.New("aoc2015", cfg.Logging)
	if err != nil {
		return nil, errors.Wrap(err, "logger")
	}
	return NewWithLogger(cfg, log, flush)
}

// NewWithLogger is New with a caller-supplied logger. flush may be nil.
func NewWithLogger(cfg config.Config, log logr.Logger, flush func()) (*App, error) {
	if flush == nil {
		flush = func() {}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	alpha, err := cfg.Floor.Alphabet()
	if err != nil {
		return nil, err
	}
	sc, err := floor.NewScanner(floor.WithAlphabet(alpha), floor.WithLogger(log))
	if err != nil {
		return nil, err
	}
	rule, err := cfg.Lights.GridRule()
	if err != nil {
		return nil, err
	}
	log.V(1).Info("configured", "alphabet", alpha.String(), "grid", cfg.Lights.Size, "rule", rule.Name())
	return &App{cfg: cfg, log: log, flush: flush, floor: sc, rule: rule}, nil
}

func (a *App) Logger() logr.Logger { return a.log }

// Floor returns the scanner built from the configured alphabet.
func (a *App) Floor() *floor.Scanner { return a.floor }

// NewGrid returns an empty grid of the configured size and rule.
func (a *App) NewGrid() (*lights.Grid, error) {
	g, err := lights.NewGrid(a.cfg.Lights.Size, a.rule)
	if err != nil {
		return nil, err
	}
	g.SetLogger(a.log)
	return g, nil
}

// LightUp reads instructions from r, runs them on a fresh grid and returns
// the grid's total.
func (a *App) LightUp(r io.Reader) (int, error) {
	list, err := lights.ReadInstructions(r)
	if err != nil {
		return 0, err
	}
	g, err := a.NewGrid()
	if err != nil {
		return 0, err
	}
	if err := g.ApplyAll(list); err != nil {
		return 0, err
	}
	return g.Total(), nil
}

// NewCircuit reads gates from r and returns the circuit they form.
func (a *App) NewCircuit(r io.Reader) (*circuit.Circuit, error) {
	gates, err := circuit.ReadGates(r)
	if err != nil {
		return nil, err
	}
	c, err := circuit.New(gates)
	if err != nil {
		return nil, err
	}
	c.SetLogger(a.log)
	return c, nil
}

// Close flushes buffered log output.
func (a *App) Close() { a.flush() }
