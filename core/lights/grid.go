// Package lights drives a square grid of lights with rectangle instructions.
package lights

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

const (
	// DefaultSize is the side length of the puzzle grid.
	DefaultSize = 1000
	// MaxSize bounds the side length so size*size cells stay allocatable.
	MaxSize = 1 << 15
)

// Rule computes a cell's new value from its current one.
type Rule interface {
	Name() string
	Apply(a Action, v int) int
}

type binaryRule struct{}

func (binaryRule) Name() string { return "binary" }

func (binaryRule) Apply(a Action, v int) int {
	switch a {
	case TurnOn:
		return 1
	case TurnOff:
		return 0
	}
	return 1 - v
}

type brightnessRule struct{}

func (brightnessRule) Name() string { return "brightness" }

func (brightnessRule) Apply(a Action, v int) int {
	switch a {
	case TurnOn:
		return v + 1
	case TurnOff:
		if v == 0 {
			return 0
		}
		return v - 1
	}
	return v + 2
}

var (
	// Binary switches lights on and off; Total counts lit lights.
	Binary Rule = binaryRule{}
	// Brightness dims and brightens; Total is the summed brightness.
	Brightness Rule = brightnessRule{}
)

// RuleByName looks up "binary" or "brightness".
func RuleByName(name string) (Rule, error) {
	switch name {
	case Binary.Name():
		return Binary, nil
	case Brightness.Name():
		return Brightness, nil
	}
	return nil, errors.Errorf("unknown rule %q", name)
}

var ErrOutOfBounds = errors.New("rectangle out of bounds")

// Grid is not safe for concurrent mutation.
type Grid struct {
	size  int
	rule  Rule
	cells []int
	log   logr.Logger
}

// NewGrid returns a size x size grid with every cell at 0.
func NewGrid(size int, rule Rule) (*Grid, error) {
	if size <= 0 || size > MaxSize {
		return nil, errors.Errorf("grid size must be in 1..%d, got %d", MaxSize, size)
	}
	if rule == nil {
		rule = Binary
	}
	return &Grid{size: size, rule: rule, cells: make([]int, size*size), log: logr.Discard()}, nil
}

// SetLogger attaches a logger for per-instruction debug output.
func (g *Grid) SetLogger(l logr.Logger) { g.log = l.WithName("lights") }

func (g *Grid) Size() int  { return g.size }
func (g *Grid) Rule() Rule { return g.rule }

func (g *Grid) inside(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.size && p.Y < g.size
}

// Apply runs one instruction. Corners may come in any order.
func (g *Grid) Apply(in Instruction) error {
	if !g.inside(in.From) || !g.inside(in.To) {
		return errors.Wrapf(ErrOutOfBounds, "%s (size %d)", in, g.size)
	}
	x1, x2 := order(in.From.X, in.To.X)
	y1, y2 := order(in.From.Y, in.To.Y)
	for x := x1; x <= x2; x++ {
		row := g.cells[x*g.size : (x+1)*g.size]
		for y := y1; y <= y2; y++ {
			row[y] = g.rule.Apply(in.Action, row[y])
		}
	}
	g.log.V(1).Info("applied", "instruction", in.String(), "rule", g.rule.Name())
	return nil
}

// ApplyAll applies list in order and stops at the first failure.
func (g *Grid) ApplyAll(list []Instruction) error {
	for i, in := range list {
		if err := g.Apply(in); err != nil {
			return errors.Wrapf(err, "instruction %d", i+1)
		}
	}
	return nil
}

// At returns the value of the cell at p, or 0 outside the grid.
func (g *Grid) At(p Point) int {
	if !g.inside(p) {
		return 0
	}
	return g.cells[p.X*g.size+p.Y]
}

// Total sums every cell: lit lights under Binary, brightness under Brightness.
func (g *Grid) Total() int {
	sum := 0
	for _, v := range g.cells {
		sum += v
	}
	return sum
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
