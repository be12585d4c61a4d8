// Package circuit evaluates 16-bit wire circuits built from bitwise gates.
//
// Signals are computed on demand and memoised until the circuit changes.
// A Circuit is not safe for concurrent use.
package circuit

import (
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateWire = errors.New("wire driven twice")
	ErrUnknownWire   = errors.New("wire has no driver")
	ErrCycle         = errors.New("wire depends on itself")
)

// Circuit maps each wire to the gate driving it.
type Circuit struct {
	drivers map[string]Gate
	signals map[string]uint16
	log     logr.Logger
}

// New indexes gates by output wire.
func New(gates []Gate) (*Circuit, error) {
	c := &Circuit{
		drivers: make(map[string]Gate, len(gates)),
		signals: make(map[string]uint16, len(gates)),
		log:     logr.Discard(),
	}
	for _, g := range gates {
		if prev, dup := c.drivers[g.Out]; dup {
			return nil, errors.Wrapf(ErrDuplicateWire, "%q by %q and %q", g.Out, prev, g)
		}
		c.drivers[g.Out] = g
	}
	return c, nil
}

// SetLogger attaches a logger for per-signal debug output.
func (c *Circuit) SetLogger(l logr.Logger) { c.log = l.WithName("circuit") }

// Wires returns the number of driven wires.
func (c *Circuit) Wires() int { return len(c.drivers) }

// Signal returns the signal on wire.
func (c *Circuit) Signal(wire string) (uint16, error) {
	return c.eval(wire, map[string]bool{})
}

// Override replaces the driver of wire with a literal and forgets every
// memoised signal.
func (c *Circuit) Override(wire string, v uint16) {
	c.drivers[wire] = Gate{Op: Assign, A: Literal(v), Out: wire}
	c.Reset()
	c.log.V(1).Info("override", "wire", wire, "signal", v)
}

// Reset forgets memoised signals.
func (c *Circuit) Reset() {
	c.signals = make(map[string]uint16, len(c.drivers))
}

func (c *Circuit) eval(wire string, visiting map[string]bool) (uint16, error) {
	if v, ok := c.signals[wire]; ok {
		return v, nil
	}
	g, ok := c.drivers[wire]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownWire, "%q", wire)
	}
	if visiting[wire] {
		return 0, errors.Wrapf(ErrCycle, "%q", wire)
	}
	visiting[wire] = true
	defer delete(visiting, wire)

	a, err := c.operand(g.A, visiting)
	if err != nil {
		return 0, err
	}
	var v uint16
	switch g.Op {
	case Assign:
		v = a
	case Not:
		v = ^a
	default:
		b, err := c.operand(g.B, visiting)
		if err != nil {
			return 0, err
		}
		switch g.Op {
		case And:
			v = a & b
		case Or:
			v = a | b
		case LShift:
			v = a << b
		case RShift:
			v = a >> b
		default:
			return 0, errors.Errorf("gate %q: unsupported op %s", g, g.Op)
		}
	}
	c.signals[wire] = v
	c.log.V(1).Info("signal", "wire", wire, "gate", g.String(), "signal", v)
	return v, nil
}

func (c *Circuit) operand(o Operand, visiting map[string]bool) (uint16, error) {
	if !o.IsWire() {
		return o.Value, nil
	}
	return c.eval(o.Wire, visiting)
}
