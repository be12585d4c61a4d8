// Package floor scans sequences of up/down symbols.
//
// Total sums the whole sequence. Scan and FirstCrossingIndex run the
// first-crossing state machine: the scan starts in Scanning{Total: 0} and
// latches Crossed{Index: k} on the first down symbol seen at total 0. Every
// rune of the input is validated in both variants; a rune outside the
// alphabet aborts the scan with an *InvalidSymbolError and no partial result.
package floor

import (
	"unicode/utf8"

	"github.com/go-logr/logr"
)

// NoCrossing is the index reported when the total never drops below zero.
const NoCrossing = 0

// State is the result of a first-crossing scan: Scanning or Crossed.
type State interface {
	isState()
}

// Scanning means no crossing happened; Total is the running total so far.
type Scanning struct {
	Total int
}

// Crossed is terminal. Index is the 1-based position of the crossing symbol.
type Crossed struct {
	Index int
}

func (Scanning) isState() {}
func (Crossed) isState()  {}

// Scanner holds an alphabet and a logger. It has no mutable state and is safe
// for concurrent use.
type Scanner struct {
	alpha Alphabet
	log   logr.Logger
}

// Option configures a Scanner in NewScanner.
type Option func(*Scanner)

// WithAlphabet replaces DefaultAlphabet.
func WithAlphabet(a Alphabet) Option { return func(s *Scanner) { s.alpha = a } }

// WithLogger sets the logger used for V(1) debug output.
func WithLogger(l logr.Logger) Option { return func(s *Scanner) { s.log = l } }

// NewScanner builds a Scanner using DefaultAlphabet unless overridden.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{alpha: DefaultAlphabet, log: logr.Discard()}
	for _, o := range opts {
		o(s)
	}
	if err := s.alpha.Validate(); err != nil {
		return nil, err
	}
	s.log = s.log.WithName("floor")
	return s, nil
}

var defaultScanner = &Scanner{alpha: DefaultAlphabet, log: logr.Discard()}

// Alphabet returns the scanner's symbol encoding.
func (s *Scanner) Alphabet() Alphabet { return s.alpha }

// walk decodes seq left to right, calling fn with each symbol and its 1-based
// position. It stops at the first invalid rune.
func (s *Scanner) walk(seq string, fn func(pos int, sym Symbol)) error {
	pos := 0
	for _, r := range seq {
		pos++
		sym, ok := s.alpha.Decode(r)
		if !ok {
			err := &InvalidSymbolError{Symbol: r, Pos: pos, Alphabet: s.alpha}
			s.log.V(1).Info("rejecting sequence", "symbol", string(r), "pos", pos)
			return err
		}
		fn(pos, sym)
	}
	return nil
}

// Symbols decodes seq into its symbols.
func (s *Scanner) Symbols(seq string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(seq))
	if err := s.walk(seq, func(_ int, sym Symbol) { out = append(out, sym) }); err != nil {
		return nil, err
	}
	return out, nil
}

// Total returns (#up - #down) over seq.
func (s *Scanner) Total(seq string) (int, error) {
	total := 0
	if err := s.walk(seq, func(_ int, sym Symbol) { total += sym.Step() }); err != nil {
		return 0, err
	}
	s.log.V(1).Info("total", "len", utf8.RuneCountInString(seq), "total", total)
	return total, nil
}

// Scan runs the first-crossing state machine over seq and returns its final
// state.
func (s *Scanner) Scan(seq string) (State, error) {
	var st State = Scanning{}
	err := s.walk(seq, func(pos int, sym Symbol) {
		cur, ok := st.(Scanning)
		if !ok {
			return // crossed; keep validating only
		}
		if sym == Down && cur.Total == 0 {
			st = Crossed{Index: pos}
			s.log.V(1).Info("crossed below zero", "index", pos)
			return
		}
		st = Scanning{Total: cur.Total + sym.Step()}
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// FirstCrossingIndex returns the 1-based index of the first symbol that takes
// the total below zero. ok is false, and index is NoCrossing, when that never
// happens.
func (s *Scanner) FirstCrossingIndex(seq string) (index int, ok bool, err error) {
	st, err := s.Scan(seq)
	if err != nil {
		return NoCrossing, false, err
	}
	if c, crossed := st.(Crossed); crossed {
		return c.Index, true, nil
	}
	return NoCrossing, false, nil
}

// Total sums seq using DefaultAlphabet.
func Total(seq string) (int, error) { return defaultScanner.Total(seq) }

// Scan runs the first-crossing scan using DefaultAlphabet.
func Scan(seq string) (State, error) { return defaultScanner.Scan(seq) }

// FirstCrossingIndex finds the first crossing using DefaultAlphabet.
func FirstCrossingIndex(seq string) (int, bool, error) {
	return defaultScanner.FirstCrossingIndex(seq)
}
