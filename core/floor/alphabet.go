// core/floor/alphabet.go
package floor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Symbol is one step of a floor sequence.
type Symbol int8

const (
	Down Symbol = -1 // lowers the total by one
	Up   Symbol = 1  // raises the total by one
)

// Step returns the signed contribution of s to the running total.
func (s Symbol) Step() int { return int(s) }

func (s Symbol) String() string {
	switch s {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Symbol(%d)", int8(s))
}

// Alphabet maps the two input runes onto Up and Down.
type Alphabet struct {
	Up   rune
	Down rune
}

// DefaultAlphabet is the reference encoding: '(' goes up, ')' goes down.
var DefaultAlphabet = Alphabet{Up: '(', Down: ')'}

// Validate rejects alphabets that cannot tell the two symbols apart.
func (a Alphabet) Validate() error {
	if a.Up == 0 || a.Down == 0 {
		return errors.Errorf("alphabet %s: symbols must be set", a)
	}
	if a.Up == a.Down {
		return errors.Errorf("alphabet %s: up and down must differ", a)
	}
	return nil
}

// Decode returns the symbol encoded by r.
func (a Alphabet) Decode(r rune) (Symbol, bool) {
	switch r {
	case a.Up:
		return Up, true
	case a.Down:
		return Down, true
	}
	return 0, false
}

func (a Alphabet) String() string { return fmt.Sprintf("up=%q down=%q", a.Up, a.Down) }

// ErrInvalidSymbol matches every *InvalidSymbolError via errors.Is.
var ErrInvalidSymbol = errors.New("invalid symbol")

// InvalidSymbolError reports the first rune outside the alphabet.
type InvalidSymbolError struct {
	Symbol   rune
	Pos      int // 1-based
	Alphabet Alphabet
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at %d; allowed: %q %q", e.Symbol, e.Pos, e.Alphabet.Up, e.Alphabet.Down)
}

func (e *InvalidSymbolError) Is(target error) bool { return target == ErrInvalidSymbol }
