// core/circuit/gate.go
package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Op is the operation a gate performs.
type Op int

const (
	Assign Op = iota
	And
	Or
	LShift
	RShift
	Not
)

var opNames = map[Op]string{
	Assign: "ASSIGN",
	And:    "AND",
	Or:     "OR",
	LShift: "LSHIFT",
	RShift: "RSHIFT",
	Not:    "NOT",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// binaryOps maps the infix keyword to its Op.
var binaryOps = map[string]Op{
	"AND":    And,
	"OR":     Or,
	"LSHIFT": LShift,
	"RSHIFT": RShift,
}

// Operand is either a wire name or a literal signal.
type Operand struct {
	Wire  string
	Value uint16
}

func (o Operand) IsWire() bool { return o.Wire != "" }

func (o Operand) String() string {
	if o.IsWire() {
		return o.Wire
	}
	return strconv.Itoa(int(o.Value))
}

func WireOf(name string) Operand { return Operand{Wire: name} }
func Literal(v uint16) Operand   { return Operand{Value: v} }

// Gate drives Out. B is unused for Assign and Not.
type Gate struct {
	Op  Op
	A   Operand
	B   Operand
	Out string
}

func (g Gate) String() string {
	switch g.Op {
	case Assign:
		return fmt.Sprintf("%s -> %s", g.A, g.Out)
	case Not:
		return fmt.Sprintf("NOT %s -> %s", g.A, g.Out)
	}
	return fmt.Sprintf("%s %s %s -> %s", g.A, g.Op, g.B, g.Out)
}

var ErrBadGate = errors.New("bad gate")

func validWire(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func parseOperand(tok string) (Operand, bool) {
	if validWire(tok) {
		return WireOf(tok), true
	}
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return Operand{}, false
	}
	return Literal(uint16(v)), true
}

// ParseGate parses lines like "x AND y -> d", "NOT x -> h" or "123 -> x".
func ParseGate(line string) (Gate, error) {
	bad := func() (Gate, error) { return Gate{}, errors.Wrapf(ErrBadGate, "%q", line) }

	f := strings.Fields(line)
	n := len(f)
	if n < 3 || f[n-2] != "->" || !validWire(f[n-1]) {
		return bad()
	}
	g := Gate{Out: f[n-1]}
	lhs := f[:n-2]
	var ok bool
	switch len(lhs) {
	case 1:
		g.Op = Assign
		g.A, ok = parseOperand(lhs[0])
	case 2:
		if lhs[0] != "NOT" {
			return bad()
		}
		g.Op = Not
		g.A, ok = parseOperand(lhs[1])
	case 3:
		op, known := binaryOps[lhs[1]]
		if !known {
			return bad()
		}
		g.Op = op
		var okA, okB bool
		g.A, okA = parseOperand(lhs[0])
		g.B, okB = parseOperand(lhs[2])
		ok = okA && okB
		if ok && (op == LShift || op == RShift) && (g.B.IsWire() || g.B.Value > 15) {
			ok = false
		}
	default:
		return bad()
	}
	if !ok {
		return bad()
	}
	return g, nil
}

// ReadGates parses one gate per line. Blank lines and '#' comments are skipped.
func ReadGates(r io.Reader) ([]Gate, error) {
	var list []Gate
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		g, err := ParseGate(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		list = append(list, g)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read gates")
	}
	return list, nil
}
