// core/lights/instruction.go
package lights

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Action is what an instruction does to each light in its rectangle.
type Action int

const (
	TurnOn Action = iota
	TurnOff
	Toggle
)

func (a Action) String() string {
	switch a {
	case TurnOn:
		return "turn on"
	case TurnOff:
		return "turn off"
	case Toggle:
		return "toggle"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Point is a grid coordinate; X selects the row, Y the column.
type Point struct {
	X, Y int
}

// Instruction applies Action to the inclusive rectangle From..To.
type Instruction struct {
	Action Action
	From   Point
	To     Point
}

func (in Instruction) String() string {
	return fmt.Sprintf("%s %d,%d through %d,%d", in.Action, in.From.X, in.From.Y, in.To.X, in.To.Y)
}

var ErrBadInstruction = errors.New("bad instruction")

var instructionRe = regexp.MustCompile(`^(turn on|turn off|toggle) (\d+),(\d+) through (\d+),(\d+)$`)

// ParseInstruction parses one line such as "toggle 0,0 through 999,0".
func ParseInstruction(line string) (Instruction, error) {
	m := instructionRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Instruction{}, errors.Wrapf(ErrBadInstruction, "%q", line)
	}
	var in Instruction
	switch m[1] {
	case "turn on":
		in.Action = TurnOn
	case "turn off":
		in.Action = TurnOff
	default:
		in.Action = Toggle
	}
	var n [4]int
	for i := range n {
		v, err := strconv.Atoi(m[i+2])
		if err != nil {
			return Instruction{}, errors.Wrapf(ErrBadInstruction, "%q: %v", line, err)
		}
		n[i] = v
	}
	in.From = Point{X: n[0], Y: n[1]}
	in.To = Point{X: n[2], Y: n[3]}
	return in, nil
}

// ReadInstructions parses one instruction per line. Blank lines and lines
// starting with '#' are skipped.
func ReadInstructions(r io.Reader) ([]Instruction, error) {
	var list []Instruction
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		in, err := ParseInstruction(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", ln)
		}
		list = append(list, in)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read instructions")
	}
	return list, nil
}
