package floor

import (
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		seq  string
		want int
	}{
		{"", 0},
		{"(())", 0},
		{"()()", 0},
		{"(((", 3},
		{"(()(()(", 3},
		{"))(((((", 3},
		{"())", -1},
		{"))(", -1},
		{")))", -3},
		{")())())", -3},
	}
	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, err := Total(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTotalMatchesSymbolCounts(t *testing.T) {
	seqs := []string{"((()))))(", "))))", "(((((((((((", "()()())(()(()(", strings.Repeat("(()", 500)}
	for _, seq := range seqs {
		got, err := Total(seq)
		require.NoError(t, err)
		assert.Equal(t, strings.Count(seq, "(")-strings.Count(seq, ")"), got, "seq %q", seq)
	}
}

func TestFirstCrossingIndex(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		want   int
		wantOK bool
	}{
		{"single down", ")", 1, true},
		{"after balanced prefix", "()())", 5, true},
		{"crossing then climbing", "())(((((", 3, true},
		{"only ups", "((((", NoCrossing, false},
		{"empty", "", NoCrossing, false},
		{"balanced never negative", "(())()", NoCrossing, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := FirstCrossingIndex(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstCrossingIsSmallestNegativePrefix(t *testing.T) {
	seq := "(()))(()))))(((("
	idx, ok, err := FirstCrossingIndex(seq)
	require.NoError(t, err)
	require.True(t, ok)

	run := 0
	first := 0
	for i, r := range seq {
		if r == '(' {
			run++
		} else {
			run--
		}
		if run == -1 {
			first = i + 1
			break
		}
	}
	assert.Equal(t, first, idx)
}

func TestScanStates(t *testing.T) {
	st, err := Scan("(()")
	require.NoError(t, err)
	assert.Equal(t, Scanning{Total: 1}, st)

	st, err = Scan("())((((")
	require.NoError(t, err)
	assert.Equal(t, Crossed{Index: 3}, st, "crossed state must freeze")
}

func TestInvalidSymbol(t *testing.T) {
	for _, seq := range []string{"(a)", "x", "((( )))", "())é"} {
		t.Run(seq, func(t *testing.T) {
			_, err := Total(seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSymbol))

			idx, ok, err := FirstCrossingIndex(seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSymbol))
			assert.False(t, ok)
			assert.Equal(t, NoCrossing, idx)
		})
	}
}

func TestInvalidSymbolPosition(t *testing.T) {
	_, err := Total("(é(a")
	var ise *InvalidSymbolError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 'é', ise.Symbol)
	assert.Equal(t, 2, ise.Pos, "position counts symbols, not bytes")
	assert.Contains(t, err.Error(), `invalid symbol 'é' at 2`)
}

func TestInvalidSymbolAfterCrossing(t *testing.T) {
	_, err := Scan(")(z")
	require.Error(t, err)
	var ise *InvalidSymbolError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 3, ise.Pos)
}

func TestDeterministic(t *testing.T) {
	seq := "()())(()((())))"
	t1, err := Total(seq)
	require.NoError(t, err)
	i1, ok1, err := FirstCrossingIndex(seq)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		t2, err := Total(seq)
		require.NoError(t, err)
		i2, ok2, err := FirstCrossingIndex(seq)
		require.NoError(t, err)
		require.Equal(t, t1, t2)
		require.Equal(t, i1, i2)
		require.Equal(t, ok1, ok2)
	}
}

func TestCustomAlphabet(t *testing.T) {
	s, err := NewScanner(WithAlphabet(Alphabet{Up: 'U', Down: 'D'}))
	require.NoError(t, err)

	total, err := s.Total("UUDUD")
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	idx, ok, err := s.FirstCrossingIndex("UDD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, err = s.Total("()")
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
}

func TestNewScannerRejectsBadAlphabet(t *testing.T) {
	_, err := NewScanner(WithAlphabet(Alphabet{Up: 'x', Down: 'x'}))
	assert.Error(t, err)
	_, err = NewScanner(WithAlphabet(Alphabet{Up: '('}))
	assert.Error(t, err)
}

func TestSymbols(t *testing.T) {
	s, err := NewScanner()
	require.NoError(t, err)
	syms, err := s.Symbols("(()")
	require.NoError(t, err)
	assert.Equal(t, []Symbol{Up, Up, Down}, syms)
	assert.Equal(t, "down", Down.String())

	syms, err = s.Symbols("(-")
	assert.Nil(t, syms)
	assert.Error(t, err)
}

func TestScannerLogsCrossing(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	s, err := NewScanner(WithLogger(log))
	require.NoError(t, err)
	_, _, err = s.FirstCrossingIndex("()())")
	require.NoError(t, err)

	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "crossed below zero")
	assert.Contains(t, strings.Join(lines, "\n"), `"index"=5`)
}

func TestScannerLogsLengthInSymbols(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	s, err := NewScanner(WithAlphabet(Alphabet{Up: 'é', Down: 'è'}), WithLogger(log))
	require.NoError(t, err)
	total, err := s.Total("ééè")
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	assert.Contains(t, strings.Join(lines, "\n"), `"len"=3`)
}
