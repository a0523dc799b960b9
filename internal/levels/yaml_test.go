package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourlab/liquidsort/internal/engine"
)

func fixtureState() *engine.LevelState {
	s := engine.NewLevelState([]engine.Bottle{
		engine.NewFilledBottle(4, engine.ColorRed, engine.ColorRed, engine.ColorBlue, engine.ColorBlue),
		engine.NewFilledBottle(4, engine.ColorBlue, engine.ColorBlue, engine.ColorRed, engine.ColorRed),
		engine.NewBottle(4),
		engine.NewSinkBottle(4),
	})
	s.LevelIndex = 42
	s.Seed = 987654321
	s.OptimalMoves = 3
	s.MovesAllowed = 5
	s.ScrambleMoves = 10
	s.BackgroundPaletteIndex = 7
	return s
}

func TestMarshalParseRoundTrip(t *testing.T) {
	state := fixtureState()
	solution := []engine.Move{{Source: 0, Target: 2}, {Source: 1, Target: 0}}

	data, err := MarshalYAML(LevelID(42), "Level 42", state, solution)
	require.NoError(t, err)

	lvl, err := ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "level-0042", lvl.ID)
	assert.Equal(t, "Level 42", lvl.Name)
	assert.Equal(t, engine.EncodeCanonical(state), engine.EncodeCanonical(lvl.State),
		"bottle configuration must survive the round trip")
	assert.Equal(t, 42, lvl.State.LevelIndex)
	assert.Equal(t, uint64(987654321), lvl.State.Seed)
	assert.Equal(t, 3, lvl.State.OptimalMoves)
	assert.Equal(t, 5, lvl.State.MovesAllowed)
	assert.Equal(t, 10, lvl.State.ScrambleMoves)
	assert.Equal(t, 7, lvl.State.BackgroundPaletteIndex)
	assert.Equal(t, solution, lvl.Solution)
}

func TestParseYAMLSinkAndPadding(t *testing.T) {
	data := []byte(`
id: level-0001
level: 1
capacity: 4
bottles:
  - colors: RRBB
  - colors: BBRR
  - colors: "____"
  - colors: ""
    sink: true
moves:
  optimal: 3
  allowed: 6
`)
	lvl, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, lvl.State.Bottles, 4)
	assert.True(t, lvl.State.Bottles[2].IsEmpty(), "underscore padding reads as empty")
	assert.True(t, lvl.State.Bottles[3].IsSink())
	assert.False(t, lvl.State.Bottles[0].IsSink())
}

func TestParseYAMLRejectsInteriorPadding(t *testing.T) {
	// An underscore below a color would mean liquid floating over an
	// empty slot; rejecting it beats silently dropping the upper units.
	data := []byte(`
id: bad
level: 1
capacity: 4
bottles:
  - colors: R_RB
  - colors: BBRR
  - colors: ""
`)
	_, err := ParseYAML(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding")
}

func TestParseYAMLRejectsUnknownColor(t *testing.T) {
	data := []byte(`
id: bad
level: 1
capacity: 4
bottles:
  - colors: RRXX
  - colors: RR
`)
	_, err := ParseYAML(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")
}

func TestParseYAMLRejectsOverfilledBottle(t *testing.T) {
	data := []byte(`
id: bad
level: 1
capacity: 2
bottles:
  - colors: RRR
  - colors: R
`)
	_, err := ParseYAML(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed capacity")
}

func TestParseYAMLRejectsMixedSink(t *testing.T) {
	data := []byte(`
id: bad
level: 1
capacity: 4
bottles:
  - colors: RRRB
    sink: true
  - colors: BBBR
  - colors: ""
`)
	_, err := ParseYAML(data)
	require.Error(t, err, "a sink holding two colors violates the structural invariants")
}

func TestParseYAMLRejectsVolumeMismatch(t *testing.T) {
	// Three red units match no bottle capacity.
	data := []byte(`
id: bad
level: 1
capacity: 4
bottles:
  - colors: RRR
  - colors: ""
`)
	_, err := ParseYAML(data)
	require.Error(t, err)
}

func TestParseYAMLRejectsBadSolution(t *testing.T) {
	base := `
id: level-0001
level: 1
capacity: 4
bottles:
  - colors: RRRR
  - colors: ""
solution:
`
	for _, step := range []string{"  - 0-2", "  - a->1", "  - 0->9"} {
		_, err := ParseYAML([]byte(base + step + "\n"))
		assert.Error(t, err, "solution step %q should be rejected", step)
	}
}
