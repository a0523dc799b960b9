// Package levels provides the YAML level file format: export of
// generated levels and loading with structural validation. The package
// depends on engine but engine does not depend on levels.
package levels

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pourlab/liquidsort/internal/engine"
)

// YAMLLevel represents the YAML structure of a level file. Bottle
// contents are compact color-character strings, bottom to top, e.g.
// "RRBB"; trailing underscores for empty slots are accepted and
// ignored.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name,omitempty"`
	Level    int               `yaml:"level"`
	Seed     uint64            `yaml:"seed"`
	Capacity int               `yaml:"capacity"`
	Theme    int               `yaml:"theme,omitempty"`
	Bottles  []YAMLBottle      `yaml:"bottles"`
	Moves    YAMLMoves         `yaml:"moves"`
	Solution []string          `yaml:"solution,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLBottle represents one bottle in YAML format.
type YAMLBottle struct {
	Colors string `yaml:"colors"`
	Sink   bool   `yaml:"sink,omitempty"`
}

// YAMLMoves carries the move accounting of a level.
type YAMLMoves struct {
	Optimal  int `yaml:"optimal"`
	Allowed  int `yaml:"allowed"`
	Scramble int `yaml:"scramble,omitempty"`
}

// Level is a parsed level file ready for use.
type Level struct {
	ID       string
	Name     string
	State    *engine.LevelState
	Solution []engine.Move
	Metadata map[string]string
	FilePath string
}

// ParseYAML parses and validates a YAML level file. The returned state
// passed structural validation; a file whose bottles break the volume
// or sink invariants is rejected here, not at play time.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	capacity := yl.Capacity
	if capacity <= 0 {
		capacity = engine.DefaultCapacity
	}
	if len(yl.Bottles) == 0 {
		return Level{}, fmt.Errorf("level %s: no bottles", yl.ID)
	}

	bottles := make([]engine.Bottle, 0, len(yl.Bottles))
	for i, yb := range yl.Bottles {
		b, err := parseBottle(yb, capacity)
		if err != nil {
			return Level{}, fmt.Errorf("level %s bottle %d: %w", yl.ID, i, err)
		}
		bottles = append(bottles, b)
	}

	state := engine.NewLevelState(bottles)
	state.LevelIndex = yl.Level
	state.Seed = yl.Seed
	state.OptimalMoves = yl.Moves.Optimal
	state.MovesAllowed = yl.Moves.Allowed
	state.ScrambleMoves = yl.Moves.Scramble
	state.BackgroundPaletteIndex = yl.Theme

	if err := state.Validate(); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	solution, err := parseSolution(yl.Solution, len(bottles))
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		State:    state,
		Solution: solution,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML serializes a level state (plus an optional solution path)
// into the YAML file format.
func MarshalYAML(id, name string, state *engine.LevelState, solution []engine.Move) ([]byte, error) {
	if len(state.Bottles) == 0 {
		return nil, fmt.Errorf("level %s: no bottles", id)
	}
	yl := YAMLLevel{
		ID:       id,
		Name:     name,
		Level:    state.LevelIndex,
		Seed:     state.Seed,
		Capacity: state.Bottles[0].Capacity(),
		Theme:    state.BackgroundPaletteIndex,
		Moves: YAMLMoves{
			Optimal:  state.OptimalMoves,
			Allowed:  state.MovesAllowed,
			Scramble: state.ScrambleMoves,
		},
	}
	for i := range state.Bottles {
		yl.Bottles = append(yl.Bottles, formatBottle(&state.Bottles[i]))
	}
	for _, m := range solution {
		yl.Solution = append(yl.Solution, m.String())
	}
	return yaml.Marshal(yl)
}

// LevelID returns the canonical file ID for a level index.
func LevelID(level int) string {
	return fmt.Sprintf("level-%04d", level)
}

func parseBottle(yb YAMLBottle, capacity int) (engine.Bottle, error) {
	colors := make([]engine.Color, 0, capacity)
	padded := false
	for _, r := range yb.Colors {
		if r == '_' {
			padded = true
			continue
		}
		if padded {
			// Underscores are trailing padding only; liquid cannot
			// float above an empty slot.
			return engine.Bottle{}, fmt.Errorf("color %q after empty-slot padding", r)
		}
		c, ok := engine.ParseColor(string(r))
		if !ok {
			return engine.Bottle{}, fmt.Errorf("unknown color character %q", r)
		}
		colors = append(colors, c)
	}
	if len(colors) > capacity {
		return engine.Bottle{}, fmt.Errorf("%d units exceed capacity %d", len(colors), capacity)
	}
	if yb.Sink {
		return engine.NewFilledSinkBottle(capacity, colors...), nil
	}
	return engine.NewFilledBottle(capacity, colors...), nil
}

func formatBottle(b *engine.Bottle) YAMLBottle {
	var sb strings.Builder
	for i := 0; i < b.Count(); i++ {
		c, _ := b.ColorAt(i)
		sb.WriteRune(c.Char())
	}
	return YAMLBottle{Colors: sb.String(), Sink: b.IsSink()}
}

// parseSolution converts "src->tgt" strings into moves, bounds-checked
// against the bottle count.
func parseSolution(raw []string, bottleCount int) ([]engine.Move, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	moves := make([]engine.Move, 0, len(raw))
	for i, s := range raw {
		left, right, ok := strings.Cut(s, "->")
		if !ok {
			return nil, fmt.Errorf("solution step %d: malformed move %q", i, s)
		}
		src, err := strconv.Atoi(strings.TrimSpace(left))
		if err != nil {
			return nil, fmt.Errorf("solution step %d: bad source in %q", i, s)
		}
		tgt, err := strconv.Atoi(strings.TrimSpace(right))
		if err != nil {
			return nil, fmt.Errorf("solution step %d: bad target in %q", i, s)
		}
		if src < 0 || src >= bottleCount || tgt < 0 || tgt >= bottleCount {
			return nil, fmt.Errorf("solution step %d: move %q out of range", i, s)
		}
		moves = append(moves, engine.Move{Source: src, Target: tgt})
	}
	return moves, nil
}
