package engine

import (
	"fmt"
	"strings"
)

// Move identifies a pour from one bottle index to another.
type Move struct {
	Source int
	Target int
}

// String returns the move in "src->tgt" form.
func (m Move) String() string {
	return fmt.Sprintf("%d->%d", m.Source, m.Target)
}

// LevelState is the complete puzzle state: an ordered list of bottles
// plus the level bookkeeping. Bottle position is significant — identical
// contents in different bottle indices are a different state. Bottle
// topology (count, capacities, sink flags) never changes after
// construction; contents are mutated only through TryApplyMove.
type LevelState struct {
	Bottles       []Bottle
	MovesUsed     int
	MovesAllowed  int
	OptimalMoves  int
	LevelIndex    int
	Seed          uint64
	ScrambleMoves int

	BackgroundPaletteIndex int
}

// NewLevelState creates a state from pre-built bottles. The bottles are
// cloned; the caller's slice is not retained.
func NewLevelState(bottles []Bottle) *LevelState {
	owned := make([]Bottle, len(bottles))
	for i := range bottles {
		owned[i] = bottles[i].Clone()
	}
	return &LevelState{Bottles: owned}
}

// Clone returns a deep copy of the state.
func (s *LevelState) Clone() *LevelState {
	c := *s
	c.Bottles = make([]Bottle, len(s.Bottles))
	for i := range s.Bottles {
		c.Bottles[i] = s.Bottles[i].Clone()
	}
	return &c
}

// BottleCount returns the number of bottles.
func (s *LevelState) BottleCount() int { return len(s.Bottles) }

// TryApplyMove pours from bottle source into bottle target if the move
// is legal. Returns whether the move was applied and the poured amount.
// MovesUsed is incremented only on applied moves.
func (s *LevelState) TryApplyMove(source, target int) (bool, int) {
	if !IsValidMove(s, source, target) {
		return false, 0
	}
	amount := PourAmount(s, source, target)
	if amount == 0 {
		return false, 0
	}
	s.Bottles[source].PourInto(&s.Bottles[target], amount)
	s.MovesUsed++
	return true, amount
}

// IsWin returns true iff every non-empty bottle is simultaneously full
// and monochrome. A single non-full or mixed non-empty bottle makes the
// state non-terminal even if no legal move can change it further.
func (s *LevelState) IsWin() bool {
	for i := range s.Bottles {
		b := &s.Bottles[i]
		if b.IsEmpty() {
			continue
		}
		if !b.IsSolvedBottle() {
			return false
		}
	}
	return true
}

// ColorVolumes returns the total units held per color across all bottles.
func (s *LevelState) ColorVolumes() map[Color]int {
	volumes := make(map[Color]int, 8)
	for i := range s.Bottles {
		for c, n := range s.Bottles[i].ColorVolumes() {
			volumes[c] += n
		}
	}
	return volumes
}

// Validate checks the structural invariants of the state: every color's
// total volume must equal the capacity of exactly one bottle, and sink
// bottles must hold at most one color. A state failing validation is
// rejected before solving, never repaired.
func (s *LevelState) Validate() error {
	if len(s.Bottles) == 0 {
		return &StructuralError{Code: "NO_BOTTLES", Message: "state has no bottles"}
	}
	capacities := make(map[int]int)
	for i := range s.Bottles {
		capacities[s.Bottles[i].Capacity()]++
	}
	for c, volume := range s.ColorVolumes() {
		if _, ok := capacities[volume]; !ok {
			return &StructuralError{
				Code:    "VOLUME_MISMATCH",
				Message: fmt.Sprintf("color %s: %d units match no bottle capacity", c, volume),
			}
		}
	}
	for i := range s.Bottles {
		b := &s.Bottles[i]
		if b.IsSink() && !b.IsSingleColorOrEmpty() {
			return &StructuralError{
				Code:    "MIXED_SINK",
				Message: fmt.Sprintf("sink bottle %d holds mixed colors", i),
			}
		}
	}
	return nil
}

// String returns a compact one-line dump of all bottles.
func (s *LevelState) String() string {
	parts := make([]string, len(s.Bottles))
	for i := range s.Bottles {
		parts[i] = s.Bottles[i].String()
	}
	return strings.Join(parts, " ")
}

// StructuralError reports a state that violates a construction invariant.
type StructuralError struct {
	Code    string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
