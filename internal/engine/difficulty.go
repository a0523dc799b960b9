package engine

// Band is a coarse difficulty tier spanning a level-index range.
type Band uint8

const (
	BandA Band = iota // levels 1-19
	BandB             // levels 20-99
	BandC             // levels 100-299
	BandD             // levels 300-999
	BandE             // levels 1000+
)

// String returns the string representation of a band.
func (b Band) String() string {
	switch b {
	case BandA:
		return "A"
	case BandB:
		return "B"
	case BandC:
		return "C"
	case BandD:
		return "D"
	case BandE:
		return "E"
	default:
		return "?"
	}
}

// BandForLevel returns the band containing the given level index.
func BandForLevel(level int) Band {
	switch {
	case level < 20:
		return BandA
	case level < 100:
		return BandB
	case level < 300:
		return BandC
	case level < 1000:
		return BandD
	default:
		return BandE
	}
}

// DifficultyProfile describes the intended shape of one level. Produced
// fresh per level index by LevelDifficultyEngine and read-only after.
type DifficultyProfile struct {
	LevelIndex       int
	Band             Band
	ColorCount       int
	EmptyBottleCount int
	BottleCount      int // ColorCount + EmptyBottleCount, capped at the grid limit
	Capacity         int
	SinkCount        int
	SinkRequired     bool
	ScrambleMoves    int
	DifficultyRating int
	ThemeID          int
}

const (
	// MaxBottles is the fixed grid limit: no profile exceeds 9 bottles.
	MaxBottles = 9
	// DefaultCapacity is the uniform bottle capacity of the capacity plan.
	DefaultCapacity = 4

	// ratingCeilLevel is the level at which the rating curve flattens.
	ratingCeilLevel = 200
	// themeCount mirrors the background palette table size.
	themeCount = 16

	// Salts keep the independent hash-derived level properties
	// decorrelated while staying fully deterministic.
	sinkCountSalt = 0x51AB_00D1
	sinkClassSalt = 0x0000_5EED
	themeSalt     = 0x7E11_E77E
)

// LevelDifficultyEngine maps a level index to a DifficultyProfile and to
// the sink-placement policy. It is a pure function of the level index:
// no search, no state.
type LevelDifficultyEngine struct {
	capacity int
}

// NewLevelDifficultyEngine creates an engine using the default capacity plan.
func NewLevelDifficultyEngine() *LevelDifficultyEngine {
	return &LevelDifficultyEngine{capacity: DefaultCapacity}
}

// GetProfile returns the difficulty profile for a level index. Color,
// bottle, and empty counts are non-decreasing with level and band
// bounded; the rating is linear from level 1 to 200 and flat above.
func (e *LevelDifficultyEngine) GetProfile(level int) DifficultyProfile {
	if level < 1 {
		level = 1
	}
	band := BandForLevel(level)
	colors := colorCountForLevel(level)
	empties := 2

	bottles := colors + empties
	if bottles > MaxBottles {
		bottles = MaxBottles
		colors = bottles - empties
	}

	required := e.IsSinkRequiredClass(level)
	sinks := e.SinkCountForLevel(level)
	sinks = clampSinkCount(sinks, empties, required)
	if sinks == 0 {
		required = false
	}

	return DifficultyProfile{
		LevelIndex:       level,
		Band:             band,
		ColorCount:       colors,
		EmptyBottleCount: empties,
		BottleCount:      bottles,
		Capacity:         e.capacity,
		SinkCount:        sinks,
		SinkRequired:     required,
		ScrambleMoves:    scrambleMovesForLevel(level, colors),
		DifficultyRating: ratingForLevel(level),
		ThemeID:          int(mix64(uint64(level)+themeSalt) % themeCount),
	}
}

// SinkCountForLevel returns the policy sink count for a level:
// hash-based but deterministic, capped by band. The structural clamp
// against the profile's bottle plan happens in GetProfile.
func (e *LevelDifficultyEngine) SinkCountForLevel(level int) int {
	if level < 20 {
		return 0
	}
	r := int(mix64(uint64(level)+sinkCountSalt) % 100)
	switch {
	case level < 100:
		// At most one sink, ~30% incidence.
		if r < 30 {
			return 1
		}
		return 0
	case level < 300:
		// At most two sinks, ~30% two-sink incidence.
		switch {
		case r < 30:
			return 2
		case r < 70:
			return 1
		default:
			return 0
		}
	case level < 1000:
		switch {
		case r < 25:
			return 3
		case r < 55:
			return 2
		case r < 80:
			return 1
		default:
			return 0
		}
	default:
		// Up to five sinks from level 1000 on.
		return int(mix64(uint64(level)+sinkCountSalt) % 6)
	}
}

// IsSinkRequiredClass partitions levels into those whose intended
// solution structurally depends on sink usage (roughly an even split).
// The generator verifies the property by re-solving with sink moves
// disabled and retries until it holds.
func (e *LevelDifficultyEngine) IsSinkRequiredClass(level int) bool {
	return mix64(uint64(level)+sinkClassSalt)&1 == 0
}

// clampSinkCount limits the policy count to what the bottle plan can
// carry: non-required sinks live on empty bottles; a required level
// additionally hosts one sink on a color bottle. At least one empty
// bottle always stays a non-sink, because the reverse scrambler needs
// a receiver with free space and sinks never receive.
func clampSinkCount(count, empties int, required bool) int {
	limit := empties - 1
	if required {
		limit++
	}
	if limit < 0 {
		limit = 0
	}
	if count > limit {
		return limit
	}
	return count
}

func colorCountForLevel(level int) int {
	switch {
	case level < 10:
		return 3
	case level < 60:
		return 4
	case level < 200:
		return 5
	case level < 600:
		return 6
	default:
		return 7
	}
}

// ratingForLevel is linear over levels 1..200, then held at the ceiling.
func ratingForLevel(level int) int {
	if level >= ratingCeilLevel {
		return 100
	}
	return 1 + (level-1)*99/(ratingCeilLevel-1)
}

// scrambleMovesForLevel scales the reverse-pour count with level while
// keeping the solver's search space tractable.
func scrambleMovesForLevel(level, colors int) int {
	extra := level / 12
	if extra > 16 {
		extra = 16
	}
	return 6 + colors*2 + extra
}
