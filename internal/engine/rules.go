package engine

// IsValidMove reports whether pouring from bottle source into bottle
// target is legal: the indices must differ and be in range, the source
// must be a non-empty non-sink bottle, the target must have free space,
// and a non-empty target's top color must match the source's top color.
func IsValidMove(s *LevelState, source, target int) bool {
	if source == target {
		return false
	}
	if source < 0 || source >= len(s.Bottles) || target < 0 || target >= len(s.Bottles) {
		return false
	}
	src := &s.Bottles[source]
	tgt := &s.Bottles[target]
	if src.IsSink() || src.IsEmpty() || tgt.IsFull() {
		return false
	}
	srcTop, _ := src.TopColor()
	if tgtTop, ok := tgt.TopColor(); ok && tgtTop != srcTop {
		return false
	}
	return true
}

// PourAmount returns the number of units a pour from source into target
// would transfer: the maximal contiguous run of the source's top color,
// clamped to the target's free space. Returns 0 for an invalid move.
// Side-effect-free.
func PourAmount(s *LevelState, source, target int) int {
	if !IsValidMove(s, source, target) {
		return 0
	}
	run := s.Bottles[source].TopRunLength()
	if free := s.Bottles[target].FreeSpace(); run > free {
		return free
	}
	return run
}

// LegalMoves appends every legal move from the state to dst and returns
// it. When allowSinkMoves is false, moves targeting a sink are excluded;
// sinks are never legal sources regardless of the flag. Moves are
// enumerated in (source, target) index order, which keeps the solver's
// expansion order deterministic.
func LegalMoves(s *LevelState, allowSinkMoves bool, dst []Move) []Move {
	n := len(s.Bottles)
	for src := 0; src < n; src++ {
		for tgt := 0; tgt < n; tgt++ {
			if !allowSinkMoves && s.Bottles[tgt].IsSink() {
				continue
			}
			if IsValidMove(s, src, tgt) {
				dst = append(dst, Move{Source: src, Target: tgt})
			}
		}
	}
	return dst
}
