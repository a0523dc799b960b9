package engine

import "time"

// SolveStatus is the outcome of a solve call.
type SolveStatus uint8

const (
	// StatusSolved means a win state was reached in OptimalMoves pours.
	StatusSolved SolveStatus = iota
	// StatusNotSolved means no win state was found. Check
	// SolveResult.Exhausted to tell a budget stop from a proven
	// unsolvable state.
	StatusNotSolved
)

// String returns the string representation of a status.
func (st SolveStatus) String() string {
	switch st {
	case StatusSolved:
		return "solved"
	case StatusNotSolved:
		return "not-solved"
	default:
		return "unknown"
	}
}

// SolveResult carries the outcome of a breadth-first search.
type SolveResult struct {
	Status        SolveStatus
	OptimalMoves  int    // -1 when not solved
	Path          []Move // nil unless requested via SolveWithPath
	NodesExpanded int
	Elapsed       time.Duration

	// Exhausted is true when the node or time budget stopped the search.
	// When false and Status is not-solved, the full reachable space was
	// explored and the state is proven unsolvable. Budget exhaustion is
	// a generator-retry signal, not a player-facing error.
	Exhausted bool
}

// Solved reports whether the search reached a win state.
func (r SolveResult) Solved() bool { return r.Status == StatusSolved }

// ProvenUnsolvable reports whether the full reachable space was explored
// without finding a win state.
func (r SolveResult) ProvenUnsolvable() bool {
	return r.Status == StatusNotSolved && !r.Exhausted
}

// Solve runs a breadth-first search over the pour-move graph from the
// given state and returns the minimum number of moves to a win state.
// Nodes are bottle configurations only; move counters and level metadata
// do not contribute to state identity. Edges are all moves passing
// IsValidMove, with sink targets excluded when allowSinkMoves is false
// (sinks are never sources regardless). BFS explores strictly by
// increasing depth, so the first win found is minimal; for a fixed state
// and flag the returned OptimalMoves is always identical.
func Solve(s *LevelState, maxNodes int, maxMillis int64, allowSinkMoves bool) SolveResult {
	return search(s, maxNodes, maxMillis, allowSinkMoves, false)
}

// SolveOptimal is Solve reduced to the optimal move count (-1 when the
// search did not reach a win state).
func SolveOptimal(s *LevelState, maxNodes int, maxMillis int64, allowSinkMoves bool) int {
	return search(s, maxNodes, maxMillis, allowSinkMoves, false).OptimalMoves
}

// SolveWithPath is Solve plus the move sequence of one optimal solution,
// reconstructed from parent back-pointers recorded at each node's first
// visitation.
func SolveWithPath(s *LevelState, maxNodes int, maxMillis int64, allowSinkMoves bool) SolveResult {
	return search(s, maxNodes, maxMillis, allowSinkMoves, true)
}

type searchNode struct {
	state  *LevelState
	parent int32
	move   Move
	depth  int32
}

func search(start *LevelState, maxNodes int, maxMillis int64, allowSinkMoves, wantPath bool) SolveResult {
	began := time.Now()
	result := SolveResult{OptimalMoves: -1, Status: StatusNotSolved}

	if start.IsWin() {
		result.Status = StatusSolved
		result.OptimalMoves = 0
		if wantPath {
			result.Path = []Move{}
		}
		result.Elapsed = time.Since(began)
		return result
	}

	nodes := make([]searchNode, 0, 1024)
	nodes = append(nodes, searchNode{state: start.Clone(), parent: -1})

	visited := make(map[string]struct{}, 1024)
	visited[EncodeCanonical(start)] = struct{}{}

	moves := make([]Move, 0, 32)
	head := 0

	for head < len(nodes) {
		if maxNodes > 0 && result.NodesExpanded >= maxNodes {
			result.Exhausted = true
			break
		}
		if maxMillis > 0 && result.NodesExpanded%64 == 0 &&
			time.Since(began).Milliseconds() > maxMillis {
			result.Exhausted = true
			break
		}

		current := head
		head++
		result.NodesExpanded++

		moves = LegalMoves(nodes[current].state, allowSinkMoves, moves[:0])
		for _, m := range moves {
			next := nodes[current].state.Clone()
			amount := PourAmount(next, m.Source, m.Target)
			next.Bottles[m.Source].PourInto(&next.Bottles[m.Target], amount)

			key := EncodeCanonical(next)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			depth := nodes[current].depth + 1
			if next.IsWin() {
				result.Status = StatusSolved
				result.OptimalMoves = int(depth)
				if wantPath {
					result.Path = reconstructPath(nodes, int32(current), m)
				}
				result.Elapsed = time.Since(began)
				return result
			}
			nodes = append(nodes, searchNode{
				state:  next,
				parent: int32(current),
				move:   m,
				depth:  depth,
			})
		}
	}

	result.Elapsed = time.Since(began)
	return result
}

// reconstructPath walks parent back-pointers from the node that produced
// the win and returns the move sequence in play order.
func reconstructPath(nodes []searchNode, parent int32, last Move) []Move {
	path := []Move{last}
	for i := parent; i > 0; i = nodes[i].parent {
		path = append(path, nodes[i].move)
	}
	// Reverse into play order.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// CountOptimalSolutions counts distinct shortest solutions, capped at
// limit, by a bounded layer-by-layer traversal that accumulates path
// multiplicity per state. Used by the metrics pipeline to estimate
// solution multiplicity; not part of the player-facing surface.
func CountOptimalSolutions(s *LevelState, optimal int, maxNodes int, limit int, allowSinkMoves bool) int {
	if optimal < 0 {
		return 0
	}
	if optimal == 0 {
		return 1
	}
	if limit < 1 {
		limit = 1
	}

	// Layers are kept as slices in insertion order so the bounded
	// traversal stays deterministic even when the node budget cuts a
	// layer short.
	layer := []*layerEntry{{state: s.Clone(), ways: 1}}
	expanded := 0
	moves := make([]Move, 0, 32)

	for depth := 1; depth <= optimal; depth++ {
		nextLayer := make([]*layerEntry, 0, len(layer)*2)
		nextIndex := make(map[string]int, len(layer)*2)
		for _, entry := range layer {
			expanded++
			if maxNodes > 0 && expanded > maxNodes {
				return countLayerWins(nextLayer, limit)
			}
			moves = LegalMoves(entry.state, allowSinkMoves, moves[:0])
			for _, m := range moves {
				next := entry.state.Clone()
				amount := PourAmount(next, m.Source, m.Target)
				next.Bottles[m.Source].PourInto(&next.Bottles[m.Target], amount)
				key := EncodeCanonical(next)
				if at, ok := nextIndex[key]; ok {
					existing := nextLayer[at]
					existing.ways += entry.ways
					if existing.ways > limit {
						existing.ways = limit
					}
				} else {
					nextIndex[key] = len(nextLayer)
					nextLayer = append(nextLayer, &layerEntry{state: next, ways: entry.ways})
				}
			}
		}
		layer = nextLayer
	}
	return countLayerWins(layer, limit)
}

type layerEntry struct {
	state *LevelState
	ways  int
}

func countLayerWins(layer []*layerEntry, limit int) int {
	total := 0
	for _, entry := range layer {
		if entry.state.IsWin() {
			total += entry.ways
			if total >= limit {
				return limit
			}
		}
	}
	return total
}
