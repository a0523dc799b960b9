package engine

// Encode returns a canonical, collision-free key for the state's bottle
// configuration. The key is position-sensitive: two states that differ
// only in which bottle index holds which liquid produce different keys.
// One byte per slot (color+1, 0 for an unfilled slot) plus a capacity
// byte per bottle makes the mapping total and fixed-width for a fixed
// topology. Computed once per expanded search node, so it stays a single
// allocation.
func Encode(s *LevelState) string {
	size := 0
	for i := range s.Bottles {
		size += s.Bottles[i].Capacity() + 1
	}
	buf := make([]byte, 0, size)
	for i := range s.Bottles {
		b := &s.Bottles[i]
		buf = append(buf, byte(b.Capacity()))
		for j := 0; j < b.Capacity(); j++ {
			if c, ok := b.ColorAt(j); ok {
				buf = append(buf, byte(c)+1)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return string(buf)
}

// EncodeCanonical is Encode with the sink flag folded into each bottle's
// capacity byte, so two bottles with identical liquid contents but
// different sink status are provably distinguishable. Capacities stay
// well below 0x80, leaving the high bit free for the flag.
func EncodeCanonical(s *LevelState) string {
	size := 0
	for i := range s.Bottles {
		size += s.Bottles[i].Capacity() + 1
	}
	buf := make([]byte, 0, size)
	for i := range s.Bottles {
		b := &s.Bottles[i]
		head := byte(b.Capacity())
		if b.IsSink() {
			head |= 0x80
		}
		buf = append(buf, head)
		for j := 0; j < b.Capacity(); j++ {
			if c, ok := b.ColorAt(j); ok {
				buf = append(buf, byte(c)+1)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return string(buf)
}
