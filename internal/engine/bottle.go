package engine

import "strings"

// Bottle is a fixed-capacity ordered container of color segments.
// Slots are stored bottom-to-top; filled slots are always contiguous
// from the bottom (gravity semantics). A sink bottle may receive pours
// but can never be a pour source.
type Bottle struct {
	capacity int
	slots    []Color // len(slots) == Count; index 0 is the bottom
	sink     bool
}

// NewBottle creates an empty bottle with the given capacity.
func NewBottle(capacity int) Bottle {
	if capacity < 1 {
		capacity = 1
	}
	return Bottle{
		capacity: capacity,
		slots:    make([]Color, 0, capacity),
	}
}

// NewSinkBottle creates an empty sink bottle with the given capacity.
func NewSinkBottle(capacity int) Bottle {
	b := NewBottle(capacity)
	b.sink = true
	return b
}

// NewFilledBottle creates a bottle holding the given colors bottom-to-top.
// Panics if more colors than capacity are supplied; construction errors
// here are programmer errors, not runtime conditions.
func NewFilledBottle(capacity int, colors ...Color) Bottle {
	b := NewBottle(capacity)
	if len(colors) > capacity {
		panic("engine: bottle contents exceed capacity")
	}
	b.slots = append(b.slots, colors...)
	return b
}

// NewFilledSinkBottle creates a sink bottle holding the given colors
// bottom-to-top.
func NewFilledSinkBottle(capacity int, colors ...Color) Bottle {
	b := NewFilledBottle(capacity, colors...)
	b.sink = true
	return b
}

// NewFullBottle creates a bottle filled to capacity with a single color.
func NewFullBottle(capacity int, c Color) Bottle {
	b := NewBottle(capacity)
	for i := 0; i < capacity; i++ {
		b.slots = append(b.slots, c)
	}
	return b
}

// Capacity returns the number of slots in the bottle.
func (b *Bottle) Capacity() int { return b.capacity }

// Count returns the number of filled slots.
func (b *Bottle) Count() int { return len(b.slots) }

// IsEmpty returns true if no slot is filled.
func (b *Bottle) IsEmpty() bool { return len(b.slots) == 0 }

// IsFull returns true if every slot is filled.
func (b *Bottle) IsFull() bool { return len(b.slots) == b.capacity }

// IsSink reports whether this bottle is a sink (receive-only).
func (b *Bottle) IsSink() bool { return b.sink }

// FreeSpace returns the number of unfilled slots.
func (b *Bottle) FreeSpace() int { return b.capacity - len(b.slots) }

// TopColor returns the color of the highest filled slot.
// The second return value is false for an empty bottle.
func (b *Bottle) TopColor() (Color, bool) {
	if len(b.slots) == 0 {
		return 0, false
	}
	return b.slots[len(b.slots)-1], true
}

// TopRunLength returns the length of the maximal contiguous run of the
// top color, or 0 for an empty bottle.
func (b *Bottle) TopRunLength() int {
	n := len(b.slots)
	if n == 0 {
		return 0
	}
	top := b.slots[n-1]
	run := 1
	for i := n - 2; i >= 0 && b.slots[i] == top; i-- {
		run++
	}
	return run
}

// IsMonochrome returns true if every filled slot shares one color.
// An empty bottle is not monochrome.
func (b *Bottle) IsMonochrome() bool {
	if len(b.slots) == 0 {
		return false
	}
	first := b.slots[0]
	for _, c := range b.slots[1:] {
		if c != first {
			return false
		}
	}
	return true
}

// IsSolvedBottle returns true if the bottle is full and monochrome.
func (b *Bottle) IsSolvedBottle() bool {
	return b.IsFull() && b.IsMonochrome()
}

// IsSingleColorOrEmpty returns true if the bottle is empty or monochrome.
func (b *Bottle) IsSingleColorOrEmpty() bool {
	return b.IsEmpty() || b.IsMonochrome()
}

// ColorAt returns the color at slot index i (0 = bottom).
// The second return value is false if the slot is unfilled or out of range.
func (b *Bottle) ColorAt(i int) (Color, bool) {
	if i < 0 || i >= len(b.slots) {
		return 0, false
	}
	return b.slots[i], true
}

// ColorVolumes returns the number of units held per color.
func (b *Bottle) ColorVolumes() map[Color]int {
	volumes := make(map[Color]int, 2)
	for _, c := range b.slots {
		volumes[c]++
	}
	return volumes
}

// DistinctColors returns the number of distinct colors in the bottle.
func (b *Bottle) DistinctColors() int {
	seen := [ColorCount]bool{}
	n := 0
	for _, c := range b.slots {
		if !seen[c] {
			seen[c] = true
			n++
		}
	}
	return n
}

// PourInto transfers amount units of the top color from b into target.
// The caller is responsible for amount being legal (at most the top run
// length and at most target's free space); PourInto preserves the
// bottom-up contiguity invariant by construction.
func (b *Bottle) PourInto(target *Bottle, amount int) {
	if amount <= 0 {
		return
	}
	top, ok := b.TopColor()
	if !ok {
		return
	}
	if amount > b.TopRunLength() || amount > target.FreeSpace() {
		return
	}
	b.slots = b.slots[:len(b.slots)-amount]
	for i := 0; i < amount; i++ {
		target.slots = append(target.slots, top)
	}
}

// takeTop removes amount units from the top of the bottle and returns
// their color. Used by the scrambler, which places units under its own
// invertibility constraints.
func (b *Bottle) takeTop(amount int) (Color, bool) {
	if amount <= 0 || amount > b.TopRunLength() {
		return 0, false
	}
	top := b.slots[len(b.slots)-1]
	b.slots = b.slots[:len(b.slots)-amount]
	return top, true
}

// putTop appends amount units of color c to the top of the bottle.
func (b *Bottle) putTop(c Color, amount int) bool {
	if amount <= 0 || amount > b.FreeSpace() {
		return false
	}
	for i := 0; i < amount; i++ {
		b.slots = append(b.slots, c)
	}
	return true
}

// Clone returns a deep copy of the bottle.
func (b *Bottle) Clone() Bottle {
	slots := make([]Color, len(b.slots), b.capacity)
	copy(slots, b.slots)
	return Bottle{
		capacity: b.capacity,
		slots:    slots,
		sink:     b.sink,
	}
}

// String returns a compact bottom-to-top dump, e.g. "[RRBB]" or "[RR__]!"
// for a sink.
func (b *Bottle) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, c := range b.slots {
		sb.WriteRune(c.Char())
	}
	for i := len(b.slots); i < b.capacity; i++ {
		sb.WriteByte('_')
	}
	sb.WriteByte(']')
	if b.sink {
		sb.WriteByte('!')
	}
	return sb.String()
}
