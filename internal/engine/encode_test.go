package engine

import "testing"

func TestEncodeDeterministic(t *testing.T) {
	s := NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorBlue),
		NewBottle(4),
	})
	if Encode(s) != Encode(s) {
		t.Error("Encode is not deterministic")
	}
	if EncodeCanonical(s) != EncodeCanonical(s) {
		t.Error("EncodeCanonical is not deterministic")
	}
}

// Bottle position is part of state identity: identical contents in
// different bottle indices must produce distinct keys.
func TestEncodePositionSensitive(t *testing.T) {
	a := NewLevelState([]Bottle{
		NewFullBottle(4, ColorRed),
		NewBottle(4),
	})
	b := NewLevelState([]Bottle{
		NewBottle(4),
		NewFullBottle(4, ColorRed),
	})
	if Encode(a) == Encode(b) {
		t.Error("swapped bottle positions share an Encode key")
	}
	if EncodeCanonical(a) == EncodeCanonical(b) {
		t.Error("swapped bottle positions share an EncodeCanonical key")
	}
}

func TestEncodeSlotSensitive(t *testing.T) {
	a := NewLevelState([]Bottle{NewFilledBottle(4, ColorRed, ColorBlue)})
	b := NewLevelState([]Bottle{NewFilledBottle(4, ColorBlue, ColorRed)})
	if Encode(a) == Encode(b) {
		t.Error("different slot orders share a key")
	}
}

// EncodeCanonical folds the sink flag into the key; Encode deliberately
// does not.
func TestEncodeCanonicalSinkFlag(t *testing.T) {
	plain := NewLevelState([]Bottle{NewBottle(4), NewFullBottle(4, ColorRed)})
	sunk := NewLevelState([]Bottle{NewSinkBottle(4), NewFullBottle(4, ColorRed)})

	if Encode(plain) != Encode(sunk) {
		t.Error("Encode should ignore the sink flag")
	}
	if EncodeCanonical(plain) == EncodeCanonical(sunk) {
		t.Error("EncodeCanonical must distinguish sink bottles")
	}
}
