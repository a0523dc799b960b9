package engine

import (
	"errors"
	"testing"
)

func TestIsWinStrict(t *testing.T) {
	// Two bottles, each exactly full and monochrome with different
	// colors: a win.
	win := NewLevelState([]Bottle{
		NewFullBottle(4, ColorRed),
		NewFullBottle(4, ColorBlue),
		NewBottle(4),
	})
	if !win.IsWin() {
		t.Error("full monochrome bottles should be a win")
	}

	// One bottle holding 3 of 4 units of one color: not a win, even
	// though the contents are sorted.
	partial := NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorRed, ColorRed),
		NewFullBottle(4, ColorBlue),
	})
	if partial.IsWin() {
		t.Error("non-full monochrome bottle must not count as a win")
	}

	// A mixed non-empty bottle blocks the win regardless of the rest.
	mixed := NewLevelState([]Bottle{
		NewFullBottle(4, ColorRed),
		NewFilledBottle(4, ColorBlue, ColorGreen, ColorGreen, ColorGreen),
	})
	if mixed.IsWin() {
		t.Error("mixed bottle must not count as a win")
	}
}

func TestTryApplyMove(t *testing.T) {
	s := NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorRed, ColorBlue, ColorBlue),
		NewBottle(4),
	})

	applied, amount := s.TryApplyMove(0, 1)
	if !applied || amount != 2 {
		t.Fatalf("TryApplyMove = %v/%d, want true/2", applied, amount)
	}
	if s.MovesUsed != 1 {
		t.Errorf("MovesUsed = %d, want 1", s.MovesUsed)
	}

	// Illegal move leaves the counter alone.
	applied, amount = s.TryApplyMove(0, 0)
	if applied || amount != 0 {
		t.Errorf("self-move should be rejected, got %v/%d", applied, amount)
	}
	if s.MovesUsed != 1 {
		t.Errorf("MovesUsed changed on rejected move: %d", s.MovesUsed)
	}
}

func TestTryApplyMoveSinkNeverSource(t *testing.T) {
	sink := NewSinkBottle(4)
	sink.putTop(ColorRed, 2)
	s := NewLevelState([]Bottle{sink, NewBottle(4)})

	if applied, _ := s.TryApplyMove(0, 1); applied {
		t.Error("sink bottle must never be a pour source")
	}
	if applied, _ := s.TryApplyMove(1, 0); applied {
		t.Error("empty source should be rejected")
	}
}

func TestValidateVolumeInvariant(t *testing.T) {
	ok := NewLevelState([]Bottle{
		NewFullBottle(4, ColorRed),
		NewBottle(4),
	})
	if err := ok.Validate(); err != nil {
		t.Errorf("valid state rejected: %v", err)
	}

	// Three red units match no bottle capacity.
	bad := NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorRed, ColorRed),
		NewBottle(4),
	})
	err := bad.Validate()
	if err == nil {
		t.Fatal("volume mismatch not detected")
	}
	var se *StructuralError
	if !errors.As(err, &se) || se.Code != "VOLUME_MISMATCH" {
		t.Errorf("expected VOLUME_MISMATCH, got %v", err)
	}
}

func TestValidateMixedSink(t *testing.T) {
	sink := NewSinkBottle(4)
	sink.putTop(ColorRed, 2)
	sink.putTop(ColorBlue, 2)
	s := NewLevelState([]Bottle{
		sink,
		NewFilledBottle(4, ColorRed, ColorRed),
		NewFilledBottle(4, ColorBlue, ColorBlue),
	})

	err := s.Validate()
	if err == nil {
		t.Fatal("mixed sink not detected")
	}
	var se *StructuralError
	if !errors.As(err, &se) || se.Code != "MIXED_SINK" {
		t.Errorf("expected MIXED_SINK, got %v", err)
	}
}

func TestPourPreservesContiguity(t *testing.T) {
	s := NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorBlue, ColorBlue),
		NewFilledBottle(4, ColorBlue),
		NewBottle(4),
	})

	for _, mv := range []Move{{0, 1}, {0, 2}, {1, 2}} {
		if applied, _ := s.TryApplyMove(mv.Source, mv.Target); !applied {
			continue
		}
		for i := range s.Bottles {
			b := &s.Bottles[i]
			for j := 0; j < b.Count(); j++ {
				if _, ok := b.ColorAt(j); !ok {
					t.Fatalf("gap inside bottle %d after %s", i, mv)
				}
			}
		}
	}
}
