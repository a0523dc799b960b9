package engine

import "testing"

func TestGetProfileDeterministic(t *testing.T) {
	e := NewLevelDifficultyEngine()
	for _, level := range []int{1, 19, 20, 77, 100, 299, 300, 999, 1000, 4242} {
		a := e.GetProfile(level)
		b := e.GetProfile(level)
		if a != b {
			t.Errorf("level %d: GetProfile not deterministic: %+v vs %+v", level, a, b)
		}
	}
}

func TestProfileCountsMonotonicAndBounded(t *testing.T) {
	e := NewLevelDifficultyEngine()
	prev := e.GetProfile(1)
	for level := 2; level <= 1500; level++ {
		p := e.GetProfile(level)
		if p.ColorCount < prev.ColorCount {
			t.Fatalf("level %d: color count decreased %d -> %d",
				level, prev.ColorCount, p.ColorCount)
		}
		if p.BottleCount < prev.BottleCount {
			t.Fatalf("level %d: bottle count decreased %d -> %d",
				level, prev.BottleCount, p.BottleCount)
		}
		if p.BottleCount > MaxBottles {
			t.Fatalf("level %d: bottle count %d exceeds grid limit", level, p.BottleCount)
		}
		if p.BottleCount != p.ColorCount+p.EmptyBottleCount {
			t.Fatalf("level %d: bottle count %d != colors %d + empties %d",
				level, p.BottleCount, p.ColorCount, p.EmptyBottleCount)
		}
		prev = p
	}
}

func TestDifficultyRatingCurve(t *testing.T) {
	e := NewLevelDifficultyEngine()
	if r := e.GetProfile(1).DifficultyRating; r != 1 {
		t.Errorf("level 1 rating = %d, want 1", r)
	}
	if r := e.GetProfile(200).DifficultyRating; r != 100 {
		t.Errorf("level 200 rating = %d, want 100", r)
	}

	prev := 0
	for level := 1; level <= 600; level++ {
		r := e.GetProfile(level).DifficultyRating
		if r < prev {
			t.Fatalf("level %d: rating decreased %d -> %d", level, prev, r)
		}
		if level >= 200 && r != 100 {
			t.Fatalf("level %d: rating %d, want held at ceiling 100", level, r)
		}
		prev = r
	}
}

func TestSinkCountPolicy(t *testing.T) {
	e := NewLevelDifficultyEngine()

	for level := 1; level < 20; level++ {
		if n := e.SinkCountForLevel(level); n != 0 {
			t.Errorf("level %d: sink count %d, want 0 below level 20", level, n)
		}
	}

	ones := 0
	for level := 20; level < 100; level++ {
		n := e.SinkCountForLevel(level)
		if n > 1 {
			t.Errorf("level %d: sink count %d exceeds band cap 1", level, n)
		}
		if n == 1 {
			ones++
		}
	}
	// Roughly 30% incidence over 80 levels.
	if ones < 12 || ones > 36 {
		t.Errorf("band B one-sink incidence %d/80 far from ~30%%", ones)
	}

	twos := 0
	for level := 100; level < 300; level++ {
		n := e.SinkCountForLevel(level)
		if n > 2 {
			t.Errorf("level %d: sink count %d exceeds band cap 2", level, n)
		}
		if n == 2 {
			twos++
		}
	}
	if twos < 30 || twos > 90 {
		t.Errorf("band C two-sink incidence %d/200 far from ~30%%", twos)
	}

	for level := 1000; level < 1200; level++ {
		if n := e.SinkCountForLevel(level); n > 5 {
			t.Errorf("level %d: sink count %d exceeds cap 5", level, n)
		}
	}

	// Deterministic: same level, same count.
	for _, level := range []int{25, 150, 500, 1100} {
		if e.SinkCountForLevel(level) != e.SinkCountForLevel(level) {
			t.Errorf("level %d: sink count not deterministic", level)
		}
	}
}

func TestSinkRequiredClassPartition(t *testing.T) {
	e := NewLevelDifficultyEngine()
	required := 0
	for level := 1; level <= 1000; level++ {
		if e.IsSinkRequiredClass(level) != e.IsSinkRequiredClass(level) {
			t.Fatalf("level %d: class not deterministic", level)
		}
		if e.IsSinkRequiredClass(level) {
			required++
		}
	}
	// Roughly even split.
	if required < 350 || required > 650 {
		t.Errorf("sink-required split %d/1000 far from even", required)
	}
}

func TestProfileSinksFitStructure(t *testing.T) {
	e := NewLevelDifficultyEngine()
	for level := 1; level <= 1500; level++ {
		p := e.GetProfile(level)
		limit := p.EmptyBottleCount - 1
		if p.SinkRequired {
			limit++
		}
		if p.SinkCount > limit {
			t.Errorf("level %d: %d sinks cannot fit %d empties (required=%v)",
				level, p.SinkCount, p.EmptyBottleCount, p.SinkRequired)
		}
		// The scrambler needs a non-sink empty bottle to receive its
		// first reverse pour; a profile without one cannot be realized.
		onEmpties := p.SinkCount
		if p.SinkRequired && p.SinkCount > 0 {
			onEmpties--
		}
		if p.EmptyBottleCount-onEmpties < 1 {
			t.Errorf("level %d: all %d empty bottles would be sinks",
				level, p.EmptyBottleCount)
		}
		if p.SinkCount == 0 && p.SinkRequired {
			t.Errorf("level %d: sink-required without sinks", level)
		}
		if p.ThemeID < 0 || p.ThemeID >= themeCount {
			t.Errorf("level %d: theme id %d out of range", level, p.ThemeID)
		}
	}
}

func TestBandForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  Band
	}{
		{1, BandA}, {19, BandA}, {20, BandB}, {99, BandB},
		{100, BandC}, {299, BandC}, {300, BandD}, {999, BandD},
		{1000, BandE}, {100000, BandE},
	}
	for _, tc := range cases {
		if got := BandForLevel(tc.level); got != tc.want {
			t.Errorf("BandForLevel(%d) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
