package engine

import "testing"

func metricsFixture() *LevelState {
	return NewLevelState([]Bottle{
		NewFilledBottle(4, ColorRed, ColorRed, ColorBlue, ColorBlue),
		NewFilledBottle(4, ColorBlue, ColorBlue, ColorRed, ColorRed),
		NewBottle(4),
		NewBottle(4),
	})
}

func TestComputeMetrics(t *testing.T) {
	s := metricsFixture()
	res := SolveWithPath(s, 200000, 2000, true)
	if !res.Solved() {
		t.Fatal("fixture should be solvable")
	}

	mc := NewMetricsComputer()
	m, err := mc.Compute(s, res.Path, true)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if m.ForcedMoveRatio < 0 || m.ForcedMoveRatio > 1 {
		t.Errorf("forced move ratio %v out of [0,1]", m.ForcedMoveRatio)
	}
	if m.AverageBranchingFactor < 1 {
		t.Errorf("branching factor %v below 1 on a solvable path", m.AverageBranchingFactor)
	}
	if m.EmptyBottleUsageRatio <= 0 {
		t.Error("fixture solution must use an empty bottle")
	}
	if m.MixedBottleCount != 2 {
		t.Errorf("mixed bottle count = %d, want 2", m.MixedBottleCount)
	}
	// Two mixed signatures plus one shared empty signature.
	if m.DistinctSignatureCount != 3 {
		t.Errorf("distinct signatures = %d, want 3", m.DistinctSignatureCount)
	}
	if m.TopColorVariety != 2 {
		t.Errorf("top color variety = %d, want 2", m.TopColorVariety)
	}
	if m.SolutionMultiplicity < 1 {
		t.Errorf("solution multiplicity = %d, want >= 1", m.SolutionMultiplicity)
	}
	if m.TrapScore < 0 || m.TrapScore > 1 {
		t.Errorf("trap score %v out of [0,1]", m.TrapScore)
	}
}

func TestComputeMetricsDeterministic(t *testing.T) {
	s := metricsFixture()
	res := SolveWithPath(s, 200000, 2000, true)
	if !res.Solved() {
		t.Fatal("fixture should be solvable")
	}

	mc := NewMetricsComputer()
	a, err := mc.Compute(s, res.Path, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := mc.Compute(s, res.Path, true)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("metrics differ across identical computations:\n%+v\n%+v", a, b)
	}
}

func TestComputeMetricsRejectsIllegalPath(t *testing.T) {
	s := metricsFixture()
	mc := NewMetricsComputer()

	// 0->1 is a color mismatch from the start position.
	_, err := mc.Compute(s, []Move{{Source: 0, Target: 1}}, true)
	if err == nil {
		t.Fatal("illegal path accepted")
	}
}

func TestComputeMetricsEmptyPath(t *testing.T) {
	s := NewLevelState([]Bottle{NewFullBottle(4, ColorRed), NewBottle(4)})
	mc := NewMetricsComputer()
	m, err := mc.Compute(s, nil, true)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if m.MixedBottleCount != 0 || m.TopColorVariety != 1 {
		t.Errorf("structural metrics wrong on solved state: %+v", m)
	}
}
