package simulation

import (
	"math"
	"testing"
)

// AssertBudgetAtRedistribution asserts that every redistribution turn
// ends with the total pressure equal to the configured budget.
func AssertBudgetAtRedistribution(t *testing.T, result Result, tolerance float64) {
	t.Helper()
	redistributions := 0
	for _, ts := range result.Turns {
		if !ts.Result.Redistributed {
			continue
		}
		redistributions++
		if math.Abs(ts.Total-result.Config.TotalBudget) > tolerance {
			t.Errorf("turn %d: total %.9f after redistribution, want budget %.9f",
				ts.Result.Turn, ts.Total, result.Config.TotalBudget)
		}
	}
	if redistributions == 0 {
		t.Error("scenario never redistributed; run more turns")
	}
}

// AssertTotalBounded asserts that the total pressure never exceeds maxTotal
// in any turn.
func AssertTotalBounded(t *testing.T, result Result, maxTotal float64) {
	t.Helper()
	for _, ts := range result.Turns {
		if ts.Total > maxTotal {
			t.Errorf("turn %d: total %.6f > bound %.6f", ts.Result.Turn, ts.Total, maxTotal)
		}
	}
}

// AssertNeverStarves asserts that a node's pressure stays above floor in
// every turn after afterTurn.
func AssertNeverStarves(t *testing.T, result Result, id string, floor float64, afterTurn int) {
	t.Helper()
	for _, ts := range result.Turns {
		if ts.Result.Turn < afterTurn {
			continue
		}
		p, ok := ts.Pressures[id]
		if !ok {
			t.Fatalf("turn %d: node %s not in snapshot", ts.Result.Turn, id)
		}
		if p <= floor {
			t.Errorf("turn %d: pressure(%s) = %.9f, must stay above %.9f", ts.Result.Turn, id, p, floor)
		}
	}
}

// AssertReachesTier asserts that a node's pressure crosses threshold in
// at least one turn.
func AssertReachesTier(t *testing.T, result Result, id string, threshold float64) {
	t.Helper()
	for _, ts := range result.Turns {
		if ts.Pressures[id] >= threshold {
			return
		}
	}
	t.Errorf("node %s never reached pressure %.4f", id, threshold)
}

// AssertDominates asserts that node a holds strictly more pressure than
// node b in every turn after afterTurn.
func AssertDominates(t *testing.T, result Result, a, b string, afterTurn int) {
	t.Helper()
	for _, ts := range result.Turns {
		if ts.Result.Turn < afterTurn {
			continue
		}
		if ts.Pressures[a] <= ts.Pressures[b] {
			t.Errorf("turn %d: pressure(%s)=%.6f <= pressure(%s)=%.6f",
				ts.Result.Turn, a, ts.Pressures[a], b, ts.Pressures[b])
		}
	}
}
