package simulation

import (
	"testing"

	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

// An ignored document decays toward the resurrection threshold but never
// dies: once it crosses the threshold it is resurrected back to the
// configured pressure, and the cooldown clamps it at the floor afterward.
func TestIgnoredDocumentIsResurrected(t *testing.T) {
	cfg := pressure.DefaultConfig()
	// Redistribution would keep topping the ignored node up; push it out
	// of the window so pure decay dynamics are visible.
	cfg.RedistributeInterval = 1000

	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:   "resurrection",
		Nodes:  []string{"worked.md", "ignored.md"},
		Config: &cfg,
		Turns:  80,
		EventsFor: func(turn int) []session.Event {
			return []session.Event{{DocumentID: "worked.md"}}
		},
	})

	// The worked document always outranks the ignored one.
	AssertDominates(t, result, "worked.md", "ignored.md", 0)

	// The ignored document never starves below the threshold floor.
	AssertNeverStarves(t, result, "ignored.md", cfg.Resurrection.Threshold*0.99, 0)

	// And it comes back: at some turn it sits at the resurrection pressure.
	AssertReachesTier(t, result, "ignored.md", cfg.Resurrection.Pressure)

	// Before the first resurrection the trajectory is strictly decreasing.
	decayed := false
	for i := 1; i < len(result.Turns); i++ {
		p := result.Turns[i].Pressures["ignored.md"]
		prev := result.Turns[i-1].Pressures["ignored.md"]
		if p == cfg.Resurrection.Pressure && p > prev {
			decayed = true
			break
		}
		if p >= prev {
			t.Fatalf("turn %d: ignored.md rose from %.9f to %.9f before resurrection",
				result.Turns[i].Result.Turn, prev, p)
		}
	}
	if !decayed {
		t.Error("ignored.md never hit the resurrection pressure")
	}
}
