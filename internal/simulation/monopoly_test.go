package simulation

import (
	"testing"

	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

// Hammering one hub document must not let it monopolize the budget: the
// hub's pressure flows out along its edges every turn, its neighbors keep
// receiving a share, and redistribution keeps the system on budget.
func TestHubCannotMonopolize(t *testing.T) {
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name: "hub-monopoly",
		Edges: []EdgeSpec{
			{Source: "hub.md", Target: "a.md", Weight: 1.0},
			{Source: "hub.md", Target: "b.md", Weight: 1.0},
			{Source: "hub.md", Target: "c.md", Weight: 1.0},
		},
		Turns: 50,
		EventsFor: func(turn int) []session.Event {
			return []session.Event{{DocumentID: "hub.md"}}
		},
	})

	AssertBudgetAtRedistribution(t, result, 1e-9)
	AssertTotalBounded(t, result, result.Config.TotalBudget+result.Config.ActivationBoost)

	// Neighbors keep a living share of the budget.
	for _, id := range []string{"a.md", "b.md", "c.md"} {
		AssertNeverStarves(t, result, id, 0.05, 0)
	}

	// The hub itself drains through its out-edges each turn; resurrection
	// keeps it off zero rather than letting it hoard.
	AssertNeverStarves(t, result, "hub.md", result.Config.Resurrection.Threshold*0.99, 0)
}
