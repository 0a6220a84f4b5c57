// Package simulation provides a multi-turn test harness for validating
// emergent dynamics of the pressure cycle.
//
// The simulation exercises the real Engine and Session, no mocks.
// Scenarios are Go builders that construct pre-seeded graphs and run
// configurable numbers of turns, capturing per-turn pressure snapshots
// for property-based assertions.
//
// Usage:
//
//	func TestBudgetHolds(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:  "budget",
//	        Edges: []simulation.EdgeSpec{...},
//	        Turns: 50,
//	    })
//	    simulation.AssertBudgetAtRedistribution(t, result, 1e-9)
//	}
package simulation
