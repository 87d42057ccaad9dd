package group_test

import (
	"fmt"

	"github.com/katalvlaran/ahpkit/group"
	"github.com/katalvlaran/ahpkit/pairwise"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleAggregate
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Two judges submit identical judgments over three criteria.
//	Geometric-mean aggregation reproduces the shared vector and reports
//	full consensus.
func ExampleAggregate() {
	prefs := map[string]float64{"roi": 0.5, "risk": 0.3, "effort": 0.2}
	order := []string{"roi", "risk", "effort"}
	alice, _ := pairwise.FromPreferences(order, prefs)
	bob, _ := pairwise.FromPreferences(order, prefs)

	res, err := group.Aggregate(
		map[string]*pairwise.Matrix{"alice": alice, "bob": bob},
		group.GeometricMean, pairwise.GeometricMean,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Printf("group=[%.3f %.3f %.3f]\n", res.GroupWeights[0], res.GroupWeights[1], res.GroupWeights[2])
	fmt.Printf("consensus=%.2f\n", res.Consensus)
	// Output:
	// group=[0.500 0.300 0.200]
	// consensus=1.00
}
