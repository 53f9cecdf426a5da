package railrl

// routing.go decides, for a passenger at an origin bound for a
// destination on a given line, whether the next hop is reachable on
// the same line or requires a transfer.  Decisions are made from the
// precomputed policy/direction tables only: this package never
// computes a shortest path.  It does, once at Init, build a
// connectivity graph over the same tables purely to check that the
// policy destinations of each train's starting station are reachable,
// in the manner of a network topology's connectivity check.

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// RouteDecision is the result of routing a passenger one hop closer
// to their destination.
type RouteDecision struct {
	Transfer  bool
	Via       int // meaningful only if Transfer
	Direction int
}

// route implements the policy lookup of the routing component: same-line
// candidates are preferred, ties among remaining candidates are broken
// by the Simulation's own RNG stream so that episodes are reproducible
// given a seed.
func (sim *Simulation) route(from, to, currentLine int) RouteDecision {
	candidates := sim.tables.policy[from][to]
	if len(candidates) == 0 {
		invariantPanic("route", "no policy candidates from %d to %d", from, to)
	}

	next := candidates[0]
	if len(candidates) > 1 {
		chosen := -1
		if currentLine != -1 {
			for _, c := range candidates {
				if sim.tables.lineIDOfStation[c] == currentLine {
					chosen = c
					break
				}
			}
		}
		if chosen == -1 {
			idx := int(sim.rng.RandU01() * float64(len(candidates)))
			if idx >= len(candidates) {
				idx = len(candidates) - 1
			}
			chosen = candidates[idx]
		}
		next = chosen
	}

	d := sim.tables.directions[from][next]
	if d != -1 {
		return RouteDecision{Transfer: false, Direction: d}
	}

	viaDir := sim.tables.directions[next][to]
	return RouteDecision{Transfer: true, Via: next, Direction: viaDir}
}

// buildConnectivityGraph turns the directions/transferTime tables into
// an undirected graph: an edge exists between i and j if they are
// adjacent on a line (directions[i][j] != -1) or directly transferable
// (transferTime[i][j] >= 0).
func buildConnectivityGraph(t *staticTables) graph.Graph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	nodes := make(map[int]simple.Node, t.totalStations)
	for i := 0; i < t.totalStations; i++ {
		nodes[i] = simple.Node(i)
		g.AddNode(nodes[i])
	}

	for i := 0; i < t.totalStations; i++ {
		for j := 0; j < t.totalStations; j++ {
			if i == j {
				continue
			}
			if t.directions[i][j] != -1 || t.transferTime[i][j] >= 0 {
				g.SetWeightedEdge(simple.WeightedEdge{F: nodes[i], T: nodes[j], W: 1.0})
			}
		}
	}
	return g
}

// checkConnectivity verifies that every station that appears as the
// starting point of a train can reach every destination of a policy
// entry whose origin is that same station; policy entries from other
// origins are not checked.  It performs a reachability
// search, never a shortest-path computation, matching the Non-goal that
// routing policies are precomputed inputs.
func checkConnectivity(t *staticTables) error {
	g := buildConnectivityGraph(t)

	reachable := func(from int) map[int64]bool {
		seen := map[int64]bool{int64(from): true}
		frontier := []int64{int64(from)}
		for len(frontier) > 0 {
			cur := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			to := g.From(cur)
			for to.Next() {
				nbr := to.Node().ID()
				if !seen[nbr] {
					seen[nbr] = true
					frontier = append(frontier, nbr)
				}
			}
		}
		return seen
	}

	starts := make(map[int]bool)
	for _, row := range t.startTrain {
		starts[row.StartingStation] = true
	}

	for from := range starts {
		seen := reachable(from)
		for i := 0; i < t.totalStations; i++ {
			for j := 0; j < t.totalStations; j++ {
				if len(t.policy[i][j]) == 0 {
					continue
				}
				if i != from {
					continue
				}
				if !seen[int64(j)] {
					return loadErrf("", "station %d unreachable from %d via any policy", j, from)
				}
			}
		}
	}
	return nil
}
