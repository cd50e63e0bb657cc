package poll

import "sort"

// ApprovedCounts returns the approved-vote count per player id. Every player
// is present with at least 0; orphaned votes count toward no one. Counts are
// recomputed on every call and never stored.
func ApprovedCounts(players []Player, votes []Vote) map[string]int {
	counts := make(map[string]int, len(players))
	for _, p := range players {
		counts[p.ID] = 0
	}
	for _, v := range votes {
		if v.Status != StatusApproved {
			continue
		}
		if _, ok := counts[v.PlayerID]; ok {
			counts[v.PlayerID]++
		}
	}
	return counts
}

// RankedPlayers returns players ordered by approved-vote count, descending.
// The sort is stable so ties keep insertion order.
func RankedPlayers(players []Player, votes []Vote) []Player {
	counts := ApprovedCounts(players, votes)

	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].ID] > counts[ranked[j].ID]
	})
	return ranked
}
