package main

import (
	"sort"
)

// rankPeriods ranks entities within each period by Raw descending and sets
// the top-K membership flags. Ties all take the worst position covered by
// the tie group: raw values [10, 10, 8] rank [2, 2, 3].
func rankPeriods(records []Record) {
	byPeriod := make(map[int][]int)
	for i, r := range records {
		byPeriod[r.Period] = append(byPeriod[r.Period], i)
	}
	for _, idxs := range byPeriod {
		sort.Slice(idxs, func(a, b int) bool {
			ra, rb := records[idxs[a]], records[idxs[b]]
			if ra.Raw != rb.Raw {
				return ra.Raw > rb.Raw
			}
			return ra.Entity < rb.Entity
		})
		// Walk tie groups; every member gets the group's last position.
		for start := 0; start < len(idxs); {
			end := start + 1
			for end < len(idxs) && records[idxs[end]].Raw == records[idxs[start]].Raw {
				end++
			}
			rank := end // positions are 1-based, so the last position is end
			for j := start; j < end; j++ {
				rec := &records[idxs[j]]
				rec.Rank = rank
				rec.Top1 = rank <= 1
				rec.Top3 = rank <= 3
				rec.Top5 = rank <= 5
			}
			start = end
		}
	}
}
