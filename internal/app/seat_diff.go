package app

import "sort"

// diffSeats computes which seats were added and which were removed between
// two seat lists. Both inputs are sorted and deduplicated first, so the result
// does not depend on caller ordering, then walked with a two-pointer merge.
func diffSeats(oldSeats, newSeats []string) (added, removed []string) {
	old := sortedUnique(oldSeats)
	upd := sortedUnique(newSeats)

	i, j := 0, 0
	for i < len(old) && j < len(upd) {
		switch {
		case old[i] == upd[j]:
			i++
			j++
		case upd[j] < old[i]:
			added = append(added, upd[j])
			j++
		default:
			removed = append(removed, old[i])
			i++
		}
	}
	added = append(added, upd[j:]...)
	removed = append(removed, old[i:]...)
	return added, removed
}

func sortedUnique(seats []string) []string {
	out := append([]string(nil), seats...)
	sort.Strings(out)
	n := 0
	for i, s := range out {
		if i > 0 && s == out[i-1] {
			continue
		}
		out[n] = s
		n++
	}
	return out[:n]
}
