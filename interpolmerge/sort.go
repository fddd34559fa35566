package interpolmerge

import (
	"sort"

	"github.com/interpol/interpol"
)

// SortEvents sorts evs in place by ascending timestamp. The sort isn't stable:
// the relative order of events with equal timestamps is unspecified.
func SortEvents(evs []interpol.Event) {
	sort.Slice(evs, func(i, j int) bool {
		return evs[i].Timestamp() < evs[j].Timestamp()
	})
}
