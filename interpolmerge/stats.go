package interpolmerge

import (
	"sort"

	"github.com/interpol/interpol"
)

// Stats summarizes a sequence of events, overall and per rank. Byte counts
// follow the direction of each transfer from the point of view of the rank
// that recorded it.
type Stats struct {
	Overall RankStats            `json:"overall"`
	Kinds   map[string]int       `json:"kinds"`
	Ranks   map[int32]*RankStats `json:"ranks"`
}

// RankStats summarizes the events recorded by a single rank, or by all ranks.
type RankStats struct {
	Events    int    `json:"events"`
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
	Cycles    uint64 `json:"cycles"` // total duration of calls that report one
	First     uint64 `json:"first_timestamp"`
	Last      uint64 `json:"last_timestamp"`
}

// NewStats returns empty stats.
func NewStats() *Stats {
	return &Stats{
		Kinds: map[string]int{},
		Ranks: map[int32]*RankStats{},
	}
}

// Observe the given events into the stats.
func (s *Stats) Observe(evs ...interpol.Event) {
	for _, ev := range evs {
		rs, ok := s.Ranks[ev.Rank()]
		if !ok {
			rs = &RankStats{}
			s.Ranks[ev.Rank()] = rs
		}

		s.Kinds[ev.Kind().String()]++
		rs.observe(ev)
		s.Overall.observe(ev)
	}
}

// Merge the other stats into this one.
func (s *Stats) Merge(other *Stats) {
	for kind, n := range other.Kinds {
		s.Kinds[kind] += n
	}

	for rank, theirs := range other.Ranks {
		ours, ok := s.Ranks[rank]
		if !ok {
			cp := *theirs
			s.Ranks[rank] = &cp
			continue
		}
		ours.merge(theirs)
	}

	s.Overall.merge(&other.Overall)
}

// RankList returns the observed ranks in ascending order.
func (s *Stats) RankList() []int32 {
	ranks := make([]int32, 0, len(s.Ranks))
	for rank := range s.Ranks {
		ranks = append(ranks, rank)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

// Span returns the number of cycles between the first and last observed
// timestamps.
func (rs *RankStats) Span() uint64 {
	if rs.Events <= 0 {
		return 0
	}
	return rs.Last - rs.First
}

func (rs *RankStats) observe(ev interpol.Event) {
	ts := ev.Timestamp()
	if rs.Events == 0 || ts < rs.First {
		rs.First = ts
	}
	if rs.Events == 0 || ts > rs.Last {
		rs.Last = ts
	}
	rs.Events++

	sent, recv, cycles := transfer(ev)
	rs.BytesSent += sent
	rs.BytesRecv += recv
	rs.Cycles += cycles
}

func (rs *RankStats) merge(other *RankStats) {
	if other.Events <= 0 {
		return
	}
	if rs.Events <= 0 {
		*rs = *other
		return
	}

	rs.First = min(rs.First, other.First)
	rs.Last = max(rs.Last, other.Last)
	rs.Events += other.Events
	rs.BytesSent += other.BytesSent
	rs.BytesRecv += other.BytesRecv
	rs.Cycles += other.Cycles
}

// transfer returns the bytes sent and received by the rank that recorded ev,
// and the duration of the call in cycles.
func transfer(ev interpol.Event) (sent, recv, cycles uint64) {
	switch ev := ev.(type) {
	case interpol.Send:
		return uint64(ev.Bytes), 0, ev.Duration
	case interpol.Recv:
		return 0, uint64(ev.Bytes), ev.Duration
	case interpol.Isend:
		return uint64(ev.Bytes), 0, ev.Duration
	case interpol.Irecv:
		return 0, uint64(ev.Bytes), ev.Duration
	case interpol.Test:
		return 0, 0, ev.Duration
	case interpol.Wait:
		return 0, 0, ev.Duration
	case interpol.Barrier:
		return 0, 0, ev.Duration
	case interpol.Ibarrier:
		return 0, 0, ev.Duration
	case interpol.Ibcast:
		if ev.CurrentRank == ev.PartnerRank {
			return uint64(ev.Bytes), 0, ev.Duration
		}
		return 0, uint64(ev.Bytes), ev.Duration
	case interpol.Igather:
		return uint64(ev.BytesSend), uint64(ev.BytesRecv), ev.Duration
	case interpol.Ireduce:
		return uint64(ev.Bytes), 0, ev.Duration
	case interpol.Iscatter:
		return uint64(ev.BytesSend), uint64(ev.BytesRecv), ev.Duration
	default:
		return 0, 0, 0
	}
}
