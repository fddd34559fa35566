package interpolrec

import (
	"strconv"

	"github.com/interpol/interpol"
)

// CallKind identifies the intercepted library call in a [CallDescription].
// Values follow the ordering used by the interposition layer, which is also the
// ordering of [interpol.Kind].
type CallKind int8

const (
	CallInit CallKind = iota
	CallInitThread
	CallFinalize
	CallSend
	CallRecv
	CallIsend
	CallIrecv
	CallTest
	CallWait
	CallBarrier
	CallIbarrier
	CallIbcast
	CallIgather
	CallIreduce
	CallIscatter
)

// Kind returns the event kind corresponding to the call, and false if the call
// kind is unknown.
func (k CallKind) Kind() (interpol.Kind, bool) {
	kind := interpol.Kind(k)
	return kind, kind.Valid()
}

// String implements fmt.Stringer.
func (k CallKind) String() string {
	if kind, ok := k.Kind(); ok {
		return kind.String()
	}
	return "CallKind(" + strconv.Itoa(int(k)) + ")"
}

// CallDescription is the flat description of an intercepted call, as produced
// by the interposition layer. Every call fills in every field; fields that
// don't apply to the kind are ignored.
type CallDescription struct {
	Kind                CallKind
	WallTime            float64 // microseconds, init and finalize only
	Timestamp           uint64  // cycle counter at entry
	Duration            uint64  // cycles spent in the call
	PartnerRank         int32   // peer, or root for collectives
	CurrentRank         int32
	BytesSend           uint32
	BytesRecv           uint32
	Comm                int32
	Req                 int32
	Tag                 int32
	RequiredThreadLevel int32
	ProvidedThreadLevel int32
	Finished            bool
	Op                  interpol.Op
}

// event builds the event described by the call. Send-side kinds take their
// byte count from BytesSend, and receive-side kinds from BytesRecv. It returns
// ok false if the call kind is unknown.
func (c CallDescription) event() (ev interpol.Event, ok bool, err error) {
	switch c.Kind {
	case CallInit:
		ev, err = interpol.NewInit(c.CurrentRank, c.Timestamp, c.WallTime)
	case CallInitThread:
		ev, err = interpol.NewInitThread(c.CurrentRank, c.RequiredThreadLevel, c.ProvidedThreadLevel, c.Timestamp, c.WallTime)
	case CallFinalize:
		ev, err = interpol.NewFinalize(c.CurrentRank, c.Timestamp, c.WallTime)
	case CallSend:
		ev, err = interpol.NewSend(c.CurrentRank, c.PartnerRank, c.BytesSend, c.Comm, c.Tag, c.Timestamp, c.Duration)
	case CallRecv:
		ev, err = interpol.NewRecv(c.CurrentRank, c.PartnerRank, c.BytesRecv, c.Comm, c.Tag, c.Timestamp, c.Duration)
	case CallIsend:
		ev, err = interpol.NewIsend(c.CurrentRank, c.PartnerRank, c.BytesSend, c.Comm, c.Req, c.Tag, c.Timestamp, c.Duration)
	case CallIrecv:
		ev, err = interpol.NewIrecv(c.CurrentRank, c.PartnerRank, c.BytesRecv, c.Comm, c.Req, c.Tag, c.Timestamp, c.Duration)
	case CallTest:
		ev, err = interpol.NewTest(c.CurrentRank, c.Req, c.Finished, c.Timestamp, c.Duration)
	case CallWait:
		ev, err = interpol.NewWait(c.CurrentRank, c.Req, c.Timestamp, c.Duration)
	case CallBarrier:
		ev, err = interpol.NewBarrier(c.CurrentRank, c.Comm, c.Timestamp, c.Duration)
	case CallIbarrier:
		ev, err = interpol.NewIbarrier(c.CurrentRank, c.Comm, c.Req, c.Timestamp, c.Duration)
	case CallIbcast:
		ev, err = interpol.NewIbcast(c.CurrentRank, c.PartnerRank, c.BytesSend, c.Comm, c.Req, c.Timestamp, c.Duration)
	case CallIgather:
		ev, err = interpol.NewIgather(c.CurrentRank, c.PartnerRank, c.BytesSend, c.BytesRecv, c.Comm, c.Req, c.Timestamp, c.Duration)
	case CallIreduce:
		ev, err = interpol.NewIreduce(c.CurrentRank, c.PartnerRank, c.BytesSend, c.Op, c.Comm, c.Req, c.Timestamp, c.Duration)
	case CallIscatter:
		ev, err = interpol.NewIscatter(c.CurrentRank, c.PartnerRank, c.BytesSend, c.BytesRecv, c.Comm, c.Req, c.Timestamp, c.Duration)
	default:
		return nil, false, nil
	}
	return ev, true, err
}
