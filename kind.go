package interpol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the concrete type of an event. The string form of a kind is
// the discriminator written to the "type" field of serialized events.
type Kind int8

// Kinds are numbered in the same order as the call kinds produced by the
// interposition layer.
const (
	KindInit Kind = iota
	KindInitThread
	KindFinalize
	KindSend
	KindRecv
	KindIsend
	KindIrecv
	KindTest
	KindWait
	KindBarrier
	KindIbarrier
	KindIbcast
	KindIgather
	KindIreduce
	KindIscatter

	kindCount int = iota
)

var kindNames = [kindCount]string{
	KindInit:       "MpiInit",
	KindInitThread: "MpiInitThread",
	KindFinalize:   "MpiFinalize",
	KindSend:       "MpiSend",
	KindRecv:       "MpiRecv",
	KindIsend:      "MpiIsend",
	KindIrecv:      "MpiIrecv",
	KindTest:       "MpiTest",
	KindWait:       "MpiWait",
	KindBarrier:    "MpiBarrier",
	KindIbarrier:   "MpiIbarrier",
	KindIbcast:     "MpiIbcast",
	KindIgather:    "MpiIgather",
	KindIreduce:    "MpiIreduce",
	KindIscatter:   "MpiIscatter",
}

// AllKinds returns every known kind, in discriminator order.
func AllKinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid returns true if k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < kindCount
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind corresponding to the discriminator s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

//
//
//

// Op is the reduction operation of a reduce-style collective.
type Op int8

// Ops mirror the predefined MPI reduction operations.
const (
	OpNull Op = iota
	OpMax
	OpMin
	OpSum
	OpProd
	OpLand
	OpBand
	OpLor
	OpBor
	OpLxor
	OpBxor
	OpMinloc
	OpMaxloc
	OpReplace

	opCount int = iota
)

var opNames = [opCount]string{
	OpNull:    "Opnull",
	OpMax:     "Max",
	OpMin:     "Min",
	OpSum:     "Sum",
	OpProd:    "Prod",
	OpLand:    "Land",
	OpBand:    "Band",
	OpLor:     "Lor",
	OpBor:     "Bor",
	OpLxor:    "Lxor",
	OpBxor:    "Bxor",
	OpMinloc:  "Minloc",
	OpMaxloc:  "Maxloc",
	OpReplace: "Replace",
}

// Valid returns true if op is a known operation.
func (op Op) Valid() bool {
	return op >= 0 && int(op) < opCount
}

// String implements fmt.Stringer.
func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", int8(op))
	}
	return opNames[op]
}

// MarshalJSON writes the op by name.
func (op Op) MarshalJSON() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid op %d", int8(op))
	}
	return json.Marshal(opNames[op])
}

// UnmarshalJSON reads an op by name.
func (op *Op) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("op: %w", err)
	}
	for i, name := range opNames {
		if name == s {
			*op = Op(i)
			return nil
		}
	}
	return fmt.Errorf("unknown op %q", s)
}

//
//
//

// Thread support levels, as requested from and provided by the communication
// library at initialization.
const (
	ThreadSingle int32 = iota
	ThreadFunneled
	ThreadSerialized
	ThreadMultiple
)

// Wildcards accepted as the partner rank and tag of receive events.
const (
	AnySource int32 = -1
	AnyTag    int32 = -1
)

//
//
//

// Format controls how serialized traces are laid out.
type Format int

const (
	// FormatCompact writes one JSON array without insignificant whitespace.
	FormatCompact Format = iota

	// FormatReadable writes an indented JSON array.
	FormatReadable
)

// ParseFormat returns FormatReadable for "readable", and FormatCompact for
// anything else, including the empty string.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "readable") {
		return FormatReadable
	}
	return FormatCompact
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f == FormatReadable {
		return "readable"
	}
	return "compact"
}
