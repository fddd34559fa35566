package interpol

// Event is a single recorded call to the communication library, made by one
// rank. The set of implementations is closed: every kind has exactly one
// concrete type in this package, constructed via its New function.
//
// Events are plain comparable values. Two events with identical fields are
// equal according to ==.
type Event interface {
	// Kind returns the discriminator of the concrete event type.
	Kind() Kind

	// Rank returns the rank of the process that recorded the event.
	Rank() int32

	// Timestamp returns the cycle counter sampled when the call was entered.
	// It is the only key used to order events across ranks.
	Timestamp() uint64

	validate() error
}

// Validate returns a *BuildError if ev isn't fully and validly populated.
func Validate(ev Event) error {
	return ev.validate()
}

func build[T Event](ev T) (T, error) {
	if err := ev.validate(); err != nil {
		var zero T
		return zero, err
	}
	return ev, nil
}

//
// Process lifecycle.
//

// Init records the initialization of the communication library.
type Init struct {
	CurrentRank int32   `json:"rank"`
	TSC         uint64  `json:"timestamp"`
	WallTime    float64 `json:"wall_time"`
}

// NewInit returns a validated Init event.
func NewInit(rank int32, tsc uint64, wallTime float64) (Init, error) {
	return build(Init{CurrentRank: rank, TSC: tsc, WallTime: wallTime})
}

func (ev Init) Kind() Kind        { return KindInit }
func (ev Init) Rank() int32       { return ev.CurrentRank }
func (ev Init) Timestamp() uint64 { return ev.TSC }

func (ev Init) validate() error {
	c := check{kind: KindInit}
	c.rank("rank", ev.CurrentRank)
	c.wallTime("wall_time", ev.WallTime)
	return c.result()
}

// InitThread records the initialization of the communication library with a
// requested level of thread support.
type InitThread struct {
	CurrentRank int32   `json:"rank"`
	Required    int32   `json:"required_thread_level"`
	Provided    int32   `json:"provided_thread_level"`
	TSC         uint64  `json:"timestamp"`
	WallTime    float64 `json:"wall_time"`
}

// NewInitThread returns a validated InitThread event.
func NewInitThread(rank, required, provided int32, tsc uint64, wallTime float64) (InitThread, error) {
	return build(InitThread{CurrentRank: rank, Required: required, Provided: provided, TSC: tsc, WallTime: wallTime})
}

func (ev InitThread) Kind() Kind        { return KindInitThread }
func (ev InitThread) Rank() int32       { return ev.CurrentRank }
func (ev InitThread) Timestamp() uint64 { return ev.TSC }

func (ev InitThread) validate() error {
	c := check{kind: KindInitThread}
	c.rank("rank", ev.CurrentRank)
	c.threadLevel("required_thread_level", ev.Required)
	c.threadLevel("provided_thread_level", ev.Provided)
	c.wallTime("wall_time", ev.WallTime)
	return c.result()
}

// Finalize records the shutdown of the communication library. It is the last
// event recorded by a rank.
type Finalize struct {
	CurrentRank int32   `json:"rank"`
	TSC         uint64  `json:"timestamp"`
	WallTime    float64 `json:"wall_time"`
}

// NewFinalize returns a validated Finalize event.
func NewFinalize(rank int32, tsc uint64, wallTime float64) (Finalize, error) {
	return build(Finalize{CurrentRank: rank, TSC: tsc, WallTime: wallTime})
}

func (ev Finalize) Kind() Kind        { return KindFinalize }
func (ev Finalize) Rank() int32       { return ev.CurrentRank }
func (ev Finalize) Timestamp() uint64 { return ev.TSC }

func (ev Finalize) validate() error {
	c := check{kind: KindFinalize}
	c.rank("rank", ev.CurrentRank)
	c.wallTime("wall_time", ev.WallTime)
	return c.result()
}

//
// Point-to-point.
//

// Send records a blocking send.
type Send struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Comm        int32  `json:"communicator_id"`
	Tag         int32  `json:"tag"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewSend returns a validated Send event.
func NewSend(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) (Send, error) {
	return build(Send{CurrentRank: rank, PartnerRank: partner, Bytes: bytes, Comm: comm, Tag: tag, TSC: tsc, Duration: duration})
}

func (ev Send) Kind() Kind        { return KindSend }
func (ev Send) Rank() int32       { return ev.CurrentRank }
func (ev Send) Timestamp() uint64 { return ev.TSC }

func (ev Send) validate() error {
	c := check{kind: KindSend}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	c.tag("tag", ev.Tag, false)
	return c.result()
}

// Recv records a blocking receive.
type Recv struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Comm        int32  `json:"communicator_id"`
	Tag         int32  `json:"tag"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewRecv returns a validated Recv event. The partner rank may be AnySource,
// and the tag may be AnyTag.
func NewRecv(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) (Recv, error) {
	return build(Recv{CurrentRank: rank, PartnerRank: partner, Bytes: bytes, Comm: comm, Tag: tag, TSC: tsc, Duration: duration})
}

func (ev Recv) Kind() Kind        { return KindRecv }
func (ev Recv) Rank() int32       { return ev.CurrentRank }
func (ev Recv) Timestamp() uint64 { return ev.TSC }

func (ev Recv) validate() error {
	c := check{kind: KindRecv}
	c.rank("rank", ev.CurrentRank)
	c.source("partner_rank", ev.PartnerRank)
	c.tag("tag", ev.Tag, true)
	return c.result()
}

// Isend records a non-blocking send.
type Isend struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	Tag         int32  `json:"tag"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIsend returns a validated Isend event.
func NewIsend(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) (Isend, error) {
	return build(Isend{CurrentRank: rank, PartnerRank: partner, Bytes: bytes, Comm: comm, Req: req, Tag: tag, TSC: tsc, Duration: duration})
}

func (ev Isend) Kind() Kind        { return KindIsend }
func (ev Isend) Rank() int32       { return ev.CurrentRank }
func (ev Isend) Timestamp() uint64 { return ev.TSC }

func (ev Isend) validate() error {
	c := check{kind: KindIsend}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	c.tag("tag", ev.Tag, false)
	return c.result()
}

// Irecv records a non-blocking receive.
type Irecv struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	Tag         int32  `json:"tag"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIrecv returns a validated Irecv event. The partner rank may be AnySource,
// and the tag may be AnyTag.
func NewIrecv(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) (Irecv, error) {
	return build(Irecv{CurrentRank: rank, PartnerRank: partner, Bytes: bytes, Comm: comm, Req: req, Tag: tag, TSC: tsc, Duration: duration})
}

func (ev Irecv) Kind() Kind        { return KindIrecv }
func (ev Irecv) Rank() int32       { return ev.CurrentRank }
func (ev Irecv) Timestamp() uint64 { return ev.TSC }

func (ev Irecv) validate() error {
	c := check{kind: KindIrecv}
	c.rank("rank", ev.CurrentRank)
	c.source("partner_rank", ev.PartnerRank)
	c.tag("tag", ev.Tag, true)
	return c.result()
}

//
// Completion and synchronization.
//

// Test records a non-blocking poll for the completion of a request.
type Test struct {
	CurrentRank int32  `json:"rank"`
	Req         int32  `json:"request_id"`
	Finished    bool   `json:"finished"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewTest returns a validated Test event.
func NewTest(rank, req int32, finished bool, tsc, duration uint64) (Test, error) {
	return build(Test{CurrentRank: rank, Req: req, Finished: finished, TSC: tsc, Duration: duration})
}

func (ev Test) Kind() Kind        { return KindTest }
func (ev Test) Rank() int32       { return ev.CurrentRank }
func (ev Test) Timestamp() uint64 { return ev.TSC }

func (ev Test) validate() error {
	c := check{kind: KindTest}
	c.rank("rank", ev.CurrentRank)
	return c.result()
}

// Wait records a blocking wait for the completion of a request.
type Wait struct {
	CurrentRank int32  `json:"rank"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewWait returns a validated Wait event.
func NewWait(rank, req int32, tsc, duration uint64) (Wait, error) {
	return build(Wait{CurrentRank: rank, Req: req, TSC: tsc, Duration: duration})
}

func (ev Wait) Kind() Kind        { return KindWait }
func (ev Wait) Rank() int32       { return ev.CurrentRank }
func (ev Wait) Timestamp() uint64 { return ev.TSC }

func (ev Wait) validate() error {
	c := check{kind: KindWait}
	c.rank("rank", ev.CurrentRank)
	return c.result()
}

// Barrier records a blocking barrier.
type Barrier struct {
	CurrentRank int32  `json:"rank"`
	Comm        int32  `json:"communicator_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewBarrier returns a validated Barrier event.
func NewBarrier(rank, comm int32, tsc, duration uint64) (Barrier, error) {
	return build(Barrier{CurrentRank: rank, Comm: comm, TSC: tsc, Duration: duration})
}

func (ev Barrier) Kind() Kind        { return KindBarrier }
func (ev Barrier) Rank() int32       { return ev.CurrentRank }
func (ev Barrier) Timestamp() uint64 { return ev.TSC }

func (ev Barrier) validate() error {
	c := check{kind: KindBarrier}
	c.rank("rank", ev.CurrentRank)
	return c.result()
}

// Ibarrier records a non-blocking barrier.
type Ibarrier struct {
	CurrentRank int32  `json:"rank"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIbarrier returns a validated Ibarrier event.
func NewIbarrier(rank, comm, req int32, tsc, duration uint64) (Ibarrier, error) {
	return build(Ibarrier{CurrentRank: rank, Comm: comm, Req: req, TSC: tsc, Duration: duration})
}

func (ev Ibarrier) Kind() Kind        { return KindIbarrier }
func (ev Ibarrier) Rank() int32       { return ev.CurrentRank }
func (ev Ibarrier) Timestamp() uint64 { return ev.TSC }

func (ev Ibarrier) validate() error {
	c := check{kind: KindIbarrier}
	c.rank("rank", ev.CurrentRank)
	return c.result()
}

//
// Collectives. For these, the partner rank is the root of the operation.
//

// Ibcast records a non-blocking broadcast.
type Ibcast struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIbcast returns a validated Ibcast event.
func NewIbcast(rank, root int32, bytes uint32, comm, req int32, tsc, duration uint64) (Ibcast, error) {
	return build(Ibcast{CurrentRank: rank, PartnerRank: root, Bytes: bytes, Comm: comm, Req: req, TSC: tsc, Duration: duration})
}

func (ev Ibcast) Kind() Kind        { return KindIbcast }
func (ev Ibcast) Rank() int32       { return ev.CurrentRank }
func (ev Ibcast) Timestamp() uint64 { return ev.TSC }

func (ev Ibcast) validate() error {
	c := check{kind: KindIbcast}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	return c.result()
}

// Igather records a non-blocking gather.
type Igather struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	BytesSend   uint32 `json:"bytes_send"`
	BytesRecv   uint32 `json:"bytes_recv"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIgather returns a validated Igather event.
func NewIgather(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) (Igather, error) {
	return build(Igather{CurrentRank: rank, PartnerRank: root, BytesSend: bytesSend, BytesRecv: bytesRecv, Comm: comm, Req: req, TSC: tsc, Duration: duration})
}

func (ev Igather) Kind() Kind        { return KindIgather }
func (ev Igather) Rank() int32       { return ev.CurrentRank }
func (ev Igather) Timestamp() uint64 { return ev.TSC }

func (ev Igather) validate() error {
	c := check{kind: KindIgather}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	return c.result()
}

// Ireduce records a non-blocking reduction.
type Ireduce struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	Bytes       uint32 `json:"bytes"`
	Op          Op     `json:"operation_kind"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIreduce returns a validated Ireduce event.
func NewIreduce(rank, root int32, bytes uint32, op Op, comm, req int32, tsc, duration uint64) (Ireduce, error) {
	return build(Ireduce{CurrentRank: rank, PartnerRank: root, Bytes: bytes, Op: op, Comm: comm, Req: req, TSC: tsc, Duration: duration})
}

func (ev Ireduce) Kind() Kind        { return KindIreduce }
func (ev Ireduce) Rank() int32       { return ev.CurrentRank }
func (ev Ireduce) Timestamp() uint64 { return ev.TSC }

func (ev Ireduce) validate() error {
	c := check{kind: KindIreduce}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	c.op("operation_kind", ev.Op)
	return c.result()
}

// Iscatter records a non-blocking scatter.
type Iscatter struct {
	CurrentRank int32  `json:"rank"`
	PartnerRank int32  `json:"partner_rank"`
	BytesSend   uint32 `json:"bytes_send"`
	BytesRecv   uint32 `json:"bytes_recv"`
	Comm        int32  `json:"communicator_id"`
	Req         int32  `json:"request_id"`
	TSC         uint64 `json:"timestamp"`
	Duration    uint64 `json:"duration"`
}

// NewIscatter returns a validated Iscatter event.
func NewIscatter(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) (Iscatter, error) {
	return build(Iscatter{CurrentRank: rank, PartnerRank: root, BytesSend: bytesSend, BytesRecv: bytesRecv, Comm: comm, Req: req, TSC: tsc, Duration: duration})
}

func (ev Iscatter) Kind() Kind        { return KindIscatter }
func (ev Iscatter) Rank() int32       { return ev.CurrentRank }
func (ev Iscatter) Timestamp() uint64 { return ev.TSC }

func (ev Iscatter) validate() error {
	c := check{kind: KindIscatter}
	c.rank("rank", ev.CurrentRank)
	c.rank("partner_rank", ev.PartnerRank)
	return c.result()
}
