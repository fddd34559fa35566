package interpol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Events is an ordered, heterogeneous collection of events. It serializes to a
// JSON array of objects, each tagged with a "type" field naming its kind, so a
// mixed sequence can be decoded without knowing in advance which kinds appear.
type Events []Event

// MarshalJSON implements json.Marshaler. Output is a deterministic function of
// the events: the same sequence always produces the same bytes.
func (evs Events) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, ev := range evs {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := MarshalEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Every element is validated as it
// would be by its constructor.
func (evs *Events) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	res := make(Events, len(raws))
	for i, raw := range raws {
		ev, err := UnmarshalEvent(raw)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		res[i] = ev
	}

	*evs = res
	return nil
}

// MarshalEvent returns the tagged JSON object representing ev. The "type"
// field always comes first, followed by the fields of the concrete event in
// declaration order.
func MarshalEvent(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, fmt.Errorf("nil event")
	}

	if !ev.Kind().Valid() {
		return nil, fmt.Errorf("invalid kind %s", ev.Kind())
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ev.Kind(), err)
	}

	// Every event has at least a rank and a timestamp, so the body is never
	// the empty object.
	var buf bytes.Buffer
	buf.Grow(len(body) + 32)
	buf.WriteString(`{"type":"`)
	buf.WriteString(ev.Kind().String())
	buf.WriteString(`",`)
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// UnmarshalEvent parses a single tagged JSON object into the concrete event
// named by its "type" field. Missing or null fields are reported as a
// *BuildError, as are fields with invalid values.
func UnmarshalEvent(data []byte) (Event, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	rawType, ok := obj["type"]
	if !ok {
		return nil, fmt.Errorf("missing type field")
	}

	var typ string
	if err := json.Unmarshal(rawType, &typ); err != nil {
		return nil, fmt.Errorf("type field: %w", err)
	}

	kind, err := ParseKind(typ)
	if err != nil {
		return nil, err
	}

	// A null value would decode as the zero value, so it counts as missing.
	for _, field := range kindFields[kind] {
		if raw, ok := obj[field]; !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, &BuildError{Kind: kind, Field: field, Reason: "missing"}
		}
	}

	ev, err := kindDecoders[kind](data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	if err := ev.validate(); err != nil {
		return nil, err
	}

	return ev, nil
}

// EncodeEvents writes evs to w as a JSON array in the given format, followed
// by a newline.
func EncodeEvents(w io.Writer, evs []Event, format Format) error {
	data, err := Events(evs).MarshalJSON()
	if err != nil {
		return err
	}

	if format == FormatReadable {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indent: %w", err)
		}
		data = buf.Bytes()
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

// DecodeEvents reads a JSON array of tagged events from r.
func DecodeEvents(r io.Reader) (Events, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var evs Events
	if err := json.Unmarshal(data, &evs); err != nil {
		return nil, err
	}

	return evs, nil
}

//
//
//

func decodeAs[T Event](data []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

var kindDecoders = [kindCount]func([]byte) (Event, error){
	KindInit:       decodeAs[Init],
	KindInitThread: decodeAs[InitThread],
	KindFinalize:   decodeAs[Finalize],
	KindSend:       decodeAs[Send],
	KindRecv:       decodeAs[Recv],
	KindIsend:      decodeAs[Isend],
	KindIrecv:      decodeAs[Irecv],
	KindTest:       decodeAs[Test],
	KindWait:       decodeAs[Wait],
	KindBarrier:    decodeAs[Barrier],
	KindIbarrier:   decodeAs[Ibarrier],
	KindIbcast:     decodeAs[Ibcast],
	KindIgather:    decodeAs[Igather],
	KindIreduce:    decodeAs[Ireduce],
	KindIscatter:   decodeAs[Iscatter],
}

var kindFields = [kindCount][]string{
	KindInit:       jsonFields(Init{}),
	KindInitThread: jsonFields(InitThread{}),
	KindFinalize:   jsonFields(Finalize{}),
	KindSend:       jsonFields(Send{}),
	KindRecv:       jsonFields(Recv{}),
	KindIsend:      jsonFields(Isend{}),
	KindIrecv:      jsonFields(Irecv{}),
	KindTest:       jsonFields(Test{}),
	KindWait:       jsonFields(Wait{}),
	KindBarrier:    jsonFields(Barrier{}),
	KindIbarrier:   jsonFields(Ibarrier{}),
	KindIbcast:     jsonFields(Ibcast{}),
	KindIgather:    jsonFields(Igather{}),
	KindIreduce:    jsonFields(Ireduce{}),
	KindIscatter:   jsonFields(Iscatter{}),
}

// jsonFields returns the JSON names of every field of the struct v.
func jsonFields(v any) []string {
	t := reflect.TypeOf(v)
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	return names
}
