package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// ErrMalformedCalendar is returned by Resolve when the payload could not be
// decoded and an empty calendar was substituted.
var ErrMalformedCalendar = errors.New("malformed submission calendar")

// RawKind tells which shape a submission calendar arrived in.
type RawKind int

const (
	RawAbsent RawKind = iota
	RawString
	RawMapping
	RawMalformed
)

func (k RawKind) String() string {
	switch k {
	case RawAbsent:
		return "absent"
	case RawString:
		return "string"
	case RawMapping:
		return "mapping"
	case RawMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// RawCalendar is the submission calendar exactly as the profile API sent it:
// either a JSON object or a string holding a JSON object. Decoding never
// fails; a value of any other shape is recorded as RawMalformed.
type RawCalendar struct {
	Kind    RawKind
	Text    string
	Mapping map[string]int
	raw     []byte
}

// NewRawString wraps a string-encoded calendar.
func NewRawString(s string) RawCalendar {
	return RawCalendar{Kind: RawString, Text: s}
}

// NewRawMapping wraps an already-decoded calendar object.
func NewRawMapping(m map[string]int) RawCalendar {
	return RawCalendar{Kind: RawMapping, Mapping: m}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RawCalendar) UnmarshalJSON(data []byte) error {
	*r = RawCalendar{}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		r.Kind = RawAbsent
	case trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, &r.Text); err != nil {
			r.markMalformed(trimmed)
			return nil
		}
		r.Kind = RawString
	case trimmed[0] == '{':
		if err := json.Unmarshal(trimmed, &r.Mapping); err != nil {
			r.markMalformed(trimmed)
			return nil
		}
		r.Kind = RawMapping
	default:
		r.markMalformed(trimmed)
	}
	return nil
}

// MarshalJSON writes the calendar back in the shape it was received in.
func (r RawCalendar) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RawString:
		return json.Marshal(r.Text)
	case RawMapping:
		return json.Marshal(r.Mapping)
	case RawMalformed:
		return json.Marshal(string(r.raw))
	default:
		return []byte("null"), nil
	}
}

func (r *RawCalendar) markMalformed(data []byte) {
	r.Kind = RawMalformed
	r.raw = append([]byte(nil), data...)
}

// Resolve converts the payload into a SubmissionCalendar. It always returns
// a non-nil calendar; on failure the calendar is empty and the error wraps
// ErrMalformedCalendar.
func (r RawCalendar) Resolve() (SubmissionCalendar, error) {
	switch r.Kind {
	case RawAbsent:
		return SubmissionCalendar{}, nil
	case RawMapping:
		return fromMapping(r.Mapping)
	case RawString:
		if r.Text == "" {
			return SubmissionCalendar{}, nil
		}
		var m map[string]int
		if err := json.Unmarshal([]byte(r.Text), &m); err != nil {
			return SubmissionCalendar{}, fmt.Errorf("%w: %v", ErrMalformedCalendar, err)
		}
		return fromMapping(m)
	default:
		return SubmissionCalendar{}, fmt.Errorf("%w: unexpected %s payload", ErrMalformedCalendar, r.Kind)
	}
}

func fromMapping(m map[string]int) (SubmissionCalendar, error) {
	cal := make(SubmissionCalendar, len(m))
	for key, count := range m {
		ts, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return SubmissionCalendar{}, fmt.Errorf("%w: key %q: %v", ErrMalformedCalendar, key, err)
		}
		cal[DayBucket(ts)] = count
	}
	return cal, nil
}

// Encode renders the calendar as the API's mapping shape, keyed by decimal
// epoch seconds.
func (c SubmissionCalendar) Encode() map[string]int {
	out := make(map[string]int, len(c))
	for k, v := range c {
		out[strconv.FormatInt(int64(k), 10)] = v
	}
	return out
}
