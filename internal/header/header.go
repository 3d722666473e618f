// Package header parses the typed metadata block at the top of a content
// file against a caller-supplied schema, reporting failures with 1-based
// line numbers.
//
// The block is delimited by "---" lines; the opening delimiter must be the
// first line of the file. Each line inside the block is one "key: value"
// pair. Everything after the closing delimiter is the body and is returned
// verbatim.
package header

import (
	"strings"
	"time"

	"github.com/malkoG/Serum/internal/errs"
)

// Kind declares how a header value is decoded.
type Kind int

const (
	String Kind = iota
	List
	Datetime
)

// Schema maps recognised header keys to their value kinds. Keys not in the
// schema are parse errors, not silent skips.
type Schema map[string]Kind

// DatetimeLayout is the timestamp grammar for Datetime values. The time
// part is optional; a bare date parses as midnight.
const (
	DatetimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout = "2006-01-02"
)

const delim = "---"

// Value is a decoded header value. Exactly one of the presence states
// holds: absent, or present with the variant matching the schema kind.
// Absent is distinct from present-and-empty so callers can apply their own
// fallback policy.
type Value struct {
	present bool
	str     string
	list    []string
	time    time.Time
}

// Absent reports whether the key did not appear in the header.
func (v Value) Absent() bool { return !v.present }

// Str returns the string variant ("" when absent).
func (v Value) Str() string { return v.str }

// List returns the list variant (nil when absent).
func (v Value) List() []string { return v.list }

// Time returns the datetime variant (zero time when absent).
func (v Value) Time() time.Time { return v.time }

// Header holds one decoded value per schema key. Optional keys that did not
// appear map to an explicit absent Value, never a missing map entry.
type Header map[string]Value

// Parse decodes the header block of content against schema, verifies every
// key in required is present, and returns the header plus the verbatim
// remaining body. Duplicate keys are allowed; the last occurrence wins. All
// failures are *errs.PositionedError values carrying path and line.
func Parse(path string, content string, schema Schema, required []string) (Header, string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delim {
		return nil, "", errs.Malformed(path, 1, "header must open with %q on the first line", delim)
	}

	h := make(Header, len(schema))
	for key := range schema {
		h[key] = Value{}
	}

	bodyStart := -1
	for i := 1; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		if strings.TrimSpace(line) == delim {
			bodyStart = i + 1
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, raw, ok := strings.Cut(line, ":")
		if !ok {
			return nil, "", errs.Malformed(path, lineNo, "expected \"key: value\", got %q", strings.TrimSpace(line))
		}
		key = strings.TrimSpace(key)
		kind, known := schema[key]
		if !known {
			return nil, "", errs.Malformed(path, lineNo, "unknown key %q", key)
		}
		val, err := decode(path, lineNo, kind, raw)
		if err != nil {
			return nil, "", err
		}
		h[key] = val
	}
	if bodyStart < 0 {
		return nil, "", errs.Malformed(path, 0, "header block is not terminated by %q", delim)
	}

	for _, key := range required {
		if h[key].Absent() {
			return nil, "", errs.MissingRequired(path, key)
		}
	}

	return h, strings.Join(lines[bodyStart:], "\n"), nil
}

func decode(path string, line int, kind Kind, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case String:
		return Value{present: true, str: raw}, nil
	case List:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return Value{present: true, list: items}, nil
	case Datetime:
		layout := DatetimeLayout
		if !strings.ContainsRune(raw, ' ') {
			layout = dateOnlyLayout
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return Value{}, errs.Malformed(path, line, "bad datetime %q, want %q (time part optional)", raw, DatetimeLayout)
		}
		return Value{present: true, time: t}, nil
	}
	return Value{}, errs.Malformed(path, line, "unsupported value kind")
}
