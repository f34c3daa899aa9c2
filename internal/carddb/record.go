package carddb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one raw upstream card object with case- and
// separator-insensitive field access, so "FrontArt", "front_art" and
// "frontArt" all read the same field.
type Record struct {
	fields map[string]json.RawMessage
	raw    json.RawMessage
}

// ParseRecord decodes a JSON object into a Record.
func ParseRecord(raw json.RawMessage) (Record, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Record{}, fmt.Errorf("card record is not an object: %w", err)
	}
	fields := make(map[string]json.RawMessage, len(obj))
	for k, v := range obj {
		key := foldField(k)
		if _, exists := fields[key]; !exists {
			fields[key] = v
		}
	}
	return Record{fields: fields, raw: raw}, nil
}

// ParseRecords decodes a list of raw card objects.
func ParseRecords(raws []json.RawMessage) ([]Record, error) {
	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		r, err := ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func foldField(key string) string {
	key = strings.ToLower(key)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
}

// Raw returns the JSON of the first present, non-null field among keys.
func (r Record) Raw(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := r.fields[foldField(k)]
		if ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

// JSON returns the original object.
func (r Record) JSON() json.RawMessage {
	return r.raw
}

// String reads a string field; numbers are rendered in decimal.
func (r Record) String(keys ...string) string {
	v, ok := r.Raw(keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}

// Int reads an integer field given as a number or a numeric string.
func (r Record) Int(keys ...string) (int, bool) {
	s := r.String(keys...)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// Bool reads a boolean field given as a bool, a number or a string.
func (r Record) Bool(keys ...string) bool {
	v, ok := r.Raw(keys...)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	switch strings.ToLower(r.String(keys...)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// Strings reads a list field given as an array of strings or as a single
// comma-separated string.
func (r Record) Strings(keys ...string) []string {
	v, ok := r.Raw(keys...)
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		out := list[:0]
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	s := r.String(keys...)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Stat reads a numeric-or-star gameplay value.
func (r Record) Stat(keys ...string) Stat {
	v, ok := r.Raw(keys...)
	if !ok {
		return Stat{}
	}
	return ParseStat(v)
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
