// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Record is a single business row addressed by table and record id.
// Keys are column names; values are JSON-compatible scalars.
type Record map[string]any

// DecodeRecord parses a JSON object into a Record. Numbers are decoded
// without loss: integral values become int64, everything else float64.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	return rec.Normalize(), nil
}

// UnmarshalJSON implements json.Unmarshaler with the same number handling
// as DecodeRecord, so records travelling through HTTP bodies keep integral
// versions as int64.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	raw := make(map[string]any)
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*r = Record(raw).Normalize()
	return nil
}

// Normalize converts json.Number values into int64 or float64 in place and
// returns the receiver.
func (r Record) Normalize() Record {
	for k, v := range r {
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				r[k] = i
				continue
			}
			if f, err := n.Float64(); err == nil {
				r[k] = f
				continue
			}
			r[k] = n.String()
		}
	}
	return r
}

// Canonical returns the record as it reads back after a JSON round-trip,
// which is the form journal payloads are stored in: integral numbers become
// int64 and times become RFC 3339 strings.
func (r Record) Canonical() (Record, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return DecodeRecord(data)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Columns returns the record's column names in lexical order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// String returns the value of column as a string. Integral numbers are
// formatted in base 10.
func (r Record) String(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", false
	}

	switch value := v.(type) {
	case string:
		return value, true
	case []byte:
		return string(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case int:
		return strconv.Itoa(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return fmt.Sprint(value), true
	}
}

// Int64 returns the value of column as an int64 if it holds an integral
// number (or a numeric string).
func (r Record) Int64(column string) (int64, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return 0, false
	}

	switch value := v.(type) {
	case int64:
		return value, true
	case int:
		return int64(value), true
	case int32:
		return int64(value), true
	case float64:
		if value == float64(int64(value)) {
			return int64(value), true
		}
	case json.Number:
		i, err := value.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(value, 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(string(value), 10, 64)
		return i, err == nil
	}

	return 0, false
}
