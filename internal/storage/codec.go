package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// CorruptError reports a stored value that could not be decoded.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("storage: corrupt value under %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// DateFields names the top-level date properties of a record. Required
// fields that are missing or empty are filled with the decode time; optional
// ones are left absent.
type DateFields struct {
	Required []string
	Optional []string
}

// EncodeCollection serializes items as a JSON array. A nil slice encodes as [].
func EncodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a JSON array stored under key, normalizing every
// date field to UTC ISO-8601 before decoding into T. Date strings are parsed
// leniently so values written by older clients still load.
func DecodeCollection[T any](key string, data []byte, dates DateFields, now time.Time) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []T{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Key: key, Err: err}
	}

	items := make([]T, 0, len(raw))
	for i, rec := range raw {
		dec := json.NewDecoder(bytes.NewReader(rec))
		dec.UseNumber()
		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		if fields == nil {
			return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: null record", i)}
		}

		for _, name := range dates.Required {
			if err := normalizeDate(fields, name, &now); err != nil {
				return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: %w", i, err)}
			}
		}
		for _, name := range dates.Optional {
			if err := normalizeDate(fields, name, nil); err != nil {
				return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: %w", i, err)}
			}
		}

		normalized, err := json.Marshal(fields)
		if err != nil {
			return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		var item T
		if err := json.Unmarshal(normalized, &item); err != nil {
			return nil, &CorruptError{Key: key, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizeDate rewrites fields[name] as an RFC 3339 UTC string. A nil
// fallback means the field is optional and missing values are dropped.
func normalizeDate(fields map[string]any, name string, fallback *time.Time) error {
	v, ok := fields[name]
	s, isString := v.(string)
	if !ok || v == nil || (isString && strings.TrimSpace(s) == "") {
		if fallback == nil {
			delete(fields, name)
			return nil
		}
		fields[name] = FormatTime(*fallback)
		return nil
	}
	if !isString {
		return fmt.Errorf("field %s: expected date string, got %T", name, v)
	}
	t, err := ParseTime(s)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	fields[name] = FormatTime(t)
	return nil
}

// ParseTime accepts ISO-8601 first and falls back to dateparse for anything
// else a user or an older client may have written.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTime renders t the way records are stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
