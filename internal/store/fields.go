package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FieldKind selects the value translation applied to a mapped field.
type FieldKind int

const (
	KindID FieldKind = iota
	KindString
	KindInt
	KindBool
	KindTime       // RFC 3339 string remotely, time.Time locally
	KindStringList // comma-joined string remotely, ordered []string locally
)

// Field pairs a remote column name with its local field name.
type Field struct {
	Remote string
	Local  string
	Kind   FieldKind
}

// Mapping is the explicit bidirectional field translation table for one
// logical table. The local shape is the single source of truth for the
// rest of the system; every adapter translates through a Mapping in both
// directions so the round-trip property stays mechanically checkable.
type Mapping struct {
	Table  string
	Fields []Field
}

// Translation tables for the four logical tables of the record platform.
var (
	ThreatMapping = Mapping{
		Table: "threat",
		Fields: []Field{
			{Remote: "Id", Local: "Id", Kind: KindID},
			{Remote: "type", Local: "type", Kind: KindString},
			{Remote: "severity", Local: "severity", Kind: KindString},
			{Remote: "source", Local: "source", Kind: KindString},
			{Remote: "content", Local: "content", Kind: KindString},
			{Remote: "timestamp", Local: "timestamp", Kind: KindTime},
			{Remote: "status", Local: "status", Kind: KindString},
		},
	}

	AccountMapping = Mapping{
		Table: "suspicious_account",
		Fields: []Field{
			{Remote: "Id", Local: "Id", Kind: KindID},
			{Remote: "username", Local: "username", Kind: KindString},
			{Remote: "threat_score", Local: "threatScore", Kind: KindInt},
			{Remote: "flags", Local: "flags", Kind: KindStringList},
			{Remote: "first_seen", Local: "firstSeen", Kind: KindTime},
			{Remote: "interactions", Local: "interactions", Kind: KindInt},
		},
	}

	KeywordMapping = Mapping{
		Table: "keyword",
		Fields: []Field{
			{Remote: "Id", Local: "Id", Kind: KindID},
			{Remote: "term", Local: "term", Kind: KindString},
			{Remote: "category", Local: "category", Kind: KindString},
			{Remote: "severity", Local: "severity", Kind: KindString},
			{Remote: "is_active", Local: "isActive", Kind: KindBool},
		},
	}

	AlertMapping = Mapping{
		Table: "alert",
		Fields: []Field{
			{Remote: "Id", Local: "Id", Kind: KindID},
			{Remote: "threat_id", Local: "threatId", Kind: KindInt},
			{Remote: "message", Local: "message", Kind: KindString},
			{Remote: "priority", Local: "priority", Kind: KindString},
			{Remote: "is_read", Local: "isRead", Kind: KindBool},
			{Remote: "created_at", Local: "createdAt", Kind: KindTime},
		},
	}
)

// RemoteFields returns the explicit field list sent with every platform
// fetch call.
func (m Mapping) RemoteFields() []string {
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Remote)
	}
	return names
}

// Normalize translates a remote record into the local field shape. Fields
// absent from the remote record are skipped, so a partial record stays
// partial.
func (m Mapping) Normalize(remote map[string]any) (map[string]any, error) {
	local := make(map[string]any, len(remote))
	for _, f := range m.Fields {
		raw, ok := remote[f.Remote]
		if !ok {
			continue
		}
		v, err := toLocalValue(raw, f.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.Table, f.Remote, err)
		}
		local[f.Local] = v
	}
	return local, nil
}

// Denormalize translates local fields back into the remote shape. Like
// Normalize it is partial-safe, which lets update payloads carry only the
// fields being changed.
func (m Mapping) Denormalize(local map[string]any) (map[string]any, error) {
	remote := make(map[string]any, len(local))
	for _, f := range m.Fields {
		raw, ok := local[f.Local]
		if !ok {
			continue
		}
		v, err := toRemoteValue(raw, f.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.Table, f.Local, err)
		}
		remote[f.Remote] = v
	}
	return remote, nil
}

func toLocalValue(raw any, kind FieldKind) (any, error) {
	switch kind {
	case KindID, KindInt:
		return toInt(raw)
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil
	case KindTime:
		return toTime(raw)
	case KindStringList:
		switch v := raw.(type) {
		case string:
			return splitFlags(v), nil
		case []string:
			return append([]string(nil), v...), nil
		case []any:
			return toStringSlice(v)
		default:
			return nil, fmt.Errorf("expected delimited string, got %T", raw)
		}
	}
	return nil, fmt.Errorf("unknown field kind %d", kind)
}

func toRemoteValue(raw any, kind FieldKind) (any, error) {
	switch kind {
	case KindID, KindInt:
		return toInt(raw)
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil
	case KindTime:
		t, err := toTime(raw)
		if err != nil {
			return nil, err
		}
		return t.UTC().Format(time.RFC3339Nano), nil
	case KindStringList:
		switch v := raw.(type) {
		case []string:
			return strings.Join(v, ","), nil
		case []any:
			ss, err := toStringSlice(v)
			if err != nil {
				return nil, err
			}
			return strings.Join(ss, ","), nil
		case string:
			return v, nil
		default:
			return nil, fmt.Errorf("expected string sequence, got %T", raw)
		}
	}
	return nil, fmt.Errorf("unknown field kind %d", kind)
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", v, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("expected timestamp, got %T", raw)
	}
}

func toStringSlice(vals []any) ([]string, error) {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string element, got %T", v)
		}
		out = append(out, s)
	}
	return out, nil
}

func splitFlags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// encodeRecord flattens an entity struct into its local field map.
func encodeRecord[T any](rec T) (map[string]any, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var local map[string]any
	if err := json.Unmarshal(b, &local); err != nil {
		return nil, err
	}
	return local, nil
}

// decodeRecord binds a local field map onto an entity struct.
func decodeRecord[T any](local map[string]any) (T, error) {
	var rec T
	b, err := json.Marshal(local)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// stripID drops the identifier from an update payload; the identifier
// field itself is immutable.
func stripID(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "Id" {
			continue
		}
		out[k] = v
	}
	return out
}
