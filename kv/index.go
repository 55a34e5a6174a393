package kv

import "fmt"

// IndexEntry is an immutable secondary-index field/value pair attached to an
// object. Values are either strings or integers; integer inputs are
// normalized to int64 so that equality behaves uniformly.
type IndexEntry struct {
	field string
	value any
}

// NewIndexEntry validates the value type and returns an IndexEntry.
// Supported value types are string and the signed/unsigned integer kinds;
// anything else fails with ErrInvalidArgument.
func NewIndexEntry(field string, value any) (IndexEntry, error) {
	normalized, err := normalizeIndexValue(value)
	if err != nil {
		return IndexEntry{}, err
	}
	return IndexEntry{field: field, value: normalized}, nil
}

func normalizeIndexValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	default:
		return nil, fmt.Errorf("%w: index value must be a string or integer, got %T", ErrInvalidArgument, value)
	}
}

// Field returns the index field name.
func (entry IndexEntry) Field() string {
	return entry.field
}

// Value returns the index value, either a string or an int64.
func (entry IndexEntry) Value() any {
	return entry.value
}

// Equal reports whether both field and value match.
func (entry IndexEntry) Equal(other IndexEntry) bool {
	return entry.field == other.field && entry.value == other.value
}
