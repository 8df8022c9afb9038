package core

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrCyclicValue is returned when a value refers back to itself.
	ErrCyclicValue = errors.New("core: cyclic value cannot be cloned")
	// ErrUnsupportedValue is returned for values that are not plain data
	// (functions, channels, pointers, structs).
	ErrUnsupportedValue = errors.New("core: value type cannot be cloned")
)

// CloneProps deep-copies a free-form property bag.
// Only plain data is supported: nil, bool, string, numbers, []any and map[string]any.
func CloneProps(props map[string]any) (map[string]any, error) {
	if props == nil {
		return nil, nil
	}
	out, err := cloneValue(props, make(map[uintptr]struct{}))
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// CloneValue deep-copies a single plain-data value.
func CloneValue(v any) (any, error) {
	return cloneValue(v, make(map[uintptr]struct{}))
}

// cloneValue walks containers depth first. path holds the containers on the
// current descent only, so shared acyclic references are copied twice but
// only real cycles fail.
func cloneValue(v any, path map[uintptr]struct{}) (any, error) {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val, nil

	case map[string]any:
		if val == nil {
			return map[string]any(nil), nil
		}
		key := reflect.ValueOf(val).Pointer()
		if _, seen := path[key]; seen {
			return nil, ErrCyclicValue
		}
		path[key] = struct{}{}
		defer delete(path, key)

		out := make(map[string]any, len(val))
		for k, item := range val {
			c, err := cloneValue(item, path)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = c
		}
		return out, nil

	case []any:
		if val == nil {
			return []any(nil), nil
		}
		var key uintptr
		if len(val) > 0 {
			key = reflect.ValueOf(val).Pointer()
			if _, seen := path[key]; seen {
				return nil, ErrCyclicValue
			}
			path[key] = struct{}{}
			defer delete(path, key)
		}

		out := make([]any, len(val))
		for i, item := range val {
			c, err := cloneValue(item, path)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = c
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}
