package types

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Cluster members may run mixed versions during a rolling upgrade, so fields
// written by a newer version must survive a read-modify-write cycle on an
// older one. Each top-level spec captures keys it does not recognize into its
// Extra bag on decode and emits them again on encode, untouched.

// unknownFields returns the JSON keys in data that do not correspond to any
// json-tagged field of t. Returns nil when there are none.
func unknownFields(data []byte, t reflect.Type) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key := range jsonKeys(t) {
		delete(raw, key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// jsonKeys lists the wire names of a struct's serialized fields.
func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			if comma := strings.Index(tag, ","); comma >= 0 {
				tag = tag[:comma]
			}
			if tag != "" {
				name = tag
			}
		}
		keys[name] = struct{}{}
	}
	return keys
}

// mergeExtra re-encodes v and splices in the preserved unknown fields. Known
// fields always win over a stale unknown entry of the same name.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, known := merged[k]; !known {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes a NodeSpec, preserving unknown fields.
func (s *NodeSpec) UnmarshalJSON(data []byte) error {
	type plain NodeSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(p))
	if err != nil {
		return err
	}
	*s = NodeSpec(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a NodeSpec, re-emitting preserved unknown fields.
func (s NodeSpec) MarshalJSON() ([]byte, error) {
	type plain NodeSpec
	return mergeExtra(plain(s), s.Extra)
}

// UnmarshalJSON decodes a ServiceSpec, preserving unknown fields.
func (s *ServiceSpec) UnmarshalJSON(data []byte) error {
	type plain ServiceSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(p))
	if err != nil {
		return err
	}
	*s = ServiceSpec(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a ServiceSpec, re-emitting preserved unknown fields.
func (s ServiceSpec) MarshalJSON() ([]byte, error) {
	type plain ServiceSpec
	return mergeExtra(plain(s), s.Extra)
}

// UnmarshalJSON decodes a TaskSpec, preserving unknown fields.
func (s *TaskSpec) UnmarshalJSON(data []byte) error {
	type plain TaskSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(p))
	if err != nil {
		return err
	}
	*s = TaskSpec(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a TaskSpec, re-emitting preserved unknown fields.
func (s TaskSpec) MarshalJSON() ([]byte, error) {
	type plain TaskSpec
	return mergeExtra(plain(s), s.Extra)
}

// UnmarshalJSON decodes a NetworkSpec, preserving unknown fields.
func (s *NetworkSpec) UnmarshalJSON(data []byte) error {
	type plain NetworkSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(p))
	if err != nil {
		return err
	}
	*s = NetworkSpec(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a NetworkSpec, re-emitting preserved unknown fields.
func (s NetworkSpec) MarshalJSON() ([]byte, error) {
	type plain NetworkSpec
	return mergeExtra(plain(s), s.Extra)
}

// UnmarshalJSON decodes a ClusterSpec, preserving unknown fields.
func (s *ClusterSpec) UnmarshalJSON(data []byte) error {
	type plain ClusterSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(p))
	if err != nil {
		return err
	}
	*s = ClusterSpec(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a ClusterSpec, re-emitting preserved unknown fields.
func (s ClusterSpec) MarshalJSON() ([]byte, error) {
	type plain ClusterSpec
	return mergeExtra(plain(s), s.Extra)
}
