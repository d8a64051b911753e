package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StudentStatus enumerates the lifecycle states of a student record.
type StudentStatus string

const (
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
	StatusPending  StudentStatus = "pending"
)

// ValidStudentStatus reports whether s is a known status.
func ValidStudentStatus(s StudentStatus) bool {
	return s == StatusActive || s == StatusInactive || s == StatusPending
}

// FieldValue is a tagged dynamic attribute value. Custom fields of type
// checkbox carry booleans; every other field type carries a string.
type FieldValue struct {
	Bool  bool
	Str   string
	IsStr bool
}

// StringValue builds a string-kinded field value.
func StringValue(s string) FieldValue { return FieldValue{Str: s, IsStr: true} }

// BoolValue builds a boolean-kinded field value.
func BoolValue(b bool) FieldValue { return FieldValue{Bool: b} }

// MarshalJSON encodes the tagged value as a bare JSON string or boolean.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.IsStr {
		return json.Marshal(v.Str)
	}
	return json.Marshal(v.Bool)
}

// UnmarshalJSON accepts JSON strings and booleans. Other JSON types are
// stringified so that values written by older schema shapes round-trip.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = StringValue(fmt.Sprintf("%v", raw))
	return nil
}

// String renders the value for display and export.
func (v FieldValue) String() string {
	if v.IsStr {
		return v.Str
	}
	if v.Bool {
		return "true"
	}
	return "false"
}

// Student is a roster record: strongly typed base attributes plus an open
// map of schema-defined custom attributes. The custom map references field
// keys by name only; deleting a field definition does not strip its key
// from existing records.
type Student struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    StudentStatus
	CreatedAt string
	Custom    map[string]FieldValue
}

// Base attribute keys reserved in the serialized record shape.
const (
	studentKeyID        = "id"
	studentKeyName      = "name"
	studentKeyEmail     = "email"
	studentKeyPhone     = "phone"
	studentKeyStatus    = "status"
	studentKeyCreatedAt = "createdAt"
)

// IsBaseStudentKey reports whether key names a base record attribute.
func IsBaseStudentKey(key string) bool {
	switch key {
	case studentKeyID, studentKeyName, studentKeyEmail, studentKeyPhone, studentKeyStatus, studentKeyCreatedAt:
		return true
	}
	return false
}

// MarshalJSON flattens the record into a single object with the custom
// attributes inlined next to the base ones, matching the persisted shape.
func (s Student) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, 6+len(s.Custom))
	flat[studentKeyID] = s.ID
	flat[studentKeyName] = s.Name
	flat[studentKeyEmail] = s.Email
	flat[studentKeyPhone] = s.Phone
	flat[studentKeyStatus] = s.Status
	flat[studentKeyCreatedAt] = s.CreatedAt
	keys := make([]string, 0, len(s.Custom))
	for k := range s.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if IsBaseStudentKey(k) {
			continue
		}
		flat[k] = s.Custom[k]
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits a flattened record back into base attributes and
// the dynamic custom map.
func (s *Student) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	decodeString := func(key string, dst *string) error {
		raw, ok := flat[key]
		if !ok {
			return nil
		}
		return json.Unmarshal(raw, dst)
	}
	if err := decodeString(studentKeyID, &s.ID); err != nil {
		return err
	}
	if err := decodeString(studentKeyName, &s.Name); err != nil {
		return err
	}
	if err := decodeString(studentKeyEmail, &s.Email); err != nil {
		return err
	}
	if err := decodeString(studentKeyPhone, &s.Phone); err != nil {
		return err
	}
	if err := decodeString(studentKeyCreatedAt, &s.CreatedAt); err != nil {
		return err
	}
	if raw, ok := flat[studentKeyStatus]; ok {
		if err := json.Unmarshal(raw, &s.Status); err != nil {
			return err
		}
	}
	s.Custom = make(map[string]FieldValue)
	for key, raw := range flat {
		if IsBaseStudentKey(key) {
			continue
		}
		var value FieldValue
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		s.Custom[key] = value
	}
	return nil
}

// Clone returns a deep copy so callers can mutate records without
// aliasing the stored collection.
func (s Student) Clone() Student {
	out := s
	out.Custom = make(map[string]FieldValue, len(s.Custom))
	for k, v := range s.Custom {
		out.Custom[k] = v
	}
	return out
}
