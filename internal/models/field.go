package models

import "strings"

// FieldType enumerates the supported custom field input types.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldDropdown FieldType = "dropdown"
	FieldCheckbox FieldType = "checkbox"
	FieldDate     FieldType = "date"
	FieldTime     FieldType = "time"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldTextarea, FieldDropdown, FieldCheckbox, FieldDate, FieldTime:
		return true
	}
	return false
}

// CustomField is a user-authored schema entry describing one dynamic
// student attribute. Key is the stable identifier used as the attribute
// name on student records; Options is populated only for dropdown fields.
type CustomField struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Key      string    `json:"key"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// DeriveFieldKey produces an attribute key from a display label by
// lowercasing it and collapsing whitespace runs into underscores.
func DeriveFieldKey(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}
