package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldType names the JSON shape a field must have
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeUUID     FieldType = "uuid"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeDateTime FieldType = "datetime"
	TypeDate     FieldType = "date"
	TypeArray    FieldType = "array"
)

// Field error codes
const (
	CodeRequired     = "required"
	CodeNull         = "null"
	CodeType         = "type"
	CodeFormat       = "format"
	CodeEnum         = "enum"
	CodeMinLength    = "min_length"
	CodeMaxLength    = "max_length"
	CodeMin          = "min"
	CodeMax          = "max"
	CodeUnknownField = "unknown_field"
	CodeMinFields    = "min_fields"
)

// formatTags maps string-based types to validator tags
var formatTags = map[FieldType]string{
	TypeUUID:     "uuid",
	TypeEmail:    "email",
	TypeURL:      "http_url",
	TypeDateTime: "datetime=2006-01-02T15:04:05Z07:00",
	TypeDate:     "datetime=2006-01-02",
}

// FieldRule constrains one field of a request body.
// Zero values mean "no constraint"; Type defaults to string.
type FieldRule struct {
	Required  bool
	Nullable  bool
	Type      FieldType
	Enum      []string
	MinLength int
	MaxLength int
	Min       *float64
	Max       *float64
	Items     *FieldRule
}

// Schema describes a JSON object body
type Schema struct {
	Fields       map[string]FieldRule
	MinFields    int
	AllowUnknown bool
}

// Bound is a helper for FieldRule.Min and FieldRule.Max
func Bound(v float64) *float64 {
	return &v
}

// ValidateJSON decodes body as a JSON object and validates it against the schema.
// A nil error means the body is well-formed JSON; field failures come back as a *ValidationError.
func (s Schema) ValidateJSON(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return NewFieldValidationError([]FieldError{{
			Code:    CodeType,
			Message: "body must be valid JSON",
		}})
	}
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return NewFieldValidationError([]FieldError{{
			Code:    CodeType,
			Message: "body must be a JSON object",
		}})
	}

	if errs := s.Validate(doc); len(errs) > 0 {
		return NewFieldValidationError(errs)
	}
	return nil
}

// Validate checks a decoded object. Numbers are expected as json.Number
// or float64. Errors are ordered by field name.
func (s Schema) Validate(doc map[string]interface{}) []FieldError {
	var errs []FieldError

	if !s.AllowUnknown {
		for _, name := range sortedKeys(doc) {
			if _, known := s.Fields[name]; !known {
				errs = append(errs, FieldError{Field: name, Code: CodeUnknownField, Message: "is not allowed"})
			}
		}
	}

	for _, name := range sortedRuleKeys(s.Fields) {
		rule := s.Fields[name]
		value, present := doc[name]
		if !present {
			if rule.Required {
				errs = append(errs, FieldError{Field: name, Code: CodeRequired, Message: "is required"})
			}
			continue
		}
		errs = append(errs, rule.check(name, value)...)
	}

	if s.MinFields > 0 {
		known := 0
		for name := range doc {
			if _, ok := s.Fields[name]; ok {
				known++
			}
		}
		if known < s.MinFields {
			errs = append(errs, FieldError{
				Code:    CodeMinFields,
				Message: fmt.Sprintf("at least %d field(s) must be provided", s.MinFields),
			})
		}
	}

	return errs
}

func (r FieldRule) check(field string, value interface{}) []FieldError {
	if value == nil {
		if r.Nullable {
			return nil
		}
		return []FieldError{{Field: field, Code: CodeNull, Message: "must not be null"}}
	}

	typ := r.Type
	if typ == "" {
		typ = TypeString
	}

	switch typ {
	case TypeString, TypeUUID, TypeEmail, TypeURL, TypeDateTime, TypeDate:
		str, ok := value.(string)
		if !ok {
			return []FieldError{typeError(field, "string")}
		}
		return r.checkString(field, typ, str)
	case TypeInteger, TypeNumber:
		n, ok := toFloat(value)
		if !ok || (typ == TypeInteger && n != float64(int64(n))) {
			return []FieldError{typeError(field, string(typ))}
		}
		return r.checkNumber(field, n)
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return []FieldError{typeError(field, "boolean")}
		}
		return nil
	case TypeArray:
		items, ok := value.([]interface{})
		if !ok {
			return []FieldError{typeError(field, "array")}
		}
		return r.checkArray(field, items)
	default:
		return []FieldError{{Field: field, Code: CodeType, Message: fmt.Sprintf("has unsupported type %q", typ)}}
	}
}

func (r FieldRule) checkString(field string, typ FieldType, s string) []FieldError {
	var errs []FieldError

	n := utf8.RuneCountInString(s)
	// Whitespace-only values count as blank for required fields and for optional
	// fields with a minimum length; the empty string is left to MinLength.
	blank := typ == TypeString && strings.TrimSpace(s) == ""
	if blank && (r.Required || (r.MinLength > 0 && n > 0)) {
		errs = append(errs, FieldError{Field: field, Code: CodeRequired, Message: "must not be blank"})
	}
	if r.MinLength > 0 && n < r.MinLength {
		errs = append(errs, FieldError{Field: field, Code: CodeMinLength,
			Message: fmt.Sprintf("must be at least %d characters", r.MinLength)})
	}
	if r.MaxLength > 0 && n > r.MaxLength {
		errs = append(errs, FieldError{Field: field, Code: CodeMaxLength,
			Message: fmt.Sprintf("must be at most %d characters", r.MaxLength)})
	}

	if tag, ok := formatTags[typ]; ok {
		if err := validate.Var(s, tag); err != nil {
			errs = append(errs, FieldError{Field: field, Code: CodeFormat,
				Message: fmt.Sprintf("must be a valid %s", typ)})
		}
	}

	if len(r.Enum) > 0 && !contains(r.Enum, s) {
		errs = append(errs, FieldError{Field: field, Code: CodeEnum,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(r.Enum, ", "))})
	}

	return errs
}

func (r FieldRule) checkNumber(field string, n float64) []FieldError {
	if r.Min != nil && n < *r.Min {
		return []FieldError{{Field: field, Code: CodeMin, Message: fmt.Sprintf("must be at least %v", *r.Min)}}
	}
	if r.Max != nil && n > *r.Max {
		return []FieldError{{Field: field, Code: CodeMax, Message: fmt.Sprintf("must be at most %v", *r.Max)}}
	}
	return nil
}

func (r FieldRule) checkArray(field string, items []interface{}) []FieldError {
	var errs []FieldError
	if r.MinLength > 0 && len(items) < r.MinLength {
		errs = append(errs, FieldError{Field: field, Code: CodeMinLength,
			Message: fmt.Sprintf("must contain at least %d items", r.MinLength)})
	}
	if r.MaxLength > 0 && len(items) > r.MaxLength {
		errs = append(errs, FieldError{Field: field, Code: CodeMaxLength,
			Message: fmt.Sprintf("must contain at most %d items", r.MaxLength)})
	}
	if r.Items != nil {
		for i, item := range items {
			errs = append(errs, r.Items.check(fmt.Sprintf("%s[%d]", field, i), item)...)
		}
	}
	return errs
}

func typeError(field, want string) FieldError {
	return FieldError{Field: field, Code: CodeType, Message: "must be of type " + want}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRuleKeys(m map[string]FieldRule) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
