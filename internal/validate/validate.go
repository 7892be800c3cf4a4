// Package validate checks decoded JSON request bodies against declarative field rules.
//
// Every check walks fields in declaration order and reports only the first
// violation, so callers can surface a single {message, location} pair.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperr "github.com/forgiv/bloggy-server/internal/errors"
)

// Kind identifies which rule a field violated.
type Kind string

const (
	MissingField       Kind = "MissingField"
	WrongType          Kind = "WrongType"
	TooShort           Kind = "TooShort"
	TooLong            Kind = "TooLong"
	PaddedWhitespace   Kind = "PaddedWhitespace"
	InternalWhitespace Kind = "InternalWhitespace"
)

// Error describes the first rule violation found in a body.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HTTPError renders the violation as a 422 ValidationError.
func (e *Error) HTTPError() *apperr.HTTPError {
	return apperr.Validation(e.Message, e.Field)
}

// Body is a decoded JSON object.
type Body map[string]any

// Rule configures the checks applied to a single field. Zero Min/Max/MaxBytes disable the bound.
// Min and Max count characters of the trimmed value; MaxBytes counts raw UTF-8 bytes.
type Rule struct {
	Field    string
	Required bool
	Min      int
	Max      int
	MaxBytes int
	Trimmed  bool
	NoSpaces bool
}

// RuleSet is an ordered list of field rules.
type RuleSet []Rule

// RequiredFields fails on the first field that is absent or falsy.
func RequiredFields(body Body, fields []string) error {
	for _, field := range fields {
		if isFalsy(body[field]) {
			return &Error{
				Kind:    MissingField,
				Field:   field,
				Message: fmt.Sprintf("Missing %s in request body", field),
			}
		}
	}
	return nil
}

// StringFields fails on the first present field whose value is not a string.
func StringFields(body Body, fields []string) error {
	for _, field := range fields {
		v, ok := body[field]
		if !ok || v == nil {
			continue
		}
		if _, isString := v.(string); !isString {
			return &Error{
				Kind:    WrongType,
				Field:   field,
				Message: "Incorrect field type: expected string",
			}
		}
	}
	return nil
}

// ValidateLengths checks trimmed lengths. All minimums are checked before any maximum.
func ValidateLengths(body Body, rules []Rule) error {
	for _, r := range rules {
		s, ok := stringValue(body, r.Field)
		if !ok || r.Min == 0 {
			continue
		}
		if trimmedLen(s) < r.Min {
			return &Error{
				Kind:    TooShort,
				Field:   r.Field,
				Message: fmt.Sprintf("Must be at least %d characters long", r.Min),
			}
		}
	}
	for _, r := range rules {
		s, ok := stringValue(body, r.Field)
		if !ok {
			continue
		}
		if r.Max > 0 && trimmedLen(s) > r.Max {
			return &Error{
				Kind:    TooLong,
				Field:   r.Field,
				Message: fmt.Sprintf("Must be at most %d characters long", r.Max),
			}
		}
		if r.MaxBytes > 0 && len(s) > r.MaxBytes {
			return &Error{
				Kind:    TooLong,
				Field:   r.Field,
				Message: fmt.Sprintf("Must be at most %d bytes long", r.MaxBytes),
			}
		}
	}
	return nil
}

// ValidateSpaceAround fails when a value has leading or trailing whitespace.
func ValidateSpaceAround(body Body, fields []string) error {
	for _, field := range fields {
		s, ok := stringValue(body, field)
		if !ok {
			continue
		}
		if len(s) > len(strings.TrimSpace(s)) {
			return &Error{
				Kind:    PaddedWhitespace,
				Field:   field,
				Message: "Cannot start or end with whitespace",
			}
		}
	}
	return nil
}

// ValidateSpaceInside fails when a value contains a space character.
func ValidateSpaceInside(body Body, fields []string) error {
	for _, field := range fields {
		s, ok := stringValue(body, field)
		if !ok {
			continue
		}
		if strings.Contains(s, " ") {
			return &Error{
				Kind:    InternalWhitespace,
				Field:   field,
				Message: "Must not contain whitespace",
			}
		}
	}
	return nil
}

// Check runs the full pipeline: required, type, length, space-around, space-inside.
func (rs RuleSet) Check(body Body) error {
	return rs.run(body, true)
}

// CheckPresent runs the pipeline for rules whose field is present in body,
// skipping the required check. It is meant for partial updates.
func (rs RuleSet) CheckPresent(body Body) error {
	present := make(RuleSet, 0, len(rs))
	for _, r := range rs {
		if _, ok := body[r.Field]; ok {
			present = append(present, r)
		}
	}
	return present.run(body, false)
}

// Fields returns the field names covered by the rule set.
func (rs RuleSet) Fields() []string {
	fields := make([]string, 0, len(rs))
	for _, r := range rs {
		fields = append(fields, r.Field)
	}
	return fields
}

func (rs RuleSet) run(body Body, withRequired bool) error {
	var required, trimmed, noSpaces []string
	for _, r := range rs {
		if r.Required {
			required = append(required, r.Field)
		}
		if r.Trimmed {
			trimmed = append(trimmed, r.Field)
		}
		if r.NoSpaces {
			noSpaces = append(noSpaces, r.Field)
		}
	}

	if withRequired {
		if err := RequiredFields(body, required); err != nil {
			return err
		}
	}
	if err := StringFields(body, rs.Fields()); err != nil {
		return err
	}
	if err := ValidateLengths(body, rs); err != nil {
		return err
	}
	if err := ValidateSpaceAround(body, trimmed); err != nil {
		return err
	}
	return ValidateSpaceInside(body, noSpaces)
}

// String returns the string value of field, if it is a string.
func (b Body) String(field string) (string, bool) {
	return stringValue(b, field)
}

func stringValue(body Body, field string) (string, bool) {
	s, ok := body[field].(string)
	return s, ok
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}
