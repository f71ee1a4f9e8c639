// Package validate holds the field rules for folders and notes.
//
// Rules are ozzo-validation rules so they compose with the rest of the
// codebase; the exported helpers accept the raw decoded JSON value because a
// non-string name is as invalid as a malformed one.
package validate

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/noteful/internal/apperr"
)

var nameRe = regexp.MustCompile(`^[0-9a-zA-Z \-_!?.]*$`)

var (
	errNotString = validation.NewError("validation_not_string", "must be a string")
	errBlank     = validation.NewError("validation_blank", "must contain a non-whitespace character")
	errCharset   = validation.NewError("validation_charset", "must only contain letters, digits, spaces and - _ ! ? .")
)

// IsString rejects any value that is not a string.
var IsString = validation.By(func(v any) error {
	if _, ok := v.(string); !ok {
		return errNotString
	}
	return nil
})

// NotBlank rejects strings made only of whitespace. Non-strings pass; pair it
// with IsString.
var NotBlank = validation.By(func(v any) error {
	s, ok := v.(string)
	if ok && strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
})

// Charset restricts a string to the folder name / note title alphabet.
var Charset = validation.Match(nameRe).ErrorObject(errCharset)

var (
	nameRules    = []validation.Rule{IsString, NotBlank, Charset}
	contentRules = []validation.Rule{IsString, NotBlank}
)

// Name validates a folder name.
func Name(v any) error {
	return validation.Validate(v, nameRules...)
}

// Title validates a note title. Titles follow the folder name rules.
func Title(v any) error {
	return validation.Validate(v, nameRules...)
}

// Content validates note content: any non-blank string.
func Content(v any) error {
	return validation.Validate(v, contentRules...)
}

// ValidName reports whether v is an acceptable folder name.
func ValidName(v any) bool { return Name(v) == nil }

// ValidTitle reports whether v is an acceptable note title.
func ValidTitle(v any) bool { return Title(v) == nil }

// ValidContent reports whether v is acceptable note content.
func ValidContent(v any) bool { return Content(v) == nil }

// FolderID converts a decoded JSON value into a folder id. Only numbers with
// an integral value are accepted; numeric strings such as "1" are rejected.
func FolderID(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(x)
	case int:
		return int64(x), true
	case int64:
		return x, true
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// FieldError is a single failed check.
type FieldError struct {
	Field       string `json:"field"`
	Message     string `json:"message"`
	Referential bool   `json:"-"`
}

// Result collects field errors in the order checks were made.
type Result struct {
	errs []FieldError
}

// Check runs err-producing validation for field and records message on failure.
// It returns true when the check passed.
func (r *Result) Check(field, message string, err error) bool {
	if err == nil {
		return true
	}
	r.errs = append(r.errs, FieldError{Field: field, Message: message})
	return false
}

// FailReferential records a field whose value references a missing row.
func (r *Result) FailReferential(field, message string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: message, Referential: true})
}

// OK reports whether every check passed.
func (r *Result) OK() bool { return len(r.errs) == 0 }

// Errors returns the recorded failures in check order.
func (r *Result) Errors() []FieldError { return r.errs }

// Err returns the first failure as an apperr error, or nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	first := r.errs[0]
	if first.Referential {
		return apperr.Referential(first.Field, first.Message)
	}
	return apperr.Validation(first.Field, first.Message)
}
