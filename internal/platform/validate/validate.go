// Package validate checks service input with go-playground/validator and
// reports every failing field at once.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const DateLayout = "2006-01-02"

var ErrInvalid = errors.New("invalid input")

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\.\(\)\+]+$`)
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error carries the failing fields. errors.Is(err, ErrInvalid) holds for it.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Reason)
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "emailaddr", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	mustRegister(v, "date", func(fl validator.FieldLevel) bool {
		return Date(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

func Email(value string) bool { return emailPattern.MatchString(value) }

func Phone(value string) bool { return phonePattern.MatchString(value) }

func Date(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	v := &Validator{}
	v.Struct(s)
	return v.Err()
}

// Validator collects issues from tag validation and hand-written checks.
type Validator struct {
	issues []Issue
}

func (v *Validator) Add(field, reason string) {
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, Issue{Field: field, Reason: reason})
}

func (v *Validator) Struct(s any) {
	err := engine.Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.Add("", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), reason(fe))
	}
}

// DateOrder requires end to fall on or after start when both parse.
func (v *Validator) DateOrder(startField, start, endField, end string) {
	s, errS := time.Parse(DateLayout, start)
	e, errE := time.Parse(DateLayout, end)
	if errS != nil || errE != nil {
		return
	}
	if e.Before(s) {
		v.Add(endField, "must be on or after "+startField)
	}
}

func (v *Validator) HasIssues() bool {
	return len(v.issues) > 0
}

// Err returns a *Error holding the sorted issues, or nil.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	out := make([]Issue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return &Error{Issues: out}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "emailaddr":
		return "must be a valid email address"
	case "phone":
		return "may only contain digits, spaces and + - . ( )"
	case "date":
		return "must be a valid date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
