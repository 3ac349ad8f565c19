package validate

import (
	"errors"
	"testing"
)

type sample struct {
	Name   string  `json:"name" validate:"notblank"`
	Email  string  `json:"email" validate:"omitempty,emailaddr"`
	Phone  string  `json:"phone" validate:"omitempty,phone"`
	Start  string  `json:"start_date" validate:"omitempty,date"`
	Status string  `json:"status" validate:"omitempty,oneof=Sent Pending"`
	Share  float64 `json:"share" validate:"gte=0,lte=100"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	in := sample{Name: "Ada", Email: "ada@example.com", Phone: "+1 (555) 010-0000", Start: "2024-02-29", Status: "Sent", Share: 15}
	if err := Struct(in); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestStructReportsEveryField(t *testing.T) {
	in := sample{Name: "   ", Email: "nope", Phone: "call me", Start: "2023-02-30", Status: "Lost", Share: 120}
	err := Struct(in)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	fields := map[string]bool{}
	for _, issue := range verr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"name", "email", "phone", "start_date", "status", "share"} {
		if !fields[want] {
			t.Fatalf("missing issue for %s in %v", want, verr.Issues)
		}
	}
}

func TestHelpers(t *testing.T) {
	if !Email("a@b.co") || Email("a@b") || Email("a b@c.d") {
		t.Fatal("email rule mismatch")
	}
	if !Phone("555.010.0000") || Phone("555-CALL") {
		t.Fatal("phone rule mismatch")
	}
	if !Date("2024-01-31") || Date("2024-13-01") || Date("31/01/2024") {
		t.Fatal("date rule mismatch")
	}
}

func TestDateOrder(t *testing.T) {
	v := &Validator{}
	v.DateOrder("start_date", "2024-05-01", "end_date", "2024-04-30")
	if !v.HasIssues() {
		t.Fatal("expected end before start to fail")
	}
	v = &Validator{}
	v.DateOrder("start_date", "2024-05-01", "end_date", "")
	if v.HasIssues() {
		t.Fatal("missing end date should be ignored")
	}
}
