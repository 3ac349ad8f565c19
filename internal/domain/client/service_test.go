package client

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/validate"
	"talentcrm/internal/repository"
)

func newService(t *testing.T) (*Service, *docstore.MemoryBackend, model.Employee) {
	t.Helper()
	backend := docstore.NewMemoryBackend(nil)
	svc := NewService(repository.NewSet(docstore.New(backend)), nil)
	emp, err := svc.Repos.Employees.Add(context.Background(), model.Employee{PersonID: 1, Position: "Agent"})
	if err != nil {
		t.Fatalf("add employee: %v", err)
	}
	return svc, backend, emp
}

func TestCreateRequiresEmployee(t *testing.T) {
	svc, backend, _ := newService(t)
	before := backend.Bytes()
	_, err := svc.Create(context.Background(), Input{EmployeeID: 999, Description: "Creator"})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if !bytes.Equal(before, backend.Bytes()) {
		t.Fatal("rejected create changed the document")
	}
}

func TestCreateAndForEmployee(t *testing.T) {
	svc, _, emp := newService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, Input{EmployeeID: emp.EmployeeID, Description: "Creator"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	owned, err := svc.ForEmployee(ctx, emp.EmployeeID)
	if err != nil || len(owned) != 1 || owned[0].ClientID != c.ClientID {
		t.Fatalf("for employee: %+v %v", owned, err)
	}
	if _, err := svc.Create(ctx, Input{EmployeeID: emp.EmployeeID}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateReassignsOwner(t *testing.T) {
	svc, _, emp := newService(t)
	ctx := context.Background()
	other, _ := svc.Repos.Employees.Add(ctx, model.Employee{PersonID: 2})
	c, _ := svc.Create(ctx, Input{EmployeeID: emp.EmployeeID, Description: "Creator"})

	missing := int64(999)
	if _, err := svc.Update(ctx, c.ClientID, Patch{EmployeeID: &missing}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	updated, err := svc.Update(ctx, c.ClientID, Patch{EmployeeID: &other.EmployeeID})
	if err != nil || updated.EmployeeID != other.EmployeeID || updated.Description != "Creator" {
		t.Fatalf("update: %+v %v", updated, err)
	}
}

func TestSocialAccounts(t *testing.T) {
	svc, _, emp := newService(t)
	ctx := context.Background()
	c, _ := svc.Create(ctx, Input{EmployeeID: emp.EmployeeID, Description: "Creator"})

	acct, err := svc.AddSocialAccount(ctx, SocialInput{ClientID: c.ClientID, AccountType: "Instagram", Link: "https://instagram.com/creator"})
	if err != nil {
		t.Fatalf("add social: %v", err)
	}
	if _, err := svc.AddSocialAccount(ctx, SocialInput{ClientID: 999, AccountType: "TikTok", Link: "@x"}); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	accounts, err := svc.SocialAccounts(ctx, c.ClientID)
	if err != nil || len(accounts) != 1 {
		t.Fatalf("list social: %+v %v", accounts, err)
	}
	removed, err := svc.DeleteSocialAccount(ctx, acct.SocialMediaID)
	if err != nil || !removed {
		t.Fatalf("delete social: %v %v", removed, err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, _, emp := newService(t)
	ctx := context.Background()
	c, _ := svc.Create(ctx, Input{EmployeeID: emp.EmployeeID, Description: "Creator"})
	if removed, err := svc.Delete(ctx, c.ClientID); err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	if removed, err := svc.Delete(ctx, c.ClientID); err != nil || removed {
		t.Fatalf("second delete: %v %v", removed, err)
	}
}
