package brand

import (
	"context"
	"errors"
	"testing"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/validate"
	"talentcrm/internal/repository"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(repository.NewSet(docstore.New(docstore.NewMemoryBackend(nil))), nil)
}

func TestBrandCRUD(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	b, err := svc.Create(ctx, Input{Description: "Acme Cola"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	desc := "Acme Zero"
	updated, err := svc.Update(ctx, b.BrandID, Patch{Description: &desc})
	if err != nil || updated.Description != desc {
		t.Fatalf("update: %+v %v", updated, err)
	}
	if _, err := svc.Create(ctx, Input{}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if removed, err := svc.Delete(ctx, b.BrandID); err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	if _, err := svc.Get(ctx, b.BrandID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepresentativeNeedsBrandAndPerson(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	b, _ := svc.Create(ctx, Input{Description: "Acme"})
	p, _ := svc.Repos.Persons.Add(ctx, model.Person{FirstName: "Rita"})

	if _, err := svc.AddRepresentative(ctx, RepInput{PersonID: p.PersonID, BrandID: 999}); !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
	if _, err := svc.AddRepresentative(ctx, RepInput{PersonID: 999, BrandID: b.BrandID}); !errors.Is(err, ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	rep, err := svc.AddRepresentative(ctx, RepInput{PersonID: p.PersonID, BrandID: b.BrandID, Notes: "prefers email", IsActive: true})
	if err != nil {
		t.Fatalf("add rep: %v", err)
	}
	reps, _ := svc.Representatives(ctx, b.BrandID)
	if len(reps) != 1 || reps[0].BrandRepID != rep.BrandRepID {
		t.Fatalf("representatives = %+v", reps)
	}

	inactive := false
	updated, err := svc.UpdateRepresentative(ctx, rep.BrandRepID, RepPatch{IsActive: &inactive})
	if err != nil || updated.IsActive || updated.Notes != "prefers email" {
		t.Fatalf("update rep: %+v %v", updated, err)
	}
	if removed, err := svc.DeleteRepresentative(ctx, rep.BrandRepID); err != nil || !removed {
		t.Fatalf("delete rep: %v %v", removed, err)
	}
}
