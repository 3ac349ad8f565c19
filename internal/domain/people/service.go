package people

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/validate"
	"talentcrm/internal/repository"
	"talentcrm/internal/requestctx"
)

type Service struct {
	Repos  *repository.Set
	logger *slog.Logger
}

func NewService(repos *repository.Set, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{Repos: repos, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]model.Person, error) {
	return s.Repos.Persons.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Person, error) {
	return s.Repos.Persons.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (model.Person, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.Person{}, err
	}
	person, err := s.Repos.Persons.Add(ctx, in.Person())
	if err != nil {
		return model.Person{}, err
	}
	s.logger.InfoContext(ctx, "person created", "personId", person.PersonID)
	return person, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Person, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.Person{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Person{}, err
	}
	return s.Repos.Persons.Update(ctx, id, fields)
}

// Delete removes a person nobody points at. Users, employees and brand
// representatives referencing the person block the delete.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	removed := false
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		users, err := s.Repos.Users.FindIn(doc, func(u model.User) bool { return u.PersonID == id })
		if err != nil {
			return false, err
		}
		employees, err := s.Repos.Employees.FindIn(doc, func(e model.Employee) bool { return e.PersonID == id })
		if err != nil {
			return false, err
		}
		reps, err := s.Repos.BrandRepresentatives.FindIn(doc, func(r model.BrandRepresentative) bool { return r.PersonID == id })
		if err != nil {
			return false, err
		}
		if n := len(users) + len(employees) + len(reps); n > 0 {
			return false, fmt.Errorf("person %d has %d references: %w", id, n, ErrPersonReferenced)
		}
		removed = s.Repos.Persons.DeleteIn(doc, id)
		return removed, nil
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.InfoContext(ctx, "person deleted", "personId", id)
	}
	return removed, nil
}
