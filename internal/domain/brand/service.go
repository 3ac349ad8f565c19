package brand

import (
	"context"
	"errors"
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

func (s *Service) List(ctx context.Context) ([]model.Brand, error) {
	return s.Repos.Brands.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Brand, error) {
	return s.Repos.Brands.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (model.Brand, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.Brand{}, err
	}
	b, err := s.Repos.Brands.Add(ctx, model.Brand{Description: in.Description})
	if err != nil {
		return model.Brand{}, err
	}
	s.logger.InfoContext(ctx, "brand created", "brandId", b.BrandID)
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Brand, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.Brand{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Brand{}, err
	}
	return s.Repos.Brands.Update(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Repos.Brands.Delete(requestctx.EnsureOperationID(ctx), id)
}

func (s *Service) Representatives(ctx context.Context, brandID int64) ([]model.BrandRepresentative, error) {
	return s.Repos.BrandRepresentatives.Find(ctx, func(r model.BrandRepresentative) bool { return r.BrandID == brandID })
}

func (s *Service) GetRepresentative(ctx context.Context, id int64) (model.BrandRepresentative, error) {
	return s.Repos.BrandRepresentatives.Get(ctx, id)
}

func (s *Service) AddRepresentative(ctx context.Context, in RepInput) (model.BrandRepresentative, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.BrandRepresentative{}, err
	}
	var out model.BrandRepresentative
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkRefs(doc, &in.BrandID, &in.PersonID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.BrandRepresentatives.InsertInto(doc, model.BrandRepresentative{
			PersonID: in.PersonID,
			BrandID:  in.BrandID,
			Notes:    in.Notes,
			IsActive: in.IsActive,
		})
		return err == nil, err
	})
	if err != nil {
		return model.BrandRepresentative{}, err
	}
	s.logger.InfoContext(ctx, "brand representative added", "brandRepId", out.BrandRepID, "brandId", out.BrandID)
	return out, nil
}

func (s *Service) UpdateRepresentative(ctx context.Context, id int64, patch RepPatch) (model.BrandRepresentative, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.BrandRepresentative{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.BrandRepresentative{}, err
	}
	var out model.BrandRepresentative
	err = s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkRefs(doc, patch.BrandID, patch.PersonID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.BrandRepresentatives.UpdateIn(doc, id, fields)
		return err == nil, err
	})
	return out, err
}

func (s *Service) DeleteRepresentative(ctx context.Context, id int64) (bool, error) {
	return s.Repos.BrandRepresentatives.Delete(requestctx.EnsureOperationID(ctx), id)
}

// checkRefs verifies the non-nil references exist.
func (s *Service) checkRefs(doc *docstore.Document, brandID, personID *int64) error {
	if brandID != nil {
		if _, err := s.Repos.Brands.GetIn(doc, *brandID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("brand %d: %w", *brandID, ErrBrandNotFound)
			}
			return err
		}
	}
	if personID != nil {
		if _, err := s.Repos.Persons.GetIn(doc, *personID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("person %d: %w", *personID, ErrPersonNotFound)
			}
			return err
		}
	}
	return nil
}
