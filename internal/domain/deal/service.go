package deal

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

func (s *Service) List(ctx context.Context) ([]model.Deal, error) {
	return s.Repos.Deals.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Deal, error) {
	return s.Repos.Deals.Get(ctx, id)
}

func (s *Service) ForClient(ctx context.Context, clientID int64) ([]model.Deal, error) {
	return s.Repos.Deals.Find(ctx, func(d model.Deal) bool { return d.ClientID == clientID })
}

// ForClients lists deals belonging to any of the given clients, keeping
// document order.
func (s *Service) ForClients(ctx context.Context, clients []model.Client) ([]model.Deal, error) {
	ids := make(map[int64]bool, len(clients))
	for _, c := range clients {
		ids[c.ClientID] = true
	}
	return s.Repos.Deals.Find(ctx, func(d model.Deal) bool { return ids[d.ClientID] })
}

func (s *Service) Create(ctx context.Context, in Input) (model.Deal, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.Deal{}, err
	}
	var out model.Deal
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkRefs(doc, &in.ClientID, &in.BrandID, &in.BrandRepID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.Deals.InsertInto(doc, model.Deal{
			ClientID:     in.ClientID,
			BrandID:      in.BrandID,
			BrandRepID:   in.BrandRepID,
			PitchDate:    in.PitchDate,
			IsActive:     in.IsActive,
			IsSuccessful: in.IsSuccessful,
		})
		return err == nil, err
	})
	if err != nil {
		return model.Deal{}, err
	}
	s.logger.InfoContext(ctx, "deal created", "dealId", out.DealID, "clientId", out.ClientID)
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Deal, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.Deal{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Deal{}, err
	}
	var out model.Deal
	err = s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkRefs(doc, patch.ClientID, patch.BrandID, patch.BrandRepID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.Deals.UpdateIn(doc, id, fields)
		return err == nil, err
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	removed, err := s.Repos.Deals.Delete(ctx, id)
	if err == nil && removed {
		s.logger.InfoContext(ctx, "deal deleted", "dealId", id)
	}
	return removed, err
}

// checkRefs verifies non-nil references. Brand and representative ids of
// zero mean "not set".
func (s *Service) checkRefs(doc *docstore.Document, clientID, brandID, repID *int64) error {
	if clientID != nil {
		if err := exists(s.Repos.Clients, doc, *clientID, ErrClientNotFound); err != nil {
			return err
		}
	}
	if brandID != nil && *brandID != 0 {
		if err := exists(s.Repos.Brands, doc, *brandID, ErrBrandNotFound); err != nil {
			return err
		}
	}
	if repID != nil && *repID != 0 {
		if err := exists(s.Repos.BrandRepresentatives, doc, *repID, ErrBrandRepNotFound); err != nil {
			return err
		}
	}
	return nil
}

func exists[T model.Record, P repository.Ptr[T]](repo *repository.Repository[T, P], doc *docstore.Document, id int64, missing error) error {
	if _, err := repo.GetIn(doc, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", repo.Collection(), id, missing)
		}
		return err
	}
	return nil
}
