package contract

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

func (s *Service) List(ctx context.Context) ([]model.Contract, error) {
	return s.Repos.Contracts.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Contract, error) {
	return s.Repos.Contracts.Get(ctx, id)
}

func (s *Service) ForDeal(ctx context.Context, dealID int64) ([]model.Contract, error) {
	return s.Repos.Contracts.Find(ctx, func(c model.Contract) bool { return c.DealID == dealID })
}

func (s *Service) Create(ctx context.Context, in Input) (model.Contract, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	v := &validate.Validator{}
	v.Struct(in)
	checkStatus(v, in.Status)
	v.DateOrder("start_date", in.StartDate, "end_date", in.EndDate)
	if err := v.Err(); err != nil {
		return model.Contract{}, err
	}
	status := in.Status
	if status == "" {
		status = model.ContractSent
	}

	var out model.Contract
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkDeal(doc, in.DealID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.Contracts.InsertInto(doc, model.Contract{
			DealID:           in.DealID,
			Details:          in.Details,
			Payment:          in.Payment,
			AgencyPercentage: in.AgencyPercentage,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			Status:           status,
			IsApproved:       in.IsApproved,
		})
		return err == nil, err
	})
	if err != nil {
		return model.Contract{}, err
	}
	s.logger.InfoContext(ctx, "contract created", "contractId", out.ContractID, "dealId", out.DealID)
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Contract, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	v := &validate.Validator{}
	v.Struct(patch)
	if patch.Status != nil {
		if *patch.Status == "" {
			v.Add("status", "must not be blank")
		}
		checkStatus(v, *patch.Status)
	}
	if err := v.Err(); err != nil {
		return model.Contract{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Contract{}, err
	}
	var out model.Contract
	err = s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if patch.DealID != nil {
			if err := s.checkDeal(doc, *patch.DealID); err != nil {
				return false, err
			}
		}
		var err error
		out, err = s.Repos.Contracts.UpdateIn(doc, id, fields)
		if err != nil {
			return false, err
		}
		v := &validate.Validator{}
		v.DateOrder("start_date", out.StartDate, "end_date", out.EndDate)
		if err := v.Err(); err != nil {
			return false, err
		}
		return true, nil
	})
	return out, err
}

// Approve marks the contract approved and accepted. Rejected contracts
// cannot be approved.
func (s *Service) Approve(ctx context.Context, id int64) (model.Contract, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	var out model.Contract
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		current, err := s.Repos.Contracts.GetIn(doc, id)
		if err != nil {
			return false, err
		}
		if current.Status == model.ContractRejected {
			return false, fmt.Errorf("contract %d: %w", id, ErrAlreadyRejected)
		}
		if current.IsApproved && current.Status == model.ContractAccepted {
			out = current
			return false, nil
		}
		out, err = s.Repos.Contracts.UpdateIn(doc, id, repository.Fields{
			"is_approved": true,
			"status":      model.ContractAccepted,
		})
		return err == nil, err
	})
	if err != nil {
		return model.Contract{}, err
	}
	s.logger.InfoContext(ctx, "contract approved", "contractId", id)
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	removed, err := s.Repos.Contracts.Delete(ctx, id)
	if err == nil && removed {
		s.logger.InfoContext(ctx, "contract deleted", "contractId", id)
	}
	return removed, err
}

// Summarize joins a contract with its deal, client and brand. Missing parents
// are left zero.
func (s *Service) Summarize(ctx context.Context, id int64) (Summary, error) {
	doc, err := s.Repos.Store.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	c, err := s.Repos.Contracts.GetIn(doc, id)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{Contract: c, Fee: AgencyFee(c)}
	if out.Deal, err = s.Repos.Deals.GetIn(doc, c.DealID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Summary{}, err
	}
	if out.Client, err = s.Repos.Clients.GetIn(doc, out.Deal.ClientID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Summary{}, err
	}
	if out.Brand, err = s.Repos.Brands.GetIn(doc, out.Deal.BrandID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return Summary{}, err
	}
	return out, nil
}

// RenderPDF writes a one-page PDF summary of the contract to w.
func (s *Service) RenderPDF(ctx context.Context, id int64, w io.Writer) error {
	summary, err := s.Summarize(ctx, id)
	if err != nil {
		return err
	}
	if err := writePDF(w, summary); err != nil {
		return fmt.Errorf("render contract %d: %w", id, err)
	}
	return nil
}

func (s *Service) checkDeal(doc *docstore.Document, dealID int64) error {
	if _, err := s.Repos.Deals.GetIn(doc, dealID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("deal %d: %w", dealID, ErrDealNotFound)
		}
		return err
	}
	return nil
}
