package client

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

func (s *Service) List(ctx context.Context) ([]model.Client, error) {
	return s.Repos.Clients.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Client, error) {
	return s.Repos.Clients.Get(ctx, id)
}

// ForEmployee lists the clients owned by an employee.
func (s *Service) ForEmployee(ctx context.Context, employeeID int64) ([]model.Client, error) {
	return s.Repos.Clients.Find(ctx, func(c model.Client) bool { return c.EmployeeID == employeeID })
}

func (s *Service) Create(ctx context.Context, in Input) (model.Client, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.Client{}, err
	}
	var out model.Client
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkEmployee(doc, in.EmployeeID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.Clients.InsertInto(doc, model.Client{EmployeeID: in.EmployeeID, Description: in.Description})
		return err == nil, err
	})
	if err != nil {
		return model.Client{}, err
	}
	s.logger.InfoContext(ctx, "client created", "clientId", out.ClientID, "employeeId", out.EmployeeID)
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Client, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.Client{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Client{}, err
	}
	var out model.Client
	err = s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if patch.EmployeeID != nil {
			if err := s.checkEmployee(doc, *patch.EmployeeID); err != nil {
				return false, err
			}
		}
		var err error
		out, err = s.Repos.Clients.UpdateIn(doc, id, fields)
		return err == nil, err
	})
	return out, err
}

// Delete removes the client. Its deals and social accounts are kept.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	removed, err := s.Repos.Clients.Delete(ctx, id)
	if err == nil && removed {
		s.logger.InfoContext(ctx, "client deleted", "clientId", id)
	}
	return removed, err
}

func (s *Service) SocialAccounts(ctx context.Context, clientID int64) ([]model.SocialMediaAccount, error) {
	return s.Repos.SocialMediaAccounts.Find(ctx, func(a model.SocialMediaAccount) bool { return a.ClientID == clientID })
}

func (s *Service) AddSocialAccount(ctx context.Context, in SocialInput) (model.SocialMediaAccount, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(in); err != nil {
		return model.SocialMediaAccount{}, err
	}
	var out model.SocialMediaAccount
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if _, err := s.Repos.Clients.GetIn(doc, in.ClientID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return false, fmt.Errorf("client %d: %w", in.ClientID, ErrClientNotFound)
			}
			return false, err
		}
		var err error
		out, err = s.Repos.SocialMediaAccounts.InsertInto(doc, model.SocialMediaAccount{
			ClientID:    in.ClientID,
			AccountType: in.AccountType,
			Link:        in.Link,
		})
		return err == nil, err
	})
	return out, err
}

func (s *Service) DeleteSocialAccount(ctx context.Context, id int64) (bool, error) {
	return s.Repos.SocialMediaAccounts.Delete(requestctx.EnsureOperationID(ctx), id)
}

func (s *Service) checkEmployee(doc *docstore.Document, employeeID int64) error {
	if _, err := s.Repos.Employees.GetIn(doc, employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("employee %d: %w", employeeID, ErrEmployeeNotFound)
		}
		return err
	}
	return nil
}
