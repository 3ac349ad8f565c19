package employee

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

func (s *Service) List(ctx context.Context) ([]model.Employee, error) {
	return s.Repos.Employees.All(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Employee, error) {
	return s.Repos.Employees.Get(ctx, id)
}

// ByPerson returns the employee record of a person.
func (s *Service) ByPerson(ctx context.Context, personID int64) (model.Employee, error) {
	if personID == 0 {
		return model.Employee{}, fmt.Errorf("employees person_id=0: %w", repository.ErrNotFound)
	}
	return s.Repos.Employees.GetBy(ctx, "person_id", personID)
}

// DirectReports lists employees whose manager is managerID, one level deep.
func (s *Service) DirectReports(ctx context.Context, managerID int64) ([]model.Employee, error) {
	return s.Repos.Employees.Find(ctx, func(e model.Employee) bool { return e.ManagerID == managerID })
}

// Subordinates lists everyone below id in the reporting tree.
func (s *Service) Subordinates(ctx context.Context, id int64) ([]model.Employee, error) {
	all, err := s.Repos.Employees.All(ctx)
	if err != nil {
		return nil, err
	}
	return subordinates(all, id), nil
}

// Managers lists employees flagged as managers, the candidates for
// manager assignment.
func (s *Service) Managers(ctx context.Context) ([]model.Employee, error) {
	return s.Repos.Employees.Find(ctx, func(e model.Employee) bool { return e.IsManager })
}

func (s *Service) Create(ctx context.Context, in Input) (model.Employee, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	v := &validate.Validator{}
	v.Struct(in)
	if in.EndDate != nil {
		v.DateOrder("start_date", in.StartDate, "end_date", *in.EndDate)
	}
	if err := v.Err(); err != nil {
		return model.Employee{}, err
	}

	var out model.Employee
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if err := s.checkPerson(doc, in.PersonID); err != nil {
			return false, err
		}
		if err := s.checkManager(doc, in.ManagerID); err != nil {
			return false, err
		}
		var err error
		out, err = s.Repos.Employees.InsertInto(doc, in.employee())
		return err == nil, err
	})
	if err != nil {
		return model.Employee{}, err
	}
	s.logger.InfoContext(ctx, "employee created", "employeeId", out.EmployeeID, "managerId", out.ManagerID)
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (model.Employee, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(patch); err != nil {
		return model.Employee{}, err
	}
	fields, err := repository.FieldsFrom(patch)
	if err != nil {
		return model.Employee{}, err
	}
	if patch.ClearEndDate {
		fields["end_date"] = nil
	}

	var out model.Employee
	err = s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		current, err := s.Repos.Employees.GetIn(doc, id)
		if err != nil {
			return false, err
		}
		if patch.PersonID != nil {
			if err := s.checkPerson(doc, *patch.PersonID); err != nil {
				return false, err
			}
		}
		if patch.ManagerID != nil && *patch.ManagerID != current.ManagerID {
			if err := s.checkManager(doc, *patch.ManagerID); err != nil {
				return false, err
			}
			all, err := s.Repos.Employees.FindIn(doc, nil)
			if err != nil {
				return false, err
			}
			if createsCycle(all, id, *patch.ManagerID) {
				return false, fmt.Errorf("employee %d under %d: %w", id, *patch.ManagerID, ErrManagerCycle)
			}
		}
		out, err = s.Repos.Employees.UpdateIn(doc, id, fields)
		if err != nil {
			return false, err
		}
		if out.EndDate != nil {
			v := &validate.Validator{}
			v.DateOrder("start_date", out.StartDate, "end_date", *out.EndDate)
			if err := v.Err(); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err != nil {
		return model.Employee{}, err
	}
	return out, nil
}

// AssignReports moves each listed employee under managerID in one write.
func (s *Service) AssignReports(ctx context.Context, managerID int64, reportIDs []int64) error {
	ctx = requestctx.EnsureOperationID(ctx)
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		if managerID == 0 {
			return false, fmt.Errorf("manager 0: %w", ErrManagerNotFound)
		}
		if err := s.checkManager(doc, managerID); err != nil {
			return false, err
		}
		for _, reportID := range reportIDs {
			all, err := s.Repos.Employees.FindIn(doc, nil)
			if err != nil {
				return false, err
			}
			if createsCycle(all, reportID, managerID) {
				return false, fmt.Errorf("employee %d under %d: %w", reportID, managerID, ErrManagerCycle)
			}
			if _, err := s.Repos.Employees.UpdateIn(doc, reportID, repository.Fields{"manager_id": managerID}); err != nil {
				return false, err
			}
		}
		return len(reportIDs) > 0, nil
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "reports reassigned", "managerId", managerID, "count", len(reportIDs))
	return nil
}

// Delete removes the employee. Reports and owned clients keep their ids.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	removed, err := s.Repos.Employees.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.InfoContext(ctx, "employee deleted", "employeeId", id)
	}
	return removed, nil
}

func (s *Service) checkPerson(doc *docstore.Document, personID int64) error {
	if _, err := s.Repos.Persons.GetIn(doc, personID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("person %d: %w", personID, ErrPersonNotFound)
		}
		return err
	}
	return nil
}

func (s *Service) checkManager(doc *docstore.Document, managerID int64) error {
	if managerID == 0 {
		return nil
	}
	if _, err := s.Repos.Employees.GetIn(doc, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("manager %d: %w", managerID, ErrManagerNotFound)
		}
		return err
	}
	return nil
}
