package employee

import (
	"context"
	"errors"
	"testing"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/validate"
	"talentcrm/internal/repository"
)

type fixture struct {
	svc    *Service
	person func() int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	svc := NewService(repository.NewSet(docstore.New(docstore.NewMemoryBackend(nil))), nil)
	return fixture{
		svc: svc,
		person: func() int64 {
			p, err := svc.Repos.Persons.Add(context.Background(), model.Person{FirstName: "P"})
			if err != nil {
				t.Fatalf("add person: %v", err)
			}
			return p.PersonID
		},
	}
}

func (f fixture) hire(t *testing.T, managerID int64, isManager bool) model.Employee {
	t.Helper()
	emp, err := f.svc.Create(context.Background(), Input{
		PersonID:  f.person(),
		Position:  "Agent",
		ManagerID: managerID,
		StartDate: "2024-01-01",
		IsActive:  true,
		IsManager: isManager,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return emp
}

func TestCreateChecksReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, Input{PersonID: 404, Position: "Agent", StartDate: "2024-01-01"})
	if !errors.Is(err, ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	_, err = f.svc.Create(ctx, Input{PersonID: f.person(), Position: "Agent", ManagerID: 999, StartDate: "2024-01-01"})
	if !errors.Is(err, ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
}

func TestCreateValidatesDates(t *testing.T) {
	f := newFixture(t)
	end := "2023-01-01"
	_, err := f.svc.Create(context.Background(), Input{PersonID: f.person(), Position: "Agent", StartDate: "2024-01-01", EndDate: &end})
	if !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = f.svc.Create(context.Background(), Input{PersonID: f.person(), Position: "Agent", StartDate: "01/02/2024"})
	if !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDirectReportsAndSubordinates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boss := f.hire(t, 0, true)
	lead := f.hire(t, boss.EmployeeID, true)
	agent := f.hire(t, lead.EmployeeID, false)

	direct, err := f.svc.DirectReports(ctx, boss.EmployeeID)
	if err != nil {
		t.Fatalf("direct reports: %v", err)
	}
	if len(direct) != 1 || direct[0].EmployeeID != lead.EmployeeID {
		t.Fatalf("direct reports = %+v", direct)
	}
	all, err := f.svc.Subordinates(ctx, boss.EmployeeID)
	if err != nil {
		t.Fatalf("subordinates: %v", err)
	}
	if len(all) != 2 || all[1].EmployeeID != agent.EmployeeID {
		t.Fatalf("subordinates = %+v", all)
	}
	managers, _ := f.svc.Managers(ctx)
	if len(managers) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(managers))
	}
}

func TestUpdateRejectsCycles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boss := f.hire(t, 0, true)
	lead := f.hire(t, boss.EmployeeID, true)
	agent := f.hire(t, lead.EmployeeID, false)

	self := boss.EmployeeID
	if _, err := f.svc.Update(ctx, boss.EmployeeID, Patch{ManagerID: &self}); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected self cycle rejection, got %v", err)
	}
	under := agent.EmployeeID
	if _, err := f.svc.Update(ctx, boss.EmployeeID, Patch{ManagerID: &under}); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected cycle rejection, got %v", err)
	}
	stored, _ := f.svc.Get(ctx, boss.EmployeeID)
	if stored.ManagerID != 0 {
		t.Fatal("rejected update was persisted")
	}

	root := int64(0)
	if _, err := f.svc.Update(ctx, agent.EmployeeID, Patch{ManagerID: &root}); err != nil {
		t.Fatalf("detaching should succeed: %v", err)
	}
	if _, err := f.svc.Update(ctx, boss.EmployeeID, Patch{ManagerID: &under}); err != nil {
		t.Fatalf("no cycle after detaching: %v", err)
	}
}

func TestCreatesCycleToleratesStoredLoops(t *testing.T) {
	stored := []model.Employee{
		{EmployeeID: 1, ManagerID: 2},
		{EmployeeID: 2, ManagerID: 1},
		{EmployeeID: 3},
	}
	if createsCycle(stored, 3, 1) {
		t.Fatal("existing loop not involving 3 should not count")
	}
	if !createsCycle(stored, 1, 2) {
		t.Fatal("expected loop through 1")
	}
}

func TestUpdateEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.hire(t, 0, false)

	end := "2024-06-30"
	updated, err := f.svc.Update(ctx, emp.EmployeeID, Patch{EndDate: &end})
	if err != nil || updated.EndDate == nil || *updated.EndDate != end {
		t.Fatalf("set end date: %+v %v", updated, err)
	}
	updated, err = f.svc.Update(ctx, emp.EmployeeID, Patch{ClearEndDate: true})
	if err != nil || updated.EndDate != nil {
		t.Fatalf("clear end date: %+v %v", updated, err)
	}
	early := "2023-12-31"
	if _, err := f.svc.Update(ctx, emp.EmployeeID, Patch{EndDate: &early}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected date order error, got %v", err)
	}
}

func TestAssignReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.hire(t, 0, false)
	b := f.hire(t, 0, false)
	mgr := f.hire(t, 0, true)

	if err := f.svc.AssignReports(ctx, mgr.EmployeeID, []int64{a.EmployeeID, b.EmployeeID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	reports, _ := f.svc.DirectReports(ctx, mgr.EmployeeID)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if err := f.svc.AssignReports(ctx, a.EmployeeID, []int64{mgr.EmployeeID}); !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected cycle rejection, got %v", err)
	}
}

func TestByPerson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.hire(t, 0, false)
	got, err := f.svc.ByPerson(ctx, emp.PersonID)
	if err != nil || got.EmployeeID != emp.EmployeeID {
		t.Fatalf("by person: %+v %v", got, err)
	}
	if _, err := f.svc.ByPerson(ctx, 0); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteLeavesOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boss := f.hire(t, 0, true)
	agent := f.hire(t, boss.EmployeeID, false)

	removed, err := f.svc.Delete(ctx, boss.EmployeeID)
	if err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	orphan, err := f.svc.Get(ctx, agent.EmployeeID)
	if err != nil || orphan.ManagerID != boss.EmployeeID {
		t.Fatalf("orphan changed: %+v %v", orphan, err)
	}
}
