package access

import (
	"context"

	"talentcrm/internal/model"
	"talentcrm/internal/repository"
)

// Policy answers permission and visibility questions against a snapshot of
// roles and employees. It never mutates the document.
type Policy struct {
	roles    map[int64]string
	byPerson map[int64]model.Employee
}

// Load snapshots roles and employees from the current document.
func Load(ctx context.Context, repos *repository.Set) (*Policy, error) {
	roles, err := repos.Roles.All(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := repos.Employees.All(ctx)
	if err != nil {
		return nil, err
	}
	return NewPolicy(roles, employees), nil
}

func NewPolicy(roles []model.Role, employees []model.Employee) *Policy {
	p := &Policy{
		roles:    make(map[int64]string, len(roles)),
		byPerson: make(map[int64]model.Employee, len(employees)),
	}
	for _, role := range roles {
		if _, ok := p.roles[role.RoleID]; !ok {
			p.roles[role.RoleID] = role.RoleName
		}
	}
	for _, emp := range employees {
		if emp.PersonID == 0 {
			continue
		}
		if _, ok := p.byPerson[emp.PersonID]; !ok {
			p.byPerson[emp.PersonID] = emp
		}
	}
	return p
}

// RoleName resolves the user's role; an unknown role id counts as User.
func (p *Policy) RoleName(user model.User) string {
	if name, ok := p.roles[user.RoleID]; ok {
		return name
	}
	return model.RoleUser
}

func (p *Policy) Allowed(user model.User, permission string) bool {
	role := p.RoleName(user)
	if role == model.RoleAdmin {
		return true
	}
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}

func (p *Policy) CanView(collection string, user model.User) bool {
	return p.Allowed(user, Permission(collection, ActionView))
}

func (p *Policy) CanEdit(collection string, user model.User) bool {
	return p.Allowed(user, Permission(collection, ActionEdit))
}

func (p *Policy) CanDelete(collection string, user model.User) bool {
	return p.Allowed(user, Permission(collection, ActionDelete))
}

// EmployeeFor returns the employee record tied to the user's person.
func (p *Policy) EmployeeFor(user model.User) (model.Employee, bool) {
	if user.PersonID == 0 {
		return model.Employee{}, false
	}
	emp, ok := p.byPerson[user.PersonID]
	return emp, ok
}

// ScopeClients filters clients down to those the user may see. Admins and
// managers see everything; any other role sees the clients owned by the
// employee record tied to its person.
func (p *Policy) ScopeClients(user model.User, clients []model.Client) []model.Client {
	switch p.RoleName(user) {
	case model.RoleAdmin, model.RoleManager:
		return clients
	}
	emp, ok := p.EmployeeFor(user)
	if !ok {
		return []model.Client{}
	}
	out := []model.Client{}
	for _, c := range clients {
		if c.EmployeeID == emp.EmployeeID {
			out = append(out, c)
		}
	}
	return out
}

// ScopeEmployees filters employees down to those the user may see. A
// manager sees itself and its direct reports only.
func (p *Policy) ScopeEmployees(user model.User, employees []model.Employee) []model.Employee {
	switch p.RoleName(user) {
	case model.RoleAdmin:
		return employees
	case model.RoleManager:
		self, ok := p.EmployeeFor(user)
		if !ok {
			return []model.Employee{}
		}
		out := []model.Employee{}
		for _, e := range employees {
			if e.EmployeeID == self.EmployeeID || e.ManagerID == self.EmployeeID {
				out = append(out, e)
			}
		}
		return out
	default:
		return []model.Employee{}
	}
}
