// Package seed prepares an empty document for first use.
package seed

import (
	"context"
	"log/slog"
	"strings"

	credential "talentcrm/internal/auth"
	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/repository"
	"talentcrm/internal/requestctx"
)

// DefaultRoles are created, in this order, when the roles collection is empty.
var DefaultRoles = []string{model.RoleUser, model.RoleEmployee, model.RoleManager, model.RoleAdmin}

type Options struct {
	AdminUsername string
	AdminPassword string
	BcryptCost    int
	Logger        *slog.Logger
}

type Result struct {
	RolesCreated int
	AdminCreated bool
}

// Run prepares a document that has no roles: it creates the default roles and
// the bootstrap admin in one write. Once roles exist it changes nothing, so an
// admin account removed by the operator stays removed.
func Run(ctx context.Context, repos *repository.Set, opts Options) (Result, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	var res Result
	err := repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		res = Result{}
		if err := ensureRoles(doc, repos, &res); err != nil {
			return false, err
		}
		if res.RolesCreated == 0 {
			return false, nil
		}
		if err := ensureAdminUser(doc, repos, opts, &res); err != nil {
			return false, err
		}
		return res.RolesCreated > 0 || res.AdminCreated, nil
	})
	if err != nil {
		return Result{}, err
	}
	if opts.Logger != nil && (res.RolesCreated > 0 || res.AdminCreated) {
		opts.Logger.InfoContext(ctx, "seed applied", "rolesCreated", res.RolesCreated, "adminCreated", res.AdminCreated)
	}
	return res, nil
}

func ensureRoles(doc *docstore.Document, repos *repository.Set, res *Result) error {
	existing, err := repos.Roles.FindIn(doc, nil)
	if err != nil || len(existing) > 0 {
		return err
	}
	for _, name := range DefaultRoles {
		if _, err := repos.Roles.InsertInto(doc, model.Role{RoleName: name}); err != nil {
			return err
		}
		res.RolesCreated++
	}
	return nil
}

func ensureAdminUser(doc *docstore.Document, repos *repository.Set, opts Options, res *Result) error {
	username := strings.TrimSpace(opts.AdminUsername)
	if username == "" || opts.AdminPassword == "" {
		return nil
	}
	users, err := repos.Users.FindIn(doc, func(u model.User) bool { return u.Username == username })
	if err != nil || len(users) > 0 {
		return err
	}
	role, ok, err := repos.Roles.ByNameIn(doc, model.RoleAdmin)
	if err != nil || !ok {
		return err
	}

	hash, err := credential.HashPassword(opts.AdminPassword, opts.BcryptCost)
	if err != nil {
		return err
	}
	person, err := repos.Persons.InsertInto(doc, model.Person{
		FirstName:   "System",
		LastName:    "Administrator",
		FullName:    "System Administrator",
		DisplayName: username,
	})
	if err != nil {
		return err
	}
	if _, err := repos.Users.InsertInto(doc, model.User{
		Username: username,
		Password: hash,
		RoleID:   role.RoleID,
		PersonID: person.PersonID,
	}); err != nil {
		return err
	}
	res.AdminCreated = true
	return nil
}
