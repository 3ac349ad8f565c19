package repository

import (
	"context"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
)

type (
	Persons              = Repository[model.Person, *model.Person]
	Employees            = Repository[model.Employee, *model.Employee]
	Clients              = Repository[model.Client, *model.Client]
	SocialMediaAccounts  = Repository[model.SocialMediaAccount, *model.SocialMediaAccount]
	Brands               = Repository[model.Brand, *model.Brand]
	BrandRepresentatives = Repository[model.BrandRepresentative, *model.BrandRepresentative]
	Deals                = Repository[model.Deal, *model.Deal]
	Contracts            = Repository[model.Contract, *model.Contract]
)

type Roles struct {
	*Repository[model.Role, *model.Role]
}

func (r Roles) GetByName(ctx context.Context, name string) (model.Role, error) {
	return r.GetBy(ctx, "role_name", name)
}

// ByNameIn looks a role up inside an already loaded document.
func (r Roles) ByNameIn(doc *docstore.Document, name string) (model.Role, bool, error) {
	roles, err := r.FindIn(doc, func(role model.Role) bool { return role.RoleName == name })
	if err != nil || len(roles) == 0 {
		return model.Role{}, false, err
	}
	return roles[0], true, nil
}

type Users struct {
	*Repository[model.User, *model.User]
}

func (r Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.GetBy(ctx, "username", username)
}

// Set bundles one repository per collection over a shared store.
type Set struct {
	Store                *docstore.Store
	Roles                Roles
	Persons              *Persons
	Users                Users
	Employees            *Employees
	Clients              *Clients
	SocialMediaAccounts  *SocialMediaAccounts
	Brands               *Brands
	BrandRepresentatives *BrandRepresentatives
	Deals                *Deals
	Contracts            *Contracts
}

func NewSet(store *docstore.Store) *Set {
	return &Set{
		Store:                store,
		Roles:                Roles{New[model.Role, *model.Role](store)},
		Persons:              New[model.Person, *model.Person](store),
		Users:                Users{New[model.User, *model.User](store)},
		Employees:            New[model.Employee, *model.Employee](store),
		Clients:              New[model.Client, *model.Client](store),
		SocialMediaAccounts:  New[model.SocialMediaAccount, *model.SocialMediaAccount](store),
		Brands:               New[model.Brand, *model.Brand](store),
		BrandRepresentatives: New[model.BrandRepresentative, *model.BrandRepresentative](store),
		Deals:                New[model.Deal, *model.Deal](store),
		Contracts:            New[model.Contract, *model.Contract](store),
	}
}
