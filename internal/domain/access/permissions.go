package access

import (
	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
)

const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

const (
	PermEmployeesView   = docstore.CollectionEmployees + "." + ActionView
	PermEmployeesEdit   = docstore.CollectionEmployees + "." + ActionEdit
	PermEmployeesDelete = docstore.CollectionEmployees + "." + ActionDelete
	PermClientsView     = docstore.CollectionClients + "." + ActionView
	PermClientsEdit     = docstore.CollectionClients + "." + ActionEdit
	PermClientsDelete   = docstore.CollectionClients + "." + ActionDelete
	PermDealsView       = docstore.CollectionDeals + "." + ActionView
	PermDealsEdit       = docstore.CollectionDeals + "." + ActionEdit
	PermDealsDelete     = docstore.CollectionDeals + "." + ActionDelete
	PermContractsView   = docstore.CollectionContracts + "." + ActionView
	PermContractsEdit   = docstore.CollectionContracts + "." + ActionEdit
	PermContractsDelete = docstore.CollectionContracts + "." + ActionDelete
	PermBrandsView      = docstore.CollectionBrands + "." + ActionView
	PermBrandsEdit      = docstore.CollectionBrands + "." + ActionEdit
	PermBrandsDelete    = docstore.CollectionBrands + "." + ActionDelete
	PermPersonsView     = docstore.CollectionPersons + "." + ActionView
	PermPersonsEdit     = docstore.CollectionPersons + "." + ActionEdit
	PermPersonsDelete   = docstore.CollectionPersons + "." + ActionDelete
	PermUsersView       = docstore.CollectionUsers + "." + ActionView
	PermUsersEdit       = docstore.CollectionUsers + "." + ActionEdit
	PermUsersDelete     = docstore.CollectionUsers + "." + ActionDelete
)

var DefaultPermissions = []string{
	PermEmployeesView,
	PermEmployeesEdit,
	PermEmployeesDelete,
	PermClientsView,
	PermClientsEdit,
	PermClientsDelete,
	PermDealsView,
	PermDealsEdit,
	PermDealsDelete,
	PermContractsView,
	PermContractsEdit,
	PermContractsDelete,
	PermBrandsView,
	PermBrandsEdit,
	PermBrandsDelete,
	PermPersonsView,
	PermPersonsEdit,
	PermPersonsDelete,
	PermUsersView,
	PermUsersEdit,
	PermUsersDelete,
}

// RolePermissions lists what each non-admin role may do. Admin is not listed:
// it is allowed everything.
var RolePermissions = map[string][]string{
	model.RoleManager: {
		PermEmployeesView,
		PermClientsView,
		PermDealsView,
		PermContractsView,
		PermBrandsView,
		PermEmployeesEdit,
		PermClientsEdit,
		PermDealsEdit,
		PermContractsEdit,
		PermClientsDelete,
		PermDealsDelete,
	},
	model.RoleEmployee: {
		PermClientsView,
		PermDealsView,
		PermBrandsView,
		PermClientsEdit,
	},
	model.RoleUser: {
		PermDealsView,
	},
	model.RoleClient: {
		PermDealsView,
	},
	model.RoleRep: {
		PermDealsView,
	},
}

// Permission builds the key checked for an action on a collection. Child
// collections are governed by their parent's permissions.
func Permission(collection, action string) string {
	switch collection {
	case docstore.CollectionSocialMediaAccounts:
		collection = docstore.CollectionClients
	case docstore.CollectionBrandRepresentatives:
		collection = docstore.CollectionBrands
	}
	return collection + "." + action
}
