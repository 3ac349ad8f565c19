package access

import (
	"testing"

	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
)

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestAdminIsNotInTable(t *testing.T) {
	if _, ok := RolePermissions[model.RoleAdmin]; ok {
		t.Fatal("admin should bypass the table, not be listed in it")
	}
}

func TestPermissionMapsChildCollections(t *testing.T) {
	if got := Permission(docstore.CollectionSocialMediaAccounts, ActionEdit); got != PermClientsEdit {
		t.Fatalf("social accounts mapped to %s", got)
	}
	if got := Permission(docstore.CollectionBrandRepresentatives, ActionView); got != PermBrandsView {
		t.Fatalf("brand reps mapped to %s", got)
	}
	if got := Permission(docstore.CollectionDeals, ActionDelete); got != PermDealsDelete {
		t.Fatalf("deals mapped to %s", got)
	}
}
