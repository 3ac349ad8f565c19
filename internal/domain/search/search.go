// Package search finds records containing a text fragment across every
// collection the caller is allowed to read.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"talentcrm/internal/domain/access"
	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/repository"
)

var ErrEmptyQuery = errors.New("search query is empty")

// hiddenFields are never matched and never returned.
var hiddenFields = map[string]struct{}{"password": {}}

var idFields = map[string]string{
	docstore.CollectionRoles:                model.Role{}.IDField(),
	docstore.CollectionPersons:              model.Person{}.IDField(),
	docstore.CollectionUsers:                model.User{}.IDField(),
	docstore.CollectionEmployees:            model.Employee{}.IDField(),
	docstore.CollectionClients:              model.Client{}.IDField(),
	docstore.CollectionSocialMediaAccounts:  model.SocialMediaAccount{}.IDField(),
	docstore.CollectionBrands:               model.Brand{}.IDField(),
	docstore.CollectionBrandRepresentatives: model.BrandRepresentative{}.IDField(),
	docstore.CollectionDeals:                model.Deal{}.IDField(),
	docstore.CollectionContracts:            model.Contract{}.IDField(),
}

type Field struct {
	Name  string
	Value string
}

type Hit struct {
	Collection string
	ID         int64
	Fields     []Field
	// Matched names the fields that contained the query.
	Matched []string
}

type Service struct {
	Repos *repository.Set
}

func NewService(repos *repository.Set) *Service {
	return &Service{Repos: repos}
}

// Search returns hits in collection order, then document order.
func (s *Service) Search(ctx context.Context, user model.User, query string) ([]Hit, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, ErrEmptyQuery
	}
	doc, err := s.Repos.Store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.Repos.Roles.FindIn(doc, nil)
	if err != nil {
		return nil, err
	}
	employees, err := s.Repos.Employees.FindIn(doc, nil)
	if err != nil {
		return nil, err
	}
	policy := access.NewPolicy(roles, employees)
	scope, err := s.scope(doc, policy, user, employees)
	if err != nil {
		return nil, err
	}

	hits := []Hit{}
	for _, collection := range docstore.Collections {
		if !policy.CanView(collection, user) {
			continue
		}
		idField := idFields[collection]
		for _, raw := range doc.Records(collection) {
			rec := gjson.ParseBytes(raw)
			id := rec.Get(idField).Int()
			if !scope.visible(collection, rec, id) {
				continue
			}
			if hit, ok := match(rec, needle); ok {
				hit.Collection = collection
				hit.ID = id
				hits = append(hits, hit)
			}
		}
	}
	return hits, nil
}

func match(rec gjson.Result, needle string) (Hit, bool) {
	var hit Hit
	rec.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, hidden := hiddenFields[name]; hidden {
			return true
		}
		text := value.String()
		hit.Fields = append(hit.Fields, Field{Name: name, Value: text})
		if value.Type != gjson.Null && strings.Contains(strings.ToLower(text), needle) {
			hit.Matched = append(hit.Matched, name)
		}
		return true
	})
	return hit, len(hit.Matched) > 0
}

// visibility narrows collections whose rows are scoped per user. A nil set
// means the collection is not row-scoped.
type visibility struct {
	employees map[int64]struct{}
	clients   map[int64]struct{}
}

func (v visibility) visible(collection string, rec gjson.Result, id int64) bool {
	switch collection {
	case docstore.CollectionEmployees:
		_, ok := v.employees[id]
		return ok
	case docstore.CollectionClients:
		_, ok := v.clients[id]
		return ok
	case docstore.CollectionSocialMediaAccounts:
		_, ok := v.clients[rec.Get("client_id").Int()]
		return ok
	default:
		return true
	}
}

func (s *Service) scope(doc *docstore.Document, policy *access.Policy, user model.User, employees []model.Employee) (visibility, error) {
	clients, err := s.Repos.Clients.FindIn(doc, nil)
	if err != nil {
		return visibility{}, err
	}
	v := visibility{employees: map[int64]struct{}{}, clients: map[int64]struct{}{}}
	for _, e := range policy.ScopeEmployees(user, employees) {
		v.employees[e.EmployeeID] = struct{}{}
	}
	for _, c := range policy.ScopeClients(user, clients) {
		v.clients[c.ClientID] = struct{}{}
	}
	return v, nil
}
