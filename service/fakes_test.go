package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/buildledger/backoffice/dao"
	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

// memStore is an in-memory Store keyed by record id.
type memStore[T any, PT record[T]] struct {
	mu         sync.Mutex
	docs       map[string]T
	seq        int
	notFound   error
	failCreate error
	updates    int
}

func newMemStore[T any, PT record[T]]() *memStore[T, PT] {
	return &memStore[T, PT]{docs: map[string]T{}, notFound: bo_errors.ErrResourceNotFound}
}

func (m *memStore[T, PT]) Create(ctx context.Context, doc PT) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	if doc.RecordID() == "" {
		m.seq++
		doc.SetRecordID(fmt.Sprintf("id-%d", m.seq))
	}
	doc.Stamp(time.Now().UTC())
	m.docs[doc.RecordID()] = *doc
	out := *doc
	return PT(&out), nil
}

func (m *memStore[T, PT]) Update(ctx context.Context, doc PT) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.RecordID()]; !ok {
		return nil, m.notFound
	}
	doc.Stamp(time.Now().UTC())
	m.docs[doc.RecordID()] = *doc
	m.updates++
	out := *doc
	return PT(&out), nil
}

func (m *memStore[T, PT]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return m.notFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memStore[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, m.notFound
	}
	return PT(&doc), nil
}

func (m *memStore[T, PT]) List(ctx context.Context, filter dao.ListFilter) ([]PT, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []PT
	for _, id := range ids {
		doc := m.docs[id]
		scope := PT(&doc).Scope()
		if filter.CompanyID != "" && scope.CompanyID != filter.CompanyID {
			continue
		}
		if filter.OwnerID != "" && scope.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, PT(&doc))
	}
	return out, nil
}

func (m *memStore[T, PT]) put(doc PT) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.RecordID()] = *doc
}

func (m *memStore[T, PT]) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

// mapCache is an ICacheService backed by maps.
type mapCache struct {
	mu        sync.Mutex
	companies map[string]model.Company
	providers map[string]model.Provider
	hits      int
}

var _ util.ICacheService = &mapCache{}

func newMapCache() *mapCache {
	return &mapCache{companies: map[string]model.Company{}, providers: map[string]model.Provider{}}
}

func (c *mapCache) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.companies[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &v, nil
}

func (c *mapCache) SetCompany(ctx context.Context, company *model.Company) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.companies[company.ID] = *company
	return nil
}

func (c *mapCache) DeleteCompany(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.companies, id)
	return nil
}

func (c *mapCache) GetProvider(ctx context.Context, id string) (*model.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.providers[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return &v, nil
}

func (c *mapCache) SetProvider(ctx context.Context, provider *model.Provider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[provider.ID] = *provider
	return nil
}

func (c *mapCache) DeleteProvider(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.providers, id)
	return nil
}

func (c *mapCache) hasCompany(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.companies[id]
	return ok
}

// authorizerStub allows everything except the ids listed in deny.
type authorizerStub struct {
	mu    sync.Mutex
	deny  map[string]error
	calls []string
}

var _ pdp.IAuthorizer = &authorizerStub{}

func (a *authorizerStub) Authorize(ctx context.Context, principal pdp_model.Principal, action pdp_model.Action, resourceType pdp_model.ResourceType, resourceID string) (pdp_model.PolicyDecision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, fmt.Sprintf("%s %s %s", action, resourceType, resourceID))
	if err, ok := a.deny[resourceID]; ok {
		return pdp_model.Denied(pdp_model.DenialCrossTenant, "test"), err
	}
	return pdp_model.Allowed("test"), nil
}

func principalCtx(t *testing.T, id string, role model.Role, tenantID, scopeID string) context.Context {
	t.Helper()
	p, err := pdp_model.NewPrincipal(id, role, tenantID, scopeID)
	require.NoError(t, err)
	return pdp_model.WithPrincipal(context.Background(), p)
}

func adminCtx(t *testing.T) context.Context {
	return principalCtx(t, "admin-1", model.RoleAdmin, "", "")
}

func companyCtx(t *testing.T, tenantID string) context.Context {
	return principalCtx(t, tenantID, model.RoleCompany, tenantID, "")
}

func strPtr(s string) *string { return &s }
