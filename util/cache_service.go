// util/cache_service.go

package util

import (
	"context"

	"github.com/buildledger/backoffice/db"
	"github.com/buildledger/backoffice/model"
)

const (
	companyCacheKind  = "company"
	providerCacheKind = "provider"
)

// ICacheService caches company and provider documents. Authorization never
// reads from it; descriptors always come from the store.
type ICacheService interface {
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	SetCompany(ctx context.Context, company *model.Company) error
	DeleteCompany(ctx context.Context, id string) error
	GetProvider(ctx context.Context, id string) (*model.Provider, error)
	SetProvider(ctx context.Context, provider *model.Provider) error
	DeleteProvider(ctx context.Context, id string) error
}

type CacheService struct{}

var _ ICacheService = &CacheService{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

// GetCompany returns nil, nil on a miss.
func (c *CacheService) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	found, err := db.GetCachedJSON(ctx, companyCacheKind, id, &company, false)
	if err != nil || !found {
		return nil, err
	}
	return &company, nil
}

func (c *CacheService) SetCompany(ctx context.Context, company *model.Company) error {
	return db.CacheJSON(ctx, companyCacheKind, company.ID, company, false)
}

func (c *CacheService) DeleteCompany(ctx context.Context, id string) error {
	return db.DeleteCached(ctx, companyCacheKind, id)
}

// Provider entries hold bank details and are sealed when a key is configured.
func (c *CacheService) GetProvider(ctx context.Context, id string) (*model.Provider, error) {
	var provider model.Provider
	found, err := db.GetCachedJSON(ctx, providerCacheKind, id, &provider, true)
	if err != nil || !found {
		return nil, err
	}
	return &provider, nil
}

func (c *CacheService) SetProvider(ctx context.Context, provider *model.Provider) error {
	return db.CacheJSON(ctx, providerCacheKind, provider.ID, provider, true)
}

func (c *CacheService) DeleteProvider(ctx context.Context, id string) error {
	return db.DeleteCached(ctx, providerCacheKind, id)
}
