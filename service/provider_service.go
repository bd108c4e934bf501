// service/provider_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

type IProviderService interface {
	IResourceService[model.Provider, *model.Provider, model.ProviderPatch]
}

// ProviderService caches provider reads and evicts on every write. Providers
// created before tenants existed have no companyId, so ADMIN may still create
// one without it.
type ProviderService struct {
	*ResourceService[model.Provider, *model.Provider, model.ProviderPatch]
	cacheService util.ICacheService
}

var _ IProviderService = &ProviderService{}

func NewProviderService(store Store[model.Provider, *model.Provider], validationUtil *util.ValidationUtil, cacheService util.ICacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus) *ProviderService {
	service := &ProviderService{
		ResourceService: NewResourceService[model.Provider, *model.Provider, model.ProviderPatch](pdp_model.ResourceProvider, store, validationUtil, notificationSvc, eventBus),
		cacheService:    cacheService,
	}
	service.tenantOptional = true

	eventBus.Subscribe(util.EventType(string(pdp_model.ResourceProvider), util.ChangeUpdated), service.evict)
	eventBus.Subscribe(util.EventType(string(pdp_model.ResourceProvider), util.ChangeDeleted), service.evict)

	return service
}

func (s *ProviderService) evict(ctx context.Context, event util.Event) error {
	ev, ok := event.Payload.(ChangeEvent)
	if !ok {
		return nil
	}
	return s.evictProvider(ctx, ev.ID)
}

func (s *ProviderService) evictProvider(ctx context.Context, id string) error {
	if err := s.cacheService.DeleteProvider(ctx, id); err != nil {
		logger.Warn("Failed to evict provider from cache", zap.Error(err), zap.String("providerID", id))
		return err
	}
	return nil
}

func (s *ProviderService) Get(ctx context.Context, id string) (*model.Provider, error) {
	cached, err := s.cacheService.GetProvider(ctx, id)
	if err == nil && cached != nil {
		return cached, nil
	}

	provider, err := s.ResourceService.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetProvider(ctx, provider); err != nil {
		logger.Warn("Failed to cache provider", zap.Error(err), zap.String("providerID", id))
	}
	return provider, nil
}

func (s *ProviderService) Update(ctx context.Context, id string, patch model.ProviderPatch, decision pdp_model.PolicyDecision) (*model.Provider, error) {
	updated, err := s.ResourceService.Update(ctx, id, patch, decision)
	if err != nil {
		return nil, err
	}
	_ = s.evictProvider(ctx, id)
	return updated, nil
}

func (s *ProviderService) Delete(ctx context.Context, id string) error {
	if err := s.ResourceService.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.evictProvider(ctx, id)
	return nil
}
