// service/category_service.go
package service

import (
	"context"
	"strings"

	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

type categoryStore interface {
	Store[model.Category, *model.Category]
	FindBy(ctx context.Context, key, value string) (*model.Category, error)
}

type ICategoryService interface {
	IResourceService[model.Category, *model.Category, model.CategoryPatch]
	GetByKey(ctx context.Context, key string) (*model.Category, error)
}

// CategoryService serves the global category lookup.
type CategoryService struct {
	*ResourceService[model.Category, *model.Category, model.CategoryPatch]
	categories categoryStore
}

var _ ICategoryService = &CategoryService{}

func NewCategoryService(store categoryStore, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *CategoryService {
	return &CategoryService{
		ResourceService: NewResourceService[model.Category, *model.Category, model.CategoryPatch](pdp_model.ResourceCategory, store, validationUtil, notificationSvc, eventBus),
		categories:      store,
	}
}

func (s *CategoryService) GetByKey(ctx context.Context, key string) (*model.Category, error) {
	return s.categories.FindBy(ctx, "key", strings.ToLower(strings.TrimSpace(key)))
}
