// service/purchase_order_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

// providerStatuses are the only targets a PROVIDER may move its own order to.
var providerStatuses = map[model.PurchaseOrderStatus]bool{
	model.PurchaseOrderAccepted:  true,
	model.PurchaseOrderRejected:  true,
	model.PurchaseOrderDelivered: true,
}

type IPurchaseOrderService interface {
	IResourceService[model.PurchaseOrder, *model.PurchaseOrder, model.PurchaseOrderPatch]
}

// PurchaseOrderService enforces the order workflow. Orders name a project and
// a provider, and the caller must be able to read both.
type PurchaseOrderService struct {
	*ResourceService[model.PurchaseOrder, *model.PurchaseOrder, model.PurchaseOrderPatch]
	authorizer pdp.IAuthorizer
	projects   Store[model.Project, *model.Project]
	providers  Store[model.Provider, *model.Provider]
}

var _ IPurchaseOrderService = &PurchaseOrderService{}

func NewPurchaseOrderService(store Store[model.PurchaseOrder, *model.PurchaseOrder], projects Store[model.Project, *model.Project], providers Store[model.Provider, *model.Provider], authorizer pdp.IAuthorizer, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *PurchaseOrderService {
	service := &PurchaseOrderService{
		ResourceService: NewResourceService[model.PurchaseOrder, *model.PurchaseOrder, model.PurchaseOrderPatch](pdp_model.ResourcePurchaseOrder, store, validationUtil, notificationSvc, eventBus),
		authorizer:      authorizer,
		projects:        projects,
		providers:       providers,
	}
	service.validateCreate = service.checkCreate
	service.validateUpdate = service.checkUpdate

	eventBus.Subscribe(util.EventType(string(pdp_model.ResourcePurchaseOrder), util.ChangeUpdated), service.handleStatusChange)

	return service
}

func (s *PurchaseOrderService) checkCreate(ctx context.Context, principal pdp_model.Principal, order *model.PurchaseOrder) error {
	if order.Status == "" {
		order.Status = model.PurchaseOrderDraft
	}
	if order.Status != model.PurchaseOrderDraft {
		return fmt.Errorf("new orders start as %s: %w", model.PurchaseOrderDraft, bo_errors.ErrInvalidStatusTransition)
	}
	if err := s.validationUtil.ValidatePurchaseOrder(order); err != nil {
		return err
	}
	order.Recalculate()
	return s.checkReferences(ctx, principal, order)
}

func (s *PurchaseOrderService) checkUpdate(ctx context.Context, principal pdp_model.Principal, old, updated *model.PurchaseOrder) error {
	if old.Status != updated.Status {
		if !old.Status.CanTransition(updated.Status) {
			return fmt.Errorf("%s to %s: %w", old.Status, updated.Status, bo_errors.ErrInvalidStatusTransition)
		}
		if principal.Role() == model.RoleProvider && !providerStatuses[updated.Status] {
			return fmt.Errorf("provider cannot set %s: %w", updated.Status, bo_errors.ErrInvalidStatusTransition)
		}
	}
	if err := s.validationUtil.ValidatePurchaseOrder(updated); err != nil {
		return err
	}
	if old.ProjectID != updated.ProjectID || old.ProviderID != updated.ProviderID {
		return s.checkReferences(ctx, principal, updated)
	}
	return nil
}

// checkReferences re-authorizes READ on the project and provider the order
// names, then checks both belong to the order's tenant. A provider without a
// tenant passes the tenant check, but only ADMIN can reach it: the evaluator
// denies READ on a tenantless record to every other role.
func (s *PurchaseOrderService) checkReferences(ctx context.Context, principal pdp_model.Principal, order *model.PurchaseOrder) error {
	if _, err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionRead, pdp_model.ResourceProject, order.ProjectID); err != nil {
		return fmt.Errorf("project %s: %w", order.ProjectID, err)
	}
	if _, err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionRead, pdp_model.ResourceProvider, order.ProviderID); err != nil {
		return fmt.Errorf("provider %s: %w", order.ProviderID, err)
	}

	project, err := s.projects.Get(ctx, order.ProjectID)
	if err != nil {
		return err
	}
	if project.CompanyID != order.CompanyID {
		return bo_errors.Invalid("project %s belongs to another company", order.ProjectID)
	}
	provider, err := s.providers.Get(ctx, order.ProviderID)
	if err != nil {
		return err
	}
	if provider.CompanyID != "" && provider.CompanyID != order.CompanyID {
		return bo_errors.Invalid("provider %s belongs to another company", order.ProviderID)
	}
	return nil
}

func (s *PurchaseOrderService) handleStatusChange(ctx context.Context, event util.Event) error {
	ev, ok := event.Payload.(ChangeEvent)
	if !ok {
		return nil
	}
	old, _ := ev.Old.(*model.PurchaseOrder)
	updated, _ := ev.New.(*model.PurchaseOrder)
	if old == nil || updated == nil || old.Status == updated.Status {
		return nil
	}

	logger.Info("Purchase order status changed",
		zap.String("orderID", updated.ID),
		zap.String("from", string(old.Status)),
		zap.String("to", string(updated.Status)))

	provider, err := s.providers.Get(ctx, updated.ProviderID)
	if err != nil {
		logger.Warn("Could not load provider for order notification", zap.Error(err), zap.String("orderID", updated.ID))
		return err
	}
	return s.notificationSvc.NotifyPurchaseOrderStatus(ctx, updated, provider)
}
