// service/resource_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/buildledger/backoffice/dao"
	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

type record[T any] interface {
	*T
	model.Record
}

// Store is the persistence surface a resource service needs. *dao.NodeStore satisfies it.
type Store[T any, PT record[T]] interface {
	Create(ctx context.Context, doc PT) (PT, error)
	Update(ctx context.Context, doc PT) (PT, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (PT, error)
	List(ctx context.Context, filter dao.ListFilter) ([]PT, error)
}

// tenantStamped is implemented by entities whose companyId is set by the service.
type tenantStamped interface {
	SetCompanyID(id string)
}

// ListParams carries pagination plus the ADMIN-only tenant filter.
type ListParams struct {
	Limit     int
	Offset    int
	CompanyID string
}

// ChangeEvent is the payload published on "<type>.created|updated|deleted".
type ChangeEvent struct {
	ResourceType pdp_model.ResourceType
	ID           string
	TenantID     string
	Old          any
	New          any
}

type IResourceService[T any, PT record[T], P model.Patch[T]] interface {
	Create(ctx context.Context, doc PT) (PT, error)
	Get(ctx context.Context, id string) (PT, error)
	List(ctx context.Context, params ListParams) ([]PT, error)
	Update(ctx context.Context, id string, patch P, decision pdp_model.PolicyDecision) (PT, error)
	Delete(ctx context.Context, id string) error
}

// ResourceService implements create/read/list/update/delete for one resource type.
// Authorization has already happened in the guard; the service applies tenant
// stamping, field restrictions and validation.
type ResourceService[T any, PT record[T], P model.Patch[T]] struct {
	resourceType    pdp_model.ResourceType
	store           Store[T, PT]
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus

	tenantScoped   bool
	tenantOptional bool

	validateCreate func(ctx context.Context, principal pdp_model.Principal, doc PT) error
	validateUpdate func(ctx context.Context, principal pdp_model.Principal, old, updated PT) error
}

var _ IResourceService[model.Project, *model.Project, model.ProjectPatch] = &ResourceService[model.Project, *model.Project, model.ProjectPatch]{}

func NewResourceService[T any, PT record[T], P model.Patch[T]](resourceType pdp_model.ResourceType, store Store[T, PT], validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *ResourceService[T, PT, P] {
	s := &ResourceService[T, PT, P]{
		resourceType:    resourceType,
		store:           store,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		tenantScoped:    resourceType != pdp_model.ResourceCategory,
	}

	name := string(resourceType)
	eventBus.Subscribe(util.EventType(name, util.ChangeCreated), s.handleChange(util.ChangeCreated))
	eventBus.Subscribe(util.EventType(name, util.ChangeUpdated), s.handleChange(util.ChangeUpdated))
	eventBus.Subscribe(util.EventType(name, util.ChangeDeleted), s.handleChange(util.ChangeDeleted))

	return s
}

func (s *ResourceService[T, PT, P]) handleChange(change string) util.EventHandler {
	return func(ctx context.Context, event util.Event) error {
		ev, ok := event.Payload.(ChangeEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
		}
		if !s.tenantScoped || s.notificationSvc == nil {
			return nil
		}
		if err := s.notificationSvc.NotifyTenantChange(ctx, change, string(ev.ResourceType), ev.ID, ev.TenantID); err != nil {
			logger.Warn("Failed to send change notification", zap.Error(err), zap.String("id", ev.ID))
		}
		return nil
	}
}

func (s *ResourceService[T, PT, P]) publish(ctx context.Context, change string, id, tenantID string, old, updated PT) {
	ev := ChangeEvent{ResourceType: s.resourceType, ID: id, TenantID: tenantID}
	if old != nil {
		ev.Old = old
	}
	if updated != nil {
		ev.New = updated
	}
	s.eventBus.Publish(ctx, util.EventType(string(s.resourceType), change), ev)
}

func principalFrom(ctx context.Context) (pdp_model.Principal, error) {
	principal, ok := pdp_model.PrincipalFromContext(ctx)
	if !ok {
		return pdp_model.Principal{}, bo_errors.ErrMissingCredential
	}
	return principal, nil
}

// Create stamps the caller's tenant on tenant-scoped records. ADMIN keeps the
// supplied companyId and must supply one unless the type allows legacy records.
func (s *ResourceService[T, PT, P]) Create(ctx context.Context, doc PT) (PT, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}

	doc.SetRecordID("")
	if stamped, ok := any(doc).(tenantStamped); ok && s.tenantScoped {
		if !principal.IsAdmin() {
			stamped.SetCompanyID(principal.TenantID())
		} else if doc.Scope().CompanyID == "" && !s.tenantOptional {
			return nil, bo_errors.Invalid("companyId is required")
		}
	}

	if err := s.validationUtil.ValidateStruct(doc); err != nil {
		return nil, err
	}
	if s.validateCreate != nil {
		if err := s.validateCreate(ctx, principal, doc); err != nil {
			return nil, err
		}
	}

	created, err := s.store.Create(ctx, doc)
	if err != nil {
		logger.Error("Error creating resource",
			zap.Error(err),
			zap.String("resourceType", string(s.resourceType)),
			zap.String("userID", principal.ID()))
		return nil, err
	}

	s.publish(ctx, util.ChangeCreated, created.RecordID(), created.Scope().CompanyID, nil, created)
	logger.Info("Resource created successfully",
		zap.String("resourceType", string(s.resourceType)),
		zap.String("id", created.RecordID()),
		zap.String("userID", principal.ID()))
	return created, nil
}

func (s *ResourceService[T, PT, P]) Get(ctx context.Context, id string) (PT, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		logger.Debug("Error retrieving resource",
			zap.Error(err),
			zap.String("resourceType", string(s.resourceType)),
			zap.String("id", id))
		return nil, err
	}
	return doc, nil
}

// List scopes the query to the caller's tenant. ADMIN may narrow to one
// tenant with params.CompanyID.
func (s *ResourceService[T, PT, P]) List(ctx context.Context, params ListParams) ([]PT, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}

	filter := dao.ListFilter{Limit: params.Limit, Offset: params.Offset}
	if s.tenantScoped {
		switch {
		case principal.IsAdmin():
			filter.CompanyID = params.CompanyID
		case principal.Role() == model.RoleProvider:
			// The guard denies LIST to PROVIDER. Internal callers still get
			// only the records the provider owns.
			filter.OwnerID = principal.ResourceScopeID()
		default:
			filter.CompanyID = principal.TenantID()
		}
	}

	docs, err := s.store.List(ctx, filter)
	if err != nil {
		logger.Error("Error listing resources",
			zap.Error(err),
			zap.String("resourceType", string(s.resourceType)),
			zap.Int("limit", params.Limit),
			zap.Int("offset", params.Offset))
		return nil, err
	}
	return docs, nil
}

// Update applies patch after checking its fields against the decision's allow-list.
func (s *ResourceService[T, PT, P]) Update(ctx context.Context, id string, patch P, decision pdp_model.PolicyDecision) (PT, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := decision.CheckFields(patch.Fields()); err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateStruct(patch); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := PT(new(T))
	*old = *existing

	patch.Apply((*T)(existing))
	if existing.Scope().CompanyID != old.Scope().CompanyID && !principal.IsAdmin() {
		return nil, bo_errors.Invalid("companyId cannot be changed")
	}
	if err := s.validationUtil.ValidateStruct(existing); err != nil {
		return nil, err
	}
	if s.validateUpdate != nil {
		if err := s.validateUpdate(ctx, principal, old, existing); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		logger.Error("Error updating resource",
			zap.Error(err),
			zap.String("resourceType", string(s.resourceType)),
			zap.String("id", id),
			zap.String("userID", principal.ID()))
		return nil, err
	}

	s.publish(ctx, util.ChangeUpdated, id, updated.Scope().CompanyID, old, updated)
	logger.Info("Resource updated successfully",
		zap.String("resourceType", string(s.resourceType)),
		zap.String("id", id),
		zap.Strings("fields", patch.Fields()),
		zap.String("userID", principal.ID()))
	return updated, nil
}

func (s *ResourceService[T, PT, P]) Delete(ctx context.Context, id string) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return err
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		logger.Error("Error deleting resource",
			zap.Error(err),
			zap.String("resourceType", string(s.resourceType)),
			zap.String("id", id),
			zap.String("userID", principal.ID()))
		return err
	}

	s.publish(ctx, util.ChangeDeleted, id, existing.Scope().CompanyID, existing, nil)
	logger.Info("Resource deleted successfully",
		zap.String("resourceType", string(s.resourceType)),
		zap.String("id", id),
		zap.String("userID", principal.ID()))
	return nil
}
