// Package pdp is the access-control decision point used by the guard and services.
package pdp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/buildledger/backoffice/audit"
	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/pdp/engine"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// DescriptorSource loads the tenant projection of a stored record.
// It returns nil, nil when the record does not exist.
type DescriptorSource interface {
	GetDescriptor(ctx context.Context, resourceType pdp_model.ResourceType, id string) (*pdp_model.ResourceDescriptor, error)
}

// AccessDeniedError is returned for every policy denial. It unwraps to
// ErrNotFound when the denial is masked, otherwise to ErrForbidden.
type AccessDeniedError struct {
	Decision     pdp_model.PolicyDecision
	ResourceType pdp_model.ResourceType
	ResourceID   string
	masked       bool
}

func (e *AccessDeniedError) Error() string {
	if e.masked {
		return fmt.Sprintf("%s %s", e.ResourceType, bo_errors.ErrNotFound)
	}
	return fmt.Sprintf("access to %s denied", e.ResourceType)
}

func (e *AccessDeniedError) Unwrap() error {
	if e.masked {
		return bo_errors.ErrNotFound
	}
	return bo_errors.ErrForbidden
}

func (e *AccessDeniedError) Masked() bool { return e.masked }

type IAuthorizer interface {
	Authorize(ctx context.Context, principal pdp_model.Principal, action pdp_model.Action, resourceType pdp_model.ResourceType, resourceID string) (pdp_model.PolicyDecision, error)
}

type Authorizer struct {
	evaluator    *engine.PolicyEvaluator
	descriptors  DescriptorSource
	auditService audit.Service
}

var _ IAuthorizer = &Authorizer{}

func NewAuthorizer(evaluator *engine.PolicyEvaluator, descriptors DescriptorSource, auditService audit.Service) *Authorizer {
	return &Authorizer{evaluator: evaluator, descriptors: descriptors, auditService: auditService}
}

// Authorize decides whether principal may perform action. Item actions
// re-fetch the descriptor from storage; collection actions (CREATE, LIST, or
// an empty id) are evaluated against the principal's own scope.
func (a *Authorizer) Authorize(ctx context.Context, principal pdp_model.Principal, action pdp_model.Action, resourceType pdp_model.ResourceType, resourceID string) (pdp_model.PolicyDecision, error) {
	start := time.Now()
	if principal.IsZero() {
		return pdp_model.PolicyDecision{}, bo_errors.ErrMissingCredential
	}

	var descriptor pdp_model.ResourceDescriptor
	if action.IsCollection() || resourceID == "" {
		descriptor = pdp_model.ResourceDescriptor{
			ResourceType: resourceType,
			TenantID:     principal.TenantID(),
			OwnerScopeID: principal.ResourceScopeID(),
		}
	} else {
		loaded, err := a.descriptors.GetDescriptor(ctx, resourceType, resourceID)
		if err != nil {
			return pdp_model.PolicyDecision{}, err
		}
		if loaded == nil {
			logger.Debug("Authorization target not found",
				zap.String("resourceType", string(resourceType)),
				zap.String("resourceID", resourceID))
			return pdp_model.PolicyDecision{}, fmt.Errorf("%s %s: %w", resourceType, resourceID, bo_errors.ErrNotFound)
		}
		descriptor = *loaded
	}

	decision := a.evaluator.Evaluate(principal, action, descriptor)
	a.audit(ctx, principal, action, descriptor, resourceID, decision)

	log := logger.WithContext(
		zap.String("userID", principal.ID()),
		zap.String("action", string(action)),
		zap.String("resourceType", string(resourceType)),
		zap.String("resourceID", resourceID))
	if decision.Allowed() {
		log.Debug("Access granted",
			zap.Strings("allowedFields", decision.AllowedFields),
			zap.Duration("duration", time.Since(start)))
		return decision, nil
	}

	tp, _ := a.evaluator.Table().Lookup(resourceType)
	denied := &AccessDeniedError{
		Decision:     decision,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		masked:       tp.Masks(action, decision.DenialKind),
	}
	log.Warn("Access denied",
		zap.String("role", string(principal.Role())),
		zap.String("denialKind", string(decision.DenialKind)),
		zap.String("reason", decision.Reason),
		zap.Bool("masked", denied.masked))
	return decision, denied
}

func (a *Authorizer) audit(ctx context.Context, principal pdp_model.Principal, action pdp_model.Action, descriptor pdp_model.ResourceDescriptor, resourceID string, decision pdp_model.PolicyDecision) {
	if a.auditService == nil {
		return
	}
	entry := audit.AuditLog{
		Timestamp:     time.Now().UTC(),
		UserID:        principal.ID(),
		Role:          string(principal.Role()),
		TenantID:      principal.TenantID(),
		Action:        string(action),
		ResourceType:  string(descriptor.ResourceType),
		ResourceID:    resourceID,
		AccessGranted: decision.Allowed(),
		DenialKind:    string(decision.DenialKind),
		Reason:        decision.Reason,
	}
	if err := a.auditService.LogAccess(ctx, entry); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}
}
