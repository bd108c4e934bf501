package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// UserRepository is the user lookup collaborator.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Save(ctx context.Context, user *model.User) (*model.User, error)
}

type IPrincipalResolver interface {
	Resolve(ctx context.Context, token string) (pdp_model.Principal, error)
}

type PrincipalResolver struct {
	tokens    TokenVerifier
	users     UserRepository
	backfills singleflight.Group
}

var _ IPrincipalResolver = &PrincipalResolver{}

func NewPrincipalResolver(tokens TokenVerifier, users UserRepository) *PrincipalResolver {
	return &PrincipalResolver{tokens: tokens, users: users}
}

// Resolve turns a bearer token into a Principal built from the live user record.
func (r *PrincipalResolver) Resolve(ctx context.Context, token string) (pdp_model.Principal, error) {
	start := time.Now()

	claims, err := r.tokens.Verify(token)
	if err != nil {
		logger.Debug("Token verification failed", zap.Error(err))
		return pdp_model.Principal{}, err
	}

	user, err := r.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, bo_errors.ErrUserNotFound) {
			logger.Warn("Token subject not found", zap.String("userID", claims.Subject))
			return pdp_model.Principal{}, bo_errors.ErrSubjectNotFound
		}
		return pdp_model.Principal{}, fmt.Errorf("failed to load user %s: %w", claims.Subject, err)
	}
	if user == nil {
		logger.Warn("Token subject not found", zap.String("userID", claims.Subject))
		return pdp_model.Principal{}, bo_errors.ErrSubjectNotFound
	}

	if !user.IsActive {
		logger.Warn("Inactive account presented a token", zap.String("userID", user.ID))
		return pdp_model.Principal{}, bo_errors.ErrAccountInactive
	}

	role, err := model.ParseRole(string(user.Role))
	if err != nil {
		logger.Error("Stored user has an unknown role", zap.String("userID", user.ID), zap.Error(err))
		return pdp_model.Principal{}, fmt.Errorf("%v: %w", err, bo_errors.ErrUnauthenticated)
	}

	if role == model.RoleCompany && user.CompanyID == "" {
		user.CompanyID = r.backfillTenant(ctx, user)
	}

	r.warnOnStaleClaims(claims, user, role)

	var tenantID, scopeID string
	switch {
	case role == model.RoleProvider:
		tenantID = user.CompanyID
		scopeID = user.ProviderID
		if scopeID == "" {
			scopeID = user.ID
		}
	case role == model.RoleCompany || role.IsStaff():
		tenantID = user.CompanyID
	}

	principal, err := pdp_model.NewPrincipal(user.ID, role, tenantID, scopeID)
	if err != nil {
		return pdp_model.Principal{}, err
	}

	logger.Debug("Principal resolved",
		zap.String("userID", principal.ID()),
		zap.String("role", string(principal.Role())),
		zap.String("tenantID", principal.TenantID()),
		zap.Duration("duration", time.Since(start)))
	return principal, nil
}

// backfillTenant stamps a COMPANY user's own id as its tenant. Concurrent
// requests for the same user share one write; a failed write is retried on
// the next request.
func (r *PrincipalResolver) backfillTenant(ctx context.Context, user *model.User) string {
	tenantID := user.ID
	_, err, shared := r.backfills.Do(user.ID, func() (any, error) {
		patched := *user
		patched.CompanyID = tenantID
		patched.Stamp(time.Now())
		return r.users.Save(ctx, &patched)
	})
	if err != nil {
		logger.Warn("Tenant backfill failed", zap.String("userID", user.ID), zap.Error(err))
	} else {
		logger.Info("Tenant backfilled for company user", zap.String("userID", user.ID), zap.Bool("shared", shared))
	}
	return tenantID
}

func (r *PrincipalResolver) warnOnStaleClaims(claims *Claims, user *model.User, role model.Role) {
	claimedRole, err := model.ParseRole(claims.Role)
	if err != nil || claimedRole != role {
		logger.Warn("Token role differs from stored user, using stored role",
			zap.String("userID", user.ID),
			zap.String("claimedRole", claims.Role),
			zap.String("role", string(role)))
	}
	if claims.TenantID != "" && claims.TenantID != user.CompanyID {
		logger.Warn("Token tenant differs from stored user, using stored tenant",
			zap.String("userID", user.ID),
			zap.String("claimedTenant", claims.TenantID),
			zap.String("tenantID", user.CompanyID))
	}
}
