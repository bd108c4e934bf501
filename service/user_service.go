// service/user_service.go
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

// IUserService defines the interface for user operations
type IUserService interface {
	CreateUser(ctx context.Context, in model.NewUser) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, params ListParams) ([]*model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch, decision pdp_model.PolicyDecision) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserService manages login accounts. Passwords are stored as bcrypt hashes.
type UserService struct {
	*ResourceService[model.User, *model.User, model.UserPatch]
}

var _ IUserService = &UserService{}

func NewUserService(store Store[model.User, *model.User], validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *UserService {
	return &UserService{
		ResourceService: NewResourceService[model.User, *model.User, model.UserPatch](pdp_model.ResourceUser, store, validationUtil, notificationSvc, eventBus),
	}
}

// CreateUser lets ADMIN create any account. A COMPANY caller may only add
// staff accounts, and they always land in its own tenant.
func (s *UserService) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validationUtil.ValidateStruct(in); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(string(in.Role))
	if err != nil {
		return nil, bo_errors.Invalid("%v", err)
	}

	if !principal.IsAdmin() {
		if principal.Role() != model.RoleCompany || !role.IsStaff() {
			return nil, bo_errors.ErrForbidden
		}
		in.CompanyID = principal.TenantID()
		in.ProviderID = ""
	}
	if (role == model.RoleCompany || role.IsStaff()) && in.CompanyID == "" {
		return nil, bo_errors.Invalid("companyId is required for role %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CompanyID:    in.CompanyID,
		ProviderID:   in.ProviderID,
		IsActive:     true,
	}
	created, err := s.store.Create(ctx, user)
	if err != nil {
		logger.Error("Error creating user", zap.Error(err), zap.String("userID", principal.ID()))
		return nil, err
	}

	s.publish(ctx, util.ChangeCreated, created.ID, created.CompanyID, nil, created)
	logger.Info("User created successfully",
		zap.String("newUserID", created.ID),
		zap.String("role", string(created.Role)),
		zap.String("userID", principal.ID()))
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, params ListParams) ([]*model.User, error) {
	return s.List(ctx, params)
}

// UpdateUser hashes a new password before saving. Role, companyId and
// providerId are only writable when the decision leaves them unrestricted.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch model.UserPatch, decision pdp_model.PolicyDecision) (*model.User, error) {
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
	if patch.Role != nil {
		role, err := model.ParseRole(string(*patch.Role))
		if err != nil {
			return nil, bo_errors.Invalid("%v", err)
		}
		patch.Role = &role
	}

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *existing

	patch.Apply(existing)
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}
	if err := s.validationUtil.ValidateStruct(existing); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		logger.Error("Error updating user", zap.Error(err), zap.String("id", id), zap.String("userID", principal.ID()))
		return nil, err
	}

	s.publish(ctx, util.ChangeUpdated, id, updated.CompanyID, &old, updated)
	logger.Info("User updated successfully",
		zap.String("id", id),
		zap.Strings("fields", patch.Fields()),
		zap.String("userID", principal.ID()))
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.Delete(ctx, id)
}
