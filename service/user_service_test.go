package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/pdp/resolver"
	"github.com/buildledger/backoffice/util"
)

func newUserFixture() (*UserService, *memStore[model.User, *model.User]) {
	store := newMemStore[model.User, *model.User]()
	store.notFound = bo_errors.ErrUserNotFound
	return NewUserService(store, util.NewValidationUtil(), util.NewNotificationService(), util.NewEventBus()), store
}

func newStaffPayload(role model.Role) model.NewUser {
	return model.NewUser{Name: "Ana", Email: "ana@acme.test", Password: "s3cret-pass", Role: role}
}

func TestUserService_CompanyCreatesStaffInOwnTenant(t *testing.T) {
	svc, _ := newUserFixture()
	in := newStaffPayload(model.RoleTreasury)
	in.CompanyID = "someone-else"

	user, err := svc.CreateUser(companyCtx(t, "c1"), in)

	require.NoError(t, err)
	assert.Equal(t, "c1", user.CompanyID)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestUserService_CompanyCannotCreatePrivilegedRoles(t *testing.T) {
	svc, store := newUserFixture()

	for _, role := range []model.Role{model.RoleAdmin, model.RoleCompany, model.RoleProvider} {
		_, err := svc.CreateUser(companyCtx(t, "c1"), newStaffPayload(role))
		assert.ErrorIs(t, err, bo_errors.ErrForbidden, role)
	}
	assert.Zero(t, store.count())
}

func TestUserService_AdminMustPlaceStaff(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.CreateUser(adminCtx(t), newStaffPayload(model.RoleManager))

	assert.ErrorIs(t, err, bo_errors.ErrValidation)
}

func TestUserService_LegacyAdminRoleIsNormalized(t *testing.T) {
	svc, _ := newUserFixture()

	user, err := svc.CreateUser(adminCtx(t), newStaffPayload("ADMIN2"))

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestUserService_UpdateHashesPassword(t *testing.T) {
	svc, store := newUserFixture()
	store.put(&model.User{ID: "u1", Name: "Ana", Email: "ana@acme.test", Role: model.RoleUser, CompanyID: "c1", PasswordHash: "old"})
	decision := pdp_model.AllowedWithFields("company", []string{"name", "email", "isActive", "password"})

	updated, err := svc.UpdateUser(companyCtx(t, "c1"), "u1", model.UserPatch{Password: strPtr("brand-new-pass")}, decision)

	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new-pass")))
}

func TestUserService_CompanyCannotPromote(t *testing.T) {
	svc, store := newUserFixture()
	store.put(&model.User{ID: "u1", Name: "Ana", Email: "ana@acme.test", Role: model.RoleUser, CompanyID: "c1"})
	decision := pdp_model.AllowedWithFields("company", []string{"name", "email", "isActive", "password"})
	admin := model.RoleAdmin

	_, err := svc.UpdateUser(companyCtx(t, "c1"), "u1", model.UserPatch{Role: &admin}, decision)

	var restricted *bo_errors.FieldRestrictionError
	require.ErrorAs(t, err, &restricted)
	assert.Equal(t, []string{"role"}, restricted.Fields)
}

type userLookup struct {
	byEmail map[string]*model.User
}

func (u *userLookup) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range u.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, bo_errors.ErrUserNotFound
}

func (u *userLookup) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if user, ok := u.byEmail[email]; ok {
		return user, nil
	}
	return nil, bo_errors.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (*AuthService, *resolver.TokenService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &userLookup{byEmail: map[string]*model.User{
		"ops@acme.test":  {ID: "c1", Email: "ops@acme.test", Role: model.RoleCompany, CompanyID: "c1", IsActive: true, PasswordHash: string(hash)},
		"gone@acme.test": {ID: "u9", Email: "gone@acme.test", Role: model.RoleUser, CompanyID: "c1", IsActive: false, PasswordHash: string(hash)},
	}}
	tokens := resolver.NewTokenService("test-secret", "backoffice", time.Hour)
	return NewAuthService(users, tokens), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	result, err := svc.Login(context.Background(), model.Credentials{Email: "ops@acme.test", Password: "right-password"})

	require.NoError(t, err)
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "c1", claims.Subject)
	assert.Equal(t, "c1", claims.TenantID)
	assert.Equal(t, "c1", result.User.ID)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthFixture(t)

	tests := []struct {
		name    string
		creds   model.Credentials
		wantErr error
	}{
		{"unknown email", model.Credentials{Email: "who@acme.test", Password: "right-password"}, bo_errors.ErrInvalidLogin},
		{"wrong password", model.Credentials{Email: "ops@acme.test", Password: "nope"}, bo_errors.ErrInvalidLogin},
		{"inactive account", model.Credentials{Email: "gone@acme.test", Password: "right-password"}, bo_errors.ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.creds)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, bo_errors.ErrUnauthenticated)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Me(companyCtx(t, "c1"))
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.test", user.Email)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, bo_errors.ErrUnauthenticated)
}
