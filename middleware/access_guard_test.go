package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/buildledger/backoffice/middleware"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	"github.com/buildledger/backoffice/pdp/engine"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/pdp/resolver"
	bo_mock "github.com/buildledger/backoffice/test/mock"
	"github.com/buildledger/backoffice/util"
)

type descriptorStub map[string]pdp_model.ResourceDescriptor

func (s descriptorStub) GetDescriptor(_ context.Context, rt pdp_model.ResourceType, id string) (*pdp_model.ResourceDescriptor, error) {
	d, ok := s[string(rt)+"/"+id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

type fixture struct {
	router *gin.Engine
	tokens *resolver.TokenService
}

func users() *bo_mock.MockUserRepository {
	repo := new(bo_mock.MockUserRepository)
	for _, u := range []*model.User{
		{ID: "root", Role: model.RoleAdmin, IsActive: true},
		{ID: "tenant-a", Role: model.RoleCompany, CompanyID: "tenant-a", IsActive: true},
		{ID: "prov-user", Role: model.RoleProvider, ProviderID: "prov-1", CompanyID: "tenant-a", IsActive: true},
		{ID: "clerk", Role: model.RoleUser, CompanyID: "tenant-a", IsActive: true},
	} {
		repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	}
	return repo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := resolver.NewTokenService("guard-secret", "backoffice", time.Hour)
	stub := descriptorStub{
		"company/tenant-b":  {ResourceType: pdp_model.ResourceCompany, ResourceID: "tenant-b", TenantID: "tenant-b"},
		"project/p-b":       {ResourceType: pdp_model.ResourceProject, ResourceID: "p-b", TenantID: "tenant-b"},
		"project/p-a":       {ResourceType: pdp_model.ResourceProject, ResourceID: "p-a", TenantID: "tenant-a"},
		"purchaseOrder/o-1": {ResourceType: pdp_model.ResourcePurchaseOrder, ResourceID: "o-1", TenantID: "tenant-a", OwnerScopeID: "prov-1"},
		"purchaseOrder/o-2": {ResourceType: pdp_model.ResourcePurchaseOrder, ResourceID: "o-2", TenantID: "tenant-a", OwnerScopeID: "prov-2"},
	}
	auditService := new(bo_mock.MockAuditService)
	auditService.On("LogAccess", mock.Anything, mock.Anything).Return(nil)

	guard := middleware.NewAccessGuard(
		resolver.NewPrincipalResolver(tokens, users()),
		pdp.NewAuthorizer(engine.NewPolicyEvaluator(nil), stub, auditService),
	)

	ok := func(c *gin.Context) {
		decision, _ := util.DecisionFromGin(c)
		c.JSON(http.StatusOK, gin.H{"allowedFields": decision.AllowedFields})
	}

	r := gin.New()
	api := r.Group("/", guard.Authenticate())
	api.GET("/companies/:id", guard.Require(pdp_model.ResourceCompany, pdp_model.ActionRead), ok)
	api.PUT("/companies/:id", guard.Require(pdp_model.ResourceCompany, pdp_model.ActionUpdate), ok)
	api.DELETE("/projects/:id", guard.Require(pdp_model.ResourceProject, pdp_model.ActionDelete), ok)
	api.PUT("/projects/:id", guard.Require(pdp_model.ResourceProject, pdp_model.ActionUpdate), ok)
	api.GET("/purchase-orders", guard.Require(pdp_model.ResourcePurchaseOrder, pdp_model.ActionList), ok)
	api.GET("/purchase-orders/:id", guard.Require(pdp_model.ResourcePurchaseOrder, pdp_model.ActionRead), ok)

	return fixture{router: r, tokens: tokens}
}

func (f fixture) do(t *testing.T, method, path, userID string, role model.Role) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	if userID != "" {
		token, _, err := f.tokens.Issue(&model.User{ID: userID, Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAccessGuard_Scenarios(t *testing.T) {
	f := newFixture(t)

	t.Run("MissingToken_401", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/purchase-orders/o-1", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ExpiredToken_401", func(t *testing.T) {
		stale := resolver.NewTokenService("guard-secret", "backoffice", time.Minute).
			WithClock(func() time.Time { return time.Now().Add(-time.Hour) })
		token, _, err := stale.Issue(&model.User{ID: "root", Role: model.RoleAdmin})
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodDelete, "/projects/p-b", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AdminDeletesAnyProject_200", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/projects/p-b", "root", model.RoleAdmin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CompanyUpdatesForeignCompany_403", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/companies/tenant-b", "tenant-a", model.RoleCompany)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "cross")
	})

	t.Run("CompanyReadsForeignCompany_404", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/companies/tenant-b", "tenant-a", model.RoleCompany)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "cross")
	})

	t.Run("SameTenantWrongRole_403", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/projects/p-a", "clerk", model.RoleUser)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UnknownProject_404", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/projects/missing", "root", model.RoleAdmin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ProviderReadsOwnOrder_200", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/purchase-orders/o-1", "prov-user", model.RoleProvider)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ProviderReadsOtherOrder_404", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/purchase-orders/o-2", "prov-user", model.RoleProvider)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("CompanyListsOrders_200", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/purchase-orders", "tenant-a", model.RoleCompany)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ProviderListsOrders_403", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/purchase-orders", "prov-user", model.RoleProvider)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("StaleAdminClaimDoesNotEscalate", func(t *testing.T) {
		w := f.do(t, http.MethodDelete, "/projects/p-b", "tenant-a", model.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
