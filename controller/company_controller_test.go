// controller/company_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/buildledger/backoffice/controller"
	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/service"
	mock_service "github.com/buildledger/backoffice/test/service_mock"
	"github.com/buildledger/backoffice/util"
)

// stubGuard attaches a fixed principal and decision instead of running the policy table.
type stubGuard struct {
	principal pdp_model.Principal
	decision  pdp_model.PolicyDecision
}

func (g stubGuard) handler(c *gin.Context) {
	c.Request = c.Request.WithContext(pdp_model.WithPrincipal(c.Request.Context(), g.principal))
	c.Set(util.DecisionKey, g.decision)
	c.Next()
}

func (g stubGuard) Protect(pdp_model.ResourceType, pdp_model.Action, ...model.Role) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.handler}
}

func (g stubGuard) RolesOnly(string, ...model.Role) gin.HandlerFunc {
	return g.handler
}

func setupRouter(t *testing.T, guard controller.Guard, register func(*gin.RouterGroup, controller.Guard)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r.Group("/"), guard)
	return r
}

func TestCompanyController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	principal, err := pdp_model.NewPrincipal("tenant-a", model.RoleCompany, "tenant-a", "")
	require.NoError(t, err)
	decision := pdp_model.AllowedWithFields("own company", []string{"name", "email", "phone", "address"})

	mockCompanyService := mock_service.NewMockICompanyService(ctrl)
	companyController := controller.NewCompanyController(mockCompanyService)
	router := setupRouter(t, stubGuard{principal: principal, decision: decision}, companyController.RegisterRoutes)

	t.Run("CreateCompany_Success", func(t *testing.T) {
		mockCompanyService.EXPECT().
			CreateCompany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in model.NewCompany) (*model.Company, error) {
				assert.Equal(t, "Acme", in.Name)
				assert.Equal(t, "long-enough", in.Password)
				return &model.Company{ID: "c1", Name: in.Name}, nil
			})

		body := strings.NewReader(`{"name":"Acme","email":"ops@acme.test","taxId":"T1","password":"long-enough"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/companies", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("CreateCompany_Failure_BadBody", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/companies", strings.NewReader(`{"name":`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CreateCompany_Failure_Conflict", func(t *testing.T) {
		mockCompanyService.EXPECT().
			CreateCompany(gomock.Any(), gomock.Any()).
			Return(nil, bo_errors.ErrCompanyConflict)

		body := strings.NewReader(`{"name":"Acme","email":"ops@acme.test","taxId":"T1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/companies", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("UpdateCompany_PassesDecision", func(t *testing.T) {
		mockCompanyService.EXPECT().
			UpdateCompany(gomock.Any(), "tenant-a", gomock.Any(), decision).
			DoAndReturn(func(_ any, _ string, patch model.CompanyPatch, _ pdp_model.PolicyDecision) (*model.Company, error) {
				require.NotNil(t, patch.Name)
				assert.Equal(t, []string{"name"}, patch.Fields())
				return &model.Company{ID: "tenant-a", Name: *patch.Name}, nil
			})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/companies/tenant-a", strings.NewReader(`{"name":"Acme Holdings"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdateCompany_Failure_RestrictedFields", func(t *testing.T) {
		mockCompanyService.EXPECT().
			UpdateCompany(gomock.Any(), "tenant-a", gomock.Any(), gomock.Any()).
			Return(nil, bo_errors.NewFieldRestrictionError([]string{"taxId"}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/companies/tenant-a", strings.NewReader(`{"taxId":"T2"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp struct {
			Fields []string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"taxId"}, resp.Fields)
	})

	t.Run("GetCompany_Success", func(t *testing.T) {
		mockCompanyService.EXPECT().
			GetCompany(gomock.Any(), "tenant-a").
			Return(&model.Company{ID: "tenant-a", Name: "Acme"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/companies/tenant-a", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetCompany_Failure_NotFound", func(t *testing.T) {
		mockCompanyService.EXPECT().
			GetCompany(gomock.Any(), "missing").
			Return(nil, bo_errors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/companies/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "company")
	})

	t.Run("DeleteCompany_Success", func(t *testing.T) {
		mockCompanyService.EXPECT().
			DeleteCompany(gomock.Any(), "tenant-a").
			Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/companies/tenant-a", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("ListCompanies_Success", func(t *testing.T) {
		mockCompanyService.EXPECT().
			ListCompanies(gomock.Any(), service.ListParams{Limit: 5, Offset: 10}).
			Return([]*model.Company{{ID: "tenant-a"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/companies?limit=5&offset=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ListCompanies_Failure_BadPagination", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/companies?limit=500", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListCompanies_EmptyIsArray", func(t *testing.T) {
		mockCompanyService.EXPECT().
			ListCompanies(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/companies", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}
