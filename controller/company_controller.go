// controller/company_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/service"
	"github.com/buildledger/backoffice/util"
	helper_util "github.com/buildledger/backoffice/util/helper"
)

type CompanyController struct {
	companyService service.ICompanyService
}

func NewCompanyController(companyService service.ICompanyService) *CompanyController {
	return &CompanyController{
		companyService: companyService,
	}
}

// RegisterRoutes registers the API routes. Only ADMIN creates tenants.
func (cc *CompanyController) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	companies := r.Group("/companies")
	{
		companies.POST("", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionCreate, model.RoleAdmin), cc.CreateCompany)...)
		companies.PUT("/:id", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionUpdate), cc.UpdateCompany)...)
		companies.PATCH("/:id", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionUpdate), cc.UpdateCompany)...)
		companies.DELETE("/:id", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionDelete, model.RoleAdmin), cc.DeleteCompany)...)
		companies.GET("/:id", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionRead), cc.GetCompany)...)
		companies.GET("", chain(guard.Protect(pdp_model.ResourceCompany, pdp_model.ActionList), cc.ListCompanies)...)
	}
}

// CreateCompany endpoint
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	var in model.NewCompany
	if err := c.ShouldBindJSON(&in); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid company data", bo_errors.ErrInvalidCompanyData)
		return
	}

	created, err := cc.companyService.CreateCompany(c.Request.Context(), in)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateCompany endpoint
func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	decision, ok := util.DecisionFromGin(c)
	if !ok {
		util.RespondWithAppError(c, bo_errors.ErrInternalServer)
		return
	}
	var patch model.CompanyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid company data", bo_errors.ErrInvalidCompanyData)
		return
	}

	updated, err := cc.companyService.UpdateCompany(c.Request.Context(), c.Param("id"), patch, decision)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCompany endpoint
func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	if err := cc.companyService.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCompany endpoint
func (cc *CompanyController) GetCompany(c *gin.Context) {
	company, err := cc.companyService.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListCompanies endpoint
func (cc *CompanyController) ListCompanies(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	companies, err := cc.companyService.ListCompanies(c.Request.Context(), service.ListParams{Limit: limit, Offset: offset})
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	if companies == nil {
		companies = []*model.Company{}
	}

	c.JSON(http.StatusOK, companies)
}
