// controller/category_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/service"
	"github.com/buildledger/backoffice/util"
)

// CategoryController serves the global lookup; writes are ADMIN only.
type CategoryController struct {
	*ResourceController[model.Category, *model.Category, model.CategoryPatch]
	categoryService service.ICategoryService
}

func NewCategoryController(categoryService service.ICategoryService) *CategoryController {
	rc := NewResourceController[model.Category, *model.Category, model.CategoryPatch](pdp_model.ResourceCategory, "/categories", categoryService).
		WithRoles(pdp_model.ActionCreate, model.RoleAdmin).
		WithRoles(pdp_model.ActionUpdate, model.RoleAdmin).
		WithRoles(pdp_model.ActionDelete, model.RoleAdmin)
	return &CategoryController{ResourceController: rc, categoryService: categoryService}
}

func (cc *CategoryController) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	cc.ResourceController.RegisterRoutes(r, guard)
	r.GET("/categories/key/:key", chain(guard.Protect(pdp_model.ResourceCategory, pdp_model.ActionRead), cc.GetByKey)...)
}

// GetByKey endpoint
func (cc *CategoryController) GetByKey(c *gin.Context) {
	category, err := cc.categoryService.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}
