// controller/resource_controller.go
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

type record[T any] interface {
	*T
	model.Record
}

// ResourceController exposes the five standard routes for one resource type.
type ResourceController[T any, PT record[T], P model.Patch[T]] struct {
	resourceType pdp_model.ResourceType
	path         string
	service      service.IResourceService[T, PT, P]
	// roles narrows the role gate per action; absent actions admit every role.
	roles map[pdp_model.Action][]model.Role
}

func NewResourceController[T any, PT record[T], P model.Patch[T]](resourceType pdp_model.ResourceType, path string, svc service.IResourceService[T, PT, P]) *ResourceController[T, PT, P] {
	return &ResourceController[T, PT, P]{
		resourceType: resourceType,
		path:         path,
		service:      svc,
		roles:        map[pdp_model.Action][]model.Role{},
	}
}

// WithRoles restricts which roles reach action before the policy table runs.
func (rc *ResourceController[T, PT, P]) WithRoles(action pdp_model.Action, roles ...model.Role) *ResourceController[T, PT, P] {
	rc.roles[action] = roles
	return rc
}

func (rc *ResourceController[T, PT, P]) protect(guard Guard, action pdp_model.Action, handler gin.HandlerFunc) []gin.HandlerFunc {
	return chain(guard.Protect(rc.resourceType, action, rc.roles[action]...), handler)
}

// RegisterRoutes registers the API routes
func (rc *ResourceController[T, PT, P]) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	group := r.Group(rc.path)
	{
		group.POST("", rc.protect(guard, pdp_model.ActionCreate, rc.Create)...)
		group.GET("", rc.protect(guard, pdp_model.ActionList, rc.List)...)
		group.GET("/:id", rc.protect(guard, pdp_model.ActionRead, rc.Get)...)
		group.PUT("/:id", rc.protect(guard, pdp_model.ActionUpdate, rc.Update)...)
		group.PATCH("/:id", rc.protect(guard, pdp_model.ActionUpdate, rc.Update)...)
		group.DELETE("/:id", rc.protect(guard, pdp_model.ActionDelete, rc.Delete)...)
	}
}

func (rc *ResourceController[T, PT, P]) Create(c *gin.Context) {
	doc := PT(new(T))
	if err := c.ShouldBindJSON(doc); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := rc.service.Create(c.Request.Context(), doc)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (rc *ResourceController[T, PT, P]) Get(c *gin.Context) {
	doc, err := rc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (rc *ResourceController[T, PT, P]) List(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	docs, err := rc.service.List(c.Request.Context(), service.ListParams{
		Limit:     limit,
		Offset:    offset,
		CompanyID: c.Query("companyId"),
	})
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	if docs == nil {
		docs = []PT{}
	}

	c.JSON(http.StatusOK, docs)
}

func (rc *ResourceController[T, PT, P]) Update(c *gin.Context) {
	decision, ok := util.DecisionFromGin(c)
	if !ok {
		util.RespondWithAppError(c, bo_errors.ErrInternalServer)
		return
	}
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := rc.service.Update(c.Request.Context(), c.Param("id"), patch, decision)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (rc *ResourceController[T, PT, P]) Delete(c *gin.Context) {
	if err := rc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
