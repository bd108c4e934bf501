// controller/user_controller.go
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

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the API routes
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	users := r.Group("/users")
	{
		users.POST("", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionCreate, model.RoleAdmin, model.RoleCompany), uc.CreateUser)...)
		users.PUT("/:id", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionUpdate), uc.UpdateUser)...)
		users.PATCH("/:id", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionUpdate), uc.UpdateUser)...)
		users.DELETE("/:id", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionDelete), uc.DeleteUser)...)
		users.GET("/:id", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionRead), uc.GetUser)...)
		users.GET("", chain(guard.Protect(pdp_model.ResourceUser, pdp_model.ActionList), uc.ListUsers)...)
	}
}

// CreateUser endpoint
func (uc *UserController) CreateUser(c *gin.Context) {
	var in model.NewUser
	if err := c.ShouldBindJSON(&in); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", bo_errors.ErrInvalidUserData)
		return
	}

	created, err := uc.userService.CreateUser(c.Request.Context(), in)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateUser endpoint
func (uc *UserController) UpdateUser(c *gin.Context) {
	decision, ok := util.DecisionFromGin(c)
	if !ok {
		util.RespondWithAppError(c, bo_errors.ErrInternalServer)
		return
	}
	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", bo_errors.ErrInvalidUserData)
		return
	}

	updated, err := uc.userService.UpdateUser(c.Request.Context(), c.Param("id"), patch, decision)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteUser endpoint
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers endpoint
func (uc *UserController) ListUsers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	users, err := uc.userService.ListUsers(c.Request.Context(), service.ListParams{
		Limit:     limit,
		Offset:    offset,
		CompanyID: c.Query("companyId"),
	})
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	c.JSON(http.StatusOK, users)
}
