// controller/audit_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/audit"
	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/util"
	helper_util "github.com/buildledger/backoffice/util/helper"
)

// AuditController lets ADMIN search the access audit trail.
type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/audit-logs", guard.RolesOnly("audit:LIST", model.RoleAdmin), ac.QueryLogs)
}

// QueryLogs endpoint. from/to are RFC3339 and default to the last 24 hours.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	from, err := helper_util.ParseOptionalTime(c.Query("from"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	to, err := helper_util.ParseOptionalTime(c.Query("to"))
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	size := 0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 || size > 1000 {
			util.RespondWithAppError(c, bo_errors.Invalid("size must be between 1 and 1000"))
			return
		}
	}

	q := audit.Query{
		From:       from,
		To:         to,
		UserID:     c.Query("userId"),
		TenantID:   c.Query("tenantId"),
		ResourceID: c.Query("resourceId"),
		Size:       size,
	}

	logs, err := ac.auditService.QueryLogs(c.Request.Context(), q)
	if err != nil {
		util.RespondWithAppError(c, err)
		return
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}

	c.JSON(http.StatusOK, logs)
}
