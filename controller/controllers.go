// controller/controllers.go
package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/buildledger/backoffice/audit"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/service"
)

// Guard builds the middleware protecting each route.
type Guard interface {
	Protect(resourceType pdp_model.ResourceType, action pdp_model.Action, roles ...model.Role) []gin.HandlerFunc
	RolesOnly(routeKey string, roles ...model.Role) gin.HandlerFunc
}

type Controllers struct {
	Auth          *AuthController
	Company       *CompanyController
	Provider      *ResourceController[model.Provider, *model.Provider, model.ProviderPatch]
	Project       *ResourceController[model.Project, *model.Project, model.ProjectPatch]
	PurchaseOrder *ResourceController[model.PurchaseOrder, *model.PurchaseOrder, model.PurchaseOrderPatch]
	Invoice       *ResourceController[model.Invoice, *model.Invoice, model.InvoicePatch]
	Payment       *ResourceController[model.Payment, *model.Payment, model.PaymentPatch]
	Job           *ResourceController[model.Job, *model.Job, model.JobPatch]
	Client        *ResourceController[model.Client, *model.Client, model.ClientPatch]
	Category      *CategoryController
	User          *UserController
	Audit         *AuditController
}

func InitializeControllers(services *service.Services, auditService audit.Service) *Controllers {
	return &Controllers{
		Auth:          NewAuthController(services.Auth),
		Company:       NewCompanyController(services.Company),
		Provider:      NewResourceController[model.Provider, *model.Provider, model.ProviderPatch](pdp_model.ResourceProvider, "/providers", services.Provider),
		Project:       NewResourceController[model.Project, *model.Project, model.ProjectPatch](pdp_model.ResourceProject, "/projects", services.Project),
		PurchaseOrder: NewResourceController[model.PurchaseOrder, *model.PurchaseOrder, model.PurchaseOrderPatch](pdp_model.ResourcePurchaseOrder, "/purchase-orders", services.PurchaseOrder),
		Invoice:       NewResourceController[model.Invoice, *model.Invoice, model.InvoicePatch](pdp_model.ResourceInvoice, "/invoices", services.Invoice),
		Payment:       NewResourceController[model.Payment, *model.Payment, model.PaymentPatch](pdp_model.ResourcePayment, "/payments", services.Payment),
		Job:           NewResourceController[model.Job, *model.Job, model.JobPatch](pdp_model.ResourceJob, "/jobs", services.Job),
		Client:        NewResourceController[model.Client, *model.Client, model.ClientPatch](pdp_model.ResourceClient, "/clients", services.Client),
		Category:      NewCategoryController(services.Category),
		User:          NewUserController(services.User),
		Audit:         NewAuditController(auditService),
	}
}

// RegisterRoutes registers every authenticated resource route on r.
func (cs *Controllers) RegisterRoutes(r *gin.RouterGroup, guard Guard) {
	cs.Auth.RegisterRoutes(r)
	cs.Company.RegisterRoutes(r, guard)
	cs.Provider.RegisterRoutes(r, guard)
	cs.Project.RegisterRoutes(r, guard)
	cs.PurchaseOrder.RegisterRoutes(r, guard)
	cs.Invoice.RegisterRoutes(r, guard)
	cs.Payment.RegisterRoutes(r, guard)
	cs.Job.RegisterRoutes(r, guard)
	cs.Client.RegisterRoutes(r, guard)
	cs.Category.RegisterRoutes(r, guard)
	cs.User.RegisterRoutes(r, guard)
	cs.Audit.RegisterRoutes(r, guard)
}

func chain(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc(nil), guards...), handler)
}
