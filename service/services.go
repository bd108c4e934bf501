// service/services.go
package service

import (
	"github.com/buildledger/backoffice/dao"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

type (
	ProjectService = ResourceService[model.Project, *model.Project, model.ProjectPatch]
	JobService     = ResourceService[model.Job, *model.Job, model.JobPatch]
	ClientService  = ResourceService[model.Client, *model.Client, model.ClientPatch]
)

type Services struct {
	Auth          IAuthService
	Company       ICompanyService
	Provider      IProviderService
	Project       *ProjectService
	PurchaseOrder IPurchaseOrderService
	Invoice       *InvoiceService
	Payment       *PaymentService
	Job           *JobService
	Client        *ClientService
	Category      ICategoryService
	User          IUserService
}

func InitializeServices(
	stores *dao.Stores,
	authorizer pdp.IAuthorizer,
	tokens TokenIssuer,
	validationUtil *util.ValidationUtil,
	cacheService util.ICacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	services := &Services{
		Auth:          NewAuthService(stores.Users, tokens),
		Company:       NewCompanyService(stores.Companies, stores.Users, validationUtil, cacheService, notificationSvc, eventBus),
		Provider:      NewProviderService(stores.Providers, validationUtil, cacheService, notificationSvc, eventBus),
		Project:       NewResourceService[model.Project, *model.Project, model.ProjectPatch](pdp_model.ResourceProject, stores.Projects, validationUtil, notificationSvc, eventBus),
		PurchaseOrder: NewPurchaseOrderService(stores.PurchaseOrders, stores.Projects, stores.Providers, authorizer, validationUtil, notificationSvc, eventBus),
		Invoice:       NewInvoiceService(stores.Invoices, stores.PurchaseOrders, authorizer, validationUtil, notificationSvc, eventBus),
		Payment:       NewPaymentService(stores.Payments, stores.Invoices, authorizer, validationUtil, notificationSvc, eventBus),
		Job:           NewResourceService[model.Job, *model.Job, model.JobPatch](pdp_model.ResourceJob, stores.Jobs, validationUtil, notificationSvc, eventBus),
		Client:        NewResourceService[model.Client, *model.Client, model.ClientPatch](pdp_model.ResourceClient, stores.Clients, validationUtil, notificationSvc, eventBus),
		Category:      NewCategoryService(stores.Categories, validationUtil, notificationSvc, eventBus),
		User:          NewUserService(stores.Users, validationUtil, notificationSvc, eventBus),
	}

	return services, nil
}
