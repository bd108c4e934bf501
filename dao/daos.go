// dao/daos.go
package dao

import (
	"context"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/buildledger/backoffice/audit"
	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	bo_neo4j "github.com/buildledger/backoffice/model/neo4j"
)

type (
	CompanyDAO       = NodeStore[model.Company, *model.Company]
	ProviderDAO      = NodeStore[model.Provider, *model.Provider]
	ProjectDAO       = NodeStore[model.Project, *model.Project]
	PurchaseOrderDAO = NodeStore[model.PurchaseOrder, *model.PurchaseOrder]
	InvoiceDAO       = NodeStore[model.Invoice, *model.Invoice]
	PaymentDAO       = NodeStore[model.Payment, *model.Payment]
	JobDAO           = NodeStore[model.Job, *model.Job]
	ClientDAO        = NodeStore[model.Client, *model.Client]
	CategoryDAO      = NodeStore[model.Category, *model.Category]
)

func NewCompanyDAO(driver neo4j.DriverWithContext, auditService audit.Service) *CompanyDAO {
	return NewNodeStore[model.Company](driver, auditService, bo_neo4j.LabelCompany,
		[]string{"email", "taxId"}, bo_errors.ErrCompanyNotFound, bo_errors.ErrCompanyConflict)
}

func NewProviderDAO(driver neo4j.DriverWithContext, auditService audit.Service) *ProviderDAO {
	return NewNodeStore[model.Provider](driver, auditService, bo_neo4j.LabelProvider,
		[]string{"email", "taxId"}, bo_errors.ErrProviderNotFound, bo_errors.ErrProviderConflict)
}

func NewProjectDAO(driver neo4j.DriverWithContext, auditService audit.Service) *ProjectDAO {
	return NewNodeStore[model.Project](driver, auditService, bo_neo4j.LabelProject,
		nil, bo_errors.ErrResourceNotFound, bo_errors.ErrResourceConflict)
}

func NewPurchaseOrderDAO(driver neo4j.DriverWithContext, auditService audit.Service) *PurchaseOrderDAO {
	return NewNodeStore[model.PurchaseOrder](driver, auditService, bo_neo4j.LabelPurchaseOrder,
		nil, bo_errors.ErrPurchaseOrderNotFound, bo_errors.ErrResourceConflict)
}

func NewInvoiceDAO(driver neo4j.DriverWithContext, auditService audit.Service) *InvoiceDAO {
	return NewNodeStore[model.Invoice](driver, auditService, bo_neo4j.LabelInvoice,
		nil, bo_errors.ErrResourceNotFound, bo_errors.ErrResourceConflict)
}

func NewPaymentDAO(driver neo4j.DriverWithContext, auditService audit.Service) *PaymentDAO {
	return NewNodeStore[model.Payment](driver, auditService, bo_neo4j.LabelPayment,
		nil, bo_errors.ErrResourceNotFound, bo_errors.ErrResourceConflict)
}

func NewJobDAO(driver neo4j.DriverWithContext, auditService audit.Service) *JobDAO {
	return NewNodeStore[model.Job](driver, auditService, bo_neo4j.LabelJob,
		nil, bo_errors.ErrResourceNotFound, bo_errors.ErrResourceConflict)
}

func NewClientDAO(driver neo4j.DriverWithContext, auditService audit.Service) *ClientDAO {
	return NewNodeStore[model.Client](driver, auditService, bo_neo4j.LabelClient,
		nil, bo_errors.ErrResourceNotFound, bo_errors.ErrResourceConflict)
}

func NewCategoryDAO(driver neo4j.DriverWithContext, auditService audit.Service) *CategoryDAO {
	return NewNodeStore[model.Category](driver, auditService, bo_neo4j.LabelCategory,
		[]string{"key"}, bo_errors.ErrCategoryNotFound, bo_errors.ErrCategoryConflict)
}

// UserDAO adds the lookups the principal resolver and login need.
type UserDAO struct {
	*NodeStore[model.User, *model.User]
}

func NewUserDAO(driver neo4j.DriverWithContext, auditService audit.Service) *UserDAO {
	return &UserDAO{NewNodeStore[model.User](driver, auditService, bo_neo4j.LabelUser,
		[]string{"email"}, bo_errors.ErrUserNotFound, bo_errors.ErrUserConflict)}
}

func (dao *UserDAO) FindByID(ctx context.Context, id string) (*model.User, error) {
	return dao.Get(ctx, id)
}

func (dao *UserDAO) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return dao.FindBy(ctx, "email", normalizeEmail(email))
}

// Save overwrites an existing user record.
func (dao *UserDAO) Save(ctx context.Context, user *model.User) (*model.User, error) {
	return dao.Update(ctx, user)
}

// Constrainer is implemented by every store.
type Constrainer interface {
	EnsureConstraints(ctx context.Context) error
	Label() string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Stores bundles one store per resource type.
type Stores struct {
	Companies      *CompanyDAO
	Providers      *ProviderDAO
	Projects       *ProjectDAO
	PurchaseOrders *PurchaseOrderDAO
	Invoices       *InvoiceDAO
	Payments       *PaymentDAO
	Jobs           *JobDAO
	Clients        *ClientDAO
	Categories     *CategoryDAO
	Users          *UserDAO
}

func NewStores(driver neo4j.DriverWithContext, auditService audit.Service) *Stores {
	return &Stores{
		Companies:      NewCompanyDAO(driver, auditService),
		Providers:      NewProviderDAO(driver, auditService),
		Projects:       NewProjectDAO(driver, auditService),
		PurchaseOrders: NewPurchaseOrderDAO(driver, auditService),
		Invoices:       NewInvoiceDAO(driver, auditService),
		Payments:       NewPaymentDAO(driver, auditService),
		Jobs:           NewJobDAO(driver, auditService),
		Clients:        NewClientDAO(driver, auditService),
		Categories:     NewCategoryDAO(driver, auditService),
		Users:          NewUserDAO(driver, auditService),
	}
}

func (s *Stores) All() []Constrainer {
	return []Constrainer{
		s.Companies, s.Providers, s.Projects, s.PurchaseOrders, s.Invoices,
		s.Payments, s.Jobs, s.Clients, s.Categories, s.Users,
	}
}
