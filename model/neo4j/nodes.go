// model/neo4j/nodes.go
package bo_neo4j

// Node Labels
const (
	// LabelCompany represents a tenant
	LabelCompany = "Company"

	// LabelProvider represents a supplier, optionally owned by a company
	LabelProvider = "Provider"

	LabelProject       = "Project"
	LabelPurchaseOrder = "PurchaseOrder"
	LabelInvoice       = "Invoice"
	LabelPayment       = "Payment"
	LabelJob           = "Job"
	LabelClient        = "Client"

	// LabelCategory is a global lookup keyed by a slug
	LabelCategory = "Category"

	// LabelUser represents a login account
	LabelUser = "User"
)

// Node properties shared by every document node
const (
	PropID        = "id"
	PropCompanyID = "companyId"
	PropOwnerID   = "ownerId"
	PropData      = "data"
	PropCreatedAt = "createdAt"
	PropUpdatedAt = "updatedAt"
)
