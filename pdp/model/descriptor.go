package model

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionList   Action = "LIST"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// IsCollection reports whether the action targets a collection rather than one record.
func (a Action) IsCollection() bool {
	return a == ActionCreate || a == ActionList
}

func AllActions() []Action {
	return []Action{ActionCreate, ActionRead, ActionList, ActionUpdate, ActionDelete}
}

type ResourceType string

const (
	ResourceCompany       ResourceType = "company"
	ResourceProvider      ResourceType = "provider"
	ResourceProject       ResourceType = "project"
	ResourcePurchaseOrder ResourceType = "purchaseOrder"
	ResourceInvoice       ResourceType = "invoice"
	ResourcePayment       ResourceType = "payment"
	ResourceJob           ResourceType = "job"
	ResourceClient        ResourceType = "client"
	ResourceCategory      ResourceType = "category"
	ResourceUser          ResourceType = "user"
)

func AllResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceCompany, ResourceProvider, ResourceProject, ResourcePurchaseOrder, ResourceInvoice,
		ResourcePayment, ResourceJob, ResourceClient, ResourceCategory, ResourceUser,
	}
}

// ResourceDescriptor is the tenant-relevant projection of a record.
type ResourceDescriptor struct {
	ResourceType ResourceType `json:"resourceType"`
	ResourceID   string       `json:"resourceId,omitempty"`
	TenantID     string       `json:"tenantId,omitempty"`
	OwnerScopeID string       `json:"ownerScopeId,omitempty"`
}
