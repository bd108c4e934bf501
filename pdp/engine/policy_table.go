package engine

import (
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// Grant is a set of actions and, for UPDATE, the writable fields.
// A nil Fields on a staff grant falls back to the type's CompanyFields.
type Grant struct {
	Actions []pdp_model.Action
	Fields  []string
}

func (g Grant) permits(action pdp_model.Action) bool {
	for _, a := range g.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// TypePolicy is the rule row for one resource type.
type TypePolicy struct {
	TenantScoped bool
	// MaskForeign surfaces foreign READ denials as not found. Writes against
	// a foreign record stay forbidden.
	MaskForeign   bool
	CompanyDelete bool
	// CompanyFields is the COMPANY update allow-list.
	CompanyFields []string
	// ProviderFields is what a PROVIDER may write on a record it owns.
	ProviderFields []string
	Staff          map[model.Role]Grant
}

// Masks reports whether a denial of action with the given kind is reported as not found.
func (tp TypePolicy) Masks(action pdp_model.Action, kind pdp_model.DenialKind) bool {
	return tp.MaskForeign && action == pdp_model.ActionRead && kind.IsForeign()
}

type PolicyTable map[pdp_model.ResourceType]TypePolicy

func (t PolicyTable) Lookup(resourceType pdp_model.ResourceType) (TypePolicy, bool) {
	tp, ok := t[resourceType]
	return tp, ok
}

var (
	readOnly  = []pdp_model.Action{pdp_model.ActionRead, pdp_model.ActionList}
	readWrite = []pdp_model.Action{pdp_model.ActionCreate, pdp_model.ActionRead, pdp_model.ActionList, pdp_model.ActionUpdate}
)

// DefaultPolicyTable returns the back office rules.
func DefaultPolicyTable() PolicyTable {
	return PolicyTable{
		pdp_model.ResourceCompany: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyFields:  []string{"name", "email", "phone", "address"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:      {Actions: []pdp_model.Action{pdp_model.ActionRead}},
				model.RoleTreasury:     {Actions: []pdp_model.Action{pdp_model.ActionRead}},
				model.RoleCollaborator: {Actions: []pdp_model.Action{pdp_model.ActionRead}},
				model.RoleUser:         {Actions: []pdp_model.Action{pdp_model.ActionRead}},
			},
		},
		pdp_model.ResourceProvider: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyFields:  []string{"name", "email", "phone", "address", "taxId", "contactName", "bankAccount", "categoryKey", "isActive"},
			ProviderFields: []string{"name", "email", "phone", "address", "contactName", "bankAccount"},
			Staff: map[model.Role]Grant{
				model.RoleManager:      {Actions: readOnly},
				model.RoleTreasury:     {Actions: readOnly},
				model.RoleCollaborator: {Actions: readOnly},
			},
		},
		pdp_model.ResourceProject: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyDelete:  true,
			CompanyFields:  []string{"clientId", "name", "description", "address", "status", "budget", "startDate", "endDate"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:      {Actions: readWrite},
				model.RoleTreasury:     {Actions: readOnly},
				model.RoleCollaborator: {Actions: readOnly},
				model.RoleUser:         {Actions: readOnly},
			},
		},
		pdp_model.ResourcePurchaseOrder: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyDelete:  true,
			CompanyFields:  []string{"projectId", "provider", "number", "items", "status", "paymentStatus", "notes", "deliveryDate"},
			ProviderFields: []string{"status", "providerNotes"},
			Staff: map[model.Role]Grant{
				model.RoleManager: {Actions: readWrite},
				model.RoleTreasury: {
					Actions: []pdp_model.Action{pdp_model.ActionRead, pdp_model.ActionList, pdp_model.ActionUpdate},
					Fields:  []string{"status", "paymentStatus"},
				},
				model.RoleCollaborator: {Actions: readOnly},
			},
		},
		pdp_model.ResourceInvoice: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyFields:  []string{"purchaseOrderId", "number", "amount", "currency", "issueDate", "dueDate", "status", "fileUrl"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:  {Actions: readOnly},
				model.RoleTreasury: {Actions: readWrite},
			},
		},
		pdp_model.ResourcePayment: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyFields:  []string{"amount", "method", "reference", "paidAt"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:  {Actions: readOnly},
				model.RoleTreasury: {Actions: readWrite},
			},
		},
		pdp_model.ResourceJob: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyDelete:  true,
			CompanyFields:  []string{"title", "description", "status", "assignedTo", "dueDate"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:  {Actions: readWrite},
				model.RoleTreasury: {Actions: readOnly},
				model.RoleCollaborator: {
					Actions: []pdp_model.Action{pdp_model.ActionRead, pdp_model.ActionList, pdp_model.ActionUpdate},
					Fields:  []string{"status"},
				},
				model.RoleUser: {Actions: readOnly},
			},
		},
		pdp_model.ResourceClient: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyDelete:  true,
			CompanyFields:  []string{"name", "email", "phone", "taxId"},
			ProviderFields: []string{},
			Staff: map[model.Role]Grant{
				model.RoleManager:      {Actions: readWrite},
				model.RoleTreasury:     {Actions: readOnly},
				model.RoleCollaborator: {Actions: readOnly},
				model.RoleUser:         {Actions: readOnly},
			},
		},
		pdp_model.ResourceUser: {
			TenantScoped:   true,
			MaskForeign:    true,
			CompanyDelete:  true,
			CompanyFields:  []string{"name", "email", "isActive", "password"},
			ProviderFields: []string{"name", "password"},
			Staff: map[model.Role]Grant{
				model.RoleManager: {Actions: readOnly},
			},
		},
		pdp_model.ResourceCategory: {
			TenantScoped: false,
		},
	}
}
