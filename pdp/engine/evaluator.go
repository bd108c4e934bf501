package engine

import (
	"fmt"

	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// PolicyEvaluator is the single decision function of the access-control core.
// It performs no I/O.
type PolicyEvaluator struct {
	table PolicyTable
}

func NewPolicyEvaluator(table PolicyTable) *PolicyEvaluator {
	if table == nil {
		table = DefaultPolicyTable()
	}
	return &PolicyEvaluator{table: table}
}

func (pe *PolicyEvaluator) Table() PolicyTable {
	return pe.table
}

// Evaluate applies the rules in order; the first matching rule decides.
func (pe *PolicyEvaluator) Evaluate(principal pdp_model.Principal, action pdp_model.Action, descriptor pdp_model.ResourceDescriptor) pdp_model.PolicyDecision {
	if principal.IsAdmin() {
		return pdp_model.Allowed("admin")
	}

	tp, ok := pe.table.Lookup(descriptor.ResourceType)
	if !ok {
		return pdp_model.Denied(pdp_model.DenialUnknownResource,
			fmt.Sprintf("no policy for resource type %q", descriptor.ResourceType))
	}

	if !tp.TenantScoped {
		if action == pdp_model.ActionRead || action == pdp_model.ActionList {
			return pdp_model.Allowed("public lookup")
		}
		return pdp_model.Denied(pdp_model.DenialRole,
			fmt.Sprintf("%s on %s requires admin", action, descriptor.ResourceType))
	}

	if descriptor.TenantID == "" {
		return pdp_model.Denied(pdp_model.DenialMissingTenant,
			fmt.Sprintf("%s %s has no tenant", descriptor.ResourceType, descriptor.ResourceID))
	}

	switch role := principal.Role(); {
	case role == model.RoleCompany:
		return pe.evaluateCompany(principal, action, descriptor, tp)
	case role == model.RoleProvider:
		return pe.evaluateProvider(principal, action, descriptor, tp)
	case role.IsStaff():
		return pe.evaluateStaff(principal, action, descriptor, tp)
	}

	return pdp_model.Denied(pdp_model.DenialRole, "no rule matched")
}

func sameTenant(principal pdp_model.Principal, descriptor pdp_model.ResourceDescriptor) bool {
	return principal.TenantID() != "" && principal.TenantID() == descriptor.TenantID
}

func (pe *PolicyEvaluator) evaluateCompany(principal pdp_model.Principal, action pdp_model.Action, descriptor pdp_model.ResourceDescriptor, tp TypePolicy) pdp_model.PolicyDecision {
	if !sameTenant(principal, descriptor) {
		return pdp_model.Denied(pdp_model.DenialCrossTenant, "cross-tenant")
	}
	switch action {
	case pdp_model.ActionCreate, pdp_model.ActionRead, pdp_model.ActionList:
		return pdp_model.Allowed("own tenant")
	case pdp_model.ActionUpdate:
		return pdp_model.AllowedWithFields("own tenant update", tp.CompanyFields)
	case pdp_model.ActionDelete:
		if tp.CompanyDelete {
			return pdp_model.Allowed("own tenant delete")
		}
		return pdp_model.Denied(pdp_model.DenialRole,
			fmt.Sprintf("company may not delete %s", descriptor.ResourceType))
	}
	return pdp_model.Denied(pdp_model.DenialRole, fmt.Sprintf("unknown action %q", action))
}

// evaluateProvider grants self-access only. Providers cannot enumerate or create.
func (pe *PolicyEvaluator) evaluateProvider(principal pdp_model.Principal, action pdp_model.Action, descriptor pdp_model.ResourceDescriptor, tp TypePolicy) pdp_model.PolicyDecision {
	if descriptor.OwnerScopeID == "" || descriptor.OwnerScopeID != principal.ResourceScopeID() {
		return pdp_model.Denied(pdp_model.DenialNotOwner, "not the owner")
	}
	switch action {
	case pdp_model.ActionRead:
		return pdp_model.Allowed("owner")
	case pdp_model.ActionUpdate:
		return pdp_model.AllowedWithFields("owner update", tp.ProviderFields)
	}
	return pdp_model.Denied(pdp_model.DenialRole,
		fmt.Sprintf("provider may not %s %s", action, descriptor.ResourceType))
}

func (pe *PolicyEvaluator) evaluateStaff(principal pdp_model.Principal, action pdp_model.Action, descriptor pdp_model.ResourceDescriptor, tp TypePolicy) pdp_model.PolicyDecision {
	if !sameTenant(principal, descriptor) {
		return pdp_model.Denied(pdp_model.DenialCrossTenant, "cross-tenant")
	}
	grant, ok := tp.Staff[principal.Role()]
	if !ok || !grant.permits(action) {
		return pdp_model.Denied(pdp_model.DenialRole,
			fmt.Sprintf("%s may not %s %s", principal.Role(), action, descriptor.ResourceType))
	}
	if action != pdp_model.ActionUpdate {
		return pdp_model.Allowed("staff grant")
	}
	fields := grant.Fields
	if fields == nil {
		fields = tp.CompanyFields
	}
	return pdp_model.AllowedWithFields("staff update", fields)
}
