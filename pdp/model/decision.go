package model

import (
	"sort"

	bo_errors "github.com/buildledger/backoffice/errors"
)

type Outcome string

const (
	Allow Outcome = "ALLOW"
	Deny  Outcome = "DENY"
)

// DenialKind classifies why a decision denied. The guard uses it to decide
// between 403 and 404.
type DenialKind string

const (
	DenialNone            DenialKind = ""
	DenialCrossTenant     DenialKind = "cross_tenant"
	DenialNotOwner        DenialKind = "not_owner"
	DenialMissingTenant   DenialKind = "missing_tenant"
	DenialRole            DenialKind = "role"
	DenialUnknownResource DenialKind = "unknown_resource"
)

// IsForeign reports whether the denial concerns data outside the caller's scope.
func (k DenialKind) IsForeign() bool {
	return k == DenialCrossTenant || k == DenialNotOwner || k == DenialMissingTenant
}

type PolicyDecision struct {
	Outcome Outcome `json:"outcome"`
	// AllowedFields is nil when writes are unrestricted.
	AllowedFields []string   `json:"allowedFields,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	DenialKind    DenialKind `json:"denialKind,omitempty"`
}

func Allowed(reason string) PolicyDecision {
	return PolicyDecision{Outcome: Allow, Reason: reason}
}

func AllowedWithFields(reason string, fields []string) PolicyDecision {
	return PolicyDecision{Outcome: Allow, Reason: reason, AllowedFields: append([]string{}, fields...)}
}

func Denied(kind DenialKind, reason string) PolicyDecision {
	return PolicyDecision{Outcome: Deny, Reason: reason, DenialKind: kind}
}

func (d PolicyDecision) Allowed() bool {
	return d.Outcome == Allow
}

func (d PolicyDecision) Restricted() bool {
	return d.AllowedFields != nil
}

// CheckFields fails with a FieldRestrictionError naming every field outside AllowedFields.
func (d PolicyDecision) CheckFields(fields []string) error {
	if !d.Restricted() {
		return nil
	}
	allowed := make(map[string]struct{}, len(d.AllowedFields))
	for _, f := range d.AllowedFields {
		allowed[f] = struct{}{}
	}
	var rejected []string
	for _, f := range fields {
		if _, ok := allowed[f]; !ok {
			rejected = append(rejected, f)
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	sort.Strings(rejected)
	return bo_errors.NewFieldRestrictionError(rejected)
}
