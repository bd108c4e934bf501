package model

import "time"

type PurchaseOrderStatus string

const (
	PurchaseOrderDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderSent      PurchaseOrderStatus = "SENT"
	PurchaseOrderAccepted  PurchaseOrderStatus = "ACCEPTED"
	PurchaseOrderRejected  PurchaseOrderStatus = "REJECTED"
	PurchaseOrderDelivered PurchaseOrderStatus = "DELIVERED"
	PurchaseOrderInvoiced  PurchaseOrderStatus = "INVOICED"
	PurchaseOrderCancelled PurchaseOrderStatus = "CANCELLED"
)

var purchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderDraft:     {PurchaseOrderSent, PurchaseOrderCancelled},
	PurchaseOrderSent:      {PurchaseOrderAccepted, PurchaseOrderRejected, PurchaseOrderCancelled},
	PurchaseOrderAccepted:  {PurchaseOrderDelivered, PurchaseOrderCancelled},
	PurchaseOrderDelivered: {PurchaseOrderInvoiced},
}

// CanTransition reports whether an order may move from one status to another.
func (s PurchaseOrderStatus) CanTransition(to PurchaseOrderStatus) bool {
	if s == to {
		return true
	}
	for _, next := range purchaseOrderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PurchaseOrderItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type PurchaseOrder struct {
	ID            string              `json:"id"`
	CompanyID     string              `json:"companyId"`
	ProjectID     string              `json:"projectId" validate:"required"`
	ProviderID    string              `json:"provider" validate:"required"`
	Number        string              `json:"number" validate:"required"`
	Items         []PurchaseOrderItem `json:"items" validate:"dive"`
	Total         float64             `json:"total"`
	Status        PurchaseOrderStatus `json:"status"`
	PaymentStatus string              `json:"paymentStatus,omitempty" validate:"omitempty,oneof=PENDING PARTIAL PAID"`
	Notes         string              `json:"notes,omitempty"`
	ProviderNotes string              `json:"providerNotes,omitempty"`
	DeliveryDate  *time.Time          `json:"deliveryDate,omitempty"`
	Timestamps
}

func (o *PurchaseOrder) RecordID() string      { return o.ID }
func (o *PurchaseOrder) SetRecordID(id string) { o.ID = id }

// Scope records the provider as owner so providers can reach their own orders.
func (o *PurchaseOrder) Scope() RecordScope {
	return RecordScope{CompanyID: o.CompanyID, OwnerID: o.ProviderID}
}

func (o *PurchaseOrder) UniqueKeys() map[string]string { return nil }

func (o *PurchaseOrder) SetCompanyID(id string) { o.CompanyID = id }

// Recalculate sets Total from the line items.
func (o *PurchaseOrder) Recalculate() {
	var total float64
	for _, item := range o.Items {
		total += item.Quantity * item.UnitPrice
	}
	o.Total = total
}

type PurchaseOrderPatch struct {
	ProjectID     *string              `json:"projectId,omitempty"`
	ProviderID    *string              `json:"provider,omitempty"`
	Number        *string              `json:"number,omitempty"`
	Items         *[]PurchaseOrderItem `json:"items,omitempty" validate:"omitempty,dive"`
	Status        *PurchaseOrderStatus `json:"status,omitempty"`
	PaymentStatus *string              `json:"paymentStatus,omitempty" validate:"omitempty,oneof=PENDING PARTIAL PAID"`
	Notes         *string              `json:"notes,omitempty"`
	ProviderNotes *string              `json:"providerNotes,omitempty"`
	DeliveryDate  *time.Time           `json:"deliveryDate,omitempty"`
}

func (p PurchaseOrderPatch) Fields() []string {
	var f fieldList
	f.add("projectId", p.ProjectID != nil)
	f.add("provider", p.ProviderID != nil)
	f.add("number", p.Number != nil)
	f.add("items", p.Items != nil)
	f.add("status", p.Status != nil)
	f.add("paymentStatus", p.PaymentStatus != nil)
	f.add("notes", p.Notes != nil)
	f.add("providerNotes", p.ProviderNotes != nil)
	f.add("deliveryDate", p.DeliveryDate != nil)
	return f
}

func (p PurchaseOrderPatch) Apply(o *PurchaseOrder) {
	setIfPresent(&o.ProjectID, p.ProjectID)
	setIfPresent(&o.ProviderID, p.ProviderID)
	setIfPresent(&o.Number, p.Number)
	setIfPresent(&o.Items, p.Items)
	setIfPresent(&o.Status, p.Status)
	setIfPresent(&o.PaymentStatus, p.PaymentStatus)
	setIfPresent(&o.Notes, p.Notes)
	setIfPresent(&o.ProviderNotes, p.ProviderNotes)
	if p.DeliveryDate != nil {
		o.DeliveryDate = p.DeliveryDate
	}
	if p.Items != nil {
		o.Recalculate()
	}
}
