package model

import "time"

type Invoice struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"companyId"`
	ProviderID      string     `json:"providerId" validate:"required"`
	PurchaseOrderID string     `json:"purchaseOrderId,omitempty"`
	Number          string     `json:"number" validate:"required"`
	Amount          float64    `json:"amount" validate:"gte=0"`
	Currency        string     `json:"currency" validate:"omitempty,len=3"`
	IssueDate       *time.Time `json:"issueDate,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Status          string     `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED PAID"`
	FileURL         string     `json:"fileUrl,omitempty"`
	Timestamps
}

func (i *Invoice) RecordID() string      { return i.ID }
func (i *Invoice) SetRecordID(id string) { i.ID = id }

func (i *Invoice) Scope() RecordScope {
	return RecordScope{CompanyID: i.CompanyID, OwnerID: i.ProviderID}
}

func (i *Invoice) UniqueKeys() map[string]string { return nil }

func (i *Invoice) SetCompanyID(id string) { i.CompanyID = id }

type InvoicePatch struct {
	PurchaseOrderID *string    `json:"purchaseOrderId,omitempty"`
	Number          *string    `json:"number,omitempty"`
	Amount          *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Currency        *string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	IssueDate       *time.Time `json:"issueDate,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING APPROVED REJECTED PAID"`
	FileURL         *string    `json:"fileUrl,omitempty"`
}

func (p InvoicePatch) Fields() []string {
	var f fieldList
	f.add("purchaseOrderId", p.PurchaseOrderID != nil)
	f.add("number", p.Number != nil)
	f.add("amount", p.Amount != nil)
	f.add("currency", p.Currency != nil)
	f.add("issueDate", p.IssueDate != nil)
	f.add("dueDate", p.DueDate != nil)
	f.add("status", p.Status != nil)
	f.add("fileUrl", p.FileURL != nil)
	return f
}

func (p InvoicePatch) Apply(i *Invoice) {
	setIfPresent(&i.PurchaseOrderID, p.PurchaseOrderID)
	setIfPresent(&i.Number, p.Number)
	setIfPresent(&i.Amount, p.Amount)
	setIfPresent(&i.Currency, p.Currency)
	setIfPresent(&i.Status, p.Status)
	setIfPresent(&i.FileURL, p.FileURL)
	if p.IssueDate != nil {
		i.IssueDate = p.IssueDate
	}
	if p.DueDate != nil {
		i.DueDate = p.DueDate
	}
}

type Payment struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"companyId"`
	InvoiceID  string     `json:"invoiceId" validate:"required"`
	ProviderID string     `json:"providerId" validate:"required"`
	Amount     float64    `json:"amount" validate:"gt=0"`
	Method     string     `json:"method" validate:"omitempty,oneof=TRANSFER CHECK CASH CARD"`
	Reference  string     `json:"reference,omitempty"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	Timestamps
}

func (p *Payment) RecordID() string      { return p.ID }
func (p *Payment) SetRecordID(id string) { p.ID = id }

func (p *Payment) Scope() RecordScope {
	return RecordScope{CompanyID: p.CompanyID, OwnerID: p.ProviderID}
}

func (p *Payment) UniqueKeys() map[string]string { return nil }

func (p *Payment) SetCompanyID(id string) { p.CompanyID = id }

type PaymentPatch struct {
	Amount    *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Method    *string    `json:"method,omitempty" validate:"omitempty,oneof=TRANSFER CHECK CASH CARD"`
	Reference *string    `json:"reference,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

func (p PaymentPatch) Fields() []string {
	var f fieldList
	f.add("amount", p.Amount != nil)
	f.add("method", p.Method != nil)
	f.add("reference", p.Reference != nil)
	f.add("paidAt", p.PaidAt != nil)
	return f
}

func (p PaymentPatch) Apply(target *Payment) {
	setIfPresent(&target.Amount, p.Amount)
	setIfPresent(&target.Method, p.Method)
	setIfPresent(&target.Reference, p.Reference)
	if p.PaidAt != nil {
		target.PaidAt = p.PaidAt
	}
}
