package model

import "strings"

// Provider is a supplier/subcontractor. CompanyID is empty on legacy records.
type Provider struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId,omitempty"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	TaxID       string `json:"taxId" validate:"required"`
	ContactName string `json:"contactName,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	CategoryKey string `json:"categoryKey,omitempty"`
	IsActive    bool   `json:"isActive"`
	Timestamps
}

func (p *Provider) RecordID() string      { return p.ID }
func (p *Provider) SetRecordID(id string) { p.ID = id }

// Scope makes a provider its own owner so PROVIDER principals match themselves.
func (p *Provider) Scope() RecordScope {
	return RecordScope{CompanyID: p.CompanyID, OwnerID: p.ID}
}

func (p *Provider) UniqueKeys() map[string]string {
	return map[string]string{
		"email": strings.ToLower(p.Email),
		"taxId": p.TaxID,
	}
}

type ProviderPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	TaxID       *string `json:"taxId,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	BankAccount *string `json:"bankAccount,omitempty"`
	CategoryKey *string `json:"categoryKey,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

func (p ProviderPatch) Fields() []string {
	var f fieldList
	f.add("name", p.Name != nil)
	f.add("email", p.Email != nil)
	f.add("phone", p.Phone != nil)
	f.add("address", p.Address != nil)
	f.add("taxId", p.TaxID != nil)
	f.add("contactName", p.ContactName != nil)
	f.add("bankAccount", p.BankAccount != nil)
	f.add("categoryKey", p.CategoryKey != nil)
	f.add("isActive", p.IsActive != nil)
	return f
}

func (p ProviderPatch) Apply(target *Provider) {
	setIfPresent(&target.Name, p.Name)
	setIfPresent(&target.Email, p.Email)
	setIfPresent(&target.Phone, p.Phone)
	setIfPresent(&target.Address, p.Address)
	setIfPresent(&target.TaxID, p.TaxID)
	setIfPresent(&target.ContactName, p.ContactName)
	setIfPresent(&target.BankAccount, p.BankAccount)
	setIfPresent(&target.CategoryKey, p.CategoryKey)
	setIfPresent(&target.IsActive, p.IsActive)
}

func (p *Provider) SetCompanyID(id string) { p.CompanyID = id }
