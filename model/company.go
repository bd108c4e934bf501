package model

import "strings"

// Company is a tenant. Its id is the tenant id stamped on tenant data.
type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	TaxID    string `json:"taxId" validate:"required"`
	IsActive bool   `json:"isActive"`
	Timestamps
}

func (c *Company) RecordID() string      { return c.ID }
func (c *Company) SetRecordID(id string) { c.ID = id }

func (c *Company) Scope() RecordScope {
	return RecordScope{CompanyID: c.ID}
}

func (c *Company) UniqueKeys() map[string]string {
	return map[string]string{
		"email": strings.ToLower(c.Email),
		"taxId": c.TaxID,
	}
}

type CompanyPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	TaxID    *string `json:"taxId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (p CompanyPatch) Fields() []string {
	var f fieldList
	f.add("name", p.Name != nil)
	f.add("email", p.Email != nil)
	f.add("phone", p.Phone != nil)
	f.add("address", p.Address != nil)
	f.add("taxId", p.TaxID != nil)
	f.add("isActive", p.IsActive != nil)
	return f
}

func (p CompanyPatch) Apply(c *Company) {
	setIfPresent(&c.Name, p.Name)
	setIfPresent(&c.Email, p.Email)
	setIfPresent(&c.Phone, p.Phone)
	setIfPresent(&c.Address, p.Address)
	setIfPresent(&c.TaxID, p.TaxID)
	setIfPresent(&c.IsActive, p.IsActive)
}

// NewCompany is the admin create payload; Password provisions the COMPANY login.
type NewCompany struct {
	Company
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}
