package model

import "time"

type Project struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"companyId"`
	ClientID    string     `json:"clientId,omitempty"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Status      string     `json:"status" validate:"omitempty,oneof=PLANNED ACTIVE ON_HOLD COMPLETED CANCELLED"`
	Budget      float64    `json:"budget" validate:"gte=0"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Timestamps
}

func (p *Project) RecordID() string      { return p.ID }
func (p *Project) SetRecordID(id string) { p.ID = id }

func (p *Project) Scope() RecordScope {
	return RecordScope{CompanyID: p.CompanyID}
}

func (p *Project) UniqueKeys() map[string]string { return nil }

func (p *Project) SetCompanyID(id string) { p.CompanyID = id }

type ProjectPatch struct {
	ClientID    *string    `json:"clientId,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=PLANNED ACTIVE ON_HOLD COMPLETED CANCELLED"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gte=0"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

func (p ProjectPatch) Fields() []string {
	var f fieldList
	f.add("clientId", p.ClientID != nil)
	f.add("name", p.Name != nil)
	f.add("description", p.Description != nil)
	f.add("address", p.Address != nil)
	f.add("status", p.Status != nil)
	f.add("budget", p.Budget != nil)
	f.add("startDate", p.StartDate != nil)
	f.add("endDate", p.EndDate != nil)
	return f
}

func (p ProjectPatch) Apply(target *Project) {
	setIfPresent(&target.ClientID, p.ClientID)
	setIfPresent(&target.Name, p.Name)
	setIfPresent(&target.Description, p.Description)
	setIfPresent(&target.Address, p.Address)
	setIfPresent(&target.Status, p.Status)
	setIfPresent(&target.Budget, p.Budget)
	if p.StartDate != nil {
		target.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		target.EndDate = p.EndDate
	}
}
