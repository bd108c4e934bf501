package model

import (
	"strings"
	"time"
)

type Job struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"companyId"`
	ProjectID   string     `json:"projectId" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Timestamps
}

func (j *Job) RecordID() string      { return j.ID }
func (j *Job) SetRecordID(id string) { j.ID = id }

func (j *Job) Scope() RecordScope {
	return RecordScope{CompanyID: j.CompanyID}
}

func (j *Job) UniqueKeys() map[string]string { return nil }

func (j *Job) SetCompanyID(id string) { j.CompanyID = id }

type JobPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

func (p JobPatch) Fields() []string {
	var f fieldList
	f.add("title", p.Title != nil)
	f.add("description", p.Description != nil)
	f.add("status", p.Status != nil)
	f.add("assignedTo", p.AssignedTo != nil)
	f.add("dueDate", p.DueDate != nil)
	return f
}

func (p JobPatch) Apply(j *Job) {
	setIfPresent(&j.Title, p.Title)
	setIfPresent(&j.Description, p.Description)
	setIfPresent(&j.Status, p.Status)
	setIfPresent(&j.AssignedTo, p.AssignedTo)
	if p.DueDate != nil {
		j.DueDate = p.DueDate
	}
}

type Client struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
	Timestamps
}

func (c *Client) RecordID() string      { return c.ID }
func (c *Client) SetRecordID(id string) { c.ID = id }

func (c *Client) Scope() RecordScope {
	return RecordScope{CompanyID: c.CompanyID}
}

func (c *Client) UniqueKeys() map[string]string { return nil }

func (c *Client) SetCompanyID(id string) { c.CompanyID = id }

type ClientPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
	TaxID *string `json:"taxId,omitempty"`
}

func (p ClientPatch) Fields() []string {
	var f fieldList
	f.add("name", p.Name != nil)
	f.add("email", p.Email != nil)
	f.add("phone", p.Phone != nil)
	f.add("taxId", p.TaxID != nil)
	return f
}

func (p ClientPatch) Apply(c *Client) {
	setIfPresent(&c.Name, p.Name)
	setIfPresent(&c.Email, p.Email)
	setIfPresent(&c.Phone, p.Phone)
	setIfPresent(&c.TaxID, p.TaxID)
}

// Category is a global lookup, not owned by any tenant.
type Category struct {
	ID          string `json:"id"`
	Key         string `json:"key" validate:"required,lowercase"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Timestamps
}

func (c *Category) RecordID() string      { return c.ID }
func (c *Category) SetRecordID(id string) { c.ID = id }

func (c *Category) Scope() RecordScope { return RecordScope{} }

func (c *Category) UniqueKeys() map[string]string {
	return map[string]string{"key": strings.ToLower(c.Key)}
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CategoryPatch) Fields() []string {
	var f fieldList
	f.add("name", p.Name != nil)
	f.add("description", p.Description != nil)
	return f
}

func (p CategoryPatch) Apply(c *Category) {
	setIfPresent(&c.Name, p.Name)
	setIfPresent(&c.Description, p.Description)
}
