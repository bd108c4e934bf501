package model

import (
	"fmt"
	"strings"
)

// Role is the single role held by a user.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleCompany      Role = "COMPANY"
	RoleProvider     Role = "PROVIDER"
	RoleManager      Role = "MANAGER"
	RoleTreasury     Role = "TREASURY"
	RoleCollaborator Role = "COLABORADOR"
	RoleUser         Role = "USER"
)

// legacyAdminRole was a second admin spelling in older records.
const legacyAdminRole = "ADMIN2"

var allRoles = []Role{RoleAdmin, RoleCompany, RoleProvider, RoleManager, RoleTreasury, RoleCollaborator, RoleUser}

// AllRoles returns every role in the closed enumeration.
func AllRoles() []Role {
	return append([]Role(nil), allRoles...)
}

// ParseRole normalizes a stored or claimed role string.
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == legacyAdminRole {
		return RoleAdmin, nil
	}
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsStaff reports whether the role is a tenant staff role scoped by companyId.
func (r Role) IsStaff() bool {
	switch r {
	case RoleManager, RoleTreasury, RoleCollaborator, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role" validate:"required"`
	CompanyID    string `json:"companyId,omitempty"`
	ProviderID   string `json:"providerId,omitempty"`
	IsActive     bool   `json:"isActive"`
	Timestamps
}

// userDocument is the stored shape; PasswordHash is hidden from API JSON only.
type userDocument struct {
	User
	PasswordHash string `json:"passwordHash"`
}

func (u *User) RecordID() string      { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

func (u *User) Scope() RecordScope {
	return RecordScope{CompanyID: u.CompanyID, OwnerID: u.ID}
}

func (u *User) UniqueKeys() map[string]string {
	return map[string]string{"email": strings.ToLower(u.Email)}
}

// MarshalDocument and UnmarshalDocument keep the password hash in storage.
func (u *User) MarshalDocument() any {
	return userDocument{User: *u, PasswordHash: u.PasswordHash}
}

func (u *User) UnmarshalDocument(decode func(any) error) error {
	var doc userDocument
	if err := decode(&doc); err != nil {
		return err
	}
	*u = doc.User
	u.PasswordHash = doc.PasswordHash
	return nil
}

// UserPatch is the partial update accepted for user records.
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Role       *Role   `json:"role,omitempty"`
	CompanyID  *string `json:"companyId,omitempty"`
	ProviderID *string `json:"providerId,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (p UserPatch) Fields() []string {
	var f fieldList
	f.add("name", p.Name != nil)
	f.add("email", p.Email != nil)
	f.add("role", p.Role != nil)
	f.add("companyId", p.CompanyID != nil)
	f.add("providerId", p.ProviderID != nil)
	f.add("isActive", p.IsActive != nil)
	f.add("password", p.Password != nil)
	return f
}

// Apply leaves the password to the service, which hashes it.
func (p UserPatch) Apply(u *User) {
	setIfPresent(&u.Name, p.Name)
	setIfPresent(&u.Email, p.Email)
	setIfPresent(&u.Role, p.Role)
	setIfPresent(&u.CompanyID, p.CompanyID)
	setIfPresent(&u.ProviderID, p.ProviderID)
	setIfPresent(&u.IsActive, p.IsActive)
}

type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type NewUser struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       Role   `json:"role" validate:"required"`
	CompanyID  string `json:"companyId,omitempty"`
	ProviderID string `json:"providerId,omitempty"`
}
