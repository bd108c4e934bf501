// model/record.go
package model

import "time"

// Record is implemented by every persisted entity.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	Scope() RecordScope
	// UniqueKeys returns the property values that must be unique per label.
	UniqueKeys() map[string]string
	Stamp(now time.Time)
}

// RecordScope is the tenant/owner projection stored alongside each record.
type RecordScope struct {
	CompanyID string
	OwnerID   string
}

// Timestamps is embedded by every entity.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Timestamps) Stamp(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// Patch is a statically typed partial update.
type Patch[T any] interface {
	// Fields lists the JSON names of the fields present in the patch.
	Fields() []string
	Apply(target *T)
}

type fieldList []string

func (f *fieldList) add(name string, present bool) {
	if present {
		*f = append(*f, name)
	}
}

func setIfPresent[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
