package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

func newProjectService(t *testing.T) (*ProjectService, *memStore[model.Project, *model.Project], *util.EventBus) {
	t.Helper()
	store := newMemStore[model.Project, *model.Project]()
	bus := util.NewEventBus()
	svc := NewResourceService[model.Project, *model.Project, model.ProjectPatch](pdp_model.ResourceProject, store, util.NewValidationUtil(), util.NewNotificationService(), bus)
	return svc, store, bus
}

func TestResourceService_CreateStampsCallerTenant(t *testing.T) {
	svc, _, bus := newProjectService(t)
	defer bus.Wait()

	created, err := svc.Create(companyCtx(t, "c1"), &model.Project{ID: "chosen", CompanyID: "c2", Name: "Tower"})

	require.NoError(t, err)
	assert.Equal(t, "c1", created.CompanyID)
	assert.NotEqual(t, "chosen", created.ID)
}

func TestResourceService_AdminMustNameTenant(t *testing.T) {
	svc, store, _ := newProjectService(t)

	_, err := svc.Create(adminCtx(t), &model.Project{Name: "Tower"})
	assert.ErrorIs(t, err, bo_errors.ErrValidation)
	assert.Zero(t, store.count())

	created, err := svc.Create(adminCtx(t), &model.Project{CompanyID: "c9", Name: "Tower"})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.CompanyID)
}

func TestResourceService_CreateRequiresPrincipal(t *testing.T) {
	svc, _, _ := newProjectService(t)

	_, err := svc.Create(context.Background(), &model.Project{Name: "Tower"})

	assert.ErrorIs(t, err, bo_errors.ErrUnauthenticated)
}

func TestResourceService_UpdateRejectsRestrictedFields(t *testing.T) {
	svc, store, _ := newProjectService(t)
	store.put(&model.Project{ID: "p1", CompanyID: "c1", Name: "Tower", Status: "PLANNED"})
	decision := pdp_model.AllowedWithFields("test", []string{"status"})

	_, err := svc.Update(companyCtx(t, "c1"), "p1", model.ProjectPatch{Name: strPtr("Renamed"), Status: strPtr("ACTIVE")}, decision)

	var restricted *bo_errors.FieldRestrictionError
	require.ErrorAs(t, err, &restricted)
	assert.Equal(t, []string{"name"}, restricted.Fields)
	assert.Zero(t, store.updates)
}

func TestResourceService_UpdateAppliesAllowedPatch(t *testing.T) {
	svc, store, bus := newProjectService(t)
	defer bus.Wait()
	store.put(&model.Project{ID: "p1", CompanyID: "c1", Name: "Tower", Status: "PLANNED"})
	decision := pdp_model.AllowedWithFields("test", []string{"status"})

	updated, err := svc.Update(companyCtx(t, "c1"), "p1", model.ProjectPatch{Status: strPtr("ACTIVE")}, decision)

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", updated.Status)
	assert.Equal(t, "Tower", updated.Name)
}

func TestResourceService_UpdateValidatesResult(t *testing.T) {
	svc, store, _ := newProjectService(t)
	store.put(&model.Project{ID: "p1", CompanyID: "c1", Name: "Tower"})

	_, err := svc.Update(adminCtx(t), "p1", model.ProjectPatch{Status: strPtr("SOMEDAY")}, pdp_model.Allowed("admin"))

	assert.ErrorIs(t, err, bo_errors.ErrValidation)
}

func TestResourceService_ListIsTenantScoped(t *testing.T) {
	svc, store, _ := newProjectService(t)
	store.put(&model.Project{ID: "p1", CompanyID: "c1", Name: "A"})
	store.put(&model.Project{ID: "p2", CompanyID: "c2", Name: "B"})
	store.put(&model.Project{ID: "p3", CompanyID: "c1", Name: "C"})

	tests := []struct {
		name   string
		ctx    context.Context
		params ListParams
		want   []string
	}{
		{"company sees own tenant", companyCtx(t, "c1"), ListParams{}, []string{"p1", "p3"}},
		{"company filter is ignored", companyCtx(t, "c1"), ListParams{CompanyID: "c2"}, []string{"p1", "p3"}},
		{"staff sees own tenant", principalCtx(t, "m1", model.RoleManager, "c2", ""), ListParams{}, []string{"p2"}},
		{"admin sees everything", adminCtx(t), ListParams{}, []string{"p1", "p2", "p3"}},
		{"admin may filter", adminCtx(t), ListParams{CompanyID: "c2"}, []string{"p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := svc.List(tt.ctx, tt.params)
			require.NoError(t, err)
			var ids []string
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestResourceService_ProviderListsOwnRecords(t *testing.T) {
	store := newMemStore[model.Invoice, *model.Invoice]()
	svc := NewResourceService[model.Invoice, *model.Invoice, model.InvoicePatch](pdp_model.ResourceInvoice, store, util.NewValidationUtil(), util.NewNotificationService(), util.NewEventBus())
	store.put(&model.Invoice{ID: "i1", CompanyID: "c1", ProviderID: "prov-1", Number: "1"})
	store.put(&model.Invoice{ID: "i2", CompanyID: "c1", ProviderID: "prov-2", Number: "2"})

	docs, err := svc.List(principalCtx(t, "u-prov", model.RoleProvider, "c1", "prov-1"), ListParams{})

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "i1", docs[0].ID)
}

func TestResourceService_DeletePublishesEvent(t *testing.T) {
	svc, store, bus := newProjectService(t)
	store.put(&model.Project{ID: "p1", CompanyID: "c1", Name: "Tower"})

	received := make(chan ChangeEvent, 1)
	bus.Subscribe(util.EventType(string(pdp_model.ResourceProject), util.ChangeDeleted), func(ctx context.Context, e util.Event) error {
		received <- e.Payload.(ChangeEvent)
		return nil
	})

	require.NoError(t, svc.Delete(companyCtx(t, "c1"), "p1"))
	bus.Wait()

	ev := <-received
	assert.Equal(t, "p1", ev.ID)
	assert.Equal(t, "c1", ev.TenantID)
	assert.Zero(t, store.count())
}

func TestResourceService_DeleteMissingIsNotFound(t *testing.T) {
	svc, _, _ := newProjectService(t)

	err := svc.Delete(adminCtx(t), "nope")

	assert.ErrorIs(t, err, bo_errors.ErrNotFound)
}
