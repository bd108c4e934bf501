package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	"github.com/buildledger/backoffice/pdp/engine"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

// descriptorMap serves descriptors keyed by "type/id".
type descriptorMap map[string]pdp_model.ResourceDescriptor

func (m descriptorMap) GetDescriptor(_ context.Context, rt pdp_model.ResourceType, id string) (*pdp_model.ResourceDescriptor, error) {
	d, ok := m[string(rt)+"/"+id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

type financeFixture struct {
	invoiceSvc *InvoiceService
	paymentSvc *PaymentService
	invoices   *memStore[model.Invoice, *model.Invoice]
	payments   *memStore[model.Payment, *model.Payment]
	bus        *util.EventBus
}

// newFinanceFixture wires the real authorizer so foreign references are
// decided by the policy table.
func newFinanceFixture() *financeFixture {
	orders := newMemStore[model.PurchaseOrder, *model.PurchaseOrder]()
	orders.put(&model.PurchaseOrder{ID: "po-a", CompanyID: "c1", ProjectID: "proj-1", ProviderID: "prov-1", Number: "PO-1"})
	orders.put(&model.PurchaseOrder{ID: "po-b", CompanyID: "c2", ProjectID: "proj-2", ProviderID: "prov-b", Number: "PO-2"})

	f := &financeFixture{
		invoices: newMemStore[model.Invoice, *model.Invoice](),
		payments: newMemStore[model.Payment, *model.Payment](),
		bus:      util.NewEventBus(),
	}
	f.invoices.put(&model.Invoice{ID: "inv-a", CompanyID: "c1", ProviderID: "prov-1", Number: "F-1", Amount: 100})
	f.invoices.put(&model.Invoice{ID: "inv-b", CompanyID: "c2", ProviderID: "prov-b", Number: "F-2", Amount: 100})

	descriptors := descriptorMap{
		"provider/prov-1":    {ResourceType: pdp_model.ResourceProvider, ResourceID: "prov-1", TenantID: "c1", OwnerScopeID: "prov-1"},
		"provider/prov-2":    {ResourceType: pdp_model.ResourceProvider, ResourceID: "prov-2", TenantID: "c1", OwnerScopeID: "prov-2"},
		"provider/prov-b":    {ResourceType: pdp_model.ResourceProvider, ResourceID: "prov-b", TenantID: "c2", OwnerScopeID: "prov-b"},
		"purchaseOrder/po-a": {ResourceType: pdp_model.ResourcePurchaseOrder, ResourceID: "po-a", TenantID: "c1", OwnerScopeID: "prov-1"},
		"purchaseOrder/po-b": {ResourceType: pdp_model.ResourcePurchaseOrder, ResourceID: "po-b", TenantID: "c2", OwnerScopeID: "prov-b"},
		"invoice/inv-a":      {ResourceType: pdp_model.ResourceInvoice, ResourceID: "inv-a", TenantID: "c1", OwnerScopeID: "prov-1"},
		"invoice/inv-b":      {ResourceType: pdp_model.ResourceInvoice, ResourceID: "inv-b", TenantID: "c2", OwnerScopeID: "prov-b"},
	}
	authorizer := pdp.NewAuthorizer(engine.NewPolicyEvaluator(nil), descriptors, nil)

	validationUtil := util.NewValidationUtil()
	notificationSvc := util.NewNotificationService()
	f.invoiceSvc = NewInvoiceService(f.invoices, orders, authorizer, validationUtil, notificationSvc, f.bus)
	f.paymentSvc = NewPaymentService(f.payments, f.invoices, authorizer, validationUtil, notificationSvc, f.bus)
	return f
}

func TestInvoiceService_Create(t *testing.T) {
	tests := []struct {
		name     string
		invoice  model.Invoice
		expected error
	}{
		{
			name:     "foreign provider is hidden",
			invoice:  model.Invoice{ProviderID: "prov-b", Number: "F-9", Amount: 10},
			expected: bo_errors.ErrNotFound,
		},
		{
			name:     "foreign purchase order is hidden",
			invoice:  model.Invoice{ProviderID: "prov-1", PurchaseOrderID: "po-b", Number: "F-9", Amount: 10},
			expected: bo_errors.ErrNotFound,
		},
		{
			name:     "order billed to another provider",
			invoice:  model.Invoice{ProviderID: "prov-2", PurchaseOrderID: "po-a", Number: "F-9", Amount: 10},
			expected: bo_errors.ErrValidation,
		},
		{
			name:     "unknown provider",
			invoice:  model.Invoice{ProviderID: "prov-x", Number: "F-9", Amount: 10},
			expected: bo_errors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFinanceFixture()
			defer f.bus.Wait()
			invoice := tt.invoice

			_, err := f.invoiceSvc.Create(companyCtx(t, "c1"), &invoice)

			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, 2, f.invoices.count())
		})
	}

	t.Run("matching order defaults to pending", func(t *testing.T) {
		f := newFinanceFixture()
		defer f.bus.Wait()

		created, err := f.invoiceSvc.Create(companyCtx(t, "c1"), &model.Invoice{
			CompanyID:       "c2",
			ProviderID:      "prov-1",
			PurchaseOrderID: "po-a",
			Number:          "F-3",
			Amount:          65,
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", created.Status)
		assert.Equal(t, "c1", created.CompanyID)
	})
}

func TestInvoiceService_UpdateRechecksOrder(t *testing.T) {
	f := newFinanceFixture()
	defer f.bus.Wait()
	decision := pdp_model.AllowedWithFields("own tenant update", []string{"purchaseOrderId", "number"})

	_, err := f.invoiceSvc.Update(companyCtx(t, "c1"), "inv-a", model.InvoicePatch{PurchaseOrderID: strPtr("po-b")}, decision)
	assert.ErrorIs(t, err, bo_errors.ErrNotFound)

	updated, err := f.invoiceSvc.Update(companyCtx(t, "c1"), "inv-a", model.InvoicePatch{Number: strPtr("F-1b")}, decision)
	require.NoError(t, err)
	assert.Equal(t, "F-1b", updated.Number)
}

func TestPaymentService_Create(t *testing.T) {
	tests := []struct {
		name     string
		ctx      func(t *testing.T) context.Context
		payment  model.Payment
		expected error
	}{
		{
			name:     "another tenant's invoice is hidden",
			ctx:      func(t *testing.T) context.Context { return companyCtx(t, "c1") },
			payment:  model.Payment{InvoiceID: "inv-b", ProviderID: "prov-b", Amount: 10},
			expected: bo_errors.ErrNotFound,
		},
		{
			name:     "provider does not match invoice",
			ctx:      func(t *testing.T) context.Context { return companyCtx(t, "c1") },
			payment:  model.Payment{InvoiceID: "inv-a", ProviderID: "prov-2", Amount: 10},
			expected: bo_errors.ErrValidation,
		},
		{
			name:     "admin cannot pay across tenants",
			ctx:      adminCtx,
			payment:  model.Payment{CompanyID: "c1", InvoiceID: "inv-b", ProviderID: "prov-b", Amount: 10},
			expected: bo_errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFinanceFixture()
			defer f.bus.Wait()
			payment := tt.payment

			_, err := f.paymentSvc.Create(tt.ctx(t), &payment)

			assert.ErrorIs(t, err, tt.expected)
			assert.Zero(t, f.payments.count())
		})
	}

	t.Run("matching invoice", func(t *testing.T) {
		f := newFinanceFixture()
		defer f.bus.Wait()

		created, err := f.paymentSvc.Create(companyCtx(t, "c1"), &model.Payment{InvoiceID: "inv-a", ProviderID: "prov-1", Amount: 100})

		require.NoError(t, err)
		assert.Equal(t, "c1", created.CompanyID)
		assert.Equal(t, 1, f.payments.count())
	})
}
