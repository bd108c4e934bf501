// service/finance_service.go
package service

import (
	"context"
	"fmt"

	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	"github.com/buildledger/backoffice/pdp"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
	"github.com/buildledger/backoffice/util"
)

type (
	InvoiceService = ResourceService[model.Invoice, *model.Invoice, model.InvoicePatch]
	PaymentService = ResourceService[model.Payment, *model.Payment, model.PaymentPatch]
)

// NewInvoiceService checks that the billed provider, and the order when one
// is named, are readable by the caller and match each other.
func NewInvoiceService(store Store[model.Invoice, *model.Invoice], orders Store[model.PurchaseOrder, *model.PurchaseOrder], authorizer pdp.IAuthorizer, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *InvoiceService {
	service := NewResourceService[model.Invoice, *model.Invoice, model.InvoicePatch](pdp_model.ResourceInvoice, store, validationUtil, notificationSvc, eventBus)

	checkOrder := func(ctx context.Context, principal pdp_model.Principal, invoice *model.Invoice) error {
		if invoice.PurchaseOrderID == "" {
			return nil
		}
		if _, err := authorizer.Authorize(ctx, principal, pdp_model.ActionRead, pdp_model.ResourcePurchaseOrder, invoice.PurchaseOrderID); err != nil {
			return fmt.Errorf("purchase order %s: %w", invoice.PurchaseOrderID, err)
		}
		order, err := orders.Get(ctx, invoice.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order.ProviderID != invoice.ProviderID || order.CompanyID != invoice.CompanyID {
			return bo_errors.Invalid("invoice does not match purchase order %s", invoice.PurchaseOrderID)
		}
		return nil
	}

	service.validateCreate = func(ctx context.Context, principal pdp_model.Principal, invoice *model.Invoice) error {
		if invoice.Status == "" {
			invoice.Status = "PENDING"
		}
		if _, err := authorizer.Authorize(ctx, principal, pdp_model.ActionRead, pdp_model.ResourceProvider, invoice.ProviderID); err != nil {
			return fmt.Errorf("provider %s: %w", invoice.ProviderID, err)
		}
		return checkOrder(ctx, principal, invoice)
	}
	service.validateUpdate = func(ctx context.Context, principal pdp_model.Principal, old, updated *model.Invoice) error {
		if old.PurchaseOrderID == updated.PurchaseOrderID {
			return nil
		}
		return checkOrder(ctx, principal, updated)
	}
	return service
}

// NewPaymentService ties each payment to a readable invoice of the same provider.
func NewPaymentService(store Store[model.Payment, *model.Payment], invoices Store[model.Invoice, *model.Invoice], authorizer pdp.IAuthorizer, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *PaymentService {
	service := NewResourceService[model.Payment, *model.Payment, model.PaymentPatch](pdp_model.ResourcePayment, store, validationUtil, notificationSvc, eventBus)

	service.validateCreate = func(ctx context.Context, principal pdp_model.Principal, payment *model.Payment) error {
		if _, err := authorizer.Authorize(ctx, principal, pdp_model.ActionRead, pdp_model.ResourceInvoice, payment.InvoiceID); err != nil {
			return fmt.Errorf("invoice %s: %w", payment.InvoiceID, err)
		}
		invoice, err := invoices.Get(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.ProviderID != payment.ProviderID || invoice.CompanyID != payment.CompanyID {
			return bo_errors.Invalid("payment does not match invoice %s", payment.InvoiceID)
		}
		return nil
	}
	return service
}
