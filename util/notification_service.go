// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
)

// NotificationService records tenant-visible changes. Delivery (mail,
// queues) is an external collaborator and only logged here.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyTenantChange(ctx context.Context, changeType, resourceType, resourceID, tenantID string) error {
	switch changeType {
	case ChangeCreated, ChangeUpdated, ChangeDeleted:
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	logger.Info("NOTIFICATION: tenant data changed",
		zap.String("changeType", changeType),
		zap.String("resourceType", resourceType),
		zap.String("resourceID", resourceID),
		zap.String("tenantID", tenantID))
	return nil
}

// NotifyPurchaseOrderStatus tells the provider its order moved.
func (n *NotificationService) NotifyPurchaseOrderStatus(ctx context.Context, order *model.PurchaseOrder, provider *model.Provider) error {
	if provider == nil || provider.Email == "" {
		logger.Warn("Provider has no email, skipping order notification", zap.String("orderID", order.ID))
		return nil
	}
	subject := fmt.Sprintf("Purchase order %s is now %s", order.Number, order.Status)
	return n.SendEmail(ctx, provider.Email, subject, "")
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}
