package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	bo_neo4j "github.com/buildledger/backoffice/model/neo4j"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

var labels = map[pdp_model.ResourceType]string{
	pdp_model.ResourceCompany:       bo_neo4j.LabelCompany,
	pdp_model.ResourceProvider:      bo_neo4j.LabelProvider,
	pdp_model.ResourceProject:       bo_neo4j.LabelProject,
	pdp_model.ResourcePurchaseOrder: bo_neo4j.LabelPurchaseOrder,
	pdp_model.ResourceInvoice:       bo_neo4j.LabelInvoice,
	pdp_model.ResourcePayment:       bo_neo4j.LabelPayment,
	pdp_model.ResourceJob:           bo_neo4j.LabelJob,
	pdp_model.ResourceClient:        bo_neo4j.LabelClient,
	pdp_model.ResourceCategory:      bo_neo4j.LabelCategory,
	pdp_model.ResourceUser:          bo_neo4j.LabelUser,
}

// DescriptorDAO projects the tenant and owner of a node without loading its document.
type DescriptorDAO struct {
	Driver neo4j.DriverWithContext
}

func NewDescriptorDAO(driver neo4j.DriverWithContext) *DescriptorDAO {
	return &DescriptorDAO{Driver: driver}
}

// GetDescriptor returns nil, nil when the record does not exist.
func (dao *DescriptorDAO) GetDescriptor(ctx context.Context, resourceType pdp_model.ResourceType, id string) (*pdp_model.ResourceDescriptor, error) {
	start := time.Now()
	label, ok := labels[resourceType]
	if !ok {
		return nil, bo_errors.ErrUnknownResourceType
	}

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
    MATCH (n:%s {%s: $id})
    RETURN n.%s AS companyId, n.%s AS ownerId
    `, label, bo_neo4j.PropID, bo_neo4j.PropCompanyID, bo_neo4j.PropOwnerID)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			return nil, result.Err()
		}
		record := result.Record()
		companyID, _ := record.Get("companyId")
		ownerID, _ := record.Get("ownerId")
		return &pdp_model.ResourceDescriptor{
			ResourceType: resourceType,
			ResourceID:   id,
			TenantID:     asString(companyID),
			OwnerScopeID: asString(ownerID),
		}, nil
	})
	if err != nil {
		logger.Error("Failed to load resource descriptor",
			zap.Error(err),
			zap.String("resourceType", string(resourceType)),
			zap.String("resourceID", id),
			zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", bo_errors.ErrDatabaseOperation, err)
	}
	if result == nil {
		return nil, nil
	}

	descriptor := result.(*pdp_model.ResourceDescriptor)
	logger.Debug("Resource descriptor loaded",
		zap.String("resourceType", string(resourceType)),
		zap.String("resourceID", id),
		zap.String("tenantID", descriptor.TenantID),
		zap.Duration("duration", time.Since(start)))
	return descriptor, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
