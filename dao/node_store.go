// dao/node_store.go
package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/buildledger/backoffice/audit"
	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
	bo_neo4j "github.com/buildledger/backoffice/model/neo4j"
	pdp_model "github.com/buildledger/backoffice/pdp/model"
)

// record constrains PT to a pointer to T implementing model.Record.
type record[T any] interface {
	*T
	model.Record
}

// documentCodec lets an entity store a different shape than its API JSON.
type documentCodec interface {
	MarshalDocument() any
	UnmarshalDocument(decode func(any) error) error
}

// ListFilter narrows List by tenant and owner. Empty values match everything.
type ListFilter struct {
	CompanyID string
	OwnerID   string
	Limit     int
	Offset    int
}

// NodeStore persists one entity type as document nodes under a single label.
type NodeStore[T any, PT record[T]] struct {
	Driver       neo4j.DriverWithContext
	AuditService audit.Service
	label        string
	uniqueKeys   []string
	notFound     error
	conflict     error
	now          func() time.Time
}

func NewNodeStore[T any, PT record[T]](driver neo4j.DriverWithContext, auditService audit.Service, label string, uniqueKeys []string, notFound, conflict error) *NodeStore[T, PT] {
	return &NodeStore[T, PT]{
		Driver:       driver,
		AuditService: auditService,
		label:        label,
		uniqueKeys:   uniqueKeys,
		notFound:     notFound,
		conflict:     conflict,
		now:          time.Now,
	}
}

func (s *NodeStore[T, PT]) Label() string { return s.label }

// EnsureConstraints creates the id and unique-key constraints plus the tenant index.
func (s *NodeStore[T, PT]) EnsureConstraints(ctx context.Context) error {
	logger.Info("Ensuring constraints", zap.String("label", s.label))
	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	name := strings.ToLower(s.label)
	statements := []string{
		fmt.Sprintf("CREATE CONSTRAINT unique_%s_id IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE", name, s.label, bo_neo4j.PropID),
		fmt.Sprintf("CREATE INDEX %s_company IF NOT EXISTS FOR (n:%s) ON (n.%s)", name, s.label, bo_neo4j.PropCompanyID),
	}
	for _, key := range s.uniqueKeys {
		statements = append(statements,
			fmt.Sprintf("CREATE CONSTRAINT unique_%s_%s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE", name, strings.ToLower(key), s.label, key))
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range statements {
			result, err := tx.Run(ctx, stmt, nil)
			if err != nil {
				return nil, err
			}
			if _, err := result.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to ensure constraints", zap.String("label", s.label), zap.Error(err))
		return err
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *NodeStore[T, PT]) encode(doc PT) (map[string]any, error) {
	var payload any = doc
	if codec, ok := any(doc).(documentCodec); ok {
		payload = codec.MarshalDocument()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", s.label, err)
	}

	scope := doc.Scope()
	props := map[string]any{
		bo_neo4j.PropID:        doc.RecordID(),
		bo_neo4j.PropCompanyID: nullable(scope.CompanyID),
		bo_neo4j.PropOwnerID:   nullable(scope.OwnerID),
		bo_neo4j.PropData:      string(data),
		bo_neo4j.PropUpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	for key, value := range doc.UniqueKeys() {
		props[key] = nullable(value)
	}
	return props, nil
}

func (s *NodeStore[T, PT]) decode(data string) (PT, error) {
	var v T
	doc := PT(&v)
	if codec, ok := any(doc).(documentCodec); ok {
		err := codec.UnmarshalDocument(func(dst any) error { return json.Unmarshal([]byte(data), dst) })
		return doc, err
	}
	err := json.Unmarshal([]byte(data), doc)
	return doc, err
}

func (s *NodeStore[T, PT]) dbError(err error) error {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && strings.Contains(neoErr.Code, "ConstraintValidationFailed") {
		return s.conflict
	}
	if errors.Is(err, s.notFound) || errors.Is(err, s.conflict) {
		return err
	}
	return fmt.Errorf("%w: %v", bo_errors.ErrDatabaseOperation, err)
}

// checkUnique fails with the conflict error when another node holds one of doc's unique keys.
func (s *NodeStore[T, PT]) checkUnique(ctx context.Context, tx neo4j.ManagedTransaction, doc PT) error {
	var conditions []string
	params := map[string]any{"id": doc.RecordID()}
	for key, value := range doc.UniqueKeys() {
		if value == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("n.%s = $%s", key, key))
		params[key] = value
	}
	if len(conditions) == 0 {
		return nil
	}

	query := fmt.Sprintf("MATCH (n:%s) WHERE n.%s <> $id AND (%s) RETURN count(n) AS c",
		s.label, bo_neo4j.PropID, strings.Join(conditions, " OR "))
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	rec, err := result.Single(ctx)
	if err != nil {
		return err
	}
	if count, _ := rec.Get("c"); count.(int64) > 0 {
		return s.conflict
	}
	return nil
}

func (s *NodeStore[T, PT]) Create(ctx context.Context, doc PT) (PT, error) {
	start := time.Now()
	if doc.RecordID() == "" {
		doc.SetRecordID(uuid.New().String())
	}
	doc.Stamp(s.now().UTC())
	logger.Info("Creating node", zap.String("label", s.label), zap.String("id", doc.RecordID()))

	props, err := s.encode(doc)
	if err != nil {
		return nil, err
	}
	props[bo_neo4j.PropCreatedAt] = props[bo_neo4j.PropUpdatedAt]

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := s.checkUnique(ctx, tx, doc); err != nil {
			return nil, err
		}
		result, err := tx.Run(ctx, fmt.Sprintf("CREATE (n:%s) SET n = $props", s.label), map[string]any{"props": props})
		if err != nil {
			return nil, err
		}
		_, err = result.Consume(ctx)
		return nil, err
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create node",
			zap.Error(err),
			zap.String("label", s.label),
			zap.Duration("duration", duration))
		return nil, s.dbError(err)
	}

	logger.Info("Node created successfully",
		zap.String("label", s.label),
		zap.String("id", doc.RecordID()),
		zap.Duration("duration", duration))
	s.recordChange(ctx, "CREATE", doc.RecordID(), nil, doc)
	return doc, nil
}

// Update replaces the stored document. It returns the not-found error when id is absent.
func (s *NodeStore[T, PT]) Update(ctx context.Context, doc PT) (PT, error) {
	start := time.Now()
	logger.Info("Updating node", zap.String("label", s.label), zap.String("id", doc.RecordID()))

	old, err := s.Get(ctx, doc.RecordID())
	if err != nil {
		return nil, err
	}

	doc.Stamp(s.now().UTC())
	props, err := s.encode(doc)
	if err != nil {
		return nil, err
	}

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := s.checkUnique(ctx, tx, doc); err != nil {
			return nil, err
		}
		query := fmt.Sprintf("MATCH (n:%s {%s: $id}) SET n += $props RETURN n.%s AS id", s.label, bo_neo4j.PropID, bo_neo4j.PropID)
		result, err := tx.Run(ctx, query, map[string]any{"id": doc.RecordID(), "props": props})
		if err != nil {
			return nil, err
		}
		if result.Next(ctx) {
			return nil, nil
		}
		return nil, s.notFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update node",
			zap.Error(err),
			zap.String("label", s.label),
			zap.String("id", doc.RecordID()),
			zap.Duration("duration", duration))
		return nil, s.dbError(err)
	}

	logger.Info("Node updated successfully",
		zap.String("label", s.label),
		zap.String("id", doc.RecordID()),
		zap.Duration("duration", duration))
	s.recordChange(ctx, "UPDATE", doc.RecordID(), old, doc)
	return doc, nil
}

func (s *NodeStore[T, PT]) Delete(ctx context.Context, id string) error {
	start := time.Now()
	logger.Info("Deleting node", zap.String("label", s.label), zap.String("id", id))

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf("MATCH (n:%s {%s: $id}) DETACH DELETE n", s.label, bo_neo4j.PropID)
		result, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		summary, err := result.Consume(ctx)
		if err != nil {
			return nil, err
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, s.notFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete node",
			zap.Error(err),
			zap.String("label", s.label),
			zap.String("id", id),
			zap.Duration("duration", duration))
		return s.dbError(err)
	}

	logger.Info("Node deleted successfully",
		zap.String("label", s.label),
		zap.String("id", id),
		zap.Duration("duration", duration))
	s.recordChange(ctx, "DELETE", id, nil, nil)
	return nil
}

func (s *NodeStore[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	query := fmt.Sprintf("MATCH (n:%s {%s: $id}) RETURN n.%s AS data", s.label, bo_neo4j.PropID, bo_neo4j.PropData)
	return s.findOne(ctx, query, map[string]any{"id": id})
}

// FindBy loads the node whose unique key equals value.
func (s *NodeStore[T, PT]) FindBy(ctx context.Context, key, value string) (PT, error) {
	known := false
	for _, k := range s.uniqueKeys {
		known = known || k == key
	}
	if !known {
		return nil, fmt.Errorf("%s has no unique key %q: %w", s.label, key, bo_errors.ErrInternalServer)
	}
	query := fmt.Sprintf("MATCH (n:%s {%s: $value}) RETURN n.%s AS data", s.label, key, bo_neo4j.PropData)
	return s.findOne(ctx, query, map[string]any{"value": value})
}

func (s *NodeStore[T, PT]) findOne(ctx context.Context, query string, params map[string]any) (PT, error) {
	start := time.Now()
	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	data, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			return nil, s.notFound
		}
		value, _ := result.Record().Get("data")
		return value, nil
	})
	if err != nil {
		if errors.Is(err, s.notFound) {
			logger.Debug("Node not found", zap.String("label", s.label), zap.Any("params", params))
			return nil, s.notFound
		}
		logger.Error("Failed to read node", zap.Error(err), zap.String("label", s.label))
		return nil, s.dbError(err)
	}

	raw, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("%s node without document: %w", s.label, bo_errors.ErrInternalServer)
	}
	doc, err := s.decode(raw)
	if err != nil {
		logger.Error("Failed to map node to struct", zap.Error(err), zap.String("label", s.label))
		return nil, bo_errors.ErrInternalServer
	}

	logger.Debug("Node retrieved",
		zap.String("label", s.label),
		zap.String("id", doc.RecordID()),
		zap.Duration("duration", time.Since(start)))
	return doc, nil
}

func (s *NodeStore[T, PT]) List(ctx context.Context, filter ListFilter) ([]PT, error) {
	start := time.Now()
	logger.Info("Listing nodes",
		zap.String("label", s.label),
		zap.String("companyID", filter.CompanyID),
		zap.String("ownerID", filter.OwnerID),
		zap.Int("limit", filter.Limit),
		zap.Int("offset", filter.Offset))

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := fmt.Sprintf(`
    MATCH (n:%s)
    WHERE ($companyId IS NULL OR n.%s = $companyId)
      AND ($ownerId IS NULL OR n.%s = $ownerId)
    RETURN n.%s AS data
    ORDER BY n.%s DESC
    SKIP $offset
    LIMIT $limit
    `, s.label, bo_neo4j.PropCompanyID, bo_neo4j.PropOwnerID, bo_neo4j.PropData, bo_neo4j.PropCreatedAt)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{
			"companyId": nullable(filter.CompanyID),
			"ownerId":   nullable(filter.OwnerID),
			"offset":    filter.Offset,
			"limit":     filter.Limit,
		})
		if err != nil {
			return nil, err
		}
		var out []string
		for result.Next(ctx) {
			if value, ok := result.Record().Get("data"); ok {
				if raw, ok := value.(string); ok {
					out = append(out, raw)
				}
			}
		}
		return out, result.Err()
	})
	if err != nil {
		logger.Error("Failed to list nodes", zap.Error(err), zap.String("label", s.label))
		return nil, s.dbError(err)
	}

	docs := make([]PT, 0, len(rows.([]string)))
	for _, raw := range rows.([]string) {
		doc, err := s.decode(raw)
		if err != nil {
			logger.Error("Failed to map node to struct", zap.Error(err), zap.String("label", s.label))
			return nil, bo_errors.ErrInternalServer
		}
		docs = append(docs, doc)
	}

	logger.Info("Nodes listed successfully",
		zap.String("label", s.label),
		zap.Int("count", len(docs)),
		zap.Duration("duration", time.Since(start)))
	return docs, nil
}

func (s *NodeStore[T, PT]) recordChange(ctx context.Context, action, id string, before, after PT) {
	if s.AuditService == nil {
		return
	}
	var oldDoc, newDoc any
	if before != nil {
		oldDoc = before
	}
	if after != nil {
		newDoc = after
	}
	entry := audit.AuditLog{
		Timestamp:     s.now().UTC(),
		Action:        action + "_" + strings.ToUpper(s.label),
		ResourceType:  s.label,
		ResourceID:    id,
		AccessGranted: true,
		ChangeDetails: changeDetails(oldDoc, newDoc),
	}
	if p, ok := pdp_model.PrincipalFromContext(ctx); ok {
		entry.UserID = p.ID()
		entry.Role = string(p.Role())
		entry.TenantID = p.TenantID()
	}
	if err := s.AuditService.LogAccess(ctx, entry); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}
}

func changeDetails(before, after any) json.RawMessage {
	changes := map[string]any{}
	switch {
	case before == nil && after == nil:
		changes["action"] = "deleted"
	case before == nil:
		changes["action"] = "created"
		changes["new"] = after
	default:
		changes["action"] = "updated"
		changes["old"] = before
		changes["new"] = after
	}
	details, _ := json.Marshal(changes)
	return details
}
