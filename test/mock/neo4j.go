// test/mock/neo4j.go
package mock

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/mock"
)

// MockDriver is a mock implementation of neo4j.DriverWithContext. Methods the
// stores never call fall through to the embedded nil interface.
type MockDriver struct {
	mock.Mock
	neo4j.DriverWithContext
}

func (m *MockDriver) NewSession(ctx context.Context, config neo4j.SessionConfig) neo4j.SessionWithContext {
	args := m.Called(ctx, config)
	return args.Get(0).(neo4j.SessionWithContext)
}

func (m *MockDriver) VerifyConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDriver) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSession is a mock implementation of neo4j.SessionWithContext.
// ExecuteRead and ExecuteWrite run the work function against Tx unless the
// expectation returns an error.
type MockSession struct {
	mock.Mock
	neo4j.SessionWithContext
	Tx *MockTransaction
}

func (m *MockSession) ExecuteRead(ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error) {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return work(m.Tx)
}

func (m *MockSession) ExecuteWrite(ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error) {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return work(m.Tx)
}

func (m *MockSession) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTransaction is a mock implementation of neo4j.ManagedTransaction.
type MockTransaction struct {
	mock.Mock
	neo4j.ManagedTransaction
}

func (m *MockTransaction) Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error) {
	args := m.Called(cypher, params)
	if r := args.Get(0); r != nil {
		return r.(neo4j.ResultWithContext), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResult replays a fixed set of records.
type MockResult struct {
	neo4j.ResultWithContext
	Records []*neo4j.Record
	Error   error
	next    int
	current *neo4j.Record
}

// NewMockResult builds a result whose rows share keys.
func NewMockResult(keys []string, rows ...[]any) *MockResult {
	r := &MockResult{}
	for _, values := range rows {
		r.Records = append(r.Records, &neo4j.Record{Keys: keys, Values: values})
	}
	return r
}

func (r *MockResult) Next(ctx context.Context) bool {
	if r.next >= len(r.Records) {
		r.current = nil
		return false
	}
	r.current = r.Records[r.next]
	r.next++
	return true
}

func (r *MockResult) Record() *neo4j.Record {
	return r.current
}

func (r *MockResult) Err() error {
	return r.Error
}

func (r *MockResult) Single(ctx context.Context) (*neo4j.Record, error) {
	if len(r.Records) != 1 {
		return nil, r.Error
	}
	return r.Records[0], r.Error
}

// Consume drains the result. The summary is not modelled.
func (r *MockResult) Consume(ctx context.Context) (neo4j.ResultSummary, error) {
	r.next = len(r.Records)
	return nil, r.Error
}
