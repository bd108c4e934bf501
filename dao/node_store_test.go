package dao_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/buildledger/backoffice/audit"
	"github.com/buildledger/backoffice/dao"
	bo_errors "github.com/buildledger/backoffice/errors"
	"github.com/buildledger/backoffice/model"
	bo_mock "github.com/buildledger/backoffice/test/mock"
)

type storeFixture struct {
	driver  *bo_mock.MockDriver
	session *bo_mock.MockSession
	tx      *bo_mock.MockTransaction
	audit   *bo_mock.MockAuditService
}

func newStoreFixture(sessionErr error) storeFixture {
	tx := new(bo_mock.MockTransaction)
	session := &bo_mock.MockSession{Tx: tx}
	session.On("ExecuteRead", mock.Anything).Return(sessionErr)
	session.On("ExecuteWrite", mock.Anything).Return(sessionErr)
	session.On("Close", mock.Anything).Return(nil)
	driver := new(bo_mock.MockDriver)
	driver.On("NewSession", mock.Anything, mock.Anything).Return(session)
	auditService := new(bo_mock.MockAuditService)
	auditService.On("LogAccess", mock.Anything, mock.Anything).Return(nil)
	return storeFixture{driver: driver, session: session, tx: tx, audit: auditService}
}

func cypherContains(fragment string) any {
	return mock.MatchedBy(func(cypher string) bool { return strings.Contains(cypher, fragment) })
}

func TestNodeStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("DecodesDocument", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", cypherContains("MATCH (n:Company {id: $id})"), map[string]any{"id": "c1"}).
			Return(bo_mock.NewMockResult([]string{"data"}, []any{`{"id":"c1","name":"Acme","email":"ops@acme.test","taxId":"T1","isActive":true}`}), nil)

		company, err := dao.NewCompanyDAO(f.driver, f.audit).Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "Acme", company.Name)
		assert.True(t, company.IsActive)
		f.session.AssertCalled(t, "Close", mock.Anything)
	})

	t.Run("MissingNodeReturnsEntityNotFound", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", mock.Anything, mock.Anything).Return(bo_mock.NewMockResult([]string{"data"}), nil)

		_, err := dao.NewCompanyDAO(f.driver, f.audit).Get(ctx, "missing")
		assert.ErrorIs(t, err, bo_errors.ErrCompanyNotFound)
		assert.ErrorIs(t, err, bo_errors.ErrNotFound)
	})

	t.Run("SessionErrorIsDatabaseOperation", func(t *testing.T) {
		f := newStoreFixture(errors.New("connection reset"))

		_, err := dao.NewProjectDAO(f.driver, f.audit).Get(ctx, "p1")
		assert.ErrorIs(t, err, bo_errors.ErrDatabaseOperation)
	})
}

func TestUserDAO_FindByEmailKeepsPasswordHash(t *testing.T) {
	f := newStoreFixture(nil)
	f.tx.On("Run", cypherContains("MATCH (n:User {email: $value})"), map[string]any{"value": "ops@acme.test"}).
		Return(bo_mock.NewMockResult([]string{"data"}, []any{`{"id":"u1","name":"Ops","email":"ops@acme.test","role":"COMPANY","companyId":"u1","isActive":true,"passwordHash":"$2a$hash"}`}), nil)

	user, err := dao.NewUserDAO(f.driver, f.audit).FindByEmail(context.Background(), "  Ops@Acme.TEST ")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, model.RoleCompany, user.Role)
	assert.Equal(t, "$2a$hash", user.PasswordHash)
}

func TestNodeStore_FindByRejectsUnknownKey(t *testing.T) {
	f := newStoreFixture(nil)

	_, err := dao.NewCategoryDAO(f.driver, f.audit).FindBy(context.Background(), "name", "steel")
	assert.ErrorIs(t, err, bo_errors.ErrInternalServer)
	f.driver.AssertNotCalled(t, "NewSession", mock.Anything, mock.Anything)
}

func TestNodeStore_List(t *testing.T) {
	ctx := context.Background()

	t.Run("TenantFilterAndPagination", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", cypherContains("MATCH (n:Project)"), map[string]any{
			"companyId": "tenant-a",
			"ownerId":   nil,
			"offset":    20,
			"limit":     10,
		}).Return(bo_mock.NewMockResult([]string{"data"},
			[]any{`{"id":"p2","companyId":"tenant-a","name":"Tower"}`},
			[]any{`{"id":"p1","companyId":"tenant-a","name":"Bridge"}`},
		), nil)

		projects, err := dao.NewProjectDAO(f.driver, f.audit).List(ctx, dao.ListFilter{CompanyID: "tenant-a", Limit: 10, Offset: 20})
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "p2", projects[0].ID)
		assert.Equal(t, "Bridge", projects[1].Name)
	})

	t.Run("OwnerFilter", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", mock.Anything, map[string]any{
			"companyId": nil,
			"ownerId":   "prov-1",
			"offset":    0,
			"limit":     5,
		}).Return(bo_mock.NewMockResult([]string{"data"}), nil)

		orders, err := dao.NewPurchaseOrderDAO(f.driver, f.audit).List(ctx, dao.ListFilter{OwnerID: "prov-1", Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("ResultErrorIsDatabaseOperation", func(t *testing.T) {
		f := newStoreFixture(nil)
		broken := bo_mock.NewMockResult([]string{"data"})
		broken.Error = errors.New("stream interrupted")
		f.tx.On("Run", mock.Anything, mock.Anything).Return(broken, nil)

		_, err := dao.NewJobDAO(f.driver, f.audit).List(ctx, dao.ListFilter{Limit: 5})
		assert.ErrorIs(t, err, bo_errors.ErrDatabaseOperation)
	})
}

func TestNodeStore_Create(t *testing.T) {
	ctx := context.Background()
	newCompany := func() *model.Company {
		return &model.Company{Name: "Acme", Email: "Ops@Acme.test", TaxID: "T1"}
	}

	t.Run("AssignsIDAndAudits", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", cypherContains("count(n)"), mock.MatchedBy(func(p map[string]any) bool {
			return p["email"] == "ops@acme.test" && p["taxId"] == "T1"
		})).Return(bo_mock.NewMockResult([]string{"c"}, []any{int64(0)}), nil)
		f.tx.On("Run", cypherContains("CREATE (n:Company)"), mock.MatchedBy(func(p map[string]any) bool {
			props, ok := p["props"].(map[string]any)
			return ok && props["companyId"] == props["id"] && props["email"] == "ops@acme.test"
		})).Return(bo_mock.NewMockResult(nil), nil)

		created, err := dao.NewCompanyDAO(f.driver, f.audit).Create(ctx, newCompany())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		f.audit.AssertCalled(t, "LogAccess", mock.Anything, mock.MatchedBy(func(l audit.AuditLog) bool {
			return l.Action == "CREATE_COMPANY" && l.ResourceID == created.ID && l.AccessGranted
		}))
	})

	t.Run("DuplicateUniqueKeyIsConflict", func(t *testing.T) {
		f := newStoreFixture(nil)
		f.tx.On("Run", cypherContains("count(n)"), mock.Anything).
			Return(bo_mock.NewMockResult([]string{"c"}, []any{int64(1)}), nil)

		_, err := dao.NewCompanyDAO(f.driver, f.audit).Create(ctx, newCompany())
		assert.ErrorIs(t, err, bo_errors.ErrCompanyConflict)
		assert.ErrorIs(t, err, bo_errors.ErrConflict)
		f.tx.AssertNotCalled(t, "Run", cypherContains("CREATE (n:Company)"), mock.Anything)
		f.audit.AssertNotCalled(t, "LogAccess", mock.Anything, mock.Anything)
	})
}
