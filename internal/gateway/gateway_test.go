package gateway

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ClubAdminPlatform/internal/domain"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
)

// staticSource отдает одну и ту же сессию независимо от контекста
type staticSource struct {
	session *domain.Session
}

func (s *staticSource) Current(ctx context.Context) *domain.Session {
	return s.session
}

// fakeClient считает обращения и отдает заранее заданный результат
type fakeClient struct {
	calls int64
	rows  []domain.Row
	err   error
	block chan struct{} // если задан, вызов ждет закрытия канала
	panic bool
}

func (c *fakeClient) From(table string) QueryBuilder {
	return &fakeBuilder{client: c}
}

func (c *fakeClient) invocations() int64 {
	return atomic.LoadInt64(&c.calls)
}

func (c *fakeClient) run() ([]domain.Row, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.panic {
		panic("simulated client failure")
	}
	if c.block != nil {
		<-c.block
	}
	return c.rows, c.err
}

type fakeBuilder struct {
	client *fakeClient
}

func (b *fakeBuilder) Select(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error) {
	return b.client.run()
}

func (b *fakeBuilder) Insert(ctx context.Context, rows []domain.Row) ([]domain.Row, error) {
	return b.client.run()
}

func (b *fakeBuilder) Update(ctx context.Context, changes domain.Row, conditions map[string]interface{}) ([]domain.Row, error) {
	return b.client.run()
}

func (b *fakeBuilder) Delete(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error) {
	return b.client.run()
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.NewLogger("dev", "error", "gateway-test")
	require.NoError(t, err)
	return log
}

func authenticatedSource() *staticSource {
	return &staticSource{session: &domain.Session{
		ID:              "sess-1",
		AdministratorID: "admin-1",
	}}
}

func TestGateway_Query_Unauthenticated(t *testing.T) {
	client := &fakeClient{}
	g := New(client, &staticSource{}, NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpSelect, nil, nil)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrUnauthorized, result.Err.Code)
	assert.Equal(t, int64(0), client.invocations(), "client must not be invoked without a session")
}

func TestGateway_Query_Select(t *testing.T) {
	client := &fakeClient{rows: []domain.Row{{"id": "c1", "name": "Olympique"}}}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpSelect, nil, map[string]interface{}{"status": "active"})

	require.Nil(t, result.Err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Olympique", result.Data[0]["name"])
	assert.Equal(t, int64(1), client.invocations())
}

func TestGateway_Query_UnsupportedOperation(t *testing.T) {
	client := &fakeClient{}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", "upsert", nil, nil)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrValidation, result.Err.Code)
	assert.Equal(t, int64(0), client.invocations())
}

func TestGateway_Query_InvalidIdentifiers(t *testing.T) {
	client := &fakeClient{}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	tests := []struct {
		name       string
		table      string
		op         string
		data       []domain.Row
		conditions map[string]interface{}
	}{
		{
			name:  "table with quote",
			table: `clubs"; drop table clubs; --`,
			op:    OpSelect,
		},
		{
			name:  "table with uppercase",
			table: "Clubs",
			op:    OpSelect,
		},
		{
			name:       "condition column with space",
			table:      "clubs",
			op:         OpSelect,
			conditions: map[string]interface{}{"name = name; --": 1},
		},
		{
			name:  "data column with dash",
			table: "clubs",
			op:    OpInsert,
			data:  []domain.Row{{"club-name": "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := g.Query(context.Background(), tt.table, tt.op, tt.data, tt.conditions)
			require.NotNil(t, result.Err)
			assert.Equal(t, apperrors.ErrValidation, result.Err.Code)
		})
	}
	assert.Equal(t, int64(0), client.invocations())
}

func TestGateway_Query_UpdateRequiresConditions(t *testing.T) {
	client := &fakeClient{}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpUpdate,
		[]domain.Row{{"status": "inactive"}}, nil)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrValidation, result.Err.Code)
	assert.Equal(t, int64(0), client.invocations(), "unconditional update must be rejected before the client")
}

func TestGateway_Query_DeleteRequiresConditions(t *testing.T) {
	client := &fakeClient{}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "administrators", OpDelete, nil, map[string]interface{}{})

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrValidation, result.Err.Code)
	assert.Equal(t, int64(0), client.invocations())
}

func TestGateway_Query_InsertRequiresRows(t *testing.T) {
	client := &fakeClient{}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpInsert, nil, nil)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrValidation, result.Err.Code)
}

func TestGateway_Query_GuardRejection(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{block: block}
	g := New(client, authenticatedSource(), NewGuard(2), testLogger(t),
		WithTimeout(50*time.Millisecond))

	// Две операции занимают все слоты ключа select:clubs
	for i := 0; i < 2; i++ {
		go g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	}

	assert.Eventually(t, func() bool {
		return client.invocations() == 2
	}, time.Second, 5*time.Millisecond)

	result := g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrTooManyRequests, result.Err.Code)
	assert.Equal(t, int64(2), client.invocations(), "rejected query must not reach the client")

	// Другая таблица допускается независимо
	other := &staticSource{session: &domain.Session{ID: "sess-2", AdministratorID: "admin-1"}}
	g2 := New(&fakeClient{}, other, NewGuard(2), testLogger(t))
	ok := g2.Query(context.Background(), "administrators", OpSelect, nil, nil)
	assert.Nil(t, ok.Err)

	close(block)
}

func TestGateway_Query_Timeout(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{block: block}
	guard := NewGuard(3)
	g := New(client, authenticatedSource(), guard, testLogger(t),
		WithTimeout(20*time.Millisecond))

	start := time.Now()
	result := g.Query(context.Background(), "clubs", OpUpdate,
		[]domain.Row{{"status": "inactive"}}, map[string]interface{}{"id": "c1"})
	elapsed := time.Since(start)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrTimeout, result.Err.Code)
	assert.Less(t, elapsed, time.Second)

	// Слот остается занят, пока клиент фактически не завершился
	assert.Equal(t, 1, guard.InFlight("update:clubs"))

	close(block)
	assert.Eventually(t, func() bool {
		return guard.InFlight("update:clubs") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGateway_Query_GuardReleasedAfterCompletion(t *testing.T) {
	client := &fakeClient{rows: []domain.Row{{"id": "c1"}}}
	guard := NewGuard(1)
	g := New(client, authenticatedSource(), guard, testLogger(t))

	for i := 0; i < 5; i++ {
		result := g.Query(context.Background(), "clubs", OpSelect, nil, nil)
		require.Nil(t, result.Err)
	}
	assert.Eventually(t, func() bool {
		return guard.InFlight("select:clubs") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGateway_Query_ClientErrorMapped(t *testing.T) {
	client := &fakeClient{err: apperrors.New(apperrors.ErrConflict, "duplicate slug")}
	g := New(client, authenticatedSource(), NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpInsert,
		[]domain.Row{{"name": "Olympique", "slug": "olympique"}}, nil)

	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrConflict, result.Err.Code)
}

func TestGateway_Query_ClientPanicRecovered(t *testing.T) {
	client := &fakeClient{panic: true}
	guard := NewGuard(3)
	g := New(client, authenticatedSource(), guard, testLogger(t))

	var result QueryResult
	assert.NotPanics(t, func() {
		result = g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	})
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrInternal, result.Err.Code)
	assert.Eventually(t, func() bool {
		return guard.InFlight("select:clubs") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGateway_Query_LogoutDuringInFlight(t *testing.T) {
	source := authenticatedSource()
	block := make(chan struct{})
	client := &fakeClient{block: block, rows: []domain.Row{{"id": "c1"}}}
	guard := NewGuard(3)
	g := New(client, source, guard, testLogger(t))

	results := make(chan QueryResult, 1)
	go func() {
		results <- g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	}()

	assert.Eventually(t, func() bool {
		return client.invocations() == 1
	}, time.Second, 5*time.Millisecond)

	// Выход из сессии не обрывает уже начатый запрос
	source.session = nil
	close(block)

	result := <-results
	assert.Nil(t, result.Err)
	assert.Eventually(t, func() bool {
		return guard.InFlight("select:clubs") == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGateway_Query_SessionCheckedPerCall(t *testing.T) {
	source := authenticatedSource()
	client := &fakeClient{rows: []domain.Row{{"id": "c1"}}}
	g := New(client, source, NewGuard(3), testLogger(t))

	result := g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	require.Nil(t, result.Err)

	// После выхода из сессии запросы отклоняются без обращения к клиенту
	source.session = nil
	result = g.Query(context.Background(), "clubs", OpSelect, nil, nil)
	require.NotNil(t, result.Err)
	assert.Equal(t, apperrors.ErrUnauthorized, result.Err.Code)
	assert.Equal(t, int64(1), client.invocations())
}
