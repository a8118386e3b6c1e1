package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/onboard-api/internal/api/middleware"
	"github.com/phrazzld/onboard-api/internal/domain"
	"github.com/phrazzld/onboard-api/internal/platform/logger"
	"github.com/phrazzld/onboard-api/internal/store"
)

var errNotMocked = errors.New("not mocked")

// mockUserStore is a mock implementation of the store.UserStore interface
type mockUserStore struct {
	createFn  func(ctx context.Context, u domain.NewUser) (int64, error)
	getByIDFn func(ctx context.Context, id int64) (*domain.User, error)
	updateFn  func(ctx context.Context, id int64, u domain.UserUpdate) (*domain.UpdatedUser, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockUserStore) Create(ctx context.Context, u domain.NewUser) (int64, error) {
	if m.createFn == nil {
		return 0, errNotMocked
	}
	return m.createFn(ctx, u)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, errNotMocked
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) Update(ctx context.Context, id int64, u domain.UserUpdate) (*domain.UpdatedUser, error) {
	if m.updateFn == nil {
		return nil, errNotMocked
	}
	return m.updateFn(ctx, id, u)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errNotMocked
	}
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(*sqlx.Tx) store.UserStore { return m }

// mockQuestionnaireStore is a mock implementation of the store.QuestionnaireStore interface
type mockQuestionnaireStore struct {
	createFn         func(ctx context.Context, q domain.NewQuestionnaire) (int64, error)
	getByUserIDFn    func(ctx context.Context, userID int64) (*domain.Questionnaire, error)
	deleteByUserIDFn func(ctx context.Context, userID int64) error
}

func (m *mockQuestionnaireStore) Create(ctx context.Context, q domain.NewQuestionnaire) (int64, error) {
	if m.createFn == nil {
		return 0, errNotMocked
	}
	return m.createFn(ctx, q)
}

func (m *mockQuestionnaireStore) GetByUserID(ctx context.Context, userID int64) (*domain.Questionnaire, error) {
	if m.getByUserIDFn == nil {
		return nil, errNotMocked
	}
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockQuestionnaireStore) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.deleteByUserIDFn == nil {
		return errNotMocked
	}
	return m.deleteByUserIDFn(ctx, userID)
}

func (m *mockQuestionnaireStore) WithTx(*sqlx.Tx) store.QuestionnaireStore { return m }

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error { return m.err }

// newTestRouter mounts the handlers behind the trace middleware and returns
// the router together with the captured log output.
func newTestRouter(
	t *testing.T,
	users store.UserStore,
	questionnaires store.QuestionnaireStore,
	db Pinger,
) (http.Handler, *logger.TestLogBuffer) {
	t.Helper()

	logs, log := logger.NewTestLogger(t)
	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	RegisterRoutes(r, Handlers{
		Users:          NewUserHandler(users, log),
		Questionnaires: NewQuestionnaireHandler(questionnaires, log),
		Health:         NewHealthHandler(db, 0),
	})
	return r, logs
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
