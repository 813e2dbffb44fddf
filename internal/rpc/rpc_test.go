package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tomlord1122/portfolio-backend/internal/domain"
	"github.com/Tomlord1122/portfolio-backend/internal/repository"
	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

func setupRPC(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	return setupRPCWithTodos(t, repository.NewMemoryRepository[domain.Todo]())
}

func setupRPCWithTodos(t *testing.T, todoRepo repository.Repository[domain.Todo]) (*httptest.Server, *Client) {
	t.Helper()
	log := zap.NewNop()
	v := validate.New()
	guestbook := service.New[domain.GuestbookEntry, service.CreateGuestbookEntryRequest, service.UpdateGuestbookEntryRequest](
		"guestbook", repository.NewMemoryRepository[domain.GuestbookEntry](), v, log)
	todos := service.New[domain.Todo, service.CreateTodoRequest, service.UpdateTodoRequest](
		"todos", todoRepo, v, log)

	router := NewRouter(log)
	RegisterCRUD(router, "guestbook", guestbook)
	RegisterCRUD(router, "todos", todos)

	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, srv.Client())
}

func TestProcedures(t *testing.T) {
	router := NewRouter(zap.NewNop())
	RegisterCRUD(router, "todos", (*service.TodoService)(nil))

	assert.Equal(t, []string{"todos.create", "todos.get", "todos.list", "todos.remove", "todos.update"}, router.Procedures())
	assert.Panics(t, func() { RegisterCRUD(router, "todos", (*service.TodoService)(nil)) })
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	_, client := setupRPC(t)

	created, err := client.Guestbook.Create(ctx, service.CreateGuestbookEntryRequest{Name: "Ada", Message: "Hi"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Ada", created.Name)

	got, err := client.Guestbook.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	msg := "Hello again"
	updated, err := client.Guestbook.Update(ctx, created.ID.String(), service.UpdateGuestbookEntryRequest{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "Hello again", updated.Message)

	list, err := client.Guestbook.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, list.Limit)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)

	removed, err := client.Guestbook.Remove(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Hello again", removed.Message)

	list, err = client.Guestbook.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestClient_TypedErrors(t *testing.T) {
	ctx := context.Background()
	_, client := setupRPC(t)

	done := true
	_, err := client.Todos.Update(ctx, uuid.NewString(), service.UpdateTodoRequest{Completed: &done})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = client.Todos.Remove(ctx, uuid.NewString())
	assert.True(t, IsNotFound(err))

	_, err = client.Todos.Create(ctx, service.CreateTodoRequest{})
	require.True(t, IsBadRequest(err))
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, map[string]string{"title": "required"}, rpcErr.Details)
	assert.Equal(t, http.StatusBadRequest, rpcErr.Status())

	_, err = client.Todos.Get(ctx, "7")
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeBadRequest, rpcErr.Code)
	assert.Equal(t, "uuid", rpcErr.Details["id"])
}

type failingTodoRepo struct {
	repository.Repository[domain.Todo]
}

var errStorage = errors.New("connection reset by peer")

func (failingTodoRepo) List(context.Context, int, int) ([]domain.Todo, error) { return nil, errStorage }
func (failingTodoRepo) Delete(context.Context, uuid.UUID) (*domain.Todo, error) {
	return nil, errStorage
}

func TestStorageFailure_InternalServerError(t *testing.T) {
	ctx := context.Background()
	srv, client := setupRPCWithTodos(t, failingTodoRepo{})

	resp, err := srv.Client().Post(srv.URL+"/todos.list", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "connection reset")
	var body errorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeInternal, body.Error.Code)
	assert.Empty(t, body.Error.Details)

	_, err = client.Todos.Remove(ctx, uuid.NewString())
	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, CodeInternal, rpcErr.Code)
	assert.Equal(t, http.StatusInternalServerError, rpcErr.Status())
	assert.False(t, IsNotFound(err))
	assert.NotContains(t, rpcErr.Message, "connection reset")
}

func TestServe_Transport(t *testing.T) {
	srv, _ := setupRPC(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"mutation over GET", http.MethodGet, "/todos.create", "", http.StatusMethodNotAllowed, CodeMethodNotSupported},
		{"unknown procedure", http.MethodPost, "/todos.archive", "{}", http.StatusNotFound, CodeNotFound},
		{"malformed body", http.MethodPost, "/todos.create", "{", http.StatusBadRequest, CodeParseError},
		{"wrong input type", http.MethodPost, "/todos.create", `{"title":42}`, http.StatusBadRequest, CodeParseError},
		{"empty create body", http.MethodPost, "/todos.create", "", http.StatusBadRequest, CodeBadRequest},
		{"unsupported method", http.MethodDelete, "/todos.list", "", http.StatusMethodNotAllowed, CodeMethodNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestServe_QueryOverGETWithLooseInput(t *testing.T) {
	ctx := context.Background()
	srv, client := setupRPC(t)
	for _, title := range []string{"one", "two", "three"} {
		_, err := client.Todos.Create(ctx, service.CreateTodoRequest{Title: title})
		require.NoError(t, err)
	}

	q := url.Values{"input": {`{"limit":"2","offset":"nope"}`}}
	resp, err := srv.Client().Get(srv.URL + "/todos.list?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Result struct {
			Data service.ListResult[domain.Todo] `json:"data"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 2, body.Result.Data.Limit)
	assert.Equal(t, 0, body.Result.Data.Offset)
	require.Len(t, body.Result.Data.Items, 2)
	assert.Equal(t, "three", body.Result.Data.Items[0].Title)
	assert.Equal(t, "two", body.Result.Data.Items[1].Title)
}
