package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/ZhuneIDS/apitareas/internal/api/http/context"
	"github.com/ZhuneIDS/apitareas/internal/api/http/router"
	"github.com/ZhuneIDS/apitareas/internal/model"
	"github.com/ZhuneIDS/apitareas/internal/repository/jsonfile"
	"github.com/ZhuneIDS/apitareas/internal/service"
	"github.com/ZhuneIDS/apitareas/internal/storage/local"
	"github.com/ZhuneIDS/apitareas/internal/testutil"
	"github.com/ZhuneIDS/apitareas/internal/token"
)

// newAPIServer runs the real API over JSON files in a temp dir.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	disk, err := local.NewDisk(t.TempDir())
	require.NoError(t, err)
	users, err := jsonfile.NewCollection[model.User](ctx, disk, "users.json")
	require.NoError(t, err)
	tasks, err := jsonfile.NewCollection[model.Task](ctx, disk, "tareas.json")
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	r := router.New(
		service.NewAuth(jsonfile.NewUserRepository(users), token.NewJWT("secret"), bcrypt.MinCost, log),
		service.NewTask(jsonfile.NewTaskRepository(tasks), log),
		httpctx.NewManager(),
		prometheus.NewRegistry(),
		nil,
		log,
	)
	srv := httptest.NewServer(r.Register())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t)
	c := New(srv.URL, srv.Client())

	require.NoError(t, c.Register(ctx, "ana", "s3cret"))

	err := c.Register(ctx, "ana", "s3cret")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "El usuario ya existe", err.Error())

	_, err = c.Login(ctx, "ana", "wrong")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Contraseña incorrecta", err.Error())

	session, err := c.Login(ctx, "ana", "s3cret")
	require.NoError(t, err)
	assert.True(t, session.LoggedIn())
	assert.Equal(t, "ana", session.Username)

	created, err := c.CreateTask(ctx, session, "Buy milk", "2%")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := c.UpdateTask(ctx, session, created.ID, "Buy oat milk", "1L")
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: created.ID, Title: "Buy oat milk", Description: "1L"}, updated)

	tasks, err := c.ListTasks(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{updated}, tasks)

	require.NoError(t, c.DeleteTask(ctx, session, created.ID))
	require.NoError(t, c.DeleteTask(ctx, session, created.ID))

	_, err = c.UpdateTask(ctx, session, created.ID, "x", "y")
	require.ErrorIs(t, err, ErrNotFound)

	tasks, err = c.ListTasks(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_AuthErrors(t *testing.T) {
	ctx := context.Background()
	srv := newAPIServer(t)
	c := New(srv.URL, srv.Client())

	_, err := c.ListTasks(ctx, nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.True(t, IsAuthError(err))

	_, err = c.ListTasks(ctx, &Session{Username: "ana", Token: "forged"})
	require.ErrorIs(t, err, ErrForbidden)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, "Token inválido o expirado.", err.Error())
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad"}`, wantErr: ErrValidation, wantMsg: "bad"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"no"}`, wantErr: ErrUnauthenticated, wantMsg: "no"},
		{name: "forbidden", status: http.StatusForbidden, body: `{"error":"nope"}`, wantErr: ErrForbidden, wantMsg: "nope"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"gone"}`, wantErr: ErrNotFound, wantMsg: "gone"},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"Error al leer las tareas"}`, wantErr: ErrServer, wantMsg: "Error al leer las tareas"},
		{name: "non json body", status: http.StatusBadGateway, body: `<html>`, wantErr: ErrServer, wantMsg: "server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, srv.Client()).ListTasks(context.Background(), &Session{Token: "t"})
			require.ErrorIs(t, err, tt.wantErr)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestClient_SendsBearerAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/tareas/7", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"titulo": "a", "descripcion": "b"}, body)

		_, _ = w.Write([]byte(`{"id":7,"titulo":"a","descripcion":"b"}`))
	}))
	defer srv.Close()

	task, err := New(srv.URL+"/", srv.Client()).UpdateTask(context.Background(), &Session{Token: "tok"}, 7, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(7), task.ID)
}

func TestNew_DefaultsToTimeout(t *testing.T) {
	c := New("http://localhost:3000/", nil)
	require.NotNil(t, c.httpClient)
	assert.NotSame(t, http.DefaultClient, c.httpClient)
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, "http://localhost:3000", c.baseURL)
}
