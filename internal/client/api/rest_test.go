package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcom-mall/mallcli/internal/client/models"
)

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// fakeStore implements session.Store in memory.
type fakeStore struct {
	mu      sync.Mutex
	token   string
	user    *models.User
	cleared int
}

func (f *fakeStore) Save(_ context.Context, token string, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token, f.user = token, user
	return nil
}

func (f *fakeStore) Load(context.Context) (string, *models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.user, nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token, f.user = "", nil
	f.cleared++
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, store *fakeStore, onExpired func()) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Options{
		BaseURL:       srv.URL,
		Sessions:      store,
		OnAuthExpired: onExpired,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRESTClient_BearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[],"meta":{}}`))
	})

	store := &fakeStore{token: "tok-123"}
	c := newTestClient(t, handler, store, nil)

	_, err := c.Search(context.Background(), "shoes", 1, 10)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestRESTClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[],"meta":{}}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.Search(context.Background(), "shoes", 1, 10)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestRESTClient_SearchQueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":"p1","title":"Shoe","price":19.99}],"meta":{"totalItems":1,"currentPage":1}}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	resp, err := c.Search(context.Background(), "shoes", 1, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"shoes"}, gotQuery["q"])
	require.Equal(t, []string{"1"}, gotQuery["page"])
	require.Equal(t, []string{"10"}, gotQuery["limit"])
	require.Len(t, resp.Items, 1)
	require.Equal(t, "p1", resp.Items[0].ID)
	require.Equal(t, 1, resp.Meta.TotalItems)
}

func TestRESTClient_RequestIDSet(t *testing.T) {
	var gotID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.SignIn(context.Background(), models.SignInRequest{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	require.NotEmpty(t, gotID)
}

func TestRESTClient_SignInForcesCustomerRole(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth", r.URL.Path)
		require.NoError(t, jsonDecode(r, &gotBody))
		w.Write([]byte(`{"token":"t"}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	raw, err := c.SignIn(context.Background(), models.SignInRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "customer", gotBody["role"])
	require.Equal(t, "t", raw["token"])
}

func TestRESTClient_401ClearsSessionAndNotifies(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	var notified bool
	store := &fakeStore{token: "stale"}
	c := newTestClient(t, handler, store, func() { notified = true })

	_, err := c.Search(context.Background(), "shoes", 1, 10)
	require.ErrorIs(t, err, ErrUnauthorized)

	// The store is empty immediately after the failure.
	token, user, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	require.Empty(t, token)
	require.Nil(t, user)
	require.Equal(t, 1, store.cleared)
	require.True(t, notified)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid email or password.", apiErr.Message)
}

func TestRESTClient_ConflictDefaultMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.SignUp(context.Background(), models.SignUpRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "Account with this email already exists.", apiErr.Message)
}

func TestRESTClient_BodyMessageWinsOverTable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Email is malformed"}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.SignUp(context.Background(), models.SignUpRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Email is malformed", apiErr.Message)
}

func TestRESTClient_BodyErrorFieldFallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"phone number invalid"}`))
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.SignUp(context.Background(), models.SignUpRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "phone number invalid", apiErr.Message)
}

func TestRESTClient_UnknownStatusFallbackMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	c := newTestClient(t, handler, &fakeStore{}, nil)

	_, err := c.SignUp(context.Background(), models.SignUpRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, fallbackMessage, apiErr.Message)
}

func TestRESTClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections from now on

	c := New(Options{BaseURL: srv.URL, Sessions: &fakeStore{}})

	_, err := c.Search(context.Background(), "shoes", 1, 10)
	require.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestRESTClient_Ping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, handler, &fakeStore{}, nil)
	require.NoError(t, c.Ping(context.Background()))
}

func TestMessageForStatus_Table(t *testing.T) {
	tests := map[int]string{
		400: "Invalid information provided.",
		401: "Invalid email or password.",
		403: "Please verify your email address.",
		404: "Service not found.",
		409: "Account with this email already exists.",
		422: "Please check your information and try again.",
		500: "Server error. Please try again later.",
		418: fallbackMessage,
	}
	for status, want := range tests {
		require.Equal(t, want, MessageForStatus(status), status)
	}
}
