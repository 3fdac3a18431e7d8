package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder/internal/auth"
	"github.com/jobfinder/jobfinder/internal/board"
	"github.com/jobfinder/jobfinder/internal/gate"
	"github.com/jobfinder/jobfinder/internal/httpapi"
	"github.com/jobfinder/jobfinder/internal/notify"
)

type testServer struct {
	srv        *httpapi.Server
	tokens     auth.TokenService
	jobs       *MockJobs
	apps       *MockApplications
	subs       *MockSubscribers
	sender     *countingSender
	dispatcher *notify.Dispatcher
}

type countingSender struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSender) SendPushNotifications(_ context.Context, _, _ string, _ map[string]string) (notify.PushResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return notify.PushResult{}, s.err
	}
	return notify.PushResult{Success: true, Sent: 1}, nil
}

func (s *countingSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens := auth.NewTokenService([]byte("httpapi-test-key"), 1, "jobfinder", nil, nil)
	verifier, err := auth.NewVerifier("", "", tokens)
	require.NoError(t, err)

	resolver := auth.NewResolver(tokens, auth.DefaultCookieName)
	cookies := auth.NewCookieManager(auth.DefaultCookieName, time.Hour, false)

	jobs := &MockJobs{}
	apps := &MockApplications{}
	subs := &MockSubscribers{}
	sender := &countingSender{}
	dispatcher := notify.NewDispatcher(sender)

	srv := httpapi.New(httpapi.Deps{
		Verifier:     verifier,
		Resolver:     resolver,
		Cookies:      cookies,
		Gate:         gate.New(),
		Jobs:         jobs,
		Applications: apps,
		Subscribers:  subs,
		JobSM:        board.NewJobStateMachine(jobs),
		AppSM:        board.NewApplicationStateMachine(apps),
		Dispatcher:   dispatcher,
	})

	return &testServer{
		srv:        srv,
		tokens:     tokens,
		jobs:       jobs,
		apps:       apps,
		subs:       subs,
		sender:     sender,
		dispatcher: dispatcher,
	}
}

func (ts *testServer) request(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := ts.srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (ts *testServer) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, err := ts.tokens.Generate(auth.Identity{
		SubjectID: "admin-1",
		Email:     auth.DefaultAdminEmail,
		Role:      auth.RoleAdmin,
	})
	require.NoError(t, err)

	return &http.Cookie{Name: auth.DefaultCookieName, Value: token}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &payload))
	return payload
}
