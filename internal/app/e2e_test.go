//go:build e2e

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bookloan-backend/internal/auth"
	"github.com/heartmarshall/bookloan-backend/internal/config"
	"github.com/heartmarshall/bookloan-backend/internal/domain"
)

const e2eSecret = "e2e-secret-that-is-at-least-32-characters"

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *auth.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupIsolatedDB(t)
	cfg := &config.Config{
		Auth:      config.AuthConfig{JWTSecret: e2eSecret, JWTIssuer: "bookloan-e2e", AccessTokenTTL: time.Hour},
		Loans:     config.LoansConfig{PageSize: 10},
		Reports:   config.ReportsConfig{PageSize: 10},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 0, CleanupInterval: time.Minute},
	}
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	h := newHandler(cfg, pool, logger)
	t.Cleanup(h.limiter.Stop)

	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    auth.NewJWTManager(e2eSecret, "bookloan-e2e", time.Hour),
	}
}

func (ts *testServer) token(t *testing.T, b domain.Borrower) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(b.ID, b.Role)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func dueBody(days int) string {
	return fmt.Sprintf(`{"dueDate":%q}`, time.Now().UTC().AddDate(0, 0, days).Format(time.RFC3339))
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Error.Code
}

func TestE2E_BorrowFlow(t *testing.T) {
	ts := setupTestServer(t)

	member := testhelper.SeedBorrower(t, ts.Pool)
	admin := testhelper.SeedBorrowerWithRole(t, ts.Pool, domain.RoleAdmin)
	item := testhelper.SeedItemTitled(t, ts.Pool, "Dune, Part One", 2)
	memberTok, adminTok := ts.token(t, member), ts.token(t, admin)

	// Checkout.
	resp, body := ts.do(t, http.MethodPost, "/api/borrower/check-out/"+item.ID.String(), memberTok, dueBody(7))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var l domain.Loan
	require.NoError(t, json.Unmarshal(body, &l))
	assert.Equal(t, member.ID, l.BorrowerID)
	assert.Equal(t, 1, testhelper.ItemQuantity(t, ts.Pool, item.ID))

	// Second checkout of the same item is a duplicate.
	resp, body = ts.do(t, http.MethodPost, "/api/borrower/check-out/"+item.ID.String(), memberTok, dueBody(7))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "E008", errorCode(t, body))

	// Due date beyond one month is rejected.
	resp, _ = ts.do(t, http.MethodPost, "/api/borrower/check-out/"+item.ID.String(), adminTok, dueBody(40))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// My borrows.
	resp, body = ts.do(t, http.MethodGet, "/api/borrower/my-borrows", memberTok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine struct {
		Items      []domain.Item `json:"items"`
		TotalCount int           `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(body, &mine))
	require.Len(t, mine.Items, 1)
	assert.Equal(t, item.ID, mine.Items[0].ID)

	// Admin reschedules.
	resp, body = ts.do(t, http.MethodPut, "/api/borrower/"+l.ID.String(), adminTok, dueBody(20))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	// Return, then return again.
	resp, _ = ts.do(t, http.MethodPost, "/api/borrower/return/"+item.ID.String(), memberTok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, testhelper.ItemQuantity(t, ts.Pool, item.ID))

	resp, body = ts.do(t, http.MethodPost, "/api/borrower/return/"+item.ID.String(), memberTok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "E009", errorCode(t, body))

	// Admin list sees the closed loan with joined item and borrower.
	resp, body = ts.do(t, http.MethodGet, "/api/borrower?sinceDays=1", adminTok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var list struct {
		TotalCount int `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.TotalCount)

	// Export quotes the comma in the title.
	resp, body = ts.do(t, http.MethodGet, "/api/borrower/export", adminTok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Loan ID,"))
	assert.Contains(t, lines[1], `"Dune, Part One"`)
	assert.Contains(t, lines[1], member.Email)

	// Nothing is past due.
	resp, body = ts.do(t, http.MethodGet, "/api/borrower/export?status=PAST_DUE", adminTok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "E012", errorCode(t, body))

	// Delete removes the record.
	resp, _ = ts.do(t, http.MethodDelete, "/api/borrower/"+l.ID.String(), adminTok, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodDelete, "/api/borrower/"+l.ID.String(), adminTok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2E_AccessControl(t *testing.T) {
	ts := setupTestServer(t)
	member := testhelper.SeedBorrower(t, ts.Pool)
	memberTok := ts.token(t, member)

	resp, body := ts.do(t, http.MethodGet, "/api/borrower/my-borrows", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "E005", errorCode(t, body))

	for _, ep := range []struct{ method, path string }{
		{http.MethodGet, "/api/borrower"},
		{http.MethodGet, "/api/borrower/export"},
		{http.MethodPut, "/api/borrower/" + uuid.NewString()},
		{http.MethodDelete, "/api/borrower/" + uuid.NewString()},
	} {
		resp, body := ts.do(t, ep.method, ep.path, memberTok, dueBody(3))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, ep.method+" "+ep.path)
		assert.Equal(t, "E006", errorCode(t, body))
	}

	resp, _ = ts.do(t, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestE2E_HugePageIsValidationError(t *testing.T) {
	ts := setupTestServer(t)
	member := testhelper.SeedBorrower(t, ts.Pool)
	admin := testhelper.SeedBorrowerWithRole(t, ts.Pool, domain.RoleAdmin)

	huge := "922337203685477582"
	for _, c := range []struct{ path, token string }{
		{"/api/borrower/my-borrows?page=" + huge, ts.token(t, member)},
		{"/api/borrower?page=" + huge, ts.token(t, admin)},
	} {
		resp, body := ts.do(t, http.MethodGet, c.path, c.token, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, c.path)
		assert.Equal(t, "E004", errorCode(t, body), c.path)
	}
}

func TestE2E_ConcurrentCheckoutLastUnit(t *testing.T) {
	ts := setupTestServer(t)
	item := testhelper.SeedItem(t, ts.Pool, 1)

	const clients = 6
	tokens := make([]string, clients)
	for i := range tokens {
		tokens[i] = ts.token(t, testhelper.SeedBorrower(t, ts.Pool))
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	for _, tok := range tokens {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost,
				ts.URL+"/api/borrower/check-out/"+item.ID.String(), strings.NewReader(dueBody(5)))
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := ts.Client.Do(req)
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
			mu.Lock()
			statuses[resp.StatusCode]++
			mu.Unlock()
		}(tok)
	}
	wg.Wait()

	assert.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: clients - 1}, statuses)
	assert.Equal(t, 0, testhelper.ItemQuantity(t, ts.Pool, item.ID))
}
