package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customercore/internal/platform/config"
	"customercore/pkg/platform/audit/outbox"
	"customercore/pkg/platform/audit/publisher"
	"customercore/pkg/platform/middleware/auth"
	"customercore/pkg/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{Addr: ":0"},
		Auth: config.AuthConfig{SigningKey: "test-key", Issuer: "customercore"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := openBackends(context.Background(), cfg, log)
	require.NoError(t, err)
	pub := publisher.NewPublisher(b.audit)
	reg := prometheus.NewRegistry()
	router := newRouter(cfg, log, reg, b, nil, newHandlers(b, log, reg, pub)...)
	return router, auth.NewTokenService(cfg.Auth.SigningKey, cfg.Auth.Issuer)
}

func authorized(t *testing.T, tokens *auth.TokenService, actor, method, path string, body any) *http.Request {
	t.Helper()
	token, err := tokens.Issue(actor, time.Hour)
	require.NoError(t, err)
	req := testutil.NewJSONRequest(t, method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthAndAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/customers", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOnboardingFlow(t *testing.T) {
	router, tokens := newTestRouter(t)
	admin := func(method, path string, body any) *http.Request {
		return authorized(t, tokens, "admin", method, path, body)
	}
	clerk := func(method, path string, body any) *http.Request {
		return authorized(t, tokens, "clerk", method, path, body)
	}

	testutil.Given(t, "a catalog and a mandatory ID card task", func(t *testing.T) {
		rr := testutil.DoRequest(router, admin(http.MethodPost, "/catalogs", map[string]any{
			"identifier": "loan-info",
			"name":       "Loan information",
			"fields": []map[string]any{
				{"identifier": "income", "data_type": "NUMBER", "precision": 2, "min_value": "0"},
			},
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = testutil.DoRequest(router, admin(http.MethodPost, "/tasks", map[string]any{
			"identifier": "nat-id",
			"type":       "ID_CARD",
			"name":       "National ID",
			"mandatory":  true,
			"predefined": true,
			"commands":   []string{"ACTIVATE"},
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	testutil.When(t, "a customer is onboarded with a valid income", func(t *testing.T) {
		rr := testutil.DoRequest(router, clerk(http.MethodPost, "/customers", map[string]any{
			"identifier":    "c-1",
			"customer_type": "PERSON",
			"first_name":    "Ada",
			"last_name":     "Lovelace",
			"values":        []map[string]string{{"catalog": "loan-info", "field": "income", "value": "123.45"}},
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	})

	testutil.Then(t, "activation is blocked until the card is checked", func(t *testing.T) {
		rr := testutil.DoRequest(router, clerk(http.MethodPost, "/customers/c-1/commands", map[string]any{"command": "ACTIVATE"}))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "transition_blocked")

		rr = testutil.DoRequest(router, clerk(http.MethodPost, "/customers/c-1/identifications", map[string]any{
			"kind": "NATIONAL_ID", "number": "AB123",
		}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = testutil.DoRequest(router, clerk(http.MethodPost, "/customers/c-1/tasks/nat-id/execute", nil))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = testutil.DoRequest(router, clerk(http.MethodPost, "/customers/c-1/commands", map[string]any{"command": "ACTIVATE"}))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), `"state":"ACTIVE"`)
	})

	testutil.Then(t, "an in-use field cannot be deleted", func(t *testing.T) {
		rr := testutil.DoRequest(router, admin(http.MethodDelete, "/catalogs/loan-info/fields/income", nil))
		assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())
	})
}

type recordingSender struct {
	entries []outbox.Entry
	err     error
}

func (r *recordingSender) Send(_ context.Context, entry outbox.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func TestFanoutStopsOnFirstError(t *testing.T) {
	first := &recordingSender{}
	failing := &recordingSender{err: assert.AnError}
	last := &recordingSender{}

	err := fanout{first, failing, last}.Send(context.Background(), outbox.Entry{EventType: "customer_created"})
	require.ErrorIs(t, err, assert.AnError)
	assert.Len(t, first.entries, 1)
	assert.Empty(t, last.entries)
}
