package linkedinclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lidomain "github.com/vfg2006/linkedin-ads-api/infrastructure/integrator/linkedin/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
)

func newTestClient(serverURL string) Client {
	cfg := &config.Config{
		LinkedIn: config.LinkedIn{
			BaseURL:     serverURL,
			Version:     "202401",
			AccessToken: "token-de-teste",
		},
	}

	return NewClient(cfg, NewTokenManager(cfg))
}

func elementsPage(ids ...int) string {
	page := `{"elements":[`
	for i, id := range ids {
		if i > 0 {
			page += ","
		}
		page += fmt.Sprintf(`{"id":%d}`, id)
	}
	return page + `]}`
}

func TestClient_HeadersDeAutenticacao(t *testing.T) {
	var gotAuth, gotVersion, gotProtocol string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("LinkedIn-Version")
		gotProtocol = r.Header.Get("X-Restli-Protocol-Version")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.Get("/rest/adAccounts", "")
	require.NoError(t, err)

	assert.Equal(t, true, data["ok"])
	assert.Equal(t, "Bearer token-de-teste", gotAuth)
	assert.Equal(t, "202401", gotVersion)
	assert.Equal(t, "2.0.0", gotProtocol)
}

func TestClient_TokenExpiradoNaoChamaAPI(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	cfg := &config.Config{
		LinkedIn: config.LinkedIn{
			BaseURL:        server.URL,
			Version:        "202401",
			AccessToken:    "token-de-teste",
			TokenExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
		},
	}
	client := NewClient(cfg, NewTokenManager(cfg))

	_, err := client.Get("/rest/adAccounts", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expirado")
	assert.Equal(t, 0, requests)
}

func TestClient_RateLimitVira429ComRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Get("/rest/adAccounts", "")
	require.Error(t, err)

	var rateErr *lidomain.RateLimitError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, "/rest/adAccounts", rateErr.Endpoint)
	require.NotNil(t, rateErr.RetryAfterSeconds)
	assert.Equal(t, 30, *rateErr.RetryAfterSeconds)
}

func TestClient_ErroDaAPIComCorpoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"parâmetro inválido","serviceErrorCode":100}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Get("/rest/adCampaigns", "q=search")
	require.Error(t, err)

	var apiErr *lidomain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "/rest/adCampaigns", apiErr.Endpoint)
	assert.Equal(t, "parâmetro inválido", apiErr.Response["message"])
}

func TestClient_PaginacaoPorOffset(t *testing.T) {
	pages := map[string]string{
		"0": elementsPage(1, 2),
		"2": elementsPage(3, 4),
		"4": elementsPage(5),
	}
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		fmt.Fprint(w, pages[r.URL.Query().Get("start")])
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	items, err := client.GetAllPages("/rest/adAccounts", "q=search", "elements", 2)
	require.NoError(t, err)

	// A última página vem incompleta e encerra a drenagem
	assert.Equal(t, 3, requests)
	require.Len(t, items, 5)
	assert.Equal(t, float64(1), items[0]["id"])
	assert.Equal(t, float64(5), items[4]["id"])
}

func TestClient_PaginacaoPorToken(t *testing.T) {
	var tokens []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)

		if token == "" {
			fmt.Fprint(w, `{"elements":[{"id":1}],"metadata":{"nextPageToken":"abc"}}`)
			return
		}
		fmt.Fprint(w, `{"elements":[{"id":2}],"metadata":{}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	items, err := client.GetAllPages("/rest/adAccounts", "", "elements", 10)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, []string{"", "abc"}, tokens)
}

func TestClient_PaginaCheiaSemTokenContinuaPorOffset(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("start") == "0" {
			fmt.Fprint(w, elementsPage(1, 2))
			return
		}
		fmt.Fprint(w, `{"elements":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	items, err := client.GetAllPages("/rest/adAccounts", "", "elements", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	assert.Len(t, items, 2)
}

func TestTokenManager_Status(t *testing.T) {
	expiresAt := time.Now().Add(48 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name          string
		cfg           config.LinkedIn
		authenticated bool
		reason        string
	}{
		{
			name:          "token configurado e válido",
			cfg:           config.LinkedIn{AccessToken: "abc", TokenExpiresAt: expiresAt},
			authenticated: true,
		},
		{
			name:          "token ausente",
			cfg:           config.LinkedIn{},
			authenticated: false,
			reason:        "token não configurado",
		},
		{
			name:          "token expirado",
			cfg:           config.LinkedIn{AccessToken: "abc", TokenExpiresAt: time.Now().Add(-time.Hour).Format(time.RFC3339)},
			authenticated: false,
			reason:        "token expirado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := NewTokenManager(&config.Config{LinkedIn: tt.cfg})

			status := tm.Status()

			assert.Equal(t, tt.authenticated, status.Authenticated)
			assert.Equal(t, tt.reason, status.Reason)
		})
	}
}
