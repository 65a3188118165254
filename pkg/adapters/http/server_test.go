package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/rulegen"
	httpAdapter "github.com/aretw0/rulegen/pkg/adapters/http"
	"github.com/aretw0/rulegen/pkg/domain"
	"github.com/aretw0/rulegen/pkg/dsl"
	"github.com/aretw0/rulegen/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, opts ...httpAdapter.Option) http.Handler {
	t.Helper()
	pack := dsl.New("greeting").
		Rules("greeting", "Hello, {name}!", "Hi there, {name}!", "Greetings, {name}!").
		Rules("name", "World", "Friend", "Traveler").
		Rule("partial", "Hello, {unknown}!").
		Build()

	gen, err := rulegen.New(rulegen.WithRulePacks(pack))
	require.NoError(t, err)

	handler, err := httpAdapter.NewHandler(rulegen.NewLocked(gen), opts...)
	require.NoError(t, err)
	return handler
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLoadSpec(t *testing.T) {
	spec, err := httpAdapter.LoadSpec(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, spec.Paths.Find("/generate"))
	assert.Equal(t, "0.1.0", spec.Info.Version)
}

func TestHealthAndSpec(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	w = do(t, h, http.MethodGet, "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rulegen-http", decode[map[string]string](t, w)["app"])

	w = do(t, h, http.MethodOptions, "/generate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListSymbols(t *testing.T) {
	w := do(t, newHandler(t), http.MethodGet, "/symbols", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"symbols":["greeting","name","partial"]}`, w.Body.String())
}

func TestGetRules(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/symbols/name/rules", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Symbol string        `json:"symbol"`
		Rules  []domain.Rule `json:"rules"`
	}](t, w)
	assert.Equal(t, "name", resp.Symbol)
	assert.Len(t, resp.Rules, 3)

	w = do(t, h, http.MethodGet, "/symbols/nothing/rules", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "nothing")
}

func TestGenerate(t *testing.T) {
	h := newHandler(t)

	t.Run("seeded batch", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/generate", `{"symbol":"greeting","seed":42,"count":3}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[httpAdapter.GenerateResponse](t, w)
		var texts []string
		for _, r := range resp.Results {
			texts = append(texts, r.Text)
		}
		assert.Equal(t, []string{"Hello, Friend!", "Greetings, World!", "Hi there, World!"}, texts)
	})

	t.Run("string seed and variables", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/generate", `{"symbol":"greeting","seed":"story-1","variables":{"name":"Bob"}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[httpAdapter.GenerateResponse](t, w)
		require.Len(t, resp.Results, 1)
		assert.True(t, strings.HasSuffix(resp.Results[0].Text, ", Bob!"), resp.Results[0].Text)
		assert.Equal(t, "Bob", resp.Results[0].Variables["name"])
	})

	t.Run("allow undefined", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/generate", `{"symbol":"partial","allow_undefined":true}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello, unknown!", decode[httpAdapter.GenerateResponse](t, w).Results[0].Text)
	})

	t.Run("max depth", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/generate", `{"symbol":"greeting","max_depth":0}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[MAX_DEPTH:greeting]", decode[httpAdapter.GenerateResponse](t, w).Results[0].Text)
	})
}

func TestGenerate_BadRequests(t *testing.T) {
	h := newHandler(t)

	for name, body := range map[string]string{
		"not json":          `{"symbol":`,
		"missing symbol":    `{"seed":1}`,
		"empty symbol":      `{"symbol":""}`,
		"negative depth":    `{"symbol":"greeting","max_depth":-1}`,
		"fractional seed":   `{"symbol":"greeting","seed":1.5}`,
		"boolean seed":      `{"symbol":"greeting","seed":true}`,
		"seed out of range": `{"symbol":"greeting","seed":9223372036854775808}`,
		"count too large":   `{"symbol":"greeting","count":1000}`,
		"non-string values": `{"symbol":"greeting","variables":{"name":3}}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/generate", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestGenerate_SanitizesVariables(t *testing.T) {
	h := newHandler(t, httpAdapter.WithMaxInputSize(8))

	w := do(t, h, http.MethodPost, "/generate", `{"symbol":"greeting","seed":1,"variables":{"name":"Bo\u001bb"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[httpAdapter.GenerateResponse](t, w)
	assert.True(t, strings.HasSuffix(resp.Results[0].Text, ", Bob!"), resp.Results[0].Text)

	w = do(t, h, http.MethodPost, "/generate", `{"symbol":"greeting","variables":{"name":"Bartholomew"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	gen, err := rulegen.New(
		rulegen.WithRulePacks(dsl.New("m").Rule("root", "ok").Build()),
		rulegen.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	h, err := httpAdapter.NewHandler(rulegen.NewLocked(gen), httpAdapter.WithMetrics(reg))
	require.NoError(t, err)

	w := do(t, h, http.MethodPost, "/generate", `{"symbol":"root"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rulegen_generations_total{root="root",seeded="false"} 1`)

	// Without a gatherer the route is not mounted.
	w = do(t, newHandler(t), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
