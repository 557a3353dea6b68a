package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	reportgen "github.com/goliatone/go-reportgen"
	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/renderers/tui"
	"github.com/goliatone/go-reportgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-reportgen/pkg/server/api"
	"github.com/goliatone/go-reportgen/pkg/storage"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Name() string        { return "mock" }
func (m *mockRenderer) ContentType() string { return "text/html" }

func (m *mockRenderer) Render(ctx context.Context, view app.View, options render.RenderOptions) ([]byte, error) {
	args := m.Called(ctx, view, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func testLogger() zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(nil))
}

func newTestApp(t *testing.T, load bool) *app.App {
	t.Helper()
	a, err := reportgen.NewApp(app.WithStore(storage.NewMemory()), app.WithLogger(testLogger()))
	require.NoError(t, err)
	if load {
		require.NoError(t, a.Load(context.Background(), "en"))
	}
	return a
}

func newTestServer(t *testing.T, a *app.App, renderers ...render.Renderer) *httptest.Server {
	t.Helper()
	if len(renderers) == 0 {
		page, err := vanilla.New()
		require.NoError(t, err)
		renderers = append(renderers, page, tui.Renderer{})
	}
	registry, err := render.NewRegistry(renderers...)
	require.NoError(t, err)

	router, err := ConfigureRouter(testLogger(), Config{Dependencies: Dependencies{
		App:          a,
		Renderers:    registry,
		RendererName: renderers[0].Name(),
		Assets:       vanilla.AssetsFS(),
		Version:      "test",
	}})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestConfigureRouter_RequiresDependencies(t *testing.T) {
	_, err := ConfigureRouter(testLogger(), Config{})
	assert.Error(t, err)

	registry, err := render.NewRegistry()
	require.NoError(t, err)
	_, err = ConfigureRouter(testLogger(), Config{Dependencies: Dependencies{
		App:          newTestApp(t, false),
		Renderers:    registry,
		RendererName: "missing",
	}})
	assert.Error(t, err)
}

func TestNewWebAPI_Defaults(t *testing.T) {
	page, err := vanilla.New()
	require.NoError(t, err)
	registry, err := render.NewRegistry(page)
	require.NoError(t, err)

	webAPI, err := NewWebAPI(testLogger(), Config{Addr: ":0", Dependencies: Dependencies{
		App:          newTestApp(t, true),
		Renderers:    registry,
		RendererName: "vanilla",
	}})
	require.NoError(t, err)
	assert.Equal(t, DefaultShutdownTimeout, webAPI.config.ShutdownTimeout)
	assert.NotNil(t, webAPI.Handler())
}

func TestPage(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Accomplishments")
	assert.Contains(t, body, `id="rg-blockers-issues"`)
}

func TestPage_NegotiatesOutline(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/plain")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, string(body), "[x] Accomplishments")
}

func TestPage_NoFormLoaded(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, false))

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, app.ErrNoForm.Error())
}

func TestPage_RendererError(t *testing.T) {
	renderer := &mockRenderer{}
	renderer.On("Render", mock.Anything, mock.AnythingOfType("app.View"), mock.Anything).
		Return(nil, errors.New("template exploded"))

	srv := newTestServer(t, newTestApp(t, true), renderer)

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "template exploded")
	renderer.AssertExpectations(t)
}

func TestAssets(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp, body := do(t, http.MethodGet, srv.URL+"/assets/"+vanilla.ScriptName, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func TestLanguages(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp, body := do(t, http.MethodGet, srv.URL+"/api/languages", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.Languages
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "en", got.Current)
	assert.ElementsMatch(t, []string{"en", "fr"}, got.Languages)
}

func TestSetLanguage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLang   string
	}{
		{name: "switches", body: `{"language":"fr"}`, wantStatus: http.StatusOK, wantLang: "fr"},
		{name: "unknown language", body: `{"language":"de"}`, wantStatus: http.StatusNotFound, wantLang: "en"},
		{name: "bad body", body: `{`, wantStatus: http.StatusBadRequest, wantLang: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, true)
			srv := newTestServer(t, a)

			resp, _ := do(t, http.MethodPut, srv.URL+"/api/language", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLang, a.Language())
		})
	}
}

func TestSetFieldValue(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{name: "known field", path: "/api/sections/blockers/fields/issues", body: `{"value":"CI is flaky"}`, wantStatus: http.StatusOK},
		{name: "unknown section", path: "/api/sections/nope/fields/issues", body: `{"value":"x"}`, wantStatus: http.StatusNotFound},
		{name: "unknown field", path: "/api/sections/blockers/fields/nope", body: `{"value":"x"}`, wantStatus: http.StatusNotFound},
		{name: "bad body", path: "/api/sections/blockers/fields/issues", body: `nope`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newTestApp(t, true))

			resp, body := do(t, http.MethodPut, srv.URL+tt.path, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, body)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got api.Report
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Contains(t, got.Report, "Issues: \n CI is flaky\n")
		})
	}
}

func TestSetFieldValue_DropsSupersededEdits(t *testing.T) {
	a := newTestApp(t, true)
	srv := newTestServer(t, a)
	path := srv.URL + "/api/sections/blockers/fields/issues"

	resp, body := do(t, http.MethodPut, path, `{"value":"abc","seq":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = do(t, http.MethodPut, path, `{"value":"ab","seq":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var got api.Report
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.True(t, got.Stale)
	assert.Contains(t, got.Report, "Issues: \n abc\n")

	structured, err := a.Structured()
	require.NoError(t, err)
	assert.Equal(t, "abc", structured.Sections["blockers"].Fields["issues"])

	resp, body = do(t, http.MethodPut, path, `{"value":"abcd","seq":4}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	got = api.Report{}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.False(t, got.Stale)
	assert.Contains(t, got.Report, "Issues: \n abcd\n")

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/sections/blockers/fields/nope", `{"value":"x","seq":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetIncluded(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp, body := do(t, http.MethodPut, srv.URL+"/api/sections/accomplishments/included", `{"included":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got api.Report
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotContains(t, got.Report, "Accomplishments")
	assert.True(t, strings.HasPrefix(got.Report, "1. Work in progress"))

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/sections/accomplishments/included", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportRoutes(t *testing.T) {
	a := newTestApp(t, true)
	srv := newTestServer(t, a)

	_, err := a.SetValue("blockers", "issues", "none")
	require.NoError(t, err)

	resp, generated := do(t, http.MethodPost, srv.URL+"/api/report/generate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, generated, "Issues: \n none\n")

	resp, current := do(t, http.MethodGet, srv.URL+"/api/report", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, generated, current)

	resp, structured := do(t, http.MethodGet, srv.URL+"/api/report/structured", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, structured, `"issues":"none"`)
}

func TestImportStructured(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantRestored int
	}{
		{
			name:         "restores known fields",
			body:         `{"sections":{"blockers":{"fields":{"issues":"imported"}},"legacy":{"fields":{"x":"y"}}}}`,
			wantStatus:   http.StatusOK,
			wantRestored: 1,
		},
		{name: "not json", body: `{broken`, wantStatus: http.StatusUnprocessableEntity},
		{name: "wrong shape", body: `{"sections":{"blockers":{"fields":{"issues":3}}}}`, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, true)
			srv := newTestServer(t, a)

			resp, body := do(t, http.MethodPut, srv.URL+"/api/report/structured", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode, body)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got api.ImportResult
			require.NoError(t, json.Unmarshal([]byte(body), &got))
			assert.Equal(t, tt.wantRestored, got.Restored)

			text, err := a.Report()
			require.NoError(t, err)
			assert.Contains(t, text, "Issues: \n imported\n")
		})
	}
}

func TestConfigAndOpenAPI(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, true))

	resp, body := do(t, http.MethodGet, srv.URL+"/api/config", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"blockers"`)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/openapi.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/api/report/structured")
}

func TestAPI_NoFormLoaded(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, false))

	for _, path := range []string{"/api/config", "/api/report", "/api/report/structured", "/api/openapi.json"} {
		resp, _ := do(t, http.MethodGet, srv.URL+path, "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
}
