package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-content-be/internal/dto"
	"portfolio-content-be/internal/pkg/logger"
	"portfolio-content-be/internal/pkg/serverutils"
	"portfolio-content-be/internal/repository/memory"
	"portfolio-content-be/internal/service"
	"portfolio-content-be/pkg/lexical"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type stubContentService struct {
	created *dto.CreateContentRequest
	updated *dto.UpdateContentRequest
	deleted uuid.UUID
	listed  *dto.ListContentRequest
}

func (s *stubContentService) Create(_ context.Context, req *dto.CreateContentRequest) (*dto.CreateContentResponse, error) {
	s.created = req
	return &dto.CreateContentResponse{Id: uuid.New(), Slug: "new-post"}, nil
}

func (s *stubContentService) Update(_ context.Context, req *dto.UpdateContentRequest) (*dto.UpdateContentResponse, error) {
	s.updated = req
	return &dto.UpdateContentResponse{Id: req.Id, Slug: "kept"}, nil
}

func (s *stubContentService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func (s *stubContentService) List(_ context.Context, req *dto.ListContentRequest) (*dto.ListContentResponse, error) {
	s.listed = req
	return &dto.ListContentResponse{Items: []*dto.ContentSummaryResponse{}, Page: req.Page, Limit: req.Limit}, nil
}

func (s *stubContentService) Show(_ context.Context, kind, slug string) (*dto.ShowContentResponse, error) {
	if slug != "hello" {
		return nil, serverutils.NewNotFound("Content not found")
	}
	return &dto.ShowContentResponse{
		ContentSummaryResponse: dto.ContentSummaryResponse{Kind: kind, Slug: slug},
		HTML:                   `<h2 id="intro">Intro</h2>`,
		Toc:                    []lexical.TocEntry{{Title: "Intro", URL: "#intro", Depth: 2}},
	}, nil
}

func (s *stubContentService) Markdown(_ context.Context, _, slug string) (*dto.MarkdownContentResponse, error) {
	return &dto.MarkdownContentResponse{Slug: slug, Markdown: "## Intro\n"}, nil
}

func newTestApp(register ...func(r fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	api := app.Group("/api")
	for _, fn := range register {
		fn(api)
	}
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "editor",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, auth string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestContentControllerReads(t *testing.T) {
	stub := &stubContentService{}
	ctrl := NewContentController(stub, serverutils.NewJwtMiddleware(testSecret))
	app := newTestApp(ctrl.RegisterRoutes)

	code, raw := doRequest(t, app, "GET", "/api/content/v1/post/hello", "", "")
	require.Equal(t, 200, code)
	var show serverutils.BaseResponse[dto.ShowContentResponse]
	require.NoError(t, json.Unmarshal(raw, &show))
	assert.True(t, show.Success)
	assert.Equal(t, "#intro", show.Data.Toc[0].URL)

	code, _ = doRequest(t, app, "GET", "/api/content/v1/post/missing", "", "")
	assert.Equal(t, 404, code)

	code, _ = doRequest(t, app, "GET", "/api/content/v1/post?page=2&limit=5", "", "")
	require.Equal(t, 200, code)
	assert.Equal(t, 2, stub.listed.Page)
	assert.Equal(t, 5, stub.listed.Limit)

	code, raw = doRequest(t, app, "GET", "/api/content/v1/video", "", "")
	assert.Equal(t, 400, code)
	assert.Contains(t, string(raw), "Kind must satisfy oneof")

	code, _ = doRequest(t, app, "GET", "/api/content/v1/post?limit=1000", "", "")
	assert.Equal(t, 400, code)
}

func TestContentControllerMarkdown(t *testing.T) {
	ctrl := NewContentController(&stubContentService{}, serverutils.NewJwtMiddleware(testSecret))
	app := newTestApp(ctrl.RegisterRoutes)

	req := httptest.NewRequest("GET", "/api/content/v1/post/hello/markdown", nil)
	req.Header.Set("Accept", "text/markdown")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "## Intro\n", string(raw))
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")

	code, body := doRequest(t, app, "GET", "/api/content/v1/post/hello/markdown", "", "")
	assert.Equal(t, 200, code)
	var res serverutils.BaseResponse[dto.MarkdownContentResponse]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "hello", res.Data.Slug)
}

func TestContentControllerWrites(t *testing.T) {
	stub := &stubContentService{}
	ctrl := NewContentController(stub, serverutils.NewJwtMiddleware(testSecret))
	app := newTestApp(ctrl.RegisterRoutes)
	auth := bearer(t)
	id := uuid.New()

	createBody := `{"kind":"post","title":"New post","body":{"root":{"children":[]}}}`

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		auth     string
		wantCode int
	}{
		{name: "create without token", method: "POST", path: "/api/content/v1", body: createBody, wantCode: 401},
		{name: "create", method: "POST", path: "/api/content/v1", body: createBody, auth: auth, wantCode: 200},
		{name: "create bad slug", method: "POST", path: "/api/content/v1", body: `{"kind":"post","slug":"Bad Slug","title":"x","body":{}}`, auth: auth, wantCode: 400},
		{name: "create missing body", method: "POST", path: "/api/content/v1", body: `{"kind":"post","title":"x"}`, auth: auth, wantCode: 400},
		{name: "create malformed json", method: "POST", path: "/api/content/v1", body: `{"kind":`, auth: auth, wantCode: 400},
		{name: "update", method: "PUT", path: "/api/content/v1/" + id.String(), body: `{"title":"T","body":{}}`, auth: auth, wantCode: 200},
		{name: "update bad id", method: "PUT", path: "/api/content/v1/not-a-uuid", body: `{"title":"T","body":{}}`, auth: auth, wantCode: 400},
		{name: "delete without token", method: "DELETE", path: "/api/content/v1/" + id.String(), wantCode: 401},
		{name: "delete", method: "DELETE", path: "/api/content/v1/" + id.String(), auth: auth, wantCode: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, raw := doRequest(t, app, tt.method, tt.path, tt.body, tt.auth)
			assert.Equal(t, tt.wantCode, code, string(raw))
		})
	}

	require.NotNil(t, stub.created)
	assert.Equal(t, "New post", stub.created.Title)
	assert.JSONEq(t, `{"root":{"children":[]}}`, string(stub.created.Body))
	require.NotNil(t, stub.updated)
	assert.Equal(t, id, stub.updated.Id)
	assert.Equal(t, id, stub.deleted)
}

func TestRenderController(t *testing.T) {
	renderService := service.NewRenderService(memory.NewRenderCache(time.Minute), false, logger.NewNopLogger())
	app := newTestApp(NewRenderController(renderService).RegisterRoutes)

	code, raw := doRequest(t, app, "POST", "/api/render/v1/preview",
		`{"content":{"root":{"children":[{"type":"heading","tag":"h1","children":[{"type":"text","text":"Hello"}]}]}}}`, "")
	require.Equal(t, 200, code, string(raw))
	var preview serverutils.BaseResponse[dto.RenderResponse]
	require.NoError(t, json.Unmarshal(raw, &preview))
	assert.Equal(t, `<h1 id="hello">Hello</h1>`, preview.Data.HTML)
	assert.Equal(t, []lexical.TocEntry{{Title: "Hello", URL: "#hello", Depth: 1}}, preview.Data.Toc)

	code, _ = doRequest(t, app, "POST", "/api/render/v1/preview", `{}`, "")
	assert.Equal(t, 400, code)

	code, raw = doRequest(t, app, "POST", "/api/render/v1/toc", `{"html":"<h2 id=\"a\">A</h2>"}`, "")
	require.Equal(t, 200, code)
	var toc serverutils.BaseResponse[dto.TocResponse]
	require.NoError(t, json.Unmarshal(raw, &toc))
	assert.Equal(t, []lexical.TocEntry{{Title: "A", URL: "#a", Depth: 2}}, toc.Data.Toc)
}

func TestAdminControllerRequiresToken(t *testing.T) {
	adminService := service.NewAdminService(map[string]logger.ILogger{"app": logger.NewNopLogger()})
	app := newTestApp(NewAdminController(adminService, serverutils.NewJwtMiddleware(testSecret)).RegisterRoutes)

	code, _ := doRequest(t, app, "GET", "/api/admin/v1/logs", "", "")
	assert.Equal(t, 401, code)

	code, raw := doRequest(t, app, "GET", "/api/admin/v1/logs?page=1&limit=5", "", bearer(t))
	assert.Equal(t, 200, code, string(raw))

	code, _ = doRequest(t, app, "GET", "/api/admin/v1/logs?level=warn", "", bearer(t))
	assert.Equal(t, 200, code)

	for _, bad := range []string{"?limit=500", "?level=TRACE", "?source=nope", "?page=x"} {
		code, _ = doRequest(t, app, "GET", "/api/admin/v1/logs"+bad, "", bearer(t))
		assert.Equal(t, 400, code, bad)
	}

	code, _ = doRequest(t, app, "GET", "/api/admin/v1/logs/abc", "", bearer(t))
	assert.Equal(t, 404, code)
}

func TestHealthController(t *testing.T) {
	healthy := NewHealthController(map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})
	app := fiber.New()
	healthy.RegisterRoutes(app)
	code, _ := doRequest(t, app, "GET", "/healthz", "", "")
	assert.Equal(t, 200, code)

	degraded := NewHealthController(map[string]HealthCheck{
		"redis": func(context.Context) error { return context.DeadlineExceeded },
	})
	app = fiber.New()
	degraded.RegisterRoutes(app)
	code, raw := doRequest(t, app, "GET", "/healthz", "", "")
	assert.Equal(t, 503, code)
	assert.Contains(t, string(raw), "deadline exceeded")
}
