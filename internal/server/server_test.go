package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chat-animation/config"
	"chat-animation/internal/domain/animation"
	"chat-animation/internal/handler"
	"chat-animation/internal/repository"
	"chat-animation/internal/services"
	"chat-animation/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler   http.Handler
	store     *repository.MemoryKeyValueStore
	auth      *services.AuthService
	exportDir string
}

func newTestEnv(t *testing.T, secret string, health HealthCheck) *testEnv {
	t.Helper()
	store := repository.NewMemoryKeyValueStore()
	exportDir := t.TempDir()
	manager := services.NewAnimationSettingsManager(context.Background(), store, logger.NewNop(), services.WithExportDir(exportDir))
	svc := services.NewAnimationSettingsService(manager, nil, logger.NewNop())
	auth := services.NewAuthService(secret)

	srv := New(&config.Config{AppPort: "0", AppMode: TestMode}, logger.NewNop())
	srv.SetupRoutes(&Handlers{Settings: handler.NewAnimationSettingsHandler(svc, nil)}, Guards{Auth: auth}, health)
	return &testEnv{handler: srv.Handler(), store: store, auth: auth, exportDir: exportDir}
}

func (e *testEnv) do(method, path string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	RequestID string          `json:"request_id"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRoutes_ReadEndpoints(t *testing.T) {
	env := newTestEnv(t, "", nil)

	w := env.do(http.MethodGet, "/v1/animation-settings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	set, err := animation.DecodeSettingsSet(decodeEnvelope(t, w).Data)
	require.NoError(t, err)
	assert.True(t, set.Equal(animation.NewSettingsSet()))

	w = env.do(http.MethodGet, "/v1/animation-settings/slots/emoji", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	emoji, err := animation.DecodeEmojiSettings(decodeEnvelope(t, w).Data)
	require.NoError(t, err)
	assert.Equal(t, animation.TypeEmoji, emoji.Type())

	w = env.do(http.MethodGet, "/v1/animation-settings/slots/Nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/v1/animation-settings/types", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ChatAnimationSettingsForLinkPreviewType")

	w = env.do(http.MethodGet, "/v1/animation-settings/export", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), services.ExportFileName)
	assert.Contains(t, w.Body.String(), "\n  \"smallMessageSettings\"")
}

func TestRoutes_ReplaceApplyRestore(t *testing.T) {
	env := newTestEnv(t, "", nil)

	body, err := animation.NewCommonSettings(animation.TypeBigMessage, animation.WithDuration(animation.DurationSlow)).EncodeJSON()
	require.NoError(t, err)

	w := env.do(http.MethodPut, "/v1/animation-settings/slots/Big", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Zero(t, env.store.Len())

	w = env.do(http.MethodPost, "/v1/animation-settings/apply", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	raw, err := env.store.Get(context.Background(), animation.TypeBigMessage.StorageKey())
	require.NoError(t, err)
	stored, err := animation.DecodeCommonSettings(raw)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationSlow, stored.Duration)

	w = env.do(http.MethodPost, "/v1/animation-settings/restore?type=Big", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	set, err := animation.DecodeSettingsSet(decodeEnvelope(t, w).Data)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationMedium, set.BigMessage.Duration)

	w = env.do(http.MethodPost, "/v1/animation-settings/restore?type=Big,Bogus", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_ReplaceRejectsMismatchedShape(t *testing.T) {
	env := newTestEnv(t, "", nil)

	body, err := animation.NewEmojiSettings().EncodeJSON()
	require.NoError(t, err)

	w := env.do(http.MethodPut, "/v1/animation-settings/slots/Small", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errEnv := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_REQUEST", errEnv.Code)
	assert.Equal(t, w.Header().Get("X-Request-Id"), errEnv.RequestID)
	assert.NotEmpty(t, errEnv.RequestID)
}

func TestRoutes_ImportExportFile(t *testing.T) {
	env := newTestEnv(t, "", nil)

	doc := animation.NewSettingsSet()
	doc.Sticker.Duration = animation.DurationFast
	data, err := doc.EncodeJSON()
	require.NoError(t, err)

	w := env.do(http.MethodPost, "/v1/animation-settings/import?type=Sticker&apply=true", data, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 7, env.store.Len())

	w = env.do(http.MethodPost, "/v1/animation-settings/import", []byte(`{"smallMessageSettings":{}}`), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/v1/animation-settings/export/file", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	written, err := os.ReadFile(filepath.Join(env.exportDir, services.ExportFileName))
	require.NoError(t, err)
	exported, err := animation.DecodeSettingsSet(written)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationFast, exported.Sticker.Duration)

	w = env.do(http.MethodPost, "/v1/animation-settings/export/s3", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoutes_WritesRequireTokenWhenSecretSet(t *testing.T) {
	env := newTestEnv(t, "secret", nil)

	w := env.do(http.MethodPost, "/v1/animation-settings/apply", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/v1/animation-settings", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	token, err := env.auth.IssueToken("ops", time.Minute)
	require.NoError(t, err)
	w = env.do(http.MethodPost, "/v1/animation-settings/apply", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_Health(t *testing.T) {
	healthy := newTestEnv(t, "", func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, healthy.do(http.MethodGet, "/health", nil, "").Code)

	down := newTestEnv(t, "", func(context.Context) error { return errors.New("redis down") })
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/health", nil, "").Code)
}
