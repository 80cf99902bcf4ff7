package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"chat-animation/internal/domain/animation"
	"chat-animation/internal/services"
	"chat-animation/internal/transport/httpdto"
	app_errors "chat-animation/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AnimationSettingsHandler struct {
	service *services.AnimationSettingsService
	exports *services.ExportService
}

func NewAnimationSettingsHandler(service *services.AnimationSettingsService, exports *services.ExportService) *AnimationSettingsHandler {
	return &AnimationSettingsHandler{service: service, exports: exports}
}

func (h *AnimationSettingsHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"types": httpdto.FromTypes(animation.AllTypes())}))
}

func (h *AnimationSettingsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.List(c.Request.Context())))
}

func (h *AnimationSettingsHandler) Get(c *gin.Context) {
	t, ok := typeParam(c)
	if !ok {
		return
	}
	settings, err := h.service.Get(c.Request.Context(), t)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(settings))
}

func (h *AnimationSettingsHandler) Replace(c *gin.Context) {
	t, ok := typeParam(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
		return
	}
	settings, err := h.service.Replace(c.Request.Context(), t, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(settings))
}

func (h *AnimationSettingsHandler) Apply(c *gin.Context) {
	if err := h.service.Apply(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *AnimationSettingsHandler) Restore(c *gin.Context) {
	types, err := parseTypes(c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.Restore(c.Request.Context(), types...)))
}

func (h *AnimationSettingsHandler) Export(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFileName+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (h *AnimationSettingsHandler) ExportFile(c *gin.Context) {
	path, err := h.service.ExportFile(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ExportFileResponse{Path: path}))
}

func (h *AnimationSettingsHandler) ExportToStorage(c *gin.Context) {
	if h.exports == nil {
		writeError(c, app_errors.ErrServiceUnavailable)
		return
	}
	result, err := h.exports.Upload(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromExportResult(result)))
}

func (h *AnimationSettingsHandler) Import(c *gin.Context) {
	types, err := parseTypes(c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	apply, _ := strconv.ParseBool(c.Query("apply"))
	body, err := c.GetRawData()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
		return
	}
	set, err := h.service.Import(c.Request.Context(), body, apply, types...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(set))
}

func (h *AnimationSettingsHandler) ImportFromStorage(c *gin.Context) {
	if h.exports == nil {
		writeError(c, app_errors.ErrServiceUnavailable)
		return
	}
	var req httpdto.ImportFromStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request", "INVALID_REQUEST")
		return
	}
	types, err := parseTypes(strings.Join(req.Types, ","))
	if err != nil {
		writeError(c, err)
		return
	}
	set, err := h.exports.Download(c.Request.Context(), req.Key, req.Apply, types...)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(set))
}

func typeParam(c *gin.Context) (animation.Type, bool) {
	t, err := animation.ParseType(c.Param("type"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, err.Error(), "NOT_FOUND")
		return "", false
	}
	return t, true
}

// parseTypes reads a comma separated list; empty means every type.
func parseTypes(raw string) ([]animation.Type, error) {
	var types []animation.Type
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := animation.ParseType(part)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, app_errors.ErrDecode), errors.Is(err, app_errors.ErrInvalidInput):
		errorResponse(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	case errors.Is(err, app_errors.ErrUnauthorized):
		errorResponse(c, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
	case errors.Is(err, app_errors.ErrPathResolution), errors.Is(err, app_errors.ErrServiceUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, err.Error(), "UNAVAILABLE")
	default:
		_ = c.Error(err)
		errorResponse(c, http.StatusInternalServerError, err.Error(), "REQUEST_FAILED")
	}
}

func errorResponse(c *gin.Context, status int, message, code string) {
	c.JSON(status, httpdto.NewErrorResponse(message, code).WithRequestID(c.Writer.Header().Get("X-Request-Id")))
}
