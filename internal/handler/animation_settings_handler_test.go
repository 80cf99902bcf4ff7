package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"chat-animation/internal/domain/animation"
	app_errors "chat-animation/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	types, err := parseTypes("")
	require.NoError(t, err)
	assert.Empty(t, types)

	types, err = parseTypes("small, Emoji,,VIDEO")
	require.NoError(t, err)
	assert.Equal(t, []animation.Type{animation.TypeSmallMessage, animation.TypeEmoji, animation.TypeVideoMessage}, types)

	_, err = parseTypes("Small,Gif")
	assert.ErrorIs(t, err, app_errors.ErrInvalidInput)
}

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: bad", app_errors.ErrDecode), http.StatusBadRequest, "INVALID_REQUEST"},
		{app_errors.ErrInvalidInput, http.StatusBadRequest, "INVALID_REQUEST"},
		{app_errors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{app_errors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{app_errors.ErrPathResolution, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{app_errors.ErrServiceUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{fmt.Errorf("%w: disk full", app_errors.ErrFileWrite), http.StatusInternalServerError, "REQUEST_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "REQUEST_FAILED"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
	}
}
