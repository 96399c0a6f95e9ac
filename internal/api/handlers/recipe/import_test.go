package recipe

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-ingest/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorResponse(t *testing.T, h *Handler, err error) (int, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.writeError(c, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorIncludesAcquisitionChain(t *testing.T) {
	chain := "all acquisition strategies failed: " +
		`direct fetch failed: unsupported content-type "text/html"; ` +
		"downloader failed: exit status 1; " +
		"scrape failed: status 403"

	status, body := errorResponse(t, NewHandler(nil),
		common.ErrAcquisitionFailed.WithErr(errors.New(chain)))

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, common.ErrCodeAcquisitionFailed, body["code"])
	assert.Equal(t, "無法取得這個連結的內容", body["error"])
	assert.Equal(t, chain, body["details"])
}

func TestWriteErrorOmitsDetailsWithoutCause(t *testing.T) {
	status, body := errorResponse(t, NewHandler(nil), common.ErrNoContent)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.ErrCodeNoContent, body["code"])
	_, present := body["details"]
	assert.False(t, present)
}

func TestWriteErrorUnknownErrorIsInternal(t *testing.T) {
	status, body := errorResponse(t, NewHandler(nil), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalError, body["code"])
}
