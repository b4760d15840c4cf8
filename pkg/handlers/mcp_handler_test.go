package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/mcp"
)

func TestMCPHandlerRejectsNonPOST(t *testing.T) {
	logger := zap.NewNop()
	mcpServer := mcp.NewServer("test", "0.0.0", logger)
	handler := NewMCPHandler(mcpServer, logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, "/mcp", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "method %s", method)
		assert.Equal(t, "POST", rec.Header().Get("Allow"))
	}
}
