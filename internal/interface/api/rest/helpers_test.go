package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	jwtSvc "contacts-api/internal/infrastructure/jwt"
	"contacts-api/internal/interface/api/rest/middleware"
)

const testSecret = "test-secret"

func newTestEngine(t *testing.T) (*gin.Engine, gin.HandlerFunc, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	j := jwtSvc.New(testSecret, "contacts-api")
	return gin.New(), middleware.AuthMiddleware(j), j
}

func bearer(t *testing.T, j *jwtSvc.Service, userID string) map[string]string {
	t.Helper()
	tok, err := j.GenerateJWT(userID, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}
