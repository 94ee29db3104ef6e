package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/progress-dashboard-api/internal/middleware"
	"github.com/noah-isme/progress-dashboard-api/internal/models"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *envelopeError         `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// studentRouter builds an engine whose requests carry claims for student s1 unless claims is nil.
func studentRouter(claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.WithResponseMeta())
	router.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	})
	return router
}

func student() *models.JWTClaims {
	return &models.JWTClaims{UserID: "s1", Gender: "female"}
}

func perform(t *testing.T, router *gin.Engine, method, target string, body interface{}) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope responseEnvelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	}
	return rec, envelope
}

func decodeData(t *testing.T, envelope responseEnvelope, dest interface{}) {
	t.Helper()
	require.NotEmpty(t, envelope.Data)
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

