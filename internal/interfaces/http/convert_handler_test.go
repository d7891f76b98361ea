package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subconv/internal/convert"
	"github.com/orris-inc/subconv/internal/emit/template"
	"github.com/orris-inc/subconv/internal/shared/logger"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, _ string) (string, error) { return "", nil }

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := convert.NewUseCase(stubFetcher{}, logger.NewLogger())
	tokens := newManagedTokenService("test-secret", 1)
	handler := newConvertHandler(uc, tokens, template.NewLoader(), slog.Default())

	engine := gin.New()
	engine.POST("/convert", handler.Convert)
	engine.POST("/managed", handler.Sign)
	engine.GET("/managed/:token", handler.ManagedConfig)
	return engine
}

func TestConvert_RestrictsToKnownTarget(t *testing.T) {
	engine := newTestEngine(t)

	body, _ := json.Marshal(convertRequest{
		Sources: []sourceRequest{{Group: "hk", Text: "ss://YWVzLTI1Ni1nY206cGFzcw==@hk.example.com:8388#hk-1"}},
		Target:  "nope",
	})
	req := httptest.NewRequest("POST", "/convert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, 400, rec.Code)
}

func TestConvert_EmitsRawLinksBundle(t *testing.T) {
	engine := newTestEngine(t)

	body, _ := json.Marshal(convertRequest{
		Sources: []sourceRequest{{Group: "hk", Text: "ss://YWVzLTI1Ni1nY206cGFzcw==@hk.example.com:8388#hk-1"}},
		Target:  "links",
	})
	req := httptest.NewRequest("POST", "/convert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	decoded, err := base64.StdEncoding.DecodeString(rec.Body.String())
	require.NoError(t, err)
	require.Contains(t, string(decoded), "ss://")
}

func TestManagedConfig_SignThenReplay(t *testing.T) {
	engine := newTestEngine(t)

	signBody, _ := json.Marshal(convertRequest{
		Sources: []sourceRequest{{Group: "hk", Text: "ss://YWVzLTI1Ni1nY206cGFzcw==@hk.example.com:8388#hk-1"}},
		Target:  "links",
	})
	signReq := httptest.NewRequest("POST", "/managed", bytes.NewReader(signBody))
	signReq.Header.Set("Content-Type", "application/json")
	signRec := httptest.NewRecorder()
	engine.ServeHTTP(signRec, signReq)
	require.Equal(t, 200, signRec.Code)

	var signed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(signRec.Body.Bytes(), &signed))
	require.NotEmpty(t, signed.Data.Token)

	replayReq := httptest.NewRequest("GET", "/managed/"+signed.Data.Token, nil)
	replayRec := httptest.NewRecorder()
	engine.ServeHTTP(replayRec, replayReq)

	require.Equal(t, 200, replayRec.Code)
	decoded, err := base64.StdEncoding.DecodeString(replayRec.Body.String())
	require.NoError(t, err)
	require.Contains(t, string(decoded), "ss://")
}
