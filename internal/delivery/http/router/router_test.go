package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"commerce-api/internal/config"
	"commerce-api/internal/delivery/http/handler"
	"commerce-api/internal/domain/entity"
	"commerce-api/internal/infrastructure/database"
	"commerce-api/internal/infrastructure/repository"
	"commerce-api/internal/logs"
	"commerce-api/internal/usecase"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type RouterTestSuite struct {
	suite.Suite
	db  *database.Database
	app *fiber.App
}

func (suite *RouterTestSuite) SetupTest() {
	logger := zap.NewNop()

	db, err := database.Open(config.DriverSQLite, ":memory:", logger)
	require.NoError(suite.T(), err)
	suite.db = db

	cfg := &config.Config{
		App:     config.AppConfig{Name: "commerce-api-test", Env: "test"},
		APILogs: config.APILogsConfig{Enabled: true, DefaultVersion: "v2", MaxRequestLength: 256},
	}

	logRepo := repository.NewAPIRequestLogRepository(db, logger)
	logUsecase := usecase.NewAPIRequestLogUsecase(logs.NewService(logRepo, logger), logRepo, logger)
	feeUsecase := usecase.NewFeeUsecase(repository.NewMemoryFeeSessionRepository(0), logger)

	r := NewRouter(cfg, logger, logUsecase,
		handler.NewHealthHandler(),
		handler.NewLogHandler(logUsecase, logger),
		handler.NewFeeHandler(feeUsecase, logger),
	)
	suite.app = r.Setup()
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *RouterTestSuite) do(method, target, body string) (int, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := suite.app.Test(req, -1)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(suite.T(), json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func (suite *RouterTestSuite) TestHealth() {
	status, env := suite.do(http.MethodGet, "/health", "")
	assert.Equal(suite.T(), http.StatusOK, status)
	assert.True(suite.T(), env.Success)
}

func (suite *RouterTestSuite) TestFeeFlow() {
	status, env := suite.do(http.MethodPost, "/api/v1/carts/s1/fees",
		`{"amount": 10, "label": "Shipping Fee", "id": "shipping_fee"}`)
	require.Equal(suite.T(), http.StatusCreated, status)

	var added map[string]entity.Fee
	require.NoError(suite.T(), json.Unmarshal(env.Data, &added))
	require.Len(suite.T(), added, 1)
	assert.True(suite.T(), added["shipping_fee"].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(suite.T(), "Shipping Fee", added["shipping_fee"].Label)

	status, _ = suite.do(http.MethodPost, "/api/v1/carts/s1/fees", `{"amount": "20", "label": "Tax", "id": "Tax"}`)
	require.Equal(suite.T(), http.StatusCreated, status)

	status, env = suite.do(http.MethodGet, "/api/v1/carts/s1/fees/shipping_fee", "")
	require.Equal(suite.T(), http.StatusOK, status)
	var fee entity.Fee
	require.NoError(suite.T(), json.Unmarshal(env.Data, &fee))
	assert.Equal(suite.T(), "Shipping Fee", fee.Label)

	status, env = suite.do(http.MethodGet, "/api/v1/carts/s1/fees/total", "")
	require.Equal(suite.T(), http.StatusOK, status)
	var total entity.FeeTotalResponse
	require.NoError(suite.T(), json.Unmarshal(env.Data, &total))
	assert.True(suite.T(), total.HasFees)
	assert.True(suite.T(), total.Total.Equal(decimal.NewFromInt(30)))

	status, _ = suite.do(http.MethodGet, "/api/v1/carts/s1/fees/missing", "")
	assert.Equal(suite.T(), http.StatusNotFound, status)

	status, _ = suite.do(http.MethodDelete, "/api/v1/carts/s1/fees", "")
	assert.Equal(suite.T(), http.StatusOK, status)

	status, env = suite.do(http.MethodGet, "/api/v1/carts/s1/fees", "")
	require.Equal(suite.T(), http.StatusOK, status)
	var left map[string]entity.Fee
	require.NoError(suite.T(), json.Unmarshal(env.Data, &left))
	assert.Empty(suite.T(), left)
}

func (suite *RouterTestSuite) TestAddFeeValidation() {
	status, _ := suite.do(http.MethodPost, "/api/v1/carts/s1/fees", `{"amount": 1}`)
	assert.Equal(suite.T(), http.StatusBadRequest, status)

	status, _ = suite.do(http.MethodPost, "/api/v1/carts/s1/fees", `not json`)
	assert.Equal(suite.T(), http.StatusBadRequest, status)

	status, _ = suite.do(http.MethodPost, "/api/v1/carts/s1/fees", `{"amount": "1", "label": "!!!"}`)
	assert.Equal(suite.T(), http.StatusBadRequest, status)
}

func (suite *RouterTestSuite) TestRequestsAreLogged() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/s2/fees?key=abc&token=def", nil)
	req.Header.Set("X-Api-Version", "v1")
	resp, err := suite.app.Test(req, -1)
	require.NoError(suite.T(), err)
	resp.Body.Close()

	status, env := suite.do(http.MethodGet, "/api/v1/logs?limit=10", "")
	require.Equal(suite.T(), http.StatusOK, status)

	var entries []entity.APIRequestLog
	require.NoError(suite.T(), json.Unmarshal(env.Data, &entries))
	require.Len(suite.T(), entries, 1)

	got := entries[0]
	assert.Equal(suite.T(), "abc", got.APIKey)
	assert.Equal(suite.T(), "def", got.Token)
	assert.Equal(suite.T(), "v1", got.Version)
	assert.Equal(suite.T(), "/api/v1/carts/s2/fees?key=abc&token=def", got.Request)
	assert.Empty(suite.T(), got.Error)
}

func (suite *RouterTestSuite) TestFailedRequestLogsError() {
	status, _ := suite.do(http.MethodGet, "/api/v1/logs/999", "")
	require.Equal(suite.T(), http.StatusNotFound, status)

	_, env := suite.do(http.MethodGet, "/api/v1/logs", "")
	var entries []entity.APIRequestLog
	require.NoError(suite.T(), json.Unmarshal(env.Data, &entries))
	require.NotEmpty(suite.T(), entries)

	// Newest first, the listing request itself is logged after it is served
	failed := entries[0]
	assert.Equal(suite.T(), "/api/v1/logs/999", failed.Request)
	assert.Equal(suite.T(), "public", failed.APIKey)
	assert.Equal(suite.T(), "v2", failed.Version)
	assert.Contains(suite.T(), failed.Error, "Log not found")
}

func (suite *RouterTestSuite) TestLogCRUD() {
	suite.do(http.MethodGet, "/health", "")
	suite.do(http.MethodGet, "/api/v1/carts/s3/fees", "")

	_, env := suite.do(http.MethodGet, "/api/v1/logs", "")
	var entries []entity.APIRequestLog
	require.NoError(suite.T(), json.Unmarshal(env.Data, &entries))
	require.Len(suite.T(), entries, 1)
	id := entries[0].ID
	target := fmt.Sprintf("/api/v1/logs/%d", id)

	status, env := suite.do(http.MethodGet, target+"?view=post", "")
	require.Equal(suite.T(), http.StatusOK, status)
	var post map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &post))
	assert.Equal(suite.T(), "edd_log", post["post_type"])
	assert.Equal(suite.T(), "/api/v1/carts/s3/fees", post["post_excerpt"])

	status, env = suite.do(http.MethodPut, target, `{"user_id": 9, "error": "<b>revoked</b>"}`)
	require.Equal(suite.T(), http.StatusOK, status)
	var updated entity.APIRequestLog
	require.NoError(suite.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(suite.T(), int64(9), updated.UserID)
	assert.Equal(suite.T(), "revoked", updated.Error)

	status, _ = suite.do(http.MethodPut, target, `{"nothing": 1}`)
	assert.Equal(suite.T(), http.StatusBadRequest, status)

	status, _ = suite.do(http.MethodDelete, target, "")
	assert.Equal(suite.T(), http.StatusOK, status)

	status, _ = suite.do(http.MethodGet, target, "")
	assert.Equal(suite.T(), http.StatusNotFound, status)

	status, _ = suite.do(http.MethodGet, "/api/v1/logs/abc", "")
	assert.Equal(suite.T(), http.StatusBadRequest, status)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
