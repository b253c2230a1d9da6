package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"commerce-api/internal/config"
	"commerce-api/internal/usecase"
)

// Header names checked when the key or token is not in the query string
const (
	HeaderAPIKey     = "X-Api-Key"
	HeaderAPIToken   = "X-Api-Token"
	HeaderAPIVersion = "X-Api-Version"
)

// RequestLog records every request passing through as an API request log.
// Failing to record never fails the request.
func RequestLog(cfg *config.Config, uc usecase.APIRequestLogUsecase, logger *zap.Logger) fiber.Handler {
	if !cfg.APILogs.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	maxLen := cfg.APILogs.MaxRequestLength

	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		var errMsg string
		if chainErr != nil {
			errMsg = chainErr.Error()
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		if errMsg == "" && status >= fiber.StatusBadRequest {
			errMsg = string(c.Response().Body())
		}

		// fiber reuses request buffers, values outliving the handler are copied
		entry := usecase.RequestEntry{
			APIKey:   utils.CopyString(firstNonEmpty(c.Query("key"), c.Get(HeaderAPIKey), "public")),
			Token:    utils.CopyString(firstNonEmpty(c.Query("token"), c.Get(HeaderAPIToken))),
			Version:  utils.CopyString(firstNonEmpty(c.Get(HeaderAPIVersion), cfg.APILogs.DefaultVersion)),
			Request:  utils.CopyString(truncate(c.OriginalURL(), maxLen)),
			Error:    utils.CopyString(truncate(errMsg, maxLen)),
			IP:       utils.CopyString(c.IP()),
			Duration: elapsed,
		}

		// The request context ends with the response
		if _, err := uc.Record(context.Background(), entry); err != nil {
			logger.Warn("API request was not logged",
				zap.String("request", entry.Request),
				zap.Error(err),
			)
		}

		return chainErr
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
