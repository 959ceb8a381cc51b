package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	storage Pinger
}

// NewHealthHandler はHealthHandlerを作成する
// storage が nil の場合はプロセスの生存のみ返す
func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Storage   string `json:"storage,omitempty" example:"ok"`
	Timestamp string `json:"timestamp" example:"10/19/2026, 09:00:00"`
}

// Check はヘルスチェックを行う
// @Summary ヘルスチェック
// @Description アプリケーションとストレージの健全性を確認する
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	res := HealthResponse{
		Status:    "ok",
		Timestamp: event.FormatTimestamp(time.Now()),
	}
	if h.storage == nil {
		return c.JSON(http.StatusOK, res)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		logger.Warn("ストレージのヘルスチェック失敗", zap.Error(err))
		res.Status = "degraded"
		res.Storage = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, res)
	}
	res.Storage = "ok"
	return c.JSON(http.StatusOK, res)
}
