package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-scheduler/internal/application"
	"github.com/sanosuguru/go-event-scheduler/internal/domain/event"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ハンドラーが HTTPError に変換しなかったドメインエラーもここで振り分ける
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := statusOf(err)

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	var resErr error
	if c.Request().Method == http.MethodHead {
		resErr = c.NoContent(code)
	} else {
		resErr = c.JSON(code, ErrorResponse{Error: message, Code: code})
	}
	if resErr != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(resErr))
	}
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	case errors.Is(err, event.ErrEventNotFound):
		return http.StatusNotFound, event.ErrEventNotFound.Error()
	case event.IsValidationError(err), errors.Is(err, application.ErrInvalidSortKey):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "内部サーバーエラー"
	}
}
