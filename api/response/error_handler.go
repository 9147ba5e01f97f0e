package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "ddd-order/application/order"
	"ddd-order/domain/shared"
	apperrors "ddd-order/pkg/errors"
)

// statusByCode is the complete code-to-status table. Anything not listed is a
// server fault.
var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.CodeValidation:        http.StatusBadRequest,
	apperrors.CodeCurrencyMismatch:  http.StatusBadRequest,
	apperrors.CodeOrderNotFound:     http.StatusNotFound,
	apperrors.CodeProductNotFound:   http.StatusNotFound,
	apperrors.CodeInvalidOrderState: http.StatusConflict,
	apperrors.CodeConcurrentModify:  http.StatusConflict,
	apperrors.CodeConflict:          http.StatusConflict,
	apperrors.CodeInternal:          http.StatusInternalServerError,
}

// Error classifies err, writes the envelope with the mapped status, and logs
// server faults with their capture-site stack when one is available.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	appErr := classify(err)

	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		fields := []zap.Field{zap.Error(err)}
		var stacker shared.Stacker
		if errors.As(err, &stacker) {
			fields = append(fields, zap.Strings("stack", stacker.Stack()))
		}
		logger.Error("request failed", fields...)
	}

	c.JSON(status, Envelope{
		Success: false,
		Code:    string(appErr.Code),
		Message: appErr.Message,
	})
}

func classify(err error) *apperrors.AppError {
	if errors.Is(err, apporder.ErrProductNotFound) {
		return apperrors.Wrap(apperrors.CodeProductNotFound, err.Error(), err)
	}
	return apperrors.FromDomainError(err)
}
