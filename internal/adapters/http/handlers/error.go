package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

const unknownErrorMessage = "unknown error occurred"

// HandleError writes the envelope for err. Lookups that find nothing are a
// client mistake here, so NotFound maps to 400 like any invalid request.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		RespondError(c, mapKindToHTTP(svcErr.Kind), svcErr.Message)
		return
	}

	logger.Error(c.Request.Context(), "unhandled error", err, map[string]any{
		"http.route": c.FullPath(),
	})

	message := unknownErrorMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	RespondError(c, http.StatusInternalServerError, message)
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound, serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
