package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"gallery-store/internal/apperr"
	"gallery-store/pkg/ctxmanage"
	"gallery-store/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// maxBodySize caps request bodies accepted by write endpoints.
const maxBodySize = 5 * 1024

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindOutOfStock, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindEmptyCart:
		return http.StatusUnprocessableEntity
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError logs err and writes the {"error", "kind"} body for it.
// Internal failures never leak their message to the caller.
func abortWithError(c *gin.Context, msg string, err error) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	kind := apperr.KindOf(err)

	body := gin.H{"error": http.StatusText(http.StatusInternalServerError), "kind": kind.String()}
	var appErr *apperr.Error
	if kind != apperr.KindInternal && errors.As(err, &appErr) {
		body["error"] = appErr.Message
	}

	if kind == apperr.KindInternal {
		slog.Error(msg, slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
	} else {
		slog.Warn(msg, slog.String(logkey.TraceID, traceId), slog.String(logkey.Kind, kind.String()),
			slog.String(logkey.ERROR, err.Error()))
	}
	c.AbortWithStatusJSON(statusOf(kind), body)
}

func abortInvalid(c *gin.Context, msg string) {
	abortWithError(c, "invalid request", apperr.NewInvalidInput(msg))
}

func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		abortInvalid(c, name+" must be a positive integer")
		return 0, false
	}
	return v, true
}

// bindJSON decodes and validates the request body into dst, aborting the
// request on failure.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength > maxBodySize {
		abortInvalid(c, "request body too large")
		return false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	if err := c.ShouldBindJSON(dst); err != nil {
		abortInvalid(c, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			vErr := vErrs[0]
			switch vErr.Tag() {
			case "required":
				abortInvalid(c, vErr.Field()+" value missing")
			case "min":
				abortInvalid(c, vErr.Field()+" value is less than "+vErr.Param())
			case "eqfield":
				abortInvalid(c, vErr.Field()+" must match "+vErr.Param())
			default:
				abortInvalid(c, vErr.Field()+" is invalid")
			}
			return false
		}
		abortInvalid(c, http.StatusText(http.StatusBadRequest))
		return false
	}
	return true
}
