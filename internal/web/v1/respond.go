package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/logger"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
	"github.com/duynhne/catalog-service/middleware"
)

const msgInvalidBody = "Cuerpo de la solicitud inválido"

// failure is how one endpoint words its errors to the client.
type failure struct {
	notFound string
	conflict string
	noChange string
	internal string
}

// write maps a logic error to its status and message. Internal details stay
// in the log.
func (f failure) write(ctx context.Context, c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)

	status, msg := f.classify(err)
	event := logger.FromContext(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromContext(ctx).Error()
	}
	event.Err(err).Int("status", status).Msg("Request failed")

	c.JSON(status, gin.H{"error": msg})
}

func (f failure) classify(err error) (int, string) {
	var verr *logicv1.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, logicv1.ErrNotFound):
		return http.StatusNotFound, f.notFound
	case errors.Is(err, logicv1.ErrConflict):
		return http.StatusConflict, f.conflict
	case errors.Is(err, logicv1.ErrNoChange):
		return http.StatusBadRequest, f.noChange
	case errors.Is(err, logicv1.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales inválidas"
	case errors.Is(err, logicv1.ErrTokenExpired):
		return http.StatusUnauthorized, "El token ha expirado"
	case errors.Is(err, logicv1.ErrTokenInvalid):
		return http.StatusUnauthorized, "Token inválido"
	default:
		return http.StatusInternalServerError, f.internal
	}
}

func startSpan(c *gin.Context) (context.Context, trace.Span) {
	return middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(ctx context.Context, c *gin.Context, span trace.Span, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		span.RecordError(err)
		logger.FromContext(ctx).Warn().Err(err).Msg("Invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return false
	}
	span.SetAttributes(attribute.Bool("request.valid", true))
	return true
}

// pathID reads :id. Ids that are not positive integers name no resource, so
// they answer 404 with the endpoint's not-found message.
func pathID(c *gin.Context, f failure) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": f.notFound})
		return 0, false
	}
	return id, true
}
