package optimizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/eternisai/listing-optimizer/internal/logger"
)

// Handler dispatches an invocation by HTTP method. Every path, including a
// panic below it, produces a Response with a JSON body.
type Handler struct {
	service *Service
	logger  *logger.Logger
	metrics Recorder
}

// NewHandler creates a new listing optimizer handler.
func NewHandler(service *Service, logger *logger.Logger, metrics Recorder) *Handler {
	if metrics == nil {
		metrics = nopRecorder{}
	}

	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle serves a single invocation.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if recovered := recover(); recovered != nil {
			message := fmt.Sprint(recovered)
			h.logger.WithContext(ctx).Error("panic while handling request",
				slog.String("method", req.Method),
				slog.String("panic", message))
			h.metrics.ObserveError(ClassPanic)
			resp = failureResponse(http.StatusInternalServerError, message)
		}
		h.metrics.ObserveRequest(req.Method, resp.StatusCode)
	}()

	switch req.Method {
	case http.MethodGet:
		return healthResponse()
	case http.MethodPost:
		return h.optimize(ctx, req.Body)
	default:
		return failureResponse(http.StatusMethodNotAllowed, apierrors.MethodNotAllowedMessage)
	}
}

func (h *Handler) optimize(ctx context.Context, body []byte) Response {
	if !h.service.Configured() {
		return h.errorResponse(ctx, ErrMissingCredential)
	}

	var listing *Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return h.errorResponse(ctx, fmt.Errorf("%w: %w", ErrInvalidBody, err))
	}
	if listing == nil {
		return h.errorResponse(ctx, errNullBody)
	}

	output, err := h.service.Optimize(ctx, *listing)
	if err != nil {
		return h.errorResponse(ctx, err)
	}

	return successResponse(output)
}

func (h *Handler) errorResponse(ctx context.Context, err error) Response {
	class, status := Classify(err)
	h.metrics.ObserveError(class)

	log := h.logger.WithContext(ctx).WithComponent("optimizer")
	if status >= http.StatusInternalServerError {
		log.Error("optimization failed",
			slog.String("error_class", class),
			slog.String("error", err.Error()))
	} else {
		log.Warn("optimization rejected",
			slog.String("error_class", class),
			slog.String("error", err.Error()))
	}

	return failureResponse(status, err.Error())
}
