package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/eternisai/listing-optimizer/internal/config"
	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/eternisai/listing-optimizer/internal/optimizer"
	"github.com/eternisai/listing-optimizer/internal/server"
)

// eventHandler adapts API Gateway proxy events to the optimizer handler.
type eventHandler struct {
	optimizer *optimizer.Handler
	logger    *logger.Logger
}

func (h *eventHandler) handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = logger.GenerateRequestID()
	}
	ctx = logger.WithRequestID(ctx, requestID)

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			h.logger.LogError(ctx, err, "failed to decode request body")
			return jsonResponse(http.StatusInternalServerError, requestID, apierrors.NewAPIError(err.Error()))
		}
		body = decoded
	}

	resp := h.optimizer.Handle(ctx, optimizer.Request{
		Method: event.HTTPMethod,
		Body:   body,
	})

	return jsonResponse(resp.StatusCode, requestID, resp.Body)
}

func jsonResponse(status int, requestID string, body any) (events.APIGatewayProxyResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("encode response: %w", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":         "application/json",
			logger.RequestIDHeader: requestID,
		},
		Body: string(encoded),
	}, nil
}

func main() {
	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))
	if cfg.GroqAPIKey == "" {
		appLogger.Warn("GROQ_API_KEY is not set, optimization requests will fail")
	}

	h := &eventHandler{
		optimizer: server.NewOptimizerHandler(cfg, appLogger, nil),
		logger:    appLogger.WithComponent("lambda"),
	}

	lambda.Start(h.handle)
}
