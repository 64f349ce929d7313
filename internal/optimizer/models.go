package optimizer

import (
	"net/http"

	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
)

// HealthMessage is returned for every GET request.
const HealthMessage = "✅ Depop AI Bot (Groq) is running!"

// Listing is the product metadata posted by the client. Absent fields decode
// to the empty string.
type Listing struct {
	Title string `json:"title"`
	Brand string `json:"brand"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

// Request is a transport-independent view of an inbound invocation.
type Request struct {
	Method string
	Body   []byte
}

// Response is the status code and JSON body to send back. Body is always one of
// HealthBody, SuccessBody or *apierrors.APIError.
type Response struct {
	StatusCode int
	Body       any
}

// HealthBody is the GET response body.
type HealthBody struct {
	Message string `json:"message"`
}

// SuccessBody is the body of a successful optimization.
type SuccessBody struct {
	Success         bool   `json:"success"`
	OptimizedOutput string `json:"optimized_output"`
}

func healthResponse() Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       HealthBody{Message: HealthMessage},
	}
}

func successResponse(output string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       SuccessBody{Success: true, OptimizedOutput: output},
	}
}

func failureResponse(status int, message string) Response {
	return Response{
		StatusCode: status,
		Body:       apierrors.NewAPIError(message),
	}
}
