package handler

import "time"

// Response is the JSON envelope for the health endpoints.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// HealthStatus is the body of GET /healthz and GET /readyz.
type HealthStatus struct {
	Status  string `json:"status"`
	Policy  string `json:"policy"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
