// Package httpserver provides the HTTP server for the endpointauth demo.
//
// It mounts the Connect WhoAmI procedure behind the token interceptor,
// plus health and Prometheus endpoints, on a net/http mux wrapped in
// request-id, access-log and panic-recovery middleware.
package httpserver
