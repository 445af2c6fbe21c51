// Package main provides the entry point for endpointauth.
//
// The tool covers both sides of endpoint token authentication:
//
//   - Token generation, inspection and validation
//   - The demo server (Connect over HTTP, optional gRPC)
//   - A whoami client that calls the demo server with a token
//   - Configuration display and validation
//
// Usage:
//
//	endpointauth token generate --domain GLOBAL --identifier 0102030405
//	endpointauth -o json token validate 2500080112...
//	endpointauth serve --policy required --grpc-addr 127.0.0.1:5081
//	endpointauth whoami --server http://127.0.0.1:5080
package main
