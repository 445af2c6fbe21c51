// Package handler implements the endpointauth demo endpoints: the
// Connect WhoAmI procedure and the health probes.
package handler
