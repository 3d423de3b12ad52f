// Package transport is the HTTP client used by the browser binding.
//
// Structure:
//
//	client.go     - HTTP client with rate limiting, retry and request ids
//	auth.go       - Authentication strategies (Basic, Bearer), token expiry
//	errors.go     - Status classes and mapping of error responses to CMIS errors
//	metrics.go    - Prometheus request metrics
//	paginator.go  - skipCount/maxItems paging
package transport
