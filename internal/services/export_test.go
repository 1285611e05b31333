// Test-only accessors for external tests in package services_test, which
// cannot live in package services without creating an import cycle through
// internal/testing.
package services

import "net/http"

// BaseURLOf exposes the configured base URL to external tests.
func BaseURLOf(c *APIClient) string { return c.baseURL }

// HTTPClientOf exposes the underlying HTTP client to external tests.
func HTTPClientOf(c *APIClient) *http.Client { return c.httpClient }
