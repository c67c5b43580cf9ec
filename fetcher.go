package seoedit

import (
	"context"
	"regexp"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single request for the URL and returns the body.
	// Returns EFETCH on transport failures, timeouts and non-2xx responses.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

var urlPattern = regexp.MustCompile(`^https?://.+`)

// ValidateURL returns EINVALID unless rawURL starts with http:// or https://
// and has something after the scheme.
func ValidateURL(rawURL string) error {
	if !urlPattern.MatchString(rawURL) {
		return Errorf(EINVALID, "Invalid URL format")
	}
	return nil
}
