package types

import (
	"fmt"
	"net/url"
	"strconv"
)

// Request represents a single listing page to be fetched.
type Request struct {
	// URL is the target URL to fetch.
	URL *url.URL

	// Page is the zero-based listing page index, or -1 for the base page.
	Page int
}

// NewRequest creates a Request for the base listing URL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	return &Request{
		URL:  u,
		Page: -1,
	}, nil
}

// NewPageRequest creates a Request for listing page n of baseURL.
// The page index is carried in the "page" query parameter; any other
// query parameters on baseURL are preserved.
func NewPageRequest(baseURL string, page int) (*Request, error) {
	req, err := NewRequest(baseURL)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()
	req.Page = page
	return req, nil
}

// URLString returns the string representation of the request URL.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}
