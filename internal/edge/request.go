// Package edge evaluates CloudFront viewer-request rules in Go.
//
// A Transformer receives the request of a viewer-request event and returns a
// Decision: either the request to forward (PassThrough) or a response to send
// back to the viewer (Redirect). The same rules are rendered into CloudFront
// Functions by deployments/infra/scripts/renderer, and the local edge emulator
// applies them to net/http traffic through Middleware.
package edge

import "maps"

// Well-known header names, lower-cased the way CloudFront delivers them.
const (
	HeaderHost          = "host"
	HeaderLocation      = "location"
	HeaderWebsiteHash   = "x-website-hash"
	HeaderApiKey        = "x-api-key"
	HeaderAuthorization = "authorization"
)

// Header is a single-valued CloudFront header.
type Header struct {
	Value string `json:"value"`
}

// Headers maps lower-case header names to their value.
type Headers map[string]Header

// Get returns the header stored under name.
func (h Headers) Get(name string) (Header, bool) {
	v, ok := h[name]
	return v, ok
}

// Request is the request object of a viewer-request event.
type Request struct {
	URI     string  `json:"uri"`
	Headers Headers `json:"headers"`
}

// WithHeader returns a copy of the request with name set to value. The
// receiver's header map is left untouched.
func (r Request) WithHeader(name, value string) Request {
	headers := maps.Clone(r.Headers)
	if headers == nil {
		headers = Headers{}
	}
	headers[name] = Header{Value: value}

	return Request{URI: r.URI, Headers: headers}
}

// Event is the viewer-request event CloudFront hands to a function.
type Event struct {
	Request Request `json:"request"`
}
