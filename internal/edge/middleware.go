package edge

import (
	"net/http"
	"strings"
)

// RequestFromHTTP converts r into a viewer request. Header names are
// lower-cased and only the first value of each header is kept. The uri keeps
// its percent-encoding and drops the query string, matching CloudFront.
func RequestFromHTTP(r *http.Request) Request {
	headers := make(Headers, len(r.Header)+1)
	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		headers[strings.ToLower(name)] = Header{Value: values[0]}
	}
	if r.Host != "" {
		headers[HeaderHost] = Header{Value: r.Host}
	}

	return Request{URI: r.URL.EscapedPath(), Headers: headers}
}

// Middleware applies t to every request before it reaches next. Redirects are
// answered directly; pass-through requests continue with the headers the
// transformer added or changed.
func Middleware(t Transformer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			in := RequestFromHTTP(r)
			switch d := t.Transform(in).(type) {
			case Redirect:
				w.Header().Set("Location", d.Location)
				w.WriteHeader(d.StatusCode)
			case PassThrough:
				for name, h := range d.Request.Headers {
					if prev, ok := in.Headers.Get(name); ok && prev == h {
						continue
					}
					if name == HeaderHost {
						r.Host = h.Value
						continue
					}
					r.Header.Set(name, h.Value)
				}
				next.ServeHTTP(w, r)
			default:
				http.Error(w, "unsupported edge decision", http.StatusInternalServerError)
			}
		})
	}
}
