package edge

import (
	"encoding/json"
	"net/http"
)

// Decision is the outcome of a Transformer. It is either PassThrough or
// Redirect.
type Decision interface {
	decision()
}

// PassThrough forwards Request towards the origin.
type PassThrough struct {
	Request Request
}

func (PassThrough) decision() {}

// MarshalJSON encodes the decision as the request object CloudFront expects.
func (p PassThrough) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Request)
}

// Redirect answers the viewer without contacting an origin.
type Redirect struct {
	StatusCode        int
	StatusDescription string
	Location          string
}

func (Redirect) decision() {}

// NewRedirect returns a 302 Found redirect to location.
func NewRedirect(location string) Redirect {
	return Redirect{
		StatusCode:        http.StatusFound,
		StatusDescription: http.StatusText(http.StatusFound),
		Location:          location,
	}
}

type redirectResponse struct {
	StatusCode        int     `json:"statusCode"`
	StatusDescription string  `json:"statusDescription"`
	Headers           Headers `json:"headers"`
}

// MarshalJSON encodes the decision as a CloudFront response object.
func (r Redirect) MarshalJSON() ([]byte, error) {
	return json.Marshal(redirectResponse{
		StatusCode:        r.StatusCode,
		StatusDescription: r.StatusDescription,
		Headers:           Headers{HeaderLocation: {Value: r.Location}},
	})
}
