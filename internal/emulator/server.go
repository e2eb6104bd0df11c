package emulator

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"

	"github.com/kellendonk/webv2/internal/edge"
)

// GraphqlPath is routed to the API origin, everything else to the website.
const GraphqlPath = "/graphql"

// NewHandler routes requests the way the CDN does, applying the website
// transformer to site traffic and the API key transformer to GraphQL.
func NewHandler(s Settings, logger *zap.Logger) (http.Handler, error) {
	website, err := edge.NewWebsiteTransformer(edge.Config{
		WebsiteHash:   s.WebsiteHash,
		PrimaryDomain: s.PrimaryDomain,
	})
	if err != nil {
		return nil, err
	}

	websiteProxy, err := newProxy(s.WebsiteOrigin, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", edge.Middleware(website)(websiteProxy))

	if s.ApiOrigin != "" {
		apiKey, err := edge.NewApiKeyTransformer(edge.ApiKeyConfig{ApiKey: s.ApiKey})
		if err != nil {
			return nil, err
		}
		apiProxy, err := newProxy(s.ApiOrigin, logger)
		if err != nil {
			return nil, err
		}
		mux.Handle(GraphqlPath, edge.Middleware(apiKey)(apiProxy))
	}

	return mux, nil
}

// newProxy forwards to origin, sending the origin's own host name like
// CloudFront does for custom origins.
func newProxy(origin string, logger *zap.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parsing origin %q: %w", origin, err)
	}

	log := logger.With(zap.String("origin", target.Host))
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("origin unavailable", zap.String("uri", r.URL.RequestURI()), zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
		},
	}, nil
}
