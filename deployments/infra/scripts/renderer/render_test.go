//go:generate go test -run . -update
package renderer_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellendonk/webv2/deployments/infra/scripts/renderer"
	"github.com/kellendonk/webv2/internal/edge"
)

func TestWebsiteViewerRequest_Golden(t *testing.T) {
	tests := []struct {
		golden string
		cfg    edge.Config
	}{
		{golden: "website_viewer_request", cfg: edge.Config{WebsiteHash: "FAKE_HASH", PrimaryDomain: "www.example.com"}},
		{golden: "website_viewer_request_no_domain", cfg: edge.Config{WebsiteHash: "FAKE_HASH"}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			got, err := renderer.WebsiteViewerRequest(tt.cfg)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.golden, []byte(got))
		})
	}
}

func TestWebsiteViewerRequest_OmitsUnsetDomain(t *testing.T) {
	got, err := renderer.WebsiteViewerRequest(edge.Config{WebsiteHash: "FAKE_HASH"})
	require.NoError(t, err)

	assert.Contains(t, got, `var props = {"websiteHash":"FAKE_HASH"};`)
	assert.NotContains(t, got, `"primaryDomain"`)
}

func TestApiKeyViewerRequest_Golden(t *testing.T) {
	got, err := renderer.ApiKeyViewerRequest(edge.ApiKeyConfig{ApiKey: "da2-fakekey"})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "api_key_viewer_request", []byte(got))
}

func TestMappingTemplates_Golden(t *testing.T) {
	tests := []struct {
		golden string
		name   renderer.TemplateName
		data   any
	}{
		{golden: "get_interactions_request", name: renderer.TplGetInteractionsRequest, data: renderer.DefaultInteractionKeys},
		{golden: "add_interaction_request", name: renderer.TplAddInteractionRequest, data: renderer.DefaultInteractionKeys},
		{golden: "auth_info_response", name: renderer.TplAuthInfoResponse, data: renderer.AuthInfoData{
			Authority: "https://cognito-idp.ca-central-1.amazonaws.com/ca-central-1_example",
			ClientId:  "4example",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			got, err := renderer.Render(tt.name, tt.data)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.golden, []byte(got))
		})
	}
}

func TestRender_StaticTemplates(t *testing.T) {
	for _, name := range []renderer.TemplateName{
		renderer.TplGetInteractionsResponse,
		renderer.TplAddInteractionResponse,
		renderer.TplAuthInfoRequest,
	} {
		got, err := renderer.Render(name, nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, got, name)
	}
}

func TestRender_Errors(t *testing.T) {
	_, err := renderer.Render("missing.tmpl", nil)
	require.ErrorIs(t, err, renderer.ErrUnknownTemplate)

	_, err = renderer.Render(renderer.TplAuthInfoResponse, map[string]string{})
	require.Error(t, err)

	assert.Panics(t, func() { renderer.MustRender("missing.tmpl", nil) })
}
