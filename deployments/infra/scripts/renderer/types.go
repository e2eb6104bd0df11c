package renderer

// TemplateName represents a known template filename.
type TemplateName string

// CloudFront Function bodies.
const (
	TplWebsiteViewerRequest TemplateName = "website_viewer_request.js.tmpl"
	TplApiKeyViewerRequest  TemplateName = "api_key_viewer_request.js.tmpl"
)

// AppSync mapping templates.
const (
	TplGetInteractionsRequest  TemplateName = "query_get_interactions.request.vtl.tmpl"
	TplGetInteractionsResponse TemplateName = "query_get_interactions.response.vtl.tmpl"
	TplAddInteractionRequest   TemplateName = "mutation_add_interaction.request.vtl.tmpl"
	TplAddInteractionResponse  TemplateName = "mutation_add_interaction.response.vtl.tmpl"
	TplAuthInfoRequest         TemplateName = "query_auth_info.request.vtl.tmpl"
	TplAuthInfoResponse        TemplateName = "query_auth_info.response.vtl.tmpl"
)

// FunctionData holds the props JSON-encoded into a CloudFront Function.
type FunctionData struct {
	Props any
}

// InteractionKeysData holds the single-table key prefixes of interaction
// counters.
type InteractionKeysData struct {
	SubjectPrefix     string
	InteractionPrefix string
}

// DefaultInteractionKeys lays counters out as PK=SUBJECT#<subject>,
// SK=INTERACTION#<interaction>.
var DefaultInteractionKeys = InteractionKeysData{
	SubjectPrefix:     "SUBJECT#",
	InteractionPrefix: "INTERACTION#",
}

// AuthInfoData holds what the web client needs to start an OAuth login.
type AuthInfoData struct {
	Authority string
	ClientId  string
}
