// Package renderer renders the embedded templates under templates/ with sprig
// functions.
//
// Two kinds of code are produced here: the JavaScript bodies of CloudFront
// Functions, which carry the viewer-request rules of internal/edge, and the
// AppSync VTL mapping templates of the GraphQL API.
//
// Example:
//
//	code, err := renderer.WebsiteViewerRequest(edge.Config{
//	    WebsiteHash:   website.Hash(),
//	    PrimaryDomain: "www.kellendonk.ca",
//	})
//	if err != nil { return err }
//	fn := awscloudfront.NewFunction(scope, jsii.String("ViewerRequestFn"), &awscloudfront.FunctionProps{
//	    Code: awscloudfront.FunctionCode_FromInline(jsii.String(code)),
//	})
package renderer
