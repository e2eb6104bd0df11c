package stacks

var (
	NewStageResources = newStageResources
	CallbackUrls      = callbackUrls
)
