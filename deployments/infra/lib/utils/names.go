package utils

import (
	"strings"

	"github.com/aws/constructs-go/constructs/v10"
)

// RenderName derives a physical resource name from the construct path of
// scope, e.g. "Kellendonk-Dev-Stack-Website-ViewerRequestFn".
func RenderName(scope constructs.Construct, name string) string {
	parts := strings.Split(*scope.Node().Path(), "/")
	return strings.Join(append(parts, name), "-")
}
