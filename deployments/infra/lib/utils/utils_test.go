package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellendonk/webv2/deployments/infra/lib/utils"
)

func TestRenderName(t *testing.T) {
	app := awscdk.NewApp(nil)
	stage := awscdk.NewStage(app, jsii.String("Kellendonk-Dev"), nil)
	stack := awscdk.NewStack(stage, jsii.String("Stack"), nil)
	origin := constructs.NewConstruct(stack, jsii.String("WebsiteCdnOrigin"))

	assert.Equal(t, "Kellendonk-Dev-Stack-WebsiteCdnOrigin-ViewerRequestFn", utils.RenderName(origin, "ViewerRequestFn"))
}

func TestGetProjectRootDir(t *testing.T) {
	root := utils.GetProjectRootDir()

	_, err := os.Stat(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cmd", "guestbook-resolver"), utils.ProjectPath("cmd", "guestbook-resolver"))
}

func TestGetProjectRootDir_Override(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/webv2/")

	assert.Equal(t, "/srv/webv2", utils.GetProjectRootDir())
}
