package testutil

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

const (
	TestAccount = "123456789012"
	TestRegion  = "ca-central-1"
)

//---------------------------------------------------------------------
// 1. Stacks
//---------------------------------------------------------------------

// NewStack returns a fresh app and a stack pinned to the test environment.
func NewStack(t *testing.T) (awscdk.App, awscdk.Stack) {
	t.Helper()
	app := awscdk.NewApp(&awscdk.AppProps{
		// Skip asset bundling (Go Lambda builds) during synthesis.
		Context: &map[string]interface{}{
			"aws:cdk:bundling-stacks": []interface{}{},
		},
	})
	stack := awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(TestAccount),
			Region:  jsii.String(TestRegion),
		},
	})
	return app, stack
}

//---------------------------------------------------------------------
// 2. Asset fixtures
//---------------------------------------------------------------------

//go:embed Dockerfile.alpine
var alpineDockerfile string

// WebDistDir lays out a minimal Next.js build output: a Dockerfile for the
// server image and one static chunk under .next/static.
func WebDistDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	write("Dockerfile", alpineDockerfile)
	write(filepath.Join(".next", "static", "chunks", "main.js"), "console.log('main');\n")

	return dir
}
