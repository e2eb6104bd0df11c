package main

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/kellendonk/webv2/deployments/infra/config"
	"github.com/kellendonk/webv2/deployments/infra/config/stages"
	"github.com/kellendonk/webv2/deployments/infra/lib/utils"
	"github.com/kellendonk/webv2/deployments/infra/stacks"
)

func main() {
	defer jsii.Close()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	app := awscdk.NewApp(nil)

	vars, err := config.GetEnvironmentVariables[config.AppEnvironmentVariables]()
	if err != nil {
		logger.Fatal("reading environment", zap.Error(err))
	}

	stagesPath := config.StagesConfigPath(app)
	cfg, err := stages.LoadConfigOrDefault(stagesPath)
	if err != nil {
		logger.Fatal("loading stages", zap.String("path", stagesPath), zap.Error(err))
	}
	logger.Info("loaded stages", zap.String("path", stagesPath), zap.Strings("stages", cfg.Names()))

	for _, stage := range cfg.Stages {
		distDir := webDistDir(stage.WebDistDir, vars.WebDistDir)
		logger.Info("adding stage",
			zap.String("stage", stage.Name),
			zap.String("distDir", distDir),
			zap.Bool("customDomain", stage.DomainName != nil),
		)

		stacks.NewKellendonkStage(app, stage.Name, &stacks.KellendonkStageProps{
			StageProps: awscdk.StageProps{
				Env: vars.Environment(),
			},
			DomainName:         stage.DomainName,
			IdentityDomainName: stage.IdentityDomainName,
			WebDistDir:         distDir,
		})
	}

	app.Synth(nil)
}

// webDistDir picks the stage override over the environment default and
// anchors relative paths at the project root.
func webDistDir(stageDir, defaultDir string) string {
	dir := defaultDir
	if stageDir != "" {
		dir = stageDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return utils.ProjectPath(dir)
}
