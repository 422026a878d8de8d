package cli

import (
	"fmt"

	"github.com/brentdax/heroku-certs/internal/command"
	"github.com/brentdax/heroku-certs/internal/config"
	"github.com/brentdax/heroku-certs/internal/deploy"
	"github.com/brentdax/heroku-certs/internal/errors"
	"github.com/brentdax/heroku-certs/internal/git"
	"github.com/brentdax/heroku-certs/internal/heroku"
	"github.com/brentdax/heroku-certs/internal/input"
	"github.com/spf13/cobra"
)

// Package-level dependencies (can be overridden for testing)
var (
	env   config.Env
	stdin input.Reader = input.NewStdinReader()
)

// SetEnv supplies the parsed process environment. Called once by main
// before Execute.
func SetEnv(e config.Env) {
	env = e
}

// newRunner builds a process runner carrying the sudo re-wrap identity.
func newRunner() *command.Runner {
	return command.NewRunner(command.WithSudoUser(env.SudoUser))
}

// loadSettings merges the config file with any flags the user set on
// this invocation. Flags win only when explicitly changed, so a config
// file value survives the flag's built-in default.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = rootDir
	}
	if cmd.Flags().Changed("remote") {
		cfg.Remote = remoteName
	}
	if cmd.Flags().Changed("branch") {
		cfg.Branch = branchName
	}
	return cfg, nil
}

// newDeployer assembles the deployment pipeline on a fresh runner.
func newDeployer(cfg *config.Config, waiter deploy.Waiter) *deploy.Deployer {
	return deploy.NewDeployer(deploy.Config{
		Root:    cfg.Root,
		Remote:  cfg.Remote,
		Branch:  cfg.Branch,
		DryRun:  dryRun,
		Staging: staging,
	}, git.NewClient(newRunner(), dryRun), waiter)
}

// resolveApp returns an API handle on the target app. The API token
// comes from HEROKU_API_KEY when set, otherwise from the logged-in
// toolbelt; the app name comes from --app, otherwise from the git
// remote via "heroku apps:info".
func resolveApp(cfg *config.Config) (*heroku.App, error) {
	toolbelt := heroku.NewCLI(newRunner())

	token := env.HerokuAPIKey
	if token == "" {
		if !toolbelt.IsInstalled() {
			return nil, errors.ErrHerokuNotInstalled
		}
		var err error
		token, err = toolbelt.AuthToken()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve API token: %w", err)
		}
	}

	name := appName
	if name == "" {
		if !toolbelt.IsInstalled() {
			return nil, errors.ErrHerokuNotInstalled
		}
		var err error
		name, err = toolbelt.AppName(cfg.Remote)
		if err != nil {
			return nil, err
		}
	}

	return heroku.NewClient(token).App(name, dryRun), nil
}
