package cli

import (
	"os"

	"github.com/brentdax/heroku-certs/internal/logger"
	"github.com/spf13/cobra"
)

var (
	rootDir    string
	remoteName string
	branchName string
	appName    string
	dryRun     bool
	staging    bool
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "heroku-certs",
	Short: "Let's Encrypt certificates for Heroku apps",
	Long: `heroku-certs manages Let's Encrypt certificates for Heroku apps.

It publishes HTTP-01 challenge files by committing them to your working
copy and pushing to the app's git remote, waits for the live site to
serve them, and installs the issued certificate on the app's SSL
endpoint.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "public", "Directory challenge files are written under")
	rootCmd.PersistentFlags().StringVar(&remoteName, "remote", "heroku", "Git remote to push to for deployment")
	rootCmd.PersistentFlags().StringVar(&branchName, "branch", "master", "Branch required to be checked out")
	rootCmd.PersistentFlags().StringVarP(&appName, "app", "H", "", "Heroku app name (default: resolved from the git remote)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Skip git and API mutations; log what would run")
	rootCmd.PersistentFlags().BoolVar(&staging, "staging", false, "Treat this run as testing only")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
