package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/brentdax/heroku-certs/internal/input"
	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/spf13/cobra"
)

var (
	installCert string
	installKey  string
	assumeYes   bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a certificate on the app's SSL endpoint",
	Long: `Replace the certificate and private key on the app's SSL endpoint.

The app must have exactly one SSL endpoint; the swap is refused
otherwise. The replacement cannot be undone, so a confirmation prompt
is shown unless --yes is given.

Examples:
  heroku-certs install --cert fullchain.pem --key privkey.pem
  heroku-certs install --cert fullchain.pem --key privkey.pem --yes`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installCert, "cert", "", "Path to the certificate chain (required)")
	installCmd.Flags().StringVar(&installKey, "key", "", "Path to the private key (required)")
	installCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	installCmd.MarkFlagRequired("cert")
	installCmd.MarkFlagRequired("key")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	certificate, err := os.ReadFile(installCert)
	if err != nil {
		return fmt.Errorf("failed to read certificate: %w", err)
	}
	key, err := os.ReadFile(installKey)
	if err != nil {
		return fmt.Errorf("failed to read private key: %w", err)
	}

	app, err := resolveApp(cfg)
	if err != nil {
		return err
	}

	if !assumeYes && !dryRun {
		output.Warn("This will replace the SSL certificate on %s and cannot be undone.", app.Name)
		output.Print("Continue? [y/N] ")
		confirmed, err := input.Confirm(stdin)
		if err != nil {
			return err
		}
		if !confirmed {
			output.Info("Aborted")
			return nil
		}
	}

	if err := app.UpdateCertificate(context.Background(), key, certificate); err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"success": true,
			"app":     app.Name,
		})
	}
	output.Success("Certificate installed on %s", app.Name)
	return nil
}
