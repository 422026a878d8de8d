package cli

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"

	"github.com/brentdax/heroku-certs/internal/challenge"
	"github.com/brentdax/heroku-certs/internal/deploy"
	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/go-acme/lego/v4/certificate"
	"github.com/go-acme/lego/v4/lego"
	"github.com/go-acme/lego/v4/registration"
	"github.com/spf13/cobra"
)

var (
	obtainEmail   string
	obtainDomains []string
	certOut       string
	keyOut        string
	obtainInstall bool
)

var obtainCmd = &cobra.Command{
	Use:   "obtain",
	Short: "Obtain a Let's Encrypt certificate for the app's domains",
	Long: `Run the full issuance workflow: enumerate the app's custom domains,
answer the HTTP-01 challenges by deploying them through git, and write
the issued certificate and private key to disk.

With --install the certificate is also installed on the app's SSL
endpoint. With --staging the Let's Encrypt staging environment is used,
which issues untrusted certificates without burning rate limits.

Examples:
  heroku-certs obtain --email admin@example.com
  heroku-certs obtain --email admin@example.com --domain www.example.com --install`,
	RunE: runObtain,
}

func init() {
	obtainCmd.Flags().StringVarP(&obtainEmail, "email", "e", "", "Email address for the ACME account (required)")
	obtainCmd.Flags().StringArrayVar(&obtainDomains, "domain", nil, "Domain to include (repeatable; default: the app's custom domains)")
	obtainCmd.Flags().StringVar(&certOut, "cert-out", "fullchain.pem", "Where to write the certificate chain")
	obtainCmd.Flags().StringVar(&keyOut, "key-out", "privkey.pem", "Where to write the private key")
	obtainCmd.Flags().BoolVar(&obtainInstall, "install", false, "Install the certificate on the app's SSL endpoint")
	obtainCmd.Flags().DurationVar(&pollInterval, "poll-interval", challenge.DefaultPollInterval, "Delay between validation polls")
	obtainCmd.Flags().IntVar(&httpPort, "http-port", 0, "Port to poll the live site on (default 80)")
	obtainCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(obtainCmd)
}

// accountUser is the ACME account identity for one issuance run. The
// account key is generated fresh each time; nothing is persisted.
type accountUser struct {
	email        string
	registration *registration.Resource
	key          crypto.PrivateKey
}

func (u *accountUser) GetEmail() string                        { return u.email }
func (u *accountUser) GetRegistration() *registration.Resource { return u.registration }
func (u *accountUser) GetPrivateKey() crypto.PrivateKey        { return u.key }

func runObtain(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	app, err := resolveApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	domains := obtainDomains
	if len(domains) == 0 {
		domains, err = app.CustomDomains(ctx)
		if err != nil {
			return err
		}
	}
	if len(domains) == 0 {
		return fmt.Errorf("the app %s has no custom domains to obtain a certificate for", app.Name)
	}

	accountKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate account key: %w", err)
	}
	user := &accountUser{email: obtainEmail, key: accountKey}

	legoCfg := lego.NewConfig(user)
	legoCfg.Certificate.KeyType = certcrypto.RSA2048
	if staging {
		legoCfg.CADirURL = lego.LEDirectoryStaging
	} else {
		legoCfg.CADirURL = lego.LEDirectoryProduction
	}

	client, err := lego.NewClient(legoCfg)
	if err != nil {
		return fmt.Errorf("failed to create ACME client: %w", err)
	}

	verifier := challenge.NewVerifier()
	verifier.Interval = pollInterval
	verifier.Port = httpPort

	deployer := newDeployer(cfg, verifier)
	if err := client.Challenge.SetHTTP01Provider(deploy.NewHTTP01Provider(ctx, deployer)); err != nil {
		return err
	}

	reg, err := client.Registration.Register(registration.RegisterOptions{TermsOfServiceAgreed: true})
	if err != nil {
		return fmt.Errorf("failed to register ACME account: %w", err)
	}
	user.registration = reg

	output.Info("Obtaining certificate for %v...", domains)
	certs, err := client.Certificate.Obtain(certificate.ObtainRequest{
		Domains: domains,
		Bundle:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to obtain certificate: %w", err)
	}

	if err := os.WriteFile(certOut, certs.Certificate, 0o644); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(keyOut, certs.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	if obtainInstall {
		output.Info("Installing certificate on %s...", app.Name)
		if err := app.UpdateCertificate(ctx, certs.PrivateKey, certs.Certificate); err != nil {
			return err
		}
	}

	if jsonOutput {
		return output.JSON(map[string]interface{}{
			"success":   true,
			"domains":   domains,
			"cert_path": certOut,
			"key_path":  keyOut,
			"installed": obtainInstall,
		})
	}

	output.Success("Certificate obtained for %v", domains)
	output.Print("  Certificate: %s", certOut)
	output.Print("  Private Key: %s", keyOut)
	if obtainInstall {
		output.Success("Certificate installed on %s", app.Name)
	}
	return nil
}
