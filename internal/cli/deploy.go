package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/brentdax/heroku-certs/internal/challenge"
	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/spf13/cobra"
)

var (
	deployDomains  []string
	deployTokens   []string
	deployKeyAuths []string
	pollInterval   time.Duration
	httpPort       int
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Publish HTTP-01 challenge files to the app",
	Long: `Commit HTTP-01 challenge files to the working copy, push them to the
app's git remote, and wait until the live site serves them.

Challenges come from the --domain/--token/--key-auth flags (repeat the
trio once per challenge) or, when run as a certbot manual hook, from
the CERTBOT_DOMAIN, CERTBOT_TOKEN, and CERTBOT_VALIDATION environment
variables.

Examples:
  heroku-certs deploy --domain example.com --token abc --key-auth abc.xyz
  CERTBOT_DOMAIN=example.com CERTBOT_TOKEN=abc CERTBOT_VALIDATION=abc.xyz heroku-certs deploy`,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringArrayVar(&deployDomains, "domain", nil, "Domain being validated (repeatable)")
	deployCmd.Flags().StringArrayVar(&deployTokens, "token", nil, "Challenge token (repeatable)")
	deployCmd.Flags().StringArrayVar(&deployKeyAuths, "key-auth", nil, "Key authorization payload (repeatable)")
	deployCmd.Flags().DurationVar(&pollInterval, "poll-interval", challenge.DefaultPollInterval, "Delay between validation polls")
	deployCmd.Flags().IntVar(&httpPort, "http-port", 0, "Port to poll the live site on (default 80)")

	rootCmd.AddCommand(deployCmd)
}

type deployResultItem struct {
	Domain    string `json:"domain"`
	Token     string `json:"token"`
	Validated bool   `json:"validated"`
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	challenges, err := gatherChallenges()
	if err != nil {
		return err
	}

	verifier := challenge.NewVerifier()
	verifier.Interval = pollInterval
	verifier.Port = httpPort

	deployer := newDeployer(cfg, verifier)

	// Ctrl-C during the validation wait skips it rather than failing.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := deployer.Perform(ctx, challenges)
	if err != nil {
		return err
	}

	items := make([]deployResultItem, 0, len(results))
	for _, res := range results {
		items = append(items, deployResultItem{
			Domain:    res.Challenge.Domain,
			Token:     res.Challenge.Token,
			Validated: res.Validated,
		})
	}

	if jsonOutput {
		return output.JSON(items)
	}
	for _, item := range items {
		if item.Validated {
			output.Success("Challenge for %s validated", item.Domain)
		} else {
			output.Warn("Challenge for %s deployed but not confirmed", item.Domain)
		}
	}
	return nil
}

// gatherChallenges builds the challenge set from flags, falling back to
// the certbot hook environment when no flags were given.
func gatherChallenges() ([]challenge.Challenge, error) {
	if len(deployDomains) > 0 || len(deployTokens) > 0 || len(deployKeyAuths) > 0 {
		if len(deployDomains) != len(deployTokens) || len(deployTokens) != len(deployKeyAuths) {
			return nil, fmt.Errorf("--domain, --token, and --key-auth must be given the same number of times")
		}
		challenges := make([]challenge.Challenge, 0, len(deployDomains))
		for i := range deployDomains {
			challenges = append(challenges, challenge.Challenge{
				Domain:  deployDomains[i],
				Token:   deployTokens[i],
				KeyAuth: deployKeyAuths[i],
			})
		}
		return challenges, nil
	}

	if env.CertbotDomain != "" && env.CertbotToken != "" && env.CertbotValidation != "" {
		return []challenge.Challenge{{
			Domain:  env.CertbotDomain,
			Token:   env.CertbotToken,
			KeyAuth: env.CertbotValidation,
		}}, nil
	}

	return nil, fmt.Errorf("no challenges given: pass --domain/--token/--key-auth or set the CERTBOT_* environment variables")
}
