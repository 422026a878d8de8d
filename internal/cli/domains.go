package cli

import (
	"context"
	"strings"

	"github.com/brentdax/heroku-certs/internal/heroku"
	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/spf13/cobra"
)

var domainsCustomOnly bool

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the app's domains",
	Long: `List the domains bound to the app.

Heroku's own *.herokuapp.com subdomains never need a certificate; use
--custom to hide them.

Examples:
  heroku-certs domains
  heroku-certs domains --custom --json`,
	RunE: runDomains,
}

func init() {
	domainsCmd.Flags().BoolVar(&domainsCustomOnly, "custom", false, "Only show custom domains")

	rootCmd.AddCommand(domainsCmd)
}

type domainListItem struct {
	Hostname string `json:"hostname"`
	Custom   bool   `json:"custom"`
}

func runDomains(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	app, err := resolveApp(cfg)
	if err != nil {
		return err
	}

	domains, err := app.Domains(context.Background())
	if err != nil {
		return err
	}

	items := make([]domainListItem, 0, len(domains))
	for _, d := range domains {
		custom := !strings.HasSuffix(d.Hostname, heroku.DefaultDomainSuffix)
		if domainsCustomOnly && !custom {
			continue
		}
		items = append(items, domainListItem{Hostname: d.Hostname, Custom: custom})
	}

	if jsonOutput {
		return output.JSON(items)
	}

	if len(items) == 0 {
		output.Info("No domains found for %s", app.Name)
		return nil
	}

	headers := []string{"HOSTNAME", "CUSTOM"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		custom := "no"
		if item.Custom {
			custom = "yes"
		}
		rows = append(rows, []string{item.Hostname, custom})
	}
	output.Table(headers, rows)
	return nil
}
