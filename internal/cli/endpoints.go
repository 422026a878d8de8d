package cli

import (
	"context"
	"time"

	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the app's SSL endpoints",
	Long: `List the SSL endpoints configured on the app.

Certificate installation requires exactly one endpoint; this command
shows what the installer would act on.

Examples:
  heroku-certs endpoints
  heroku-certs endpoints --json`,
	RunE: runEndpoints,
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}

type endpointListItem struct {
	Name      string    `json:"name"`
	CName     string    `json:"cname"`
	UpdatedAt time.Time `json:"updated_at"`
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	app, err := resolveApp(cfg)
	if err != nil {
		return err
	}

	endpoints, err := app.SSLEndpoints(context.Background())
	if err != nil {
		return err
	}

	items := make([]endpointListItem, 0, len(endpoints))
	for _, ep := range endpoints {
		items = append(items, endpointListItem{
			Name:      ep.Name,
			CName:     ep.CName,
			UpdatedAt: ep.UpdatedAt,
		})
	}

	if jsonOutput {
		return output.JSON(items)
	}

	if len(items) == 0 {
		output.Info("No SSL endpoints found for %s", app.Name)
		return nil
	}

	headers := []string{"NAME", "CNAME", "UPDATED"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			item.CName,
			item.UpdatedAt.Format(time.RFC3339),
		})
	}
	output.Table(headers, rows)
	return nil
}
