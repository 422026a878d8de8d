package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/brentdax/heroku-certs/internal/command"
	"github.com/brentdax/heroku-certs/internal/config"
	"github.com/brentdax/heroku-certs/internal/git"
	"github.com/brentdax/heroku-certs/internal/heroku"
	"github.com/brentdax/heroku-certs/internal/output"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the system and the working copy.

Checks:
  - git installation
  - Heroku toolbelt installation and login
  - API token availability
  - Working copy state (challenge root, branch, remote, synchronization)

Examples:
  heroku-certs doctor
  heroku-certs doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	SystemRequirements []CheckResult `json:"system_requirements"`
	WorkingCopy        []CheckResult `json:"working_copy"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	runner := newRunner()

	report := &DoctorReport{}
	report.SystemRequirements = checkSystemRequirements(runner)
	report.WorkingCopy = checkWorkingCopy(runner, cfg)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkSystemRequirements(runner *command.Runner) []CheckResult {
	results := []CheckResult{}

	// git
	if _, err := runner.LookPath("git"); err == nil {
		version := "unknown"
		if out, err := runner.Run(command.New("git", "version")); err == nil {
			version = strings.TrimSpace(string(out))
		}
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("git installed (%s)", version),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: "git not installed",
		})
	}

	// Heroku toolbelt
	toolbelt := heroku.NewCLI(runner)
	if toolbelt.IsInstalled() {
		version := "unknown"
		if v, err := toolbelt.Version(); err == nil {
			version = v
		}
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Heroku toolbelt installed (%s)", version),
		})

		if _, err := toolbelt.AuthToken(); err == nil {
			results = append(results, CheckResult{
				Status:  "success",
				Message: "Heroku toolbelt logged in",
			})
		} else {
			results = append(results, CheckResult{
				Status:  "warning",
				Message: "Heroku toolbelt not logged in (run 'heroku login' or set HEROKU_API_KEY)",
			})
		}
	} else {
		status := "error"
		suffix := ""
		if env.HerokuAPIKey != "" {
			status = "warning"
			suffix = " (HEROKU_API_KEY is set, but --app must be given explicitly)"
		}
		results = append(results, CheckResult{
			Status:  status,
			Message: "Heroku toolbelt not installed" + suffix,
		})
	}

	return results
}

func checkWorkingCopy(runner *command.Runner, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	if _, err := os.Stat(cfg.Root); err == nil {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Challenge root '%s' exists", cfg.Root),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("The '%s' folder doesn't exist", cfg.Root),
		})
	}

	gitClient := git.NewClient(runner, true)

	branch, err := gitClient.CheckedOutBranch()
	switch {
	case err != nil:
		results = append(results, CheckResult{
			Status:  "error",
			Message: "Cannot identify a checked-out git branch",
		})
	case branch != cfg.Branch:
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("Working copy has '%s' checked out, not '%s'", branch, cfg.Branch),
		})
	default:
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Branch '%s' checked out", branch),
		})
	}

	if err := gitClient.UpdateRemote(cfg.Remote); err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("The '%s' git remote is not configured (use --remote to set a different one)", cfg.Remote),
		})
		return results
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("Remote '%s' configured", cfg.Remote),
	})

	upToDate, err := gitClient.IsUpToDate(cfg.Remote, cfg.Branch)
	switch {
	case err != nil:
		results = append(results, CheckResult{
			Status:  "warning",
			Message: fmt.Sprintf("Could not compare against '%s/%s'", cfg.Remote, cfg.Branch),
		})
	case !upToDate:
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("The working copy is out of date with the '%s' remote", cfg.Remote),
		})
	default:
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Working copy in sync with '%s'", cfg.Remote),
		})
	}

	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system requirements...")
	for _, check := range report.SystemRequirements {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking working copy...")
	for _, check := range report.WorkingCopy {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
