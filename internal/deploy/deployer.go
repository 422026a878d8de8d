// Package deploy publishes HTTP-01 challenge files to a Heroku app by
// committing them to the local working copy and pushing, then waits
// for the live site to serve them.
//
// The flow is strictly sequential: preflight, reset the challenge
// directory, write challenge files, fix their ownership, commit, push,
// then wait on each challenge in turn. Every precondition failure is
// final; the deployer never auto-checks-out, auto-pulls, or retries a
// git operation. A failure after the write phase leaves the files in
// place on purpose: re-running the whole deployment is the recovery
// mechanism, and the next run clears the directory first.
package deploy

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/brentdax/heroku-certs/internal/challenge"
	"github.com/brentdax/heroku-certs/internal/errors"
	"github.com/brentdax/heroku-certs/internal/git"
	"github.com/brentdax/heroku-certs/internal/logger"
)

// commitMessage is the fixed message for challenge commits.
const commitMessage = "Challenges for Let's Encrypt certificate"

// Config carries the deployment surface.
type Config struct {
	// Root is the static-assets directory inside the working copy.
	Root string

	// Remote is the git remote pushed to for deployment.
	Remote string

	// Branch must be checked out and synchronized with Remote.
	Branch string

	// DryRun suppresses git mutations; challenge files are still
	// written so their content can be inspected.
	DryRun bool

	// Staging annotates the commit message as testing-only.
	Staging bool
}

// Waiter blocks until one challenge is observed as satisfied.
// *challenge.Verifier is the production implementation.
type Waiter interface {
	Wait(ctx context.Context, ch challenge.Challenge) (bool, error)
}

// Deployer performs challenge deployments against one working copy.
// It only holds the working copy for the duration of Perform; the
// filesystem and git own it between calls.
type Deployer struct {
	cfg    Config
	git    *git.Client
	waiter Waiter
}

// NewDeployer creates a Deployer.
func NewDeployer(cfg Config, gitClient *git.Client, waiter Waiter) *Deployer {
	return &Deployer{cfg: cfg, git: gitClient, waiter: waiter}
}

// Perform deploys every pending challenge and waits for validation.
//
// There is no partial success: any failure aborts the whole call.
// Files already written stay on disk (the next run clears them), and
// git history is never rolled back. Cancelling the context during the
// validation waits is not a failure; the affected challenges simply
// come back unresolved.
func (d *Deployer) Perform(ctx context.Context, challenges []challenge.Challenge) ([]challenge.Result, error) {
	if len(challenges) == 0 {
		return nil, errors.ErrNoChallenges
	}

	if err := d.preflight(); err != nil {
		return nil, err
	}

	owner, err := ownerUID(d.cfg.Root)
	if err != nil {
		return nil, err
	}

	directory := filepath.Join(d.cfg.Root, challenge.URIRootPath())

	if err := clearDirectory(directory); err != nil {
		return nil, err
	}
	for _, ch := range challenges {
		if err := writeChallenge(ch, directory); err != nil {
			return nil, err
		}
	}
	if err := chownChallenges(d.cfg.Root, directory, owner); err != nil {
		return nil, err
	}

	logger.Warn("Committing and pushing challenges to Heroku...")
	if err := d.commit(directory); err != nil {
		return nil, err
	}
	if err := d.push(); err != nil {
		return nil, err
	}

	results := make([]challenge.Result, 0, len(challenges))
	for _, ch := range challenges {
		validated, err := d.waiter.Wait(ctx, ch)
		if err != nil {
			return results, err
		}
		results = append(results, challenge.Result{Challenge: ch, Validated: validated})
	}
	return results, nil
}

// preflight validates the working copy before anything is written.
func (d *Deployer) preflight() error {
	if _, err := os.Stat(d.cfg.Root); os.IsNotExist(err) {
		return errors.Preconditionf("The '%s' folder doesn't exist", d.cfg.Root)
	}

	current, err := d.git.CheckedOutBranch()
	if err != nil {
		return errors.Wrap(errors.ErrCodePrecondition, "Cannot identify a checked-out git branch", err)
	}
	if current != d.cfg.Branch {
		return errors.Preconditionf("Working copy has '%s' checked out, not '%s'", current, d.cfg.Branch)
	}

	// remote update fails if there's no such remote, but it's also
	// necessary for IsUpToDate to actually give the right answer.
	if err := d.git.UpdateRemote(d.cfg.Remote); err != nil {
		return errors.Wrap(errors.ErrCodePrecondition,
			fmt.Sprintf("The '%s' git remote is not configured (use --remote to set a different one)", d.cfg.Remote), err)
	}

	upToDate, err := d.git.IsUpToDate(d.cfg.Remote, d.cfg.Branch)
	if err != nil {
		return err
	}
	if !upToDate {
		return errors.Preconditionf("The working copy is out of date with the '%s' remote", d.cfg.Remote)
	}
	return nil
}

// clearDirectory removes any pre-existing challenge directory so
// residue from prior runs cannot mix with this challenge set.
func clearDirectory(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(directory)
}

// writeChallenge materializes one challenge file: named by token,
// containing the validation payload.
func writeChallenge(ch challenge.Challenge, directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}

	path := filepath.Join(directory, ch.Token)
	if err := os.WriteFile(path, ch.Validation(), 0o644); err != nil {
		return err
	}
	logger.DebugFields("challenge written", map[string]interface{}{
		"domain": ch.Domain,
		"path":   path,
	})
	return nil
}

// ownerUID returns the uid owning the given path.
func ownerUID(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, errors.Wrap(errors.ErrCodeInternal, "cannot read owner of "+path, nil)
	}
	return int(stat.Uid), nil
}

// chownChallenges re-owns the challenge subtree to the user owning the
// root directory, compensating for any privilege changes during the
// write phase so an unprivileged server process can read the files.
//
// The walk goes from the challenge directory up to the direct child of
// the configured root (up to, not above, the root) and re-owns that
// whole subtree.
func chownChallenges(root, directory string, owner int) error {
	root = filepath.Clean(root)
	directory = filepath.Clean(directory)

	for filepath.Dir(directory) != root {
		parent := filepath.Dir(directory)
		if parent == directory {
			// Reached the filesystem root without meeting the
			// configured root.
			return errors.Preconditionf("challenge directory '%s' is not inside '%s'", directory, root)
		}
		directory = parent
	}

	return filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return os.Chown(path, owner, -1)
	})
}

// commit stages the challenge directory and commits it.
func (d *Deployer) commit(directory string) error {
	if err := d.git.StageFile(directory); err != nil {
		return err
	}

	message := commitMessage
	if d.cfg.Staging {
		message += " (testing only)"
	}
	return d.git.Commit(message)
}

// push deploys the commit; on Heroku this restarts the app.
func (d *Deployer) push() error {
	logger.Debug("Pushing to '%s'...", d.cfg.Remote)
	return d.git.PushToRemote(d.cfg.Remote)
}
