package setup

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/adhub/adhub/internal/samba"
)

// Resetter tears down an existing domain so it can be provisioned again.
// Everything removed is backed up first; the backup directory is reported
// back to the caller.
type Resetter struct {
	runner samba.Runner
	config *samba.Config
}

func NewResetter(runner samba.Runner, config *samba.Config) *Resetter {
	return &Resetter{runner: runner, config: config}
}

// Reset stops the samba services, backs up the configuration and state,
// then removes them and recreates the empty directories.
func (r *Resetter) Reset(ctx context.Context) (string, error) {
	r.stopServices(ctx)

	backupDir, err := r.backup()
	if err != nil {
		return "", fmt.Errorf("backing up domain state: %w", err)
	}

	if err := r.remove(); err != nil {
		return "", fmt.Errorf("removing domain state: %w", err)
	}

	for _, dir := range []string{r.config.StateDir, filepath.Join(r.config.StateDir, "private")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("recreating %s: %w", dir, err)
		}
	}

	log.Printf("domain reset complete, backup at %s", backupDir)
	return backupDir, nil
}

func (r *Resetter) stopServices(ctx context.Context) {
	r.runner.Run(ctx, 10*time.Second, "pkill", "-x", "samba")
	time.Sleep(2 * time.Second)

	res, err := r.runner.Run(ctx, 5*time.Second, "pgrep", "-x", "samba")
	if err == nil && res.ExitCode == 0 {
		log.Printf("samba did not stop cleanly, sending SIGKILL")
		r.runner.Run(ctx, 10*time.Second, "pkill", "-9", "-x", "samba")
		time.Sleep(time.Second)
	}
}

func (r *Resetter) backup() (string, error) {
	stamp := time.Now().Format("20060102_150405")
	backupDir := filepath.Join(r.config.LogDir, "domain_reset_"+stamp)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", err
	}

	if _, err := os.Stat(r.config.ConfPath); err == nil {
		if err := copyFile(r.config.ConfPath, filepath.Join(backupDir, filepath.Base(r.config.ConfPath))); err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(r.config.StateDir); err == nil {
		if err := copyTree(r.config.StateDir, filepath.Join(backupDir, "samba_lib")); err != nil {
			return "", err
		}
	}
	return backupDir, nil
}

func (r *Resetter) remove() error {
	if err := os.Remove(r.config.ConfPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, name := range []string{"private", "sysvol", "bind-dns", "state"} {
		if err := os.RemoveAll(filepath.Join(r.config.StateDir, name)); err != nil {
			return err
		}
	}
	return nil
}
