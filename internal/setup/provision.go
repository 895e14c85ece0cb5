package setup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adhub/adhub/internal/samba"
)

const provisionTimeout = 5 * time.Minute

// Provisioner drives the samba-tool domain provision workflow.
type Provisioner struct {
	runner samba.Runner
	config *samba.Config
}

func NewProvisioner(runner samba.Runner, config *samba.Config) *Provisioner {
	return &Provisioner{runner: runner, config: config}
}

// IsProvisioned inspects the Samba configuration file for markers of an
// active directory domain controller role. A missing or unreadable file
// reads as not provisioned.
func (p *Provisioner) IsProvisioned() bool {
	return configuredAsDC(p.config.ConfPath)
}

func configuredAsDC(confPath string) bool {
	data, err := os.ReadFile(confPath)
	if err != nil {
		return false
	}
	content := strings.ToLower(string(data))
	if strings.Contains(content, "server role = active directory domain controller") {
		return true
	}
	return strings.Contains(content, "netbios name") && strings.Contains(content, "realm")
}

// Provision backs up any existing configuration, runs the provision command
// and starts the directory services. The caller rejects the request up front
// when a domain already exists; this method does not re-check.
func (p *Provisioner) Provision(ctx context.Context, cfg DomainConfig) ProvisionResult {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return ProvisionResult{Status: ProvisionFailed, Message: "Invalid domain configuration", Error: err.Error()}
	}

	if err := p.prepare(); err != nil {
		return ProvisionResult{Status: ProvisionFailed, Message: "Failed to prepare for provisioning", Error: err.Error()}
	}

	args := provisionArgs(cfg)
	log.Printf("provisioning domain %s (realm %s)", cfg.Domain, cfg.Realm)

	res, err := p.runner.Run(ctx, provisionTimeout, "samba-tool", args...)
	if err != nil {
		if errors.Is(err, samba.ErrTimeout) {
			return ProvisionResult{Status: ProvisionFailed, Message: "Provisioning timed out after 5 minutes", Error: err.Error()}
		}
		return ProvisionResult{Status: ProvisionFailed, Message: "Failed to run samba-tool", Error: err.Error()}
	}

	p.appendAuditLog(cfg, res)

	if res.ExitCode != 0 {
		return ProvisionResult{
			Status:  ProvisionFailed,
			Message: "Domain provisioning failed",
			Error:   strings.TrimSpace(res.Stderr),
		}
	}

	p.startServices(ctx)

	return ProvisionResult{
		Status:  ProvisionCompleted,
		Message: fmt.Sprintf("Domain %s provisioned successfully", cfg.Realm),
		Output:  strings.TrimSpace(res.Stdout),
	}
}

// provisionArgs builds the samba-tool argument list. The function level is
// checked against the allow-list so an unexpected value cannot reach the
// command line.
func provisionArgs(cfg DomainConfig) []string {
	level := cfg.FunctionLevel
	if !functionLevels[level] {
		level = defaultFunctionLevel
	}
	args := []string{
		"domain", "provision",
		"--realm=" + cfg.Realm,
		"--domain=" + cfg.Domain,
		"--server-role=" + cfg.ServerRole,
		"--dns-backend=" + cfg.DNSBackend,
		"--adminpass=" + cfg.AdminPassword,
		"--function-level=" + level,
		"--use-rfc2307",
	}
	if cfg.DNSBackend == DNSBackendInternal && cfg.DNSForwarder != "" {
		args = append(args, "--option=dns forwarder = "+cfg.DNSForwarder)
	}
	if cfg.HostIP != "" {
		args = append(args, "--host-ip="+cfg.HostIP)
	}
	return args
}

// prepare moves a conflicting non-DC smb.conf out of the way. samba-tool
// refuses to provision over an existing configuration file.
func (p *Provisioner) prepare() error {
	confPath := p.config.ConfPath
	if _, err := os.Stat(confPath); err != nil {
		return nil
	}
	if configuredAsDC(confPath) {
		return nil
	}

	stamp := time.Now().Format("20060102_150405")
	backup := confPath + ".backup." + stamp
	if err := os.Rename(confPath, backup); err != nil {
		return fmt.Errorf("backing up %s: %w", confPath, err)
	}
	log.Printf("moved existing configuration to %s", backup)

	backupDir := filepath.Join(p.config.LogDir, "samba_backup_"+stamp)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		log.Printf("cannot create %s, skipping config directory backup: %v", backupDir, err)
		return nil
	}
	copySiblingFiles(filepath.Dir(confPath), backupDir, filepath.Base(backup))
	return nil
}

// appendAuditLog records the raw provision output. Failures to write the
// log never fail the provision itself.
func (p *Provisioner) appendAuditLog(cfg DomainConfig, res samba.Result) {
	if err := os.MkdirAll(p.config.LogDir, 0o755); err != nil {
		log.Printf("cannot create log directory %s: %v", p.config.LogDir, err)
		return
	}
	path := filepath.Join(p.config.LogDir, "provision.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		log.Printf("cannot open provision log: %v", err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "==== provision %s at %s (exit %d) ====\n", cfg.Realm, time.Now().Format(time.RFC3339), res.ExitCode)
	fmt.Fprintln(f, "--- stdout ---")
	fmt.Fprintln(f, res.Stdout)
	fmt.Fprintln(f, "--- stderr ---")
	fmt.Fprintln(f, res.Stderr)
}

// startServices tries to bring the samba daemon up after provisioning.
// Best effort only; the verification endpoint reports the actual state.
func (p *Provisioner) startServices(ctx context.Context) {
	res, err := p.runner.Run(ctx, 5*time.Second, "pgrep", "-x", "samba")
	if err == nil && res.ExitCode == 0 {
		log.Printf("samba daemon already running")
		return
	}

	if _, err := p.runner.Run(ctx, 30*time.Second, "samba", "-D"); err != nil {
		log.Printf("failed to start samba daemon: %v", err)
		return
	}
	time.Sleep(2 * time.Second)

	res, err = p.runner.Run(ctx, 5*time.Second, "pgrep", "-x", "samba")
	if err == nil && res.ExitCode == 0 {
		log.Printf("samba daemon started")
	} else {
		log.Printf("samba daemon did not start, verify manually")
	}
}
