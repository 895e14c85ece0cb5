package setup

import (
	"context"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/adhub/adhub/internal/samba"
)

const minFreeBytes = 1 << 30

// PrerequisiteChecker runs the pre-provisioning environment checks.
// Installation and privileges are hard requirements; the remaining checks
// only produce warnings.
type PrerequisiteChecker struct {
	runner samba.Runner
	config *samba.Config
}

func NewPrerequisiteChecker(runner samba.Runner, config *samba.Config) *PrerequisiteChecker {
	return &PrerequisiteChecker{runner: runner, config: config}
}

// Check runs every check in a fixed order and reports whether the hard
// requirements are met. Soft checks never flip the overall result.
func (c *PrerequisiteChecker) Check(ctx context.Context) (bool, []PrerequisiteCheck) {
	install := c.checkInstallation(ctx)
	privileges := c.checkPrivileges(ctx)

	checks := []PrerequisiteCheck{
		install,
		privileges,
		c.checkExistingDomain(),
		c.checkDiskSpace(),
		c.checkNetwork(),
	}

	allPassed := install.Status == StatusPassed && privileges.Status == StatusPassed
	return allPassed, checks
}

func (c *PrerequisiteChecker) checkInstallation(ctx context.Context) PrerequisiteCheck {
	check := PrerequisiteCheck{CheckName: "Samba Installation"}
	res, err := c.runner.Run(ctx, 5*time.Second, "which", "samba-tool")
	if err != nil || res.ExitCode != 0 {
		check.Status = StatusFailed
		check.Message = "samba-tool not found"
		check.Details = "Install the samba and samba-dsdb-modules packages"
		return check
	}
	check.Status = StatusPassed
	check.Message = "samba-tool is available"
	check.Details = strings.TrimSpace(res.Stdout)
	return check
}

func (c *PrerequisiteChecker) checkPrivileges(ctx context.Context) PrerequisiteCheck {
	check := PrerequisiteCheck{CheckName: "System Privileges"}
	res, err := c.runner.Run(ctx, 10*time.Second, "samba-tool", "--version")
	if err != nil || res.ExitCode != 0 {
		check.Status = StatusFailed
		check.Message = "Cannot execute samba-tool"
		if err != nil {
			check.Details = err.Error()
		} else {
			check.Details = strings.TrimSpace(res.Stderr)
		}
		return check
	}
	check.Status = StatusPassed
	check.Message = "Sufficient privileges to run samba-tool"
	check.Details = strings.TrimSpace(res.Stdout)
	return check
}

func (c *PrerequisiteChecker) checkExistingDomain() PrerequisiteCheck {
	check := PrerequisiteCheck{CheckName: "Existing Domain"}
	if configuredAsDC(c.config.ConfPath) {
		check.Status = StatusWarning
		check.Message = "An existing domain configuration was found"
		check.Details = "Provisioning will replace " + c.config.ConfPath
		return check
	}
	check.Status = StatusPassed
	check.Message = "No existing domain configuration"
	return check
}

func (c *PrerequisiteChecker) checkDiskSpace() PrerequisiteCheck {
	check := PrerequisiteCheck{CheckName: "Disk Space"}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(c.config.StateDir, &stat); err != nil {
		// Cannot measure, assume enough.
		check.Status = StatusPassed
		check.Message = "Disk space could not be determined"
		return check
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		check.Status = StatusWarning
		check.Message = "Low disk space"
		check.Details = fmt.Sprintf("%d MiB free on %s, at least 1 GiB recommended", free>>20, c.config.StateDir)
		return check
	}
	check.Status = StatusPassed
	check.Message = fmt.Sprintf("%d MiB free on %s", free>>20, c.config.StateDir)
	return check
}

func (c *PrerequisiteChecker) checkNetwork() PrerequisiteCheck {
	check := PrerequisiteCheck{CheckName: "Network Connectivity"}
	conn, err := net.DialTimeout("tcp", "8.8.8.8:53", 2*time.Second)
	if err != nil {
		check.Status = StatusWarning
		check.Message = "No outbound network connectivity detected"
		check.Details = "DNS forwarding to external resolvers may not work"
		return check
	}
	conn.Close()
	check.Status = StatusPassed
	check.Message = "Outbound network connectivity is available"
	return check
}
