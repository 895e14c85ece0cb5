package setup

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/adhub/adhub/internal/samba"
)

// Verifier exercises a provisioned domain end to end: binaries, DNS,
// listening ports, LDAP, Kerberos and SMB authentication. A failing test
// never aborts the run; every test reports its own status and duration.
type Verifier struct {
	runner samba.InputRunner
	config *samba.Config

	dial       func(network, address string, timeout time.Duration) (net.Conn, error)
	lookupHost func(host string) ([]string, error)
}

func NewVerifier(runner samba.InputRunner, config *samba.Config) *Verifier {
	return &Verifier{
		runner:     runner,
		config:     config,
		dial:       net.DialTimeout,
		lookupHost: net.LookupHost,
	}
}

// Verify runs all categories in a fixed order. The admin password is only
// used to drive kinit and smbclient; when it is empty those tests are
// reported as skipped.
func (v *Verifier) Verify(ctx context.Context, domainName, realm, adminPassword string) []VerificationTest {
	var tests []VerificationTest

	tests = append(tests, v.prerequisiteTests(ctx)...)
	tests = append(tests, v.dnsTests(ctx, domainName)...)
	tests = append(tests, v.serviceTests()...)
	tests = append(tests, v.ldapTests(ctx, domainName)...)
	tests = append(tests, v.kerberosTests(ctx, realm, adminPassword)...)
	tests = append(tests, v.authTests(ctx, adminPassword)...)

	return tests
}

// Summarize derives the overall verdict: passed with zero failures,
// partial while passes still outnumber failures, failed otherwise.
func Summarize(tests []VerificationTest) (overall string, passed, failed, skipped int) {
	for _, t := range tests {
		switch t.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}

	switch {
	case failed == 0:
		overall = StatusPassed
	case passed > failed:
		overall = StatusPartial
	default:
		overall = StatusFailed
	}
	return overall, passed, failed, skipped
}

func timed(name, category string, fn func() (string, string, string)) VerificationTest {
	start := time.Now()
	status, message, details := fn()
	return VerificationTest{
		TestName:   name,
		Category:   category,
		Status:     status,
		Message:    message,
		Details:    details,
		DurationMS: time.Since(start).Milliseconds(),
	}
}

func (v *Verifier) prerequisiteTests(ctx context.Context) []VerificationTest {
	return []VerificationTest{
		timed("Samba Installation", "prerequisites", func() (string, string, string) {
			res, err := v.runner.Run(ctx, 5*time.Second, "samba", "--version")
			if err != nil || res.ExitCode != 0 {
				return StatusFailed, "samba binary is not available", errDetails(err, res)
			}
			return StatusPassed, "samba binary is available", strings.TrimSpace(res.Stdout)
		}),
		timed("Samba Configuration", "prerequisites", func() (string, string, string) {
			if !configuredAsDC(v.config.ConfPath) {
				return StatusFailed, "Configuration file is missing domain controller settings", v.config.ConfPath
			}
			return StatusPassed, "Configuration file looks like a domain controller", v.config.ConfPath
		}),
	}
}

func (v *Verifier) dnsTests(ctx context.Context, domainName string) []VerificationTest {
	tests := []VerificationTest{
		timed("Domain Name Resolution", "dns", func() (string, string, string) {
			addrs, err := v.lookupHost(domainName)
			if err != nil || len(addrs) == 0 {
				return StatusFailed, fmt.Sprintf("Cannot resolve %s", domainName), errString(err)
			}
			return StatusPassed, fmt.Sprintf("%s resolves", domainName), strings.Join(addrs, ", ")
		}),
	}

	for _, record := range []struct{ name, label string }{
		{"_ldap._tcp." + domainName, "LDAP SRV Record"},
		{"_kerberos._tcp." + domainName, "Kerberos SRV Record"},
	} {
		record := record
		tests = append(tests, timed(record.label, "dns", func() (string, string, string) {
			return v.srvLookup(ctx, record.name)
		}))
	}
	return tests
}

// srvLookup queries the local resolver with host, falling back to dig when
// host is not installed.
func (v *Verifier) srvLookup(ctx context.Context, name string) (string, string, string) {
	res, err := v.runner.Run(ctx, 10*time.Second, "host", "-t", "SRV", name, "localhost")
	if err == nil {
		if res.ExitCode == 0 && strings.Contains(res.Stdout, "SRV") {
			return StatusPassed, name + " is registered", strings.TrimSpace(res.Stdout)
		}
		return StatusFailed, name + " is not registered", strings.TrimSpace(res.Stdout + res.Stderr)
	}

	res, err = v.runner.Run(ctx, 10*time.Second, "dig", "@localhost", "-t", "SRV", name, "+short")
	if err != nil {
		return StatusSkipped, "No DNS query tool available", err.Error()
	}
	if res.ExitCode == 0 && strings.TrimSpace(res.Stdout) != "" {
		return StatusPassed, name + " is registered", strings.TrimSpace(res.Stdout)
	}
	return StatusFailed, name + " is not registered", strings.TrimSpace(res.Stderr)
}

func (v *Verifier) serviceTests() []VerificationTest {
	ports := []struct {
		port  int
		label string
	}{
		{389, "LDAP Port"},
		{636, "LDAPS Port"},
		{88, "Kerberos Port"},
		{445, "SMB Port"},
		{53, "DNS Port"},
	}

	tests := make([]VerificationTest, 0, len(ports))
	for _, p := range ports {
		p := p
		tests = append(tests, timed(p.label, "services", func() (string, string, string) {
			addr := fmt.Sprintf("localhost:%d", p.port)
			conn, err := v.dial("tcp", addr, 2*time.Second)
			if err != nil {
				return StatusFailed, fmt.Sprintf("Nothing listening on %s", addr), err.Error()
			}
			conn.Close()
			return StatusPassed, fmt.Sprintf("Service listening on %s", addr), ""
		}))
	}
	return tests
}

func (v *Verifier) ldapTests(ctx context.Context, domainName string) []VerificationTest {
	return []VerificationTest{
		timed("Anonymous LDAP Bind", "ldap", func() (string, string, string) {
			res, err := v.runner.Run(ctx, 10*time.Second, "ldapsearch", "-x", "-H", "ldap://localhost", "-b", "", "-s", "base")
			if err != nil {
				return StatusSkipped, "ldapsearch is not available", err.Error()
			}
			if res.ExitCode != 0 {
				return StatusFailed, "Anonymous LDAP bind failed", strings.TrimSpace(res.Stderr)
			}
			return StatusPassed, "LDAP server answers on localhost", ""
		}),
		timed("Domain Function Level", "ldap", func() (string, string, string) {
			res, err := v.runner.Run(ctx, 10*time.Second, "samba-tool", "domain", "level", "show")
			if err != nil || res.ExitCode != 0 {
				return StatusFailed, "Cannot read domain function level", errDetails(err, res)
			}
			return StatusPassed, "Domain function level readable for " + baseDN(domainName), strings.TrimSpace(res.Stdout)
		}),
	}
}

func (v *Verifier) kerberosTests(ctx context.Context, realm, adminPassword string) []VerificationTest {
	return []VerificationTest{
		timed("Kerberos Ticket Request", "kerberos", func() (string, string, string) {
			if adminPassword == "" {
				return StatusSkipped, "No administrator password supplied", ""
			}
			principal := "administrator@" + strings.ToUpper(realm)
			res, err := v.runner.RunWithInput(ctx, 10*time.Second, adminPassword+"\n", "kinit", principal)
			if err != nil {
				return StatusSkipped, "kinit is not available", err.Error()
			}
			if res.ExitCode != 0 {
				return StatusFailed, "Could not obtain a Kerberos ticket", strings.TrimSpace(res.Stderr)
			}
			return StatusPassed, "Kerberos ticket obtained for " + principal, ""
		}),
		timed("Kerberos Ticket Cache", "kerberos", func() (string, string, string) {
			if adminPassword == "" {
				return StatusSkipped, "No administrator password supplied", ""
			}
			res, err := v.runner.Run(ctx, 5*time.Second, "klist")
			if err != nil {
				return StatusSkipped, "klist is not available", err.Error()
			}
			if res.ExitCode != 0 || !strings.Contains(strings.ToUpper(res.Stdout), strings.ToUpper(realm)) {
				return StatusFailed, "No ticket for realm "+strings.ToUpper(realm)+" in cache", strings.TrimSpace(res.Stdout)
			}
			return StatusPassed, "Ticket cache contains realm "+strings.ToUpper(realm), ""
		}),
	}
}

func (v *Verifier) authTests(ctx context.Context, adminPassword string) []VerificationTest {
	return []VerificationTest{
		timed("SMB Authentication", "authentication", func() (string, string, string) {
			if adminPassword == "" {
				return StatusSkipped, "No administrator password supplied", ""
			}
			res, err := v.runner.Run(ctx, 10*time.Second, "smbclient", "-L", "localhost", "-U", "administrator%"+adminPassword)
			if err != nil {
				return StatusSkipped, "smbclient is not available", err.Error()
			}
			if res.ExitCode == 0 || strings.Contains(res.Stdout, "Sharename") {
				return StatusPassed, "Administrator can authenticate over SMB", ""
			}
			return StatusFailed, "SMB authentication as administrator failed", strings.TrimSpace(res.Stderr)
		}),
	}
}

func baseDN(domainName string) string {
	parts := strings.Split(domainName, ".")
	for i, p := range parts {
		parts[i] = "DC=" + p
	}
	return strings.Join(parts, ",")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func errDetails(err error, res samba.Result) string {
	if err != nil {
		return err.Error()
	}
	return strings.TrimSpace(res.Stderr)
}
