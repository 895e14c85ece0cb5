package setup

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/adhub/adhub/internal/samba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerifier(t *testing.T, runner samba.InputRunner) *Verifier {
	t.Helper()
	config := testConfig(t)
	require.NoError(t, os.WriteFile(config.ConfPath, []byte("server role = active directory domain controller\n"), 0o644))

	v := NewVerifier(runner, config)
	v.dial = func(network, address string, timeout time.Duration) (net.Conn, error) {
		return nil, errors.New("connection refused")
	}
	v.lookupHost = func(host string) ([]string, error) {
		return []string{"10.0.0.1"}, nil
	}
	return v
}

func testByName(t *testing.T, tests []VerificationTest, name string) VerificationTest {
	t.Helper()
	for _, test := range tests {
		if test.TestName == name {
			return test
		}
	}
	t.Fatalf("test %q not reported", name)
	return VerificationTest{}
}

func TestVerifyRunsAllCategoriesInOrder(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]samba.Result{
		"samba --version": {ExitCode: 0, Stdout: "Version 4.19.5\n"},
	}}
	v := testVerifier(t, runner)

	tests := v.Verify(context.Background(), "example.com", "EXAMPLE.COM", "")
	require.NotEmpty(t, tests)

	var categories []string
	for _, test := range tests {
		if len(categories) == 0 || categories[len(categories)-1] != test.Category {
			categories = append(categories, test.Category)
		}
	}
	assert.Equal(t, []string{"prerequisites", "dns", "services", "ldap", "kerberos", "authentication"}, categories)
}

func TestVerifyFailuresDoNotAbortTheRun(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]samba.Result{
		"samba --version": {ExitCode: 127, Stderr: "samba: command not found"},
	}}
	v := testVerifier(t, runner)

	tests := v.Verify(context.Background(), "example.com", "EXAMPLE.COM", "")
	assert.Equal(t, StatusFailed, testByName(t, tests, "Samba Installation").Status)
	assert.Equal(t, StatusFailed, testByName(t, tests, "LDAP Port").Status)

	// Every declared test still reports a result.
	assert.GreaterOrEqual(t, len(tests), 13)
}

func TestVerifySkipsCredentialedTestsWithoutPassword(t *testing.T) {
	v := testVerifier(t, &scriptedRunner{})

	tests := v.Verify(context.Background(), "example.com", "EXAMPLE.COM", "")
	assert.Equal(t, StatusSkipped, testByName(t, tests, "Kerberos Ticket Request").Status)
	assert.Equal(t, StatusSkipped, testByName(t, tests, "Kerberos Ticket Cache").Status)
	assert.Equal(t, StatusSkipped, testByName(t, tests, "SMB Authentication").Status)
}

func TestVerifyKerberosUsesPassword(t *testing.T) {
	runner := &scriptedRunner{responses: map[string]samba.Result{
		"kinit": {ExitCode: 0},
		"klist": {ExitCode: 0, Stdout: "Default principal: administrator@EXAMPLE.COM\n"},
	}}
	v := testVerifier(t, runner)

	tests := v.Verify(context.Background(), "example.com", "EXAMPLE.COM", "Passw0rd123")
	assert.Equal(t, StatusPassed, testByName(t, tests, "Kerberos Ticket Request").Status)
	assert.Equal(t, StatusPassed, testByName(t, tests, "Kerberos Ticket Cache").Status)

	var sawPrincipal bool
	for _, call := range runner.calls {
		if call[0] == "kinit" {
			assert.Equal(t, "administrator@EXAMPLE.COM", call[1])
			sawPrincipal = true
		}
	}
	assert.True(t, sawPrincipal)
}

func TestSummarize(t *testing.T) {
	build := func(passed, failed, skipped int) []VerificationTest {
		var tests []VerificationTest
		for i := 0; i < passed; i++ {
			tests = append(tests, VerificationTest{Status: StatusPassed})
		}
		for i := 0; i < failed; i++ {
			tests = append(tests, VerificationTest{Status: StatusFailed})
		}
		for i := 0; i < skipped; i++ {
			tests = append(tests, VerificationTest{Status: StatusSkipped})
		}
		return tests
	}

	overall, passed, failed, skipped := Summarize(build(2, 0, 1))
	assert.Equal(t, StatusPassed, overall)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 1, skipped)

	overall, _, _, _ = Summarize(build(7, 3, 0))
	assert.Equal(t, StatusPartial, overall)

	overall, _, _, _ = Summarize(build(4, 6, 0))
	assert.Equal(t, StatusFailed, overall)
}

func TestBaseDN(t *testing.T) {
	assert.Equal(t, "DC=example,DC=com", baseDN("example.com"))
	assert.Equal(t, "DC=corp,DC=example,DC=com", baseDN("corp.example.com"))
}
