package samba

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts command output by the joined command line and records
// every invocation.
type fakeRunner struct {
	calls     [][]string
	responses map[string]Result
	err       error
}

func (f *fakeRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	cmd := append([]string{name}, args...)
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return Result{}, f.err
	}
	if res, ok := f.responses[strings.Join(cmd, " ")]; ok {
		return res, nil
	}
	return Result{ExitCode: 0}, nil
}

func (f *fakeRunner) RunWithInput(ctx context.Context, timeout time.Duration, input string, name string, args ...string) (Result, error) {
	return f.Run(ctx, timeout, name, args...)
}

func newTestService(runner Runner) *SambaService {
	return NewSambaService(runner, &Config{
		Server:   "127.0.0.1",
		ConfPath: "/etc/samba/smb.conf",
		StateDir: "/var/lib/samba",
		LogDir:   "/var/log/adhub",
	})
}

func TestGetUserParsesShowOutput(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"samba-tool user show alice": {Stdout: `
dn: CN=alice,CN=Users,DC=example,DC=com
sAMAccountName: alice
displayName: Alice Jones
mail: alice@example.com
description: Engineering
Account disabled: False
`},
	}}
	service := newTestService(runner)

	user, err := service.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice Jones", user.DisplayName)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Engineering", user.Description)
	assert.False(t, user.AccountDisabled)
}

func TestGetUserDisabledAccount(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"samba-tool user show bob": {Stdout: "Account disabled: True\n"},
	}}
	service := newTestService(runner)

	user, err := service.GetUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, user.AccountDisabled)
}

func TestGetUserNotFound(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"samba-tool user show ghost": {ExitCode: 255, Stderr: "ERROR: Unable to find user ghost, not found"},
	}}
	service := newTestService(runner)

	_, err := service.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersSurvivesFailedDetails(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"samba-tool user list":       {Stdout: "alice\nbob\n"},
		"samba-tool user show alice": {Stdout: "displayName: Alice Jones\n"},
		"samba-tool user show bob":   {ExitCode: 1, Stderr: "transient failure"},
	}}
	service := newTestService(runner)

	users, err := service.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice Jones", users[0].DisplayName)
	assert.Equal(t, User{Username: "bob"}, users[1])
}

func TestCreateUserArguments(t *testing.T) {
	runner := &fakeRunner{}
	service := newTestService(runner)

	err := service.CreateUser(context.Background(), CreateUserParams{
		Username:           "carol",
		Password:           "Str0ngPass",
		GivenName:          "Carol",
		Email:              "carol@example.com",
		MustChangePassword: true,
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, []string{"samba-tool", "user", "create", "carol", "Str0ngPass"}, call[:5])
	assert.Contains(t, call, "--given-name")
	assert.Contains(t, call, "--mail-address")
	assert.Contains(t, call, "--must-change-at-next-login")
	assert.NotContains(t, call, "--surname")
}

func TestAddGroupMembersJoinsUsernames(t *testing.T) {
	runner := &fakeRunner{}
	service := newTestService(runner)

	err := service.AddGroupMembers(context.Background(), "staff", []string{"alice", "bob"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"samba-tool", "group", "addmembers", "staff", "alice,bob"}, runner.calls[0])
}

func TestListSharesSkipsSpecialSections(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"net conf list": {Stdout: `
[global]
	realm = EXAMPLE.COM

[projects]
	path = /srv/projects
	read only = no
	guest ok = yes

[print$]
	path = /var/lib/samba/printers
`},
	}}
	service := newTestService(runner)

	shares, err := service.ListShares(context.Background())
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "projects", shares[0].Name)
	assert.Equal(t, "/srv/projects", shares[0].Path)
	assert.False(t, shares[0].ReadOnly)
	assert.True(t, shares[0].GuestOK)
	assert.True(t, shares[0].Browseable)
}

func TestCreateShareRollsBackOnFailure(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"net conf setparm projects read only no": {ExitCode: 1, Stderr: "can't set parameter"},
	}}
	service := newTestService(runner)

	err := service.CreateShare(context.Background(), ShareParams{
		Name: "projects",
		Path: "/srv/projects",
	})
	require.Error(t, err)

	last := runner.calls[len(runner.calls)-1]
	assert.Equal(t, []string{"net", "conf", "delshare", "projects"}, last)
}

func TestUpdateShareNoChangesRunsNothing(t *testing.T) {
	runner := &fakeRunner{}
	service := newTestService(runner)

	err := service.UpdateShare(context.Background(), "projects", ShareUpdate{})
	require.NoError(t, err)
	assert.Empty(t, runner.calls)
}

func TestUpdateShareClearsComment(t *testing.T) {
	runner := &fakeRunner{}
	service := newTestService(runner)

	empty := ""
	err := service.UpdateShare(context.Background(), "projects", ShareUpdate{Comment: &empty})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"net", "conf", "delparm", "projects", "comment"}, runner.calls[0])
}

func TestDomainInfo(t *testing.T) {
	runner := &fakeRunner{responses: map[string]Result{
		"samba-tool domain info 127.0.0.1": {Stdout: `
Forest           : example.com
Domain           : example.com
Netbios domain   : example
DC name          : dc1.example.com
DC netbios name  : DC1
`},
	}}
	service := newTestService(runner)

	info, err := service.DomainInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "example.com", info.Forest)
	assert.Equal(t, "example.com", info.Domain)
	assert.Equal(t, "EXAMPLE", info.NetbiosDomain)
	assert.Equal(t, "dc1.example.com", info.DCName)
}

func TestRunnerErrorPropagates(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("samba-tool: %w", ErrTimeout)}
	service := newTestService(runner)

	_, err := service.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}
