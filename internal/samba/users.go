package samba

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

func (s *SambaService) ListUsers(ctx context.Context) ([]User, error) {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "user", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	var users []User
	for _, username := range nonEmptyLines(result.Stdout) {
		users = append(users, s.userDetails(ctx, username))
	}
	return users, nil
}

func (s *SambaService) GetUser(ctx context.Context, username string) (*User, error) {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "user", "show", username)
	if err != nil {
		return nil, fmt.Errorf("failed to show user %s: %w", username, err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	user := parseUserShow(username, result.Stdout)
	return &user, nil
}

// userDetails is best-effort: a failed show still yields an entry with
// just the username, matching a listing that must not abort mid-way.
func (s *SambaService) userDetails(ctx context.Context, username string) User {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "user", "show", username)
	if err != nil || result.ExitCode != 0 {
		if err != nil {
			log.Printf("Could not get details for user %s: %v", username, err)
		}
		return User{Username: username}
	}
	return parseUserShow(username, result.Stdout)
}

func parseUserShow(username, out string) User {
	user := User{Username: username}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch {
		case key == "displayname":
			user.DisplayName = value
		case key == "mail":
			user.Email = value
		case key == "description":
			user.Description = value
		case strings.Contains(key, "disabled"):
			user.AccountDisabled = strings.Contains(strings.ToLower(value), "true")
		}
	}
	return user
}

func (s *SambaService) CreateUser(ctx context.Context, params CreateUserParams) error {
	args := []string{"user", "create", params.Username, params.Password}

	if params.GivenName != "" {
		args = append(args, "--given-name", params.GivenName)
	}
	if params.Surname != "" {
		args = append(args, "--surname", params.Surname)
	}
	if params.Email != "" {
		args = append(args, "--mail-address", params.Email)
	}
	if params.Description != "" {
		args = append(args, "--description", params.Description)
	}
	if params.MustChangePassword {
		args = append(args, "--must-change-at-next-login")
	}

	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", args...)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", params.Username, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("User %s created", params.Username)
	return nil
}

func (s *SambaService) DeleteUser(ctx context.Context, username string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "user", "delete", username)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("User %s deleted", username)
	return nil
}

func (s *SambaService) EnableUser(ctx context.Context, username string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "user", "enable", username)
	if err != nil {
		return fmt.Errorf("failed to enable user %s: %w", username, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("User %s enabled", username)
	return nil
}

func (s *SambaService) DisableUser(ctx context.Context, username string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "user", "disable", username)
	if err != nil {
		return fmt.Errorf("failed to disable user %s: %w", username, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("User %s disabled", username)
	return nil
}

func (s *SambaService) SetPassword(ctx context.Context, username, newPassword string, mustChange bool) error {
	args := []string{"user", "setpassword", username, "--newpassword", newPassword}
	if mustChange {
		args = append(args, "--must-change-at-next-login")
	}

	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", args...)
	if err != nil {
		return fmt.Errorf("failed to set password for %s: %w", username, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("Password set for user %s", username)
	return nil
}
