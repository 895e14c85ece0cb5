package samba

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

func (s *SambaService) ListGroups(ctx context.Context) ([]Group, error) {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "group", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	var groups []Group
	for _, groupname := range nonEmptyLines(result.Stdout) {
		groups = append(groups, s.groupDetails(ctx, groupname))
	}
	return groups, nil
}

func (s *SambaService) GetGroup(ctx context.Context, groupname string) (*Group, error) {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "group", "show", groupname)
	if err != nil {
		return nil, fmt.Errorf("failed to show group %s: %w", groupname, err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	group := Group{
		Name:        groupname,
		Description: parseKeyValues(result.Stdout)["description"],
		Members:     s.groupMembers(ctx, groupname),
	}
	return &group, nil
}

func (s *SambaService) groupDetails(ctx context.Context, groupname string) Group {
	group := Group{Name: groupname}

	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "group", "show", groupname)
	if err == nil && result.ExitCode == 0 {
		group.Description = parseKeyValues(result.Stdout)["description"]
	} else if err != nil {
		log.Printf("Could not get details for group %s: %v", groupname, err)
	}

	group.Members = s.groupMembers(ctx, groupname)
	return group
}

func (s *SambaService) groupMembers(ctx context.Context, groupname string) []string {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "group", "listmembers", groupname)
	if err != nil || result.ExitCode != 0 {
		if err != nil {
			log.Printf("Could not get members for group %s: %v", groupname, err)
		}
		return nil
	}
	return nonEmptyLines(result.Stdout)
}

func (s *SambaService) CreateGroup(ctx context.Context, groupname, description string) error {
	args := []string{"group", "add", groupname}
	if description != "" {
		args = append(args, "--description", description)
	}

	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", args...)
	if err != nil {
		return fmt.Errorf("failed to create group %s: %w", groupname, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("Group %s created", groupname)
	return nil
}

func (s *SambaService) DeleteGroup(ctx context.Context, groupname string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool", "group", "delete", groupname)
	if err != nil {
		return fmt.Errorf("failed to delete group %s: %w", groupname, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("Group %s deleted", groupname)
	return nil
}

func (s *SambaService) AddGroupMembers(ctx context.Context, groupname string, usernames []string) error {
	// samba-tool takes the member list as a single comma-separated argument.
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool",
		"group", "addmembers", groupname, strings.Join(usernames, ","))
	if err != nil {
		return fmt.Errorf("failed to add members to group %s: %w", groupname, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("Added %d member(s) to group %s", len(usernames), groupname)
	return nil
}

func (s *SambaService) RemoveGroupMembers(ctx context.Context, groupname string, usernames []string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool",
		"group", "removemembers", groupname, strings.Join(usernames, ","))
	if err != nil {
		return fmt.Errorf("failed to remove members from group %s: %w", groupname, err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("Removed %d member(s) from group %s", len(usernames), groupname)
	return nil
}
