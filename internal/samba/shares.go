package samba

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Shares global/printers/print$ are smbd internals, never listed or counted.
var specialShares = map[string]bool{
	"global":   true,
	"printers": true,
	"print$":   true,
}

func (s *SambaService) ListShares(ctx context.Context) ([]Share, error) {
	result, err := s.runner.Run(ctx, 30*time.Second, "net", "conf", "list")
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	var shares []Share
	for _, section := range parseConfSections(result.Stdout) {
		if specialShares[section.Name] {
			continue
		}
		shares = append(shares, shareFromParams(section.Name, section.Params))
	}
	return shares, nil
}

func (s *SambaService) GetShare(ctx context.Context, sharename string) (*Share, error) {
	result, err := s.runner.Run(ctx, 10*time.Second, "net", "conf", "showshare", sharename)
	if err != nil {
		return nil, fmt.Errorf("failed to show share %s: %w", sharename, err)
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	params := make(map[string]string)
	for _, section := range parseConfSections(result.Stdout) {
		for key, value := range section.Params {
			params[key] = value
		}
	}
	share := shareFromParams(sharename, params)
	return &share, nil
}

func shareFromParams(name string, params map[string]string) Share {
	share := Share{
		Name:       name,
		Path:       params["path"],
		Comment:    params["comment"],
		Browseable: true,
	}
	if value, ok := params["read only"]; ok {
		share.ReadOnly = confBool(value)
	}
	if value, ok := params["guest ok"]; ok {
		share.GuestOK = confBool(value)
	}
	if value, ok := params["browseable"]; ok {
		share.Browseable = confBool(value)
	} else if value, ok := params["browsable"]; ok {
		share.Browseable = confBool(value)
	}
	return share
}

func (s *SambaService) CreateShare(ctx context.Context, params ShareParams) error {
	if err := s.runConf(ctx, "addshare", params.Name, params.Path, "writeable=yes", "guest_ok=no"); err != nil {
		return fmt.Errorf("failed to create share %s: %w", params.Name, err)
	}

	setparms := [][2]string{
		{"read only", yesNo(params.ReadOnly)},
		{"guest ok", yesNo(params.GuestOK)},
		{"browseable", yesNo(params.Browseable)},
	}
	if params.Comment != "" {
		setparms = append(setparms, [2]string{"comment", params.Comment})
	}

	for _, parm := range setparms {
		if err := s.runConf(ctx, "setparm", params.Name, parm[0], parm[1]); err != nil {
			// Half-configured shares are worse than none; drop it again.
			if delErr := s.runConf(ctx, "delshare", params.Name); delErr != nil {
				log.Printf("Could not clean up share %s after failed configuration: %v", params.Name, delErr)
			}
			return fmt.Errorf("failed to configure share %s: %w", params.Name, err)
		}
	}

	log.Printf("Share %s created", params.Name)
	return nil
}

func (s *SambaService) UpdateShare(ctx context.Context, sharename string, update ShareUpdate) error {
	type confOp struct {
		args []string
	}
	var ops []confOp

	if update.Path != nil {
		ops = append(ops, confOp{[]string{"setparm", sharename, "path", *update.Path}})
	}
	if update.Comment != nil {
		if *update.Comment != "" {
			ops = append(ops, confOp{[]string{"setparm", sharename, "comment", *update.Comment}})
		} else {
			ops = append(ops, confOp{[]string{"delparm", sharename, "comment"}})
		}
	}
	if update.ReadOnly != nil {
		ops = append(ops, confOp{[]string{"setparm", sharename, "read only", yesNo(*update.ReadOnly)}})
	}
	if update.GuestOK != nil {
		ops = append(ops, confOp{[]string{"setparm", sharename, "guest ok", yesNo(*update.GuestOK)}})
	}
	if update.Browseable != nil {
		ops = append(ops, confOp{[]string{"setparm", sharename, "browseable", yesNo(*update.Browseable)}})
	}

	if len(ops) == 0 {
		log.Printf("No changes to apply for share %s", sharename)
		return nil
	}

	for _, op := range ops {
		if err := s.runConf(ctx, op.args...); err != nil {
			return fmt.Errorf("failed to update share %s: %w", sharename, err)
		}
	}

	log.Printf("Share %s updated", sharename)
	return nil
}

func (s *SambaService) DeleteShare(ctx context.Context, sharename string) error {
	if err := s.runConf(ctx, "delshare", sharename); err != nil {
		return fmt.Errorf("failed to delete share %s: %w", sharename, err)
	}

	log.Printf("Share %s deleted", sharename)
	return nil
}

func (s *SambaService) runConf(ctx context.Context, args ...string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "net", append([]string{"conf"}, args...)...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
