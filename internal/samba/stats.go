package samba

import (
	"context"
	"log"
	"strings"
	"time"
)

// Shares created by provisioning itself are not operator content.
var defaultShares = map[string]bool{
	"global":   true,
	"sysvol":   true,
	"netlogon": true,
	"printers": true,
	"print$":   true,
}

// DashboardStats gathers the landing-page counters. Each counter is
// best-effort: a failing backend command yields zero, never an error.
func (s *SambaService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return &DashboardStats{
		TotalUsers:      s.countListed(ctx, "user"),
		TotalGroups:     s.countListed(ctx, "group"),
		TotalShares:     s.countShares(ctx),
		TotalDNSRecords: s.countDNSRecords(ctx),
	}, nil
}

func (s *SambaService) countListed(ctx context.Context, kind string) int {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", kind, "list")
	if err != nil || result.ExitCode != 0 {
		if err != nil {
			log.Printf("Error counting %ss: %v", kind, err)
		}
		return 0
	}
	return len(nonEmptyLines(result.Stdout))
}

func (s *SambaService) countShares(ctx context.Context) int {
	result, err := s.runner.Run(ctx, 10*time.Second, "net", "conf", "list")
	if err != nil || result.ExitCode != 0 {
		if err != nil {
			log.Printf("Error counting shares: %v", err)
		}
		return 0
	}

	count := 0
	for _, section := range parseConfSections(result.Stdout) {
		if !defaultShares[strings.ToLower(section.Name)] {
			count++
		}
	}
	return count
}

func (s *SambaService) countDNSRecords(ctx context.Context) int {
	info, err := s.DomainInfo(ctx)
	if err != nil || info.Domain == "" {
		if err != nil {
			log.Printf("Error counting DNS records: %v", err)
		}
		return 0
	}

	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool",
		"dns", "query", s.config.Server, strings.ToLower(info.Domain), "@", "ALL")
	if err != nil || result.ExitCode != 0 {
		return 0
	}

	count := 0
	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.Contains(line, "Name=") || strings.Contains(line, "name=") {
			count++
		}
	}
	return count
}
