package samba

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ListZones reports the forward zone of the provisioned domain. Full zone
// enumeration needs an authenticated query, which read endpoints avoid.
func (s *SambaService) ListZones(ctx context.Context) ([]DNSZone, error) {
	info, err := s.DomainInfo(ctx)
	if err != nil {
		return nil, err
	}

	var zones []DNSZone
	if info.Domain != "" {
		zones = append(zones, DNSZone{Name: info.Domain, Type: "forward"})
	}
	return zones, nil
}

func (s *SambaService) AddDNSRecord(ctx context.Context, record DNSRecord, adminPassword string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool",
		"dns", "add", s.config.Server, record.Zone, record.Name, record.Type, record.Data,
		"-U", "Administrator%"+adminPassword)
	if err != nil {
		return fmt.Errorf("failed to add DNS record: %w", err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("DNS record added: %s.%s %s %s", record.Name, record.Zone, record.Type, record.Data)
	return nil
}

func (s *SambaService) DeleteDNSRecord(ctx context.Context, record DNSRecord, adminPassword string) error {
	result, err := s.runner.Run(ctx, 30*time.Second, "samba-tool",
		"dns", "delete", s.config.Server, record.Zone, record.Name, record.Type, record.Data,
		"-U", "Administrator%"+adminPassword)
	if err != nil {
		return fmt.Errorf("failed to delete DNS record: %w", err)
	}
	if result.ExitCode != 0 {
		return classifyToolError(result.Stderr)
	}

	log.Printf("DNS record deleted: %s.%s %s %s", record.Name, record.Zone, record.Type, record.Data)
	return nil
}
