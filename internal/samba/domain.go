package samba

import (
	"context"
	"strings"
	"time"
)

// DomainInfo queries the directory for domain details. The server address
// must be an IP; samba-tool rejects "localhost" here.
func (s *SambaService) DomainInfo(ctx context.Context) (*DomainInfo, error) {
	result, err := s.runner.Run(ctx, 10*time.Second, "samba-tool", "domain", "info", s.config.Server)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, classifyToolError(result.Stderr)
	}

	values := parseKeyValues(result.Stdout)
	return &DomainInfo{
		Forest:        values["Forest"],
		Domain:        values["Domain"],
		NetbiosDomain: strings.ToUpper(values["Netbios domain"]),
		DCName:        values["DC name"],
		Raw:           values,
	}, nil
}
