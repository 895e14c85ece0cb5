package samba

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// SambaService drives samba-tool and net conf through a Runner.
type SambaService struct {
	runner Runner
	config *Config
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process Samba configuration: %w", err)
	}
	return &config, nil
}

func NewSambaService(runner Runner, config *Config) *SambaService {
	return &SambaService{
		runner: runner,
		config: config,
	}
}

func NewService() (Service, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewSambaService(NewExecRunner(), config), nil
}

func (s *SambaService) Config() *Config {
	return s.config
}

func (s *SambaService) Runner() Runner {
	return s.runner
}
