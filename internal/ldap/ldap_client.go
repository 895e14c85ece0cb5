package ldap

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	ldapv3 "github.com/go-ldap/ldap/v3"
	"github.com/kelseyhightower/envconfig"
)

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process LDAP configuration: %w", err)
	}
	return &config, nil
}

// dial opens a fresh connection to the directory. Every bind attempt gets
// its own connection so a failed method cannot poison a later one.
func (b *Bridge) dial() (*ldapv3.Conn, error) {
	opts := []ldapv3.DialOpt{
		ldapv3.DialWithDialer(&net.Dialer{Timeout: 5 * time.Second}),
	}
	if strings.HasPrefix(b.config.URL, "ldaps://") {
		opts = append(opts, ldapv3.DialWithTLSConfig(&tls.Config{
			InsecureSkipVerify: b.config.SkipTLSVerify,
		}))
	}

	conn, err := ldapv3.DialURL(b.config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}
	conn.SetTimeout(10 * time.Second)
	return conn, nil
}
