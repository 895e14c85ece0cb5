package tools

import (
	"fmt"
	"log"
	"time"
)

// ProvisionRecord is one row of the provisioning audit trail. The table is
// informational; the configuration file on disk remains the source of truth
// for whether a domain exists.
type ProvisionRecord struct {
	ID         int64     `json:"id"`
	Realm      string    `json:"realm"`
	Domain     string    `json:"domain"`
	DNSBackend string    `json:"dns_backend"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryStore persists provisioning attempts.
type HistoryStore struct {
	client *DBClient
}

func NewHistoryStore(client *DBClient) *HistoryStore {
	return &HistoryStore{client: client}
}

// EnsureSchema creates the history table if it does not exist.
func (s *HistoryStore) EnsureSchema() error {
	_, err := s.client.Exec(`
		CREATE TABLE IF NOT EXISTS provision_history (
			id          BIGSERIAL PRIMARY KEY,
			realm       TEXT NOT NULL,
			domain      TEXT NOT NULL,
			dns_backend TEXT NOT NULL,
			status      TEXT NOT NULL,
			message     TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create provision_history table: %w", err)
	}
	return nil
}

// Record inserts one provisioning attempt. Storage failures are logged and
// swallowed so bookkeeping can never break a provision or reset.
func (s *HistoryStore) Record(rec ProvisionRecord) {
	_, err := s.client.Exec(
		`INSERT INTO provision_history (realm, domain, dns_backend, status, message) VALUES ($1, $2, $3, $4, $5)`,
		rec.Realm, rec.Domain, rec.DNSBackend, rec.Status, rec.Message)
	if err != nil {
		log.Printf("failed to record provisioning attempt: %v", err)
	}
}

// Recent returns the newest provisioning attempts, most recent first.
func (s *HistoryStore) Recent(limit int) ([]ProvisionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.client.Query(
		`SELECT id, realm, domain, dns_backend, status, message, created_at
		 FROM provision_history ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query provision history: %w", err)
	}
	defer rows.Close()

	var records []ProvisionRecord
	for rows.Next() {
		var rec ProvisionRecord
		if err := rows.Scan(&rec.ID, &rec.Realm, &rec.Domain, &rec.DNSBackend, &rec.Status, &rec.Message, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan provision history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
