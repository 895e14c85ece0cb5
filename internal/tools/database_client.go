package tools

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DBClient wraps the connection pool and reconnects on transient failures.
type DBClient struct {
	db        *sql.DB
	config    *DatabaseConfig
	mutex     sync.RWMutex
	connected bool
}

// NewDBClient reads the database configuration from the environment and
// connects.
func NewDBClient() (*DBClient, error) {
	var dbConfig DatabaseConfig
	if err := envconfig.Process("", &dbConfig); err != nil {
		return nil, fmt.Errorf("failed to process database configuration: %w", err)
	}

	client := &DBClient{
		config: &dbConfig,
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return client, nil
}

func (c *DBClient) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.config.User, c.config.Password, c.config.Host, c.config.Port, c.config.Name, c.config.SSLMode)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// Connect establishes the connection to the database
func (c *DBClient) Connect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	db, err := c.open()
	if err != nil {
		c.connected = false
		return err
	}

	c.db = db
	c.connected = true
	log.Printf("Successfully connected to PostgreSQL database: %s", c.config.Name)
	return nil
}

// Disconnect closes the database connection
func (c *DBClient) Disconnect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db == nil {
		c.connected = false
		return nil
	}

	err := c.db.Close()
	c.connected = false
	return err
}

// isConnectionError checks if an error indicates a connection problem
func (c *DBClient) isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errorMsg := strings.ToLower(err.Error())
	return strings.Contains(errorMsg, "connection") ||
		strings.Contains(errorMsg, "broken pipe") ||
		strings.Contains(errorMsg, "network") ||
		strings.Contains(errorMsg, "timeout") ||
		strings.Contains(errorMsg, "eof") ||
		strings.Contains(errorMsg, "connection refused") ||
		strings.Contains(errorMsg, "conn closed")
}

// reconnect attempts to reconnect to the database
func (c *DBClient) reconnect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.db != nil {
		c.db.Close()
	}
	c.connected = false

	time.Sleep(100 * time.Millisecond)

	db, err := c.open()
	if err != nil {
		return fmt.Errorf("failed to reconnect to database: %w", err)
	}

	c.db = db
	c.connected = true
	return nil
}

// executeWithRetry executes a database operation with automatic retry on
// connection errors
func (c *DBClient) executeWithRetry(operation func(*sql.DB) error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.mutex.RLock()
		db := c.db
		connected := c.connected
		c.mutex.RUnlock()

		if db == nil || !connected {
			if reconnectErr := c.reconnect(); reconnectErr != nil {
				lastErr = reconnectErr
				continue
			}
			c.mutex.RLock()
			db = c.db
			c.mutex.RUnlock()
		}

		err := operation(db)
		if err == nil {
			return nil
		}

		lastErr = err

		// If it's not a connection error, don't retry
		if !c.isConnectionError(err) {
			return err
		}

		c.mutex.Lock()
		c.connected = false
		c.mutex.Unlock()

		if attempt < maxRetries {
			if reconnectErr := c.reconnect(); reconnectErr != nil {
				lastErr = reconnectErr
			}
		}
	}

	return fmt.Errorf("database operation failed after %d retries, last error: %v", maxRetries+1, lastErr)
}

// DB returns the underlying sql.DB
func (c *DBClient) DB() *sql.DB {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.db
}

// Exec executes a statement with retry mechanism
func (c *DBClient) Exec(query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result
	err := c.executeWithRetry(func(db *sql.DB) error {
		res, err := db.Exec(query, args...)
		if err != nil {
			return err
		}
		result = res
		return nil
	}, 2)
	return result, err
}

// Query executes a query that returns rows with retry mechanism
func (c *DBClient) Query(query string, args ...interface{}) (*sql.Rows, error) {
	var rows *sql.Rows
	err := c.executeWithRetry(func(db *sql.DB) error {
		res, err := db.Query(query, args...)
		if err != nil {
			return err
		}
		rows = res
		return nil
	}, 2)
	return rows, err
}

// IsConnected returns the current connection status
func (c *DBClient) IsConnected() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.connected
}

// HealthCheck performs a simple query to verify the connection is working
func (c *DBClient) HealthCheck() error {
	return c.executeWithRetry(func(db *sql.DB) error {
		var result int
		return db.QueryRow("SELECT 1").Scan(&result)
	}, 2)
}
