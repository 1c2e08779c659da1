package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Kingcorpe/portmanagement--sub005/internal/dialect"
)

// Endpoint is one side of the sync: a driver, a connection string, and
// an optional schema (resolved from the connection when empty).
type Endpoint struct {
	Name   string
	Driver string
	DSN    string
	Schema string
}

// GetEndpoint reads the "source" or "target" endpoint from config.
// A missing DSN is a top-level fatal error: the connection strings are
// deliberately not defaulted anywhere.
func GetEndpoint(name string) (*Endpoint, error) {
	ep := &Endpoint{
		Name:   name,
		Driver: viper.GetString(name + ".driver"),
		DSN:    viper.GetString(name + ".dsn"),
		Schema: viper.GetString(name + ".schema"),
	}
	if ep.DSN == "" {
		return nil, fmt.Errorf("%s.dsn is required (flag, config file, or PORTSYNC_%s_DSN)",
			name, strings.ToUpper(name))
	}
	if ep.Driver == "" {
		ep.Driver = "postgres"
	}
	return ep, nil
}

// Connect opens and pings the endpoint's connection pool and resolves
// the working schema. The caller owns closing the pool.
func (e *Endpoint) Connect() (*sql.DB, dialect.Dialect, error) {
	db, err := sql.Open(e.Driver, e.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s db: %w", e.Name, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to %s db: %w", e.Name, err)
	}

	d := dialect.Get(e.Driver)
	if e.Schema == "" {
		schemaName, err := d.CurrentSchema(db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to resolve %s schema: %w", e.Name, err)
		}
		e.Schema = schemaName
	}
	return db, d, nil
}

// keyOverrides reads the per-table identity column declarations from
// sync.keys.
func keyOverrides() map[string][]string {
	raw := viper.GetStringMapStringSlice("sync.keys")
	if len(raw) == 0 {
		return nil
	}
	keys := make(map[string][]string, len(raw))
	for table, cols := range raw {
		keys[table] = cols
	}
	return keys
}
