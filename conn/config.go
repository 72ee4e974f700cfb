package conn

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"

	"github.com/syssam/strata"
	"github.com/syssam/strata/dialect"
)

// Endpoint is the connection configuration for a single mode.
// Either DSN or the host/database fields must be set; credentials are
// required for networked dialects.
type Endpoint struct {
	// Dialect is one of "mysql", "postgres", "sqlite".
	Dialect string `yaml:"dialect"`
	// DSN is the full data source name. When set, it takes precedence
	// over the host/port/database fields. Credentials from Username and
	// Password are still applied for MySQL and Postgres.
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Config holds the per-mode endpoints consumed by the Provider.
type Config struct {
	Read  *Endpoint `yaml:"read"`
	Write *Endpoint `yaml:"write"`
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected so
// that typos fail at load time instead of silently dropping an endpoint.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("conn: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("conn: read config: %w", err)
	}
	return ParseConfig(data)
}

// endpoint returns the endpoint for the mode, or a MissingConfigError.
func (c Config) endpoint(mode Mode) (*Endpoint, error) {
	var ep *Endpoint
	switch mode {
	case Read:
		ep = c.Read
	case Write:
		ep = c.Write
	}
	if ep == nil {
		return nil, strata.NewMissingConfigError(string(mode), "")
	}
	return ep, nil
}

// validate checks the endpoint shape for the given mode. Errors are
// MissingConfigErrors raised eagerly at Provider construction.
func (e *Endpoint) validate(mode Mode) error {
	switch e.Dialect {
	case dialect.MySQL, dialect.Postgres:
		if e.DSN == "" && (e.Host == "" || e.Database == "") {
			return strata.NewMissingConfigError(string(mode), "dsn or host/database required")
		}
		if e.Username == "" {
			return strata.NewMissingConfigError(string(mode), "username required")
		}
		if e.Password == "" {
			return strata.NewMissingConfigError(string(mode), "password required")
		}
	case dialect.SQLite:
		if e.DSN == "" {
			return strata.NewMissingConfigError(string(mode), "dsn required")
		}
	case "":
		return strata.NewMissingConfigError(string(mode), "dialect required")
	default:
		return strata.NewMissingConfigError(string(mode), fmt.Sprintf("unsupported dialect %q", e.Dialect))
	}
	return nil
}

// dsn renders the driver-level data source name for the endpoint.
// MySQL DSNs are built through mysql.Config so that credentials and
// options are escaped by the driver, never by string concatenation.
func (e *Endpoint) dsn() string {
	if e.DSN != "" {
		return e.DSN
	}
	switch e.Dialect {
	case dialect.MySQL:
		cfg := mysql.NewConfig()
		cfg.User = e.Username
		cfg.Passwd = e.Password
		cfg.Net = "tcp"
		cfg.Addr = e.addr("3306")
		cfg.DBName = e.Database
		cfg.ParseTime = true
		return cfg.FormatDSN()
	case dialect.Postgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(e.Username, e.Password),
			Host:   e.addr("5432"),
			Path:   "/" + e.Database,
		}
		return u.String()
	default:
		return e.DSN
	}
}

func (e *Endpoint) addr(defaultPort string) string {
	port := defaultPort
	if e.Port != 0 {
		port = strconv.Itoa(e.Port)
	}
	return e.Host + ":" + port
}
