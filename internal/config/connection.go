package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ErrConfigMissing marks a connection file that is absent or incomplete.
// The process must not start serving requests when it is returned.
var ErrConfigMissing = errors.New("connection config missing")

// RequiredKeys lists the keys every connection file must define.
var RequiredKeys = []string{"HOST", "PORT", "DATABASE", "USERNAME", "PASSWORD"}

// MissingKeysError reports required keys absent from a connection file.
type MissingKeysError struct {
	Path string
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("%s: missing keys %s", e.Path, strings.Join(e.Keys, ", "))
}

// Unwrap lets errors.Is match ErrConfigMissing.
func (e *MissingKeysError) Unwrap() error { return ErrConfigMissing }

// Load parses a KEY=VALUE connection file. Blank lines and lines starting with '#'
// are skipped, and whitespace around keys and values is trimmed. Lines without '='
// are ignored.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMissing, err)
	}
	defer f.Close()

	values := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := values[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingKeysError{Path: path, Keys: missing}
	}
	return values, nil
}

// Connection holds the typed database connection settings.
type Connection struct {
	Driver   string // postgres (default) or sqlite
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string
}

// ParseConnection converts a loaded mapping into a Connection.
// DRIVER and SSLMODE are optional.
func ParseConnection(values map[string]string) (Connection, error) {
	port, err := strconv.Atoi(values["PORT"])
	if err != nil {
		return Connection{}, fmt.Errorf("invalid PORT %q: %w", values["PORT"], err)
	}
	c := Connection{
		Driver:   strings.ToLower(values["DRIVER"]),
		Host:     values["HOST"],
		Port:     port,
		Database: values["DATABASE"],
		Username: values["USERNAME"],
		Password: values["PASSWORD"],
		SSLMode:  values["SSLMODE"],
	}
	if c.Driver == "" {
		c.Driver = "postgres"
	}
	if c.Driver != "postgres" && c.Driver != "sqlite" {
		return Connection{}, fmt.Errorf("unsupported DRIVER %q", c.Driver)
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return c, nil
}

// LoadConnection loads and parses a connection file in one step.
func LoadConnection(path string) (Connection, error) {
	values, err := Load(path)
	if err != nil {
		return Connection{}, err
	}
	return ParseConnection(values)
}

// DSN returns the connection string for the configured driver.
// For sqlite, DATABASE is the file path.
func (c Connection) DSN() string {
	if c.Driver == "sqlite" {
		return c.Database
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (c Connection) URL() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// String describes the target without the password, for logs.
func (c Connection) String() string {
	if c.Driver == "sqlite" {
		return "sqlite:" + c.Database
	}
	return fmt.Sprintf("%s host=%s port=%d dbname=%s user=%s", c.Driver, c.Host, c.Port, c.Database, c.Username)
}
