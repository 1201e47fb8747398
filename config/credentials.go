// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variable names read by [Load].
const (
	EnvGoogleAPIKey             = "GOOGLE_API_KEY"
	EnvPostgresConnectionString = "POSTGRES_CONNECTION_STRING"
	EnvConnectionURL            = "CONNECTION_URL"
	EnvP5APIKey                 = "P5_API_KEY"
)

var names = []string{
	EnvGoogleAPIKey,
	EnvPostgresConnectionString,
	EnvConnectionURL,
	EnvP5APIKey,
}

// Names returns the environment variable names read by [Load], in a stable order.
func Names() []string {
	return slices.Clone(names)
}

// ErrInvalidCredentials is returned by [Credentials.Validate].
var ErrInvalidCredentials = errors.New("invalid credentials")

// LookupFunc reports the value of the named variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// MapLookup returns a [LookupFunc] backed by m.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Chain returns a [LookupFunc] that consults lookups in order and returns the first hit.
func Chain(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Credentials is an immutable snapshot of the secret configuration values.
type Credentials struct {
	values map[string]string
}

// Load reads every credential once through lookup.
func Load(lookup LookupFunc) *Credentials {
	values := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := lookup(name); ok {
			values[name] = v
		}
	}
	return &Credentials{values: values}
}

// LoadFromEnv reads the credentials from the process environment.
func LoadFromEnv() *Credentials {
	return Load(os.LookupEnv)
}

// LoadWithDotEnv reads the credentials from the process environment, falling
// back to the given dotenv files for variables the environment does not set.
//
// Files that do not exist are skipped. When several files define a variable
// the first one wins.
func LoadWithDotEnv(paths ...string) (*Credentials, error) {
	fileValues := make(map[string]string)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read dotenv file %q: %w", path, err)
		}
		for k, v := range values {
			if _, ok := fileValues[k]; !ok {
				fileValues[k] = v
			}
		}
	}

	return Load(Chain(os.LookupEnv, MapLookup(fileValues))), nil
}

// Get returns the value of the named credential, or the empty string when it is not set.
func (c *Credentials) Get(name string) string {
	return c.values[name]
}

// Has reports whether the named credential was set when the snapshot was taken.
func (c *Credentials) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// GoogleAPIKey returns the value of GOOGLE_API_KEY.
func (c *Credentials) GoogleAPIKey() string {
	return c.Get(EnvGoogleAPIKey)
}

// PostgresConnectionString returns the value of POSTGRES_CONNECTION_STRING.
func (c *Credentials) PostgresConnectionString() string {
	return c.Get(EnvPostgresConnectionString)
}

// ConnectionURL returns the value of CONNECTION_URL.
func (c *Credentials) ConnectionURL() string {
	return c.Get(EnvConnectionURL)
}

// P5APIKey returns the value of P5_API_KEY.
func (c *Credentials) P5APIKey() string {
	return c.Get(EnvP5APIKey)
}

// requiredCredentials is the validation view of [Credentials].
type requiredCredentials struct {
	GoogleAPIKey             string `validate:"required"`
	PostgresConnectionString string `validate:"required"`
	ConnectionURL            string `validate:"required,url"`
	P5APIKey                 string `validate:"required"`
}

var fieldEnv = map[string]string{
	"GoogleAPIKey":             EnvGoogleAPIKey,
	"PostgresConnectionString": EnvPostgresConnectionString,
	"ConnectionURL":            EnvConnectionURL,
	"P5APIKey":                 EnvP5APIKey,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every credential that is missing or malformed.
//
// The returned error wraps [ErrInvalidCredentials].
func (c *Credentials) Validate() error {
	err := validate.Struct(requiredCredentials{
		GoogleAPIKey:             c.GoogleAPIKey(),
		PostgresConnectionString: c.PostgresConnectionString(),
		ConnectionURL:            c.ConnectionURL(),
		P5APIKey:                 c.P5APIKey(),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate credentials: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		env := fieldEnv[fe.StructField()]
		switch fe.Tag() {
		case "required":
			problems = append(problems, env+" is not set")
		default:
			problems = append(problems, fmt.Sprintf("%s is not a valid %s", env, fe.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidCredentials, strings.Join(problems, "; "))
}

// LogValue implements [slog.LogValuer]. Only the presence of each credential is logged.
func (c *Credentials) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.Bool(name, c.Has(name)))
	}
	return slog.GroupValue(attrs...)
}
