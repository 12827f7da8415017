/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config resolves the server configuration from flags, the
// environment, an optional YAML file and defaults, in that order
package config

import (
	"os"
	"strconv"

	"github.com/maktaba/maktaba/pkg/dirs"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/maktaba/maktaba/pkg/server/messages"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// ConfigEnvKey names the environment variable holding the config file path
	ConfigEnvKey = "MAKTABA_CONFIG"
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrDBMissingDSN is an error for a postgres configuration without a connection string
	ErrDBMissingDSN = errors.New("DB DSN is empty")
	// ErrDBDriverInvalid is an error for an unsupported database driver
	ErrDBDriverInvalid = errors.New("Invalid DB driver")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrLocaleInvalid is an error for a locale without translations
	ErrLocaleInvalid = errors.New("Invalid locale")
	// ErrLogLevelInvalid is an error for an unknown log level
	ErrLogLevelInvalid = errors.New("Invalid log level")
)

// File is the content of the YAML config file
type File struct {
	AppEnv   string `yaml:"appEnv"`
	Port     string `yaml:"port"`
	DBDriver string `yaml:"dbDriver"`
	DBPath   string `yaml:"dbPath"`
	DBDSN    string `yaml:"dbDSN"`
	LogLevel string `yaml:"logLevel"`
	Locale   string `yaml:"locale"`
}

// ReadFile reads the YAML config file at path. A missing file yields an
// empty File unless required is set.
func ReadFile(path string, required bool) (File, error) {
	var ret File

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return ret, nil
		}

		return ret, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrapf(err, "unmarshalling config file %s", path)
	}

	return ret, nil
}

// resolve returns value if non-empty, otherwise env var, otherwise the
// value from the config file, otherwise default
func resolve(value, envKey, fileVal, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	if fileVal != "" {
		return fileVal
	}

	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv   string
	Port     string
	DBDriver string
	DBPath   string
	DBDSN    string
	LogLevel string
	Locale   string
	// ConfigFile is the config file that was consulted
	ConfigFile string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv     string
	Port       string
	DBDriver   string
	DBPath     string
	DBDSN      string
	LogLevel   string
	Locale     string
	ConfigFile string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables, the config
// file and defaults.
func New(p Params) (Config, error) {
	// A config file named by a flag or the environment must exist
	configFile := resolve(p.ConfigFile, ConfigEnvKey, "", "")
	required := configFile != ""
	if configFile == "" {
		configFile = dirs.DefaultConfigPath()
	}

	f, err := ReadFile(configFile, required)
	if err != nil {
		return Config{}, err
	}

	c := Config{
		AppEnv:     resolve(p.AppEnv, "APP_ENV", f.AppEnv, AppEnvProduction),
		Port:       resolve(p.Port, "PORT", f.Port, "3001"),
		DBDriver:   resolve(p.DBDriver, "DB_DRIVER", f.DBDriver, database.DriverSQLite),
		DBPath:     resolve(p.DBPath, "DBPath", f.DBPath, dirs.DefaultDBPath()),
		DBDSN:      resolve(p.DBDSN, "DB_DSN", f.DBDSN, ""),
		LogLevel:   resolve(p.LogLevel, "LOG_LEVEL", f.LogLevel, log.LevelInfo),
		Locale:     resolve(p.Locale, "LOCALE", f.Locale, "ar"),
		ConfigFile: configFile,
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

// DatabaseOptions returns the options to open the configured database
func (c Config) DatabaseOptions() database.Options {
	return database.Options{
		Driver:   c.DBDriver,
		Path:     c.DBPath,
		DSN:      c.DBDSN,
		LogLevel: c.LogLevel,
	}
}

func validate(c Config) error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return errors.Wrapf(ErrPortInvalid, "'%s'", c.Port)
	}

	switch c.DBDriver {
	case database.DriverSQLite:
		if c.DBPath == "" {
			return ErrDBMissingPath
		}
	case database.DriverPostgres:
		if c.DBDSN == "" {
			return ErrDBMissingDSN
		}
	default:
		return errors.Wrapf(ErrDBDriverInvalid, "'%s'", c.DBDriver)
	}

	if _, err := messages.ParseLocale(c.Locale); err != nil {
		return errors.Wrapf(ErrLocaleInvalid, "'%s'", c.Locale)
	}
	if !log.ValidLevel(c.LogLevel) {
		return errors.Wrapf(ErrLogLevelInvalid, "'%s'", c.LogLevel)
	}

	return nil
}
