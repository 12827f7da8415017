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

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/maktaba/maktaba/pkg/assert"
	"github.com/maktaba/maktaba/pkg/dirs"
	"github.com/pkg/errors"
)

var envKeys = []string{"APP_ENV", "PORT", "DB_DRIVER", "DBPath", "DB_DSN", "LOG_LEVEL", "LOCALE", ConfigEnvKey}

// clearEnv isolates the test from the environment and from a config file in
// the user's config directory
func clearEnv(t *testing.T) {
	// registered first so that it runs after the environment is restored
	t.Cleanup(dirs.Reload)

	for _, key := range envKeys {
		t.Setenv(key, "")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dirs.Reload()
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(errors.Wrap(err, "writing config file"))
	}

	return path
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:     "3000",
		DBDriver: "sqlite",
		DBPath:   "test.db",
		LogLevel: "info",
		Locale:   "ar",
	}

	testCases := []struct {
		modify      func(c *Config)
		expectedErr error
	}{
		{
			modify:      func(c *Config) {},
			expectedErr: nil,
		},
		{
			modify:      func(c *Config) { c.DBPath = "" },
			expectedErr: ErrDBMissingPath,
		},
		{
			modify:      func(c *Config) { c.DBDriver = "postgres" },
			expectedErr: ErrDBMissingDSN,
		},
		{
			modify: func(c *Config) {
				c.DBDriver = "postgres"
				c.DBPath = ""
				c.DBDSN = "postgres://localhost/maktaba"
			},
			expectedErr: nil,
		},
		{
			modify:      func(c *Config) { c.DBDriver = "mysql" },
			expectedErr: ErrDBDriverInvalid,
		},
		{
			modify:      func(c *Config) { c.Port = "" },
			expectedErr: ErrPortInvalid,
		},
		{
			modify:      func(c *Config) { c.Port = "http" },
			expectedErr: ErrPortInvalid,
		},
		{
			modify:      func(c *Config) { c.Port = "70000" },
			expectedErr: ErrPortInvalid,
		},
		{
			modify:      func(c *Config) { c.Locale = "fr" },
			expectedErr: ErrLocaleInvalid,
		},
		{
			modify:      func(c *Config) { c.Locale = "en-GB" },
			expectedErr: nil,
		},
		{
			modify:      func(c *Config) { c.LogLevel = "verbose" },
			expectedErr: ErrLogLevelInvalid,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			c := valid
			tc.modify(&c)

			err := validate(c)

			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
		})
	}
}

func TestNewDefaults(t *testing.T) {
	clearEnv(t)

	c, err := New(Params{})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating config"))
	}

	assert.Equal(t, c.AppEnv, AppEnvProduction, "app env mismatch")
	assert.Equal(t, c.Port, "3001", "port mismatch")
	assert.Equal(t, c.DBDriver, "sqlite", "driver mismatch")
	assert.Equal(t, c.DBPath, dirs.DefaultDBPath(), "db path mismatch")
	assert.Equal(t, c.LogLevel, "info", "log level mismatch")
	assert.Equal(t, c.Locale, "ar", "locale mismatch")
	assert.Equal(t, c.ConfigFile, dirs.DefaultConfigPath(), "config file mismatch")
	assert.Equal(t, c.IsProd(), true, "IsProd mismatch")
}

func TestNewPrecedence(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `port: "4000"
dbPath: /from/file.db
logLevel: warn
locale: en
`)

	t.Run("file over default", func(t *testing.T) {
		c, err := New(Params{ConfigFile: path})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.Port, "4000", "port mismatch")
		assert.Equal(t, c.DBPath, "/from/file.db", "db path mismatch")
		assert.Equal(t, c.LogLevel, "warn", "log level mismatch")
		assert.Equal(t, c.Locale, "en", "locale mismatch")
		assert.Equal(t, c.DBDriver, "sqlite", "driver mismatch")
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("PORT", "5000")
		t.Setenv(ConfigEnvKey, path)

		c, err := New(Params{})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.Port, "5000", "port mismatch")
		assert.Equal(t, c.DBPath, "/from/file.db", "db path mismatch")
		assert.Equal(t, c.ConfigFile, path, "config file mismatch")
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("PORT", "5000")

		c, err := New(Params{Port: "6000", ConfigFile: path})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating config"))
		}

		assert.Equal(t, c.Port, "6000", "port mismatch")
	})
}

func TestNewConfigFileErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := New(Params{ConfigFile: filepath.Join(t.TempDir(), "nope.yml")})

		assert.NotEqual(t, err, nil, "error mismatch")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfigFile(t, "port: [")

		_, err := New(Params{ConfigFile: path})

		assert.NotEqual(t, err, nil, "error mismatch")
	})

	t.Run("invalid value from file", func(t *testing.T) {
		path := writeConfigFile(t, "dbDriver: oracle\n")

		_, err := New(Params{ConfigFile: path})

		assert.Equal(t, errors.Cause(err), ErrDBDriverInvalid, "error mismatch")
	})
}

func TestDatabaseOptions(t *testing.T) {
	c := Config{DBDriver: "postgres", DBDSN: "postgres://db", DBPath: "x.db", LogLevel: "debug"}

	opts := c.DatabaseOptions()

	assert.Equal(t, opts.Driver, "postgres", "driver mismatch")
	assert.Equal(t, opts.DSN, "postgres://db", "dsn mismatch")
	assert.Equal(t, opts.Path, "x.db", "path mismatch")
	assert.Equal(t, opts.LogLevel, "debug", "log level mismatch")
}
