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

// Package database defines the catalog models and manages the connection
// to the underlying store
package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// SQLiteDriverName is the sqlite driver with the catalog functions
	// registered on every connection
	SQLiteDriverName = "sqlite3_maktaba"
	// UnicodeLowerFunc is the sqlite function lowercasing non-ASCII letters.
	// The built-in LOWER only folds ASCII.
	UnicodeLowerFunc = "unicode_lower"
)

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(UnicodeLowerFunc, FoldCase, true)
		},
	})
}

// FoldCase lowercases s for case-insensitive matching
func FoldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Options configures the database connection
type Options struct {
	// Driver is either DriverSQLite or DriverPostgres
	Driver string
	// Path is the sqlite database file, or a sqlite URI
	Path string
	// DSN is the PostgreSQL connection string
	DSN      string
	LogLevel string
}

// getDBLogLevel maps the application log level to the gorm log level
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelInfo:
		return logger.Silent
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

// SQLiteDSN appends the connection parameters required by the catalog to a
// sqlite path. Foreign keys must be enforced for the association table.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	params := "_foreign_keys=on&_busy_timeout=5000"
	if !strings.Contains(path, "mode=memory") {
		params += "&_journal_mode=WAL"
	}

	return path + sep + params
}

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(
		&Book{},
		&Category{},
		&BookCategory{},
	); err != nil {
		panic(errors.Wrap(err, "migrating schema"))
	}
}

// Open initializes the database connection
func Open(o Options) *gorm.DB {
	var dialector gorm.Dialector

	switch o.Driver {
	case DriverPostgres:
		dialector = postgres.Open(o.DSN)
	case DriverSQLite, "":
		if !strings.HasPrefix(o.Path, "file:") {
			dir := filepath.Dir(o.Path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				panic(errors.Wrapf(err, "creating database directory at %s", dir))
			}
		}

		dialector = sqlite.New(sqlite.Config{
			DriverName: SQLiteDriverName,
			DSN:        SQLiteDSN(o.Path),
		})
	default:
		panic(errors.Errorf("unsupported database driver %q", o.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(getDBLogLevel(o.LogLevel)),
	})
	if err != nil {
		panic(errors.Wrap(err, "opening database connection"))
	}

	log.WithFields(log.Fields{
		"driver": dialector.Name(),
	}).Debug("opened database")

	return db
}
