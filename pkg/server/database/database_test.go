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

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/maktaba/maktaba/pkg/assert"
	"github.com/maktaba/maktaba/pkg/server/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := Open(Options{
		Driver: DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "library.db"),
	})
	InitSchema(db)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func TestGetDBLogLevel(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		expected logger.LogLevel
	}{
		{
			name:     "debug level maps to Info",
			level:    log.LevelDebug,
			expected: logger.Info,
		},
		{
			name:     "info level maps to Silent",
			level:    log.LevelInfo,
			expected: logger.Silent,
		},
		{
			name:     "warn level maps to Warn",
			level:    log.LevelWarn,
			expected: logger.Warn,
		},
		{
			name:     "error level maps to Error",
			level:    log.LevelError,
			expected: logger.Error,
		},
		{
			name:     "unknown level maps to Silent",
			level:    "unknown",
			expected: logger.Silent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := getDBLogLevel(tc.level)
			assert.Equal(t, result, tc.expected, "log level mismatch")
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{
			path:     "/data/library.db",
			expected: "/data/library.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL",
		},
		{
			path:     "file:abc?mode=memory&cache=shared",
			expected: "file:abc?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, SQLiteDSN(tc.path), tc.expected, "dsn mismatch")
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.Equal(t, ValidStatus(s), true, s)
	}

	assert.Equal(t, ValidStatus("abandoned"), false, "abandoned")
	assert.Equal(t, ValidStatus(""), false, "empty")
}

func TestConstraints(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

	book := Book{Title: "Dune", Author: "Frank Herbert", Language: DefaultLanguage, Status: StatusReading}
	book.CreatedAt = now
	book.UpdatedAt = now
	if err := db.Create(&book).Error; err != nil {
		t.Fatal(err)
	}

	c1 := Category{Name: "sci-fi", Color: DefaultColor, CreatedAt: now}
	if err := db.Create(&c1).Error; err != nil {
		t.Fatal(err)
	}

	t.Run("unique category name", func(t *testing.T) {
		err := db.Create(&Category{Name: "sci-fi", Color: DefaultColor, CreatedAt: now}).Error
		assert.Equal(t, IsUniqueViolation(err), true, "expected unique violation")
		assert.Equal(t, IsForeignKeyViolation(err), false, "unexpected foreign key violation")
	})

	t.Run("unique association pair", func(t *testing.T) {
		link := BookCategory{BookID: book.ID, CategoryID: c1.ID}
		if err := db.Omit(clause.Associations).Create(&link).Error; err != nil {
			t.Fatal(err)
		}

		err := db.Omit(clause.Associations).Create(&BookCategory{BookID: book.ID, CategoryID: c1.ID}).Error
		assert.Equal(t, IsUniqueViolation(err), true, "expected unique violation")
	})

	t.Run("association requires category", func(t *testing.T) {
		err := db.Omit(clause.Associations).Create(&BookCategory{BookID: book.ID, CategoryID: 999}).Error
		assert.Equal(t, IsForeignKeyViolation(err), true, "expected foreign key violation")
	})

	t.Run("deleting a book removes its links", func(t *testing.T) {
		if err := db.Delete(&Book{}, book.ID).Error; err != nil {
			t.Fatal(err)
		}

		var count int64
		if err := db.Model(&BookCategory{}).Count(&count).Error; err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, count, int64(0), "link count mismatch")
	})
}

func TestDefaults(t *testing.T) {
	db := openTestDB(t)

	book := Book{Title: "Walden", Author: "Thoreau"}
	if err := db.Create(&book).Error; err != nil {
		t.Fatal(err)
	}

	var got Book
	if err := db.First(&got, book.ID).Error; err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got.Language, DefaultLanguage, "language mismatch")
	assert.Equal(t, got.Status, StatusNotStarted, "status mismatch")
	assert.Equal(t, got.Rating, 0, "rating mismatch")
	assert.Equal(t, got.Favorite, false, "favorite mismatch")
	assert.Equal(t, got.StartDate.Valid, false, "start date should be null")
}

func TestDateRoundTrip(t *testing.T) {
	db := openTestDB(t)

	book := Book{Title: "Walden", Author: "Thoreau", StartDate: NewDate(2023, time.May, 17)}
	if err := db.Create(&book).Error; err != nil {
		t.Fatal(err)
	}

	var got Book
	if err := db.First(&got, book.ID).Error; err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got.StartDate.String(), "2023-05-17", "start date mismatch")
	assert.Equal(t, got.EndDate.Valid, false, "end date should be null")
}

func TestUnicodeLower(t *testing.T) {
	db := openTestDB(t)

	testCases := []struct {
		input    string
		expected string
	}{
		{
			input:    "École des Femmes",
			expected: "école des femmes",
		},
		{
			input:    "ÇA IRA",
			expected: "ça ira",
		},
		{
			input:    "ألف ليلة",
			expected: "ألف ليلة",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			var got string
			if err := db.Raw("SELECT "+UnicodeLowerFunc+"(?)", tc.input).Scan(&got).Error; err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got, tc.expected, "result mismatch")
			assert.Equal(t, FoldCase(tc.input), tc.expected, "FoldCase mismatch")
		})
	}
}
