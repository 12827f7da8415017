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

const (
	// StatusNotStarted is the status of a book that has not been opened
	StatusNotStarted = "not-started"
	// StatusReading is the status of a book being read
	StatusReading = "reading"
	// StatusFinished is the status of a finished book
	StatusFinished = "finished"
	// StatusPaused is the status of a book put aside
	StatusPaused = "paused"
)

// Statuses lists every reading status in display order
var Statuses = []string{StatusNotStarted, StatusReading, StatusFinished, StatusPaused}

const (
	// DefaultLanguage is the language assigned to books that do not specify one
	DefaultLanguage = "Arabic"
	// DefaultColor is the color assigned to categories that do not specify one
	DefaultColor = "#007aff"
	// DateLayout is the format of reading dates
	DateLayout = "2006-01-02"
)

const (
	// DriverSQLite selects the embedded sqlite store
	DriverSQLite = "sqlite"
	// DriverPostgres selects a PostgreSQL server
	DriverPostgres = "postgres"
)

// ValidStatus reports whether s is a known reading status
func ValidStatus(s string) bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}

	return false
}
