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
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// NullDate is a calendar date that may be absent
type NullDate struct {
	Time  time.Time
	Valid bool
}

// dateLayouts are the textual forms a date column can be read back as
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// NewDate returns a valid NullDate at midnight UTC of the given day
func NewDate(year int, month time.Month, day int) NullDate {
	return NullDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ParseDate parses a YYYY-MM-DD string. An empty string yields a null date.
func ParseDate(s string) (NullDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullDate{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NullDate{Time: truncateDay(t), Valid: true}, nil
		}
	}

	return NullDate{}, errors.Errorf("invalid date %q", s)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// String returns the YYYY-MM-DD form or an empty string
func (d NullDate) String() string {
	if !d.Valid {
		return ""
	}

	return d.Time.Format(DateLayout)
}

// Scan implements sql.Scanner
func (d *NullDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = NullDate{}
		return nil
	case time.Time:
		*d = NullDate{Time: truncateDay(v), Valid: true}
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return errors.Errorf("cannot scan %T into a date", value)
	}
}

// Value implements driver.Valuer
func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}

	return d.Time.Format(DateLayout), nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD" or null
func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, an empty string or a YYYY-MM-DD string
func (d *NullDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = NullDate{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "decoding date")
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}
