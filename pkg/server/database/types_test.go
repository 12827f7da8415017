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
	"encoding/json"
	"testing"
	"time"

	"github.com/maktaba/maktaba/pkg/assert"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		valid    bool
		err      bool
	}{
		{input: "2024-02-29", expected: "2024-02-29", valid: true},
		{input: " 2024-01-05 ", expected: "2024-01-05", valid: true},
		{input: "2024-01-05T10:00:00Z", expected: "2024-01-05", valid: true},
		{input: "", expected: "", valid: false},
		{input: "2024-13-01", err: true},
		{input: "yesterday", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.err {
				assert.NotEqual(t, err, nil, "expected error")
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, got.Valid, tc.valid, "valid mismatch")
			assert.Equal(t, got.String(), tc.expected, "date mismatch")
		})
	}
}

func TestNullDateScan(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"time", time.Date(2021, time.July, 4, 15, 0, 0, 0, time.UTC), "2021-07-04"},
		{"string", "2021-07-04", "2021-07-04"},
		{"bytes", []byte("2021-07-04 00:00:00+00:00"), "2021-07-04"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d NullDate
			if err := d.Scan(tc.value); err != nil {
				t.Fatal(err)
			}

			assert.Equal(t, d.String(), tc.expected, "date mismatch")
		})
	}

	var d NullDate
	assert.NotEqual(t, d.Scan(42), nil, "expected error for unsupported type")
}

func TestNullDateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Start NullDate `json:"start"`
		End   NullDate `json:"end"`
	}{Start: NewDate(2020, time.January, 31)})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(b), `{"start":"2020-01-31","end":null}`, "encoded mismatch")

	var got struct {
		Start NullDate `json:"start"`
		End   NullDate `json:"end"`
	}
	if err := json.Unmarshal([]byte(`{"start":"2020-01-31","end":""}`), &got); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, got.Start.String(), "2020-01-31", "start mismatch")
	assert.Equal(t, got.End.Valid, false, "end mismatch")
}
