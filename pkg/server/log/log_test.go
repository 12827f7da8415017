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

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/maktaba/maktaba/pkg/assert"
	"github.com/pkg/errors"
)

func TestShouldLog(t *testing.T) {
	defer SetLevel(LevelInfo)

	testCases := []struct {
		currentLevel string
		logLevel     string
		expected     bool
	}{
		{LevelDebug, LevelDebug, true},
		{LevelDebug, LevelError, true},
		{LevelInfo, LevelDebug, false},
		{LevelInfo, LevelInfo, true},
		{LevelInfo, LevelWarn, true},
		{LevelWarn, LevelInfo, false},
		{LevelWarn, LevelError, true},
		{LevelError, LevelWarn, false},
		{LevelError, LevelError, true},
	}

	for _, tc := range testCases {
		SetLevel(tc.currentLevel)
		assert.Equal(t, shouldLog(tc.logLevel), tc.expected, tc.currentLevel+"/"+tc.logLevel)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	defer SetLevel(LevelInfo)

	SetLevel(LevelWarn)
	WithFields(Fields{"book_id": 3}).Info("skipped")
	WithFields(Fields{"book_id": 3, "err": errors.New("disk full")}).Warn("saving book")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Equalf(t, len(lines), 1, "line count mismatch")

	var got map[string]interface{}
	if err := json.Unmarshal(lines[0], &got); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, got["level"], LevelWarn, "level mismatch")
	assert.Equal(t, got["msg"], "saving book", "msg mismatch")
	assert.Equal(t, got["err"], "disk full", "error field mismatch")
	assert.Equal(t, got["book_id"], float64(3), "book_id mismatch")
}

func TestValidLevel(t *testing.T) {
	assert.Equal(t, ValidLevel(LevelDebug), true, "debug")
	assert.Equal(t, ValidLevel("verbose"), false, "verbose")
}
