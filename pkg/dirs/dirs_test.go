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

package dirs

import (
	"path/filepath"
	"testing"

	"github.com/maktaba/maktaba/pkg/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/reader")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	Reload()

	testCases := []struct {
		got      string
		expected string
	}{
		{ConfigHome, "/home/reader/.config"},
		{DataHome, "/home/reader/.local/share"},
		{DataDir(), "/home/reader/.local/share/maktaba"},
		{DefaultDBPath(), "/home/reader/.local/share/maktaba/library.db"},
		{DefaultConfigPath(), "/home/reader/.config/maktaba/config.yml"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.got, tc.expected, "result mismatch")
	}
}

func TestCustomDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	Reload()

	assert.Equal(t, ConfigHome, "/custom/config", "config home mismatch")
	assert.Equal(t, DataHome, "/custom/data", "data home mismatch")
	assert.Equal(t, DefaultDBPath(), filepath.Join("/custom/data", AppName, "library.db"), "db path mismatch")
}
