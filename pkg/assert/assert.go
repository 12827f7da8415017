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

// Package assert provides functions to assert a condition in tests
package assert

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func getErrorMessage(m string, a, b interface{}) string {
	return fmt.Sprintf(`%s.
Actual:
========================
%+v
========================

Expected:
========================
%+v
========================`, m, a, b)
}

// Equal errors a test if the actual does not match the expected
func Equal(t *testing.T, a, b interface{}, message string) {
	t.Helper()
	if a == b {
		return
	}

	t.Error(getErrorMessage(message, a, b))
}

// Equalf fails a test if the actual does not match the expected
func Equalf(t *testing.T, a, b interface{}, message string) {
	t.Helper()
	if a == b {
		return
	}

	t.Fatal(getErrorMessage(message, a, b))
}

// NotEqual fails a test if the actual matches the expected
func NotEqual(t *testing.T, a, b interface{}, message string) {
	t.Helper()
	if a != b {
		return
	}

	t.Error(getErrorMessage(message, a, b))
}

// NotEqualf fails a test if the actual matches the expected
func NotEqualf(t *testing.T, a, b interface{}, message string) {
	t.Helper()
	if a != b {
		return
	}

	t.Fatal(getErrorMessage(message, a, b))
}

// DeepEqual fails a test if the actual does not deeply equal the expected
func DeepEqual(t *testing.T, a, b interface{}, message string) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		return
	}

	t.Errorf("%s.\nDiff (-actual +expected):\n%s", message, cmp.Diff(a, b))
}

// ErrorIs fails a test if the cause of the given error is not the target
func ErrorIs(t *testing.T, err, target error, message string) {
	t.Helper()
	if errors.Is(err, target) || errors.Cause(err) == target {
		return
	}

	t.Errorf("%s. got error %v, want %v", message, err, target)
}

// StatusCodeEquals fails a test if the HTTP status code is not the expected
func StatusCodeEquals(t *testing.T, res *http.Response, expected int, message string) {
	t.Helper()
	if res.StatusCode == expected {
		return
	}

	t.Errorf("status code mismatch. %s: got %d want %d", message, res.StatusCode, expected)
}

// StatusCodeEqualsRecorder fails a test if the recorded status code is not the expected
func StatusCodeEqualsRecorder(t *testing.T, w *httptest.ResponseRecorder, expected int, message string) {
	t.Helper()
	if w.Code == expected {
		return
	}

	t.Errorf("status code mismatch. %s: got %d want %d. body: %s", message, w.Code, expected, w.Body.String())
}
