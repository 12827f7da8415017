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

package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for malformed identifiers and arguments
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation is returned when input fails validation
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate is returned when a category name is already taken
	ErrDuplicate = errors.New("duplicate")
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrReference is returned when a category identifier does not refer to a category
	ErrReference = errors.New("unknown reference")
)

// ValidationError describes the fields that failed validation. Its cause is
// ErrValidation.
type ValidationError struct {
	// Fields maps the JSON name of each invalid field to the failed rule
	Fields map[string]string
}

func newValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}

	return fmt.Sprintf("%s (%s)", ErrValidation.Error(), strings.Join(parts, ", "))
}

// Cause returns ErrValidation
func (e *ValidationError) Cause() error {
	return ErrValidation
}

// Unwrap returns ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Missing reports whether any field failed because it was absent
func (e *ValidationError) Missing() bool {
	for _, rule := range e.Fields {
		if rule == "required" {
			return true
		}
	}

	return false
}

// AsValidationError extracts the field details from err, if any
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
