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
	"context"
	"testing"

	"github.com/maktaba/maktaba/pkg/assert"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestSetBookCategories(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	c1 := testutils.SetupCategory(t, db, "a", "")
	c2 := testutils.SetupCategory(t, db, "b", "")
	b := testutils.SetupBook(t, db, database.Book{}, c1.ID)

	a := NewTest()
	a.DB = db

	if err := a.SetBookCategories(context.Background(), b.ID, []int{c2.ID, c2.ID}); err != nil {
		t.Fatal(errors.Wrap(err, "setting categories"))
	}

	got, err := a.GetBook(context.Background(), b.ID)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equalf(t, len(got.Categories), 1, "category count mismatch")
	assert.Equal(t, got.Categories[0].ID, c2.ID, "category mismatch")

	testCases := []struct {
		name        string
		bookID      int
		categoryIDs []int
		expected    error
	}{
		{"invalid book id", 0, []int{c1.ID}, ErrInvalidArgument},
		{"invalid category id", b.ID, []int{-1}, ErrInvalidArgument},
		{"missing book", b.ID + 10, []int{c1.ID}, ErrNotFound},
		{"unknown category", b.ID, []int{c1.ID, 404}, ErrReference},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := a.SetBookCategories(context.Background(), tc.bookID, tc.categoryIDs)
			assert.ErrorIs(t, err, tc.expected, "error mismatch")
		})
	}

	assert.Equal(t, testutils.CountBookCategories(t, db, b.ID), int64(1), "failed calls should keep links")
}

func TestUniqueIDs(t *testing.T) {
	assert.DeepEqual(t, uniqueIDs([]int{3, 1, 3, 2, 1}), []int{3, 1, 2}, "result mismatch")
	assert.DeepEqual(t, uniqueIDs(nil), []int{}, "empty result mismatch")
}
