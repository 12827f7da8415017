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
	"time"

	"github.com/maktaba/maktaba/pkg/assert"
	"github.com/maktaba/maktaba/pkg/clock"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateBook(t *testing.T) {
	t.Run("with all attributes", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		c1 := testutils.SetupCategory(t, db, "novels", "#ff0000")
		c2 := testutils.SetupCategory(t, db, "classics", "")

		a := NewTest()
		a.DB = db

		year := 1938
		book, err := a.CreateBook(context.Background(), BookParams{
			Title:       "  Thirst ",
			Author:      "Taha Hussein",
			ISBN:        "9789770912345",
			Publisher:   "Dar al-Maaref",
			PublishYear: &year,
			TotalPages:  320,
			CurrentPage: 40,
			Language:    "Arabic",
			Location:    "shelf 2",
			Status:      database.StatusReading,
			Rating:      4,
			StartDate:   "2024-01-15",
			Notes:       "borrowed",
			Favorite:    true,
			CategoryIDs: []int{c1.ID, c2.ID, c1.ID},
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating book"))
		}

		got, err := a.GetBook(context.Background(), book.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "getting book"))
		}

		assert.Equal(t, got.Title, "Thirst", "title mismatch")
		assert.Equal(t, got.Author, "Taha Hussein", "author mismatch")
		assert.Equal(t, got.ISBN, "9789770912345", "isbn mismatch")
		assert.Equal(t, *got.PublishYear, 1938, "publish year mismatch")
		assert.Equal(t, got.TotalPages, 320, "total pages mismatch")
		assert.Equal(t, got.CurrentPage, 40, "current page mismatch")
		assert.Equal(t, got.Status, database.StatusReading, "status mismatch")
		assert.Equal(t, got.Rating, 4, "rating mismatch")
		assert.Equal(t, got.StartDate.String(), "2024-01-15", "start date mismatch")
		assert.Equal(t, got.EndDate.Valid, false, "end date mismatch")
		assert.Equal(t, got.Favorite, true, "favorite mismatch")
		assert.Equal(t, got.CreatedAt.Equal(a.Clock.Now()), true, "created_at mismatch")
		assert.Equal(t, got.UpdatedAt.Equal(a.Clock.Now()), true, "updated_at mismatch")

		assert.Equalf(t, len(got.Categories), 2, "category count mismatch")
		assert.Equal(t, got.Categories[0].Name, "classics", "first category mismatch")
		assert.Equal(t, got.Categories[0].Color, database.DefaultColor, "first category color mismatch")
		assert.Equal(t, got.Categories[1].Name, "novels", "second category mismatch")
	})

	t.Run("defaults", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		a := NewTest()
		a.DB = db

		book, err := a.CreateBook(context.Background(), BookParams{Title: "Season of Migration", Author: "Tayeb Salih"})
		if err != nil {
			t.Fatal(errors.Wrap(err, "creating book"))
		}

		var record database.Book
		testutils.MustExec(t, db.First(&record, book.ID), "finding book")

		assert.Equal(t, record.Language, database.DefaultLanguage, "language mismatch")
		assert.Equal(t, record.Status, database.StatusNotStarted, "status mismatch")
		assert.Equal(t, record.PublishYear == nil, true, "publish year should be null")
		assert.Equal(t, testutils.CountBookCategories(t, db, book.ID), int64(0), "link count mismatch")
	})

	t.Run("validation", func(t *testing.T) {
		testCases := []struct {
			name   string
			params BookParams
			field  string
			rule   string
		}{
			{"missing title", BookParams{Author: "x"}, "title", "required"},
			{"blank author", BookParams{Title: "x", Author: "   "}, "author", "required"},
			{"unknown status", BookParams{Title: "x", Author: "y", Status: "lost"}, "status", "oneof"},
			{"rating too high", BookParams{Title: "x", Author: "y", Rating: 6}, "rating", "lte"},
			{"negative rating", BookParams{Title: "x", Author: "y", Rating: -1}, "rating", "gte"},
			{"negative pages", BookParams{Title: "x", Author: "y", TotalPages: -10}, "total_pages", "gte"},
			{"bad date", BookParams{Title: "x", Author: "y", EndDate: "15/01/2024"}, "end_date", "datetime"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				db := testutils.InitMemoryDB(t)
				a := NewTest()
				a.DB = db

				_, err := a.CreateBook(context.Background(), tc.params)
				assert.ErrorIs(t, err, ErrValidation, "error mismatch")

				ve, ok := AsValidationError(err)
				assert.Equalf(t, ok, true, "expected validation details")
				assert.Equal(t, ve.Fields[tc.field], tc.rule, "rule mismatch")

				var count int64
				testutils.MustExec(t, db.Model(&database.Book{}).Count(&count), "counting books")
				assert.Equal(t, count, int64(0), "book count mismatch")
			})
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		c1 := testutils.SetupCategory(t, db, "poetry", "")
		a := NewTest()
		a.DB = db

		_, err := a.CreateBook(context.Background(), BookParams{
			Title:       "Diwan",
			Author:      "Al-Mutanabbi",
			CategoryIDs: []int{c1.ID, c1.ID + 100},
		})
		assert.ErrorIs(t, err, ErrReference, "error mismatch")

		var bookCount, linkCount int64
		testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")
		testutils.MustExec(t, db.Model(&database.BookCategory{}).Count(&linkCount), "counting links")
		assert.Equal(t, bookCount, int64(0), "book should not be persisted")
		assert.Equal(t, linkCount, int64(0), "links should not be persisted")
	})
}

func TestUpdateBook(t *testing.T) {
	t.Run("overwrites attributes and replaces categories", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		c1 := testutils.SetupCategory(t, db, "history", "")
		c2 := testutils.SetupCategory(t, db, "biography", "")
		c3 := testutils.SetupCategory(t, db, "travel", "")
		b := testutils.SetupBook(t, db, database.Book{
			Title:    "Muqaddimah",
			Author:   "Ibn Khaldun",
			Rating:   3,
			Favorite: true,
			Notes:    "old note",
		}, c1.ID, c2.ID)

		mock := clock.NewMock()
		mock.SetNow(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
		a := NewTest()
		a.DB = db
		a.Clock = mock

		updated, err := a.UpdateBook(context.Background(), b.ID, BookParams{
			Title:       "The Muqaddimah",
			Author:      "Ibn Khaldun",
			Status:      database.StatusFinished,
			EndDate:     "2024-05-30",
			CategoryIDs: []int{c2.ID, c3.ID},
		})
		if err != nil {
			t.Fatal(errors.Wrap(err, "updating book"))
		}

		got, err := a.GetBook(context.Background(), b.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "getting book"))
		}

		assert.Equal(t, updated.ID, b.ID, "id mismatch")
		assert.Equal(t, got.Title, "The Muqaddimah", "title mismatch")
		assert.Equal(t, got.Status, database.StatusFinished, "status mismatch")
		assert.Equal(t, got.Rating, 0, "rating should be overwritten")
		assert.Equal(t, got.Favorite, false, "favorite should be overwritten")
		assert.Equal(t, got.Notes, "", "notes should be overwritten")
		assert.Equal(t, got.EndDate.String(), "2024-05-30", "end date mismatch")
		assert.Equal(t, got.CreatedAt.Equal(b.CreatedAt), true, "created_at should not change")
		assert.Equal(t, got.UpdatedAt.Equal(mock.Now()), true, "updated_at mismatch")

		assert.Equalf(t, len(got.Categories), 2, "category count mismatch")
		assert.Equal(t, got.Categories[0].ID, c2.ID, "first category mismatch")
		assert.Equal(t, got.Categories[1].ID, c3.ID, "second category mismatch")
	})

	t.Run("empty category set clears categories", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		c1 := testutils.SetupCategory(t, db, "history", "")
		b := testutils.SetupBook(t, db, database.Book{}, c1.ID)

		a := NewTest()
		a.DB = db

		if _, err := a.UpdateBook(context.Background(), b.ID, BookParams{Title: "a", Author: "b"}); err != nil {
			t.Fatal(errors.Wrap(err, "updating book"))
		}

		assert.Equal(t, testutils.CountBookCategories(t, db, b.ID), int64(0), "link count mismatch")
	})

	t.Run("errors", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		c1 := testutils.SetupCategory(t, db, "history", "")
		b := testutils.SetupBook(t, db, database.Book{Title: "kept"}, c1.ID)

		a := NewTest()
		a.DB = db

		testCases := []struct {
			name     string
			id       int
			params   BookParams
			expected error
		}{
			{"zero id", 0, BookParams{Title: "a", Author: "b"}, ErrInvalidArgument},
			{"negative id", -4, BookParams{Title: "a", Author: "b"}, ErrInvalidArgument},
			{"missing book", b.ID + 1, BookParams{Title: "a", Author: "b"}, ErrNotFound},
			{"missing title", b.ID, BookParams{Author: "b"}, ErrValidation},
			{"unknown category", b.ID, BookParams{Title: "a", Author: "b", CategoryIDs: []int{999}}, ErrReference},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := a.UpdateBook(context.Background(), tc.id, tc.params)
				assert.ErrorIs(t, err, tc.expected, "error mismatch")
			})
		}

		var record database.Book
		testutils.MustExec(t, db.First(&record, b.ID), "finding book")
		assert.Equal(t, record.Title, "kept", "failed updates should not be persisted")
		assert.Equal(t, testutils.CountBookCategories(t, db, b.ID), int64(1), "failed updates should keep links")
	})
}

func TestDeleteBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	c1 := testutils.SetupCategory(t, db, "history", "")
	b1 := testutils.SetupBook(t, db, database.Book{Title: "one"}, c1.ID)
	b2 := testutils.SetupBook(t, db, database.Book{Title: "two"}, c1.ID)

	a := NewTest()
	a.DB = db

	if err := a.DeleteBook(context.Background(), b1.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting book"))
	}

	_, err := a.GetBook(context.Background(), b1.ID)
	assert.ErrorIs(t, err, ErrNotFound, "deleted book should not be found")
	assert.Equal(t, testutils.CountBookCategories(t, db, b1.ID), int64(0), "deleted book links mismatch")
	assert.Equal(t, testutils.CountBookCategories(t, db, b2.ID), int64(1), "other book links mismatch")

	t.Run("missing book", func(t *testing.T) {
		assert.Equal(t, a.DeleteBook(context.Background(), b1.ID), nil, "deleting a missing book should succeed")
	})

	t.Run("invalid id", func(t *testing.T) {
		assert.ErrorIs(t, a.DeleteBook(context.Background(), 0), ErrInvalidArgument, "error mismatch")
	})
}
