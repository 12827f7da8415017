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
	"fmt"
	"time"

	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// BookFilter narrows down the books returned by ListBooks. Zero values do
// not filter.
type BookFilter struct {
	Status     string
	Search     string
	CategoryID int
}

// BookWithCategories is a book with the categories attached to it
type BookWithCategories struct {
	database.Book
	Categories []database.Category
}

// bookCategoryRow is a row of the join between links and categories
type bookCategoryRow struct {
	BookID    int
	ID        int
	Name      string
	Color     string
	CreatedAt time.Time
}

// ListBooks returns the books matching every given filter, newest first
func (a *App) ListBooks(ctx context.Context, f BookFilter) ([]BookWithCategories, error) {
	status := normalizeText(f.Status)
	if status != "" && !database.ValidStatus(status) {
		return nil, newValidationError("status", "oneof")
	}

	conn := a.DB.WithContext(ctx)
	q := conn.Model(&database.Book{})

	if status != "" {
		q = q.Where("status = ?", status)
	}
	if search := normalizeText(f.Search); search != "" {
		pattern := "%" + escapeLike(database.FoldCase(search)) + "%"
		q = q.Where(fmt.Sprintf("(%[1]s(title) LIKE ? ESCAPE '\\' OR %[1]s(author) LIKE ? ESCAPE '\\')", a.lowerFunc()), pattern, pattern)
	}
	if f.CategoryID != 0 {
		q = q.Where("EXISTS (SELECT 1 FROM book_categories WHERE book_categories.book_id = books.id AND book_categories.category_id = ?)", f.CategoryID)
	}

	var books []database.Book
	if err := q.Order("created_at DESC").Order("id DESC").Find(&books).Error; err != nil {
		return nil, errors.Wrap(err, "finding books")
	}

	return attachCategories(conn, books)
}

// GetBook returns a single book with its categories
func (a *App) GetBook(ctx context.Context, id int) (BookWithCategories, error) {
	if id <= 0 {
		return BookWithCategories{}, errors.Wrapf(ErrInvalidArgument, "book id %d", id)
	}

	conn := a.DB.WithContext(ctx)

	var book database.Book
	if err := conn.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookWithCategories{}, errors.Wrapf(ErrNotFound, "book %d", id)
		}
		return BookWithCategories{}, errors.Wrap(err, "finding book")
	}

	ret, err := attachCategories(conn, []database.Book{book})
	if err != nil {
		return BookWithCategories{}, err
	}

	return ret[0], nil
}

// attachCategories loads the categories of all given books with a single
// query and pairs them with their books
func attachCategories(conn *gorm.DB, books []database.Book) ([]BookWithCategories, error) {
	ret := make([]BookWithCategories, 0, len(books))
	if len(books) == 0 {
		return ret, nil
	}

	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	var rows []bookCategoryRow
	err := conn.Table("book_categories").
		Select("book_categories.book_id, categories.id, categories.name, categories.color, categories.created_at").
		Joins("JOIN categories ON categories.id = book_categories.category_id").
		Where("book_categories.book_id IN ?", ids).
		Order("categories.name ASC").
		Order("categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "finding book categories")
	}

	byBook := make(map[int][]database.Category, len(books))
	for _, r := range rows {
		byBook[r.BookID] = append(byBook[r.BookID], database.Category{
			ID:        r.ID,
			Name:      r.Name,
			Color:     r.Color,
			CreatedAt: r.CreatedAt,
		})
	}

	for _, b := range books {
		categories := byBook[b.ID]
		if categories == nil {
			categories = []database.Category{}
		}

		ret = append(ret, BookWithCategories{Book: b, Categories: categories})
	}

	return ret, nil
}
