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

	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// BookParams holds the user supplied attributes of a book
type BookParams struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	ISBN        string `json:"isbn" validate:"max=20"`
	Publisher   string `json:"publisher" validate:"max=255"`
	PublishYear *int   `json:"publish_year"`
	TotalPages  int    `json:"total_pages" validate:"gte=0"`
	CurrentPage int    `json:"current_page" validate:"gte=0"`
	Language    string `json:"language" validate:"max=50"`
	Location    string `json:"location" validate:"max=255"`
	Status      string `json:"status" validate:"omitempty,oneof=not-started reading finished paused"`
	Rating      int    `json:"rating" validate:"gte=0,lte=5"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes"`
	Favorite    bool   `json:"favorite"`
	// CategoryIDs is the complete set of categories of the book
	CategoryIDs []int `json:"categories" validate:"-"`
}

func (p BookParams) normalize() BookParams {
	p.Title = normalizeText(p.Title)
	p.Author = normalizeText(p.Author)
	p.ISBN = normalizeText(p.ISBN)
	p.Publisher = normalizeText(p.Publisher)
	p.Language = normalizeText(p.Language)
	p.Location = normalizeText(p.Location)
	p.Status = normalizeText(p.Status)
	p.StartDate = normalizeText(p.StartDate)
	p.EndDate = normalizeText(p.EndDate)
	p.Notes = normalizeBody(p.Notes)

	if p.Language == "" {
		p.Language = database.DefaultLanguage
	}
	if p.Status == "" {
		p.Status = database.StatusNotStarted
	}

	return p
}

// apply copies the params onto the given book
func (p BookParams) apply(book *database.Book) error {
	start, err := database.ParseDate(p.StartDate)
	if err != nil {
		return newValidationError("start_date", "datetime")
	}
	end, err := database.ParseDate(p.EndDate)
	if err != nil {
		return newValidationError("end_date", "datetime")
	}

	book.Title = p.Title
	book.Author = p.Author
	book.ISBN = p.ISBN
	book.Publisher = p.Publisher
	book.PublishYear = p.PublishYear
	book.TotalPages = p.TotalPages
	book.CurrentPage = p.CurrentPage
	book.Language = p.Language
	book.Location = p.Location
	book.Status = p.Status
	book.Rating = p.Rating
	book.StartDate = start
	book.EndDate = end
	book.Notes = p.Notes
	book.Favorite = p.Favorite

	return nil
}

func bookColumns(book database.Book) map[string]interface{} {
	return map[string]interface{}{
		"title":        book.Title,
		"author":       book.Author,
		"isbn":         book.ISBN,
		"publisher":    book.Publisher,
		"publish_year": book.PublishYear,
		"total_pages":  book.TotalPages,
		"current_page": book.CurrentPage,
		"language":     book.Language,
		"location":     book.Location,
		"status":       book.Status,
		"rating":       book.Rating,
		"start_date":   book.StartDate,
		"end_date":     book.EndDate,
		"notes":        book.Notes,
		"favorite":     book.Favorite,
		"updated_at":   book.UpdatedAt,
	}
}

// CreateBook validates the params and inserts a book together with its
// category links
func (a *App) CreateBook(ctx context.Context, p BookParams) (database.Book, error) {
	p = p.normalize()
	if err := validateStruct(p); err != nil {
		return database.Book{}, err
	}

	var book database.Book
	if err := p.apply(&book); err != nil {
		return database.Book{}, err
	}

	now := a.now()
	book.CreatedAt = now
	book.UpdatedAt = now

	tx := a.DB.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return database.Book{}, errors.Wrap(err, "beginning transaction")
	}

	if err := tx.Create(&book).Error; err != nil {
		tx.Rollback()
		return database.Book{}, errors.Wrap(err, "inserting book")
	}

	if len(p.CategoryIDs) > 0 {
		if err := replaceBookCategories(tx, book.ID, p.CategoryIDs); err != nil {
			tx.Rollback()
			return database.Book{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return database.Book{}, errors.Wrap(err, "committing transaction")
	}

	log.WithFields(log.Fields{
		"book_id": book.ID,
	}).Debug("created book")

	return book, nil
}

// UpdateBook overwrites every attribute of the book and replaces its category
// set with p.CategoryIDs. An empty set removes all categories.
func (a *App) UpdateBook(ctx context.Context, id int, p BookParams) (database.Book, error) {
	if id <= 0 {
		return database.Book{}, errors.Wrapf(ErrInvalidArgument, "book id %d", id)
	}

	p = p.normalize()
	if err := validateStruct(p); err != nil {
		return database.Book{}, err
	}

	tx := a.DB.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return database.Book{}, errors.Wrap(err, "beginning transaction")
	}

	var book database.Book
	if err := tx.First(&book, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Book{}, errors.Wrapf(ErrNotFound, "book %d", id)
		}
		return database.Book{}, errors.Wrap(err, "finding book")
	}

	if err := p.apply(&book); err != nil {
		tx.Rollback()
		return database.Book{}, err
	}
	book.UpdatedAt = a.now()

	if err := tx.Model(&book).Updates(bookColumns(book)).Error; err != nil {
		tx.Rollback()
		return database.Book{}, errors.Wrap(err, "updating book")
	}

	if err := replaceBookCategories(tx, book.ID, p.CategoryIDs); err != nil {
		tx.Rollback()
		return database.Book{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return database.Book{}, errors.Wrap(err, "committing transaction")
	}

	return book, nil
}

// DeleteBook removes the book and its category links. Deleting a book that
// does not exist succeeds.
func (a *App) DeleteBook(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "book id %d", id)
	}

	tx := a.DB.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	if err := tx.Where("book_id = ?", id).Delete(&database.BookCategory{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting book categories")
	}

	res := tx.Delete(&database.Book{}, id)
	if err := res.Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting book")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	log.WithFields(log.Fields{
		"book_id": id,
		"deleted": res.RowsAffected,
	}).Debug("deleted book")

	return nil
}
