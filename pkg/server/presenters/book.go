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

package presenters

import (
	"time"

	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/database"
)

// Book is a result of PresentBook
type Book struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	ISBN        string         `json:"isbn"`
	Publisher   string         `json:"publisher"`
	PublishYear *int           `json:"publish_year"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
	Language    string         `json:"language"`
	Location    string         `json:"location"`
	Status      string         `json:"status"`
	Rating      int            `json:"rating"`
	StartDate   *string        `json:"start_date"`
	EndDate     *string        `json:"end_date"`
	Notes       string         `json:"notes"`
	Favorite    bool           `json:"favorite"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Categories  []BookCategory `json:"categories"`
}

// BookCategory is a category nested in a book
type BookCategory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PresentBook presents a book with its categories
func PresentBook(book app.BookWithCategories) Book {
	categories := []BookCategory{}
	for _, c := range book.Categories {
		categories = append(categories, BookCategory{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
		})
	}

	return Book{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		ISBN:        book.ISBN,
		Publisher:   book.Publisher,
		PublishYear: book.PublishYear,
		TotalPages:  book.TotalPages,
		CurrentPage: book.CurrentPage,
		Language:    book.Language,
		Location:    book.Location,
		Status:      book.Status,
		Rating:      book.Rating,
		StartDate:   FormatDate(book.StartDate),
		EndDate:     FormatDate(book.EndDate),
		Notes:       book.Notes,
		Favorite:    book.Favorite,
		CreatedAt:   FormatTS(book.CreatedAt),
		UpdatedAt:   FormatTS(book.UpdatedAt),
		Categories:  categories,
	}
}

// PresentBooks presents books
func PresentBooks(books []app.BookWithCategories) []Book {
	ret := []Book{}

	for _, book := range books {
		p := PresentBook(book)
		ret = append(ret, p)
	}

	return ret
}

// Created is the payload of a response to a successful insert
type Created struct {
	ID int `json:"id"`
}

// PresentCreatedBook presents the identifier of a new book
func PresentCreatedBook(book database.Book) Created {
	return Created{ID: book.ID}
}
