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

package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/helpers"
	"github.com/maktaba/maktaba/pkg/server/messages"
	"github.com/maktaba/maktaba/pkg/server/presenters"
)

var (
	listBooksErrors = errorMessages{
		invalid: messages.InvalidData,
		failure: messages.ErrListBooks,
	}
	getBookErrors = errorMessages{
		invalid:  messages.InvalidBookID,
		notFound: messages.BookNotFound,
		failure:  messages.ErrGetBook,
	}
	addBookErrors = errorMessages{
		invalid: messages.InvalidData,
		missing: messages.TitleAuthorRequired,
		failure: messages.ErrAddBook,
	}
	updateBookErrors = errorMessages{
		invalid:  messages.InvalidBookID,
		missing:  messages.TitleAuthorRequired,
		notFound: messages.BookNotFound,
		failure:  messages.ErrUpdateBook,
	}
	deleteBookErrors = errorMessages{
		invalid: messages.InvalidBookID,
		failure: messages.ErrDeleteBook,
	}
)

// NewBooks creates a new Books controller.
func NewBooks(app *app.App) *Books {
	return &Books{
		base: newBase(app),
	}
}

// Books is a book controller.
type Books struct {
	base
}

func (b *Books) list(w http.ResponseWriter, r *http.Request, p payload) {
	books, err := b.app.ListBooks(r.Context(), p.bookFilter())
	if err != nil {
		b.fail(w, r, err, listBooksErrors)
		return
	}

	b.respond(w, r, http.StatusOK, "", presenters.PresentBooks(books))
}

func (b *Books) show(w http.ResponseWriter, r *http.Request, id int) {
	book, err := b.app.GetBook(r.Context(), id)
	if err != nil {
		b.fail(w, r, err, getBookErrors)
		return
	}

	b.respond(w, r, http.StatusOK, "", presenters.PresentBook(book))
}

func (b *Books) create(w http.ResponseWriter, r *http.Request, p payload) {
	book, err := b.app.CreateBook(r.Context(), p.bookParams())
	if err != nil {
		b.fail(w, r, err, addBookErrors)
		return
	}

	b.respond(w, r, http.StatusCreated, messages.BookAdded, presenters.PresentCreatedBook(book))
}

func (b *Books) update(w http.ResponseWriter, r *http.Request, id int, p payload) {
	if _, err := b.app.UpdateBook(r.Context(), id, p.bookParams()); err != nil {
		b.fail(w, r, err, updateBookErrors)
		return
	}

	b.respond(w, r, http.StatusOK, messages.BookUpdated, nil)
}

func (b *Books) remove(w http.ResponseWriter, r *http.Request, id int) {
	if err := b.app.DeleteBook(r.Context(), id); err != nil {
		b.fail(w, r, err, deleteBookErrors)
		return
	}

	b.respond(w, r, http.StatusOK, messages.BookDeleted, nil)
}

// Index lists the books matching the query filters
func (b *Books) Index(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseQueryData(r, &p); err != nil {
		b.malformed(w, r, err)
		return
	}

	b.list(w, r, p)
}

// Show returns a single book
func (b *Books) Show(w http.ResponseWriter, r *http.Request) {
	b.show(w, r, helpers.ParseID(mux.Vars(r)["id"]))
}

// Create adds a book
func (b *Books) Create(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseRequestData(r, &p); err != nil {
		b.malformed(w, r, err)
		return
	}

	b.create(w, r, p)
}

// Update overwrites a book and its categories
func (b *Books) Update(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseRequestData(r, &p); err != nil {
		b.malformed(w, r, err)
		return
	}

	b.update(w, r, helpers.ParseID(mux.Vars(r)["id"]), p)
}

// Delete removes a book
func (b *Books) Delete(w http.ResponseWriter, r *http.Request) {
	b.remove(w, r, helpers.ParseID(mux.Vars(r)["id"]))
}
