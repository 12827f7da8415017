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

	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/maktaba/maktaba/pkg/server/messages"
	mw "github.com/maktaba/maktaba/pkg/server/middleware"
)

// Actions accepted by the library endpoint
const (
	actionListBooks      = "list_books"
	actionGetBooks       = "get_books"
	actionGetBook        = "get_book"
	actionAddBook        = "add_book"
	actionUpdateBook     = "update_book"
	actionDeleteBook     = "delete_book"
	actionListCategories = "list_categories"
	actionGetCategories  = "get_categories"
	actionAddCategory    = "add_category"
	actionUpdateCategory = "update_category"
	actionDeleteCategory = "delete_category"
	actionGetStatistics  = "get_statistics"
)

var unknownActionErrors = errorMessages{
	invalid: messages.UnknownAction,
}

// NewLibrary creates a new Library controller dispatching to the given
// controllers.
func NewLibrary(app *app.App, books *Books, categories *Categories, statistics *Statistics) *Library {
	return &Library{
		base:       newBase(app),
		books:      books,
		categories: categories,
		statistics: statistics,
	}
}

// Library serves every operation through a single endpoint selected by the
// "action" field of the request body.
type Library struct {
	base
	books      *Books
	categories *Categories
	statistics *Statistics
}

// Dispatch handles POST /library
func (l *Library) Dispatch(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseRequestData(r, &p); err != nil {
		l.malformed(w, r, err)
		return
	}

	log.WithFields(log.Fields{
		"request_id": mw.RequestID(r.Context()),
		"action":     p.Action,
	}).Debug("dispatching action")

	switch p.Action {
	case actionListBooks, actionGetBooks:
		l.books.list(w, r, p)
	case actionGetBook:
		l.books.show(w, r, p.ID)
	case actionAddBook:
		l.books.create(w, r, p)
	case actionUpdateBook:
		l.books.update(w, r, p.ID, p)
	case actionDeleteBook:
		l.books.remove(w, r, p.ID)
	case actionListCategories, actionGetCategories:
		l.categories.list(w, r)
	case actionAddCategory:
		l.categories.create(w, r, p)
	case actionUpdateCategory:
		l.categories.update(w, r, p.ID, p)
	case actionDeleteCategory:
		l.categories.remove(w, r, p.ID)
	case actionGetStatistics:
		l.statistics.Show(w, r)
	default:
		l.fail(w, r, app.ErrInvalidArgument, unknownActionErrors)
	}
}
