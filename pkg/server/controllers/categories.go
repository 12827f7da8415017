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
	listCategoriesErrors = errorMessages{
		failure: messages.ErrListCategories,
	}
	addCategoryErrors = errorMessages{
		invalid: messages.InvalidData,
		missing: messages.CategoryNameRequired,
		failure: messages.ErrAddCategory,
	}
	updateCategoryErrors = errorMessages{
		invalid:  messages.InvalidData,
		missing:  messages.CategoryNameRequired,
		notFound: messages.CategoryNotFound,
		failure:  messages.ErrUpdateCategory,
	}
	deleteCategoryErrors = errorMessages{
		invalid: messages.InvalidCategoryID,
		failure: messages.ErrDeleteCategory,
	}
)

// NewCategories creates a new Categories controller.
func NewCategories(app *app.App) *Categories {
	return &Categories{
		base: newBase(app),
	}
}

// Categories is a category controller.
type Categories struct {
	base
}

func (c *Categories) list(w http.ResponseWriter, r *http.Request) {
	categories, err := c.app.ListCategories(r.Context())
	if err != nil {
		c.fail(w, r, err, listCategoriesErrors)
		return
	}

	c.respond(w, r, http.StatusOK, "", presenters.PresentCategories(categories))
}

func (c *Categories) create(w http.ResponseWriter, r *http.Request, p payload) {
	category, err := c.app.CreateCategory(r.Context(), p.categoryParams())
	if err != nil {
		c.fail(w, r, err, addCategoryErrors)
		return
	}

	c.respond(w, r, http.StatusCreated, messages.CategoryAdded, presenters.PresentCreatedCategory(category))
}

func (c *Categories) update(w http.ResponseWriter, r *http.Request, id int, p payload) {
	if _, err := c.app.UpdateCategory(r.Context(), id, p.categoryParams()); err != nil {
		c.fail(w, r, err, updateCategoryErrors)
		return
	}

	c.respond(w, r, http.StatusOK, messages.CategoryUpdated, nil)
}

func (c *Categories) remove(w http.ResponseWriter, r *http.Request, id int) {
	if err := c.app.DeleteCategory(r.Context(), id); err != nil {
		c.fail(w, r, err, deleteCategoryErrors)
		return
	}

	c.respond(w, r, http.StatusOK, messages.CategoryDeleted, nil)
}

// Index lists every category
func (c *Categories) Index(w http.ResponseWriter, r *http.Request) {
	c.list(w, r)
}

// Create adds a category
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseRequestData(r, &p); err != nil {
		c.malformed(w, r, err)
		return
	}

	c.create(w, r, p)
}

// Update renames and recolors a category
func (c *Categories) Update(w http.ResponseWriter, r *http.Request) {
	var p payload
	if err := parseRequestData(r, &p); err != nil {
		c.malformed(w, r, err)
		return
	}

	c.update(w, r, helpers.ParseID(mux.Vars(r)["id"]), p)
}

// Delete removes a category
func (c *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	c.remove(w, r, helpers.ParseID(mux.Vars(r)["id"]))
}
