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
	"github.com/maktaba/maktaba/pkg/server/app"
)

// Controllers is a group of controllers
type Controllers struct {
	Books      *Books
	Categories *Categories
	Statistics *Statistics
	Library    *Library
	Health     *Health
}

// New returns a new group of controllers
func New(app *app.App) *Controllers {
	c := Controllers{}

	c.Books = NewBooks(app)
	c.Categories = NewCategories(app)
	c.Statistics = NewStatistics(app)
	c.Library = NewLibrary(app, c.Books, c.Categories, c.Statistics)
	c.Health = NewHealth(app)

	return &c
}
