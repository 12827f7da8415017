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

	"github.com/maktaba/maktaba/pkg/server/database"
)

// Category is a result of PresentCategory
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// PresentCategory presents a category
func PresentCategory(c database.Category) Category {
	return Category{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: FormatTS(c.CreatedAt),
	}
}

// PresentCategories presents categories
func PresentCategories(categories []database.Category) []Category {
	ret := []Category{}

	for _, c := range categories {
		ret = append(ret, PresentCategory(c))
	}

	return ret
}

// PresentCreatedCategory presents the identifier of a new category
func PresentCreatedCategory(c database.Category) Created {
	return Created{ID: c.ID}
}
