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
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CategoryParams holds the user supplied attributes of a category
type CategoryParams struct {
	Name  string `json:"name" validate:"required,max=255"`
	Color string `json:"color" validate:"omitempty,hexcolor,max=7"`
}

func (p CategoryParams) normalize() CategoryParams {
	p.Name = normalizeText(p.Name)
	p.Color = normalizeText(p.Color)

	if p.Color == "" {
		p.Color = database.DefaultColor
	}

	return p
}

// CategoryCount is a category with the number of books it labels
type CategoryCount struct {
	database.Category
	BookCount int64 `json:"book_count"`
}

// CreateCategory inserts a category. Names are unique.
func (a *App) CreateCategory(ctx context.Context, p CategoryParams) (database.Category, error) {
	p = p.normalize()
	if err := validateStruct(p); err != nil {
		return database.Category{}, err
	}

	category := database.Category{
		Name:      p.Name,
		Color:     p.Color,
		CreatedAt: a.now(),
	}

	if err := a.DB.WithContext(ctx).Create(&category).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Category{}, errors.Wrapf(ErrDuplicate, "category %q", p.Name)
		}
		return database.Category{}, errors.Wrap(err, "inserting category")
	}

	return category, nil
}

// UpdateCategory renames and recolors a category
func (a *App) UpdateCategory(ctx context.Context, id int, p CategoryParams) (database.Category, error) {
	p = p.normalize()
	if id <= 0 || p.Name == "" {
		return database.Category{}, errors.Wrapf(ErrInvalidArgument, "category id %d name %q", id, p.Name)
	}
	if err := validateStruct(p); err != nil {
		return database.Category{}, err
	}

	conn := a.DB.WithContext(ctx)

	res := conn.Model(&database.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  p.Name,
		"color": p.Color,
	})
	if err := res.Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.Category{}, errors.Wrapf(ErrDuplicate, "category %q", p.Name)
		}
		return database.Category{}, errors.Wrap(err, "updating category")
	}
	if res.RowsAffected == 0 {
		return database.Category{}, errors.Wrapf(ErrNotFound, "category %d", id)
	}

	var category database.Category
	if err := conn.First(&category, id).Error; err != nil {
		return database.Category{}, errors.Wrap(err, "finding updated category")
	}

	return category, nil
}

// DeleteCategory removes the category and unlinks it from every book.
// Deleting a category that does not exist succeeds.
func (a *App) DeleteCategory(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "category id %d", id)
	}

	tx := a.DB.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	if err := tx.Where("category_id = ?", id).Delete(&database.BookCategory{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting category links")
	}

	if err := tx.Delete(&database.Category{}, id).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting category")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// ListCategories returns every category ordered by name
func (a *App) ListCategories(ctx context.Context) ([]database.Category, error) {
	categories := []database.Category{}

	if err := a.DB.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "finding categories")
	}

	return categories, nil
}

// FindCategoryByName returns the category with the given name
func (a *App) FindCategoryByName(ctx context.Context, name string) (database.Category, error) {
	name = normalizeText(name)

	var category database.Category
	if err := a.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Category{}, errors.Wrapf(ErrNotFound, "category %q", name)
		}
		return database.Category{}, errors.Wrap(err, "finding category")
	}

	return category, nil
}

// ListCategoryCounts returns every category with the number of its books
func (a *App) ListCategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	counts := []CategoryCount{}

	err := a.DB.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, categories.color, categories.created_at, COUNT(book_categories.book_id) AS book_count").
		Joins("LEFT JOIN book_categories ON book_categories.category_id = categories.id").
		Group("categories.id, categories.name, categories.color, categories.created_at").
		Order("categories.name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "counting books per category")
	}

	return counts, nil
}
