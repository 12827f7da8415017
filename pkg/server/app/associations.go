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
	"gorm.io/gorm/clause"
)

// SetBookCategories replaces the category set of a book
func (a *App) SetBookCategories(ctx context.Context, bookID int, categoryIDs []int) error {
	if bookID <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "book id %d", bookID)
	}
	for _, id := range categoryIDs {
		if id <= 0 {
			return errors.Wrapf(ErrInvalidArgument, "category id %d", id)
		}
	}

	tx := a.DB.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	var count int64
	if err := tx.Model(&database.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "finding book")
	}
	if count == 0 {
		tx.Rollback()
		return errors.Wrapf(ErrNotFound, "book %d", bookID)
	}

	if err := replaceBookCategories(tx, bookID, categoryIDs); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// uniqueIDs removes duplicates while keeping the first occurrence order
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	ret := make([]int, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		ret = append(ret, id)
	}

	return ret
}

// replaceBookCategories deletes the existing links of the book and inserts one
// link per distinct category id. It must run inside a transaction.
func replaceBookCategories(tx *gorm.DB, bookID int, categoryIDs []int) error {
	ids := uniqueIDs(categoryIDs)

	if len(ids) > 0 {
		var count int64
		if err := tx.Model(&database.Category{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return errors.Wrap(err, "counting categories")
		}
		if int(count) != len(ids) {
			return errors.Wrapf(ErrReference, "categories %v", ids)
		}
	}

	if err := tx.Where("book_id = ?", bookID).Delete(&database.BookCategory{}).Error; err != nil {
		return errors.Wrap(err, "clearing book categories")
	}

	if len(ids) == 0 {
		return nil
	}

	links := make([]database.BookCategory, 0, len(ids))
	for _, id := range ids {
		links = append(links, database.BookCategory{BookID: bookID, CategoryID: id})
	}

	if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.Wrapf(ErrReference, "categories %v", ids)
		}
		return errors.Wrap(err, "inserting book categories")
	}

	return nil
}
