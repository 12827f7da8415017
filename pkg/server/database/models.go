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

package database

import (
	"time"
)

// Model is the base model definition. Timestamps are assigned by the
// application clock rather than by gorm.
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

// Book is a model for a book in the catalog
type Book struct {
	Model
	Title       string   `json:"title" gorm:"not null;index"`
	Author      string   `json:"author" gorm:"not null;index"`
	ISBN        string   `json:"isbn" gorm:"size:20"`
	Publisher   string   `json:"publisher"`
	PublishYear *int     `json:"publish_year"`
	TotalPages  int      `json:"total_pages" gorm:"not null;default:0"`
	CurrentPage int      `json:"current_page" gorm:"not null;default:0"`
	Language    string   `json:"language" gorm:"size:50;not null;default:Arabic"`
	Location    string   `json:"location"`
	Status      string   `json:"status" gorm:"size:20;not null;default:not-started;index"`
	Rating      int      `json:"rating" gorm:"not null;default:0"`
	StartDate   NullDate `json:"start_date" gorm:"type:date"`
	EndDate     NullDate `json:"end_date" gorm:"type:date"`
	Notes       string   `json:"notes" gorm:"type:text"`
	Favorite    bool     `json:"favorite" gorm:"not null;default:false"`
}

// Category is a model for a user defined label
type Category struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	Color     string    `json:"color" gorm:"size:7;not null;default:#007aff"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime:false"`
}

// BookCategory links a book to a category. The pair is unique.
type BookCategory struct {
	BookID     int      `json:"book_id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID int      `json:"category_id" gorm:"primaryKey;autoIncrement:false;index"`
	Book       Book     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category   Category `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name used by BookCategory
func (BookCategory) TableName() string {
	return "book_categories"
}
