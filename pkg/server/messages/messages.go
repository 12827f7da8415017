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

// Package messages holds the user facing text of the API in every supported
// language
package messages

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key doubles as the English text.
const (
	BookAdded       = "Book added successfully"
	BookUpdated     = "Book updated successfully"
	BookDeleted     = "Book deleted successfully"
	CategoryAdded   = "Category added successfully"
	CategoryUpdated = "Category updated successfully"
	CategoryDeleted = "Category deleted successfully"

	TitleAuthorRequired  = "Title and author are required"
	CategoryNameRequired = "Category name is required"
	CategoryExists       = "This category already exists"
	InvalidData          = "Invalid data"
	InvalidBookID        = "Invalid book id"
	InvalidCategoryID    = "Invalid category id"
	BookNotFound         = "Book not found"
	CategoryNotFound     = "Category not found"
	UnknownCategory      = "Unknown category"
	UnknownAction        = "Unknown action"
	MalformedRequest     = "Malformed request"

	ErrAddBook        = "Error adding book: %s"
	ErrUpdateBook     = "Error updating book: %s"
	ErrDeleteBook     = "Error deleting book: %s"
	ErrGetBook        = "Error loading book: %s"
	ErrListBooks      = "Error loading books: %s"
	ErrAddCategory    = "Error adding category: %s"
	ErrUpdateCategory = "Error updating category: %s"
	ErrDeleteCategory = "Error deleting category: %s"
	ErrListCategories = "Error loading categories: %s"
	ErrStatistics     = "Error computing statistics: %s"

	InternalError    = "Internal server error"
	TooManyRequests  = "Too many requests"
	RouteNotFound    = "Not found"
	MethodNotAllowed = "Method not allowed"

	StatusNotStarted = "Not started"
	StatusReading    = "Reading"
	StatusFinished   = "Finished"
	StatusPaused     = "Paused"
)

var arabic = map[string]string{
	BookAdded:       "تم إضافة الكتاب بنجاح",
	BookUpdated:     "تم تحديث الكتاب بنجاح",
	BookDeleted:     "تم حذف الكتاب بنجاح",
	CategoryAdded:   "تم إضافة التصنيف بنجاح",
	CategoryUpdated: "تم تحديث التصنيف بنجاح",
	CategoryDeleted: "تم حذف التصنيف بنجاح",

	TitleAuthorRequired:  "العنوان والمؤلف مطلوبان",
	CategoryNameRequired: "اسم التصنيف مطلوب",
	CategoryExists:       "هذا التصنيف موجود بالفعل",
	InvalidData:          "بيانات غير صحيحة",
	InvalidBookID:        "معرف الكتاب غير صحيح",
	InvalidCategoryID:    "معرف التصنيف غير صحيح",
	BookNotFound:         "الكتاب غير موجود",
	CategoryNotFound:     "التصنيف غير موجود",
	UnknownCategory:      "تصنيف غير معروف",
	UnknownAction:        "إجراء غير معروف",
	MalformedRequest:     "طلب غير صالح",

	ErrAddBook:        "خطأ في إضافة الكتاب: %s",
	ErrUpdateBook:     "خطأ في تحديث الكتاب: %s",
	ErrDeleteBook:     "خطأ في حذف الكتاب: %s",
	ErrGetBook:        "خطأ في جلب الكتاب: %s",
	ErrListBooks:      "خطأ في جلب الكتب: %s",
	ErrAddCategory:    "خطأ في إضافة التصنيف: %s",
	ErrUpdateCategory: "خطأ في تحديث التصنيف: %s",
	ErrDeleteCategory: "خطأ في حذف التصنيف: %s",
	ErrListCategories: "خطأ في جلب التصنيفات: %s",
	ErrStatistics:     "خطأ في حساب الإحصائيات: %s",

	InternalError:    "خطأ داخلي في الخادم",
	TooManyRequests:  "طلبات كثيرة جدا",
	RouteNotFound:    "غير موجود",
	MethodNotAllowed: "طريقة غير مسموحة",

	StatusNotStarted: "لم أبدأ",
	StatusReading:    "قيد القراءة",
	StatusFinished:   "منتهي",
	StatusPaused:     "متوقف",
}

var (
	// Arabic is the language of the catalog's original audience
	Arabic = language.Arabic
	// English is the secondary language
	English = language.English

	supported = []language.Tag{Arabic, English}
	matcher   = language.NewMatcher(supported)
	cat       = newCatalog()
)

// ErrUnsupportedLocale is returned for locales without translations
var ErrUnsupportedLocale = errors.New("unsupported locale")

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(English))

	for key, text := range arabic {
		if err := b.SetString(Arabic, key, text); err != nil {
			panic(errors.Wrapf(err, "registering message %q", key))
		}
		if err := b.SetString(English, key, key); err != nil {
			panic(errors.Wrapf(err, "registering message %q", key))
		}
	}

	return b
}

// ParseLocale returns the supported language for a locale code such as "ar"
// or "en-US"
func ParseLocale(code string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return language.Und, errors.Wrapf(ErrUnsupportedLocale, "%q", code)
	}

	base, _ := tag.Base()
	for _, s := range supported {
		if b, _ := s.Base(); b == base {
			return s, nil
		}
	}

	return language.Und, errors.Wrapf(ErrUnsupportedLocale, "%q", code)
}

// Match picks the supported language that best serves an Accept-Language
// header. It returns the fallback when the header names no supported language.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}

	return supported[idx]
}

// NewPrinter returns a printer for the given language
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// StatusLabel returns the display name of a reading status
func StatusLabel(p *message.Printer, status string) string {
	switch status {
	case "not-started":
		return p.Sprintf(StatusNotStarted)
	case "reading":
		return p.Sprintf(StatusReading)
	case "finished":
		return p.Sprintf(StatusFinished)
	case "paused":
		return p.Sprintf(StatusPaused)
	default:
		return status
	}
}
