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

// Package testutils provides utilities used in tests
package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/helpers"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitDB opens a sqlite database at the given path and initializes the schema
func InitDB(dbPath string) *gorm.DB {
	db := database.Open(database.Options{
		Driver: database.DriverSQLite,
		Path:   dbPath,
	})
	database.InitSchema(db)

	return db
}

// InitMemoryDB creates an in-memory SQLite database with the schema initialized
func InitMemoryDB(t *testing.T) *gorm.DB {
	// Every test gets its own named database so that connections in the
	// pool share it while tests stay isolated
	uuid := MustUUID(t)

	db := InitDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// MustUUID generates a UUID and fails the test on error
func MustUUID(t *testing.T) string {
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatal(errors.Wrap(err, "Failed to generate UUID"))
	}

	return uuid
}

// SetupCategory creates and returns a category
func SetupCategory(t *testing.T, db *gorm.DB, name, color string) database.Category {
	if color == "" {
		color = database.DefaultColor
	}

	category := database.Category{
		Name:      name,
		Color:     color,
		CreatedAt: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatal(errors.Wrap(err, "Failed to prepare category"))
	}

	return category
}

// SetupBook creates the given book and links it to the given categories.
// Empty title, author, language and status are filled in.
func SetupBook(t *testing.T, db *gorm.DB, book database.Book, categoryIDs ...int) database.Book {
	if book.Title == "" {
		book.Title = "Untitled"
	}
	if book.Author == "" {
		book.Author = "Anonymous"
	}
	if book.Language == "" {
		book.Language = database.DefaultLanguage
	}
	if book.Status == "" {
		book.Status = database.StatusNotStarted
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if book.UpdatedAt.IsZero() {
		book.UpdatedAt = book.CreatedAt
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatal(errors.Wrap(err, "Failed to prepare book"))
	}

	for _, id := range categoryIDs {
		link := database.BookCategory{BookID: book.ID, CategoryID: id}
		if err := db.Omit(clause.Associations).Create(&link).Error; err != nil {
			t.Fatal(errors.Wrap(err, "Failed to link book category"))
		}
	}

	return book
}

// CountBookCategories returns the number of links of the given book
func CountBookCategories(t *testing.T, db *gorm.DB, bookID int) int64 {
	var count int64
	MustExec(t, db.Model(&database.BookCategory{}).Where("book_id = ?", bookID).Count(&count), "counting book categories")

	return count
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MakeJSONReq makes an HTTP request with a JSON body
func MakeJSONReq(endpoint, method, path, data string) *http.Request {
	req := MakeReq(endpoint, method, path, data)
	req.Header.Set("Content-Type", "application/json")

	return req
}

// MakeFormReq makes an HTTP request and returns a response
func MakeFormReq(endpoint, method, path string, data url.Values) *http.Request {
	req := MakeReq(endpoint, method, path, data.Encode())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// ReadJSON decodes the response body into v and closes it
func ReadJSON(t *testing.T, res *http.Response, v interface{}) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading response body"))
	}

	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decoding response body %q: %s", string(body), err.Error())
	}
}

// PayloadType is the encoding of a request body
type PayloadType int

const (
	// PayloadJSON represents a JSON body
	PayloadJSON PayloadType = iota
	// PayloadForm represents a URL encoded form body
	PayloadForm
)

type payloadTest func(t *testing.T, target PayloadType)

// RunForJSONAndForm runs the given test function with both body encodings
func RunForJSONAndForm(t *testing.T, name string, runTest payloadTest) {
	t.Run(fmt.Sprintf("%s-json", name), func(t *testing.T) {
		runTest(t, PayloadJSON)
	})

	t.Run(fmt.Sprintf("%s-form", name), func(t *testing.T) {
		runTest(t, PayloadForm)
	})
}

// PayloadWrapper is a wrapper for a payload that can be converted to
// either URL form values or JSON
type PayloadWrapper struct {
	Data interface{}
}

// ToURLValues encodes the payload using the schema tags of its fields. Nil
// pointers are skipped and slices become repeated keys.
func (p PayloadWrapper) ToURLValues() url.Values {
	values := url.Values{}

	el := reflect.ValueOf(p.Data)
	if el.Kind() == reflect.Ptr {
		el = el.Elem()
	}

	typ := el.Type()
	for i := 0; i < el.NumField(); i++ {
		fi := typ.Field(i)
		name := fi.Tag.Get("schema")
		if name == "" {
			name = fi.Name
		}

		fv := el.Field(i)
		switch fv.Kind() {
		case reflect.Ptr:
			if !fv.IsNil() {
				values.Set(name, fmt.Sprint(fv.Elem()))
			}
		case reflect.Slice:
			for j := 0; j < fv.Len(); j++ {
				values.Add(name, fmt.Sprint(fv.Index(j)))
			}
		default:
			values.Set(name, fmt.Sprint(fv))
		}
	}

	return values
}

// ToJSON encodes the payload as JSON
func (p PayloadWrapper) ToJSON(t *testing.T) string {
	b, err := json.Marshal(p.Data)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

// Request builds a request carrying the payload in the given encoding
func (p PayloadWrapper) Request(t *testing.T, target PayloadType, endpoint, method, path string) *http.Request {
	if target == PayloadForm {
		return MakeFormReq(endpoint, method, path, p.ToURLValues())
	}

	return MakeJSONReq(endpoint, method, path, p.ToJSON(t))
}

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}
