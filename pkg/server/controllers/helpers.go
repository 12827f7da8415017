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
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/maktaba/maktaba/pkg/server/messages"
	mw "github.com/maktaba/maktaba/pkg/server/middleware"
	"github.com/maktaba/maktaba/pkg/server/presenters"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxMultipartMemory bounds the memory used to parse multipart bodies
const maxMultipartMemory = 1 << 20

// payload is the union of the fields accepted by the API. JSON bodies, form
// bodies and query strings all decode into it.
type payload struct {
	Action string `json:"action" schema:"action"`
	ID     int    `json:"id" schema:"id"`

	Title       string   `json:"title" schema:"title"`
	Author      string   `json:"author" schema:"author"`
	ISBN        string   `json:"isbn" schema:"isbn"`
	Publisher   string   `json:"publisher" schema:"publisher"`
	PublishYear *int     `json:"publish_year" schema:"publish_year"`
	TotalPages  int      `json:"total_pages" schema:"total_pages"`
	CurrentPage int      `json:"current_page" schema:"current_page"`
	Language    string   `json:"language" schema:"language"`
	Location    string   `json:"location" schema:"location"`
	Status      string   `json:"status" schema:"status"`
	Rating      int      `json:"rating" schema:"rating"`
	StartDate   string   `json:"start_date" schema:"start_date"`
	EndDate     string   `json:"end_date" schema:"end_date"`
	Notes       string   `json:"notes" schema:"notes"`
	Favorite    flexBool `json:"favorite" schema:"favorite"`
	Categories  []int    `json:"categories" schema:"categories"`

	Name  string `json:"name" schema:"name"`
	Color string `json:"color" schema:"color"`

	Search     string `json:"search" schema:"search"`
	CategoryID int    `json:"category_id" schema:"category_id"`
}

func (p payload) bookParams() app.BookParams {
	return app.BookParams{
		Title:       p.Title,
		Author:      p.Author,
		ISBN:        p.ISBN,
		Publisher:   p.Publisher,
		PublishYear: p.PublishYear,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		Language:    p.Language,
		Location:    p.Location,
		Status:      p.Status,
		Rating:      p.Rating,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Notes:       p.Notes,
		Favorite:    bool(p.Favorite),
		CategoryIDs: p.Categories,
	}
}

func (p payload) categoryParams() app.CategoryParams {
	return app.CategoryParams{
		Name:  p.Name,
		Color: p.Color,
	}
}

func (p payload) bookFilter() app.BookFilter {
	return app.BookFilter{
		Status:     p.Status,
		Search:     p.Search,
		CategoryID: p.CategoryID,
	}
}

// flexBool accepts the boolean spellings sent by browsers and scripts:
// true/false, 1/0, on/off and yes/no
type flexBool bool

func parseFlexBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	default:
		return false, false
	}
}

// UnmarshalJSON accepts booleans, numbers and strings
func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*b = false
		return nil
	}

	v, ok := parseFlexBool(s)
	if !ok {
		return errors.Errorf("invalid boolean %s", string(data))
	}
	*b = flexBool(v)

	return nil
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(flexBool(false), func(s string) reflect.Value {
		v, ok := parseFlexBool(s)
		if !ok {
			return reflect.Value{}
		}

		return reflect.ValueOf(flexBool(v))
	})

	return d
}

// normalizeForm strips the "[]" suffix used by PHP style clients for
// repeated keys and drops empty values
func normalizeForm(values url.Values) url.Values {
	ret := url.Values{}

	for key, vals := range values {
		key = strings.TrimSuffix(key, "[]")

		for _, v := range vals {
			if v == "" {
				continue
			}
			ret.Add(key, v)
		}
	}

	return ret
}

// parseQueryData decodes the query string of the request into p
func parseQueryData(r *http.Request, p *payload) error {
	if err := decoder.Decode(p, normalizeForm(r.URL.Query())); err != nil {
		return errors.Wrap(err, "decoding query")
	}

	return nil
}

// parseRequestData decodes a JSON, urlencoded or multipart body into p
func parseRequestData(r *http.Request, p *payload) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "decoding JSON body")
		}

		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return errors.Wrap(err, "parsing multipart form")
		}
	default:
		if err := r.ParseForm(); err != nil {
			return errors.Wrap(err, "parsing form")
		}
	}

	if err := decoder.Decode(p, normalizeForm(r.Form)); err != nil {
		return errors.Wrap(err, "decoding form")
	}

	return nil
}

// errorMessages names the messages reported for each kind of failure of an
// operation
type errorMessages struct {
	invalid  string
	missing  string
	notFound string
	// failure is a format taking the underlying error
	failure string
}

// base carries what every controller needs to respond
type base struct {
	app    *app.App
	locale language.Tag
}

func newBase(a *app.App) base {
	tag, err := messages.ParseLocale(a.Locale)
	if err != nil {
		tag = messages.Arabic
	}

	return base{app: a, locale: tag}
}

func (b base) printer(r *http.Request) *message.Printer {
	return messages.NewPrinter(messages.Match(r.Header.Get("Accept-Language"), b.locale))
}

func respondJSON(w http.ResponseWriter, status int, env presenters.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// respond writes a successful envelope. An empty key omits the message.
func (b base) respond(w http.ResponseWriter, r *http.Request, status int, key string, data interface{}) {
	env := presenters.Envelope{
		Success: true,
		Data:    data,
	}
	if key != "" {
		env.Message = b.printer(r).Sprintf(key)
	}

	respondJSON(w, status, env)
}

// malformed responds to a request whose body or query could not be decoded
func (b base) malformed(w http.ResponseWriter, r *http.Request, err error) {
	log.WithFields(log.Fields{
		"request_id": mw.RequestID(r.Context()),
		"err":        err,
	}).Debug("malformed request")

	respondJSON(w, http.StatusBadRequest, presenters.Envelope{
		Message: b.printer(r).Sprintf(messages.MalformedRequest),
	})
}

// fail maps err to a status code and a localized failure envelope
func (b base) fail(w http.ResponseWriter, r *http.Request, err error, m errorMessages) {
	p := b.printer(r)
	env := presenters.Envelope{Success: false}

	var status int
	cause := errors.Cause(err)

	switch cause {
	case app.ErrInvalidArgument:
		status = http.StatusBadRequest
		env.Message = p.Sprintf(m.invalid)
	case app.ErrValidation:
		status = http.StatusUnprocessableEntity
		env.Message = p.Sprintf(messages.InvalidData)

		if ve, ok := app.AsValidationError(err); ok {
			if ve.Missing() && m.missing != "" {
				env.Message = p.Sprintf(m.missing)
			}
			env.Errors = ve.Fields
		}
	case app.ErrDuplicate:
		status = http.StatusConflict
		env.Message = p.Sprintf(messages.CategoryExists)
	case app.ErrNotFound:
		status = http.StatusNotFound
		env.Message = p.Sprintf(m.notFound)
	case app.ErrReference:
		status = http.StatusUnprocessableEntity
		env.Message = p.Sprintf(messages.UnknownCategory)
	default:
		status = http.StatusInternalServerError
		env.Message = p.Sprintf(m.failure, cause.Error())

		log.WithFields(log.Fields{
			"request_id": mw.RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).ErrorWrap(err, "handling request")
	}

	respondJSON(w, status, env)
}
