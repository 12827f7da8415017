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
	"github.com/maktaba/maktaba/pkg/server/messages"
	mw "github.com/maktaba/maktaba/pkg/server/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
	// Limiter rate limits the routes that ask for it. Nil disables rate limiting.
	Limiter *mw.RateLimiter
	// Metrics is created by the router when nil
	Metrics *mw.Metrics
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"GET", "/books", c.Books.Index, true},
		{"POST", "/books", c.Books.Create, true},
		{"GET", "/books/{id}", c.Books.Show, true},
		{"PUT", "/books/{id}", c.Books.Update, true},
		{"DELETE", "/books/{id}", c.Books.Delete, true},
		{"GET", "/categories", c.Categories.Index, true},
		{"POST", "/categories", c.Categories.Create, true},
		{"PUT", "/categories/{id}", c.Categories.Update, true},
		{"DELETE", "/categories/{id}", c.Categories.Delete, true},
		{"GET", "/statistics", c.Statistics.Show, true},
		{"POST", "/library", c.Library.Dispatch, true},
	}
}

func registerRoutes(router *mux.Router, rl *mw.RateLimiter, routes []Route) {
	for _, route := range routes {
		wrappedHandler := mw.ApplyLimit(route.Handler, route.RateLimit, rl)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

func errorHandler(locale language.Tag, status int, key string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, locale, status, key)
	})
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	locale, err := messages.ParseLocale(app.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "parsing the default locale")
	}

	metrics := rc.Metrics
	if metrics == nil {
		metrics = mw.NewMetrics()
	}

	sqlDB, err := app.DB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting the database handle")
	}
	if err := metrics.Register(collectors.NewDBStatsCollector(sqlDB, "maktaba")); err != nil {
		return nil, errors.Wrap(err, "registering the database collector")
	}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(metrics.Middleware)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, rc.Limiter, rc.APIRoutes)

	router.HandleFunc("/health", rc.Controllers.Health.Index).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.NotFoundHandler = errorHandler(locale, http.StatusNotFound, messages.RouteNotFound)
	router.MethodNotAllowedHandler = errorHandler(locale, http.StatusMethodNotAllowed, messages.MethodNotAllowed)

	return mw.Global(router, locale), nil
}
