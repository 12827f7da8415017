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
	"time"

	"github.com/maktaba/maktaba/pkg/clock"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyLocale is an error for missing default locale in the app configuration
	ErrEmptyLocale = errors.New("No locale was provided")
)

// App is an application context
type App struct {
	DB       *gorm.DB
	Clock    clock.Clock
	AppEnv   string
	Port     string
	DBPath   string
	// Locale is the language of messages for requests that do not ask for one
	Locale string
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.Locale == "" {
		return ErrEmptyLocale
	}

	return nil
}

// RateLimited reports whether requests should be rate limited
func (a *App) RateLimited() bool {
	return a.AppEnv != "TEST"
}

// now returns the current time truncated to the precision kept by the store
func (a *App) now() time.Time {
	return a.Clock.Now().UTC().Truncate(time.Microsecond)
}

// UsesSQLite reports whether the store is the embedded sqlite database
func (a *App) UsesSQLite() bool {
	return a.DB != nil && a.DB.Dialector != nil && a.DB.Dialector.Name() == database.DriverSQLite
}

// lowerFunc returns the SQL function lowercasing text on the current store
func (a *App) lowerFunc() string {
	if a.UsesSQLite() {
		return database.UnicodeLowerFunc
	}

	return "LOWER"
}
