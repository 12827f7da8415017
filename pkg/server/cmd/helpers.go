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

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/maktaba/maktaba/pkg/clock"
	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/config"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// envFile is loaded from the working directory before the configuration is
// resolved. Variables already set in the environment win.
const envFile = ".env"

func loadEnvFile() error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "loading %s", envFile)
	}

	return nil
}

func (o *options) params() config.Params {
	return config.Params{
		Port:       o.port,
		DBDriver:   o.dbDriver,
		DBPath:     o.dbPath,
		DBDSN:      o.dbDSN,
		LogLevel:   o.logLevel,
		Locale:     o.locale,
		ConfigFile: o.configFile,
	}
}

// loadConfig resolves the configuration and applies its log level
func loadConfig(o *options) (config.Config, error) {
	if err := loadEnvFile(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.New(o.params())
	if err != nil {
		return config.Config{}, errors.Wrap(err, "loading configuration")
	}

	log.SetLevel(cfg.LogLevel)

	return cfg, nil
}

func initDB(cfg config.Config) *gorm.DB {
	db := database.Open(cfg.DatabaseOptions())
	database.InitSchema(db)

	return db
}

func initApp(cfg config.Config) app.App {
	return app.App{
		DB:     initDB(cfg),
		Clock:  clock.New(),
		AppEnv: cfg.AppEnv,
		Port:   cfg.Port,
		DBPath: cfg.DBPath,
		Locale: cfg.Locale,
	}
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// withApp resolves the configuration, opens the database and runs fn
func withApp(o *options, fn func(cfg config.Config, a *app.App) error) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	a := initApp(cfg)
	defer closeDB(a.DB)

	return fn(cfg, &a)
}
