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
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"gorm.io/gorm"
)

const (
	checkpointSchedule = "@every 10m"
	vacuumSchedule     = "@weekly"
)

// Checkpoint moves the sqlite write-ahead log into the main database file
func Checkpoint(db *gorm.DB) error {
	if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		return errors.Wrap(err, "checkpointing wal")
	}

	return nil
}

// Vacuum rebuilds the sqlite database file to reclaim unused pages
func Vacuum(db *gorm.DB) error {
	if err := db.Exec("VACUUM").Error; err != nil {
		return errors.Wrap(err, "vacuuming")
	}

	return nil
}

// StartMaintenance schedules periodic housekeeping for a sqlite store
func StartMaintenance(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()

	if err := c.AddFunc(checkpointSchedule, func() {
		if err := Checkpoint(db); err != nil {
			log.ErrorWrap(err, "running scheduled checkpoint")
		}
	}); err != nil {
		return nil, errors.Wrap(err, "scheduling checkpoint")
	}

	if err := c.AddFunc(vacuumSchedule, func() {
		if err := Vacuum(db); err != nil {
			log.ErrorWrap(err, "running scheduled vacuum")
			return
		}

		log.Info("vacuumed database")
	}); err != nil {
		return nil, errors.Wrap(err, "scheduling vacuum")
	}

	c.Start()

	return c, nil
}
