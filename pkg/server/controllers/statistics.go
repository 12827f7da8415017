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

	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/messages"
	"github.com/maktaba/maktaba/pkg/server/presenters"
)

var statisticsErrors = errorMessages{
	failure: messages.ErrStatistics,
}

// NewStatistics creates a new Statistics controller.
func NewStatistics(app *app.App) *Statistics {
	return &Statistics{
		base: newBase(app),
	}
}

// Statistics is a statistics controller.
type Statistics struct {
	base
}

// Show returns the catalog statistics
func (s *Statistics) Show(w http.ResponseWriter, r *http.Request) {
	stats, err := s.app.GetStatistics(r.Context())
	if err != nil {
		s.fail(w, r, err, statisticsErrors)
		return
	}

	s.respond(w, r, http.StatusOK, "", presenters.PresentStatistics(stats))
}
