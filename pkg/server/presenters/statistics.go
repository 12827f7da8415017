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

package presenters

import (
	"github.com/maktaba/maktaba/pkg/server/app"
)

// Statistics is a result of PresentStatistics
type Statistics struct {
	TotalBooks    int64            `json:"total_books"`
	ByStatus      map[string]int64 `json:"by_status"`
	TotalPages    int64            `json:"total_pages"`
	PagesRead     int64            `json:"pages_read"`
	FavoriteCount int64            `json:"favorite_count"`
}

// PresentStatistics presents the catalog statistics
func PresentStatistics(s app.Statistics) Statistics {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for k, v := range s.ByStatus {
		byStatus[k] = v
	}

	return Statistics{
		TotalBooks:    s.TotalBooks,
		ByStatus:      byStatus,
		TotalPages:    s.TotalPages,
		PagesRead:     s.PagesRead,
		FavoriteCount: s.FavoriteCount,
	}
}
