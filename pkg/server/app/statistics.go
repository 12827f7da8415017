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
	"context"

	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/pkg/errors"
)

// Statistics summarizes the catalog
type Statistics struct {
	TotalBooks int64
	// ByStatus holds a count for every reading status, including zeros
	ByStatus      map[string]int64
	TotalPages    int64
	PagesRead     int64
	FavoriteCount int64
}

type statisticsTotals struct {
	TotalBooks    int64
	TotalPages    int64
	PagesRead     int64
	FavoriteCount int64
}

type statusCount struct {
	Status string
	Count  int64
}

// GetStatistics computes the catalog totals. Negative page counts are not
// summed.
func (a *App) GetStatistics(ctx context.Context) (Statistics, error) {
	conn := a.DB.WithContext(ctx)

	var totals statisticsTotals
	err := conn.Model(&database.Book{}).
		Select(`COUNT(*) AS total_books,
			COALESCE(SUM(CASE WHEN total_pages > 0 THEN total_pages ELSE 0 END), 0) AS total_pages,
			COALESCE(SUM(CASE WHEN current_page > 0 THEN current_page ELSE 0 END), 0) AS pages_read,
			COALESCE(SUM(CASE WHEN favorite THEN 1 ELSE 0 END), 0) AS favorite_count`).
		Scan(&totals).Error
	if err != nil {
		return Statistics{}, errors.Wrap(err, "computing totals")
	}

	var counts []statusCount
	if err := conn.Model(&database.Book{}).Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error; err != nil {
		return Statistics{}, errors.Wrap(err, "counting books by status")
	}

	byStatus := make(map[string]int64, len(database.Statuses))
	for _, s := range database.Statuses {
		byStatus[s] = 0
	}
	for _, c := range counts {
		if _, ok := byStatus[c.Status]; ok {
			byStatus[c.Status] = c.Count
		}
	}

	return Statistics{
		TotalBooks:    totals.TotalBooks,
		ByStatus:      byStatus,
		TotalPages:    totals.TotalPages,
		PagesRead:     totals.PagesRead,
		FavoriteCount: totals.FavoriteCount,
	}, nil
}
