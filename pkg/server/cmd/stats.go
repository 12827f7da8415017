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
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/config"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/messages"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the statistics of the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(cfg config.Config, a *app.App) error {
				stats, err := a.GetStatistics(cmd.Context())
				if err != nil {
					return errors.Wrap(err, "computing statistics")
				}

				p, err := printerFor(cfg)
				if err != nil {
					return err
				}

				printStatistics(cmd.OutOrStdout(), p, stats)
				return nil
			})
		},
	}
}

func printerFor(cfg config.Config) (*message.Printer, error) {
	tag, err := messages.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "parsing locale")
	}

	return messages.NewPrinter(tag), nil
}

func printStatistics(w io.Writer, p *message.Printer, s app.Statistics) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %d\n", bold("books:"), s.TotalBooks)
	for _, status := range database.Statuses {
		fmt.Fprintf(w, "  %s: %d\n", messages.StatusLabel(p, status), s.ByStatus[status])
	}
	fmt.Fprintf(w, "%s %d / %d\n", bold("pages read:"), s.PagesRead, s.TotalPages)
	fmt.Fprintf(w, "%s %d\n", bold("favorites:"), s.FavoriteCount)
}
