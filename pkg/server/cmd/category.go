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

	"github.com/fatih/color"
	"github.com/maktaba/maktaba/pkg/prompt"
	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/config"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCategoryCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"c"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(newCategoryLsCmd(o))
	cmd.AddCommand(newCategoryAddCmd(o))
	cmd.AddCommand(newCategoryRmCmd(o))

	return cmd
}

func newCategoryLsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List categories with the number of their books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(cfg config.Config, a *app.App) error {
				counts, err := a.ListCategoryCounts(cmd.Context())
				if err != nil {
					return errors.Wrap(err, "listing categories")
				}

				w := cmd.OutOrStdout()
				for _, c := range counts {
					fmt.Fprintf(w, "%s %s (%d)\n", color.YellowString("(%d)", c.ID), c.Name, c.BookCount)
				}

				return nil
			})
		},
	}
}

func newCategoryAddCmd(o *options) *cobra.Command {
	var colorFlag string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(cfg config.Config, a *app.App) error {
				category, err := a.CreateCategory(cmd.Context(), app.CategoryParams{
					Name:  args[0],
					Color: colorFlag,
				})
				if err != nil {
					return errors.Wrapf(err, "adding category %q", args[0])
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s added category %s (%d)\n", color.GreenString("✓"), category.Name, category.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&colorFlag, "color", "", "Hex color of the category (default: #007aff)")

	return cmd
}

func newCategoryRmCmd(o *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a category and unlink it from its books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(o, func(cfg config.Config, a *app.App) error {
				category, err := a.FindCategoryByName(cmd.Context(), args[0])
				if err != nil {
					return errors.Wrapf(err, "finding category %q", args[0])
				}

				if !yes {
					question := fmt.Sprintf("remove category %q?", category.Name)
					ok, err := prompt.Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), question, false)
					if err != nil {
						return errors.Wrap(err, "confirming removal")
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "aborted")
						return nil
					}
				}

				if err := a.DeleteCategory(cmd.Context(), category.ID); err != nil {
					return errors.Wrapf(err, "removing category %q", category.Name)
				}

				log.WithFields(log.Fields{
					"category_id": category.ID,
				}).Info("category removed")

				fmt.Fprintf(cmd.OutOrStdout(), "%s removed category %s\n", color.GreenString("✓"), category.Name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
