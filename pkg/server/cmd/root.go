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
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command
type options struct {
	port       string
	dbDriver   string
	dbPath     string
	dbDSN      string
	logLevel   string
	locale     string
	configFile string
}

// NewRoot returns the root command with every subcommand registered
func NewRoot() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "maktaba-server",
		Short:         "Maktaba server - a personal library catalog",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.dbDriver, "dbDriver", "", "Database driver: sqlite or postgres (env: DB_DRIVER, default: sqlite)")
	flags.StringVar(&o.dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/maktaba/library.db)")
	flags.StringVar(&o.dbDSN, "dbDSN", "", "PostgreSQL connection string (env: DB_DSN)")
	flags.StringVar(&o.logLevel, "logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	flags.StringVar(&o.locale, "locale", "", "Default language of messages: ar or en (env: LOCALE, default: ar)")
	flags.StringVar(&o.configFile, "config", "", "Path to a YAML config file (env: MAKTABA_CONFIG, default: $XDG_CONFIG_HOME/maktaba/config.yml)")

	root.AddCommand(newStartCmd(o))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newStatsCmd(o))
	root.AddCommand(newCategoryCmd(o))

	return root
}

// Execute runs the main command
func Execute() error {
	return NewRoot().Execute()
}
