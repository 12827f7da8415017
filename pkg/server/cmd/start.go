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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maktaba/maktaba/pkg/server/app"
	"github.com/maktaba/maktaba/pkg/server/buildinfo"
	"github.com/maktaba/maktaba/pkg/server/config"
	"github.com/maktaba/maktaba/pkg/server/controllers"
	"github.com/maktaba/maktaba/pkg/server/database"
	"github.com/maktaba/maktaba/pkg/server/log"
	"github.com/maktaba/maktaba/pkg/server/messages"
	mw "github.com/maktaba/maktaba/pkg/server/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newStartCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withApp(o, func(cfg config.Config, a *app.App) error {
				return serve(ctx, cfg, a)
			})
		},
	}

	cmd.Flags().StringVar(&o.port, "port", "", "Server port (env: PORT, default: 3001)")

	return cmd
}

// newHandler builds the router. The returned function releases the
// background workers of the router.
func newHandler(a *app.App) (http.Handler, func(), error) {
	locale, err := messages.ParseLocale(a.Locale)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing the default locale")
	}

	var rl *mw.RateLimiter
	if a.RateLimited() {
		rl = mw.NewRateLimiter(locale)
	}
	release := func() {
		if rl != nil {
			rl.Stop()
		}
	}

	ctl := controllers.New(a)
	rc := controllers.RouteConfig{
		APIRoutes:   controllers.NewAPIRoutes(a, ctl),
		Controllers: ctl,
		Limiter:     rl,
	}

	r, err := controllers.NewRouter(a, rc)
	if err != nil {
		release()
		return nil, nil, errors.Wrap(err, "initializing router")
	}

	return r, release, nil
}

func serve(ctx context.Context, cfg config.Config, a *app.App) error {
	if a.UsesSQLite() {
		c, err := database.StartMaintenance(a.DB)
		if err != nil {
			return errors.Wrap(err, "scheduling database maintenance")
		}
		defer c.Stop()
	}

	handler, release, err := newHandler(a)
	if err != nil {
		return err
	}
	defer release()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.WithFields(log.Fields{
		"version":  buildinfo.Version,
		"port":     cfg.Port,
		"dbDriver": cfg.DBDriver,
		"locale":   cfg.Locale,
	}).Info("Maktaba server starting")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Maktaba server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down the server")
	}

	return nil
}
