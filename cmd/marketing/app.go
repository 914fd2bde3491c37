// Copyright 2025 The marketing-sm Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/OS-joaocastilho/marketing-sm/internal/config"
	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/OS-joaocastilho/marketing-sm/internal/locale"
	"github.com/OS-joaocastilho/marketing-sm/internal/logging"
	"github.com/OS-joaocastilho/marketing-sm/internal/scraper"
	"github.com/OS-joaocastilho/marketing-sm/internal/state"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command. Set flags
// take precedence over the environment and the config file.
type globalFlags struct {
	configPath string
	dataDir    string
	locale     string
	logLevel   string
	logFormat  string
	mockScrape bool
}

// app holds what a command needs once configuration has been resolved.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *state.Store
	labels *locale.Table

	newScraper func() (scraper.Scraper, error)
}

func newRootCommand(logOut io.Writer) *cobra.Command {
	var (
		flags globalFlags
		a     = &app{}
	)

	rootCmd := &cobra.Command{
		Use:   "marketing-sm",
		Short: "Manage business state for AI generated social media posts",
		Long: `marketing-sm keeps a small database of businesses (descriptions,
content suggestions, scraped Instagram profiles and brand colors) and turns
it into generation requests with a balanced mix of educational,
motivational, interactive and promotional posts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, flags, logOut)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: .marketing-sm.yaml or ~/.marketing-sm/config.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory holding the state file (overrides MARKETING_DATA_DIR)")
	pf.StringVar(&flags.locale, "locale", "", "Label locale: pt or en (overrides MARKETING_LOCALE)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	pf.BoolVar(&flags.mockScrape, "mock-scraper", false, "Use canned posts instead of the scraping service")
	_ = pf.MarkHidden("mock-scraper")

	rootCmd.AddCommand(
		newBusinessCommand(a),
		newEntryCommand(a, "description", "Manage business descriptions", (*state.Business).AddDescription,
			func(b *state.Business) map[string]state.Entry { return b.Descriptions }),
		newEntryCommand(a, "suggestion", "Manage content suggestions", (*state.Business).AddSuggestion,
			func(b *state.Business) map[string]state.Entry { return b.Suggestions }),
		newProfileCommand(a),
		newColorsCommand(a),
		newPostsCommand(a),
		newLabelsCommand(a),
	)

	return rootCmd
}

// init resolves configuration, builds the logger and prepares the store.
func (a *app) init(cmd *cobra.Command, flags globalFlags, logOut io.Writer) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.dataDir != "" {
		cfg.Data.Dir = flags.dataDir
	}
	if flags.locale != "" {
		cfg.Locale = flags.locale
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", mserrors.ErrInvalidInput, err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}

	labels, err := locale.Load(cfg.Locale)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.labels = labels
	a.store = state.NewStore(cfg.StatePath(), state.WithLogger(log))
	if err := a.store.EnsureDir(); err != nil {
		return err
	}

	a.newScraper = func() (scraper.Scraper, error) {
		if flags.mockScrape {
			return scraper.NewMockScraper(), nil
		}
		return scraper.NewApifyClient(cfg.ApifyToken(), cfg.Apify, log)
	}

	log.Debug().Str("state", a.store.Path()).Str("locale", cfg.Locale).Msg("configuration loaded")
	return nil
}

// update loads the state, applies fn and saves the result. Nothing is
// written when fn fails.
func (a *app) update(fn func(*state.State) error) error {
	st := a.store.Load()
	if err := fn(st); err != nil {
		return err
	}
	return a.store.Save(st)
}

// updateBusiness runs fn against an existing business and saves.
func (a *app) updateBusiness(name string, fn func(*state.Business) error) error {
	return a.update(func(st *state.State) error {
		b, err := st.Business(name)
		if err != nil {
			return err
		}
		return fn(b)
	})
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, mserrors.ErrWriteFailure) {
		return 4
	}

	if errors.Is(err, mserrors.ErrInvalidInput) ||
		errors.Is(err, mserrors.ErrBusinessNotFound) ||
		errors.Is(err, mserrors.ErrInvalidToken) ||
		errors.Is(err, mserrors.ErrMissingToken) {
		return 2
	}

	if errors.Is(err, mserrors.ErrScrapeFailed) ||
		errors.Is(err, mserrors.ErrNetworkFailure) ||
		errors.Is(err, mserrors.ErrRateLimit) {
		return 3
	}

	return 1
}
