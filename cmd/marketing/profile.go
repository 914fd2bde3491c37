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
	"context"
	"fmt"
	"path/filepath"

	"github.com/OS-joaocastilho/marketing-sm/internal/metadata"
	"github.com/OS-joaocastilho/marketing-sm/internal/scraper"
	"github.com/OS-joaocastilho/marketing-sm/internal/state"
	"github.com/spf13/cobra"
)

func newProfileCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage scraped Instagram profiles used as example posts",
	}

	var text string
	add := &cobra.Command{
		Use:   "add <business> <profile-url>",
		Short: "Scrape a profile and store its posts on the business",
		Long: `Scrape the recent posts of an Instagram profile through the hosted
scraping actor and store them on the business under the profile URL.
Use --text to store a body you already have instead of scraping.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.addProfile(cmd.Context(), args[0], args[1], text, cmd.Flags().Changed("text"))
		},
	}
	add.Flags().StringVar(&text, "text", "", "Store this body instead of scraping")

	last := &cobra.Command{
		Use:   "last <business> <profile-url>",
		Short: "Show the metadata of the latest scrape of a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := metadata.LoadLatestMetadata(a.scrapesDir(), args[0], args[1])
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("no scrape recorded for %s on %q", args[1], args[0])
			}
			return metadata.WriteMetadataToWriter(m, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(add, last)
	return cmd
}

// addProfile stores a profile body on a business, scraping it unless the
// body was given.
func (a *app) addProfile(ctx context.Context, business, profileURL, text string, haveText bool) error {
	if err := scraper.ValidateProfileURL(profileURL); err != nil {
		return err
	}
	if _, err := a.store.Load().Business(business); err != nil {
		return err
	}

	body := text
	var tracker *metadata.Tracker
	if !haveText {
		s, err := a.newScraper()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, a.cfg.Apify.Timeout)
		defer cancel()

		a.log.Info().Str("business", business).Str("url", profileURL).Msg("scraping profile")
		tracker = metadata.New()
		posts, err := s.Scrape(ctx, profileURL)
		if err != nil {
			return err
		}
		if body, err = scraper.Snapshot(posts); err != nil {
			return err
		}
		tracker.RecordPosts(posts)
	}

	err := a.updateBusiness(business, func(b *state.Business) error {
		return b.AddProfile(profileURL, body)
	})
	if err != nil {
		return err
	}
	a.log.Info().Str("business", business).Str("url", profileURL).Int("bytes", len(body)).Msg("profile saved")

	if tracker != nil {
		a.recordScrape(tracker, business, profileURL)
	}
	return nil
}

func (a *app) scrapesDir() string {
	return filepath.Join(a.cfg.Data.Dir, metadata.DirName)
}

// recordScrape saves scrape metadata linked to the previous scrape of the
// same profile. Failures are logged; the profile itself is already saved.
func (a *app) recordScrape(tracker *metadata.Tracker, business, profileURL string) {
	dir := a.scrapesDir()
	previous, err := metadata.LoadLatestMetadata(dir, business, profileURL)
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to read previous scrape metadata")
	}

	m := tracker.GenerateMetadata(version, metadata.ScrapeParams{
		Business:     business,
		ProfileURL:   profileURL,
		ActorID:      a.cfg.Apify.ActorID,
		ResultsLimit: a.cfg.Apify.ResultsLimit,
	}, previous.Ref())

	if err := metadata.SaveMetadata(m, dir); err != nil {
		a.log.Warn().Err(err).Msg("failed to save scrape metadata")
		return
	}
	a.log.Debug().Str("scrape_id", m.ScrapeID).Int("posts", m.Results.TotalPosts).Msg("scrape metadata saved")
}
