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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/OS-joaocastilho/marketing-sm/internal/balance"
	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/OS-joaocastilho/marketing-sm/internal/generator"
	"github.com/OS-joaocastilho/marketing-sm/internal/locale"
	"github.com/OS-joaocastilho/marketing-sm/internal/output"
	"github.com/OS-joaocastilho/marketing-sm/internal/state"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// countFlags binds the total and per-category post counts.
type countFlags struct {
	total  int
	counts balance.Counts
}

func (c *countFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&c.total, "total", 0, "Total number of posts; categories are rebalanced to match")
	fs.IntVar(&c.counts.Educational, "educational", 0, "Educational posts")
	fs.IntVar(&c.counts.Motivational, "motivational", 0, "Motivational posts")
	fs.IntVar(&c.counts.Interactive, "interactive", 0, "Interactive posts")
	fs.IntVar(&c.counts.Promotional, "promotional", 0, "Promotional posts")
}

// totalPtr returns the requested total, or nil when --total was not given.
func (c *countFlags) totalPtr(fs *pflag.FlagSet) *int {
	if !fs.Changed("total") {
		return nil
	}
	total := c.total
	return &total
}

func newPostsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Plan the month's posts",
	}
	cmd.AddCommand(newBalanceCommand(a), newPlanCommand(a))
	return cmd
}

func newBalanceCommand(a *app) *cobra.Command {
	var cf countFlags

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Reconcile a total post count with the category counts",
		Long: `With --total, the category counts are adjusted one post at a time
until they add up to the total: the smallest category grows or the largest
shrinks. Without --total, the total is the sum of the categories.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := balance.RebalanceToTotal(cf.totalPtr(cmd.Flags()), cf.counts)
			if err := counts.Validate(); err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), a.labels, counts)
			return nil
		},
	}

	cf.register(cmd.Flags())
	return cmd
}

var categoryLabels = map[balance.Category]locale.Key{
	balance.Educational:  locale.EducationalPosts,
	balance.Motivational: locale.MotivationalPosts,
	balance.Interactive:  locale.InteractivePosts,
	balance.Promotional:  locale.PromotionalPosts,
}

func printCounts(w io.Writer, labels *locale.Table, c balance.Counts) {
	fmt.Fprintf(w, "%s: %d\n", labels.Lookup(locale.NumPosts), balance.RecomputeTotal(c))
	for _, cat := range balance.Categories() {
		fmt.Fprintf(w, "%s: %d\n", labels.Lookup(categoryLabels[cat]), c.Get(cat))
	}
}

func newPlanCommand(a *app) *cobra.Command {
	var (
		cf         countFlags
		opts       generator.Options
		month      string
		colors     []string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "plan <business>",
		Short: "Build a validated generation request for a business",
		Long: `Assemble a generation request from the stored business: the chosen
description, an optional scraped profile as examples, the suggestions, the
month, the brand colors and the balanced category counts. The request is
written as one NDJSON line.

Passing --color replaces and saves the business colors once the request
has been built; a plan that fails leaves the stored colors untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMonth(month, a.labels, time.Now())
			if err != nil {
				return err
			}
			opts.Month = m
			opts.Labels = a.labels
			opts.Total = cf.totalPtr(cmd.Flags())
			opts.Counts = cf.counts
			opts.Model = &generator.Model{
				Project:   a.cfg.Google.Project,
				Location:  a.cfg.Google.Location,
				TextModel: a.cfg.Google.TextModel,
			}

			setColors := cmd.Flags().Changed("color")
			if setColors {
				opts.Colors = append([]string{}, colors...)
			}

			biz, err := a.store.Load().Business(args[0])
			if err != nil {
				return err
			}
			req, err := generator.NewRequest(biz, opts)
			if err != nil {
				return err
			}
			if setColors {
				err = a.updateBusiness(args[0], func(b *state.Business) error {
					return b.SetColors(colors)
				})
				if err != nil {
					return err
				}
			}
			if opts.ProfileURL != "" && req.Examples == "" {
				a.log.Warn().Str("business", biz.Name).Str("url", opts.ProfileURL).
					Msg("no scraped profile stored for this url, request has no examples")
			}

			var writer output.RecordWriter
			if outputFile == "" {
				writer = output.NewWriter(cmd.OutOrStdout())
			} else {
				fileWriter, fErr := output.NewFileWriter(outputFile)
				if fErr != nil {
					return fErr
				}
				writer = fileWriter
			}
			defer writer.Close()

			if err := writer.Write(req); err != nil {
				return err
			}
			return writer.Close()
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.DescriptionTitle, "description", "", "Title of the stored description to use (required)")
	fs.StringVar(&opts.ProfileURL, "profile", "", "Scraped profile URL whose posts serve as examples")
	fs.StringSliceVar(&opts.SuggestionTitles, "suggestion", nil, "Suggestion titles to include (default: all)")
	fs.StringVar(&month, "month", "", "Month as 1-12 or a month name (default: next month)")
	fs.StringSliceVar(&colors, "color", nil, "Brand colors, most important first")
	fs.StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cf.register(fs)
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// parseMonth accepts a month number, an English month name or a name from
// the label table. An empty value means the month after now.
func parseMonth(s string, labels *locale.Table, now time.Time) (time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 1, 1-now.Day()).Month(), nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %d out of range 1-12", mserrors.ErrInvalidInput, n)
		}
		return time.Month(n), nil
	}

	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, m.String()) || (labels != nil && strings.EqualFold(s, labels.Month(m))) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", mserrors.ErrInvalidInput, s)
}
