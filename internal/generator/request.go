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

package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/OS-joaocastilho/marketing-sm/internal/balance"
	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
	"github.com/OS-joaocastilho/marketing-sm/internal/locale"
	"github.com/OS-joaocastilho/marketing-sm/internal/state"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options selects which stored entries of a business go into a Request.
type Options struct {
	// DescriptionTitle picks the stored description. Required.
	DescriptionTitle string

	// ProfileURL picks a scraped profile used as example posts. When empty
	// or unknown the request carries no examples.
	ProfileURL string

	// SuggestionTitles picks stored suggestions. Empty means all of them.
	SuggestionTitles []string

	Month  time.Month
	Labels *locale.Table

	// Total is the requested number of posts; nil keeps the sum of Counts.
	Total  *int
	Counts balance.Counts

	// Colors overrides the business colors when non-nil.
	Colors []string

	// Model is copied into the request when set.
	Model *Model
}

// NewRequest builds and validates a generation request for b.
func NewRequest(b *state.Business, opts Options) (*Request, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: no business selected", mserrors.ErrInvalidInput)
	}

	desc, ok := b.Descriptions[opts.DescriptionTitle]
	if !ok {
		return nil, fmt.Errorf("%w: business %q has no description %q", mserrors.ErrInvalidInput, b.Name, opts.DescriptionTitle)
	}

	var examples string
	if p, ok := b.Profiles[opts.ProfileURL]; ok {
		examples = p.Body
	}

	suggestions, err := joinSuggestions(b, opts.SuggestionTitles)
	if err != nil {
		return nil, err
	}

	month := opts.Month.String()
	if opts.Labels != nil {
		month = opts.Labels.Month(opts.Month)
	}

	counts := balance.RebalanceToTotal(opts.Total, opts.Counts)
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	colors := b.Colors
	if opts.Colors != nil {
		colors = opts.Colors
	}

	req := &Request{
		Business:    b.Name,
		Description: desc.Body,
		Examples:    examples,
		Suggestions: suggestions,
		Month:       month,
		TotalPosts:  balance.RecomputeTotal(counts),
		Counts:      counts,
		Colors:      append([]string{}, colors...),
	}
	if opts.Model != nil {
		m := *opts.Model
		req.Model = &m
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func joinSuggestions(b *state.Business, titles []string) (string, error) {
	if len(titles) == 0 {
		titles = state.SortedTitles(b.Suggestions)
	}
	parts := make([]string, 0, len(titles))
	for _, title := range titles {
		s, ok := b.Suggestions[title]
		if !ok {
			return "", fmt.Errorf("%w: business %q has no suggestion %q", mserrors.ErrInvalidInput, b.Name, title)
		}
		if body := strings.TrimSpace(s.Body); body != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// Validate checks the request's struct constraints.
func (r *Request) Validate() error {
	return structError(validate.Struct(r))
}

// Validate checks every post of the result.
func (r *Result) Validate() error {
	return structError(validate.Struct(r))
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q (value %v)", mserrors.ErrInvalidInput, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %w", mserrors.ErrInvalidInput, err)
}
