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

// Package balance keeps a total post count and its four category counts
// consistent. Changing the total redistributes the categories; changing a
// category recomputes the total. The functions hold no state.
package balance

import (
	"cmp"
	"fmt"
	"slices"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
)

// MaxPosts is the largest batch of posts that can be requested at once.
const MaxPosts = 12

// Category identifies one of the four kinds of post.
type Category int

const (
	Educational Category = iota
	Motivational
	Interactive
	Promotional
)

var categoryNames = [...]string{"educational", "motivational", "interactive", "promotional"}

func (c Category) String() string {
	if c < Educational || c > Promotional {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns the categories in declaration order, which is also the
// tie-break order used when rebalancing.
func Categories() []Category {
	return []Category{Educational, Motivational, Interactive, Promotional}
}

// Counts holds the number of posts wanted per category.
type Counts struct {
	Educational  int `json:"educational"`
	Motivational int `json:"motivational"`
	Interactive  int `json:"interactive"`
	Promotional  int `json:"promotional"`
}

// Get returns the count of one category.
func (c Counts) Get(cat Category) int {
	switch cat {
	case Educational:
		return c.Educational
	case Motivational:
		return c.Motivational
	case Interactive:
		return c.Interactive
	case Promotional:
		return c.Promotional
	}
	return 0
}

// Set returns a copy of c with one category replaced.
func (c Counts) Set(cat Category, n int) Counts {
	switch cat {
	case Educational:
		c.Educational = n
	case Motivational:
		c.Motivational = n
	case Interactive:
		c.Interactive = n
	case Promotional:
		c.Promotional = n
	}
	return c
}

// Validate rejects negative counts and batches larger than MaxPosts.
func (c Counts) Validate() error {
	for _, cat := range Categories() {
		if c.Get(cat) < 0 {
			return fmt.Errorf("%w: %s posts must not be negative", mserrors.ErrInvalidInput, cat)
		}
	}
	if total := RecomputeTotal(c); total > MaxPosts {
		return fmt.Errorf("%w: %d posts requested, at most %d allowed", mserrors.ErrInvalidInput, total, MaxPosts)
	}
	return nil
}

// RecomputeTotal returns the sum of the four category counts.
func RecomputeTotal(c Counts) int {
	return c.Educational + c.Motivational + c.Interactive + c.Promotional
}

// RebalanceToTotal adjusts the categories so they sum to total. While the sum
// is short, the smallest category gains one post; while it is over, the
// largest loses one. After every step the categories are stably sorted by
// value starting from declaration order, so among equal values the first
// declared category grows first and the last declared shrinks first.
//
// A nil total leaves the counts unchanged. Negative inputs are clamped to
// zero and counts never go below zero, so a negative total cannot be reached
// and the clamped counts are returned as they are.
func RebalanceToTotal(total *int, c Counts) Counts {
	if total == nil {
		return c
	}

	cats := Categories()
	for _, cat := range cats {
		c = c.Set(cat, max(c.Get(cat), 0))
	}

	byValue := func() []Category {
		order := slices.Clone(cats)
		slices.SortStableFunc(order, func(a, b Category) int {
			return cmp.Compare(c.Get(a), c.Get(b))
		})
		return order
	}

	current := RecomputeTotal(c)
	for current < *total {
		smallest := byValue()[0]
		c = c.Set(smallest, c.Get(smallest)+1)
		current++
	}
	for current > *total {
		order := byValue()
		largest := order[len(order)-1]
		if c.Get(largest) == 0 {
			break
		}
		c = c.Set(largest, c.Get(largest)-1)
		current--
	}
	return c
}
