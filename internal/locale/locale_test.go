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

package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"en", "pt"}, Available())
}

func TestTablesAreComplete(t *testing.T) {
	for _, loc := range Available() {
		t.Run(loc, func(t *testing.T) {
			table, err := Load(loc)
			require.NoError(t, err)
			assert.Equal(t, loc, table.Locale)
			assert.Empty(t, table.Missing(), "every label key needs text")
			assert.Len(t, table.Months, 12)
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("fr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "en, pt")
}

func TestLookup(t *testing.T) {
	table, err := Load("PT")
	require.NoError(t, err)

	assert.Equal(t, "Marca", table.Lookup(Brand))
	assert.Equal(t, "Posts de Venda", table.Lookup(PromotionalPosts))
	assert.Equal(t, "no_such_label", table.Lookup(Key("no_such_label")))
}

func TestMonth(t *testing.T) {
	pt, err := Load("pt")
	require.NoError(t, err)
	en, err := Load("en")
	require.NoError(t, err)

	assert.Equal(t, "Março", pt.Month(time.March))
	assert.Equal(t, "December", en.Month(time.December))
	assert.Equal(t, "%!Month(13)", en.Month(time.Month(13)))
}

func TestFormatPost(t *testing.T) {
	en, err := Load("en")
	require.NoError(t, err)

	got := en.FormatPost("Fresh bread daily", "a warm bakery counter")
	assert.Equal(t, "Description: Fresh bread daily\nImage prompt (to use with another model): a warm bakery counter", got)
}
