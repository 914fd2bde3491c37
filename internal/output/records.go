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

package output

import (
	"fmt"

	"github.com/OS-joaocastilho/marketing-sm/internal/state"
)

// EntryRecord is an exported titled text.
type EntryRecord struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// BusinessRecord is the export shape of one business. Entries are flattened
// into lists ordered by title so exports diff cleanly.
type BusinessRecord struct {
	Name         string        `json:"name"`
	Descriptions []EntryRecord `json:"descriptions"`
	Suggestions  []EntryRecord `json:"suggestions"`
	Profiles     []EntryRecord `json:"profiles"`
	Colors       []string      `json:"colors"`
}

// FromBusiness converts b to its export record.
func FromBusiness(b *state.Business) BusinessRecord {
	colors := b.Colors
	if colors == nil {
		colors = []string{}
	}
	return BusinessRecord{
		Name:         b.Name,
		Descriptions: entries(b.Descriptions),
		Suggestions:  entries(b.Suggestions),
		Profiles:     entries(b.Profiles),
		Colors:       colors,
	}
}

func entries(m map[string]state.Entry) []EntryRecord {
	out := make([]EntryRecord, 0, len(m))
	for _, title := range state.SortedTitles(m) {
		out = append(out, EntryRecord{Title: title, Body: m[title].Body})
	}
	return out
}

// ExportState writes every business of st, sorted by name, and returns how
// many records were written.
func ExportState(w RecordWriter, st *state.State) (int, error) {
	n := 0
	for _, name := range st.Names() {
		b, err := st.Business(name)
		if err != nil {
			return n, err
		}
		if err := w.Write(FromBusiness(b)); err != nil {
			return n, fmt.Errorf("export of business %q: %w", name, err)
		}
		n++
	}
	return n, nil
}
