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

package state

import (
	"errors"
	"testing"

	mserrors "github.com/OS-joaocastilho/marketing-sm/internal/errors"
)

func TestAddBusiness(t *testing.T) {
	st := NewState()

	first, err := st.AddBusiness("Loja")
	if err != nil {
		t.Fatalf("AddBusiness failed: %v", err)
	}
	if err := first.AddDescription("About", "Shoes"); err != nil {
		t.Fatal(err)
	}

	again, err := st.AddBusiness("Loja")
	if err != nil {
		t.Fatalf("AddBusiness failed: %v", err)
	}
	if again != first {
		t.Error("adding an existing business should return the existing record")
	}
	if len(again.Descriptions) != 1 {
		t.Errorf("existing business was reset: %d descriptions", len(again.Descriptions))
	}

	if _, err := st.AddBusiness("  "); !errors.Is(err, mserrors.ErrInvalidInput) {
		t.Errorf("AddBusiness(blank) error = %v, want ErrInvalidInput", err)
	}
}

func TestBusinessLookup(t *testing.T) {
	st := NewState()
	if _, err := st.AddBusiness("Loja"); err != nil {
		t.Fatal(err)
	}

	if b, err := st.Business("Loja"); err != nil || b.Name != "Loja" {
		t.Errorf("Business(Loja) = %v, %v", b, err)
	}
	if _, err := st.Business("Other"); !errors.Is(err, mserrors.ErrBusinessNotFound) {
		t.Errorf("Business(Other) error = %v, want ErrBusinessNotFound", err)
	}
}

func TestNames(t *testing.T) {
	st := NewState()
	for _, name := range []string{"zeta", "Alpha", "beta"} {
		if _, err := st.AddBusiness(name); err != nil {
			t.Fatal(err)
		}
	}

	got := st.Names()
	want := []string{"Alpha", "beta", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEntryMutations(t *testing.T) {
	tests := []struct {
		name string
		add  func(b *Business, title, body string) error
		get  func(b *Business) map[string]Entry
	}{
		{"description", (*Business).AddDescription, func(b *Business) map[string]Entry { return b.Descriptions }},
		{"suggestion", (*Business).AddSuggestion, func(b *Business) map[string]Entry { return b.Suggestions }},
		{"profile", (*Business).AddProfile, func(b *Business) map[string]Entry { return b.Profiles }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBusiness("Loja")

			if err := tt.add(b, "key", "first"); err != nil {
				t.Fatal(err)
			}
			if err := tt.add(b, "key", "second"); err != nil {
				t.Fatal(err)
			}

			got := tt.get(b)["key"]
			if got.Title != "key" || got.Body != "second" {
				t.Errorf("entry = %+v, want last write to win", got)
			}
			if err := tt.add(b, "", "body"); !errors.Is(err, mserrors.ErrInvalidInput) {
				t.Errorf("empty title error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSetColors(t *testing.T) {
	b := NewBusiness("Loja")

	input := []string{"#111111", "#222222"}
	if err := b.SetColors(input); err != nil {
		t.Fatal(err)
	}
	input[0] = "#ffffff"
	if b.Colors[0] != "#111111" {
		t.Error("SetColors should copy its input")
	}

	if err := b.SetColors(nil); err != nil {
		t.Fatal(err)
	}
	if b.Colors == nil || len(b.Colors) != 0 {
		t.Errorf("SetColors(nil) = %#v, want empty slice", b.Colors)
	}

	tooMany := []string{"#1", "#2", "#3", "#4", "#5", "#6", "#7"}
	if err := b.SetColors(tooMany); !errors.Is(err, mserrors.ErrInvalidInput) {
		t.Errorf("SetColors(7 colors) error = %v, want ErrInvalidInput", err)
	}
	if len(b.Colors) != 0 {
		t.Error("a rejected SetColors must leave the colors unchanged")
	}
}

func TestSortedTitles(t *testing.T) {
	m := map[string]Entry{"b": {}, "a": {}, "c": {}}
	got := SortedTitles(m)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("SortedTitles() = %v", got)
	}
}
