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
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func benchState(businesses int) *State {
	st := NewState()
	for i := 0; i < businesses; i++ {
		b, _ := st.AddBusiness(fmt.Sprintf("business-%d", i))
		_ = b.AddDescription("About", "A description that is long enough to look like real marketing copy.")
		_ = b.AddSuggestion("Tone", "Friendly")
		_ = b.AddProfile(fmt.Sprintf("https://instagram.com/b%d", i), `[{"caption":"hello","likesCount":12}]`)
		_ = b.SetColors([]string{"#000000", "#ffffff"})
	}
	return st
}

// BenchmarkSaveState benchmarks state saving operations
func BenchmarkSaveState(b *testing.B) {
	benchmarks := []struct {
		name       string
		businesses int
	}{
		{"Small_1Business", 1},
		{"Medium_50Businesses", 50},
		{"Large_500Businesses", 500},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			store := NewStore(filepath.Join(b.TempDir(), DefaultFilename))
			st := benchState(bm.businesses)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if err := store.Save(st); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLoadState benchmarks state loading operations
func BenchmarkLoadState(b *testing.B) {
	store := NewStore(filepath.Join(b.TempDir(), DefaultFilename))
	if err := store.Save(benchState(50)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if st := store.Load(); len(st.Businesses) != 50 {
			b.Fatalf("loaded %d businesses", len(st.Businesses))
		}
	}
}

// BenchmarkLoadCorruptedState measures the recovery path including the backup copy.
func BenchmarkLoadCorruptedState(b *testing.B) {
	stateFile := filepath.Join(b.TempDir(), DefaultFilename)
	store := NewStore(stateFile)
	data := []byte("{not json")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		if err := os.WriteFile(stateFile, data, 0o644); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		store.Load()
	}
}
