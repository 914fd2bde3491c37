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
	"io"
	"strings"
	"testing"

	"github.com/OS-joaocastilho/marketing-sm/internal/state"
)

// benchBusiness builds a business with a realistic amount of stored text.
func benchBusiness(num int) *state.Business {
	b := state.NewBusiness(fmt.Sprintf("Business %d", num))
	for i := 0; i < 3; i++ {
		_ = b.AddDescription(fmt.Sprintf("Description %d", i), strings.Repeat("Family bakery with fresh bread every morning. ", 10))
		_ = b.AddSuggestion(fmt.Sprintf("Suggestion %d", i), "Mention the weekend opening hours and the new cakes.")
	}
	_ = b.AddProfile("https://www.instagram.com/acme/", strings.Repeat(`{"caption":"Fresh bread","likesCount":10},`, 50))
	_ = b.SetColors([]string{"#aa3300", "#ffffff", "#222222"})
	return b
}

func BenchmarkWriter_Write(b *testing.B) {
	w := NewWriter(io.Discard)
	rec := FromBusiness(benchBusiness(1))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := w.Write(rec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriter_Concurrent(b *testing.B) {
	w := NewWriter(io.Discard)
	rec := FromBusiness(benchBusiness(1))

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := w.Write(rec); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkExportState(b *testing.B) {
	for _, count := range []int{10, 100, 1000} {
		st := state.NewState()
		for i := 0; i < count; i++ {
			biz := benchBusiness(i)
			st.Businesses[biz.Name] = biz
		}

		b.Run(fmt.Sprintf("%dBusinesses", count), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ExportState(NewWriter(io.Discard), st); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
