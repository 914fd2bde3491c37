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

// Package state provides durable persistence for per-business marketing data.
//
// A State is the whole aggregate of known businesses: their free-text
// descriptions, post suggestions, scraped social-profile snapshots and brand
// colors. It is held in memory by the caller for the process lifetime and
// written back as a single JSON document after every edit. There are no
// partial writes and no transactions; the last full write wins.
//
// Loading never fails. A missing document is the expected first-run
// condition and yields an empty State. A document that is not valid JSON is
// copied to a timestamp-suffixed sibling file so its bytes are not lost, and
// an empty State is returned in its place. Writes do fail, and the error is
// returned unmodified apart from wrapping, so callers can report that an edit
// was not saved.
//
// Every write is atomic, using a write-to-temp-and-rename pattern in the
// same directory as the document.
//
// Example usage:
//
//	store := state.NewStore(filepath.Join(dataDir, "state.json"))
//	st := store.Load()
//	biz, _ := st.AddBusiness("Padaria Central")
//	_ = biz.AddDescription("About", "Family bakery since 1974")
//	if err := store.Save(st); err != nil {
//	    return err
//	}
package state
