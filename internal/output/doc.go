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

// Package output streams records as NDJSON (newline-delimited JSON), one
// object per line. It backs the export commands: every business of the state
// file becomes one line, and generation requests can be written the same way
// for a downstream generator to consume.
//
// Writer is safe for concurrent use and never buffers more than one record.
//
//	w, err := output.NewFileWriter("businesses.ndjson")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	n, err := output.ExportState(w, st)
package output
