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

	"github.com/OS-joaocastilho/marketing-sm/internal/locale"
	"github.com/spf13/cobra"
)

func newLabelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the user-facing labels of the configured locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, k := range locale.Keys() {
				fmt.Fprintf(w, "%s\t%q\n", k, a.labels.Lookup(k))
			}
			for _, k := range a.labels.Missing() {
				a.log.Warn().Str("locale", a.labels.Locale).Str("key", string(k)).Msg("label missing")
			}
			return nil
		},
	}
}
