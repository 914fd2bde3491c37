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
	"encoding/json"
	"fmt"

	"github.com/OS-joaocastilho/marketing-sm/internal/output"
	"github.com/OS-joaocastilho/marketing-sm/internal/state"
	"github.com/spf13/cobra"
)

func newBusinessCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business",
		Short: "Add, list and export businesses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Register a business (no-op if it already exists)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.update(func(st *state.State) error {
					_, err := st.AddBusiness(args[0])
					return err
				})
				if err != nil {
					return err
				}
				a.log.Info().Str("business", args[0]).Msg("business saved")
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List business names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, name := range a.store.Load().Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print one business as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.store.Load().Business(args[0])
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(output.FromBusiness(b), "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode business: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		newExportCommand(a),
	)

	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every business as NDJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var writer output.RecordWriter
			if outputFile == "" {
				writer = output.NewWriter(cmd.OutOrStdout())
			} else {
				fileWriter, err := output.NewFileWriter(outputFile)
				if err != nil {
					return err
				}
				writer = fileWriter
			}
			defer writer.Close()

			n, err := output.ExportState(writer, a.store.Load())
			if err != nil {
				return err
			}
			a.log.Info().Int("businesses", n).Str("output", outputFile).Msg("export complete")
			return writer.Close()
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	return cmd
}

// newEntryCommand builds the command group for one titled-entry mapping of a
// business. add stores an entry and entries selects the mapping to list.
func newEntryCommand(a *app, name, short string,
	add func(*state.Business, string, string) error,
	entries func(*state.Business) map[string]state.Entry,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <business> <title> <text>",
		Short: "Store a " + name + " under a title, replacing any previous one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.updateBusiness(args[0], func(b *state.Business) error {
				return add(b, args[1], args[2])
			})
			if err != nil {
				return err
			}
			a.log.Info().Str("business", args[0]).Str(name, args[1]).Msg(name + " saved")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <business>",
		Short: "List stored " + name + " titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.store.Load().Business(args[0])
			if err != nil {
				return err
			}
			for _, title := range state.SortedTitles(entries(b)) {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	})

	return cmd
}

func newColorsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Manage brand colors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <business> [color...]",
		Short: "Replace the brand colors, most important first (at most 6)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := args[1:]
			err := a.updateBusiness(args[0], func(b *state.Business) error {
				return b.SetColors(colors)
			})
			if err != nil {
				return err
			}
			a.log.Info().Str("business", args[0]).Strs("colors", colors).Msg("colors saved")
			return nil
		},
	})

	return cmd
}
