/*
Copyright The ModelVault Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/modelvault/modelvault/pkg/catalog"
	"github.com/modelvault/modelvault/pkg/cli"
)

var listHelp = `
This command lists the artifacts the catalog knows about.

If a filter is provided, it is a glob pattern applied to artifact ids and
display names:

	$ modelvault list --filter 'llama-*'
`

func newListCmd(settings *cli.EnvSettings, out io.Writer) *cobra.Command {
	var (
		filter          string
		downloadedOnly  bool
		recommendedOnly bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list artifacts in the catalog",
		Long:    listHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(settings.CatalogFile, settings.StoreDir)
			if err != nil {
				return err
			}

			entries := cat.List()
			if filter != "" {
				if entries, err = cat.Search(filter); err != nil {
					return err
				}
			}

			table := uitable.New()
			table.AddRow("ID", "NAME", "VERSION", "SIZE", "DOWNLOADED", "RECOMMENDED")
			for _, e := range entries {
				present := cat.IsPresent(e.ID)
				if downloadedOnly && !present {
					continue
				}
				if recommendedOnly && !e.Recommended {
					continue
				}
				table.AddRow(e.ID, e.Name, e.Version, formatBytes(e.Size), yesNo(present), yesNo(e.Recommended))
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&filter, "filter", "f", "", "glob pattern applied to artifact ids and names")
	f.BoolVar(&downloadedOnly, "downloaded", false, "only show artifacts present in the store")
	f.BoolVar(&recommendedOnly, "recommended", false, "only show recommended artifacts")
	return cmd
}
