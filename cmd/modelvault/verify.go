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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/modelvault/modelvault/pkg/cli"
)

var verifyHelp = `
This command recomputes the size and SHA-256 digest of a downloaded
artifact and compares them to the catalog's declarations.

An artifact whose catalog entry declares no checksum is reported with the
checksum check skipped: its only integrity evidence is its size.
`

func newVerifyCmd(settings *cli.EnvSettings, logger *logrus.Logger, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify ID",
		Short: "verify the integrity of a downloaded artifact",
		Long:  verifyHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(settings, logger)
			if err != nil {
				return err
			}
			id := args[0]

			rep, err := coord.Verify(id)
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("ARTIFACT", id)
			table.AddRow("PRESENT", yesNo(rep.Present))
			table.AddRow("VALID", yesNo(rep.Valid))
			table.AddRow("SIZE", formatBytes(rep.Size))
			table.AddRow("SIZE MATCH", yesNo(rep.SizeMatch))
			if rep.ChecksumSkipped {
				table.AddRow("CHECKSUM", "skipped (none declared)")
			} else {
				table.AddRow("CHECKSUM MATCH", yesNo(rep.ChecksumMatch))
				table.AddRow("COMPUTED", rep.Digest)
				table.AddRow("EXPECTED", rep.ExpectedDigest)
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
	return cmd
}
