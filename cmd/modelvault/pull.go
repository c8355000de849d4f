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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/modelvault/modelvault/pkg/cli"
	"github.com/modelvault/modelvault/pkg/downloader"
	"github.com/modelvault/modelvault/pkg/transfer"
)

var pullHelp = `
This command downloads an artifact into the store.

The transfer is verified against the catalog's declared size and checksum
before the file appears under its final name. If the artifact is already
present the command returns immediately. If another transfer for the same
artifact is in progress the command declines rather than starting a
duplicate; use 'modelvault status' to watch the existing one.
`

func newPullCmd(settings *cli.EnvSettings, logger *logrus.Logger, out io.Writer) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "pull ID",
		Short: "download an artifact into the store",
		Long:  pullHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(settings, logger)
			if err != nil {
				return err
			}
			id := args[0]

			report := func(s downloader.Sample) {
				switch s.Status {
				case downloader.StatusComplete:
					fmt.Fprintf(out, "\r%s: complete (%s)          \n", id, formatBytes(s.Downloaded))
				case downloader.StatusError:
					fmt.Fprintf(out, "\r%s: failed: %s\n", id, s.Err)
				default:
					fmt.Fprintf(out, "\r%s: %5.1f%% of %s (%s/s)", id,
						s.Percent, formatBytes(s.Total), formatBytes(int64(s.BytesPerSecond)))
				}
			}

			err = coord.Start(id, report, actor)
			if transfer.KindOf(err) == transfer.KindAlreadyInFlight {
				fmt.Fprintf(out, "%s is already being downloaded; try 'modelvault status %s'\n", id, id)
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "actor id recorded in the audit log")
	return cmd
}
