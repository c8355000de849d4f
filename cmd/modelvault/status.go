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
	"github.com/modelvault/modelvault/pkg/transfer"
)

func newStatusCmd(settings *cli.EnvSettings, logger *logrus.Logger, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ID",
		Short: "show whether an artifact is downloaded, downloading or absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(settings, logger)
			if err != nil {
				return err
			}

			st, err := coord.Status(args[0])
			if err != nil {
				return err
			}

			table := uitable.New()
			table.AddRow("ARTIFACT", st.ID)
			table.AddRow("STATE", string(st.State))
			if st.State == transfer.StateDownloading {
				table.AddRow("STARTED", st.StartedAt.Format("2006-01-02 15:04:05"))
				table.AddRow("LAST PROGRESS", st.LastProgressAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
	return cmd
}
