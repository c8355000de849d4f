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
)

func newRemoveCmd(settings *cli.EnvSettings, logger *logrus.Logger, out io.Writer) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "delete a downloaded artifact from the store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := newCoordinator(settings, logger)
			if err != nil {
				return err
			}
			id := args[0]

			removed, err := coord.Delete(id, actor)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(out, "%s removed\n", id)
			} else {
				fmt.Fprintf(out, "%s was not downloaded, nothing to remove\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "actor id recorded in the audit log")
	return cmd
}
