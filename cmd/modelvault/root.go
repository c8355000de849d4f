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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/modelvault/modelvault/pkg/audit"
	"github.com/modelvault/modelvault/pkg/catalog"
	"github.com/modelvault/modelvault/pkg/cli"
	"github.com/modelvault/modelvault/pkg/transfer"
)

var rootHelp = `modelvault downloads, verifies and manages large model artifacts.

Artifacts are described by a catalog file and stored in a single store
directory. A file appears under its final name only once it has been
completely downloaded and its checksum verified.

Environment variables:

| Name               | Description                                    |
|--------------------|------------------------------------------------|
| MODELVAULT_CATALOG | path to the artifact catalog file              |
| MODELVAULT_STORE   | directory artifacts are downloaded into        |
| MODELVAULT_DEBUG   | set to 1 to enable verbose output              |
`

func newRootCmd(logger *logrus.Logger, out io.Writer) *cobra.Command {
	settings := cli.New()

	cmd := &cobra.Command{
		Use:          "modelvault",
		Short:        "download, verify and manage large model artifacts",
		Long:         rootHelp,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if settings.Debug {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	settings.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newListCmd(settings, out),
		newPullCmd(settings, logger, out),
		newRemoveCmd(settings, logger, out),
		newVerifyCmd(settings, logger, out),
		newStatusCmd(settings, logger, out),
	)
	return cmd
}

// newCoordinator loads the catalog and wires the process coordinator with
// an audit trail on the CLI logger.
func newCoordinator(settings *cli.EnvSettings, logger *logrus.Logger) (*transfer.Coordinator, error) {
	cat, err := catalog.Load(settings.CatalogFile, settings.StoreDir)
	if err != nil {
		return nil, err
	}
	return transfer.New(cat, transfer.WithAuditSink(audit.NewLogSink(logger))), nil
}
