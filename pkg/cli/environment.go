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

// Package cli describes the operating environment for modelvault.
package cli

import (
	"os"

	"github.com/spf13/pflag"
)

// EnvSettings holds the process-wide configuration: where the catalog
// file lives and where artifacts are stored.
type EnvSettings struct {
	// CatalogFile is the path to the artifact catalog YAML file.
	CatalogFile string
	// StoreDir is the directory artifacts are downloaded into.
	StoreDir string
	// Debug enables verbose logging.
	Debug bool
}

// New builds settings from the environment.
func New() *EnvSettings {
	return &EnvSettings{
		CatalogFile: envOr("MODELVAULT_CATALOG", "catalog.yaml"),
		StoreDir:    envOr("MODELVAULT_STORE", "artifacts"),
		Debug:       os.Getenv("MODELVAULT_DEBUG") == "1",
	}
}

// AddFlags binds the settings to the given flag set.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.CatalogFile, "catalog", s.CatalogFile, "path to the artifact catalog file")
	fs.StringVar(&s.StoreDir, "store", s.StoreDir, "directory artifacts are downloaded into")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}
