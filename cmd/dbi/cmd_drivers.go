// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List the built-in drivers",
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := newInstance(zap.NewNop())
		if err != nil {
			return err
		}
		return printDrivers(cmd.OutOrStdout(), inst)
	},
}

func init() {
	rootCmd.AddCommand(driversCmd)
}

func printDrivers(out io.Writer, inst *dbi.Instance) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tFEATURES\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-------\t--------\t-----------")
	for _, info := range inst.Drivers() {
		d, ok := inst.Driver(info.Name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, info.Version, featureList(d.Capabilities()), info.Description)
	}
	return w.Flush()
}

func featureList(caps *dbi.Capabilities) string {
	var features []string
	for _, f := range []string{
		dbi.FeatureQuoteString,
		dbi.FeatureListDatabases,
		dbi.FeatureSelectDB,
		dbi.FeatureEncryption,
		dbi.FeatureNativeDatetime,
	} {
		if caps.HasFeature(f) {
			features = append(features, f)
		}
	}
	if caps.SupportsSequences {
		features = append(features, "sequences")
	}
	if len(features) == 0 {
		return "-"
	}
	return strings.Join(features, ",")
}
