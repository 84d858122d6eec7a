/*
Package cli implements the drillpath command line: evaluation of survey
tables, trajectory planning and tool face computations.

Settings are read from a file drillpath.yaml (current directory or
$HOME/.config/drillpath), from environment variables prefixed DRILLPATH_
and from command line flags:

	survey:
	  method: minimum_curvature
	  dls_limit: 3.5
	report:
	  precision: 2
	plan:
	  samples: 200
	  horizontal_samples: 100
	toolface:
	  max_iterations: 500
	  tolerance: 1.0e-14

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/drillpath/polygon"
	"github.com/spf13/cobra"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	failColor   = color.New(color.FgRed, color.Bold)
)

// NewRootCmd creates the drillpath command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drillpath",
		Short: "Directional drilling well paths",
		Long: `drillpath reconstructs well paths from directional surveys, plans
idealized trajectories and computes tool face geometry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(rootCmd)
	rootCmd.AddCommand(SurveyCmd())
	rootCmd.AddCommand(PlanCmd())
	rootCmd.AddCommand(ToolFaceCmd())
	return rootCmd
}

// fnum formats a number with the configured precision.
func (s *Settings) fnum(x float64) string {
	return fmt.Sprintf("%.*f", s.Report.Precision, x)
}

// readLease loads the lease file named by flag "lease", if given.
func readLease(cmd *cobra.Command) (*polygon.Lease, error) {
	name, _ := cmd.Flags().GetString("lease")
	if name == "" {
		return nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return polygon.ReadLease(f)
}

// reportLease prints the outcome of a lease check. The check error is
// returned, so that violations fail the command.
func reportLease(w io.Writer, lease *polygon.Lease, err error, final bool) error {
	if err != nil {
		failColor.Fprintf(w, "✗ lease %q violated\n", lease.Name)
		fmt.Fprintln(w, err)
		return err
	}
	okColor.Fprintf(w, "✓ well stays inside lease %q\n", lease.Name)
	if lease.Target != nil {
		if final {
			okColor.Fprintln(w, "✓ well ends in target area")
		} else {
			warnColor.Fprintln(w, "! well misses target area")
		}
	}
	return nil
}
