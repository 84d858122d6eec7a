package cli

import (
	"fmt"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/drillpath/toolface"
	"github.com/spf13/cobra"
)

// ToolFaceCmd creates the tool face command with its subcommands
// forward, inverse and max. All angles are degrees.
func ToolFaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolface",
		Short: "Tool face and deflection geometry",
	}
	cmd.AddCommand(toolFaceForwardCmd())
	cmd.AddCommand(toolFaceInverseCmd())
	cmd.AddCommand(toolFaceMaxCmd())
	return cmd
}

func toolFaceForwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Direction change and final inclination for a tool face",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			a := degreeFlags(cmd, "beta", "gamma", "inc")
			de, inc2, err := toolface.Forward(a[0], a[1], a[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "direction change: %s°\n", settings.fnum(drillpath.ToDeg(de)))
			fmt.Fprintf(out, "final inclination: %s°\n", settings.fnum(drillpath.ToDeg(inc2)))
			return nil
		},
	}
	cmd.Flags().Float64("beta", 0, "tool deflection (°)")
	cmd.Flags().Float64("gamma", 0, "tool face (°)")
	cmd.Flags().Float64("inc", 0, "initial inclination (°)")
	return cmd
}

func toolFaceInverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inverse",
		Short: "Tool face for a desired inclination change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			a := degreeFlags(cmd, "beta", "inc", "inc2")
			gamma, err := toolface.Inverse(a[0], a[1], a[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tool face: ±%s°\n", settings.fnum(drillpath.ToDeg(gamma)))
			return nil
		},
	}
	cmd.Flags().Float64("beta", 0, "tool deflection (°)")
	cmd.Flags().Float64("inc", 0, "initial inclination (°)")
	cmd.Flags().Float64("inc2", 0, "final inclination (°)")
	return cmd
}

func toolFaceMaxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "max",
		Short: "Tool face of maximum direction change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			solver, err := toolface.NewSolver(settings.SolverConfig())
			if err != nil {
				return err
			}
			a := degreeFlags(cmd, "beta", "inc")
			r, err := solver.MaxChange(a[0], a[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tool face: %s°\n", settings.fnum(drillpath.ToDeg(r.Gamma)))
			fmt.Fprintf(out, "direction change: %s°\n", settings.fnum(drillpath.ToDeg(r.DeltaEps)))
			fmt.Fprintf(out, "final inclination: %s°\n", settings.fnum(drillpath.ToDeg(r.Inc2)))
			if !r.Converged {
				warnColor.Fprintf(out, "! search did not converge within %d iterations\n", r.Iterations)
			}
			return nil
		},
	}
	cmd.Flags().Float64("beta", 0, "tool deflection (°)")
	cmd.Flags().Float64("inc", 0, "initial inclination (°)")
	cmd.Flags().Int("max-iterations", 0, "iteration budget of the search")
	return cmd
}

// degreeFlags reads angle flags given in degrees and returns radians.
func degreeFlags(cmd *cobra.Command, names ...string) []float64 {
	r := make([]float64, len(names))
	for i, name := range names {
		v, _ := cmd.Flags().GetFloat64(name)
		r[i] = drillpath.Deg(v)
	}
	return r
}
