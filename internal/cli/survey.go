package cli

import (
	"fmt"
	"os"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/drillpath/survey"
	"github.com/spf13/cobra"
)

// SurveyCmd creates the command evaluating survey tables.
func SurveyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey [table]",
		Short: "Reconstruct a well path from a survey table",
		Long: `Reads a survey table (YAML or JSON with headers, table and start_point)
and accumulates its stations into a well path. Interpolation methods are
tangential, balanced_tangential, average_angle, radius_of_curvature and
minimum_curvature.`,
		Args: cobra.ExactArgs(1),
		RunE: runSurvey,
	}
	cmd.Flags().Bool("segments", false, "print the per-segment report")
	cmd.Flags().Float64("at", -1, "interpolate the path at this TVD")
	cmd.Flags().String("lease", "", "check the plan view against a lease file")
	return cmd
}

func runSurvey(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	table, err := survey.ReadTable(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	path, err := table.Accumulate(settings.Method(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	out := cmd.OutOrStdout()
	headerColor.Fprintf(out, "Survey %s: %d stations, %s\n", args[0], path.N(), settings.Method())
	if segments, _ := cmd.Flags().GetBool("segments"); segments {
		if err := path.WriteReport(out); err != nil {
			return err
		}
	}
	final := path.Final()
	fmt.Fprintf(out, "final position: N %s  E %s  TVD %s  reach %s\n", settings.fnum(final.North),
		settings.fnum(final.East), settings.fnum(final.TVD), settings.fnum(final.Reach))
	dls, at := path.MaxDLS()
	fmt.Fprintf(out, "max DLS: %s°/%g in segment %d\n", settings.fnum(dls), drillpath.CourseLength, at+1)
	if limit := settings.Survey.DLSLimit; limit > 0 {
		for i, d := range path.DLS() {
			if d > limit {
				warnColor.Fprintf(out, "! segment %d: DLS %s exceeds limit %s\n", i+1, settings.fnum(d),
					settings.fnum(limit))
			}
		}
	}
	if tvd, _ := cmd.Flags().GetFloat64("at"); tvd >= 0 {
		ip, ok, err := path.AtTVD(tvd)
		if err != nil {
			return err
		}
		if !ok {
			warnColor.Fprintf(out, "! TVD %s is outside the path\n", settings.fnum(tvd))
		} else {
			fmt.Fprintf(out, "at TVD %s: MD %s  inc %s°  azi %s°  N %s  E %s\n", settings.fnum(tvd),
				settings.fnum(ip.MD), settings.fnum(drillpath.ToDeg(ip.Inc)),
				settings.fnum(drillpath.ToDeg(ip.Azi)), settings.fnum(ip.North), settings.fnum(ip.East))
		}
	}
	lease, err := readLease(cmd)
	if err != nil || lease == nil {
		return err
	}
	pv := path.PlanView()
	return reportLease(out, lease, lease.Check(pv), lease.Hits(pv[len(pv)-1]))
}
