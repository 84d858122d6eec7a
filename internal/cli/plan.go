package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/drillpath/plan"
	"github.com/spf13/cobra"
)

// PlanCmd creates the trajectory planning command.
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [kind]",
		Short: "Plan an idealized well trajectory",
		Long: `Solves a well plan of the given kind and prints its milestones.
Kinds are type-I (J-shaped), type-II (S-shaped), type-III (deep kick-off),
horizontal-single-gain and horizontal-dual-gain.

Build rates are degrees per 30 length units, angles are degrees.`,
		Example: `  drillpath plan type-I --tvd 2500 --kop 500 --bur 3 --reach 800
  drillpath plan type-II --tvd 3000 --kop 500 --bur 3 --dor 2 --eod 2500 --reach 1000
  drillpath plan dual --tvd 3000 --kop 500 --bur 3 --bur2 5 --hor 800 --max-build 40`,
		Args: cobra.ExactArgs(1),
		RunE: runPlan,
	}
	f := cmd.Flags()
	f.Float64("tvd", 0, "target true vertical depth")
	f.Float64("kop", 0, "kick-off point (derived for type-III if omitted)")
	f.Float64("bur", 0, "build-up rate (°/30)")
	f.Float64("bur2", 0, "second build-up rate of dual gain plans (°/30)")
	f.Float64("dor", 0, "drop-off rate of type-II plans (°/30)")
	f.Float64("eod", 0, "end of drop of type-II plans")
	f.Float64("hor", 0, "horizontal length of dual gain plans")
	f.Float64("reach", 0, "target reach")
	f.Float64("max-build", 0, "maximum build angle (°)")
	f.Float64("kop2", 0, "start of the second build of dual gain plans")
	f.Bool("sample", false, "print the sampled path")
	f.String("lease", "", "check the plan view against a lease file")
	f.Float64("azimuth", 0, "well azimuth for the lease check (°)")
	f.Float64("east", 0, "well head easting for the lease check")
	f.Float64("north", 0, "well head northing for the lease check")
	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	kind, err := plan.ParseKind(args[0])
	if err != nil {
		return err
	}
	planner, err := plannerFromFlags(cmd, kind)
	if err != nil {
		return err
	}
	p, err := planner.Solve()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	headerColor.Fprintf(out, "Plan %s\n", kind)
	if err := p.WriteTable(out); err != nil {
		return err
	}
	if sample, _ := cmd.Flags().GetBool("sample"); sample {
		grid, err := p.Grid(settings.SampleOptions())
		if err != nil {
			return err
		}
		samples, err := p.Sample(grid)
		if err != nil {
			return err
		}
		headerColor.Fprintf(out, "Samples\n")
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "TVD\tMD\tDisplacement\t\n")
		for _, s := range samples {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", settings.fnum(s.TVD), settings.fnum(s.MD),
				settings.fnum(s.Displacement))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	lease, err := readLease(cmd)
	if err != nil || lease == nil {
		return err
	}
	azimuth, _ := cmd.Flags().GetFloat64("azimuth")
	east, _ := cmd.Flags().GetFloat64("east")
	north, _ := cmd.Flags().GetFloat64("north")
	pv := p.PlanView(drillpath.P(east, north), drillpath.Deg(azimuth))
	return reportLease(out, lease, lease.Check(pv), lease.Hits(pv[len(pv)-1]))
}

// plannerFromFlags assembles the constraints of a plan of the given kind.
// Flags not set on the command line are passed as absent, so that
// exclusive constraints are checked by the planners.
func plannerFromFlags(cmd *cobra.Command, kind plan.Kind) (plan.Planner, error) {
	f := cmd.Flags()
	value := func(name string) float64 {
		v, _ := f.GetFloat64(name)
		return v
	}
	optional := func(name string, conv func(float64) float64) *float64 {
		if !f.Changed(name) {
			return nil
		}
		v := conv(value(name))
		return &v
	}
	same := func(x float64) float64 { return x }
	require := func(names ...string) error {
		for _, name := range names {
			if !f.Changed(name) {
				return fmt.Errorf("%w: %s plans require --%s", drillpath.ErrConfiguration, kind, name)
			}
		}
		return nil
	}
	tvd, kop := value("tvd"), value("kop")
	switch kind {
	case plan.KindTypeI:
		if err := require("tvd", "kop", "bur"); err != nil {
			return nil, err
		}
		mode, err := plan.SelectMode(optional("reach", same), optional("max-build", drillpath.Deg))
		if err != nil {
			return nil, err
		}
		return plan.TypeI{TVD: tvd, KOP: kop, BUR: drillpath.BuildRate(value("bur")), Mode: mode}, nil
	case plan.KindTypeII:
		if err := require("tvd", "kop", "bur", "dor", "eod", "reach"); err != nil {
			return nil, err
		}
		return plan.TypeII{TVD: tvd, KOP: kop, BUR: drillpath.BuildRate(value("bur")),
			DOR: drillpath.BuildRate(value("dor")), Reach: value("reach"), EOD: value("eod")}, nil
	case plan.KindTypeIII:
		if err := require("tvd", "bur", "reach"); err != nil {
			return nil, err
		}
		bur := drillpath.BuildRate(value("bur"))
		if !f.Changed("kop") {
			var err error
			if kop, err = plan.KOPFromBuildRate(value("reach"), tvd, bur); err != nil {
				return nil, err
			}
		}
		return plan.TypeIII{TVD: tvd, KOP: kop, BUR: bur, Reach: value("reach")}, nil
	case plan.KindHorizontalSingleGain:
		if err := require("tvd", "kop", "reach"); err != nil {
			return nil, err
		}
		return plan.HorizontalSingleGain{TVD: tvd, KOP: kop, Reach: value("reach")}, nil
	case plan.KindHorizontalDualGain:
		if err := require("tvd", "kop", "bur", "hor"); err != nil {
			return nil, err
		}
		var mode plan.Mode
		if f.Changed("kop2") {
			if err := require("max-build"); err != nil {
				return nil, err
			}
			if f.Changed("reach") {
				return nil, plan.ErrAmbiguousMode
			}
			mode = plan.PinnedMaxBuildMode{Angle: drillpath.Deg(value("max-build")), KOP2: value("kop2")}
		} else {
			var err error
			if mode, err = plan.SelectMode(optional("reach", same), optional("max-build", drillpath.Deg)); err != nil {
				return nil, err
			}
		}
		return plan.HorizontalDualGain{TVD: tvd, KOP: kop, BUR1: drillpath.BuildRate(value("bur")),
			BUR2: drillpath.BuildRate(value("bur2")), HorizontalLength: value("hor"), Mode: mode}, nil
	}
	return nil, fmt.Errorf("%w: unsupported plan kind %s", drillpath.ErrConfiguration, kind)
}
