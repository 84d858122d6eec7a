package plan

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/npillmayer/drillpath"
)

// Kind identifies a well type.
type Kind int

// Well types
const (
	KindTypeI Kind = iota
	KindTypeII
	KindTypeIII
	KindHorizontalSingleGain
	KindHorizontalDualGain
)

var kindNames = [...]string{
	"type-I",
	"type-II",
	"type-III",
	"horizontal-single-gain",
	"horizontal-dual-gain",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind finds a well type by name, ignoring case. The short forms
// "1", "2", "3", "single" and "dual" are accepted as well.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if strings.ToLower(n) == key {
			return Kind(i), nil
		}
	}
	switch key {
	case "1", "i", "j":
		return KindTypeI, nil
	case "2", "ii", "s":
		return KindTypeII, nil
	case "3", "iii":
		return KindTypeIII, nil
	case "single", "horizontal":
		return KindHorizontalSingleGain, nil
	case "dual":
		return KindHorizontalDualGain, nil
	}
	return 0, fmt.Errorf("%w: unknown well type %q", drillpath.ErrConfiguration, name)
}

// Planner is implemented by the constraint records of all well types.
type Planner interface {
	Kind() Kind
	Solve() (*Plan, error)
}

// MustSolve solves a plan and panics on error. It is intended for
// constraints known to be consistent, e.g. in tests and examples.
func MustSolve(p Planner) *Plan {
	plan, err := p.Solve()
	if err != nil {
		panic(err)
	}
	return plan
}

// --- Waypoints and sections ------------------------------------------------

// Waypoint is a milestone of a plan: the end of a section.
// Length is the length of the section ending at the waypoint, thus
// MD is the sum of the lengths of all waypoints up to and including this one.
type Waypoint struct {
	Name   string
	MD     float64
	TVD    float64
	Reach  float64
	Length float64
}

func (wp Waypoint) String() string {
	return fmt.Sprintf("%s[MD=%.3f TVD=%.3f REACH=%.3f LENGTH=%.3f]", wp.Name, wp.MD, wp.TVD,
		wp.Reach, wp.Length)
}

// SectionKind is the shape of a section.
type SectionKind int

// Section shapes
const (
	Vertical SectionKind = iota
	Build
	Tangent
	Drop
	Horizontal
)

func (k SectionKind) String() string {
	switch k {
	case Vertical:
		return "vertical"
	case Build:
		return "build"
	case Tangent:
		return "tangent"
	case Drop:
		return "drop"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

// Section is a part of a plan with a single shape. Arcs (Build, Drop) have
// a radius and change inclination from IncStart to IncEnd; straight
// sections keep their inclination.
type Section struct {
	Kind     SectionKind
	Start    Waypoint
	End      Waypoint
	Radius   float64
	IncStart float64
	IncEnd   float64
}

// Length is the section's arc or line length.
func (s Section) Length() float64 {
	return s.End.Length
}

// Branch tags which of the two closed-form solutions a TypeII plan used.
type Branch int

// Branches of the TypeII build angle
const (
	NoBranch Branch = iota
	// R_build + R_drop > reach: θ = Y − Z
	RadiiExceedReach
	// R_build + R_drop ≤ reach: θ = π − Y − Z
	ReachExceedsRadii
)

func (b Branch) String() string {
	switch b {
	case RadiiExceedReach:
		return "R1 + R2 > reach"
	case ReachExceedsRadii:
		return "R1 + R2 < reach"
	}
	return "-"
}

// Geometry collects the auxiliary quantities of a solved plan. Fields not
// used by a well type are zero.
type Geometry struct {
	Radius  float64 // build radius
	Radius2 float64 // drop radius (TypeII) or second build radius (dual gain)
	Theta   float64 // build angle

	Omega          float64 // angle at the build center between vertical offset line and target
	Tau            float64 // angle between center-target line and vertical
	RadiusToTarget float64 // distance build center → target

	Branch Branch  // TypeII solution branch
	Offset float64 // |R_build + R_drop − reach|
	Y, Z   float64 // TypeII auxiliary angles

	Phi            float64 // direction of the line between both build centers
	Beta           float64 // arcsin of radius difference over center distance
	CenterDistance float64 // distance between both build centers

	DeltaV1, DeltaD1 float64 // vertical/horizontal extent of first arc
	DeltaV2, DeltaD2 float64 // vertical/horizontal extent of second arc
}

// --- Plan ------------------------------------------------------------------

// Plan is a solved trajectory.
type Plan struct {
	Kind      Kind
	TVD       float64 // target TVD
	KOP       float64 // kick-off point
	Reach     float64 // target reach, given or derived
	Geometry  Geometry
	Waypoints []Waypoint // in drilling order
	Sections  []Section  // in drilling order
}

// Final returns the last waypoint, which is the target.
func (p *Plan) Final() Waypoint {
	return p.Waypoints[len(p.Waypoints)-1]
}

// Waypoint finds a waypoint by name.
func (p *Plan) Waypoint(name string) (Waypoint, bool) {
	for _, wp := range p.Waypoints {
		if wp.Name == name {
			return wp, true
		}
	}
	return Waypoint{}, false
}

// Horizontal is true for plans ending with a horizontal section.
func (p *Plan) Horizontal() bool {
	return len(p.Sections) > 0 && p.Sections[len(p.Sections)-1].Kind == Horizontal
}

// PlanView projects the waypoints of a plan onto the horizontal plane,
// for a well head at position head (easting, northing) and a well
// direction azimuth. The first point is the well head.
func (p *Plan) PlanView(head drillpath.Pair, azimuth float64) []drillpath.Pair {
	// north is the y-axis, azimuth turns clockwise
	dir := drillpath.P(0, 1).Rotated(-azimuth)
	pv := make([]drillpath.Pair, 0, len(p.Waypoints)+1)
	pv = append(pv, head)
	for _, wp := range p.Waypoints {
		pv = append(pv, head+dir.Scaled(wp.Reach))
	}
	return pv
}

// WriteTable writes the geometry and milestone table of a plan.
func (p *Plan) WriteTable(w io.Writer) error {
	g := p.Geometry
	fmt.Fprintf(w, "%s plan, TVD %.3f, KOP %.3f, reach %.3f\n", p.Kind, p.TVD, p.KOP, p.Reach)
	aux := []struct {
		name  string
		value float64
		angle bool
	}{
		{"build radius", g.Radius, false},
		{"second radius", g.Radius2, false},
		{"build angle", g.Theta, true},
		{"radius to target", g.RadiusToTarget, false},
		{"omega", g.Omega, true},
		{"tau", g.Tau, true},
		{"radius offset", g.Offset, false},
		{"Y", g.Y, true},
		{"Z", g.Z, true},
		{"phi", g.Phi, true},
		{"beta", g.Beta, true},
		{"center distance", g.CenterDistance, false},
		{"delta V1", g.DeltaV1, false},
		{"delta D1", g.DeltaD1, false},
		{"delta V2", g.DeltaV2, false},
		{"delta D2", g.DeltaD2, false},
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range aux {
		if a.value == 0 && a.name != "build angle" {
			continue
		}
		if a.angle {
			fmt.Fprintf(tw, "  %s\t%.3f°\n", a.name, drillpath.ToDeg(a.value))
		} else {
			fmt.Fprintf(tw, "  %s\t%.3f\n", a.name, a.value)
		}
	}
	if g.Branch != NoBranch {
		fmt.Fprintf(tw, "  branch\t%s\n", g.Branch)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Depth\tTVD\tREACH\tMD\tLength\t\n")
	for _, wp := range p.Waypoints {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t\n", wp.Name, wp.TVD, wp.Reach, wp.MD, wp.Length)
	}
	return tw.Flush()
}

// --- Building plans --------------------------------------------------------

// Relative tolerance for closure checks of solved geometry.
const tolerance = 1e-6

// builder appends sections to a plan, deriving the waypoints as it goes.
// All plans start vertically at the surface.
type builder struct {
	plan *Plan
	at   Waypoint
	inc  float64
}

func newBuilder(kind Kind, tvd, kop float64) *builder {
	return &builder{plan: &Plan{Kind: kind, TVD: tvd, KOP: kop}}
}

func (b *builder) add(kind SectionKind, name string, length, dTVD, dReach, radius, inc float64) *builder {
	start := b.at
	end := Waypoint{
		Name:   name,
		MD:     start.MD + length,
		TVD:    start.TVD + dTVD,
		Reach:  start.Reach + dReach,
		Length: length,
	}
	b.plan.Sections = append(b.plan.Sections, Section{
		Kind:     kind,
		Start:    start,
		End:      end,
		Radius:   radius,
		IncStart: b.inc,
		IncEnd:   inc,
	})
	b.plan.Waypoints = append(b.plan.Waypoints, end)
	b.at, b.inc = end, inc
	return b
}

// vertical appends a vertical section. The bore must be vertical.
func (b *builder) vertical(name string, length float64) *builder {
	return b.add(Vertical, name, length, length, 0, 0, b.inc)
}

// arc appends a circular arc of radius r, ending at inclination inc.
// It builds if inc is greater than the current inclination, else drops.
func (b *builder) arc(name string, r, inc float64) *builder {
	a0 := b.inc
	kind, sign := Build, 1.0
	if inc < a0 {
		kind, sign = Drop, -1.0
	}
	length := r * math.Abs(inc-a0)
	dTVD := sign * r * (math.Sin(inc) - math.Sin(a0))
	dReach := sign * r * (math.Cos(a0) - math.Cos(inc))
	return b.add(kind, name, length, dTVD, dReach, r, inc)
}

// tangent appends a straight section at the current inclination.
func (b *builder) tangent(name string, length float64) *builder {
	sin, cos := math.Sincos(b.inc)
	return b.add(Tangent, name, length, length*cos, length*sin, 0, b.inc)
}

// horizontal appends a horizontal section. The bore must be horizontal.
func (b *builder) horizontal(name string, length float64) *builder {
	return b.add(Horizontal, name, length, 0, length, 0, b.inc)
}

// marker appends a zero-length waypoint at the current position.
func (b *builder) marker(name string) *builder {
	wp := b.at
	wp.Name, wp.Length = name, 0
	b.plan.Waypoints = append(b.plan.Waypoints, wp)
	return b
}

// finish validates the waypoints and returns the plan.
func (b *builder) finish(reach float64, g Geometry) (*Plan, error) {
	b.plan.Reach = reach
	b.plan.Geometry = g
	if err := validateWaypoints(b.plan.Waypoints); err != nil {
		tracer().Errorf("%s plan rejected: %v", b.plan.Kind, err)
		return nil, err
	}
	final := b.plan.Final()
	tracer().Infof("%s plan: R=%.3f, θ=%.3f°, final %v", b.plan.Kind, g.Radius,
		drillpath.ToDeg(g.Theta), final)
	return b.plan, nil
}

// validateWaypoints checks that a waypoint sequence does not fold back:
// MD, TVD and REACH are non-decreasing, lengths are non-negative and MD is
// the running sum of the lengths.
func validateWaypoints(wps []Waypoint) error {
	if len(wps) == 0 {
		return fmt.Errorf("%w: plan without waypoints", drillpath.ErrDomain)
	}
	scale := 1.0
	for _, wp := range wps {
		scale = math.Max(scale, math.Max(math.Abs(wp.MD), math.Abs(wp.Reach)))
	}
	tol := tolerance * scale
	var prev Waypoint
	for i, wp := range wps {
		if !drillpath.Finite(wp.MD) || !drillpath.Finite(wp.TVD) || !drillpath.Finite(wp.Reach) {
			return fmt.Errorf("%w: waypoint %v is not finite", drillpath.ErrDomain, wp)
		}
		if wp.Length < -tol {
			return fmt.Errorf("%w: waypoint %v has negative length", drillpath.ErrDomain, wp)
		}
		if math.Abs(prev.MD+wp.Length-wp.MD) > tol {
			return fmt.Errorf("%w: MD of waypoint %v is not a running sum", drillpath.ErrDomain, wp)
		}
		if i > 0 && (wp.MD < prev.MD-tol || wp.TVD < prev.TVD-tol || wp.Reach < prev.Reach-tol) {
			return fmt.Errorf("%w: waypoint %v folds back behind %v", drillpath.ErrDomain, wp, prev)
		}
		prev = wp
	}
	return nil
}

// nonNegative snaps values which are negative by rounding noise only to 0.
// Larger negative values are a domain error.
func nonNegative(name string, v, scale float64) (float64, error) {
	if v >= 0 {
		return v, nil
	}
	if v > -tolerance*math.Max(1, scale) {
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %s would be negative (%.3f)", ErrUnreachable, name, v)
}

// closes checks that a computed position matches its target.
func closes(what string, got, want, scale float64) error {
	if math.Abs(got-want) > tolerance*math.Max(1, scale) {
		return fmt.Errorf("%w: %s ends at %.6f instead of %.6f", ErrUnreachable, what, got, want)
	}
	return nil
}

// --- Input checks ----------------------------------------------------------

func checkDepths(tvd, kop float64) error {
	if !drillpath.Finite(tvd) || !drillpath.Finite(kop) {
		return fmt.Errorf("%w: TVD and KOP must be finite", drillpath.ErrInvalidInput)
	}
	if kop < 0 || !(tvd > kop) {
		return fmt.Errorf("%w: need 0 ≤ KOP < TVD, have KOP=%g, TVD=%g", drillpath.ErrInvalidInput,
			kop, tvd)
	}
	return nil
}

func checkLength(name string, v float64) error {
	if !drillpath.Finite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative length, is %g", drillpath.ErrInvalidInput,
			name, v)
	}
	return nil
}

func checkBuildAngle(theta float64) error {
	if !drillpath.Finite(theta) || !(theta > 0) || !(theta < math.Pi/2) {
		return fmt.Errorf("%w: build angle must be in (0°, 90°), is %g°", drillpath.ErrInvalidInput,
			drillpath.ToDeg(theta))
	}
	return nil
}
