/*
Package plan designs idealized well trajectories in the vertical plane.

A plan is a fixed sequence of sections (vertical, build, tangent, drop,
horizontal) whose unknown angles and lengths are solved from design
constraints: target TVD, kick-off point (KOP), curvature rates and either a
target reach or a maximum build angle. Five well types are supported:

	TypeI                  KOP → build → slant                       (J shape)
	TypeII                 KOP → build → slant → drop → vertical     (S shape)
	TypeIII                KOP → build to target                     (deep kick-off)
	HorizontalSingleGain   KOP → build to 90° → horizontal
	HorizontalDualGain     KOP → build → slant → build to 90° → horizontal

Solving a constraint record yields a Plan, which lists the milestones of the
trajectory as Waypoints (MD, TVD, REACH, LENGTH). The MD of every waypoint is
the running sum of the section lengths. Plan.Sample inverts the section
geometry on a TVD grid to produce a dense (TVD, MD, displacement) path:

	p, err := plan.TypeI{TVD: 2500, KOP: 500, BUR: 3, Mode: plan.ReachMode{Reach: 800}}.Solve()
	samples, err := p.Sample(nil)

Lengths are in a single unit of choice (m or ft), angles are radians,
curvature rates are drillpath.BuildRate (degrees per 30 length units).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package plan

import (
	"fmt"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'drillpath.plan'
func tracer() tracing.Trace {
	return tracing.Select("drillpath.plan")
}

var (
	// ErrNoMode is returned for plans which need exactly one of target
	// reach or maximum build angle, but got neither.
	ErrNoMode = fmt.Errorf("%w: neither target reach nor maximum build angle given",
		drillpath.ErrConfiguration)
	// ErrAmbiguousMode is returned for plans which need exactly one of
	// target reach or maximum build angle, but got both.
	ErrAmbiguousMode = fmt.Errorf("%w: target reach and maximum build angle are mutually exclusive",
		drillpath.ErrConfiguration)
	// ErrUnreachable is returned if a target cannot be reached with the
	// given curvature rates.
	ErrUnreachable = fmt.Errorf("%w: target unreachable", drillpath.ErrDomain)
)
