/*
Package survey reconstructs a realized well path from directional survey
stations.

A survey is an ordered list of stations, each recording measured depth (MD),
inclination from vertical and azimuth from north. Between two adjacent
stations the bore's shape is unknown; one of five interpolation methods
supplies the position increment of the segment:

	Tangential            straight line at the lower station's orientation
	BalancedTangential    two half-length straight lines, one per station
	AverageAngle          straight line at the mean orientation
	RadiusOfCurvature     arc with constant build and turn rates
	MinimumCurvature      single circular arc matching both orientations

Minimum curvature is the industry reference. Accumulate folds the
increments of a whole survey into cumulative positions (northing, easting,
TVD, reach) and computes the dogleg severity of every segment:

	stations, err := table.Stations()
	path, err := survey.Accumulate(stations, table.Start(), survey.MinimumCurvature, nil)

Passing an io.Writer instead of nil prints a human readable segment report.

All angles are radians. Survey tables read with ReadTable are given in
degrees by default and converted on ingestion.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package survey

import (
	"errors"
	"fmt"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'drillpath.survey'
func tracer() tracing.Trace {
	return tracing.Select("drillpath.survey")
}

var (
	// ErrTooFewStations indicates a survey with less than two stations.
	ErrTooFewStations = fmt.Errorf("%w: survey has too few stations", drillpath.ErrInvalidInput)
	// ErrMDStep indicates a non-positive measured depth step between stations.
	ErrMDStep = fmt.Errorf("%w: measured depth must increase strictly", drillpath.ErrInvalidInput)
	// ErrUnknownMethod indicates an unrecognized interpolation method name.
	ErrUnknownMethod = fmt.Errorf("%w: unknown interpolation method", drillpath.ErrInvalidInput)
	// ErrMissingColumn indicates a survey table lacking a required column.
	ErrMissingColumn = fmt.Errorf("%w: survey table misses column", drillpath.ErrInvalidInput)
	// ErrNotMonotone indicates a path whose TVD decreases, which prevents
	// lookups by vertical depth.
	ErrNotMonotone = errors.New("path TVD is not monotone")
)
