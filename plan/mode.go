package plan

import (
	"fmt"

	"github.com/npillmayer/drillpath"
)

// Mode selects which optional constraint drives a plan: TypeI and
// HorizontalDualGain plans need exactly one of a target reach or a maximum
// build angle. Mode is a closed union of ReachMode, MaxBuildMode and
// PinnedMaxBuildMode.
type Mode interface {
	isMode()
	String() string
}

// ReachMode solves the build angle from a given target reach.
type ReachMode struct {
	Reach float64
}

// MaxBuildMode sets the build angle directly; the reach is derived.
type MaxBuildMode struct {
	Angle float64 // radians
}

// PinnedMaxBuildMode is MaxBuildMode for HorizontalDualGain plans, with the
// second build additionally pinned to start at depth KOP2. The radius of the
// second build follows from KOP2; no second build rate may be given.
type PinnedMaxBuildMode struct {
	Angle float64 // radians
	KOP2  float64 // TVD of the start of the second build
}

func (ReachMode) isMode()          {}
func (MaxBuildMode) isMode()       {}
func (PinnedMaxBuildMode) isMode() {}

func (m ReachMode) String() string {
	return fmt.Sprintf("reach=%.3f", m.Reach)
}

func (m MaxBuildMode) String() string {
	return fmt.Sprintf("max-build=%.3f°", drillpath.ToDeg(m.Angle))
}

func (m PinnedMaxBuildMode) String() string {
	return fmt.Sprintf("max-build=%.3f°, KOP2=%.3f", drillpath.ToDeg(m.Angle), m.KOP2)
}

// SelectMode creates a mode from optional constraints, as they arrive from
// a command line or a configuration file. Exactly one of reach and maxBuild
// must be non-nil.
func SelectMode(reach, maxBuild *float64) (Mode, error) {
	switch {
	case reach == nil && maxBuild == nil:
		return nil, ErrNoMode
	case reach != nil && maxBuild != nil:
		return nil, ErrAmbiguousMode
	case reach != nil:
		return ReachMode{Reach: *reach}, nil
	}
	return MaxBuildMode{Angle: *maxBuild}, nil
}

func unsupportedMode(kind Kind, m Mode) error {
	return fmt.Errorf("%w: %s plans do not support mode %v", drillpath.ErrConfiguration, kind, m)
}
