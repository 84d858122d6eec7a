package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/drillpath"
	"github.com/npillmayer/drillpath/plan"
	"github.com/npillmayer/drillpath/survey"
	"github.com/npillmayer/drillpath/toolface"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings holds the CLI configuration, read from drillpath.yaml,
// DRILLPATH_* environment variables and command line flags, in
// increasing order of precedence.
type Settings struct {
	Survey   SurveySettings   `mapstructure:"survey"`
	Report   ReportSettings   `mapstructure:"report"`
	Plan     PlanSettings     `mapstructure:"plan"`
	ToolFace ToolFaceSettings `mapstructure:"toolface"`
}

// SurveySettings configures survey evaluation.
type SurveySettings struct {
	Method   string  `mapstructure:"method"`    // interpolation method name
	DLSLimit float64 `mapstructure:"dls_limit"` // warn above this DLS, 0 disables
}

// ReportSettings configures number formatting of reports.
type ReportSettings struct {
	Precision int `mapstructure:"precision"`
}

// PlanSettings configures the sampling of plans.
type PlanSettings struct {
	Samples           int `mapstructure:"samples"`
	HorizontalSamples int `mapstructure:"horizontal_samples"`
}

// ToolFaceSettings configures the maximum change search.
type ToolFaceSettings struct {
	MaxIterations int     `mapstructure:"max_iterations"`
	Tolerance     float64 `mapstructure:"tolerance"`
	Step          float64 `mapstructure:"step"`
}

// flagKeys maps flags to configuration keys.
var flagKeys = map[string]string{
	"method":         "survey.method",
	"dls-limit":      "survey.dls_limit",
	"precision":      "report.precision",
	"samples":        "plan.samples",
	"max-iterations": "toolface.max_iterations",
}

// traceKeys are the tracing keys of the library packages.
var traceKeys = []string{
	"drillpath",
	"drillpath.survey",
	"drillpath.plan",
	"drillpath.toolface",
	"drillpath.polygon",
}

func setDefaults(v *viper.Viper) {
	tf := toolface.DefaultConfig()
	so := plan.DefaultSampleOptions()
	v.SetDefault("survey.method", survey.MinimumCurvature.String())
	v.SetDefault("survey.dls_limit", 0.0)
	v.SetDefault("report.precision", 3)
	v.SetDefault("plan.samples", so.Count)
	v.SetDefault("plan.horizontal_samples", so.HorizontalCount)
	v.SetDefault("toolface.max_iterations", tf.MaxIterations)
	v.SetDefault("toolface.tolerance", tf.FTolerance)
	v.SetDefault("toolface.step", tf.Step)
}

// addGlobalFlags registers the flags every command understands.
func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default is ./drillpath.yaml)")
	pf.String("trace", "", "trace level of the library packages: error, info or debug")
	pf.String("method", survey.MinimumCurvature.String(), "survey interpolation method")
	pf.Float64("dls-limit", 0, "warn about dogleg severities above this limit (°/30)")
	pf.Int("precision", 3, "decimals in reports")
	pf.Int("samples", plan.DefaultSampleOptions().Count, "number of plan samples")
}

// loadSettings reads the configuration for a command. Flags of cmd that
// have been set on the command line override file and environment values.
func loadSettings(cmd *cobra.Command) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DRILLPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("drillpath")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/drillpath")
	}
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("%w: reading config: %v", drillpath.ErrConfiguration, err)
		}
	}
	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %v", drillpath.ErrConfiguration, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	level, _ := cmd.Flags().GetString("trace")
	if err := setTraceLevel(level); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings for consistency.
func (s *Settings) Validate() error {
	if _, err := survey.ParseMethod(s.Survey.Method); err != nil {
		return fmt.Errorf("%w: survey.method: %w", drillpath.ErrConfiguration, err)
	}
	if s.Survey.DLSLimit < 0 {
		return fmt.Errorf("%w: survey.dls_limit must not be negative", drillpath.ErrConfiguration)
	}
	if s.Report.Precision < 0 || s.Report.Precision > 12 {
		return fmt.Errorf("%w: report.precision must be in [0,12], is %d", drillpath.ErrConfiguration,
			s.Report.Precision)
	}
	if s.Plan.Samples < 4 || s.Plan.HorizontalSamples < 1 {
		return fmt.Errorf("%w: plan.samples (%d) must be ≥ 4 and plan.horizontal_samples (%d) ≥ 1",
			drillpath.ErrConfiguration, s.Plan.Samples, s.Plan.HorizontalSamples)
	}
	if err := s.SolverConfig().Validate(); err != nil {
		return fmt.Errorf("%w: toolface: %w", drillpath.ErrConfiguration, err)
	}
	return nil
}

// Method returns the configured interpolation method.
func (s *Settings) Method() survey.Method {
	m, _ := survey.ParseMethod(s.Survey.Method)
	return m
}

// SampleOptions returns the configured sampling grid layout. At most half
// of the samples are spent on a horizontal section.
func (s *Settings) SampleOptions() plan.SampleOptions {
	return plan.SampleOptions{
		Count:           s.Plan.Samples,
		HorizontalCount: min(s.Plan.HorizontalSamples, s.Plan.Samples/2),
	}
}

// SolverConfig returns the search budget of the tool face solver.
func (s *Settings) SolverConfig() toolface.Config {
	cfg := toolface.DefaultConfig()
	cfg.MaxIterations = s.ToolFace.MaxIterations
	cfg.FTolerance = s.ToolFace.Tolerance
	cfg.Step = s.ToolFace.Step
	return cfg
}

func setTraceLevel(level string) error {
	var tl tracing.TraceLevel
	switch strings.ToLower(level) {
	case "":
		return nil
	case "error":
		tl = tracing.LevelError
	case "info":
		tl = tracing.LevelInfo
	case "debug":
		tl = tracing.LevelDebug
	default:
		return fmt.Errorf("%w: unknown trace level %q", drillpath.ErrConfiguration, level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tl)
	}
	return nil
}
