package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "XTREE"

	keyConfig          = "config"
	keyLogLevel        = "log-level"
	keyLogEncoder      = "log-encoder"
	keyMetrics         = "metrics"
	keyMetricsInterval = "metrics-interval"

	metricsStdout     = "stdout"
	metricsPrometheus = "prometheus"
)

type Config struct {
	CfgFile         string
	LogLevel        string
	LogEncoder      string
	Metrics         string
	MetricsInterval time.Duration
}

func (cfg *Config) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfg.CfgFile, keyConfig, "", "config file (yaml, json or toml), flags and XTREE_* env override it")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, keyLogLevel, "INFO", "logging level, one of: DEBUG, INFO, WARN, ERROR")
	cmd.PersistentFlags().StringVar(&cfg.LogEncoder, keyLogEncoder, "text", "log format, one of: text, json")
	cmd.PersistentFlags().StringVar(&cfg.Metrics, keyMetrics, "", "metrics exporter, disabled when not set. One of: stdout, prometheus")
	cmd.PersistentFlags().DurationVar(&cfg.MetricsInterval, keyMetricsInterval, 10*time.Second, "stdout metrics export interval")
}

func (cfg *Config) validate() error {
	switch strings.ToLower(cfg.Metrics) {
	case "", metricsStdout, metricsPrometheus:
	default:
		return fmt.Errorf("unknown metrics exporter %q", cfg.Metrics)
	}
	if cfg.MetricsInterval <= 0 {
		return fmt.Errorf("metrics interval must be positive, got %s", cfg.MetricsInterval)
	}
	return nil
}

// initializeConfig reads the config file and XTREE_* env variables into the
// flags that were not set on the command line.
func (cfg *Config) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	if cfg.CfgFile != "" {
		v.SetConfigFile(cfg.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", cfg.CfgFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return cfg.validate()
}

// bindFlags applies each viper value to its flag unless the flag is set.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var merr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyConfig {
			return
		}

		// --log-level binds to XTREE_LOG_LEVEL.
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				merr = multierr.Append(merr, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}

		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, flagValue(val)); err != nil {
				merr = multierr.Append(merr, fmt.Errorf("setting flag %q value: %w", f.Name, err))
				return
			}
		}
	})

	return merr
}

// flagValue renders config file lists the way slice flags parse them.
func flagValue(val any) string {
	if list, ok := val.([]any); ok {
		items := make([]string, 0, len(list))
		for _, item := range list {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ",")
	}
	return fmt.Sprintf("%v", val)
}
