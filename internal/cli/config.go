// Config loading for the guards CLI.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/guards/internal/logging"
	"github.com/mesh-intelligence/guards/internal/paths"
	"github.com/mesh-intelligence/guards/pkg/record"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "GUARDS"

	// Config keys; each can also be set by flag or GUARDS_<KEY>.
	cfgKeyWritePolicy = "write_policy"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"
	cfgKeyFormat      = "format"

	defaultWritePolicy = "strict"
	defaultLogLevel    = "warn"
	defaultLogFormat   = "text"
	defaultFormat      = record.FormatJSON
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	WritePolicy string `yaml:"write_policy"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	Format      string `yaml:"format"`
}

// settings is the resolved configuration for one command invocation.
type settings struct {
	configDir string
	policy    record.WritePolicy
	format    string
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

// recordOptions returns the record options implied by the settings.
func (s settings) recordOptions() []record.Option {
	return []record.Option{
		record.WithWritePolicy(s.policy),
		record.WithLogger(s.logger),
	}
}

// loadConfig reads config.yaml from configDir using Viper. Flags bound from
// cmd take precedence over GUARDS_* environment variables, which take
// precedence over the file. --silent overrides write_policy from every
// source. A missing config.yaml is not an error.
func loadConfig(cmd *cobra.Command, configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyWritePolicy, defaultWritePolicy)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyFormat, defaultFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		cfgKeyWritePolicy: "write-policy",
		cfgKeyLogLevel:    "log-level",
		cfgKeyLogFormat:   "log-format",
		cfgKeyFormat:      "format",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	if silent, err := cmd.Flags().GetBool("silent"); err == nil && silent {
		v.Set(cfgKeyWritePolicy, record.PolicySilent.String())
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSettings resolves the config directory, reads the configuration, and
// validates every value.
func loadSettings(cmd *cobra.Command) (settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return settings{}, sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(cmd, configDir)
	if err != nil {
		return settings{}, sysError(err)
	}

	policyName := v.GetString(cfgKeyWritePolicy)
	policy, ok := record.ParseWritePolicy(policyName)
	if !ok {
		return settings{}, userError(fmt.Errorf("unknown write policy %q (valid: strict, silent)", policyName))
	}

	format := v.GetString(cfgKeyFormat)
	if format != record.FormatJSON && format != record.FormatYAML {
		return settings{}, userError(fmt.Errorf("unknown format %q (valid: json, yaml)", format))
	}

	level, err := logging.ParseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return settings{}, userError(err)
	}

	logFormat := strings.ToLower(v.GetString(cfgKeyLogFormat))
	if logFormat != "text" && logFormat != "json" {
		return settings{}, userError(fmt.Errorf("unknown log format %q (valid: text, json)", logFormat))
	}

	return settings{
		configDir: configDir,
		policy:    policy,
		format:    format,
		logLevel:  strings.ToLower(level.String()),
		logFormat: logFormat,
		logger: logging.New(logging.Config{
			Level:   level,
			JSON:    logFormat == "json",
			Service: "guards",
			Writer:  cmd.ErrOrStderr(),
		}),
	}, nil
}
