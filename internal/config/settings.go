package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/maxkimambo/takus/internal/taskmanager"
)

// EnvPrefix prefixes every environment variable read into Settings,
// e.g. TAKUS_FILE or TAKUS_DRY_RUN.
const EnvPrefix = "TAKUS"

// Settings holds the tool's own options, as opposed to the task document.
type Settings struct {
	// File is the task document path; empty means discover it.
	File string `mapstructure:"file"`
	// Shell interprets task commands with "-c".
	Shell string `mapstructure:"shell"`
	// DryRun prints execution plans without running commands.
	DryRun bool `mapstructure:"dry_run"`
}

// settingFlags maps setting keys to the command-line flags bound to them.
var settingFlags = map[string]string{
	"file":    "file",
	"shell":   "shell",
	"dry_run": "dry-run",
}

// SetDefaults registers default values with viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("file", "")
	v.SetDefault("shell", taskmanager.DefaultShell)
	v.SetDefault("dry_run", false)
}

// LoadSettings resolves settings from flags, TAKUS_* environment variables
// and defaults, in that order of precedence. Flags missing from flags are
// skipped.
func LoadSettings(v *viper.Viper, flags *pflag.FlagSet) (*Settings, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if flags != nil {
		for key, name := range settingFlags {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if s.Shell == "" {
		s.Shell = taskmanager.DefaultShell
	}
	return &s, nil
}
