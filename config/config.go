package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/hogwarts-cloud/profilectl/internal/validator"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigName = "profile"
	EnvPrefix  = "PROFILECTL"
)

type Config struct {
	Profile models.Profile `mapstructure:"profile"`
	Log     Log            `mapstructure:"log"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads profile.yaml from path over the built-in profile. An empty path
// or a directory without the file yields the built-in profile. Flags named
// log-level and log-format in flags take precedence over the file.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, flag := range map[string]string{"log.level": "log-level", "log.format": "log-format"} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToIPHookFunc(),
			mapstructure.StringToIPNetHookFunc(),
		))); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateProfile(cfg.Profile); err != nil {
		return Config{}, fmt.Errorf("invalid profile: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("profile.images", []map[string]string{
		{"name": "UBUNTU14-64-STD", "description": "Ubuntu 14.04"},
		{"name": "UBUNTU16-64-STD", "description": "Ubuntu 16.04"},
	})
	v.SetDefault("profile.hardware_types", []map[string]string{
		{"name": "m510", "description": "m510 (CloudLab Utah, 8-Core Intel Xeon D-1548)"},
		{"name": "m400", "description": "m400 (CloudLab Utah, 8-Core 64-bit ARMv8)"},
		{"name": "d430", "description": "d430 (Emulab, 8-Core Intel Xeon E5-2630v3)"},
	})

	v.SetDefault("profile.defaults.name", "")
	v.SetDefault("profile.defaults.image", "UBUNTU16-64-STD")
	v.SetDefault("profile.defaults.hardware_type", "m510")
	v.SetDefault("profile.defaults.username", "")
	v.SetDefault("profile.defaults.num_nodes", 1)
	v.SetDefault("profile.defaults.local_storage_size", "200GB")
	v.SetDefault("profile.defaults.nfs_storage_size", "200GB")
	v.SetDefault("profile.defaults.dataset_urns", "")

	v.SetDefault("profile.image_authority", "utah.cloudlab.us")
	v.SetDefault("profile.image_project", "emulab-ops")

	v.SetDefault("profile.paths.shared_home", "/local/nfs")
	v.SetDefault("profile.paths.datasets", "/remote")
	v.SetDefault("profile.paths.local_storage", "/scratch")

	v.SetDefault("profile.setup.shell", "sh")
	v.SetDefault("profile.setup.command",
		"sudo /local/repository/system-setup.sh {{.SharedHomeDir}} {{.DatasetsDir}} {{.Username}} {{.NodeCount}}")

	v.SetDefault("profile.cluster_lan.name", "clan")
	v.SetDefault("profile.dataset_lan.name", "dslan")
}
