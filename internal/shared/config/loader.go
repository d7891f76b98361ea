package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load builds a Bundle from a config file and environment variables,
// following the teacher's internal/infrastructure/config.Load shape: a
// config file is optional (defaults plus env vars cover a missing file),
// and env vars use a SUBCONV_ prefix with "." replaced by "_".
func Load(configPath ...string) (*Bundle, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("SUBCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var bundle Bundle
	if err := v.Unmarshal(&bundle); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &bundle, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 25500)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expires_hours", 24)

	v.SetDefault("fetch.timeout_seconds", 15)
	v.SetDefault("fetch.user_agent", "subconv/1.0")

	v.SetDefault("template.path", "./configs/templates")

	v.SetDefault("ruleset.acl4ssr_base", "https://cdn.jsdelivr.net/gh/ACL4SSR/ACL4SSR@master/Clash/")

	v.SetDefault("normalize.remove_emoji", false)
	v.SetDefault("normalize.append_proxy_type", false)
	v.SetDefault("normalize.sort", false)
}
