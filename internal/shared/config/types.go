package config

import "fmt"

// ServerConfig configures the optional HTTP front end (internal/interfaces/http).
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggerConfig configures internal/shared/logger.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// JWTConfig signs the managed_config_prefix links issued for a conversion
// result, following the teacher's JWT shape (golang-jwt/v5).
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpiresHours  int    `mapstructure:"expires_hours"`
}

// FetchConfig tunes internal/fetch's HTTPFetcher.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// TemplateConfig locates the base templates internal/emit/template loads
// per target dialect before splicing nodes/groups/rules into them.
type TemplateConfig struct {
	Path string `mapstructure:"path"`
}

// RulesetConfig holds the ACL4SSR-shorthand defaults (spec's SUPPLEMENTED
// FEATURES section). ACL4SSRBase is loaded but not read by
// ruleset.ParseACL4SSRRuleset, which expands relative `rules/ACL4SSR/...`
// paths against its own built-in jsdelivr mirror base.
type RulesetConfig struct {
	ACL4SSRBase string `mapstructure:"acl4ssr_base"`
}

// NormalizeConfig is the per-emission rename/emoji/cipher rule source read
// into an immutable ConfigBundle (spec §9).
type NormalizeConfig struct {
	RenameRules        []string `mapstructure:"rename_rules"`
	EmojiRules         []string `mapstructure:"emoji_rules"`
	RemoveEmoji        bool     `mapstructure:"remove_emoji"`
	AppendProxyType    bool     `mapstructure:"append_proxy_type"`
	Sort               bool     `mapstructure:"sort"`
	IncludePatterns    []string `mapstructure:"include_patterns"`
	ExcludePatterns    []string `mapstructure:"exclude_patterns"`
}
