package config

// Bundle is the immutable configuration snapshot threaded into every
// emission (spec §9): "process-wide mutable configuration... should be
// replaced with an immutable configuration bundle passed into each
// emission; the runtime reloader swaps a pointer to a new bundle under a
// single lock so ongoing emissions see a consistent snapshot." Bundle
// itself is never mutated after construction — reload builds a new one
// and hands it to Store.Swap.
type Bundle struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Template  TemplateConfig  `mapstructure:"template"`
	Ruleset   RulesetConfig   `mapstructure:"ruleset"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
}
