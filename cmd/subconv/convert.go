package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subconv/internal/convert"
	"github.com/orris-inc/subconv/internal/emit"
	"github.com/orris-inc/subconv/internal/emit/template"
	"github.com/orris-inc/subconv/internal/fetch"
	"github.com/orris-inc/subconv/internal/normalize"
	sharedconfig "github.com/orris-inc/subconv/internal/shared/config"
	"github.com/orris-inc/subconv/internal/shared/logger"
)

// newConvertCommand builds the "convert" subcommand: the one-shot,
// no-server path through internal/convert.UseCase, for scripting and CI use
// (spec's CLI entrypoint, as opposed to the "serve" long-running front end).
func newConvertCommand() *cobra.Command {
	var (
		sources     []string
		target      string
		output      string
		configPath  string
		renameRules []string
		emojiRules  []string
		removeEmoji bool
		sortFlag    bool
		surgeVer    int
		airport     string
		baseTemplate string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one or more subscriptions to a target dialect",
		Long: `convert reads one or more --source values (a URL, or "@path" for a local ` +
			`file, or a raw subscription/link string), decodes and normalizes their ` +
			`nodes, and emits the requested --target dialect to stdout or --output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(convertFlags{
				sources:     sources,
				target:      target,
				output:      output,
				configPath:  configPath,
				renameRules: renameRules,
				emojiRules:  emojiRules,
				removeEmoji: removeEmoji,
				sort:        sortFlag,
				surgeVer:    surgeVer,
				airport:     airport,
				baseTemplate: baseTemplate,
			})
		},
	}

	cmd.Flags().StringArrayVar(&sources, "source", nil, `subscription source, "group=url", "group=@file", or "group=link-text" (repeatable)`)
	cmd.Flags().StringVarP(&target, "target", "t", "clash", "target dialect: clash, clashr, surge, quan, quanx, mellow, ssd, sssub, links")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	cmd.Flags().StringArrayVar(&renameRules, "rename", nil, "rename rule, pattern@replacement (repeatable)")
	cmd.Flags().StringArrayVar(&emojiRules, "emoji", nil, "emoji rule, pattern,emoji (repeatable)")
	cmd.Flags().BoolVar(&removeEmoji, "remove-emoji", false, "strip existing emoji from node names after renaming")
	cmd.Flags().BoolVar(&sortFlag, "sort", false, "sort nodes by name")
	cmd.Flags().IntVar(&surgeVer, "surge-version", 4, "Surge config version (2, 3, or 4)")
	cmd.Flags().StringVar(&airport, "airport", "", "airport name, required by the SSD dialect")
	cmd.Flags().StringVar(&baseTemplate, "base-template", "", "base template file: Surge INI, or Clash/ClashR YAML, matching --target (other targets ignore it)")

	cmd.MarkFlagRequired("source")
	return cmd
}

type convertFlags struct {
	sources     []string
	target      string
	output      string
	configPath  string
	renameRules []string
	emojiRules  []string
	removeEmoji bool
	sort        bool
	surgeVer    int
	airport     string
	baseTemplate string
}

func runConvert(f convertFlags) error {
	cfg, err := sharedconfig.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	sources, err := parseSourceFlags(f.sources)
	if err != nil {
		return err
	}

	rules := &normalize.Rules{RemoveEmoji: f.removeEmoji, SortFlag: f.sort}
	for _, raw := range f.renameRules {
		rr, err := normalize.ParseRenameRule(raw)
		if err != nil {
			return fmt.Errorf("parse --rename %q: %w", raw, err)
		}
		rules.Rename = append(rules.Rename, rr)
	}
	for _, raw := range f.emojiRules {
		er, err := normalize.ParseEmojiRule(raw)
		if err != nil {
			return fmt.Errorf("parse --emoji %q: %w", raw, err)
		}
		rules.AddEmoji = append(rules.AddEmoji, er)
	}

	fetcher := &fetch.HTTPFetcher{
		Client: &http.Client{Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second},
	}
	uc := convert.NewUseCase(fetcher, logger.NewLogger())

	var opts emit.Options
	var surgeGeneral, surgeDNS []string
	switch convert.Target(f.target) {
	case convert.TargetSurge:
		surgeGeneral, surgeDNS, err = template.LoadSurgeBase(f.baseTemplate)
		if err != nil {
			return fmt.Errorf("load base template: %w", err)
		}
	case convert.TargetClash, convert.TargetClashR:
		opts.ClashBaseExtra, err = template.LoadClashBase(f.baseTemplate)
		if err != nil {
			return fmt.Errorf("load base template: %w", err)
		}
	}

	query := convert.Query{
		Sources:      sources,
		Rules:        rules,
		Target:       convert.Target(f.target),
		SurgeVersion: f.surgeVer,
		Airport:      f.airport,
		Options:      opts,
		SurgeGeneral: surgeGeneral,
		SurgeDNS:     surgeDNS,
	}

	result, err := uc.Execute(context.Background(), query)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	for _, d := range result.DecodeDiagnostics {
		fmt.Fprintln(os.Stderr, "warning:", d.Error())
	}
	for _, d := range result.EmitDiagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s skipped: %s\n", d.Remarks, d.Reason)
	}

	if f.output == "" {
		fmt.Println(result.Artifact)
		return nil
	}
	return os.WriteFile(f.output, []byte(result.Artifact), 0644)
}

// parseSourceFlags turns "group=value" strings into SourceQuery values.
// value is a URL unless it starts with "@" (a local file path) or looks
// like a raw link/plain-text subscription body, which is passed through
// as inline Text for internal/decode's format sniffer to handle.
func parseSourceFlags(raw []string) ([]convert.SourceQuery, error) {
	sources := make([]convert.SourceQuery, 0, len(raw))
	for _, entry := range raw {
		group, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("--source %q: expected \"group=value\"", entry)
		}

		switch {
		case strings.HasPrefix(value, "@"):
			content, err := os.ReadFile(strings.TrimPrefix(value, "@"))
			if err != nil {
				return nil, fmt.Errorf("--source %q: read file: %w", entry, err)
			}
			sources = append(sources, convert.SourceQuery{Group: group, Text: string(content)})
		case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"):
			sources = append(sources, convert.SourceQuery{Group: group, URL: value})
		default:
			sources = append(sources, convert.SourceQuery{Group: group, Text: value})
		}
	}
	return sources, nil
}
