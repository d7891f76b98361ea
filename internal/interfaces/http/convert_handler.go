package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/orris-inc/subconv/internal/convert"
	"github.com/orris-inc/subconv/internal/emit"
	"github.com/orris-inc/subconv/internal/emit/template"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	"github.com/orris-inc/subconv/internal/normalize"
	"github.com/orris-inc/subconv/internal/ruleset"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
	"github.com/orris-inc/subconv/internal/shared/utils/logutil"
)

// sourceRequest is one subscription source in a convertRequest.
type sourceRequest struct {
	Group      string `json:"group" binding:"required"`
	GroupID    int    `json:"group_id"`
	URL        string `json:"url"`
	Text       string `json:"text"`
	CustomPort string `json:"custom_port"`
}

// groupRequest is one proxy-group definition (spec §4.D), its member
// expressions passed through unexpanded to internal/group.Expand.
type groupRequest struct {
	Name        string   `json:"name" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	MemberExprs []string `json:"members" binding:"required,min=1"`
	URL         string   `json:"url"`
	Interval    int      `json:"interval"`
}

// ruleEntryRequest is one ruleset source with its content already
// resolved by the caller (spec §4.E.1's Entry, carried verbatim).
type ruleEntryRequest struct {
	RuleGroup string `json:"rule_group" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// convertRequest is the full POST /convert body. It round-trips through
// JSON cleanly (plain strings/slices, no compiled regexp), which is why
// managedConfigClaims embeds this type rather than convert.Query.
type convertRequest struct {
	Title   string          `json:"title"`
	Sources []sourceRequest `json:"sources" binding:"required,min=1,dive"`
	Target  string          `json:"target" binding:"required,oneof=clash clashr surge quan quanx mellow ssd sssub links"`

	SurgeVersion int    `json:"surge_version"`
	Airport      string `json:"airport"`

	Groups      []groupRequest     `json:"groups"`
	RuleEntries []ruleEntryRequest `json:"rule_entries"`
	BaseRules   []string           `json:"base_rules"`

	RenameRules []string `json:"rename_rules"`
	EmojiRules  []string `json:"emoji_rules"`
	RemoveEmoji bool     `json:"remove_emoji"`
	Sort        bool     `json:"sort"`

	EnableRuleGenerator    bool `json:"enable_rule_generator"`
	OverwriteOriginalRules bool `json:"overwrite_original_rules"`
	FilterDeprecated       bool `json:"filter_deprecated"`
	UDP                    bool `json:"udp"`
	TFO                    bool `json:"tfo"`
	SkipCertVerify         bool `json:"skip_cert_verify"`
}

// convertHandler wires internal/convert.UseCase into an HTTP endpoint,
// following the teacher's Handler-struct-holds-usecases shape
// (handlers/subscriptiontokenhandler.go): one usecase field, one logger,
// plus the collaborators this dialect's Options/diagnostics need that the
// domain usecase doesn't own (the sanitizer and token signer are
// presentation concerns, not conversion ones).
type convertHandler struct {
	uc        *convert.UseCase
	sanitizer *bluemonday.Policy
	tokens    *managedTokenService
	templates *template.Loader
	log       *slog.Logger
}

func newConvertHandler(uc *convert.UseCase, tokens *managedTokenService, templates *template.Loader, log *slog.Logger) *convertHandler {
	return &convertHandler{
		uc:        uc,
		sanitizer: bluemonday.StrictPolicy(),
		tokens:    tokens,
		templates: templates,
		log:       log,
	}
}

// Convert handles POST /convert: decode + normalize + group + emit the
// requested dialect, returning the artifact as plain text.
func (h *convertHandler) Convert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err)
		return
	}
	h.runConvert(c, req)
}

// ManagedConfig handles GET /managed/:token: replays a previously-signed
// convertRequest without the client resending the whole body (spec's
// managed_config_prefix supplemented feature).
func (h *convertHandler) ManagedConfig(c *gin.Context) {
	req, err := h.tokens.Verify(c.Param("token"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	h.runConvert(c, *req)
}

// Sign handles POST /managed: validates a convertRequest and returns a
// signed token for it, without running the conversion.
func (h *convertHandler) Sign(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err)
		return
	}
	token, err := h.tokens.Generate(req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	successResponse(c, http.StatusOK, gin.H{"token": token}, "managed config token issued")
}

func (h *convertHandler) runConvert(c *gin.Context, req convertRequest) {
	title := h.sanitizer.Sanitize(req.Title)

	query, err := buildQuery(req, h.templates)
	if err != nil {
		errorResponse(c, apperrors.NewValidationError("invalid rename or emoji rule", err.Error()))
		return
	}

	result, err := h.uc.Execute(c.Request.Context(), query)
	if err != nil {
		h.log.Error("conversion failed", "target", req.Target, "error", err)
		errorResponse(c, err)
		return
	}

	for _, d := range result.DecodeDiagnostics {
		h.log.Warn("source diagnostic", "error", logutil.TruncateForLog(d.Error(), 200))
	}
	for _, d := range result.EmitDiagnostics {
		c.Header("X-Subconv-Skipped", d.Remarks+": "+d.Reason)
	}
	if title != "" {
		c.Header("X-Subconv-Title", title)
	}
	c.String(http.StatusOK, result.Artifact)
}

// buildQuery translates the wire-level convertRequest into a
// convert.Query, compiling rename/emoji regex rules here so HTTP request
// parsing errors (a bad regex) surface as a 400 rather than reaching the
// usecase layer. The server's preloaded base templates (templates may be
// nil in tests) are applied for the dialect the request targets, since
// convertRequest has no per-request base-template override of its own.
func buildQuery(req convertRequest, templates *template.Loader) (convert.Query, error) {
	sources := make([]convert.SourceQuery, 0, len(req.Sources))
	for _, s := range req.Sources {
		sources = append(sources, convert.SourceQuery{
			Group: s.Group, GroupID: s.GroupID, URL: s.URL, Text: s.Text, CustomPort: s.CustomPort,
		})
	}

	rules := &normalize.Rules{RemoveEmoji: req.RemoveEmoji, SortFlag: req.Sort}
	for _, raw := range req.RenameRules {
		rr, err := normalize.ParseRenameRule(raw)
		if err != nil {
			return convert.Query{}, err
		}
		rules.Rename = append(rules.Rename, rr)
	}
	for _, raw := range req.EmojiRules {
		er, err := normalize.ParseEmojiRule(raw)
		if err != nil {
			return convert.Query{}, err
		}
		rules.AddEmoji = append(rules.AddEmoji, er)
	}

	groups := make([]emit.GroupDef, 0, len(req.Groups))
	for _, g := range req.Groups {
		groups = append(groups, emit.GroupDef{Name: g.Name, Type: g.Type, MemberExprs: g.MemberExprs, URL: g.URL, Interval: g.Interval})
	}

	entries := make([]ruleset.Entry, 0, len(req.RuleEntries))
	for _, e := range req.RuleEntries {
		entries = append(entries, ruleset.Entry{RuleGroup: e.RuleGroup, Content: e.Content})
	}

	opts := emit.Options{
		EnableRuleGenerator:    req.EnableRuleGenerator,
		OverwriteOriginalRules: req.OverwriteOriginalRules,
		FilterDeprecated:       req.FilterDeprecated,
		UDP:                    vo.NewTriState(&req.UDP),
		TFO:                    vo.NewTriState(&req.TFO),
		SkipCertVerify:         vo.NewTriState(&req.SkipCertVerify),
	}

	var surgeGeneral, surgeDNS []string
	target := convert.Target(req.Target)
	if templates != nil {
		switch target {
		case convert.TargetClash, convert.TargetClashR:
			opts.ClashBaseExtra = templates.ClashBase()
		case convert.TargetSurge:
			surgeGeneral, surgeDNS = templates.SurgeBase()
		}
	}

	return convert.Query{
		Sources:      sources,
		Rules:        rules,
		Groups:       groups,
		Entries:      entries,
		BaseRules:    req.BaseRules,
		Target:       target,
		SurgeVersion: req.SurgeVersion,
		Airport:      req.Airport,
		Options:      opts,
		SurgeGeneral: surgeGeneral,
		SurgeDNS:     surgeDNS,
	}, nil
}
