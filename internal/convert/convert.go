// Package convert is the conversion use case: it wires internal/decode,
// internal/normalize, internal/group and internal/emit into the single
// "take N subscription sources, produce one target dialect's artifact"
// operation that both cmd/subconv and internal/interfaces/http drive,
// following the teacher's application/usecases shape (Query struct +
// UseCase struct holding its collaborators + one Execute method).
package convert

import (
	"context"
	"fmt"
	"sync"

	"github.com/orris-inc/subconv/internal/decode"
	"github.com/orris-inc/subconv/internal/emit"
	"github.com/orris-inc/subconv/internal/fetch"
	"github.com/orris-inc/subconv/internal/normalize"
	"github.com/orris-inc/subconv/internal/node"
	"github.com/orris-inc/subconv/internal/ruleset"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
	"github.com/orris-inc/subconv/internal/shared/goroutine"
	"github.com/orris-inc/subconv/internal/shared/logger"
)

// Target selects which dialect emitter Execute dispatches to.
type Target string

const (
	TargetClash       Target = "clash"
	TargetClashR      Target = "clashr"
	TargetSurge       Target = "surge"
	TargetQuantumult  Target = "quan"
	TargetQuantumultX Target = "quanx"
	TargetMellow      Target = "mellow"
	TargetSSD         Target = "ssd"
	TargetSSSub       Target = "sssub"
	TargetRawLinks    Target = "links"
)

// SourceQuery is one subscription source: either a remote URL (fetched
// through Fetcher) or inline text, tagged with the group identity that
// decode.Options threads onto every node it yields (spec §4.B/§3).
type SourceQuery struct {
	Group      string
	GroupID    int
	URL        string
	Text       string
	CustomPort string
}

// Query is everything one conversion needs: the sources to decode, the
// normalize/group/ruleset configuration, and the target dialect.
type Query struct {
	Sources  []SourceQuery
	Rules    *normalize.Rules
	Groups   []emit.GroupDef
	Entries  []ruleset.Entry
	BaseRules []string

	Target       Target
	SurgeVersion int
	Airport      string
	Options      emit.Options

	SurgeGeneral []string
	SurgeDNS     []string
}

// Result is the conversion outcome: the serialized artifact plus every
// diagnostic collected along the way. Decode diagnostics are per-entry
// parse failures (spec §4.F); emit diagnostics are capability mismatches
// (spec §7, deliberately not errors).
type Result struct {
	Artifact          string
	DecodeDiagnostics []error
	EmitDiagnostics   []emit.Diagnostic
}

// UseCase runs one conversion. Fetcher resolves SourceQuery.URL entries;
// ruleset.Entry content is taken as the caller supplied it and is never
// fetched here. logger reports per-source fetch/parse trouble without failing
// the whole conversion (spec §4.F: a bad source is skipped, not fatal).
type UseCase struct {
	fetcher fetch.Fetcher
	logger  logger.Interface
}

// NewUseCase builds a conversion UseCase.
func NewUseCase(fetcher fetch.Fetcher, log logger.Interface) *UseCase {
	return &UseCase{fetcher: fetcher, logger: log}
}

// Execute runs the decode -> normalize -> group -> emit pipeline and
// returns the target dialect's artifact. Sources are independent of one
// another, so their fetches run concurrently (spec §5); decoding stays
// sequential in source order afterward so dedupe-remarks' "$" suffixing
// (spec §4.C step 5) stays deterministic across runs.
func (uc *UseCase) Execute(ctx context.Context, q Query) (*Result, error) {
	result := &Result{}

	texts := uc.fetchSources(ctx, q.Sources, result)

	var nodes []*node.Descriptor
	for i, src := range q.Sources {
		text, ok := texts[i]
		if !ok {
			continue
		}

		decoded, err := decode.Decode(text, decode.Options{
			Group:      src.Group,
			GroupID:    src.GroupID,
			CustomPort: src.CustomPort,
		})
		if err != nil {
			uc.logger.Warn("skipping unparseable subscription source", "group", src.Group, "error", err.Error())
			result.DecodeDiagnostics = append(result.DecodeDiagnostics, err)
			continue
		}
		result.DecodeDiagnostics = append(result.DecodeDiagnostics, decoded.Diagnostics...)
		nodes = append(nodes, decoded.Nodes...)
	}

	if q.Rules != nil {
		nodes = normalize.Apply(nodes, q.Rules)
	}

	emitted, err := uc.emit(nodes, q)
	if err != nil {
		return nil, err
	}
	result.Artifact = emitted.Artifact
	result.EmitDiagnostics = emitted.Diagnostics

	uc.logger.Info("conversion complete", "target", string(q.Target), "node_count", len(nodes))
	return result, nil
}

// fetchSources resolves every source's text concurrently, one goroutine
// per remote URL (inline-text sources need no fetch and are copied in
// directly). A source whose fetch fails is recorded as a DecodeDiagnostic
// and absent from the returned map, so Execute's decode loop skips it
// without treating the whole conversion as failed (spec §4.F).
func (uc *UseCase) fetchSources(ctx context.Context, sources []SourceQuery, result *Result) map[int]string {
	texts := make(map[int]string, len(sources))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, src := range sources {
		if src.URL == "" {
			texts[i] = src.Text
			continue
		}

		wg.Add(1)
		i, src := i, src
		goroutine.SafeGo(uc.logger, fmt.Sprintf("fetch-source-%d", i), func() {
			defer wg.Done()
			fetched, err := uc.fetcher.Fetch(ctx, src.URL)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				wrapped := apperrors.NewFetchError(err.Error(), src.URL)
				uc.logger.Warn("skipping subscription source", "url", src.URL, "error", wrapped.Error())
				result.DecodeDiagnostics = append(result.DecodeDiagnostics, wrapped)
				return
			}
			texts[i] = fetched
		})
	}

	wg.Wait()
	return texts
}

func (uc *UseCase) emit(nodes []*node.Descriptor, q Query) (*emit.Result, error) {
	switch q.Target {
	case TargetClash:
		return emit.EmitClash(nodes, q.Groups, q.Entries, q.BaseRules, q.Options, false)
	case TargetClashR:
		return emit.EmitClash(nodes, q.Groups, q.Entries, q.BaseRules, q.Options, true)
	case TargetSurge:
		return emit.EmitSurge(nodes, q.Groups, q.Entries, q.BaseRules, q.Options, q.SurgeVersion, q.SurgeGeneral, q.SurgeDNS)
	case TargetQuantumult:
		return emit.EmitQuantumult(nodes), nil
	case TargetQuantumultX:
		return emit.EmitQuantumultX(nodes, q.Options), nil
	case TargetMellow:
		return emit.EmitMellow(nodes), nil
	case TargetSSD:
		return emit.EmitSSD(nodes, q.Airport), nil
	case TargetSSSub:
		return emit.EmitSSSub(nodes), nil
	case TargetRawLinks:
		return emit.EmitRawBundle(nodes), nil
	default:
		return nil, fmt.Errorf("convert: unknown target %q", q.Target)
	}
}
