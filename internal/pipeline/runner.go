package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/strata/internal/batch"
	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/corpus"
	"github.com/MikeSquared-Agency/strata/internal/phrase"
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/slack"
	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

// Config holds one mining run's parameters.
type Config struct {
	SourcePath       string
	ChunkSize        int                  // conversations per chunk (default 50)
	MinMessageLength int                  // decoder retention floor in runes (default 20)
	ExcerptWindow    int                  // excerpt context on each side of a match (default 200)
	Role             string               // author role mined for patterns; "" = every role
	Granularity      temporal.Granularity // temporal bucket size (default monthly)
	Caps             consolidate.Caps

	// Per-pass conversation caps: 0 means the whole corpus, n > 0 limits
	// the pass to the first n conversations.
	PatternsCap  int
	RelationsCap int
	PairingCap   int
	TemporalCap  int
	PhrasesCap   int

	SlackToken   string // optional: post a run summary to Slack
	SlackChannel string
}

// Runner owns one corpus walk: load, scheduled analysis passes, then
// consolidation into a single report.
type Runner struct {
	cfg    Config
	rules  []*taxonomy.RuleSet
	ext    *relation.Extractor
	cats   []taxonomy.Category
	slack  *slack.Poster
	logger *slog.Logger
}

// NewRunner creates a mining runner. Zero-valued config fields fall back to
// the documented defaults.
func NewRunner(cfg Config, rules []*taxonomy.RuleSet, ext *relation.Extractor, cats []taxonomy.Category, logger *slog.Logger) *Runner {
	if cfg.MinMessageLength <= 0 {
		cfg.MinMessageLength = 20
	}
	if cfg.ExcerptWindow <= 0 {
		cfg.ExcerptWindow = 200
	}
	if cfg.Granularity == "" {
		cfg.Granularity = temporal.Monthly
	}
	if cfg.Caps == (consolidate.Caps{}) {
		cfg.Caps = consolidate.DefaultCaps()
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Runner{cfg: cfg, rules: rules, ext: ext, cats: cats, logger: logger}
	if cfg.SlackToken != "" && cfg.SlackChannel != "" {
		r.slack = slack.NewPoster(cfg.SlackToken, cfg.SlackChannel, logger)
	}
	return r
}

// Run mines the whole corpus and returns the consolidated report. An
// unreadable source is fatal; per-conversation faults are logged, counted
// and skipped.
func (r *Runner) Run(ctx context.Context) (*consolidate.Report, error) {
	stats := batch.RunStats{StartedAt: time.Now().UTC()}

	c, err := corpus.Load(r.cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	stats.Conversations = len(c.Conversations)
	stats.SkippedRecords = c.Skipped

	r.logger.Info("corpus loaded",
		"source", r.cfg.SourcePath,
		"conversations", stats.Conversations,
		"skipped_records", stats.SkippedRecords)

	acc := consolidate.NewAccumulator()
	agg := temporal.NewAggregator(r.cfg.Granularity)
	phrases := phrase.NewCounter()

	decodeOpts := corpus.DecodeOptions{MinLength: r.cfg.MinMessageLength}
	// Pairing replays the raw conversational flow, so its decode keeps
	// every non-empty message regardless of the retention floor.
	pairingOpts := corpus.DecodeOptions{MinLength: 1}

	passes := []batch.Pass{
		{Name: "patterns", MaxConversations: r.cfg.PatternsCap, Fn: func(_ context.Context, convs []corpus.Conversation) error {
			r.each("patterns", &stats, convs, func(conv corpus.Conversation) {
				msgs := corpus.Decode(conv, decodeOpts)
				stats.MessagesDecoded += len(msgs)
				stats.MalformedNodes += conv.Mapping.Malformed()
				for _, msg := range corpus.FilterRole(msgs, r.cfg.Role) {
					for _, rs := range r.rules {
						occs := rs.Classify(msg, conv.Title, r.cfg.ExcerptWindow)
						stats.Occurrences += len(occs)
						acc.AddOccurrences(rs.Name(), occs)
					}
				}
			})
			return nil
		}},
		{Name: "relations", MaxConversations: r.cfg.RelationsCap, Fn: func(_ context.Context, convs []corpus.Conversation) error {
			r.each("relations", &stats, convs, func(conv corpus.Conversation) {
				msgs := corpus.FilterRole(corpus.Decode(conv, decodeOpts), r.cfg.Role)
				for _, msg := range msgs {
					recs := r.ext.Extract(msg.Text, conv.Title)
					stats.Relations += len(recs)
					acc.AddRelations(recs)
				}
			})
			return nil
		}},
		{Name: "pairing", MaxConversations: r.cfg.PairingCap, Fn: func(_ context.Context, convs []corpus.Conversation) error {
			r.each("pairing", &stats, convs, func(conv corpus.Conversation) {
				msgs := corpus.Decode(conv, pairingOpts)
				recs := r.ext.PairProblems(msgs, conv.Title)
				stats.ProblemPairs += len(recs)
				acc.AddRelations(recs)
			})
			return nil
		}},
		{Name: "temporal", MaxConversations: r.cfg.TemporalCap, Fn: func(_ context.Context, convs []corpus.Conversation) error {
			r.each("temporal", &stats, convs, func(conv corpus.Conversation) {
				for _, msg := range corpus.FilterRole(corpus.Decode(conv, decodeOpts), r.cfg.Role) {
					agg.Observe(msg, taxonomy.Categorize(msg.Text, r.cats))
				}
			})
			return nil
		}},
		{Name: "phrases", MaxConversations: r.cfg.PhrasesCap, Fn: func(_ context.Context, convs []corpus.Conversation) error {
			r.each("phrases", &stats, convs, func(conv corpus.Conversation) {
				for _, msg := range corpus.FilterRole(corpus.Decode(conv, decodeOpts), r.cfg.Role) {
					phrases.Observe(msg.Text)
				}
			})
			return nil
		}},
	}

	sched := batch.NewScheduler(r.cfg.ChunkSize, r.logger)
	if err := sched.Run(ctx, c.Conversations, passes); err != nil {
		return nil, err
	}
	stats.ChunksProcessed = len(batch.Chunks(c.Conversations, r.cfg.ChunkSize))
	stats.FinishedAt = time.Now().UTC()

	rep := consolidate.Consolidate(acc,
		agg.Snapshot(r.cfg.Caps.TopCategories),
		phrases.Top(r.cfg.Caps.TopPhrases, r.cfg.Caps.PhraseMinCount),
		stats,
		consolidate.Options{
			Source:      r.cfg.SourcePath,
			Granularity: r.cfg.Granularity,
			Caps:        r.cfg.Caps,
		})

	r.logger.Info("mining complete",
		"conversations", stats.Conversations,
		"messages", stats.MessagesDecoded,
		"occurrences", stats.Occurrences,
		"relations", stats.Relations,
		"problem_pairs", stats.ProblemPairs,
		"failed", stats.ConversationsFailed,
		"duration", stats.Duration().String())

	r.postRunSummary(ctx, rep)
	return rep, nil
}

// each applies fn per conversation, recovering from panics so one corrupt
// record aborts its own contribution, never the chunk or the run.
func (r *Runner) each(pass string, stats *batch.RunStats, convs []corpus.Conversation, fn func(corpus.Conversation)) {
	for i := range convs {
		conv := convs[i]
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					stats.ConversationsFailed++
					stats.AddError(fmt.Sprintf("%s: %s: %v", pass, conv.Title, rec))
					r.logger.Error("conversation failed",
						"pass", pass,
						"conversation", conv.Title,
						"error", fmt.Sprint(rec))
				}
			}()
			fn(conv)
		}()
	}
}

// postRunSummary sends the run digest to Slack when configured: the main
// summary as a standalone message, trend details threaded under it.
func (r *Runner) postRunSummary(ctx context.Context, rep *consolidate.Report) {
	if r.slack == nil {
		return
	}
	ts, err := r.slack.PostRunReport(ctx, rep)
	if err != nil {
		r.logger.Warn("failed to post run summary to Slack", "error", err)
		return
	}
	if trends := slack.FormatTrends(rep.Trends); trends != "" {
		if err := r.slack.PostThread(ctx, ts, trends); err != nil {
			r.logger.Warn("failed to post trend thread to Slack", "error", err)
		}
	}
}
