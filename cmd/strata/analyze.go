package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/pipeline"
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/report"
	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

var (
	analyzeSource      string
	analyzeOut         string
	analyzeMarkdown    string
	analyzeTaxonomies  string
	analyzeRelations   string
	analyzeRole        string
	analyzeGranularity string
	analyzeChunkSize   int
	analyzeMinLength   int
	analyzeWindow      int

	analyzePatternsCap  int
	analyzeRelationsCap int
	analyzePairingCap   int
	analyzeTemporalCap  int
	analyzePhrasesCap   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Mine a conversations export into a consolidated report",
	Long: `Run every analysis pass over a conversations export and write the
consolidated report.

Examples:
  # Mine the default export
  strata analyze

  # Mine a specific export into a specific location, with a markdown copy
  strata analyze --source export.json --out report.json --markdown report.md

  # Quarterly trends over assistant messages, custom taxonomies
  strata analyze --granularity quarter --role assistant --taxonomies rules.yaml`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeSource, "source", cfg.SourcePath, "conversations export file")
	f.StringVar(&analyzeOut, "out", cfg.ReportPath, "report JSON output path")
	f.StringVar(&analyzeMarkdown, "markdown", cfg.MarkdownPath, "markdown output path (empty to skip)")
	f.StringVar(&analyzeTaxonomies, "taxonomies", cfg.TaxonomiesPath, "taxonomy rules YAML (built-ins when empty)")
	f.StringVar(&analyzeRelations, "relations", cfg.RelationsPath, "relation rules YAML (built-ins when empty)")
	f.StringVar(&analyzeRole, "role", cfg.Role, "author role to mine (empty for every role)")
	f.StringVar(&analyzeGranularity, "granularity", cfg.Granularity, "trend bucket size: month or quarter")
	f.IntVar(&analyzeChunkSize, "chunk-size", cfg.ChunkSize, "conversations per processing chunk")
	f.IntVar(&analyzeMinLength, "min-length", cfg.MinMessageLength, "minimum message length in characters")
	f.IntVar(&analyzeWindow, "excerpt-window", cfg.ExcerptWindow, "excerpt context around matches in bytes")

	f.IntVar(&analyzePatternsCap, "patterns-cap", cfg.PatternsCap, "max conversations for the patterns pass (0 = all)")
	f.IntVar(&analyzeRelationsCap, "relations-cap", cfg.RelationsCap, "max conversations for the relations pass (0 = all)")
	f.IntVar(&analyzePairingCap, "pairing-cap", cfg.PairingCap, "max conversations for the pairing pass (0 = all)")
	f.IntVar(&analyzeTemporalCap, "temporal-cap", cfg.TemporalCap, "max conversations for the temporal pass (0 = all)")
	f.IntVar(&analyzePhrasesCap, "phrases-cap", cfg.PhrasesCap, "max conversations for the phrases pass (0 = all)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	gran, err := temporal.ParseGranularity(analyzeGranularity)
	if err != nil {
		return err
	}

	rules, err := loadTaxonomies(analyzeTaxonomies)
	if err != nil {
		return err
	}

	tables, pairing, err := loadRelationRules(analyzeRelations)
	if err != nil {
		return err
	}

	cats := taxonomy.DefaultCategories()
	ext, err := relation.New(tables, pairing, cats, analyzeWindow)
	if err != nil {
		return err
	}

	runCfg := pipeline.Config{
		SourcePath:       analyzeSource,
		ChunkSize:        analyzeChunkSize,
		MinMessageLength: analyzeMinLength,
		ExcerptWindow:    analyzeWindow,
		Role:             analyzeRole,
		Granularity:      gran,
		Caps: consolidate.Caps{
			ExamplesPerRule:      cfg.ExamplesPerRule,
			TopPhrases:           cfg.TopPhrases,
			PhraseMinCount:       cfg.PhraseMinCount,
			TopCategories:        cfg.TopCategories,
			RelationsPerCategory: cfg.RelationsPerCategory,
		},
		PatternsCap:  analyzePatternsCap,
		RelationsCap: analyzeRelationsCap,
		PairingCap:   analyzePairingCap,
		TemporalCap:  analyzeTemporalCap,
		PhrasesCap:   analyzePhrasesCap,
		SlackToken:   cfg.SlackBotToken,
		SlackChannel: cfg.SlackChannel,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(runCfg, rules, ext, cats, slog.Default())
	rep, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := report.WriteJSON(analyzeOut, rep); err != nil {
		return err
	}
	slog.Info("report written", "path", analyzeOut)

	if analyzeMarkdown != "" {
		if err := report.WriteMarkdown(analyzeMarkdown, rep); err != nil {
			return err
		}
		slog.Info("markdown written", "path", analyzeMarkdown)
	}

	printSummary(rep)
	return nil
}

func loadTaxonomies(path string) ([]*taxonomy.RuleSet, error) {
	if path == "" {
		return taxonomy.CompileAll(taxonomy.DefaultTaxonomies())
	}
	return taxonomy.LoadFile(path)
}

func loadRelationRules(path string) ([]relation.Table, relation.PairingRules, error) {
	if path == "" {
		return relation.DefaultTables(), relation.DefaultPairing(), nil
	}
	rf, err := relation.LoadFile(path)
	if err != nil {
		return nil, relation.PairingRules{}, err
	}
	tables := rf.Tables
	if len(tables) == 0 {
		tables = relation.DefaultTables()
	}
	pairing := rf.Pairing
	if len(pairing.ProblemIndicators) == 0 && len(pairing.SolutionIndicators) == 0 {
		pairing = relation.DefaultPairing()
	}
	return tables, pairing, nil
}

func printSummary(rep *consolidate.Report) {
	fmt.Printf("\n=== Mining Summary ===\n")
	fmt.Printf("Conversations: %d\n", rep.Stats.Conversations)
	fmt.Printf("Messages: %d\n", rep.Stats.MessagesDecoded)
	fmt.Printf("Pattern occurrences: %d\n", rep.Stats.Occurrences)
	fmt.Printf("Relations: %d inline, %d paired\n", rep.Stats.Relations, rep.Stats.ProblemPairs)
	fmt.Printf("Chunks processed: %d\n", rep.Stats.ChunksProcessed)
	fmt.Printf("Errors: %d\n", len(rep.Stats.Errors))
	fmt.Printf("Duration: %s\n", rep.Stats.Duration().Round(time.Millisecond))
	fmt.Printf("Run ID: %s\n", rep.RunID)
}
