package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           int
	SourcePath     string
	ReportPath     string
	MarkdownPath   string
	TaxonomiesPath string
	RelationsPath  string

	ChunkSize        int
	MinMessageLength int
	ExcerptWindow    int
	Role             string
	Granularity      string

	ExamplesPerRule      int
	TopPhrases           int
	PhraseMinCount       int
	TopCategories        int
	RelationsPerCategory int

	PatternsCap  int
	RelationsCap int
	PairingCap   int
	TemporalCap  int
	PhrasesCap   int

	LogLevel      string
	SlackBotToken string
	SlackChannel  string
}

func Load() Config {
	return Config{
		Port:           envInt("STRATA_PORT", 8760),
		SourcePath:     envStr("STRATA_SOURCE", "conversations.json"),
		ReportPath:     envStr("STRATA_REPORT", "strata-report.json"),
		MarkdownPath:   envStr("STRATA_MARKDOWN", ""),
		TaxonomiesPath: envStr("STRATA_TAXONOMIES", ""),
		RelationsPath:  envStr("STRATA_RELATIONS", ""),

		ChunkSize:        envInt("STRATA_CHUNK_SIZE", 50),
		MinMessageLength: envInt("STRATA_MIN_MESSAGE_LENGTH", 20),
		ExcerptWindow:    envInt("STRATA_EXCERPT_WINDOW", 200),
		Role:             envStr("STRATA_ROLE", "user"),
		Granularity:      envStr("STRATA_GRANULARITY", "month"),

		ExamplesPerRule:      envInt("STRATA_EXAMPLES_PER_RULE", 3),
		TopPhrases:           envInt("STRATA_TOP_PHRASES", 30),
		PhraseMinCount:       envInt("STRATA_PHRASE_MIN_COUNT", 5),
		TopCategories:        envInt("STRATA_TOP_CATEGORIES", 3),
		RelationsPerCategory: envInt("STRATA_RELATIONS_PER_CATEGORY", 10),

		PatternsCap:  envInt("STRATA_PATTERNS_CAP", 0),
		RelationsCap: envInt("STRATA_RELATIONS_CAP", 0),
		PairingCap:   envInt("STRATA_PAIRING_CAP", 0),
		TemporalCap:  envInt("STRATA_TEMPORAL_CAP", 0),
		PhrasesCap:   envInt("STRATA_PHRASES_CAP", 0),

		LogLevel:      envStr("LOG_LEVEL", "info"),
		SlackBotToken: envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:  envStr("SLACK_REPORTS_CHANNEL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
