package batch

import "time"

// RunStats accumulates counters across one mining run. Passes increment it
// as they go; the pipeline owns the instance and hands it to the
// consolidator at the end.
type RunStats struct {
	StartedAt           time.Time `json:"started_at"`
	FinishedAt          time.Time `json:"finished_at"`
	Conversations       int       `json:"conversations"`
	SkippedRecords      int       `json:"skipped_records"`
	MalformedNodes      int       `json:"malformed_nodes"`
	MessagesDecoded     int       `json:"messages_decoded"`
	ChunksProcessed     int       `json:"chunks_processed"`
	Occurrences         int       `json:"occurrences"`
	Relations           int       `json:"relations"`
	ProblemPairs        int       `json:"problem_pairs"`
	ConversationsFailed int       `json:"conversations_failed"`
	Errors              []string  `json:"errors"`
}

// AddError records one conversation-level failure.
func (s *RunStats) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// Duration reports wall time between start and finish.
func (s *RunStats) Duration() time.Duration {
	if s.FinishedAt.IsZero() || s.StartedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
