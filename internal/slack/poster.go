package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/strata/internal/consolidate"
	"github.com/MikeSquared-Agency/strata/internal/temporal"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostRunReport posts the mining run digest to Slack. Returns the message
// timestamp (ts) so follow-up details can be threaded under it.
func (p *Poster) PostRunReport(ctx context.Context, rep *consolidate.Report) (string, error) {
	text := formatReportMessage(rep)

	body, err := json.Marshal(map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": fmt.Sprintf("run %s | %s granularity", rep.RunID, rep.Granularity),
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}

	p.logger.Info("posted run report to slack", "ts", slackResp.TS, "run_id", rep.RunID)
	return slackResp.TS, nil
}

// PostThread posts a threaded reply to a message.
func (p *Poster) PostThread(ctx context.Context, threadTS, text string) error {
	body, err := json.Marshal(map[string]any{
		"channel":   p.channel,
		"thread_ts": threadTS,
		"text":      text,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func formatReportMessage(rep *consolidate.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Corpus:* %s\n", rep.Source)
	fmt.Fprintf(&sb, "*Conversations:* %d (%d messages, %d failed)\n\n",
		rep.Stats.Conversations, rep.Stats.MessagesDecoded, rep.Stats.ConversationsFailed)

	for _, tax := range rep.Taxonomies {
		if len(tax.Rules) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "*%s*\n", tax.Taxonomy)
		for i, rule := range tax.Rules {
			if i == 3 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s (score %d, %d occurrences)\n", i+1, rule.RuleID, rule.Score, rule.Occurrences)
		}
		sb.WriteString("\n")
	}

	if len(rep.Relations) > 0 {
		fmt.Fprintf(&sb, "*Relations: %d groups*\n", len(rep.Relations))
		for _, g := range rep.Relations {
			fmt.Fprintf(&sb, "- %s / %s: %d\n", g.Kind, g.Category, g.Count)
		}
	}

	if len(rep.Taxonomies) == 0 && len(rep.Relations) == 0 {
		sb.WriteString("_No patterns extracted from this corpus._")
	}

	return sb.String()
}

// FormatTrends renders per-period activity lines for the thread reply.
// Empty when the run produced no temporal buckets.
func FormatTrends(trends []temporal.TrendSummary) string {
	if len(trends) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("*Activity by period*\n")
	for _, tr := range trends {
		fmt.Fprintf(&sb, "%s: %d messages, avg %.0f chars", tr.Period, tr.Messages, tr.AvgTextLen)
		if len(tr.TopCategories) > 0 {
			names := make([]string, 0, len(tr.TopCategories))
			for _, c := range tr.TopCategories {
				names = append(names, c.Category)
			}
			fmt.Fprintf(&sb, " | focus: %s", strings.Join(names, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
