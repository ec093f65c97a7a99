package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/interfaces"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Fallback texts returned when the summarizer cannot be reached. These
// are part of the rendered product surface and must stay stable.
const (
	FallbackAssist     = "Error getting medical assistance."
	FallbackInsights   = "Insights unavailable."
	FallbackStable     = "Trends stable."
	FallbackSuggestion = "No suggestions available."
)

// Client calls the external text-suggestion service. Every failure mode
// (disabled endpoint, timeout, open breaker, bad response) degrades to a
// fixed fallback string; callers never see an error.
type Client struct {
	cfg        *config.InsightConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *logger.Logger
	metrics    *monitoring.MetricsCollector
}

var _ interfaces.InsightClient = (*Client)(nil)

// suggestionRequest is the wire request to the summarizer
type suggestionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// suggestionResponse is the wire response from the summarizer
type suggestionResponse struct {
	Text string `json:"text"`
}

// NewClient creates a new insight client
func NewClient(cfg *config.InsightConfig, log *logger.Logger, metrics *monitoring.MetricsCollector) *Client {
	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 3
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "insight-summarizer",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Circuit breaker %s moved from %s to %s", name, from, to)
		},
	})

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     log,
		metrics:    metrics,
	}
}

// SOAPAssist asks the summarizer for a draft continuation of a partial
// clinical note
func (c *Client) SOAPAssist(ctx context.Context, note *types.SOAPNote) string {
	if note == nil {
		return FallbackAssist
	}

	prompt := fmt.Sprintf(
		"Analyze the following SOAP note and suggest a refined Plan or potential Differential Diagnoses. Keep it concise.\nSubjective: %s\nObjective: %s\nAssessment: %s",
		note.Subjective, note.Objective, note.Assessment)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		c.recordOutcome("soap_assist", false, err)
		return FallbackAssist
	}
	if text == "" {
		c.recordOutcome("soap_assist", false, nil)
		return FallbackSuggestion
	}

	c.recordOutcome("soap_assist", true, nil)
	return text
}

// DashboardInsights asks the summarizer for a one-paragraph reading of
// the current encounter load
func (c *Client) DashboardInsights(ctx context.Context, encounters []*types.Encounter) string {
	if len(encounters) == 0 {
		return FallbackStable
	}

	var sb strings.Builder
	sb.WriteString("Summarize the operational trend for a hospital network with these active encounters:")
	for _, e := range encounters {
		dept := e.Department
		if dept == "" {
			dept = string(e.Type)
		}
		fmt.Fprintf(&sb, " %s:%s;", dept, e.Status)
	}

	text, err := c.complete(ctx, sb.String())
	if err != nil {
		c.recordOutcome("dashboard_insights", false, err)
		return FallbackInsights
	}
	if text == "" {
		c.recordOutcome("dashboard_insights", false, nil)
		return FallbackStable
	}

	c.recordOutcome("dashboard_insights", true, nil)
	return text
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.Endpoint == "" {
		return "", fmt.Errorf("summarizer endpoint not configured")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		body, err := json.Marshal(suggestionRequest{Model: c.cfg.Model, Prompt: prompt})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("summarizer returned status %d", resp.StatusCode)
		}

		var out suggestionResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return out.Text, nil
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.(string)), nil
}

func (c *Client) recordOutcome(operation string, success bool, err error) {
	outcome := "ok"
	if !success {
		outcome = "fallback"
	}
	c.metrics.RecordInsightRequest(operation, outcome)

	details := map[string]interface{}{"breaker_state": c.breaker.State().String()}
	if err != nil {
		details["error"] = err.Error()
	}
	c.logger.ExternalCall("insight-summarizer", operation, success, details)
}
