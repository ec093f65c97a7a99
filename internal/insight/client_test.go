package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aguspuryanto/medi-hospital-erp/pkg/config"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/logger"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/monitoring"
	"github.com/aguspuryanto/medi-hospital-erp/pkg/types"
)

// Test setup helper
func setupTestClient(endpoint string) *Client {
	cfg := &config.InsightConfig{
		Endpoint:                endpoint,
		APIKey:                  "test-key",
		Model:                   "medis-flash",
		Timeout:                 time.Second,
		BreakerFailureThreshold: 3,
		BreakerTimeout:          time.Minute,
	}
	log := logger.New("debug")
	metrics := monitoring.NewMetricsCollector("insight-test")
	return NewClient(cfg, log, metrics)
}

func sampleNote() *types.SOAPNote {
	return &types.SOAPNote{Subjective: "Demam 3 hari", Objective: "T: 38.5C", Assessment: "Suspect Typhoid"}
}

func TestSOAPAssist_Success(t *testing.T) {
	var sent suggestionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "Consider a Widal test."}`))
	}))
	defer server.Close()

	client := setupTestClient(server.URL)

	got := client.SOAPAssist(context.Background(), sampleNote())
	assert.Equal(t, "Consider a Widal test.", got)

	// the prompt carries the subjective, objective and assessment sections
	assert.Equal(t, "medis-flash", sent.Model)
	assert.Contains(t, sent.Prompt, "Demam 3 hari")
	assert.Contains(t, sent.Prompt, "T: 38.5C")
	assert.Contains(t, sent.Prompt, "Suspect Typhoid")
}

func TestSOAPAssist_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := setupTestClient(server.URL)

	got := client.SOAPAssist(context.Background(), sampleNote())
	assert.Equal(t, FallbackAssist, got)
}

func TestSOAPAssist_EmptyTextFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "  "}`))
	}))
	defer server.Close()

	client := setupTestClient(server.URL)

	got := client.SOAPAssist(context.Background(), sampleNote())
	assert.Equal(t, FallbackSuggestion, got)
}

func TestSOAPAssist_NoEndpointConfigured(t *testing.T) {
	client := setupTestClient("")

	got := client.SOAPAssist(context.Background(), sampleNote())
	assert.Equal(t, FallbackAssist, got)
}

func TestSOAPAssist_NilNote(t *testing.T) {
	client := setupTestClient("")

	got := client.SOAPAssist(context.Background(), nil)
	assert.Equal(t, FallbackAssist, got)
}

func TestDashboardInsights_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "ER load trending up at Malang."}`))
	}))
	defer server.Close()

	client := setupTestClient(server.URL)

	encounters := []*types.Encounter{
		{ID: "e1", Status: types.EncounterWaiting},
		{ID: "e2", Status: types.EncounterDoctor},
	}

	got := client.DashboardInsights(context.Background(), encounters)
	assert.Equal(t, "ER load trending up at Malang.", got)
}

func TestDashboardInsights_EmptyLoad(t *testing.T) {
	// no call is made when there is nothing to summarize
	client := setupTestClient("")

	got := client.DashboardInsights(context.Background(), nil)
	assert.Equal(t, FallbackStable, got)
}

func TestDashboardInsights_UnreachableFallsBack(t *testing.T) {
	client := setupTestClient("http://127.0.0.1:1")

	encounters := []*types.Encounter{{ID: "e1", Status: types.EncounterWaiting}}

	got := client.DashboardInsights(context.Background(), encounters)
	assert.Equal(t, FallbackInsights, got)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := setupTestClient(server.URL)

	for i := 0; i < 5; i++ {
		got := client.SOAPAssist(context.Background(), sampleNote())
		assert.Equal(t, FallbackAssist, got)
	}

	// after the threshold the breaker short-circuits without calling out
	assert.Equal(t, 3, calls)
}
