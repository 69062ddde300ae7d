package interview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepdeck/interview-coach/internal/domain/entities"
	pkgai "github.com/prepdeck/interview-coach/pkg/ai"
	"github.com/prepdeck/interview-coach/pkg/config"
)

func oracleQuestion() *entities.Question {
	return &entities.Question{ID: "q1", Text: "Why civil services?", Topic: entities.TopicPersonal, Difficulty: 1}
}

// chatEnvelope wraps assistant content in the chat-completions response shape
func chatEnvelope(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
}

func newOracleAgainst(ts *httptest.Server, timeout time.Duration) *GroqOracle {
	client := pkgai.NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL, Timeout: timeout})
	return NewGroqOracle(client, timeout, nil)
}

func TestGroqOracle_ReturnsParsedJudgment(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatEnvelope(t, w, validJudgmentJSON)
	}))
	defer ts.Close()

	oracle := newOracleAgainst(ts, 2*time.Second)
	j := oracle.Evaluate(context.Background(), oracleQuestion(), "A thorough answer.", testProfile())

	require.NotNil(t, j)
	assert.False(t, j.Fallback)
	assert.InDelta(t, 7.5, j.Overall, 1e-9)
	assert.True(t, j.FollowUpSuggested)
}

func TestGroqOracle_FallsBackOnBackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	oracle := newOracleAgainst(ts, 2*time.Second)

	start := time.Now()
	answer := "This answer runs to about forty words, mentioning a government scheme for context, so the heuristic score is predictable regardless of which backend failure path produced it, and the session keeps moving without surfacing any error."
	j := oracle.Evaluate(context.Background(), oracleQuestion(), answer, testProfile())
	elapsed := time.Since(start)

	require.NotNil(t, j, "a backend failure must still yield a judgment")
	assert.True(t, j.Fallback)
	assert.NotEmpty(t, j.Feedback)
	assert.GreaterOrEqual(t, j.Overall, entities.MinScore)
	assert.LessOrEqual(t, j.Overall, entities.MaxScore)
	for _, score := range j.Criteria.All() {
		assert.GreaterOrEqual(t, score, entities.MinScore)
		assert.LessOrEqual(t, score, entities.MaxScore)
	}
	assert.Equal(t, FallbackJudgment(answer), j, "the fallback must be the deterministic heuristic judgment")
	assert.Less(t, elapsed, 5*time.Second, "evaluation must give up within the enforced timeout")
}

func TestGroqOracle_FallsBackOnMalformedJudgment(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// well-formed transport response, schema-violating judgment
		chatEnvelope(t, w, `{"overall_score": 7.0, "complexity_adjustment": 0}`)
	}))
	defer ts.Close()

	oracle := newOracleAgainst(ts, 1*time.Second)
	j := oracle.Evaluate(context.Background(), oracleQuestion(), "answer", testProfile())

	require.NotNil(t, j)
	assert.True(t, j.Fallback, "a judgment missing feedback must route to the fallback path")
	assert.NotEmpty(t, j.Feedback)
}
