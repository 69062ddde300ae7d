package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prepdeck/interview-coach/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for answer
// evaluation and question generation
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	model := "llama-3.1-70b-versatile"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	timeout := 30 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EvaluateAnswer asks the model to score an interview answer against the
// fixed rubric and returns the raw assistant content (expected to be JSON)
func (g *GroqClient) EvaluateAnswer(ctx context.Context, questionText, answerText, topic string, difficulty int, profileSummary string) (string, error) {
	prompt := fmt.Sprintf(`You are an experienced interview board evaluating a candidate's answer in a mock civil-services interview.

Candidate profile: %s
Question (topic: %s, difficulty %d/5): %s
Answer: %s

Return ONLY a JSON object with this exact shape:
{
  "overall_score": <0-10 number>,
  "criteria": {
    "content_knowledge": <0-10>, "clarity": <0-10>, "communication": <0-10>,
    "analytical_ability": <0-10>, "ethical_reasoning": <0-10>,
    "current_affairs_awareness": <0-10>, "administrative_aptitude": <0-10>,
    "leadership_potential": <0-10>
  },
  "feedback": "<2-3 sentence assessment>",
  "strengths": ["..."],
  "improvements": ["..."],
  "follow_up_suggested": <true|false>,
  "complexity_adjustment": <-1|0|1>,
  "breakdown": {
    "depth": "...", "factual_accuracy": "...",
    "perspective_balance": "...", "practical_applicability": "..."
  }
}`, profileSummary, topic, difficulty, questionText, answerText)

	return g.chat(ctx, prompt, 0.3, 2000)
}

// GenerateFollowUp asks the model for a single probing follow-up question
// on the answer just given. Returns plain question text.
func (g *GroqClient) GenerateFollowUp(ctx context.Context, questionText, answerText, topic string) (string, error) {
	prompt := fmt.Sprintf(`In a mock interview the candidate was asked (topic: %s):
%s

They answered:
%s

Ask ONE short probing follow-up question that digs deeper into their answer. Return only the question text, no preamble.`, topic, questionText, answerText)

	content, err := g.chat(ctx, prompt, 0.6, 300)
	if err != nil {
		return "", err
	}
	content = strings.Trim(strings.TrimSpace(content), "\"“”")
	if content == "" {
		return "", fmt.Errorf("empty follow-up from groq")
	}
	return content, nil
}

// GenerateAdaptive asks the model for a fresh question pitched at the target
// difficulty, informed by recent performance. Returns the raw assistant
// content (expected to be JSON with question, type and complexity fields).
func (g *GroqClient) GenerateAdaptive(ctx context.Context, recentSummary, profileSummary string, targetDifficulty int, focusHint string) (string, error) {
	hint := ""
	if focusHint != "" {
		hint = fmt.Sprintf("\nFocus on: %s", focusHint)
	}
	prompt := fmt.Sprintf(`You are an interview board adapting to the candidate's performance.

Candidate profile: %s
Recent turns: %s%s

Generate ONE new interview question at difficulty %d/5 (1 easiest, 5 hardest). Do not repeat earlier topics verbatim.
Return ONLY a JSON object: {"question": "...", "type": "<one of: personal, current-affairs, governance, ethics, optional-subject, social-issues, economy, environment, science-tech, international>", "complexity": %d}`, profileSummary, recentSummary, hint, targetDifficulty, targetDifficulty)

	return g.chat(ctx, prompt, 0.7, 500)
}

// chat sends a single-user-message chat completion and returns the assistant content
func (g *GroqClient) chat(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []map[string]string{{"role": "user", "content": prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
