package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	// conversationCap bounds the serialized transcript sent in prompts.
	conversationCap = 8000
)

// OpenAIAdvisor implements Advisor over the OpenAI chat-completions API.
type OpenAIAdvisor struct {
	apiKey  string
	model   string
	baseURL string
	httpC   *http.Client
}

// NewOpenAIAdvisor creates a live advisor. An empty model selects the
// default.
func NewOpenAIAdvisor(apiKey, model string) *OpenAIAdvisor {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIAdvisor{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpC:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (a *OpenAIAdvisor) SetBaseURL(u string) {
	a.baseURL = strings.TrimRight(u, "/")
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete posts one chat-completion request and returns the first
// choice's content.
func (a *OpenAIAdvisor) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       a.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpC.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// conversationJSON serializes a transcript for inclusion in a prompt.
func conversationJSON(conversation []negotiation.ChatMessage) string {
	raw, err := json.Marshal(conversation)
	if err != nil {
		return "[]"
	}
	return truncate(string(raw), conversationCap)
}

// Judge asks the model whether the last message follows a principled rule.
func (a *OpenAIAdvisor) Judge(ctx context.Context, conversation []negotiation.ChatMessage, lastMessage string) (negotiation.Verdict, error) {
	system := fmt.Sprintf(`You are a principled negotiation judge. If the message explicitly declares a concession, do not mark a breach: return outcome "no_unfollowed" with a short note. Otherwise, evaluate strictly. Respond ONLY JSON: { outcome: "yes"|"no_breached"|"no_unfollowed", ruleFollowed?: string, ruleBreached?: string, reason: string }. Valid rules: %s`,
		strings.Join(negotiation.RuleKeys(), ", "))
	user := fmt.Sprintf("Conversation so far: %s\nLast user message: %s", conversationJSON(conversation), lastMessage)

	text, err := a.complete(ctx, system, user, 0.1, 300)
	if err != nil {
		return negotiation.Verdict{}, fmt.Errorf("judge: %w", err)
	}
	return parseVerdict(text), nil
}

// DetectConcession asks the model whether the message commits to one of
// the persona's concessions. Keys the model reports that are not in the
// catalog are downgraded to no-match before the result leaves this layer.
func (a *OpenAIAdvisor) DetectConcession(ctx context.Context, message string, persona negotiation.Persona) (negotiation.Detection, error) {
	type keyLabel struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	var list []keyLabel
	for _, c := range negotiation.Concessions(persona) {
		list = append(list, keyLabel{Key: c.Key, Label: c.Label})
	}
	listJSON, _ := json.Marshal(list)

	system := fmt.Sprintf(`Detect whether the user's message commits to one of these concessions (keys only): %s. Return ONLY strict JSON: { matched: boolean, concessionKey?: string, rationale: string }.`, listJSON)

	text, err := a.complete(ctx, system, message, 0, 200)
	if err != nil {
		return negotiation.Detection{}, fmt.Errorf("detect concession: %w", err)
	}

	d := parseDetection(text)
	if d.Matched {
		if _, ok := negotiation.ConcessionByKey(persona, d.ConcessionKey); !ok {
			log.Debug().Str("key", d.ConcessionKey).Str("persona", string(persona)).Msg("Detector reported an unknown concession key, downgrading to no match")
			d.Matched = false
			d.ConcessionKey = ""
		}
	}
	return d, nil
}

// Respond drafts the opponent's reply for the turn.
func (a *OpenAIAdvisor) Respond(ctx context.Context, req ResponseRequest) (Response, error) {
	var keys []string
	for _, c := range negotiation.Concessions(req.Opponent) {
		keys = append(keys, c.Key)
	}

	var system string
	if req.Mode == negotiation.ModeOpportunity {
		system = fmt.Sprintf(`You play %s in a tough but pragmatic diplomatic negotiation. Generate a helpful, opportunity-creating reply aligned with principled negotiation. Offer ONE pending concession from this fixed set: [%s]. Return ONLY strict JSON: { replyText: string, pendingOppConcessionKey: string }. Keep reply under 120 words.`,
			strings.ToUpper(string(req.Opponent)), strings.Join(keys, ", "))
	} else {
		system = fmt.Sprintf(`You play %s in a negotiation. The user's message did NOT follow principled rules. Generate a firm, non-escalatory reply that does not propose concessions. Return ONLY strict JSON: { replyText: string }.`,
			strings.ToUpper(string(req.Opponent)))
	}
	user := fmt.Sprintf("Conversation so far: %s", conversationJSON(req.Conversation))

	text, err := a.complete(ctx, system, user, 0.4, 300)
	if err != nil {
		return Response{}, fmt.Errorf("respond: %w", err)
	}
	return parseResponse(text), nil
}
