package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// acknowledgment is the fixed model turn that follows the system prompt in the
// turn sequence, so the conversation proper starts from a grounded state.
const acknowledgment = "Understood. I will answer using only the business figures provided above."

// Turn is one entry of the ordered turn sequence sent to the service.
type Turn struct {
	Role string // "user" | "model"
	Text string
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
	Error          *apiError       `json:"error"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Complete issues one generateContent call: system prompt as a leading user
// turn, the fixed acknowledgment as the model's reply, then the supplied
// history, then the new user turn. Failures come back as a classified *Error.
func (c *Client) Complete(ctx context.Context, systemPrompt, userTurn string, history []Turn) (string, error) {
	if kind, ok := credentialProblem(c.apiKey); ok {
		return "", &Error{Kind: kind, Message: "API key missing or malformed"}
	}

	contents := make([]content, 0, len(history)+3)
	contents = append(contents,
		content{Role: "user", Parts: []part{{Text: systemPrompt}}},
		content{Role: "model", Parts: []part{{Text: acknowledgment}}},
	)
	for _, t := range history {
		contents = append(contents, content{Role: t.Role, Parts: []part{{Text: t.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: userTurn}}})

	reqBody := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 1024,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &Error{Kind: classifyStatus(resp.StatusCode, ""), Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		return "", &Error{Kind: KindService, Message: "undecodable response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK || genResp.Error != nil {
		message := fmt.Sprintf("status %d", resp.StatusCode)
		var serviceCode string
		if genResp.Error != nil {
			message = genResp.Error.Message
			serviceCode = genResp.Error.Status + " " + genResp.Error.Message
		}
		return "", &Error{Kind: classifyStatus(resp.StatusCode, serviceCode), Message: message}
	}

	if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
		return "", &Error{Kind: KindSafetyBlocked, Message: "prompt blocked: " + genResp.PromptFeedback.BlockReason}
	}
	if len(genResp.Candidates) == 0 {
		return "", &Error{Kind: KindEmptyResponse, Message: "no candidates in response"}
	}

	cand := genResp.Candidates[0]
	if strings.EqualFold(cand.FinishReason, "SAFETY") {
		return "", &Error{Kind: KindSafetyBlocked, Message: "candidate blocked for safety"}
	}

	var text strings.Builder
	for _, p := range cand.Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", &Error{Kind: KindEmptyResponse, Message: "candidate carried no text"}
	}

	return text.String(), nil
}

// credentialProblem rejects missing, placeholder, and too-short keys before
// any network traffic.
func credentialProblem(key string) (ErrorKind, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || len(trimmed) < 10 || strings.Contains(strings.ToLower(trimmed), "your_api_key") {
		return KindConfiguration, true
	}
	return "", false
}

// classifyStatus maps an HTTP status plus the service-reported error code text
// into the taxonomy.
func classifyStatus(status int, serviceCode string) ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusForbidden:
		return KindQuotaExceeded
	case http.StatusNotFound:
		return KindModelUnavailable
	}

	code := strings.ToUpper(serviceCode)
	switch {
	case strings.Contains(code, "API_KEY_INVALID"), strings.Contains(code, "UNAUTHENTICATED"):
		return KindCredentialInvalid
	case strings.Contains(code, "SAFETY"), strings.Contains(code, "BLOCKED"):
		return KindSafetyBlocked
	case strings.Contains(code, "RESOURCE_EXHAUSTED"):
		return KindRateLimited
	}

	if status == http.StatusBadRequest {
		return KindInvalidRequest
	}
	return KindService
}
