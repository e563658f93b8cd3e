package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gustalxpes/foto-nutri/internal/config"
)

const systemPrompt = `Você é um especialista em nutrição e análise de alimentos. Analise a imagem da refeição e retorne APENAS um JSON válido (sem markdown, sem explicações) com a seguinte estrutura:
{
  "foods": ["lista de alimentos identificados em português"],
  "food_details": [
    {"name": "nome do alimento", "grams": número estimado de gramas}
  ],
  "nutrition": {
    "calories": número em kcal,
    "carbs": número em gramas,
    "protein": número em gramas,
    "fat": número em gramas,
    "fiber": número em gramas
  },
  "confidence": número entre 0 e 1 indicando sua confiança na análise
}

IMPORTANTE:
- Estime as gramas de cada alimento baseado no tamanho visual aparente na imagem
- Use porções típicas brasileiras como referência
- Se não conseguir identificar a comida claramente, defina confidence abaixo de 0.8
- Seja preciso nas estimativas nutricionais considerando as gramas estimadas`

const userPrompt = `Analise esta refeição. Identifique cada alimento, estime as gramas de cada um, e forneça os valores nutricionais totais estimados.`

// GatewayProvider calls an OpenAI-compatible chat-completions gateway with a
// vision-capable model.
type GatewayProvider struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGatewayProvider(cfg *config.Config) *GatewayProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	return &GatewayProvider{
		url:    cfg.AIGatewayURL,
		apiKey: cfg.AIGatewayAPIKey,
		model:  cfg.AIModel,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (p *GatewayProvider) Analyze(ctx context.Context, imageBase64 string) (*Result, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}

	requestPayload := chatCompletionsRequest{
		Model: p.model,
		Messages: []chatMessageRequest{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: userPrompt},
					{Type: "image_url", ImageURL: &imageURLPart{URL: imageBase64}},
				},
			},
		},
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("WARN: analysis gateway returned status %d: %s", resp.StatusCode, truncate(string(responseBody), 200))
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, ErrRateLimited
		case http.StatusPaymentRequired:
			return nil, ErrQuotaExceeded
		default:
			return nil, ErrUpstream
		}
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return nil, ErrUpstream
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResponse
	}

	return ParseModelOutput(parsed.Choices[0].Message.Content)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type chatCompletionsRequest struct {
	Model    string               `json:"model"`
	Messages []chatMessageRequest `json:"messages"`
}

// Content is a string for system messages and []contentPart for the
// multimodal user message.
type chatMessageRequest struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
