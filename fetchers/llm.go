package fetchers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/gosom/cheap-eats-nyc/eats"
	"github.com/gosom/cheap-eats-nyc/extractor"
	"github.com/gosom/cheap-eats-nyc/geo"
	"github.com/gosom/cheap-eats-nyc/models"
)

const (
	defaultLLMURL   = "https://api.perplexity.ai/chat/completions"
	defaultLLMModel = "sonar"
	defaultLLMLimit = 10
)

const cheapEatsPrompt = `Find %d budget-friendly restaurants (average meal <= $%.0f) in or near %s, New York City.

Return ONLY a valid JSON array, no markdown or extra text. Each element must include all of the following keys:

{
  "name": "Restaurant name",
  "cuisine": "Primary cuisine type",
  "average_price": 14.25,
  "price_level": "$",
  "address": "123 Example St, New York, NY 10001",
  "menu_url": "https://www.restaurant.com/menu",
  "yelp_rating": 4.3,
  "google_rating": 4.4,
  "tripadvisor_rating": 4.0,
  "phone": "(212)-555-1234"
}

Guidelines:
- Include only restaurants clearly priced at or below $%.0f on average.
- Prefer venues with >= 50 Yelp reviews for rating credibility.
- If any rating (Yelp/Google/Tripadvisor) is unavailable, output null (do not omit the key).
- Exclude large fast-food chains unless uniquely notable as budget NYC staples.
- Sort the final array by ascending average_price, then by highest yelp_rating.

Return the JSON array and nothing else.`

// LLM asks a chat completions endpoint for budget restaurants and runs
// the answer text through the tolerant extractor. Model output carries
// no coordinates, so records from this source skip radius filtering.
type LLM struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

type LLMOption func(*LLM)

func WithLLMURL(u string) LLMOption {
	return func(l *LLM) {
		l.baseURL = u
	}
}

func WithLLMModel(model string) LLMOption {
	return func(l *LLM) {
		l.model = model
	}
}

func WithLLMClient(c *http.Client) LLMOption {
	return func(l *LLM) {
		l.client = c
	}
}

func NewLLM(apiKey string, logger *zap.Logger, opts ...LLMOption) *LLM {
	ans := LLM{
		baseURL: defaultLLMURL,
		apiKey:  apiKey,
		model:   defaultLLMModel,
		client:  newHTTPClient(),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(&ans)
	}

	return &ans
}

func (l *LLM) Kind() eats.SourceKind {
	return eats.KindLLM
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (l *LLM) Fetch(ctx context.Context, q models.SearchQuery, _ geo.Coordinate) ([]eats.RawRecord, error) {
	prompt := fmt.Sprintf(cheapEatsPrompt, defaultLLMLimit, q.MaxPrice, q.Location, q.MaxPrice)

	body, err := json.Marshal(chatRequest{
		Model:    l.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var parsed chatResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	if len(parsed.Choices) == 0 {
		return nil, ErrExtractionFailed
	}

	objs := extractor.RestaurantArray(parsed.Choices[0].Message.Content)

	l.logger.Debug("llm objects extracted", zap.Int("count", len(objs)))

	if len(objs) == 0 {
		return nil, ErrExtractionFailed
	}

	ans := make([]eats.RawRecord, 0, len(objs))

	for _, obj := range objs {
		ans = append(ans, eats.RawRecord{Kind: eats.KindLLM, LLM: obj})
	}

	return ans, nil
}
