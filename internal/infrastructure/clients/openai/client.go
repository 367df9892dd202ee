package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/pkg/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the triage model provider on the OpenAI Responses API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// WithBaseURL overrides the API endpoint (used for tests)
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

type assessmentPayload struct {
	Severity       string   `json:"severity"`
	Recommendation string   `json:"recommendation"`
	FacilityType   string   `json:"facility_type"`
	Symptoms       []string `json:"symptoms"`
}

// Reply returns the assistant's next conversational turn.
func (c *Client) Reply(ctx context.Context, history []entities.TriageMessage) (string, error) {
	input := buildInput(triageReplySystemPrompt, history, "")
	text, err := c.complete(ctx, input, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Assess produces a structured assessment of the full conversation.
func (c *Client) Assess(ctx context.Context, history []entities.TriageMessage) (*entities.TriageAssessment, error) {
	input := buildInput(triageAssessSystemPrompt, history, assessUserPrompt)
	text, err := c.complete(ctx, input, 600)
	if err != nil {
		return nil, err
	}

	var parsed assessmentPayload
	if err := json.Unmarshal([]byte(stripFences(text)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse assessment response: %w", err)
	}

	assessment := &entities.TriageAssessment{
		Severity:       normalizeSeverity(parsed.Severity),
		Recommendation: parsed.Recommendation,
		FacilityType:   normalizeFacilityType(parsed.FacilityType),
		Symptoms:       parsed.Symptoms,
	}
	return assessment, nil
}

func buildInput(systemPrompt string, history []entities.TriageMessage, closing string) []map[string]string {
	input := make([]map[string]string, 0, len(history)+2)
	input = append(input, map[string]string{"role": "system", "content": systemPrompt})
	for _, msg := range history {
		input = append(input, map[string]string{"role": string(msg.Role), "content": msg.Content})
	}
	if closing != "" {
		input = append(input, map[string]string{"role": "user", "content": closing})
	}
	return input
}

func (c *Client) complete(ctx context.Context, input []map[string]string, maxTokens int) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordTriageMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordTriageRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	payload := map[string]interface{}{
		"model":             c.model,
		"input":             input,
		"temperature":       0.2,
		"max_output_tokens": maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordTriageMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordTriageMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordTriageMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordTriageMetric(ctx, c.model, resp.StatusCode, time.Since(start), errors.New("missing output text"))
		return "", errors.New("openai response missing output text")
	}

	recordTriageMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

// stripFences removes markdown code fences the model sometimes wraps JSON in
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func normalizeSeverity(value string) entities.TriageSeverity {
	switch entities.TriageSeverity(strings.ToLower(strings.TrimSpace(value))) {
	case entities.SeverityEmergency:
		return entities.SeverityEmergency
	case entities.SeverityUrgent:
		return entities.SeverityUrgent
	case entities.SeveritySelfCare:
		return entities.SeveritySelfCare
	default:
		return entities.SeverityRoutine
	}
}

func normalizeFacilityType(value string) entities.FacilityType {
	switch entities.FacilityType(strings.ToLower(strings.TrimSpace(value))) {
	case entities.FacilityTypeHospital:
		return entities.FacilityTypeHospital
	case entities.FacilityTypePharmacy:
		return entities.FacilityTypePharmacy
	case entities.FacilityTypeHealthCenter:
		return entities.FacilityTypeHealthCenter
	default:
		return entities.FacilityTypeClinic
	}
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type triageMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var triageMetricsInit = false
var triageMetricsInst triageMetrics

func ensureTriageMetrics() {
	if triageMetricsInit {
		return
	}
	meter := otel.Meter("github.com/healthconnect/navigator-api/openai")

	requestCount, err := meter.Int64Counter(
		"ai.triage.request.count",
		metric.WithDescription("Number of triage model requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.triage.request.duration",
		metric.WithDescription("Triage model request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.triage.request.errors",
		metric.WithDescription("Number of triage model request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.triage.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the triage rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	triageMetricsInst = triageMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	triageMetricsInit = true
}

func recordTriageMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureTriageMetrics()
	if !triageMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	triageMetricsInst.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	triageMetricsInst.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		triageMetricsInst.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordTriageRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureTriageMetrics()
	if !triageMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	triageMetricsInst.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
