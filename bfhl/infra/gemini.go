package infra

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiTimeout = 10 * time.Second

	// FallbackAnswer é devolvido quando a resposta não tem o formato esperado
	// ou o token extraído fica vazio.
	FallbackAnswer = "Unknown"

	promptTemplate = "Answer in ONE word only: "
)

var nonWord = regexp.MustCompile(`[^\w]`)

type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL substitui o endpoint do Google (ex.: servidor fake em testes).
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// GeminiAnswerer implementa domain.Answerer com uma única chamada
// generateContent por pergunta: sem retry, sem streaming, sem cache.
type GeminiAnswerer struct {
	models  *genai.Models
	model   string
	timeout time.Duration
}

// NewGeminiAnswerer cria o cliente. Sem APIKey não há erro: o answerer é criado
// desconfigurado e cada Answer falha com domain.ErrUpstreamUnavailable, de modo
// que as operações numéricas continuam funcionando.
func NewGeminiAnswerer(ctx context.Context, opts GeminiOptions) (*GeminiAnswerer, error) {
	a := &GeminiAnswerer{
		model:   opts.Model,
		timeout: opts.Timeout,
	}
	if a.model == "" {
		a.model = DefaultGeminiModel
	}
	if a.timeout <= 0 {
		a.timeout = DefaultGeminiTimeout
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return a, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(opts.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	a.models = client.Models
	return a, nil
}

// Configured indica se há credencial (usado no log de startup).
func (a *GeminiAnswerer) Configured() bool { return a != nil && a.models != nil }

func (a *GeminiAnswerer) Answer(ctx context.Context, question string) (string, error) {
	if !a.Configured() {
		return "", errors.WithDetail(domain.ErrUpstreamUnavailable, "GEMINI_API_KEY is not set")
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.models.GenerateContent(callCtx, a.model, genai.Text(promptTemplate+question), nil)
	if err != nil {
		return "", errors.WithSecondaryError(
			errors.Wrapf(domain.ErrUpstreamUnavailable, "generate content (model %s)", a.model), err)
	}
	return ExtractOneWord(resp), nil
}

// ExtractOneWord percorre candidates[0].content.parts[0].text e devolve o primeiro
// token separado por espaço, sem caracteres fora de [A-Za-z0-9_]. Qualquer nível
// ausente, ou token vazio, resulta em FallbackAnswer.
func ExtractOneWord(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return FallbackAnswer
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return FallbackAnswer
	}
	part := cand.Content.Parts[0]
	if part == nil {
		return FallbackAnswer
	}

	fields := strings.Fields(part.Text)
	if len(fields) == 0 {
		return FallbackAnswer
	}
	word := nonWord.ReplaceAllString(fields[0], "")
	if word == "" {
		return FallbackAnswer
	}
	return word
}

var _ domain.Answerer = (*GeminiAnswerer)(nil)
