package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/corpora/core"
	"github.com/poiesic/corpora/nlp"
	"github.com/poiesic/corpora/nlp/basic"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrMalformedResponse indicates the model never produced parseable JSON.
var ErrMalformedResponse = errors.New("malformed tagger response")

// Tagger implements nlp.Annotator using an OpenAI-compatible chat API.
type Tagger struct {
	client       llms.Model
	maxTokens    int
	attempts     int
	systemPrompt string
	logger       *slog.Logger
}

var _ nlp.Annotator = (*Tagger)(nil)

// taggedToken is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type taggedToken struct {
	I     int    `json:"i"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	NER   string `json:"ner"`
}

// tagging is the wrapper structure for the LLM's JSON response.
type tagging struct {
	Tokens []taggedToken `json:"tokens"`
}

// newTagger is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTagger(config *nlp.Config) (*Tagger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newTaggerWithModel(client, config), nil
}

func newTaggerWithModel(client llms.Model, config *nlp.Config) *Tagger {
	return &Tagger{
		client:       client,
		maxTokens:    max(config.MaxTokensPerRequest, 1),
		attempts:     max(config.ParseAttempts, 1),
		systemPrompt: buildSystemPrompt(),
		logger:       slog.Default().With("component", "openai-tagger"),
	}
}

// NewTagger creates a new tagger using the provided configuration.
//
// Returns nlp.Annotator interface to enforce abstraction.
func NewTagger(config *nlp.Config) (nlp.Annotator, error) {
	return newTagger(config)
}

// Annotate segments text into sentences and tokens, then tags the tokens
// with the model. Sentences are sent in groups whose token count stays
// within the configured budget; a single longer sentence is sent alone.
func (t *Tagger) Annotate(ctx context.Context, text string) (*core.Annotation, error) {
	ann := basic.Segment(text)

	for _, group := range t.groups(ann.Sentences) {
		if err := t.tagGroup(ctx, group); err != nil {
			return nil, err
		}
	}
	return ann, nil
}

// groups partitions sentences into consecutive runs within the token budget.
// The returned slices share backing storage with sentences.
func (t *Tagger) groups(sentences []core.Sentence) [][]core.Sentence {
	var out [][]core.Sentence
	start, count := 0, 0
	for i, s := range sentences {
		n := len(s.Tokens)
		if count > 0 && count+n > t.maxTokens {
			out = append(out, sentences[start:i])
			start, count = i, 0
		}
		count += n
	}
	if start < len(sentences) {
		out = append(out, sentences[start:])
	}
	return out
}

// tagGroup asks the model for the tags of one group and writes them into
// the group's tokens in place.
func (t *Tagger) tagGroup(ctx context.Context, group []core.Sentence) error {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(t.systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildTokenList(group))},
		},
	}

	var result tagging
	var lastErr error
	for attempt := 0; attempt < t.attempts; attempt++ {
		response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			t.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			lastErr = fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
			continue
		}

		responseText := repairJSON(stripFences(response.Choices[0].Content))
		result = tagging{}
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
			t.logger.Warn("error parsing tagger response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		t.logger.Error("failed to parse tagger response after retries", "err", lastErr)
		return lastErr
	}

	tokens := make([]*core.Token, 0, 64)
	for si := range group {
		for ti := range group[si].Tokens {
			tokens = append(tokens, &group[si].Tokens[ti])
		}
	}

	applied := 0
	for _, tt := range result.Tokens {
		if tt.I < 0 || tt.I >= len(tokens) {
			continue
		}
		tok := tokens[tt.I]
		tok.Lemma = strings.TrimSpace(tt.Lemma)
		tok.POS = strings.TrimSpace(tt.POS)
		tok.NER = strings.ToUpper(strings.TrimSpace(tt.NER))
		applied++
	}

	if applied < len(tokens) {
		t.logger.Debug("tagger skipped tokens", "tokens", len(tokens), "tagged", applied)
	}
	return nil
}
