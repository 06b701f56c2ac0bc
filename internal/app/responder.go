package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"syncpad/internal/ai"
	"syncpad/internal/model"
)

const responderSystemPrompt = "You are a concise and helpful AI assistant in a shared chat room. Answer the latest question using the conversation so far."

// Terminal texts written into the row when streaming fails. Errors reuse the
// normal text field on purpose: consumers only ever watch text plus
// is_complete, never a separate error channel.
const (
	errTextAuth      = "AI error: authentication with the model provider failed."
	errTextRateLimit = "AI error: rate limited by the model provider. Try again soon."
	errTextGeneric   = "AI error: the response could not be generated."
	errTextEmpty     = "The model returned an empty response."
)

// Responder drives one AI response row through its life:
// pending (empty, incomplete) -> streaming (text grows monotonically via
// full-replacement patches) -> complete (terminal, for success and failure
// alike). One task owns one row; nothing else writes to it meanwhile.
type Responder struct {
	messages   MessageStore
	cache      MessageCache
	client     *ai.OpenAICompatibleClient
	llm        ai.ChatConfig
	maxContext int
	timeout    time.Duration
	logger     *zap.Logger
}

func NewResponder(
	messages MessageStore,
	cache MessageCache,
	client *ai.OpenAICompatibleClient,
	llm ai.ChatConfig,
	maxContext int,
	timeout time.Duration,
	logger *zap.Logger,
) *Responder {
	if maxContext <= 0 {
		maxContext = 20
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		messages:   messages,
		cache:      cache,
		client:     client,
		llm:        llm,
		maxContext: maxContext,
		timeout:    timeout,
		logger:     logger.Named("Responder"),
	}
}

// Respond executes one ask task to its terminal state. It returns an error
// only for infrastructure failures the caller may want to retry; provider
// failures are absorbed into the row and count as handled.
func (r *Responder) Respond(ctx context.Context, task model.AskTask) error {
	row, err := r.messages.GetByID(task.MessageID)
	if err != nil {
		return err
	}
	if row == nil {
		// Row already deleted (moderation or cleanup); nothing to stream into.
		r.logger.Info("ask task targets missing row, skipping", zap.Uint("message_id", task.MessageID))
		return nil
	}
	if row.IsComplete {
		// Redelivered task for a finished row; the terminal state never moves.
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt, err := r.buildPrompt(task)
	if err != nil {
		r.terminate(ctx, task, errTextGeneric)
		return err
	}

	cfg := r.llm
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	var accumulated strings.Builder
	_, streamErr := r.client.StreamComplete(ctx, cfg, prompt, func(chunk string) error {
		accumulated.WriteString(chunk)
		// Always write the full text so far, never the delta: a replayed or
		// late patch then rewrites the same content instead of appending twice.
		return r.messages.UpdateText(task.MessageID, accumulated.String())
	})
	if streamErr != nil {
		r.logger.Warn("stream failed",
			zap.Uint("message_id", task.MessageID),
			zap.Error(streamErr),
		)
		r.terminate(ctx, task, classifyProviderError(streamErr))
		return nil
	}

	final := strings.TrimSpace(accumulated.String())
	if final == "" {
		r.terminate(ctx, task, errTextEmpty)
		return nil
	}

	if err := r.messages.MarkComplete(task.MessageID); err != nil {
		return err
	}
	r.invalidate(ctx, task.PageID)
	return nil
}

// Fail seals a task's row with the generic error text. The worker calls it
// when a task is dropped after its last delivery, so the row still reaches a
// terminal state instead of staying pending forever.
func (r *Responder) Fail(ctx context.Context, task model.AskTask) {
	row, err := r.messages.GetByID(task.MessageID)
	if err != nil || row == nil || row.IsComplete {
		return
	}
	r.terminate(ctx, task, errTextGeneric)
}

// terminate writes a final text and seals the row. Used for every failure
// path so the row always reaches the same terminal state as success.
func (r *Responder) terminate(ctx context.Context, task model.AskTask, text string) {
	if err := r.messages.UpdateText(task.MessageID, text); err != nil {
		r.logger.Warn("write terminal text failed", zap.Uint("message_id", task.MessageID), zap.Error(err))
	}
	if err := r.messages.MarkComplete(task.MessageID); err != nil {
		r.logger.Warn("mark complete failed", zap.Uint("message_id", task.MessageID), zap.Error(err))
	}
	r.invalidate(ctx, task.PageID)
}

// buildPrompt assembles the provider conversation: system prompt, recent
// completed page messages, then the asking user's prompt.
func (r *Responder) buildPrompt(task model.AskTask) ([]ai.ChatMessage, error) {
	recent, err := r.messages.ListRecentByPageID(task.PageID, r.maxContext)
	if err != nil {
		return nil, err
	}

	prompt := make([]ai.ChatMessage, 0, len(recent)+2)
	prompt = append(prompt, ai.ChatMessage{Role: "system", Content: responderSystemPrompt})
	for _, item := range recent {
		if item.ID == task.MessageID || !item.IsComplete || strings.TrimSpace(item.Text) == "" {
			continue
		}
		role := "user"
		if item.Sender == "ai" {
			role = "assistant"
		}
		prompt = append(prompt, ai.ChatMessage{Role: role, Content: item.Text})
	}
	prompt = append(prompt, ai.ChatMessage{Role: "user", Content: task.Prompt})
	return prompt, nil
}

// classifyProviderError maps a provider failure to the short user-visible
// text stored in the row, distinguishing auth failures and rate limiting.
func classifyProviderError(err error) string {
	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case 401, 403:
			return errTextAuth
		case 429:
			return errTextRateLimit
		default:
			return errTextGeneric
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "401"):
		return errTextAuth
	case strings.Contains(msg, "429"):
		return errTextRateLimit
	default:
		return errTextGeneric
	}
}

func (r *Responder) invalidate(ctx context.Context, pageID uint) {
	if r.cache == nil {
		return
	}
	_ = r.cache.MarkDirty(ctx, pageID)
	_ = r.cache.DeleteMessages(ctx, pageID)
}
