package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/prompt"
	"github.com/Veraticus/spendwise/internal/service"
)

const (
	// Persona is the system message for every chat completion.
	Persona = "You are a concise, friendly financial assistant inside a personal budgeting app. " +
		"Answer clearly and keep responses short."

	// DefaultInsightTimeout bounds how long Insight waits for a reply.
	DefaultInsightTimeout = 10 * time.Second
)

// Config holds the gateway's collaborators and limits. Zero values select defaults.
type Config struct {
	Credentials    service.CredentialStore
	Models         service.ModelStore
	Logger         *slog.Logger
	Clock          Clock
	Gemini         Backend
	OpenAI         Backend
	Gate           *ThrottleGate
	GeminiBaseURL  string
	OpenAIBaseURL  string
	MaxAttempts    int
	CallTimeout    time.Duration
	InsightTimeout time.Duration
	MinInterval    time.Duration
}

// Gateway turns prompts into replies from the configured AI providers.
// Every entry point returns display text and never an error.
type Gateway struct {
	credentials    service.CredentialStore
	models         service.ModelStore
	logger         *slog.Logger
	clock          Clock
	gemini         Backend
	openai         Backend
	gate           *ThrottleGate
	maxAttempts    int
	callTimeout    time.Duration
	insightTimeout time.Duration
}

// NewGateway builds a gateway from cfg.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.Credentials == nil {
		return nil, errors.New("credential store is required")
	}

	g := &Gateway{
		credentials:    cfg.Credentials,
		models:         cfg.Models,
		logger:         cfg.Logger,
		clock:          cfg.Clock,
		gemini:         cfg.Gemini,
		openai:         cfg.OpenAI,
		gate:           cfg.Gate,
		maxAttempts:    cfg.MaxAttempts,
		callTimeout:    cfg.CallTimeout,
		insightTimeout: cfg.InsightTimeout,
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.clock == nil {
		g.clock = RealClock()
	}
	if g.gemini == nil {
		g.gemini = NewGeminiBackend(cfg.GeminiBaseURL, nil)
	}
	if g.openai == nil {
		g.openai = NewOpenAIBackend(cfg.OpenAIBaseURL, nil)
	}
	if g.gate == nil {
		interval := cfg.MinInterval
		if interval == 0 {
			interval = DefaultMinInterval
		}
		g.gate = NewThrottleGate(g.clock, interval)
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = DefaultMaxAttempts
	}
	if g.callTimeout <= 0 {
		g.callTimeout = DefaultCallTimeout
	}
	if g.insightTimeout <= 0 {
		g.insightTimeout = DefaultInsightTimeout
	}

	return g, nil
}

// CallOption overrides per-call settings.
type CallOption func(*callOptions)

type callOptions struct {
	credential string
	model      string
}

// WithCredential uses credential instead of the stored one.
func WithCredential(credential string) CallOption {
	return func(o *callOptions) {
		o.credential = credential
	}
}

// WithModel overrides the model preference. OpenAI credentials ignore it.
func WithModel(model string) CallOption {
	return func(o *callOptions) {
		o.model = model
	}
}

// Complete answers text with the assistant persona as system message.
func (g *Gateway) Complete(ctx context.Context, text string, opts ...CallOption) string {
	return g.dispatch(ctx, Persona, text, NoResponseMessage, opts)
}

// CompleteWithContext answers text with a system message made of the persona
// followed by a summary of snapshot.
func (g *Gateway) CompleteWithContext(ctx context.Context, snapshot model.Snapshot, text string, opts ...CallOption) string {
	system := Persona + "\n\n" + prompt.BuildSummary(snapshot)
	return g.dispatch(ctx, system, text, NoResponseMessage, opts)
}

// Insight asks for three short tips about snapshot. It stops waiting after the
// insight timeout and cancels the outstanding request.
func (g *Gateway) Insight(ctx context.Context, snapshot model.Snapshot, opts ...CallOption) (reply string) {
	defer g.recoverReply(&reply)

	o := applyOptions(opts)
	credential := g.resolveCredential(ctx, o)
	if credential == "" {
		return MissingCredentialMessage
	}

	user := prompt.BuildInsight(snapshot)
	if !g.gate.TryAdmit() {
		g.logger.Debug("insight rejected, gateway busy")
		return BusyMessage
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan string, 1)
	go func() {
		defer g.gate.Release()
		done <- g.execute(runCtx, credential, "", user, o.model, NoInsightMessage)
	}()

	select {
	case r := <-done:
		return r
	case <-g.clock.After(g.insightTimeout):
		g.logger.Warn("insight timed out", "timeout", g.insightTimeout)
		return TimeoutMessage
	case <-ctx.Done():
		return TimeoutMessage
	}
}

// Busy reports whether a call currently holds the throttle gate.
func (g *Gateway) Busy() bool {
	return g.gate.Busy()
}

func (g *Gateway) dispatch(ctx context.Context, system, user, emptyMessage string, opts []CallOption) (reply string) {
	defer g.recoverReply(&reply)

	o := applyOptions(opts)
	credential := g.resolveCredential(ctx, o)
	if credential == "" {
		return MissingCredentialMessage
	}

	if !g.gate.TryAdmit() {
		g.logger.Debug("request rejected, gateway busy")
		return BusyMessage
	}
	defer g.gate.Release()

	return g.execute(ctx, credential, system, user, o.model, emptyMessage)
}

func (g *Gateway) execute(ctx context.Context, credential, system, user, override, emptyMessage string) (reply string) {
	defer g.recoverReply(&reply)
	return g.render(g.run(ctx, credential, system, user, override), emptyMessage)
}

// run routes the request and executes the retrying, deadline-bounded attempt sequence.
func (g *Gateway) run(ctx context.Context, credential, system, user, override string) Outcome {
	provider := ClassifyCredential(credential)

	var preference string
	if provider == ProviderGemini && override == "" {
		preference = g.resolvePreference(ctx)
	}
	req := Request{
		Credential: credential,
		Model:      ResolveModel(provider, override, preference),
		System:     system,
		User:       user,
	}

	var backend Backend
	switch provider {
	case ProviderGemini:
		backend = g.gemini
	case ProviderOpenAI:
		backend = g.openai
	default:
		return FailureOutcome(FailureProvider, fmt.Sprintf("unsupported provider %s", provider))
	}

	logger := g.logger.With("provider", provider.String(), "model", req.Model)
	logger.Debug("dispatching request")

	return withRetry(ctx, g.clock, logger, g.maxAttempts, func(ctx context.Context) Outcome {
		return raceWithTimeout(ctx, g.clock, g.callTimeout, func(ctx context.Context) Outcome {
			return backend.Generate(ctx, req)
		})
	})
}

// render converts an outcome to display text.
func (g *Gateway) render(out Outcome, emptyMessage string) string {
	switch out.Kind {
	case OutcomeText:
		return out.Text
	case OutcomeEmpty:
		if out.Cause == FailureRateLimited {
			return QuotaMessage
		}
		return emptyMessage
	case OutcomeFailure:
	}

	kind := out.FailureKind()
	var msg string
	if out.Failure != nil {
		msg = out.Failure.Message
	}
	g.logger.Warn("AI request failed", "kind", kind.String(), "error", msg)
	return ClassifyFailure(kind, msg)
}

func (g *Gateway) resolveCredential(ctx context.Context, o callOptions) string {
	if o.credential != "" {
		return o.credential
	}
	credential, err := g.credentials.Get(ctx)
	if err != nil {
		g.logger.Warn("failed to load credential", "error", err)
		return ""
	}
	return credential
}

func (g *Gateway) resolvePreference(ctx context.Context) string {
	if g.models == nil {
		return ""
	}
	name, err := g.models.Get(ctx)
	if err != nil {
		g.logger.Warn("failed to load model preference", "error", err)
		return ""
	}
	return name
}

func (g *Gateway) recoverReply(reply *string) {
	if r := recover(); r != nil {
		g.logger.Error("gateway panic recovered", "panic", r)
		*reply = UnexpectedMessage
	}
}

func applyOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
