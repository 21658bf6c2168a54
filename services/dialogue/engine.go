package dialogue

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"greengarden/models"
	"greengarden/services/intelligence"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultSuggestionCount = 5
	DefaultDaysAhead       = 7
	DefaultReadyEstimate   = "30 minutes"
	DefaultHistoryLimit    = 100

	recordTimeout = 5 * time.Second
)

// ApologyText is returned when a message could not be processed.
const ApologyText = "I'm sorry, I encountered an error processing your request. Please try again."

// Error codes set on ChatResponse.Error.
const (
	ErrCodeProcessing = "processing_failed"
	ErrCodeOrder      = "order_failed"
	ErrCodeBooking    = "booking_failed"
)

// ProcessingError wraps an unexpected failure while handling a message,
// including recovered panics.
type ProcessingError struct {
	SessionID string
	Err       error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("session %s: %v", e.SessionID, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// Deps are the collaborators an Engine drives. Recorder may be nil.
type Deps struct {
	Classifier   intelligence.Classifier
	Matcher      ItemMatcher
	Availability Availability
	Reservations Reservations
	Orders       Orders
	Recorder     TurnRecorder
	Store        SessionStore
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRand sets the random source used to pick response variants.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithRestaurant(r Restaurant) Option {
	return func(e *Engine) { e.restaurant = r }
}

func WithSuggestionCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.suggestionCount = n
		}
	}
}

// WithDaysAhead sets how many days of availability are offered.
func WithDaysAhead(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.daysAhead = n
		}
	}
}

func WithReadyEstimate(s string) Option {
	return func(e *Engine) {
		if s != "" {
			e.readyEstimate = s
		}
	}
}

// WithHistoryLimit caps the turns kept per session. Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.historyLimit = n }
}

// Engine runs the conversation state machine. It does not serialize access to a
// session: callers must not process two messages for the same session id at once.
type Engine struct {
	classifier   intelligence.Classifier
	matcher      ItemMatcher
	availability Availability
	reservations Reservations
	orders       Orders
	recorder     TurnRecorder
	store        SessionStore

	logger          *zap.Logger
	rng             *rand.Rand
	now             func() time.Time
	restaurant      Restaurant
	responses       *Responder
	suggestionCount int
	daysAhead       int
	readyEstimate   string
	historyLimit    int

	pending sync.WaitGroup
}

// NewEngine wires an Engine. Every dependency except the recorder is required.
func NewEngine(deps Deps, opts ...Option) (*Engine, error) {
	switch {
	case deps.Classifier == nil:
		return nil, errors.New("dialogue: classifier is required")
	case deps.Matcher == nil:
		return nil, errors.New("dialogue: item matcher is required")
	case deps.Availability == nil:
		return nil, errors.New("dialogue: availability is required")
	case deps.Reservations == nil:
		return nil, errors.New("dialogue: reservations are required")
	case deps.Orders == nil:
		return nil, errors.New("dialogue: orders are required")
	case deps.Store == nil:
		return nil, errors.New("dialogue: session store is required")
	}

	e := &Engine{
		classifier:      deps.Classifier,
		matcher:         deps.Matcher,
		availability:    deps.Availability,
		reservations:    deps.Reservations,
		orders:          deps.Orders,
		recorder:        deps.Recorder,
		store:           deps.Store,
		logger:          zap.NewNop(),
		now:             time.Now,
		restaurant:      DefaultRestaurant(),
		suggestionCount: DefaultSuggestionCount,
		daysAhead:       DefaultDaysAhead,
		readyEstimate:   DefaultReadyEstimate,
		historyLimit:    DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.responses = NewResponder(e.restaurant, e.rng)
	return e, nil
}

// ProcessMessage handles one user message and returns the reply together with the
// session id, which is generated when sessionID is empty. Failures never escape:
// they become an apology reply and the session keeps its previous state.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, text string) models.ChatReply {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	now := e.now()

	prior, err := e.store.Get(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, ErrSessionNotFound):
		prior = NewSession(sessionID, now)
	case errors.Is(err, ErrSessionCorrupt):
		e.logger.Warn("Discarding corrupt session", zap.String("sessionID", sessionID), zap.Error(err))
		prior = NewSession(sessionID, now)
	default:
		return e.fail(ctx, nil, sessionID, text, &ProcessingError{SessionID: sessionID, Err: fmt.Errorf("load session: %w", err)})
	}

	working := prior.Clone()
	resp, cls, err := e.dispatch(ctx, working, text)
	if err != nil {
		return e.fail(ctx, prior, sessionID, text, err)
	}

	working.appendTurn(Turn{
		User:       text,
		Intent:     cls.Intent,
		Confidence: cls.Confidence,
		Bot:        resp.Text,
		At:         now,
	}, e.historyLimit)
	if err := e.store.Save(ctx, working); err != nil {
		e.logger.Error("Failed to save session", zap.String("sessionID", sessionID), zap.Error(err))
	}
	e.recordTurn(sessionID, text, resp.Text)

	return models.ChatReply{Response: resp, SessionID: sessionID}
}

// EndSession forgets a session.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}

// Catalog returns the menu the engine orders from.
func (e *Engine) Catalog() []models.MenuItem {
	return e.matcher.Catalog()
}

// Wait blocks until every queued turn recording has finished.
func (e *Engine) Wait() {
	e.pending.Wait()
}

func (e *Engine) dispatch(ctx context.Context, s *Session, text string) (resp models.ChatResponse, cls intelligence.Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProcessingError{SessionID: s.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	cls = e.classifier.Classify(text)
	e.logger.Debug("Classified message",
		zap.String("sessionID", s.ID),
		zap.String("state", s.State.String()),
		zap.String("intent", string(cls.Intent)),
		zap.Float64("confidence", cls.Confidence),
	)
	m := message{
		text:     text,
		lower:    strings.ToLower(text),
		intent:   cls.Intent,
		entities: cls.Entities,
	}

	if oc, ok := s.Ordering(); ok {
		resp, err = e.handleOrdering(ctx, s, oc, m)
	} else if bc, ok := s.Booking(); ok {
		resp, err = e.handleBooking(ctx, s, bc, m)
	} else if s.State == StateInitial {
		resp, err = e.handleInitial(ctx, s, m)
	} else {
		resp, err = e.handleFallback(ctx, s, m)
	}
	if err != nil {
		err = &ProcessingError{SessionID: s.ID, Err: err}
	}
	return resp, cls, err
}

func (e *Engine) fail(ctx context.Context, prior *Session, sessionID, text string, err error) models.ChatReply {
	e.logger.Error("Failed to process message", zap.String("sessionID", sessionID), zap.Error(err))

	if prior != nil {
		s := prior.Clone()
		s.appendTurn(Turn{User: text, Bot: ApologyText, At: e.now()}, e.historyLimit)
		if saveErr := e.store.Save(ctx, s); saveErr != nil {
			e.logger.Error("Failed to save session", zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
	}
	e.recordTurn(sessionID, text, ApologyText)

	return models.ChatReply{
		Response: models.ChatResponse{
			Text:   ApologyText,
			Error:  ErrCodeProcessing,
			Detail: err.Error(),
		},
		SessionID: sessionID,
	}
}

func (e *Engine) recordTurn(sessionID, userText, botText string) {
	if e.recorder == nil {
		return
	}
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := e.recorder.RecordTurn(ctx, sessionID, userText, botText); err != nil {
			e.logger.Warn("Failed to record conversation turn", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()
}

// message is one classified user message.
type message struct {
	text     string
	lower    string
	intent   intelligence.Intent
	entities intelligence.Entities
}

// mentions reports whether the message contains any phrase. Multi-word phrases match
// as substrings and single words must match a whole word.
func (m message) mentions(phrases ...string) bool {
	var words map[string]bool
	for _, p := range phrases {
		if strings.Contains(p, " ") {
			if strings.Contains(m.lower, p) {
				return true
			}
			continue
		}
		if words == nil {
			words = make(map[string]bool)
			for _, w := range strings.FieldsFunc(m.lower, isWordBreak) {
				words[w] = true
			}
		}
		if words[p] {
			return true
		}
	}
	return false
}

// contains reports whether any phrase appears anywhere in the message.
func (m message) contains(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(m.lower, p) {
			return true
		}
	}
	return false
}

func isWordBreak(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
}
