// Package chat is the stateful conversation shell around the assistant
// engine: it owns the message history, the open/minimized/closed state and
// the simulated typing delay. The engine itself stays pure; every user
// submission or action click is one independent pipeline run.
package chat

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtihani/portal/core/assistant"
)

var ErrSessionClosed = errors.New("conversation is closed")

type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateAwaiting  State = "awaiting-response"
	StateMinimized State = "minimized"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type Message struct {
	ID      string             `json:"id"`
	Sender  Sender             `json:"sender"`
	Text    string             `json:"text"`
	Actions []assistant.Action `json:"actions,omitempty"`
	SentAt  time.Time          `json:"sent_at"`
}

type Options struct {
	Role        assistant.Role
	Page        assistant.Page
	MaxQueryLen int           // input cap enforced before the engine is called
	MinLag      time.Duration // simulated typing window
	MaxLag      time.Duration
}

// Session is owned by exactly one conversation and is safe for concurrent
// use; rapid double-submits simply enqueue independent pipeline runs.
type Session struct {
	mu       sync.Mutex
	engine   *assistant.Engine
	opts     Options
	state    State
	greeted  bool
	messages []Message
	gen      int // bumped on Close; orphans any in-flight typing timer
	rnd      *rand.Rand

	afterFunc func(d time.Duration, f func()) // swappable in tests
}

func NewSession(engine *assistant.Engine, opts Options) *Session {
	if opts.MaxQueryLen <= 0 {
		opts.MaxQueryLen = 500
	}
	if opts.MinLag <= 0 {
		opts.MinLag = 400 * time.Millisecond
	}
	if opts.MaxLag < opts.MinLag {
		opts.MaxLag = opts.MinLag + 300*time.Millisecond
	}
	return &Session{
		engine:    engine,
		opts:      opts,
		state:     StateClosed,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Open opens (or restores) the conversation. The very first open triggers a
// single synthetic greeting run.
func (s *Session) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateClosed && s.state != StateMinimized {
		return
	}
	s.state = StateOpen
	if s.greeted {
		return
	}
	s.greeted = true
	dec := s.engine.Interpret("hello", s.opts.Role, s.opts.Page)
	s.scheduleReply(dec, s.gen)
}

func (s *Session) Minimize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateOpen || s.state == StateAwaiting {
		s.state = StateMinimized
	}
}

// Close ends the conversation; a late-arriving reply from an in-flight
// typing timer is dropped rather than applied to a no-longer-visible UI.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
	s.gen++
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPage follows the user's navigation so page-context help stays accurate.
func (s *Session) SetPage(page assistant.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Page = page
}

// Submit records the user's message, runs one pipeline invocation and
// returns its Decision. The assistant reply lands in the history after the
// simulated typing window.
func (s *Session) Submit(text string) (assistant.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return assistant.Decision{}, ErrSessionClosed
	}
	if len(text) > s.opts.MaxQueryLen {
		text = text[:s.opts.MaxQueryLen]
	}

	s.messages = append(s.messages, Message{
		ID:     uuid.New().String(),
		Sender: SenderUser,
		Text:   text,
		SentAt: time.Now().UTC(),
	})
	s.state = StateAwaiting

	dec := s.engine.Interpret(text, s.opts.Role, s.opts.Page)
	s.scheduleReply(dec, s.gen)
	return dec, nil
}

// HandleAction processes a clicked suggestion. Navigate actions return the
// route for the caller to follow; query actions re-enter the pipeline.
func (s *Session) HandleAction(act assistant.Action) (route string, err error) {
	if act.Kind == assistant.ActionNavigate {
		return act.Target, nil
	}
	_, err = s.Submit(act.Target)
	return "", err
}

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// scheduleReply appends the assistant reply after the typing window, unless
// the session was closed in the meantime. Callers hold s.mu.
func (s *Session) scheduleReply(dec assistant.Decision, gen int) {
	lag := s.opts.MinLag
	if spread := s.opts.MaxLag - s.opts.MinLag; spread > 0 {
		lag += time.Duration(s.rnd.Int63n(int64(spread)))
	}
	s.afterFunc(lag, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen || s.state == StateClosed {
			return
		}
		s.messages = append(s.messages, Message{
			ID:      uuid.New().String(),
			Sender:  SenderAssistant,
			Text:    dec.ResponseText,
			Actions: dec.Actions,
			SentAt:  time.Now().UTC(),
		})
		if s.state == StateAwaiting {
			s.state = StateOpen
		}
	})
}
