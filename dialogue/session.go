package dialogue

import (
	"errors"
	"slices"
	"sync"
	"time"

	"grantrates-backend/models"

	"github.com/google/uuid"
)

// DefaultTypingDelay separates consecutive auto-advanced messages
const DefaultTypingDelay = 500 * time.Millisecond

var (
	ErrNotAwaitingInput = errors.New("dialogue is not waiting for an answer")
	ErrInvalidOption    = errors.New("dialogue option out of range")
	ErrSessionClosed    = errors.New("dialogue session is closed")
)

// Scheduler runs fn once after d. It must not call fn before returning.
// The default is time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Session is one user's walk through a dialogue tree. All methods are safe
// for concurrent use; delayed advances run on the scheduler's goroutine.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	library  *Library
	delay    time.Duration
	schedule Scheduler

	lang        models.Language
	tree        *Tree
	state       models.DialogueState
	current     string
	history     []string
	transcript  []models.TranscriptEntry
	initialized bool
	closed      bool

	// generation is bumped by every reset; pending advances from an older
	// generation are dropped
	generation uint64
}

// SessionOption is a functional option for Session
type SessionOption func(*Session)

// WithTypingDelay sets the pause before each auto-advanced message. Zero
// advances synchronously.
func WithTypingDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc, mainly for tests
func WithScheduler(fn Scheduler) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.schedule = fn
		}
	}
}

// NewSession creates an idle session. Call Initialize to emit the first message.
func NewSession(id uuid.UUID, library *Library, opts ...SessionOption) *Session {
	s := &Session{
		id:         id,
		library:    library,
		delay:      DefaultTypingDelay,
		schedule:   afterFunc,
		lang:       models.DefaultLanguage,
		state:      models.DialogueIdle,
		history:    []string{},
		transcript: []models.TranscriptEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Initialize starts the conversation in lang. Calling it again with the same
// language is a no-op, so the opening message is never emitted twice.
func (s *Session) Initialize(lang models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.initialized && s.lang == lang {
		return nil
	}
	s.reset(lang)
	return nil
}

// Restart returns to the start node with a fresh transcript
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.reset(s.lang)
	return nil
}

// SetLanguage restarts the conversation on another language's tree. The
// previous transcript is discarded.
func (s *Session) SetLanguage(lang models.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.initialized && s.lang == lang {
		return nil
	}
	s.reset(lang)
	return nil
}

// SelectOption answers the current node with the option at index
func (s *Session) SelectOption(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.state != models.DialogueAwaitingInput {
		return ErrNotAwaitingInput
	}
	node, _ := s.tree.Node(s.current)
	if index < 0 || index >= len(node.Options) {
		return ErrInvalidOption
	}
	opt := node.Options[index]

	s.transcript = append(s.transcript, models.TranscriptEntry{
		Sender:  models.SenderUser,
		Message: models.Message{Text: opt.Label},
	})
	s.history = append(s.history, s.current)
	s.advance(opt.Next)
	return nil
}

// GoBack returns to the most recent node in the history and repeats its
// message. With fewer than two entries it does nothing.
func (s *Session) GoBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if len(s.history) < 2 {
		return nil
	}

	s.generation++
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	node, _ := s.tree.Node(prev)
	s.current = prev
	s.transcript = append(s.transcript, models.TranscriptEntry{
		Sender:     models.SenderBot,
		NodeID:     prev,
		Message:    node.Message,
		Emphasized: len(node.Options) == 0,
	})
	if len(node.Options) > 0 {
		s.state = models.DialogueAwaitingInput
	} else {
		s.state = models.DialogueTerminal
	}
	return nil
}

// Close ends the session and drops any pending advance
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
}

// Closed reports whether Close has been called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot returns a copy of the session state for rendering
func (s *Session) Snapshot() models.DialogueSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := []models.DialogueOption{}
	if s.state == models.DialogueAwaitingInput {
		node, _ := s.tree.Node(s.current)
		options = slices.Clone(node.Options)
	}
	return models.DialogueSnapshot{
		SessionID:     s.id,
		Language:      s.lang,
		State:         s.state,
		CurrentNodeID: s.current,
		Options:       options,
		CanGoBack:     len(s.history) >= 2,
		History:       slices.Clone(s.history),
		Transcript:    slices.Clone(s.transcript),
	}
}

// reset must be called with mu held
func (s *Session) reset(lang models.Language) {
	s.generation++
	s.lang = lang
	s.tree = s.library.Tree(lang)
	s.initialized = true
	s.history = []string{}
	s.transcript = []models.TranscriptEntry{}
	s.advance(RootNodeID)
}

// advance emits node id and follows its next link. Must be called with mu held.
func (s *Session) advance(id string) {
	for {
		node, _ := s.tree.Node(id)
		s.current = id
		s.transcript = append(s.transcript, models.TranscriptEntry{
			Sender:  models.SenderBot,
			NodeID:  id,
			Message: node.Message,
		})

		switch {
		case node.Next != "":
			s.history = append(s.history, id)
			s.state = models.DialogueAdvancing
			if s.delay > 0 {
				s.scheduleAdvance(node.Next)
				return
			}
			id = node.Next
		case len(node.Options) > 0:
			s.state = models.DialogueAwaitingInput
			return
		default:
			s.state = models.DialogueTerminal
			return
		}
	}
}

func (s *Session) scheduleAdvance(next string) {
	gen := s.generation
	s.schedule(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || s.generation != gen {
			return
		}
		s.advance(next)
	})
}
