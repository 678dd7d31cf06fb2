package service

import (
	"context"
	"errors"
	"time"

	"grantrates-backend/dialogue"
	"grantrates-backend/logging"
	"grantrates-backend/models"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrSessionNotFound is returned for unknown or expired chat sessions
var ErrSessionNotFound = errors.New("chat session not found")

const (
	defaultSessionTTL = 30 * time.Minute
	minCleanupPeriod  = time.Minute
)

// ChatService owns the live help-chat sessions. Idle sessions expire after
// the session TTL and are closed on eviction.
type ChatService struct {
	library     *dialogue.Library
	sessions    *cache.Cache
	sessionTTL  time.Duration
	typingDelay time.Duration
	scheduler   dialogue.Scheduler
	log         *log.Logger
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithLibrary sets the dialogue trees
func ChatWithLibrary(lib *dialogue.Library) ChatServiceOption {
	return func(s *ChatService) {
		s.library = lib
	}
}

// ChatWithSessionTTL sets how long an untouched session lives
func ChatWithSessionTTL(ttl time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// ChatWithTypingDelay sets the delay between auto-advanced messages
func ChatWithTypingDelay(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		s.typingDelay = d
	}
}

// ChatWithScheduler replaces the timer used for delayed messages
func ChatWithScheduler(fn dialogue.Scheduler) ChatServiceOption {
	return func(s *ChatService) {
		s.scheduler = fn
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		sessionTTL:  defaultSessionTTL,
		typingDelay: dialogue.DefaultTypingDelay,
		log:         logging.WithPrefix("chat"),
	}
	for _, opt := range opts {
		opt(s)
	}

	cleanup := s.sessionTTL / 2
	if cleanup < minCleanupPeriod {
		cleanup = minCleanupPeriod
	}
	s.sessions = cache.New(s.sessionTTL, cleanup)
	s.sessions.OnEvicted(func(key string, value interface{}) {
		if session, ok := value.(*dialogue.Session); ok {
			session.Close()
			s.log.Debug("Session closed", "session", key)
		}
	})
	return s
}

// StartSessionRequest represents a request to open a chat
type StartSessionRequest struct {
	Language models.Language
}

// SessionRequest identifies an existing chat session
type SessionRequest struct {
	ID uuid.UUID
}

// SelectOptionRequest represents an answer to the current question
type SelectOptionRequest struct {
	ID     uuid.UUID
	Option int
}

// ChangeLanguageRequest represents a language switch inside a chat
type ChangeLanguageRequest struct {
	ID       uuid.UUID
	Language models.Language
}

// SessionResult carries the session state after an operation
type SessionResult struct {
	Snapshot models.DialogueSnapshot
}

// StartSession creates a session and emits the opening message
func (s *ChatService) StartSession(ctx context.Context, req StartSessionRequest) (*SessionResult, error) {
	if s.library == nil {
		return nil, errors.New("dialogue library not set")
	}
	lang := req.Language
	if lang == "" {
		lang = models.DefaultLanguage
	}

	opts := []dialogue.SessionOption{dialogue.WithTypingDelay(s.typingDelay)}
	if s.scheduler != nil {
		opts = append(opts, dialogue.WithScheduler(s.scheduler))
	}
	session := dialogue.NewSession(uuid.New(), s.library, opts...)
	if err := session.Initialize(lang); err != nil {
		return nil, err
	}

	s.sessions.Set(session.ID().String(), session, cache.DefaultExpiration)
	s.log.Debug("Session started", "session", session.ID(), "language", lang)
	return &SessionResult{Snapshot: session.Snapshot()}, nil
}

// GetSession returns the current state of a session
func (s *ChatService) GetSession(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	session, err := s.lookup(req.ID)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Snapshot: session.Snapshot()}, nil
}

// SelectOption answers the session's current question
func (s *ChatService) SelectOption(ctx context.Context, req SelectOptionRequest) (*SessionResult, error) {
	return s.apply(req.ID, func(session *dialogue.Session) error {
		return session.SelectOption(req.Option)
	})
}

// GoBack steps the session back one node
func (s *ChatService) GoBack(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	return s.apply(req.ID, (*dialogue.Session).GoBack)
}

// Restart returns the session to its first message
func (s *ChatService) Restart(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	return s.apply(req.ID, (*dialogue.Session).Restart)
}

// ChangeLanguage restarts the session in another language
func (s *ChatService) ChangeLanguage(ctx context.Context, req ChangeLanguageRequest) (*SessionResult, error) {
	return s.apply(req.ID, func(session *dialogue.Session) error {
		return session.SetLanguage(req.Language)
	})
}

// EndSession discards a session
func (s *ChatService) EndSession(ctx context.Context, req SessionRequest) error {
	key := req.ID.String()
	if _, ok := s.sessions.Get(key); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(key)
	return nil
}

// ActiveSessions returns the number of live sessions
func (s *ChatService) ActiveSessions() int {
	return s.sessions.ItemCount()
}

func (s *ChatService) apply(id uuid.UUID, op func(*dialogue.Session) error) (*SessionResult, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		if errors.Is(err, dialogue.ErrSessionClosed) {
			s.sessions.Delete(id.String())
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &SessionResult{Snapshot: session.Snapshot()}, nil
}

// lookup finds a session and extends its lifetime. A session closed by an
// eviction that raced with an earlier lookup is purged instead.
func (s *ChatService) lookup(id uuid.UUID) (*dialogue.Session, error) {
	key := id.String()
	value, ok := s.sessions.Get(key)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := value.(*dialogue.Session)
	if session.Closed() {
		s.sessions.Delete(key)
		return nil, ErrSessionNotFound
	}
	s.sessions.Set(key, session, cache.DefaultExpiration)
	return session, nil
}
