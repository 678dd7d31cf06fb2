package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"grantrates-backend/dialogue"
	"grantrates-backend/models"

	"github.com/google/uuid"
)

const testTree = `
start:
  message: "Hello"
  options:
    - label: "More"
      next: more
more:
  message: "Details"
  next: done
done:
  message: "Done"
`

func testLibrary(t *testing.T) *dialogue.Library {
	t.Helper()
	tree, err := dialogue.ParseTree(models.LanguageEnglish, []byte(testTree))
	if err != nil {
		t.Fatal(err)
	}
	lib, err := dialogue.NewLibrary(tree)
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func newTestChatService(t *testing.T, opts ...ChatServiceOption) *ChatService {
	t.Helper()
	opts = append([]ChatServiceOption{
		ChatWithLibrary(testLibrary(t)),
		ChatWithTypingDelay(0),
	}, opts...)
	return NewChatService(opts...)
}

func TestChatSessionLifecycle(t *testing.T) {
	svc := newTestChatService(t)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, StartSessionRequest{})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	id := started.Snapshot.SessionID
	if started.Snapshot.Language != models.DefaultLanguage || len(started.Snapshot.Transcript) != 1 {
		t.Errorf("snapshot = %+v", started.Snapshot)
	}
	if svc.ActiveSessions() != 1 {
		t.Errorf("ActiveSessions() = %d", svc.ActiveSessions())
	}

	selected, err := svc.SelectOption(ctx, SelectOptionRequest{ID: id, Option: 0})
	if err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if selected.Snapshot.State != models.DialogueTerminal || len(selected.Snapshot.Transcript) != 4 {
		t.Errorf("snapshot = %+v", selected.Snapshot)
	}

	back, err := svc.GoBack(ctx, SessionRequest{ID: id})
	if err != nil {
		t.Fatalf("GoBack() error = %v", err)
	}
	if back.Snapshot.CurrentNodeID != "more" {
		t.Errorf("after GoBack current = %q", back.Snapshot.CurrentNodeID)
	}

	restarted, err := svc.Restart(ctx, SessionRequest{ID: id})
	if err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if len(restarted.Snapshot.Transcript) != 1 {
		t.Errorf("transcript after restart = %d entries", len(restarted.Snapshot.Transcript))
	}

	changed, err := svc.ChangeLanguage(ctx, ChangeLanguageRequest{ID: id, Language: models.LanguageSpanish})
	if err != nil {
		t.Fatalf("ChangeLanguage() error = %v", err)
	}
	if changed.Snapshot.Language != models.LanguageSpanish {
		t.Errorf("language = %s", changed.Snapshot.Language)
	}

	if err := svc.EndSession(ctx, SessionRequest{ID: id}); err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, SessionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() after end error = %v", err)
	}
	if err := svc.EndSession(ctx, SessionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second EndSession() error = %v", err)
	}
}

func TestChatUnknownSession(t *testing.T) {
	svc := newTestChatService(t)
	ctx := context.Background()
	id := uuid.New()

	if _, err := svc.GetSession(ctx, SessionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v", err)
	}
	if _, err := svc.SelectOption(ctx, SelectOptionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("SelectOption() error = %v", err)
	}
}

func TestChatInvalidOption(t *testing.T) {
	svc := newTestChatService(t)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, StartSessionRequest{Language: models.LanguageEnglish})
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.SelectOption(ctx, SelectOptionRequest{ID: started.Snapshot.SessionID, Option: 5})
	if !errors.Is(err, dialogue.ErrInvalidOption) {
		t.Errorf("SelectOption() error = %v, want ErrInvalidOption", err)
	}
}

func TestChatSessionExpires(t *testing.T) {
	svc := newTestChatService(t, ChatWithSessionTTL(20*time.Millisecond))
	ctx := context.Background()

	started, err := svc.StartSession(ctx, StartSessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := svc.GetSession(ctx, SessionRequest{ID: started.Snapshot.SessionID}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() after TTL error = %v", err)
	}
}

func TestChatClosedSessionIsPurged(t *testing.T) {
	svc := newTestChatService(t)
	ctx := context.Background()

	started, err := svc.StartSession(ctx, StartSessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	id := started.Snapshot.SessionID
	value, ok := svc.sessions.Get(id.String())
	if !ok {
		t.Fatal("session not stored")
	}
	// an eviction closed the session after a lookup had already fetched it
	// and stored it again
	value.(*dialogue.Session).Close()

	if _, err := svc.GetSession(ctx, SessionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession() error = %v, want ErrSessionNotFound", err)
	}
	if n := svc.ActiveSessions(); n != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", n)
	}
	if _, err := svc.Restart(ctx, SessionRequest{ID: id}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Restart() error = %v, want ErrSessionNotFound", err)
	}
}

func TestChatRequiresLibrary(t *testing.T) {
	svc := NewChatService()
	if _, err := svc.StartSession(context.Background(), StartSessionRequest{}); err == nil {
		t.Error("StartSession() without library succeeded")
	}
}
