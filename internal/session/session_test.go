package session

import (
	"errors"
	"testing"
	"time"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	issued, token, err := m.Issue(Session{UserID: "client-1", Name: "Alice", Role: RoleClient})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issued.ExpiresAt.IsZero() {
		t.Fatalf("expected expiry to be stamped")
	}

	got, err := m.Parse("Bearer " + token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "client-1" || got.Name != "Alice" || !got.IsClient() {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestManager_ParseRejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour)
	other := NewManager("other-secret", time.Hour)
	_, foreign, err := other.Issue(Session{UserID: "p-1", Role: RoleProvider})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, token := range []string{"", "   ", "not-a-jwt", foreign} {
		if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q) expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestManager_ParseExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, token, err := m.Issue(Session{UserID: "p-1", Role: RoleProvider})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.now = time.Now
	if _, err := m.Parse(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestManager_IssueRejectsUnknownRole(t *testing.T) {
	m := NewManager("secret", time.Hour)
	if _, _, err := m.Issue(Session{UserID: "u-1", Role: "guest"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, _, err := m.Issue(Session{Role: RoleClient}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for empty user, got %v", err)
	}
}

func TestManager_Refresh(t *testing.T) {
	m := NewManager("secret", time.Hour)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	s, _, err := m.Issue(Session{UserID: "c-1", Role: RoleClient})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.now = func() time.Time { return base.Add(30 * time.Minute) }
	refreshed, token, err := m.Refresh(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !refreshed.ExpiresAt.After(s.ExpiresAt) || token == "" {
		t.Fatalf("expected extended session, got %+v", refreshed)
	}

	m.now = func() time.Time { return base.Add(3 * time.Hour) }
	if _, _, err := m.Refresh(s); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}
