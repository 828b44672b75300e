package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/rentalhub/internal/domain"
	"github.com/yourorg/rentalhub/internal/security/auth"
)

type memUserRepo struct {
	nextID  int64
	byID    map[int64]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[int64]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range m.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestAuthService() (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	tokens := auth.NewTokenManager("test-secret", "rentalhub", time.Hour)
	return NewAuthService(repo, tokens, nil), repo
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	// Register
	user, err := s.Register(ctx, "alice@example.com", "Alice Smith", "555-0101", "Password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user id")
	}
	if user.Role != domain.RoleResident {
		t.Fatalf("expected resident role, got %s", user.Role)
	}

	// Duplicate email
	if _, err := s.Register(ctx, "alice@example.com", "Alice Again", "", "Password123"); err == nil {
		t.Fatalf("expected duplicate email error")
	}

	// Login ok
	logged, token, err := s.Login(ctx, "alice@example.com", "Password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token on login")
	}
	if logged.ID != user.ID {
		t.Fatalf("expected same user back")
	}

	// Login wrong password
	if _, _, err := s.Login(ctx, "alice@example.com", "Wrong"); err == nil {
		t.Fatalf("expected invalid credentials error")
	}

	// Login unknown email
	if _, _, err := s.Login(ctx, "nobody@example.com", "Password123"); err == nil {
		t.Fatalf("expected invalid credentials error")
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		fullName string
		password string
	}{
		{"missing email", "", "Bob", "Password123"},
		{"missing name", "bob@example.com", "", "Password123"},
		{"missing password", "bob@example.com", "Bob", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Register(ctx, tc.email, tc.fullName, "", tc.password); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	s, _ := newTestAuthService()
	ctx := context.Background()

	user, err := s.Register(ctx, "carol@example.com", "Carol", "", "Password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := s.CurrentUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if got.Email != "carol@example.com" {
		t.Fatalf("unexpected email %s", got.Email)
	}

	if _, err := s.CurrentUser(ctx, 9999); err != domain.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
