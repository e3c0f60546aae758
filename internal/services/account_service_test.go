package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"sailbook/internal/models"
	"sailbook/internal/repository"
	"sailbook/internal/utils"
)

// map-backed account repo stub
type mockAccountRepo struct {
	accounts map[string]*models.Account
	saves    int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*models.Account)}
}

func (m *mockAccountRepo) Get(_ context.Context, id string) (*models.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAccountRepo) Save(_ context.Context, account *models.Account) error {
	if account.Rev == 0 {
		account.Rev = 1
	} else {
		stored, ok := m.accounts[account.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if stored.Rev != account.Rev {
			return repository.ErrConflict
		}
		account.Rev++
	}
	cp := *account
	m.accounts[account.ID] = &cp
	m.saves++
	return nil
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountRepo) LoadAll(_ context.Context) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range m.accounts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockAccountRepo) find(match func(*models.Account) bool) []*models.Account {
	var out []*models.Account
	for _, a := range m.accounts {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

func (m *mockAccountRepo) FindByName(_ context.Context, name string) ([]*models.Account, error) {
	return m.find(func(a *models.Account) bool {
		return strings.EqualFold(a.AccountName, name)
	}), nil
}

func (m *mockAccountRepo) FindByResetTokenHash(_ context.Context, hash string) ([]*models.Account, error) {
	return m.find(func(a *models.Account) bool {
		return a.ResetTokenHash != "" && a.ResetTokenHash == hash
	}), nil
}

func (m *mockAccountRepo) FindByVerifyToken(_ context.Context, token string) ([]*models.Account, error) {
	return m.find(func(a *models.Account) bool {
		return a.VerifyToken != "" && a.VerifyToken == token
	}), nil
}

// mailer stub capturing the last reset link
type mockMailer struct {
	resetTo    string
	resetLink  string
	verifyLink string
	fail       bool
}

type mailerError struct{}

func (mailerError) Error() string { return "smtp down" }

func (m *mockMailer) SendPasswordReset(_ context.Context, to, link string) error {
	if m.fail {
		return mailerError{}
	}
	m.resetTo = to
	m.resetLink = link
	return nil
}

func (m *mockMailer) SendVerification(_ context.Context, _, link string) error {
	if m.fail {
		return mailerError{}
	}
	m.verifyLink = link
	return nil
}

func (m *mockMailer) resetToken(t *testing.T) string {
	t.Helper()
	i := strings.Index(m.resetLink, "token=")
	if i < 0 {
		t.Fatalf("no token in reset link %q", m.resetLink)
	}
	return m.resetLink[i+len("token="):]
}

func newTestService(repo *mockAccountRepo, mailer *mockMailer) *AccountService {
	return NewAccountService(repo, mailer, "http://localhost:8080", time.Hour, 24*time.Hour)
}

func TestSignupAndAuthenticate(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if account.PasswordHash == "" || account.PasswordHash == "password1" {
		t.Fatal("password stored in plaintext or not at all")
	}

	got, err := service.Authenticate(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("authenticate after signup failed: %v", err)
	}
	if got.ID != account.ID {
		t.Fatalf("authenticated wrong account: %s != %s", got.ID, account.ID)
	}

	if _, err := service.Authenticate(context.Background(), "a@x.com", "wrong"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "nobody@x.com", "password1"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for unknown name, got %v", err)
	}
}

func TestSignupDuplicateName(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	if _, err := service.Signup(context.Background(), "a@x.com", "password1"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	saves := repo.saves

	if _, err := service.Signup(context.Background(), "A@X.com", "password2"); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if repo.saves != saves {
		t.Fatal("duplicate signup must not persist anything")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newMockAccountRepo()
	mailer := &mockMailer{}
	service := newTestService(repo, mailer)

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := service.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	if mailer.resetTo != "a@x.com" {
		t.Fatalf("reset mail went to %q", mailer.resetTo)
	}
	token := mailer.resetToken(t)

	stored, _ := repo.Get(context.Background(), account.ID)
	if stored.ResetTokenHash == token || stored.ResetTokenHash == "" {
		t.Fatal("raw token must not be persisted, only its hash")
	}

	if _, err := service.ResetPassword(context.Background(), token, "password2"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := service.Authenticate(context.Background(), "a@x.com", "password2"); err != nil {
		t.Fatalf("authenticate with new password failed: %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "a@x.com", "password1"); err != ErrUnauthorized {
		t.Fatalf("old password still works: %v", err)
	}

	// token is single use
	if _, err := service.ResetPassword(context.Background(), token, "password3"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on replay, got %v", err)
	}
}

func TestPasswordResetExpired(t *testing.T) {
	repo := newMockAccountRepo()
	mailer := &mockMailer{}
	// negative TTL: every token is already past its window
	service := NewAccountService(repo, mailer, "http://localhost:8080", -time.Minute, 24*time.Hour)

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := service.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	token := mailer.resetToken(t)

	if _, err := service.ResetPassword(context.Background(), token, "password2"); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// password unchanged, token not consumed
	if _, err := service.Authenticate(context.Background(), "a@x.com", "password1"); err != nil {
		t.Fatalf("password changed by expired reset: %v", err)
	}
	stored, _ := repo.Get(context.Background(), account.ID)
	if !stored.ResetPending() {
		t.Fatal("expired token must not be consumed by a failed reset")
	}
}

func TestPasswordResetLatestWins(t *testing.T) {
	repo := newMockAccountRepo()
	mailer := &mockMailer{}
	service := newTestService(repo, mailer)

	if _, err := service.Signup(context.Background(), "a@x.com", "password1"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := service.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("first reset request failed: %v", err)
	}
	first := mailer.resetToken(t)

	if err := service.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("second reset request failed: %v", err)
	}
	second := mailer.resetToken(t)

	if _, err := service.ResetPassword(context.Background(), first, "password2"); err != ErrNotFound {
		t.Fatalf("overwritten token must be dead, got %v", err)
	}
	if _, err := service.ResetPassword(context.Background(), second, "password2"); err != nil {
		t.Fatalf("latest token must win: %v", err)
	}
}

func TestRequestResetErrors(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	if err := service.RequestPasswordReset(context.Background(), "nobody@x.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// two records with the same name is stored-data corruption
	for _, id := range []string{"id-1", "id-2"} {
		repo.accounts[id] = &models.Account{ID: id, Rev: 1, AccountName: "dup@x.com"}
	}
	if err := service.RequestPasswordReset(context.Background(), "dup@x.com"); err != ErrAmbiguous {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
}

func TestRequestResetMailFailureKeepsToken(t *testing.T) {
	repo := newMockAccountRepo()
	mailer := &mockMailer{fail: true}
	service := newTestService(repo, mailer)

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := service.RequestPasswordReset(context.Background(), "a@x.com"); err == nil {
		t.Fatal("mail failure must be reported to the caller")
	}
	stored, _ := repo.Get(context.Background(), account.ID)
	if !stored.ResetPending() {
		t.Fatal("token issuance must survive a failed mail delivery")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := service.ChangePassword(context.Background(), account.ID, "wrong", "password2"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for wrong old password, got %v", err)
	}
	if err := service.ChangePassword(context.Background(), account.ID, "password1", "password2"); err != nil {
		t.Fatalf("password change failed: %v", err)
	}
	if _, err := service.Authenticate(context.Background(), "a@x.com", "password2"); err != nil {
		t.Fatalf("authenticate with changed password failed: %v", err)
	}
}

func TestAddBoatIdempotent(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := service.AddBoat(context.Background(), account.ID, "boat-1"); err != nil {
			t.Fatalf("add boat failed: %v", err)
		}
	}

	stored, _ := repo.Get(context.Background(), account.ID)
	if len(stored.Boats) != 1 || stored.Boats[0] != "boat-1" {
		t.Fatalf("boat set broken after double add: %v", stored.Boats)
	}

	if err := service.RemoveBoat(context.Background(), account.ID, "boat-1"); err != nil {
		t.Fatalf("remove boat failed: %v", err)
	}
	if err := service.RemoveBoat(context.Background(), account.ID, "boat-1"); err != nil {
		t.Fatalf("removing an absent boat must be a no-op: %v", err)
	}
	stored, _ = repo.Get(context.Background(), account.ID)
	if len(stored.Boats) != 0 {
		t.Fatalf("boat set not empty after remove: %v", stored.Boats)
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := service.DeleteAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := service.GetAccount(context.Background(), account.ID); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := service.DeleteAccount(context.Background(), account.ID); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListenersNotified(t *testing.T) {
	repo := newMockAccountRepo()
	service := newTestService(repo, &mockMailer{})

	var changed []string
	service.Subscribe(func(accountID string) {
		changed = append(changed, accountID)
	})

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := service.AddBoat(context.Background(), account.ID, "boat-1"); err != nil {
		t.Fatalf("add boat failed: %v", err)
	}
	// a no-op mutation must not notify
	if err := service.AddBoat(context.Background(), account.ID, "boat-1"); err != nil {
		t.Fatalf("idempotent add failed: %v", err)
	}

	if len(changed) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(changed))
	}
	for _, id := range changed {
		if id != account.ID {
			t.Fatalf("listener got wrong account id %q", id)
		}
	}
}

func TestVerifyEmailFlow(t *testing.T) {
	repo := newMockAccountRepo()
	mailer := &mockMailer{}
	service := newTestService(repo, mailer)

	account, err := service.Signup(context.Background(), "a@x.com", "password1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if err := service.SendVerification(context.Background(), account.ID); err != nil {
		t.Fatalf("send verification failed: %v", err)
	}

	i := strings.Index(mailer.verifyLink, "token=")
	if i < 0 {
		t.Fatalf("no token in verification link %q", mailer.verifyLink)
	}
	token := mailer.verifyLink[i+len("token="):]

	if err := service.ConfirmVerification(context.Background(), token); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	stored, _ := repo.Get(context.Background(), account.ID)
	if !stored.EmailVerified {
		t.Fatal("account not marked verified")
	}
	if err := service.ConfirmVerification(context.Background(), token); err != ErrNotFound {
		t.Fatalf("verification token must be single use, got %v", err)
	}
}

func TestResetTokenHashing(t *testing.T) {
	token, hash, err := utils.NewResetToken()
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if len(token) < 40 {
		t.Fatalf("token too short for 32 bytes of entropy: %d chars", len(token))
	}
	if hash == token {
		t.Fatal("stored form must differ from the raw token")
	}
	if utils.HashToken(token) != hash {
		t.Fatal("hash is not deterministic")
	}
}
