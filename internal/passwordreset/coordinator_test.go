package passwordreset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moodyme/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore keeps users keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) passwordHash(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		return u.PasswordHash
	}
	return ""
}

// fakeCredentialStore mirrors the semantics of the GORM store: unique codes,
// conditional consumption under a lock.
type fakeCredentialStore struct {
	mu        sync.Mutex
	creds     map[string]*models.PasswordResetCode
	createErr error // forced Create result, used to simulate collisions
	createN   int
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{creds: make(map[string]*models.PasswordResetCode)}
}

func (s *fakeCredentialStore) Create(ctx context.Context, cred *models.PasswordResetCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createN++
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.creds[cred.Code]; exists {
		return ErrCodeConflict
	}
	stored := *cred
	s.creds[cred.Code] = &stored
	return nil
}

func (s *fakeCredentialStore) FindByCode(ctx context.Context, code string) (*models.PasswordResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[code]
	if !ok {
		return nil, ErrCodeNotFound
	}
	copy := *c
	return &copy, nil
}

func (s *fakeCredentialStore) ConsumeIfValid(ctx context.Context, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[code]
	if !ok {
		return ErrCodeNotFound
	}
	if c.Used || !now.Before(c.ExpiresAt) {
		return ErrAlreadyConsumed
	}
	c.Used = true
	return nil
}

func (s *fakeCredentialStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.creds)
}

func (s *fakeCredentialStore) onlyCredential(t *testing.T) *models.PasswordResetCode {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.creds, 1)
	for _, c := range s.creds {
		copy := *c
		return &copy
	}
	return nil
}

// fakeEmailSender records deliveries and can be told to fail.
type fakeEmailSender struct {
	mu    sync.Mutex
	sent  []string // "address:code"
	codes []string
	err   error
}

func (s *fakeEmailSender) SendResetCode(ctx context.Context, toAddress string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, toAddress)
	s.codes = append(s.codes, code)
	return nil
}

func (s *fakeEmailSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.codes)
	return s.codes[len(s.codes)-1]
}

// plainHasher makes password assertions readable in tests.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func testUser(email string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		FirstName:    "Alice",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: "hashed:old-password",
		Role:         models.RoleUser,
		IsActive:     true,
	}
}

func newTestCoordinator(
	users *fakeUserStore,
	creds *fakeCredentialStore,
	email *fakeEmailSender,
	now func() time.Time,
) *Coordinator {
	return New(users, creds, email, plainHasher{}, time.Hour, now, nil)
}

func TestRequestReset_UnknownEmailIsSilentNoOp(t *testing.T) {
	users := newFakeUserStore()
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, time.Now)

	err := coord.RequestReset(context.Background(), "nobody@example.com")

	assert.NoError(t, err, "unknown email must look identical to success")
	assert.Equal(t, 0, creds.count(), "no credential may be created")
	assert.Empty(t, email.sent, "no email may be sent")
}

func TestRequestReset_IssuesCredentialWithOneHourTTL(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, func() time.Time { return t0 })

	err := coord.RequestReset(context.Background(), "alice@example.com")
	require.NoError(t, err)

	cred := creds.onlyCredential(t)
	assert.Equal(t, "alice@example.com", cred.Email)
	assert.Equal(t, t0.Add(time.Hour), cred.ExpiresAt)
	assert.False(t, cred.Used)
	assert.Equal(t, []string{"alice@example.com"}, email.sent)
	assert.Equal(t, cred.Code, email.lastCode(t), "emailed code must match the persisted one")
}

func TestRequestReset_DeliveryFailureIsSwallowed(t *testing.T) {
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{err: errors.New("ses unavailable")}
	coord := newTestCoordinator(users, creds, email, time.Now)

	err := coord.RequestReset(context.Background(), "alice@example.com")

	assert.NoError(t, err, "delivery failure must not surface to the caller")
	assert.Equal(t, 1, creds.count(), "the credential stays persisted and valid")
}

func TestRequestReset_CollisionRetriesThenSucceeds(t *testing.T) {
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, time.Now)

	// First two attempts collide, third lands.
	remaining := 2
	coord.generate = func() (string, error) {
		if remaining > 0 {
			remaining--
			creds.createErr = ErrCodeConflict
		} else {
			creds.createErr = nil
		}
		return GenerateCode()
	}

	err := coord.RequestReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, creds.createN)
	assert.Equal(t, 1, creds.count())
}

func TestRequestReset_GenerationExhaustsAfterFiveAttempts(t *testing.T) {
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	creds.createErr = ErrCodeConflict // store always reports a conflict
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, time.Now)

	err := coord.RequestReset(context.Background(), "alice@example.com")

	assert.ErrorIs(t, err, ErrCodeGenerationExhausted)
	assert.Equal(t, 5, creds.createN, "exactly five create attempts")
	assert.Empty(t, email.sent)
}

func TestRedeemReset_UnknownCode(t *testing.T) {
	coord := newTestCoordinator(newFakeUserStore(), newFakeCredentialStore(), &fakeEmailSender{}, time.Now)

	err := coord.RedeemReset(context.Background(), "never-issued", "NewPassword1")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemReset_HappyPathThenReuseFails(t *testing.T) {
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, time.Now)

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	code := email.lastCode(t)

	err := coord.RedeemReset(context.Background(), code, "Sunshine42")
	require.NoError(t, err)
	assert.Equal(t, "hashed:Sunshine42", users.passwordHash("alice@example.com"))

	err = coord.RedeemReset(context.Background(), code, "Hijack99")
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
	assert.Equal(t, "hashed:Sunshine42", users.passwordHash("alice@example.com"),
		"second redemption must not change the password again")
}

func TestRedeemReset_ExpiredCode(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	clock := func() time.Time { return now }

	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, clock)

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	code := email.lastCode(t)

	// Redemption at T0+30min succeeds; issue a second credential to probe expiry.
	now = t0.Add(30 * time.Minute)
	require.NoError(t, coord.RedeemReset(context.Background(), code, "Sunshine42"))
	assert.Equal(t, "hashed:Sunshine42", users.passwordHash("alice@example.com"))

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	secondCode := email.lastCode(t)

	now = now.Add(61 * time.Minute)
	err := coord.RedeemReset(context.Background(), secondCode, "TooLate1")
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "hashed:Sunshine42", users.passwordHash("alice@example.com"),
		"expired redemption must leave the password unchanged")
}

func TestRedeemReset_ExpiryBoundaryIsInclusive(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := t0
	clock := func() time.Time { return now }

	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, clock)

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	code := email.lastCode(t)

	// Exactly at expiresAt the credential is unusable.
	now = t0.Add(time.Hour)
	err := coord.RedeemReset(context.Background(), code, "Boundary1")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRedeemReset_ConcurrentRedemptionSingleWinner(t *testing.T) {
	users := newFakeUserStore(testUser("alice@example.com"))
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := newTestCoordinator(users, creds, email, time.Now)

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	code := email.lastCode(t)

	const n = 32
	results := make(chan error, n)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < n; i++ {
		go func(i int) {
			start.Wait()
			results <- coord.RedeemReset(context.Background(),
				code, "Racer"+string(rune('A'+i%26)))
		}(i)
	}
	start.Done()

	var successes, alreadyUsed int
	for i := 0; i < n; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrTokenAlreadyUsed):
			alreadyUsed++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent redeemer may win")
	assert.Equal(t, n-1, alreadyUsed)
}

func TestRedeemReset_RealBcryptRoundTrip(t *testing.T) {
	oldHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := testUser("alice@example.com")
	user.PasswordHash = string(oldHash)

	users := newFakeUserStore(user)
	creds := newFakeCredentialStore()
	email := &fakeEmailSender{}
	coord := New(users, creds, email, BcryptHasher{}, time.Hour, time.Now, nil)

	require.NoError(t, coord.RequestReset(context.Background(), "alice@example.com"))
	require.NoError(t, coord.RedeemReset(context.Background(), email.lastCode(t), "Sunshine42"))

	newHash := users.passwordHash("alice@example.com")
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("old-password")),
		"the old password must stop working")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("Sunshine42")),
		"the new password must verify against the stored hash")
}
