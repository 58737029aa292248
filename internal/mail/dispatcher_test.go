package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender records sent messages and can be told to fail.
type stubSender struct {
	mu   sync.Mutex
	sent []uint
	err  error
}

func (s *stubSender) Send(_ context.Context, msg *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg.ID)
	return nil
}

func (s *stubSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func setupDispatcher(t *testing.T, sender Sender) (*Dispatcher, repository.ContactRepository) {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := repository.NewContactRepository(db)
	d := NewDispatcher(repo, sender)
	d.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = d.Shutdown(ctx)
	})
	return d, repo
}

func submit(t *testing.T, repo repository.ContactRepository) *models.ContactMessage {
	t.Helper()
	msg := &models.ContactMessage{
		Name:    "Curious Reader",
		Email:   "reader@example.com",
		Message: "Hello there",
	}
	require.NoError(t, repo.Create(context.Background(), msg))
	return msg
}

func statusOf(t *testing.T, repo repository.ContactRepository, id uint) string {
	t.Helper()
	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return got.Status
}

func TestDispatcher_DeliversEnqueuedMessage(t *testing.T) {
	sender := &stubSender{}
	d, repo := setupDispatcher(t, sender)

	msg := submit(t, repo)
	assert.True(t, d.Enqueue(msg.ID))

	assert.Eventually(t, func() bool {
		return statusOf(t, repo, msg.ID) == models.ContactSent
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, sender.sentCount())
}

func TestDispatcher_RecordsFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("relay unreachable")}
	d, repo := setupDispatcher(t, sender)

	msg := submit(t, repo)
	assert.True(t, d.Enqueue(msg.ID))

	assert.Eventually(t, func() bool {
		return statusOf(t, repo, msg.ID) == models.ContactFailed
	}, 2*time.Second, 10*time.Millisecond)

	got, err := repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Detail, "relay unreachable")
}

func TestDispatcher_StartupSweepResumesPending(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := repository.NewContactRepository(db)

	// A message left pending by a previous run.
	msg := &models.ContactMessage{Name: "a", Email: "a@example.com", Message: "hi"}
	require.NoError(t, repo.Create(context.Background(), msg))

	sender := &stubSender{}
	d := NewDispatcher(repo, sender)
	d.Start(context.Background())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = d.Shutdown(ctx)
	}()

	assert.Eventually(t, func() bool {
		return statusOf(t, repo, msg.ID) == models.ContactSent
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_SentMessagesNotRedelivered(t *testing.T) {
	sender := &stubSender{}
	d, repo := setupDispatcher(t, sender)

	msg := submit(t, repo)
	require.NoError(t, repo.MarkSent(context.Background(), msg.ID))

	assert.True(t, d.Enqueue(msg.ID))
	// Give the worker a moment; the already-sent row must be skipped.
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, sender.sentCount())
}

func TestDispatcher_ShutdownCompletes(t *testing.T) {
	sender := &stubSender{}
	db, err := database.ConnectTest()
	require.NoError(t, err)
	repo := repository.NewContactRepository(db)

	d := NewDispatcher(repo, sender)
	d.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, d.Shutdown(ctx))
}
