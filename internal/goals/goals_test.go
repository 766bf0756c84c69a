package goals

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/finance-bot/internal/models"
	"gitlab.com/yelinaung/finance-bot/internal/repository"
	"pgregory.net/rapid"
)

type fakeStore struct {
	mu     sync.Mutex
	goals  map[int64]*models.Goal
	nextID int64
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: map[int64]*models.Goal{}}
}

func (f *fakeStore) Create(_ context.Context, g *models.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	g.ID = f.nextID
	cp := *g
	f.goals[g.ID] = &cp
	return nil
}

func (f *fakeStore) Get(_ context.Context, userID, goalID int64) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) ListActive(_ context.Context, userID int64) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Goal
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.goals[id]; ok && g.UserID == userID && !g.IsCompleted {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) ListIncomplete(context.Context) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Goal
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.goals[id]; ok && (!g.IsCompleted || !g.CompletionNotified) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveProgress(_ context.Context, goalID int64, current decimal.Decimal, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok {
		return repository.ErrNotFound
	}
	if current.GreaterThan(g.TargetAmount) {
		return errors.New("check constraint violated")
	}
	g.CurrentAmount = current
	g.IsCompleted = g.IsCompleted || completed
	return nil
}

func (f *fakeStore) ForceComplete(_ context.Context, userID, goalID int64) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	g.CurrentAmount = g.TargetAmount
	g.IsCompleted = true
	cp := *g
	return &cp, nil
}

func (f *fakeStore) ClaimCompletionNotice(_ context.Context, goalID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.CompletionNotified || !g.Reached() {
		return false, nil
	}
	g.CompletionNotified = true
	g.IsCompleted = true
	return true, nil
}

func (f *fakeStore) ReleaseCompletionNotice(_ context.Context, goalID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.goals[goalID]; ok {
		g.CompletionNotified = false
	}
	return nil
}

type fakePrefs struct {
	lang     map[int64]string
	disabled map[int64]bool
}

func (p fakePrefs) GetLanguage(_ context.Context, userID int64) (string, error) {
	if l, ok := p.lang[userID]; ok {
		return l, nil
	}
	return "", repository.ErrNotFound
}

func (p fakePrefs) GetNotifications(_ context.Context, userID int64) (bool, error) {
	return !p.disabled[userID], nil
}

type sent struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sent
	failFor map[int64]bool
}

func (n *fakeNotifier) Notify(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[chatID] {
		return errors.New("forbidden: bot was blocked by the user")
	}
	n.sent = append(n.sent, sent{chatID, text})
	return nil
}

func (n *fakeNotifier) count(substr string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, s := range n.sent {
		if strings.Contains(s.text, substr) {
			c++
		}
	}
	return c
}

func newTestService() (*Service, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{failFor: map[int64]bool{}}
	prefs := fakePrefs{lang: map[int64]string{1: "en"}, disabled: map[int64]bool{}}
	return NewService(store, prefs, notifier), store, notifier
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_Add(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService()

	g, err := svc.Add(ctx, 1, "  Bike  ", dec("1000"), nil)
	require.NoError(t, err)
	require.Equal(t, "Bike", g.Name)
	require.True(t, g.CurrentAmount.IsZero())

	_, err = svc.Add(ctx, 1, " ", dec("10"), nil)
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Add(ctx, 1, strings.Repeat("я", models.MaxGoalNameLength+1), dec("10"), nil)
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Add(ctx, 1, "Car", dec("0"), nil)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestService_UpdateProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("accumulates below target", func(t *testing.T) {
		t.Parallel()
		svc, _, notifier := newTestService()
		g, err := svc.Add(ctx, 1, "Bike", dec("100"), nil)
		require.NoError(t, err)

		g, err = svc.UpdateProgress(ctx, 1, g.ID, dec("40"))
		require.NoError(t, err)
		require.True(t, dec("40").Equal(g.CurrentAmount))
		require.False(t, g.IsCompleted)
		require.Empty(t, notifier.sent)
	})

	t.Run("clamps and notifies once", func(t *testing.T) {
		t.Parallel()
		svc, store, notifier := newTestService()
		g, err := svc.Add(ctx, 1, "Bike", dec("100"), nil)
		require.NoError(t, err)

		g, err = svc.UpdateProgress(ctx, 1, g.ID, dec("150"))
		require.NoError(t, err)
		require.True(t, dec("100").Equal(g.CurrentAmount))
		require.True(t, g.IsCompleted)
		require.Equal(t, 1, notifier.count("Bike"))

		_, err = svc.UpdateProgress(ctx, 1, g.ID, dec("1"))
		require.ErrorIs(t, err, ErrGoalCompleted)

		res, err := svc.Sweep(ctx)
		require.NoError(t, err)
		require.Zero(t, res.Completed)
		require.Equal(t, 1, notifier.count("Bike"), "sweep must not announce again")
		require.True(t, store.goals[g.ID].CompletionNotified)
	})

	t.Run("failed notice is retried by sweep", func(t *testing.T) {
		t.Parallel()
		svc, _, notifier := newTestService()
		g, err := svc.Add(ctx, 1, "Trip", dec("10"), nil)
		require.NoError(t, err)

		notifier.failFor[1] = true
		_, err = svc.UpdateProgress(ctx, 1, g.ID, dec("10"))
		require.NoError(t, err)
		require.Zero(t, notifier.count("Trip"))

		notifier.failFor[1] = false
		res, err := svc.Sweep(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, res.Completed)
		require.Equal(t, 1, notifier.count("Trip"))
	})

	t.Run("rejects foreign and missing goals", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService()
		g, err := svc.Add(ctx, 1, "Bike", dec("100"), nil)
		require.NoError(t, err)

		_, err = svc.UpdateProgress(ctx, 2, g.ID, dec("1"))
		require.ErrorIs(t, err, ErrGoalNotFound)
		_, err = svc.UpdateProgress(ctx, 1, 999, dec("1"))
		require.ErrorIs(t, err, ErrGoalNotFound)
		_, err = svc.UpdateProgress(ctx, 1, g.ID, dec("-1"))
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestService_UpdateProgress_NeverExceedsTarget(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		svc, _, notifier := newTestService()
		target := decimal.New(rapid.Int64Range(1, 1_000_000).Draw(t, "target"), -2)
		g, err := svc.Add(ctx, 1, "Goal", target, nil)
		if err != nil {
			t.Fatal(err)
		}

		deltas := rapid.SliceOfN(rapid.Int64Range(1, 500_000), 1, 20).Draw(t, "deltas")
		for _, d := range deltas {
			got, err := svc.UpdateProgress(ctx, 1, g.ID, decimal.New(d, -2))
			if errors.Is(err, ErrGoalCompleted) {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.CurrentAmount.GreaterThan(target) {
				t.Fatalf("progress %s exceeds target %s", got.CurrentAmount, target)
			}
			if got.IsCompleted != got.Reached() {
				t.Fatalf("completion flag disagrees with predicate")
			}
		}
		if notifier.count("Goal") > 1 {
			t.Fatalf("completion announced more than once")
		}
	})
}

func TestService_Complete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, notifier := newTestService()

	g, err := svc.Add(ctx, 1, "Phone", dec("300"), nil)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, 1, g.ID)
	require.NoError(t, err)
	require.True(t, done.IsCompleted)
	require.True(t, done.CurrentAmount.Equal(done.TargetAmount))

	_, err = svc.Sweep(ctx)
	require.NoError(t, err)
	require.Zero(t, notifier.count("Phone"))

	_, err = svc.Complete(ctx, 2, g.ID)
	require.ErrorIs(t, err, ErrGoalNotFound)

	active, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestService_Sweep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("digests respect notification setting", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		notifier := &fakeNotifier{failFor: map[int64]bool{}}
		prefs := fakePrefs{lang: map[int64]string{1: "en", 2: "en"}, disabled: map[int64]bool{2: true}}
		svc := NewService(store, prefs, notifier)

		_, err := svc.Add(ctx, 1, "Bike", dec("100"), nil)
		require.NoError(t, err)
		_, err = svc.Add(ctx, 1, "Car", dec("1000"), nil)
		require.NoError(t, err)
		_, err = svc.Add(ctx, 2, "Boat", dec("100"), nil)
		require.NoError(t, err)

		res, err := svc.Sweep(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, res.Checked)
		require.Equal(t, 1, res.Digests)
		require.Len(t, notifier.sent, 1)
		require.Contains(t, notifier.sent[0].text, "Bike")
		require.Contains(t, notifier.sent[0].text, "Car")
	})

	t.Run("one blocked user does not stop others", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		notifier := &fakeNotifier{failFor: map[int64]bool{1: true}}
		svc := NewService(store, fakePrefs{}, notifier)

		g1, err := svc.Add(ctx, 1, "A", dec("10"), nil)
		require.NoError(t, err)
		g2, err := svc.Add(ctx, 2, "B", dec("10"), nil)
		require.NoError(t, err)
		store.goals[g1.ID].CurrentAmount = dec("10")
		store.goals[g2.ID].CurrentAmount = dec("10")

		res, err := svc.Sweep(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, res.Completed)
		require.False(t, store.goals[g1.ID].CompletionNotified)
		require.True(t, store.goals[g2.ID].CompletionNotified)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newTestService()
		store.err = errors.New("db down")
		_, err := svc.Sweep(ctx)
		require.Error(t, err)
	})
}

func TestDigest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	soon := now.Add(10*24*time.Hour + time.Hour)
	past := now.Add(-48 * time.Hour)

	text := Digest("en", []models.Goal{
		{Name: "Bike", CurrentAmount: dec("25"), TargetAmount: dec("100"), Deadline: &soon},
		{Name: "Car", CurrentAmount: dec("1"), TargetAmount: dec("3"), Deadline: &past},
		{Name: "Boat", CurrentAmount: dec("0"), TargetAmount: dec("10")},
	}, now)

	require.Contains(t, text, "1. Bike: 25.00 / 100.00 (25.0%) until 11.03.2024")
	require.Contains(t, text, "10 days left")
	require.Contains(t, text, "2. Car: 1.00 / 3.00 (33.3%)")
	require.Contains(t, text, "overdue")
	require.Contains(t, text, "3. Boat: 0.00 / 10.00 (0.0%)")
}
