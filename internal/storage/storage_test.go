package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "store.json")
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/tmp/x.json", ResolvePath("/tmp/x.json"))

	t.Setenv(EnvStorePath, "/tmp/env.json")
	assert.Equal(t, "/tmp/env.json", ResolvePath(""))
	assert.Equal(t, "/tmp/x.json", ResolvePath("/tmp/x.json"))

	t.Setenv(EnvStorePath, "")
	assert.Equal(t, DefaultPath(), ResolvePath("  "))
}

func TestReadMissingFileYieldsFreshStore(t *testing.T) {
	s, err := Read(storePath(t))
	require.NoError(t, err)
	assert.Equal(t, model.Version, s.Version)
	assert.Empty(t, s.Habits)
}

func TestReadCorruptedStore(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Read(path)
	assert.True(t, errors.IsIOError(err))
	assert.True(t, errors.Is(err, errors.ErrStoreCorrupted))
}

func TestUpdateRoundtrip(t *testing.T) {
	path := storePath(t)

	h, err := Update(path, func(s *model.Store) (model.Habit, error) {
		nh, err := habit.New(habit.NextID(s), "Water", "everyday",
			model.PeriodDay, 8, "", "2026-01-01", false, 2)
		if err != nil {
			return model.Habit{}, err
		}
		s.Habits = append(s.Habits, nh)
		return nh, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "h0001", h.ID)

	s, err := Read(path)
	require.NoError(t, err)
	require.Len(t, s.Habits, 1)
	assert.Equal(t, "Water", s.Habits[0].Name)

	// The lock file is released after the update.
	_, err = os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateMutatorErrorLeavesFileUntouched(t *testing.T) {
	path := storePath(t)

	_, err := Update(path, func(s *model.Store) (int, error) {
		nh, err := habit.New(habit.NextID(s), "Water", "everyday",
			model.PeriodDay, 8, "", "2026-01-01", false, 2)
		require.NoError(t, err)
		s.Habits = append(s.Habits, nh)
		return 0, nil
	})
	require.NoError(t, err)

	_, err = Update(path, func(s *model.Store) (int, error) {
		s.Habits = nil
		return 0, errors.NewUsageError("boom")
	})
	assert.True(t, errors.IsUsageError(err))

	s, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, s.Habits, 1)
}

func TestUpdateFailsFastWhenLocked(t *testing.T) {
	path := storePath(t)
	lock := NewFileLock(path)
	require.NoError(t, lock.Acquire())
	defer lock.Release()

	_, err := Update(path, func(s *model.Store) (int, error) {
		return 0, nil
	})
	assert.True(t, errors.IsIOError(err))
	assert.True(t, errors.Is(err, errors.ErrStoreLocked))
}

func TestFileLockAcquireRelease(t *testing.T) {
	path := storePath(t)
	lock := NewFileLock(path)
	assert.Equal(t, path+".lock", lock.Path())

	require.NoError(t, lock.Acquire())
	assert.True(t, errors.Is(NewFileLock(path).Acquire(), errors.ErrStoreLocked))

	lock.Release()
	require.NoError(t, lock.Acquire())
	lock.Release()

	// Releasing an absent lock is a no-op.
	lock.Release()
}

func TestWriteIsAtomicAndPrivate(t *testing.T) {
	path := storePath(t)

	_, err := Update(path, func(s *model.Store) (int, error) {
		return 0, nil
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestReadAppliesDefaults(t *testing.T) {
	path := storePath(t)
	// A document written before declarations, excuses and penalties
	// existed: only the habit counter is present.
	doc := `{
  "version": 1,
  "meta": {"next_habit_number": 2},
  "habits": [
    {
      "id": "h0001",
      "name": "Water",
      "schedule": {"type": "days_of_week", "days": [1, 2, 3, 4, 5, 6, 7]},
      "target": {"period": "day", "quantity": 8},
      "created_date": "2026-01-01"
    }
  ]
}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := Read(path)
	require.NoError(t, err)
	require.Len(t, s.Habits, 1)

	h := s.Habits[0]
	assert.False(t, h.NeedsDeclaration)
	assert.Equal(t, model.DefaultExcuseQuota, h.ExcuseQuota())
	assert.Equal(t, "h0002", habit.NextID(s))
	assert.Equal(t, 1, s.Meta.NextExcuseNumber)
	assert.Equal(t, 1, s.Meta.NextDeclarationNumber)
	assert.Equal(t, 1, s.Meta.NextPenaltyRuleNumber)
}
