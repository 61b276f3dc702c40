package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns copies", func(t *testing.T) {
		// Given: a stored session
		store := NewSessionStore()
		require.NoError(t, store.CreateOrUpdate(ctx, entity.NewSession("123")))

		// When: the caller changes the returned session
		session, err := store.GetByID(ctx, "123")
		require.NoError(t, err)
		require.NoError(t, session.Board.Set(0, 0, entity.Cross))

		// Then: the stored one is not affected
		stored, err := store.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Board{}, stored.Board)
	})

	t.Run("Update writes only on success", func(t *testing.T) {
		store := NewSessionStore()
		require.NoError(t, store.CreateOrUpdate(ctx, entity.NewSession("123")))

		_, err := store.Update(ctx, "123", func(session *entity.Session) error {
			_ = session.Board.Set(0, 0, entity.Cross)
			return apperror.ErrIllegalMove
		})
		require.ErrorIs(t, err, apperror.ErrIllegalMove)

		updated, err := store.Update(ctx, "123", func(session *entity.Session) error {
			return session.Board.Set(2, 2, entity.Nought)
		})
		require.NoError(t, err)

		stored, err := store.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, updated.Board, stored.Board)
		assert.Equal(t, entity.Empty, stored.Board[0][0])
		assert.Equal(t, entity.Nought, stored.Board[2][2])
	})

	t.Run("Unknown session", func(t *testing.T) {
		store := NewSessionStore()

		_, err := store.GetByID(ctx, "nope")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		_, err = store.Update(ctx, "nope", func(*entity.Session) error { return nil })
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		require.ErrorIs(t, store.DeleteByID(ctx, "nope"), apperror.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		store := NewSessionStore()
		require.NoError(t, store.CreateOrUpdate(ctx, entity.NewSession("123")))

		require.NoError(t, store.DeleteByID(ctx, "123"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Concurrent updates are serialized", func(t *testing.T) {
		store := NewSessionStore()
		require.NoError(t, store.CreateOrUpdate(ctx, entity.NewSession("123")))

		var wg sync.WaitGroup
		for r := range entity.BoardSize {
			for c := range entity.BoardSize {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := store.Update(ctx, "123", func(session *entity.Session) error {
						return session.Board.Set(r, c, entity.Nought)
					})
					assert.NoError(t, err)
				}()
			}
		}
		wg.Wait()

		stored, err := store.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Empty(t, stored.Board.EmptyCells())
	})
}
