package service

import (
	"testing"

	"mingle/backend/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSelfTargetRejected(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	a := createUser(t, db, "alice", false)

	err := blocks.Block(a.ID, a.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestBlockMissingTarget(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	a := createUser(t, db, "alice", false)

	err := blocks.Block(a.ID, "no-such-user")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestBlockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	a := createUser(t, db, "alice", false)
	b := createUser(t, db, "bob", false)

	require.NoError(t, blocks.Block(a.ID, b.ID))
	require.NoError(t, blocks.Block(a.ID, b.ID)) // re-block is a no-op

	blocked, err := blocks.IsBlockedEither(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestIsBlockedEitherChecksBothDirections(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	a := createUser(t, db, "alice", false)
	b := createUser(t, db, "bob", false)

	require.NoError(t, blocks.Block(a.ID, b.ID))

	// One stored row, symmetric effect.
	got, err := blocks.IsBlockedEither(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, got)

	set, err := blocks.BlockedEitherSet(b.ID)
	require.NoError(t, err)
	assert.Contains(t, set, a.ID)
}

func TestUnblockMissingRowSucceeds(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	a := createUser(t, db, "alice", false)
	b := createUser(t, db, "bob", false)

	require.NoError(t, blocks.Unblock(a.ID, b.ID))

	require.NoError(t, blocks.Block(a.ID, b.ID))
	require.NoError(t, blocks.Unblock(a.ID, b.ID))

	blocked, err := blocks.IsBlockedEither(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}
