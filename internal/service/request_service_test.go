package service

import (
	"testing"
	"time"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRejectsSelfTarget(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	a := createUser(t, db, "alice", false)

	_, err := requests.Submit(a.ID, a.ID, models.KindFollow)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSubmitRejectsUnknownKind(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	a := createUser(t, db, "alice", false)
	b := createUser(t, db, "bob", false)

	_, err := requests.Submit(a.ID, b.ID, models.RelationKind("FRENEMY"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSubmitMissingTarget(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	a := createUser(t, db, "alice", false)

	_, err := requests.Submit(a.ID, "no-such-user", models.KindFollow)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSubmitFollowToPublicAutoAccepts(t *testing.T) {
	db := newTestDB(t)
	relations := NewRelationService(db)
	requests := NewRequestService(db, relations)
	a := createUser(t, db, "alice", false) // public
	b := createUser(t, db, "bob", false)

	result, err := requests.Submit(b.ID, a.ID, models.KindFollow)
	require.NoError(t, err)

	assert.True(t, result.AutoAccepted)
	assert.Nil(t, result.Request)
	require.NotNil(t, result.Edge)

	// Never produces a pending row.
	var pending int64
	require.NoError(t, db.Model(&models.ConnectionRequest{}).Count(&pending).Error)
	assert.Zero(t, pending)

	followers, err := relations.ListFollowers(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, followers)

	following, err := relations.ListFollowing(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, following)
}

func TestSubmitFollowToPrivateGoesPending(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	a := createUser(t, db, "alice", true) // private
	b := createUser(t, db, "bob", false)

	result, err := requests.Submit(b.ID, a.ID, models.KindFollow)
	require.NoError(t, err)

	assert.False(t, result.AutoAccepted)
	require.NotNil(t, result.Request)
	assert.Equal(t, models.StatusPending, result.Request.Status)
}

func TestSubmitDuplicatePendingConflicts(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	_, err := requests.Submit(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	_, err = requests.Submit(c.ID, d.ID, models.KindAcquaintance)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// A different kind for the same pair is a distinct triple.
	_, err = requests.Submit(c.ID, d.ID, models.KindStranger)
	require.NoError(t, err)
}

func TestSubmitExistingEdgeConflicts(t *testing.T) {
	db := newTestDB(t)
	relations := NewRelationService(db)
	requests := NewRequestService(db, relations)
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	_, err := relations.CreateEdge(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	// Normalized lookup: the reversed pair hits the same edge.
	_, err = requests.Submit(d.ID, c.ID, models.KindAcquaintance)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAcceptEstablishesUndirectedEdge(t *testing.T) {
	db := newTestDB(t)
	relations := NewRelationService(db)
	requests := NewRequestService(db, relations)
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	result, err := requests.Submit(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	edge, err := requests.Accept(result.Request.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KindAcquaintance, edge.Kind)

	fromC, err := relations.ListUndirected(c.ID, models.KindAcquaintance)
	require.NoError(t, err)
	assert.Equal(t, []string{d.ID}, fromC)

	fromD, err := relations.ListUndirected(d.ID, models.KindAcquaintance)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, fromD)

	var request models.ConnectionRequest
	require.NoError(t, db.First(&request, "id = ?", result.Request.ID).Error)
	assert.Equal(t, models.StatusAccepted, request.Status)
	assert.NotNil(t, request.DecidedAt)
}

func TestAcceptByNonAddresseeForbidden(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)
	e := createUser(t, db, "erin", false)

	result, err := requests.Submit(c.ID, d.ID, models.KindStranger)
	require.NoError(t, err)

	_, err = requests.Accept(result.Request.ID, e.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// The requester may not accept their own request either.
	_, err = requests.Accept(result.Request.ID, c.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestAcceptedAndDeclinedAreTerminal(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	result, err := requests.Submit(c.ID, d.ID, models.KindStranger)
	require.NoError(t, err)

	declined, err := requests.Decline(result.Request.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeclined, declined.Status)
	assert.NotNil(t, declined.DecidedAt)

	_, err = requests.Accept(result.Request.ID, d.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = requests.Decline(result.Request.ID, d.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// A fresh cycle may start again for the same triple after a decline.
	_, err = requests.Submit(c.ID, d.ID, models.KindStranger)
	require.NoError(t, err)
}

func TestDeclineCreatesNoEdge(t *testing.T) {
	db := newTestDB(t)
	relations := NewRelationService(db)
	requests := NewRequestService(db, relations)
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	result, err := requests.Submit(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	_, err = requests.Decline(result.Request.ID, d.ID)
	require.NoError(t, err)

	exists, err := relations.EdgeExists(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAcceptWithExistingEdgeLeavesRequestPending(t *testing.T) {
	db := newTestDB(t)
	relations := NewRelationService(db)
	requests := NewRequestService(db, relations)
	c := createUser(t, db, "carol", false)
	d := createUser(t, db, "dave", false)

	result, err := requests.Submit(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	// A concurrent accept already created the edge; this accept loses the
	// race and the status update must not proceed.
	_, err = relations.CreateEdge(c.ID, d.ID, models.KindAcquaintance)
	require.NoError(t, err)

	_, err = requests.Accept(result.Request.ID, d.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	var request models.ConnectionRequest
	require.NoError(t, db.First(&request, "id = ?", result.Request.ID).Error)
	assert.Equal(t, models.StatusPending, request.Status)
}

func TestListIncomingPendingOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestService(db, NewRelationService(db))
	a := createUser(t, db, "alice", true)
	b := createUser(t, db, "bob", false)
	c := createUser(t, db, "carol", false)

	first, err := requests.Submit(b.ID, a.ID, models.KindFollow)
	require.NoError(t, err)
	second, err := requests.Submit(c.ID, a.ID, models.KindFollow)
	require.NoError(t, err)

	// Make the ordering unambiguous.
	require.NoError(t, db.Model(&models.ConnectionRequest{}).
		Where("id = ?", second.Request.ID).
		Update("created_at", first.Request.CreatedAt.Add(time.Second)).Error)

	_, err = requests.Decline(first.Request.ID, a.ID)
	require.NoError(t, err)

	incoming, err := requests.ListIncoming(a.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, second.Request.ID, incoming[0].ID)
	assert.Equal(t, c.Nickname, incoming[0].Requester.Nickname)
}
