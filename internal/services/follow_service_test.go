package services_test

import (
	"testing"

	"litrevu/internal/models"
	"litrevu/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowValidationOrder(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	svc := services.NewFollowService(db)

	_, err := svc.Follow(alice.ID, "   ")
	assert.ErrorIs(t, err, services.ErrUsernameRequired)

	_, err = svc.Follow(alice.ID, "nobody")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	_, err = svc.Follow(alice.ID, "alice")
	assert.ErrorIs(t, err, services.ErrSelfFollow)

	target, err := svc.Follow(alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, target.ID)

	// Following again reports the existing edge and creates no duplicate.
	_, err = svc.Follow(alice.ID, "bob")
	assert.ErrorIs(t, err, services.ErrAlreadyFollowing)

	var count int64
	require.NoError(t, db.Model(&models.UserFollow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnfollow(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	svc := services.NewFollowService(db)

	_, err := svc.Unfollow(alice.ID, uuid.New())
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	// Removing a non-edge is an error, not a silent success.
	_, err = svc.Unfollow(alice.ID, bob.ID)
	assert.ErrorIs(t, err, services.ErrNotFollowing)

	_, err = svc.Follow(alice.ID, "bob")
	require.NoError(t, err)

	target, err := svc.Unfollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", target.Username)

	var count int64
	require.NoError(t, db.Model(&models.UserFollow{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestFollowLists(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	svc := services.NewFollowService(db)
	_, err := svc.Follow(alice.ID, "bob")
	require.NoError(t, err)
	_, err = svc.Follow(carol.ID, "alice")
	require.NoError(t, err)

	following, err := svc.Following(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	followers, err := svc.Followers(alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, carol.ID, followers[0].ID)

	// The edge is directed: bob follows nobody.
	bobFollowing, err := svc.Following(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFollowing)
}
