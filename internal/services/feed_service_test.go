package services_test

import (
	"fmt"
	"testing"
	"time"

	"litrevu/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedIDs(items []services.FeedItem) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

func TestFeedShowsOwnAndFollowedPosts(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	follow(t, db, alice, bob)

	base := time.Now().Add(-time.Hour)
	mine := createTicket(t, db, alice, "Mine", base)
	bobs := createTicket(t, db, bob, "Bob's", base.Add(time.Minute))
	carols := createTicket(t, db, carol, "Carol's", base.Add(2*time.Minute))

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))
	page, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)

	ids := feedIDs(page.Items)
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, bobs.ID)
	assert.NotContains(t, ids, carols.ID, "posts from non-followed users must not appear")
}

func TestFeedIncludesRepliesToOwnTickets(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Bob does not follow Alice and Alice does not follow Bob.
	base := time.Now().Add(-time.Hour)
	dune := createTicket(t, db, alice, "Dune", base)
	reply := createReview(t, db, bob, dune, "Great read", base.Add(time.Minute))

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))

	page, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)
	assert.Contains(t, feedIDs(page.Items), reply.ID,
		"a reply to my own ticket must be visible even from a non-followed author")

	// Bob sees his own review but not Alice's ticket beyond the one he
	// answered... the ticket itself is Alice's and Bob does not follow her.
	bobPage, err := feedSvc.Feed(bob.ID, 1)
	require.NoError(t, err)
	assert.Contains(t, feedIDs(bobPage.Items), reply.ID)
	assert.NotContains(t, feedIDs(bobPage.Items), dune.ID)
}

func TestFeedExcludesThirdParties(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	follow(t, db, alice, bob)
	t2 := createTicket(t, db, bob, "T2", time.Now())

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))

	alicePage, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)
	assert.Contains(t, feedIDs(alicePage.Items), t2.ID)

	carolPage, err := feedSvc.Feed(carol.ID, 1)
	require.NoError(t, err)
	assert.NotContains(t, feedIDs(carolPage.Items), t2.ID)
}

func TestFeedSortsNewestFirst(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	oldT := createTicket(t, db, alice, "old", base)
	newT := createTicket(t, db, alice, "new", base.Add(10*time.Minute))
	review := createReview(t, db, alice, oldT, "middle", base.Add(5*time.Minute))

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))
	page, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, newT.ID, page.Items[0].ItemID())
	assert.Equal(t, review.ID, page.Items[1].ItemID())
	assert.Equal(t, oldT.ID, page.Items[2].ItemID())
}

func TestFeedTieBreakIsDeterministic(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	ts := time.Now().Truncate(time.Second)
	a := createTicket(t, db, alice, "a", ts)
	b := createTicket(t, db, alice, "b", ts)
	review := createReview(t, db, alice, a, "same instant", ts)

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))

	first, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)
	second, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, feedIDs(first.Items), feedIDs(second.Items))

	// Reviews sort before tickets on equal timestamps, then by id.
	assert.Equal(t, review.ID, first.Items[0].ItemID())
	wantTickets := []uuid.UUID{a.ID, b.ID}
	if b.ID.String() < a.ID.String() {
		wantTickets = []uuid.UUID{b.ID, a.ID}
	}
	assert.Equal(t, wantTickets, feedIDs(first.Items[1:]))
}

func TestFeedPagination(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 25; i++ {
		createTicket(t, db, alice, fmt.Sprintf("t%02d", i), base.Add(time.Duration(i)*time.Minute))
	}

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))

	page1, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, 1, page1.Pagination.Page)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.Equal(t, 25, page1.Pagination.TotalItems)
	assert.True(t, page1.Pagination.HasNext)
	assert.False(t, page1.Pagination.HasPrevious)

	page3, err := feedSvc.Feed(alice.ID, 3)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.Pagination.HasNext)
	assert.True(t, page3.Pagination.HasPrevious)

	// A page past the end clamps to the last page instead of erroring.
	clamped, err := feedSvc.Feed(alice.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, clamped.Pagination.Page)
	assert.Equal(t, feedIDs(page3.Items), feedIDs(clamped.Items))
}

func TestFeedEmpty(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))
	page, err := feedSvc.Feed(alice.ID, 1)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
}

func TestMyPosts(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	mine := createTicket(t, db, alice, "mine", base)
	bobs := createTicket(t, db, bob, "bob's", base.Add(time.Minute))
	myReview := createReview(t, db, alice, bobs, "my review", base.Add(2*time.Minute))

	feedSvc := services.NewFeedService(db, services.NewFollowService(db))
	items, err := feedSvc.MyPosts(alice.ID)
	require.NoError(t, err)

	ids := feedIDs(items)
	assert.Contains(t, ids, mine.ID)
	assert.Contains(t, ids, myReview.ID)
	assert.NotContains(t, ids, bobs.ID)
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, services.ParsePage(""))
	assert.Equal(t, 1, services.ParsePage("abc"))
	assert.Equal(t, 1, services.ParsePage("0"))
	assert.Equal(t, 1, services.ParsePage("-3"))
	assert.Equal(t, 7, services.ParsePage("7"))
}
