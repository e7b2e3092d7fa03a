package services

import (
	"sort"
	"strconv"
	"time"

	"litrevu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedPageSize is the fixed number of items per feed page.
const FeedPageSize = 10

const (
	KindTicket = "ticket"
	KindReview = "review"
)

// FeedItem is the tagged union over tickets and reviews; exactly one of the
// two pointers is set, indicated by Kind.
type FeedItem struct {
	Kind   string         `json:"kind"`
	Ticket *models.Ticket `json:"ticket,omitempty"`
	Review *models.Review `json:"review,omitempty"`
}

func (i FeedItem) CreatedAt() time.Time {
	if i.Kind == KindTicket {
		return i.Ticket.CreatedAt
	}
	return i.Review.CreatedAt
}

func (i FeedItem) ItemID() uuid.UUID {
	if i.Kind == KindTicket {
		return i.Ticket.ID
	}
	return i.Review.ID
}

func (i FeedItem) DisplayTitle() string {
	if i.Kind == KindTicket {
		return i.Ticket.DisplayTitle()
	}
	return i.Review.DisplayTitle()
}

func (i FeedItem) OwnerID() uuid.UUID {
	if i.Kind == KindTicket {
		return i.Ticket.UserID
	}
	return i.Review.UserID
}

// Pagination is the page metadata the presentation layer renders, full or
// partial mode alike.
type Pagination struct {
	Page        int  `json:"page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// FeedPage is one page of the aggregated feed.
type FeedPage struct {
	Items      []FeedItem `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// FeedService assembles the reverse-chronological feed of tickets and
// reviews visible to a user.
type FeedService struct {
	db      *gorm.DB
	follows *FollowService
}

func NewFeedService(db *gorm.DB, follows *FollowService) *FeedService {
	return &FeedService{db: db, follows: follows}
}

// Feed returns one page of the merged feed. Visibility set = the user plus
// everyone they follow; reviews answering the user's own tickets are included
// even when their author is not followed.
func (s *FeedService) Feed(userID uuid.UUID, page int) (*FeedPage, error) {
	followed, err := s.follows.FollowedIDs(userID)
	if err != nil {
		return nil, err
	}
	visible := append(followed, userID)

	var tickets []models.Ticket
	if err := s.db.Where("user_id IN ?", visible).Find(&tickets).Error; err != nil {
		return nil, err
	}

	// A single query with both clauses cannot emit the same review twice,
	// which keeps the set semantics the merge requires.
	var reviews []models.Review
	err = s.db.
		Joins("JOIN tickets ON tickets.id = reviews.ticket_id").
		Where("reviews.user_id IN ? OR tickets.user_id = ?", visible, userID).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	items := mergeByRecency(tickets, reviews)
	return paginate(items, page), nil
}

// MyPosts returns everything the user authored, merged and sorted like the
// feed but without pagination.
func (s *FeedService) MyPosts(userID uuid.UUID) ([]FeedItem, error) {
	var tickets []models.Ticket
	if err := s.db.Where("user_id = ?", userID).Find(&tickets).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := s.db.Where("user_id = ?", userID).Find(&reviews).Error; err != nil {
		return nil, err
	}

	return mergeByRecency(tickets, reviews), nil
}

// mergeByRecency flattens both kinds into one sequence sorted by creation
// time, newest first. Ties break deterministically on kind, then id.
func mergeByRecency(tickets []models.Ticket, reviews []models.Review) []FeedItem {
	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for i := range tickets {
		items = append(items, FeedItem{Kind: KindTicket, Ticket: &tickets[i]})
	}
	for i := range reviews {
		items = append(items, FeedItem{Kind: KindReview, Review: &reviews[i]})
	}

	sort.Slice(items, func(a, b int) bool {
		ta, tb := items[a].CreatedAt(), items[b].CreatedAt()
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		if items[a].Kind != items[b].Kind {
			return items[a].Kind < items[b].Kind
		}
		return items[a].ItemID().String() < items[b].ItemID().String()
	})
	return items
}

// paginate slices the merged sequence into a fixed-size page. Out-of-range
// pages clamp to the last page instead of erroring.
func paginate(items []FeedItem, page int) *FeedPage {
	totalItems := len(items)
	totalPages := (totalItems + FeedPageSize - 1) / FeedPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * FeedPageSize
	end := start + FeedPageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return &FeedPage{
		Items: items[start:end],
		Pagination: Pagination{
			Page:        page,
			TotalPages:  totalPages,
			TotalItems:  totalItems,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}
}

// ParsePage interprets the page query parameter: anything non-numeric or
// below one falls back to page one.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
