package services

import (
	"errors"
	"strings"

	"litrevu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("username required")
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
)

// FollowService maintains the directed follow graph that gates feed
// visibility.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow creates an edge from follower to the named user. The checks run in a
// fixed order so the surfaced message matches the first failing rule: blank
// input, unknown user, self-follow, existing edge.
func (s *FollowService) Follow(followerID uuid.UUID, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	var target models.User
	if err := s.db.Where("username = ?", username).First(&target).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if target.ID == followerID {
		return nil, ErrSelfFollow
	}

	var existing models.UserFollow
	err := s.db.Where("follower_id = ? AND followed_id = ?", followerID, target.ID).First(&existing).Error
	if err == nil {
		return &target, ErrAlreadyFollowing
	}

	edge := models.UserFollow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FollowedID: target.ID,
	}
	if err := s.db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &target, ErrAlreadyFollowing
		}
		return nil, err
	}
	return &target, nil
}

// Unfollow removes the edge to the target user. Removing a non-edge is an
// error, not a silent success.
func (s *FollowService) Unfollow(followerID, targetID uuid.UUID) (*models.User, error) {
	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	result := s.db.Where("follower_id = ? AND followed_id = ?", followerID, targetID).
		Delete(&models.UserFollow{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return &target, ErrNotFollowing
	}
	return &target, nil
}

// Following lists the users the given user follows.
func (s *FollowService) Following(userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN user_follows ON user_follows.followed_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

// Followers lists the users following the given user.
func (s *FollowService) Followers(userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followed_id = ?", userID).
		Find(&users).Error
	return users, err
}

// FollowedIDs returns the ids of every user the given user follows.
func (s *FollowService) FollowedIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.UserFollow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	return ids, err
}
