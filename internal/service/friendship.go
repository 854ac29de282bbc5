package service

import (
	"errors"

	"sportsvitae/backend/internal/models"

	"gorm.io/gorm"
)

// AreFriends reports whether a symmetric friends edge exists.
func AreFriends(db *gorm.DB, userID, friendID uint) (bool, error) {
	var count int64
	err := db.Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

// FriendIDs returns the IDs of all of a user's friends.
func FriendIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Table("user_friends").
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// addFriendEdge writes both directions of the friends relation so it is
// visible from either side.
func addFriendEdge(db *gorm.DB, userID, friendID uint) error {
	if err := db.Model(&models.User{ID: userID}).Association("Friends").Append(&models.User{ID: friendID}); err != nil {
		return err
	}
	return db.Model(&models.User{ID: friendID}).Association("Friends").Append(&models.User{ID: userID})
}

// removeFriendEdge deletes both directions of the friends relation.
func removeFriendEdge(db *gorm.DB, userID, friendID uint) error {
	if err := db.Model(&models.User{ID: userID}).Association("Friends").Delete(&models.User{ID: friendID}); err != nil {
		return err
	}
	return db.Model(&models.User{ID: friendID}).Association("Friends").Delete(&models.User{ID: userID})
}

// SendFriendRequest creates a pending request from one complete user to
// another. A repeated send is a validation error, never a second row.
func SendFriendRequest(db *gorm.DB, fromID, toID uint) (*models.FriendRequest, error) {
	if fromID == toID {
		return nil, newValidationError("to_user", "User cannot send friend request to themselves.")
	}

	from, err := GetUser(db, fromID)
	if err != nil {
		return nil, err
	}
	to, err := GetUser(db, toID)
	if err != nil {
		return nil, err
	}

	if !from.IsComplete() {
		return nil, newValidationError("from_user", "Only fully registered users can send friend requests.")
	}
	if !to.IsComplete() {
		return nil, newValidationError("to_user", "Only fully registered users can receive friend requests.")
	}

	friends, err := AreFriends(db, fromID, toID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, newValidationError("to_user", "Users are already friends.")
	}

	request := models.FriendRequest{FromUserID: fromID, ToUserID: toID}
	if err := db.Create(&request).Error; err != nil {
		// The (from, to) uniqueness constraint surfaces as a user-facing
		// validation error, not a silent no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newValidationError("to_user", "Friend request already sent to this user.")
		}
		return nil, err
	}
	return &request, nil
}

// AcceptFriendRequest establishes the symmetric friendship, marks the
// request accepted and deletes any reverse pending request, which is now
// moot. Only the recipient may accept.
func AcceptFriendRequest(db *gorm.DB, actorID, requestID uint) error {
	var request models.FriendRequest
	err := db.First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if request.ToUserID != actorID {
		return ErrForbidden
	}
	if request.Accepted {
		return newValidationError("friend_request", "Friend request already accepted.")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := addFriendEdge(tx, request.FromUserID, request.ToUserID); err != nil {
			return err
		}
		if err := tx.Model(&request).Update("accepted", true).Error; err != nil {
			return err
		}
		return tx.Where("from_user_id = ? AND to_user_id = ?", request.ToUserID, request.FromUserID).
			Delete(&models.FriendRequest{}).Error
	})
	if err != nil {
		return err
	}

	Events.Publish(db, Event{
		Type:         EventFriendRequestAccepted,
		ActorID:      request.ToUserID,
		TargetUserID: request.FromUserID,
	})
	return nil
}

// RejectFriendRequest deletes the request and any reverse pending request.
// Only the recipient may reject.
func RejectFriendRequest(db *gorm.DB, actorID, requestID uint) error {
	var request models.FriendRequest
	err := db.First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if request.ToUserID != actorID {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&request).Error; err != nil {
			return err
		}
		return tx.Where("from_user_id = ? AND to_user_id = ?", request.ToUserID, request.FromUserID).
			Delete(&models.FriendRequest{}).Error
	})
}

// CancelFriendRequest is the sender retracting their own request. A reverse
// request from the other party, if any, is unrelated and preserved.
func CancelFriendRequest(db *gorm.DB, actorID, requestID uint) error {
	var request models.FriendRequest
	err := db.First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if request.FromUserID != actorID {
		return ErrForbidden
	}
	return db.Delete(&request).Error
}

// Unfriend removes the symmetric edge and every request row between the
// pair in either direction, resetting the relationship to no history.
func Unfriend(db *gorm.DB, userID, friendID uint) error {
	if userID == friendID {
		return newValidationError("friend_id", "You cannot unfriend yourself.")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", friendID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return newValidationError("friend_id", "Invalid friend id.")
	}

	friends, err := AreFriends(db, userID, friendID)
	if err != nil {
		return err
	}
	if !friends {
		return newValidationError("friend_id", "You are not currently friends with this user.")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := removeFriendEdge(tx, userID, friendID); err != nil {
			return err
		}
		return tx.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userID, friendID, friendID, userID).
			Delete(&models.FriendRequest{}).Error
	})
}

// ListFriendRequests returns pending requests to a user, not-yet-viewed
// first, most recently sent first within each group.
func ListFriendRequests(db *gorm.DB, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := db.Preload("FromUser").
		Where("to_user_id = ? AND accepted = ?", userID, false).
		Order("viewed asc").Order("sent_on desc").
		Find(&requests).Error
	return requests, err
}

// LatestFriendRequests returns the top 3 pending requests.
func LatestFriendRequests(db *gorm.DB, userID uint) ([]models.FriendRequest, error) {
	requests, err := ListFriendRequests(db, userID)
	if err != nil {
		return nil, err
	}
	if len(requests) > 3 {
		requests = requests[:3]
	}
	return requests, nil
}

// MarkFriendRequestsViewed bulk-marks a user's pending requests viewed.
func MarkFriendRequestsViewed(db *gorm.DB, userID uint, ids []uint) error {
	if len(ids) == 0 {
		return newValidationError("friend_requests_viewed", "This field is required.")
	}
	return db.Model(&models.FriendRequest{}).
		Where("to_user_id = ? AND id IN ?", userID, ids).
		Update("viewed", true).Error
}

// FriendSuggestions returns candidates sharing the user's normalized
// location key, excluding self, existing friends and users already
// requested. Ordered by ID; no further ranking.
func FriendSuggestions(db *gorm.DB, userID uint) ([]models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.User{})
	if user.IsDomestic() {
		if user.City == nil {
			return []models.User{}, nil
		}
		query = query.Where("city = ?", *user.City)
	} else {
		if user.CityText == "" {
			return []models.User{}, nil
		}
		query = query.Where("city_text = ?", user.CityText)
	}

	friendIDs, err := FriendIDs(db, userID)
	if err != nil {
		return nil, err
	}

	var requestedIDs []uint
	if err := db.Model(&models.FriendRequest{}).
		Where("from_user_id = ?", userID).
		Pluck("to_user_id", &requestedIDs).Error; err != nil {
		return nil, err
	}

	excluded := append(append([]uint{userID}, friendIDs...), requestedIDs...)

	var suggestions []models.User
	err = query.Where("id NOT IN ?", excluded).Order("id asc").Find(&suggestions).Error
	return suggestions, err
}
