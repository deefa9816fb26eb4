package models

import "time"

// Follow records that follower follows following. At most one follow may
// exist per ordered pair; self-follow is rejected upstream.
type Follow struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	FollowerID  string    `json:"followerId" gorm:"index;uniqueIndex:idx_follower_following;size:36"`
	FollowingID string    `json:"followingId" gorm:"index;uniqueIndex:idx_follower_following;size:36"`
	CreatedAt   time.Time `json:"createdAt"`
}
