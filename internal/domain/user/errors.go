package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSelfFollowNotAllowed = errors.New("you cannot subscribe to yourself")
	ErrAlreadyFollowing     = errors.New("already subscribed to this user")
	ErrNotFollowing         = errors.New("not subscribed to this user")
)
