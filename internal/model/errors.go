package model

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired means the token was once valid but its lifetime ended.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid means the token is malformed, tampered with or signed
	// with a different key.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrUserNotFound means a user record does not exist, including the case
	// of a valid token referencing a deleted user.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound is the generic missing-record error returned by stores.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor is not allowed to perform the operation
	// on this resource.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfFollow rejects following or unfollowing oneself.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing rejects a duplicate follow edge.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrAlreadyLiked rejects a duplicate like.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrEmailTaken rejects registration with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken rejects a username already in use.
	ErrUsernameTaken = errors.New("username already taken")
)
