// Package guard holds the authorization predicates gating mutations. Guards
// are pure: they operate on records the caller already loaded and perform
// no I/O. A nil return means the action may proceed; a non-nil return is
// one of the model sentinel errors naming the reason.
package guard

import (
	"github.com/google/uuid"

	"github.com/dkovalev/pixelfeed/internal/model"
)

// SelfFollow rejects follow and unfollow attempts targeting the actor
// itself, regardless of store state.
func SelfFollow(actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return model.ErrSelfFollow
	}
	return nil
}

// DuplicateFollow rejects a follow when the target is already in the
// actor's following set. Unfollow is deliberately unguarded: removing a
// non-member edge is a no-op, not an error.
func DuplicateFollow(actor model.User, targetID uuid.UUID) error {
	if actor.Following.Contains(targetID) {
		return model.ErrAlreadyFollowing
	}
	return nil
}

// Ownership rejects mutation of a resource by anyone but its author.
func Ownership(actorID, authorID uuid.UUID) error {
	if actorID != authorID {
		return model.ErrForbidden
	}
	return nil
}

// DuplicateLike rejects a like when the actor is already in the post's like
// set. Unlike is deliberately unguarded, mirroring unfollow.
func DuplicateLike(post model.Post, actorID uuid.UUID) error {
	if post.Likes.Contains(actorID) {
		return model.ErrAlreadyLiked
	}
	return nil
}
