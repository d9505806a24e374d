// Package prefs tracks per-visitor favorite libraries. Favorites are keyed by
// an owner string (the session ID for anonymous visitors, the user ID once
// signed in) and only ever hold library IDs, never library data.
package prefs

import "context"

// Store records which libraries an owner has favorited.
type Store interface {
	List(ctx context.Context, owner string) ([]string, error)
	// Toggle flips the favorite state of a library and returns the new state.
	Toggle(ctx context.Context, owner, libraryID string) (bool, error)
	// RemoveLibrary forgets a library for every owner. Called when the
	// library is deleted from the directory.
	RemoveLibrary(ctx context.Context, libraryID string) error
}
