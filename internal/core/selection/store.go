// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import "context"

// # Session Storage

/*
Store persists the [State] of selection sessions between HTTP requests.

Writes are last-writer-wins: two concurrent actions on the same session
both succeed and the later Save is kept.
*/
type Store interface {
	/*
		Load returns the state of a session.

		Errors:
		  - NOT_FOUND: The session does not exist or has expired
	*/
	Load(context context.Context, sessionID string) (State, error)

	// Save stores state under sessionID and refreshes its expiry.
	Save(context context.Context, sessionID string, state State) error
}
