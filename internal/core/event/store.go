// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package event

import "context"

// # Event Data Access

// Repository defines the read contract of the external event store.
type Repository interface {

	/*
		ListRows returns every stored event ordered by start date ascending.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Row: Raw records, not yet normalized
		  - error: Transport or status failures
	*/
	ListRows(context context.Context) ([]Row, error)
}

// unavailableRepository stands in for a store that could not be opened.
type unavailableRepository struct {
	cause error
}

// Unavailable returns a [Repository] whose reads fail with cause, so a store
// that cannot be reached at startup follows the same load-failure path as a
// failed read.
func Unavailable(cause error) Repository {
	return unavailableRepository{cause: cause}
}

func (repository unavailableRepository) ListRows(context.Context) ([]Row, error) {
	return nil, repository.cause
}
