// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"context"

	"github.com/taibuivan/learnpath/internal/core/language"
)

// # Filters

// SortOrder selects the ordering of search results.
type SortOrder string

const (
	SortLastUpdatedDesc SortOrder = "-lastUpdated"
	SortLastUpdatedAsc  SortOrder = "lastUpdated"
	SortIDAsc           SortOrder = "id"
	SortIDDesc          SortOrder = "-id"
	SortDurationAsc     SortOrder = "duration"
	SortDurationDesc    SortOrder = "-duration"
)

// IsValid reports whether o is a recognised [SortOrder].
func (o SortOrder) IsValid() bool {
	switch o {
	case SortLastUpdatedDesc, SortLastUpdatedAsc, SortIDAsc, SortIDDesc, SortDurationAsc, SortDurationDesc:
		return true
	}
	return false
}

// SearchFilter narrows the set of published learning paths.
type SearchFilter struct {
	// Query matches titles and tags, case-insensitively.
	Query string
	// Language restricts results to paths supporting this tag.
	Language string
	// Tag restricts results to paths carrying this exact tag in any language.
	Tag string
	// IDs restricts results to the given path ids.
	IDs   []int64
	Sort  SortOrder
	Limit int
	// Offset is the number of rows skipped.
	Offset int
}

// # Repository

// Repository defines the persistence contract for the learning path aggregate.
//
// Writes are all-or-nothing: a path and its steps are stored in one transaction.
type Repository interface {
	// Create stores a new aggregate and assigns ids to the path and its steps.
	Create(context context.Context, path *LearningPath) error

	// FindByID loads a path with its steps ordered by seqNo.
	FindByID(context context.Context, id int64) (*LearningPath, error)

	// Update replaces the stored aggregate if its revision is still priorRevision.
	// A concurrent writer that got there first yields STALE_REVISION.
	Update(context context.Context, path *LearningPath, priorRevision int) error

	// Delete removes the path, its revision history and its steps.
	Delete(context context.Context, id int64, priorRevision int) error

	// Search lists published paths without their steps.
	Search(context context.Context, filter SearchFilter) ([]*LearningPath, int, error)

	// ListByOwner lists the paths of one owner without their steps.
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*LearningPath, int, error)

	// ListTags returns every tag used by published paths, grouped by language.
	ListTags(context context.Context) ([]language.Tags, error)
}
