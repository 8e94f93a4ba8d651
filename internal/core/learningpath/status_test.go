// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/learnpath/internal/core/learningpath"
)

func TestCanTransition_Creation(t *testing.T) {
	assert.True(t, learningpath.CanTransition(nil, learningpath.StatusPrivate))
	assert.True(t, learningpath.CanTransition(nil, learningpath.StatusPlanned))
	assert.False(t, learningpath.CanTransition(nil, learningpath.StatusPublished))
	assert.False(t, learningpath.CanTransition(nil, learningpath.StatusDeleted))
}

func TestCanTransition_Table(t *testing.T) {
	from := func(s learningpath.Status) *learningpath.Status { return &s }

	assert.True(t, learningpath.CanTransition(from(learningpath.StatusPlanned), learningpath.StatusPrivate))
	assert.False(t, learningpath.CanTransition(from(learningpath.StatusPlanned), learningpath.StatusPublished))
	assert.True(t, learningpath.CanTransition(from(learningpath.StatusPrivate), learningpath.StatusPublished))
	assert.True(t, learningpath.CanTransition(from(learningpath.StatusUnlisted), learningpath.StatusPublished))
	assert.False(t, learningpath.CanTransition(from(learningpath.StatusPublished), learningpath.StatusPlanned))
	assert.True(t, learningpath.CanTransition(from(learningpath.StatusPublished), learningpath.StatusPublished))
	assert.False(t, learningpath.CanTransition(from(learningpath.StatusPrivate), learningpath.Status("ARCHIVED")))
}

func TestCanTransition_Closed(t *testing.T) {
	deleted := learningpath.StatusDeleted

	for _, status := range learningpath.AllStatuses() {
		assert.True(t, status.IsValid(), status)
		assert.False(t, learningpath.CanTransition(&deleted, status), "DELETED -> %s", status)

		if status != learningpath.StatusDeleted {
			current := status
			assert.True(t, learningpath.CanTransition(&current, learningpath.StatusDeleted), "%s -> DELETED", status)
		}
	}
}
