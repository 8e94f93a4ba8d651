// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

// transitions lists every permitted status change. Keeping a status unchanged is
// not a transition and is handled separately in [CanTransition].
var transitions = map[Status][]Status{
	StatusPlanned:   {StatusPrivate, StatusDeleted},
	StatusPrivate:   {StatusPublished, StatusUnlisted, StatusDeleted},
	StatusPublished: {StatusPrivate, StatusUnlisted, StatusDeleted},
	StatusUnlisted:  {StatusPrivate, StatusPublished, StatusDeleted},
	StatusDeleted:   {},
}

// creationStatuses are the statuses a brand new path may start in.
var creationStatuses = []Status{StatusPrivate, StatusPlanned}

/*
CanTransition reports whether a path may move from one status to another.

A nil from means the path does not exist yet. Nothing leaves DELETED, not even
DELETED itself.
*/
func CanTransition(from *Status, to Status) bool {
	if from == nil {
		for _, allowed := range creationStatuses {
			if to == allowed {
				return true
			}
		}
		return false
	}

	if *from == StatusDeleted {
		return false
	}
	if *from == to {
		return to.IsValid()
	}

	for _, allowed := range transitions[*from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// AllStatuses returns every [Status] value in a stable order.
func AllStatuses() []Status {
	return []Status{StatusPlanned, StatusPrivate, StatusPublished, StatusUnlisted, StatusDeleted}
}
