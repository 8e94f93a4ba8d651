// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/learnpath/internal/core/language"
	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/apperr"
)

// memoryRepository is an in-memory [learningpath.Repository] with the same
// revision semantics as the Postgres store.
type memoryRepository struct {
	mu       sync.Mutex
	paths    map[int64]*learningpath.LearningPath
	nextPath int64
	nextStep int64
}

func newMemoryRepository(seed ...*learningpath.LearningPath) *memoryRepository {
	repo := &memoryRepository{paths: map[int64]*learningpath.LearningPath{}, nextPath: 100, nextStep: 1000}
	for _, path := range seed {
		repo.paths[path.ID] = path.Clone()
	}
	return repo
}

func (r *memoryRepository) Create(_ context.Context, path *learningpath.LearningPath) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextPath++
	path.ID = r.nextPath
	path.LastUpdated = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.assignStepIDs(path)
	r.paths[path.ID] = path.Clone()
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*learningpath.LearningPath, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, ok := r.paths[id]
	if !ok {
		return nil, apperr.NotFound("Learning path").WithEntity(id)
	}
	return path.Clone(), nil
}

func (r *memoryRepository) Update(_ context.Context, path *learningpath.LearningPath, priorRevision int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.paths[path.ID]
	if !ok {
		return apperr.NotFound("Learning path").WithEntity(path.ID)
	}
	if stored.Revision != priorRevision {
		return apperr.StaleRevision(priorRevision+1, stored.Revision+1).WithEntity(path.ID)
	}

	r.assignStepIDs(path)
	r.paths[path.ID] = path.Clone()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64, priorRevision int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.paths[id]
	if !ok {
		return apperr.NotFound("Learning path").WithEntity(id)
	}
	if stored.Revision != priorRevision {
		return apperr.StaleRevision(priorRevision+1, stored.Revision+1).WithEntity(id)
	}
	delete(r.paths, id)
	return nil
}

func (r *memoryRepository) Search(_ context.Context, filter learningpath.SearchFilter) ([]*learningpath.LearningPath, int, error) {
	return r.list(func(path *learningpath.LearningPath) bool {
		if path.Status != learningpath.StatusPublished {
			return false
		}
		if filter.Language == "" {
			return true
		}
		for _, tag := range path.SupportedLanguages {
			if tag == filter.Language {
				return true
			}
		}
		return false
	})
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*learningpath.LearningPath, int, error) {
	return r.list(func(path *learningpath.LearningPath) bool {
		return path.OwnerID != nil && *path.OwnerID == ownerID
	})
}

func (r *memoryRepository) ListTags(_ context.Context) ([]language.Tags, error) {
	paths, _, _ := r.list(func(path *learningpath.LearningPath) bool { return path.Status == learningpath.StatusPublished })

	byLanguage := map[string][]string{}
	for _, path := range paths {
		for _, tags := range path.Tags {
			byLanguage[tags.Language] = append(byLanguage[tags.Language], tags.Tags...)
		}
	}

	var result []language.Tags
	for lang, tags := range byLanguage {
		result = append(result, language.Tags{Tags: language.DedupeTags(tags), Language: lang})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Language < result[j].Language })
	return result, nil
}

func (r *memoryRepository) list(keep func(*learningpath.LearningPath) bool) ([]*learningpath.LearningPath, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*learningpath.LearningPath
	for _, path := range r.paths {
		if keep(path) {
			result = append(result, path.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *memoryRepository) assignStepIDs(path *learningpath.LearningPath) {
	for i := range path.LearningSteps {
		if path.LearningSteps[i].ID == 0 {
			r.nextStep++
			path.LearningSteps[i].ID = r.nextStep
		}
	}
}

// knownLanguages is a [learningpath.LanguageCatalogue] over a fixed tag set.
type knownLanguages []string

func (k knownLanguages) EnsureKnown(_ context.Context, tags []string) error {
	var details []apperr.FieldError
	for _, tag := range tags {
		found := false
		for _, known := range k {
			if language.Same(tag, known) {
				found = true
			}
		}
		if !found {
			details = append(details, apperr.FieldError{Field: "language", Message: "Unknown language '" + tag + "'"})
		}
	}
	if len(details) > 0 {
		return apperr.ValidationError("Unknown language", details...)
	}
	return nil
}

// writeGate is a fixed [learningpath.WriteGate].
type writeGate bool

func (g writeGate) WriteRestricted(context.Context) (bool, error) { return bool(g), nil }

func newTestService(repo learningpath.Repository) *learningpath.Service {
	return newGatedService(repo, writeGate(false))
}

func newGatedService(repo learningpath.Repository, gate learningpath.WriteGate) *learningpath.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return learningpath.NewService(repo, knownLanguages{"nb", "nn", "en", "se"}, gate, language.DefaultPolicy("nb"), logger)
}
