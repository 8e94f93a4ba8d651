// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/learnpath/internal/platform/middleware"
	requestutil "github.com/taibuivan/learnpath/internal/platform/request"
	"github.com/taibuivan/learnpath/internal/platform/respond"
	"github.com/taibuivan/learnpath/internal/platform/sec"
	"github.com/taibuivan/learnpath/pkg/convert"
	"github.com/taibuivan/learnpath/pkg/pagination"
	"github.com/taibuivan/learnpath/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for learning paths and their steps.
type Handler struct {
	service   *Service
	projector *Projector
}

// NewHandler constructs a new learning path [Handler].
func NewHandler(service *Service, projector *Projector) *Handler {
	return &Handler{service: service, projector: projector}
}

// Routes returns a [chi.Router] configured with the learning path endpoints.
//
// # Routing Strategy
//
//   - Reading (Public): published and unlisted paths; private ones for their editors.
//   - Authoring (Authenticated): mutations require a token and are rate limited per IP.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reading Endpoints
	router.Get("/", handler.searchPaths)
	router.Get("/tags", handler.listTags)
	router.Get("/{id}", handler.getPath)
	router.Get("/{id}/learningsteps", handler.listSteps)
	router.Get("/{id}/learningsteps/{stepID}", handler.getStep)

	// ## Authoring
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/mine", handler.listMine)

		authed.Group(func(write chi.Router) {
			write.Use(middleware.WriteRateLimit())

			write.Post("/", handler.createPath)
			write.Patch("/{id}", handler.updatePath)
			write.Put("/{id}/status", handler.updatePathStatus)
			write.Post("/{id}/copy", handler.copyPath)
			write.Delete("/{id}", handler.deletePath)

			write.Post("/{id}/learningsteps", handler.addStep)
			write.Patch("/{id}/learningsteps/{stepID}", handler.updateStep)
			write.Delete("/{id}/learningsteps/{stepID}", handler.deleteStep)
			write.Put("/{id}/learningsteps/{stepID}/seqNo", handler.reorderStep)
			write.Put("/{id}/learningsteps/{stepID}/status", handler.updateStepStatus)
		})
	})

	// ## Moderation
	router.With(middleware.RequireRole(sec.RoleModerator), middleware.WriteRateLimit()).
		Put("/{id}/verification", handler.updateVerification)

	return router
}

// # Path Endpoints

/*
GET /api/v1/learningpaths.

Description: Searches published learning paths.

Request:
  - query: string (Matches titles and tags)
  - language: string (Only paths supporting this language; also the display language)
  - tag: string (Exact tag)
  - ids: string (Comma separated path ids)
  - sort: string (-lastUpdated, lastUpdated, id, -id, duration, -duration)
  - page: int
  - page-size: int

Response:
  - 200: SearchResultV2
*/
func (handler *Handler) searchPaths(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := SearchFilter{
		Query:    queryParams.Get("query"),
		Language: queryParams.Get("language"),
		Tag:      queryParams.Get("tag"),
		IDs:      query.IDs(queryParams.Get("ids")),
		Sort:     SortOrder(queryParams.Get("sort")),
		Limit:    params.Limit,
		Offset:   params.Offset(),
	}

	paths, total, err := handler.service.SearchPaths(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := params.Page
	respond.OK(writer, handler.projector.Search(paths, total, &page, params.Limit, filter.Language))
}

/*
GET /api/v1/learningpaths/mine.

Response:
  - 200: []LearningPathSummaryV2 with pagination meta
  - 401: UNAUTHORIZED
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	paths, total, err := handler.service.ListMine(request.Context(), requestutil.Principal(request), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang := requestutil.Language(request, handler.service.Fallback())
	respond.Paginated(writer, handler.projector.Summaries(paths, lang), pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/learningpaths/tags.

Request:
  - language: string
  - fallback: bool (Use any language when neither the requested nor the default exists)

Response:
  - 200: LearningPathTagsSummary
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang := requestutil.Language(request, handler.service.Fallback())
	summary, err := handler.projector.Tags(tags, lang, anyLanguage(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

/*
GET /api/v1/learningpaths/{id}.

Request:
  - language: string
  - fallback: bool

Response:
  - 200: LearningPathV2
  - 403: FORBIDDEN (Private path of someone else)
  - 404: NOT_FOUND or LANGUAGE_NOT_FOUND
*/
func (handler *Handler) getPath(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.GetPath(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writePath(writer, request, path, requestutil.Language(request, ""), http.StatusOK)
}

/*
POST /api/v1/learningpaths.

Request (Body):
  - NewLearningPathV2: JSON object

Response:
  - 201: LearningPathV2
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
  - 422: Consistency errors (e.g. ILLEGAL_STATUS_TRANSITION)
*/
func (handler *Handler) createPath(writer http.ResponseWriter, request *http.Request) {
	var input NewLearningPathV2
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.CreatePath(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writePath(writer, request, path, input.Language, http.StatusCreated)
}

/*
PATCH /api/v1/learningpaths/{id}.

Request (Body):
  - UpdateLearningPathV2: JSON object (revision and language are required)

Response:
  - 200: LearningPathV2
  - 409: STALE_REVISION
*/
func (handler *Handler) updatePath(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningPathV2
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.UpdatePath(request.Context(), requestutil.Principal(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writePath(writer, request, path, input.Language, http.StatusOK)
}

/*
PUT /api/v1/learningpaths/{id}/status.

Request (Body):
  - UpdateLearningPathStatus: {"status": "PUBLISHED", "message": "..."}

Response:
  - 200: LearningPathV2
  - 204: No Content (status DELETED)
  - 422: ILLEGAL_STATUS_TRANSITION or NOT_READY_TO_PUBLISH
*/
func (handler *Handler) updatePathStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningPathStatus
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.UpdatePathStatus(request.Context(), requestutil.Principal(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if path.Status == StatusDeleted {
		respond.NoContent(writer)
		return
	}
	handler.writePath(writer, request, path, requestutil.Language(request, ""), http.StatusOK)
}

/*
PUT /api/v1/learningpaths/{id}/verification.

Description: Moderator review of a path (CREATED, VERIFIED, EXTERNAL).

Request (Body):
  - UpdateLearningPathVerification: {"verificationStatus": "VERIFIED"}

Response:
  - 200: LearningPathV2
  - 403: FORBIDDEN (Caller is not a moderator)
*/
func (handler *Handler) updateVerification(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningPathVerification
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.UpdateVerification(request.Context(), requestutil.Principal(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writePath(writer, request, path, requestutil.Language(request, ""), http.StatusOK)
}

/*
POST /api/v1/learningpaths/{id}/copy.

Request (Body, optional):
  - CopyLearningPathV2: {"title": "...", "language": "nb"}

Response:
  - 201: LearningPathV2 (The copy)
*/
func (handler *Handler) copyPath(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CopyLearningPathV2
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	path, err := handler.service.CopyPath(request.Context(), requestutil.Principal(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writePath(writer, request, path, input.Language, http.StatusCreated)
}

/*
DELETE /api/v1/learningpaths/{id}.

Response:
  - 204: No Content
  - 403: FORBIDDEN
*/
func (handler *Handler) deletePath(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePath(request.Context(), requestutil.Principal(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

// writePath projects a path and writes it. Mutations render in any language
// the path has, since the caller just wrote it.
func (handler *Handler) writePath(writer http.ResponseWriter, request *http.Request, path *LearningPath, lang string, status int) {
	anyLang := anyLanguage(request) || request.Method != http.MethodGet

	view, err := handler.projector.Path(path, lang, requestutil.Principal(request), anyLang)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if status == http.StatusCreated {
		respond.Created(writer, view)
		return
	}
	respond.OK(writer, view)
}

// anyLanguage reports whether the client accepts any translation ("fallback=true").
func anyLanguage(request *http.Request) bool {
	return convert.ToBool(request.URL.Query().Get("fallback"))
}
