// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

import (
	"net/http"

	requestutil "github.com/taibuivan/learnpath/internal/platform/request"
	"github.com/taibuivan/learnpath/internal/platform/respond"
)

// # Step Endpoints

// stepIDs reads the path and step ids of a step route.
func stepIDs(request *http.Request) (int64, int64, error) {
	pathID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		return 0, 0, err
	}
	stepID, err := requestutil.Int64Param(request, "stepID")
	if err != nil {
		return 0, 0, err
	}
	return pathID, stepID, nil
}

/*
GET /api/v1/learningpaths/{id}/learningsteps.

Response:
  - 200: LearningStepContainerSummary
*/
func (handler *Handler) listSteps(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.ListSteps(request.Context(), requestutil.Principal(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.projector.Steps(path, requestutil.Language(request, "")))
}

/*
GET /api/v1/learningpaths/{id}/learningsteps/{stepID}.

Response:
  - 200: LearningStepV2
  - 404: NOT_FOUND
*/
func (handler *Handler) getStep(writer http.ResponseWriter, request *http.Request) {
	pathID, stepID, err := stepIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, step, err := handler.service.GetStep(request.Context(), requestutil.Principal(request), pathID, stepID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.projector.Step(path, step, requestutil.Language(request, ""), requestutil.Principal(request)))
}

/*
POST /api/v1/learningpaths/{id}/learningsteps.

Request (Body):
  - NewLearningStepV2: JSON object

Response:
  - 201: LearningStepV2
  - 422: AMBIGUOUS_STEP_PAYLOAD, EMPTY_STEP_PAYLOAD, INCOMPLETE_TRANSLATION
*/
func (handler *Handler) addStep(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input NewLearningStepV2
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := requestutil.Principal(request)
	path, step, err := handler.service.AddStep(request.Context(), principal, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, handler.projector.Step(path, step, input.Language, principal))
}

/*
PATCH /api/v1/learningpaths/{id}/learningsteps/{stepID}.

Request (Body):
  - UpdateLearningStepV2: JSON object (revision is the step revision that was read)

Response:
  - 200: LearningStepV2
  - 409: STALE_REVISION
*/
func (handler *Handler) updateStep(writer http.ResponseWriter, request *http.Request) {
	pathID, stepID, err := stepIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningStepV2
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := requestutil.Principal(request)
	path, step, err := handler.service.UpdateStep(request.Context(), principal, pathID, stepID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.projector.Step(path, step, input.Language, principal))
}

/*
PUT /api/v1/learningpaths/{id}/learningsteps/{stepID}/status.

Request (Body):
  - UpdateLearningStepStatus: {"status": "DRAFT"}

Response:
  - 200: LearningStepV2
*/
func (handler *Handler) updateStepStatus(writer http.ResponseWriter, request *http.Request) {
	pathID, stepID, err := stepIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningStepStatus
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := requestutil.Principal(request)
	path, step, err := handler.service.UpdateStepStatus(request.Context(), principal, pathID, stepID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.projector.Step(path, step, requestutil.Language(request, ""), principal))
}

/*
PUT /api/v1/learningpaths/{id}/learningsteps/{stepID}/seqNo.

Request (Body):
  - UpdateLearningStepSeqNo: {"seqNo": 0}

Response:
  - 200: {"seqNo": n}
  - 400: VALIDATION_ERROR (seqNo out of range)
*/
func (handler *Handler) reorderStep(writer http.ResponseWriter, request *http.Request) {
	pathID, stepID, err := stepIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateLearningStepSeqNo
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, step, err := handler.service.ReorderStep(request.Context(), requestutil.Principal(request), pathID, stepID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, UpdateLearningStepSeqNo{SeqNo: step.SeqNo})
}

/*
DELETE /api/v1/learningpaths/{id}/learningsteps/{stepID}.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteStep(writer http.ResponseWriter, request *http.Request) {
	pathID, stepID, err := stepIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.DeleteStep(request.Context(), requestutil.Principal(request), pathID, stepID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
