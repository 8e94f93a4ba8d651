// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/learnpath/internal/core/learningpath"
	"github.com/taibuivan/learnpath/internal/platform/ctxutil"
	"github.com/taibuivan/learnpath/internal/platform/sec"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code string          `json:"code"`
}

func newRouter(repo learningpath.Repository) http.Handler {
	return learningpath.NewHandler(newTestService(repo), newProjector()).Routes()
}

// serve performs a request as principal; the zero principal is anonymous.
func serve(t *testing.T, router http.Handler, principal sec.Principal, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if !principal.IsAnonymous() {
		claims := &sec.AuthClaims{UserID: principal.UserID, Role: string(principal.Role)}
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func TestHandler_GetPath(t *testing.T) {
	router := newRouter(newMemoryRepository(samplePath()))

	recorder, body := serve(t, router, owner, http.MethodGet, "/7?language=en", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var view learningpath.LearningPathV2
	require.NoError(t, json.Unmarshal(body.Data, &view))
	assert.Equal(t, "Algebra", view.Title.Title)
	assert.True(t, view.CanEdit)

	recorder, body = serve(t, router, sec.Principal{}, http.MethodGet, "/7", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "FORBIDDEN", body.Code)

	recorder, body = serve(t, router, owner, http.MethodGet, "/abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestHandler_CreateAndPublish(t *testing.T) {
	router := newRouter(newMemoryRepository())

	recorder, body := serve(t, router, sec.Principal{}, http.MethodPost, "/", `{"title":"Brøk","description":"Regning","language":"nb"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, body = serve(t, router, owner, http.MethodPost, "/", `{"title":"Brøk","description":"Regning","language":"nb",
		"copyright":{"license":{"license":"CC-BY-4.0"},"contributors":[{"type":"writer","name":"Kari"}]}}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created learningpath.LearningPathV2
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, learningpath.StatusPrivate, created.Status)
	assert.Equal(t, []string{"nb"}, created.SupportedLanguages)

	target := "/" + jsonNumber(created.ID)

	recorder, body = serve(t, router, owner, http.MethodPut, target+"/status", `{"status":"PUBLISHED"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, "NOT_READY_TO_PUBLISH", body.Code)

	recorder, _ = serve(t, router, owner, http.MethodPost, target+"/learningsteps", `{"title":"Innledning","description":"Hei","type":"TEXT","language":"nb"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder, body = serve(t, router, owner, http.MethodPut, target+"/status", `{"status":"PUBLISHED"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var published learningpath.LearningPathV2
	require.NoError(t, json.Unmarshal(body.Data, &published))
	assert.Equal(t, learningpath.StatusPublished, published.Status)
	assert.Equal(t, 3, published.Revision)

	recorder, body = serve(t, router, sec.Principal{}, http.MethodGet, "/?language=nb", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var result learningpath.SearchResultV2
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "nb", result.Language)
}

func TestHandler_UpdateStale(t *testing.T) {
	stored := samplePath()
	stored.Revision = 3
	router := newRouter(newMemoryRepository(stored))

	recorder, body := serve(t, router, owner, http.MethodPatch, "/7", `{"revision":2,"language":"nb","title":"Ny"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "STALE_REVISION", body.Code)

	recorder, _ = serve(t, router, owner, http.MethodPatch, "/7", `{"revision":3,"language":"nb","title":"Ny"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, body = serve(t, router, owner, http.MethodPatch, "/7", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Steps(t *testing.T) {
	router := newRouter(newMemoryRepository(samplePath()))

	recorder, body := serve(t, router, owner, http.MethodGet, "/7/learningsteps", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var container learningpath.LearningStepContainerSummary
	require.NoError(t, json.Unmarshal(body.Data, &container))
	assert.Len(t, container.LearningSteps, 2)

	recorder, body = serve(t, router, owner, http.MethodPut, "/7/learningsteps/12/seqNo", `{"seqNo":0}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.JSONEq(t, `{"seqNo":0}`, string(body.Data))

	recorder, body = serve(t, router, owner, http.MethodGet, "/7/learningsteps/11", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var step learningpath.LearningStepV2
	require.NoError(t, json.Unmarshal(body.Data, &step))
	assert.Equal(t, 1, step.SeqNo)

	recorder, _ = serve(t, router, owner, http.MethodDelete, "/7/learningsteps/12", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = serve(t, router, owner, http.MethodGet, "/7/learningsteps/12", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_DeleteAndMine(t *testing.T) {
	router := newRouter(newMemoryRepository(samplePath()))

	recorder, body := serve(t, router, owner, http.MethodGet, "/mine", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, string(body.Data), `"id":7`)

	recorder, _ = serve(t, router, sec.Principal{}, http.MethodGet, "/mine", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = serve(t, router, owner, http.MethodDelete, "/7", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, _ = serve(t, router, owner, http.MethodGet, "/7", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func jsonNumber(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestHandler_Verification(t *testing.T) {
	router := newRouter(newMemoryRepository(samplePath()))

	recorder, body := serve(t, router, owner, http.MethodPut, "/7/verification", `{"verificationStatus":"VERIFIED"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "FORBIDDEN", body.Code)

	recorder, body = serve(t, router, moderator, http.MethodPut, "/7/verification", `{"verificationStatus":"BOGUS"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	recorder, body = serve(t, router, moderator, http.MethodPut, "/7/verification", `{"verificationStatus":"VERIFIED"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var path learningpath.LearningPathV2
	require.NoError(t, json.Unmarshal(body.Data, &path))
	assert.Equal(t, learningpath.VerificationVerified, path.VerificationStatus)
	assert.Equal(t, 2, path.Revision)
}
