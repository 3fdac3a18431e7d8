package httpapi_test

import (
	"errors"
	"net/http"
	"testing"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder/internal/board"
)

func TestListPublicJobs_FiltersToActive(t *testing.T) {
	ts := newTestServer(t)

	ts.jobs.On("List", mock.Anything, mock.MatchedBy(func(f board.JobFilter) bool {
		return f.ActiveOnly && f.Query == "engineer" && f.Category == "tech"
	})).Return([]*board.Job{
		{ID: uuid.New(), Title: "Engineer", Company: "Acme", Status: board.JobStatusActive},
	}, 1, nil)

	resp := ts.request(t, http.MethodGet, "/api/jobs?q=engineer&category=tech", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeBody(t, resp)
	assert.Equal(t, float64(1), payload["total"])
	ts.jobs.AssertExpectations(t)
}

func TestGetPublicJob_IncrementsViews(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(&board.Job{ID: id, Title: "Engineer", Status: board.JobStatusActive}, nil)
	ts.jobs.On("IncrementViews", mock.Anything, id).Return(nil)

	resp := ts.request(t, http.MethodGet, "/api/jobs/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp)
	ts.jobs.AssertCalled(t, "IncrementViews", mock.Anything, id)
}

func TestGetPublicJob_ViewCounterFailureIsAbsorbed(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(&board.Job{ID: id, Title: "Engineer"}, nil)
	ts.jobs.On("IncrementViews", mock.Anything, id).Return(errors.New("db hiccup"))

	resp := ts.request(t, http.MethodGet, "/api/jobs/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetPublicJob_NotFound(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(nil, repository.NewRecordNotFound())

	resp := ts.request(t, http.MethodGet, "/api/jobs/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	payload := decodeBody(t, resp)
	assert.Equal(t, false, payload["success"])
}

func TestGetPublicJob_BadID(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, http.MethodGet, "/api/jobs/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApplyToJob(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(&board.Job{ID: id, Title: "Engineer", Status: board.JobStatusActive}, nil)
	ts.apps.On("Create", mock.Anything, mock.MatchedBy(func(a *board.Application) bool {
		return a.JobID == id && a.FirstName == "Ada" && a.Email == "ada@example.com"
	})).Return(&board.Application{ID: uuid.New(), JobID: id, Status: board.ApplicationStatusPending}, nil)
	ts.jobs.On("IncrementApplicants", mock.Anything, id).Return(nil)

	resp := ts.request(t, http.MethodPost, "/api/jobs/"+id.String()+"/apply", map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	ts.jobs.AssertCalled(t, "IncrementApplicants", mock.Anything, id)
}

func TestApplyToJob_UnknownJob404(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(nil, repository.NewRecordNotFound())

	resp := ts.request(t, http.MethodPost, "/api/jobs/"+id.String()+"/apply", map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	ts.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplyToJob_MissingFields400(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	resp := ts.request(t, http.MethodPost, "/api/jobs/"+id.String()+"/apply", map[string]string{
		"first_name": "Ada",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminJobs_RequireSession(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.request(t, http.MethodGet, "/api/admin/jobs", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	ts.jobs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAdminCreateJob_DispatchesNotification(t *testing.T) {
	ts := newTestServer(t)

	created := &board.Job{ID: uuid.New(), Title: "Engineer", Company: "Acme", Status: board.JobStatusActive}
	ts.jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *board.Job) bool {
		return j.Title == "Engineer" && j.Company == "Acme" && j.Status == board.JobStatusActive
	})).Return(created, nil)

	resp := ts.request(t, http.MethodPost, "/api/admin/jobs", map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"status":  "active",
	}, ts.adminCookie(t))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	ts.dispatcher.Flush()
	assert.Equal(t, 1, ts.sender.callCount())
}

func TestAdminCreateJob_FailingDispatchDoesNotFailRequest(t *testing.T) {
	ts := newTestServer(t)
	ts.sender.err = errors.New("push gateway down")

	created := &board.Job{ID: uuid.New(), Title: "Engineer", Company: "Acme", Status: board.JobStatusDraft}
	ts.jobs.On("Create", mock.Anything, mock.Anything).Return(created, nil)

	resp := ts.request(t, http.MethodPost, "/api/admin/jobs", map[string]any{
		"title":   "Engineer",
		"company": "Acme",
	}, ts.adminCookie(t))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	ts.dispatcher.Flush()
	assert.Equal(t, 1, ts.sender.callCount())
}

func TestAdminCreateJob_Validation(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing title", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/admin/jobs", map[string]any{
			"company": "Acme",
		}, ts.adminCookie(t))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown status", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/api/admin/jobs", map[string]any{
			"title":   "Engineer",
			"company": "Acme",
			"status":  "archived",
		}, ts.adminCookie(t))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	ts.jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateJob_PartialMerge(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	existing := &board.Job{
		ID:       id,
		Title:    "Engineer",
		Company:  "Acme",
		Location: "Berlin",
		Status:   board.JobStatusActive,
	}

	ts.jobs.On("GetByID", mock.Anything, id).Return(existing, nil)
	ts.jobs.On("Update", mock.Anything, mock.MatchedBy(func(j *board.Job) bool {
		// title replaced, untouched fields preserved
		return j.ID == id && j.Title == "Staff Engineer" && j.Company == "Acme" && j.Location == "Berlin"
	})).Return(existing, nil)

	resp := ts.request(t, http.MethodPatch, "/api/admin/jobs/"+id.String(), map[string]any{
		"title": "Staff Engineer",
	}, ts.adminCookie(t))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ts.jobs.AssertExpectations(t)
}

func TestAdminUpdateJobStatus_Transition(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(&board.Job{ID: id, Title: "Engineer", Status: board.JobStatusDraft}, nil)
	ts.jobs.On("UpdateStatus", mock.Anything, id, board.JobStatusActive, mock.Anything).
		Return(&board.Job{ID: id, Status: board.JobStatusActive}, nil)

	resp := ts.request(t, http.MethodPatch, "/api/admin/jobs/"+id.String()+"/status", map[string]string{
		"status": "active",
	}, ts.adminCookie(t))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ts.jobs.AssertExpectations(t)
}

func TestAdminUpdateJobStatus_InvalidStatus400(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("GetByID", mock.Anything, id).
		Return(&board.Job{ID: id, Title: "Engineer", Status: board.JobStatusDraft}, nil)

	resp := ts.request(t, http.MethodPatch, "/api/admin/jobs/"+id.String()+"/status", map[string]string{
		"status": "archived",
	}, ts.adminCookie(t))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	ts.jobs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminDeleteJob(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("Delete", mock.Anything, id).Return(nil)

	resp := ts.request(t, http.MethodDelete, "/api/admin/jobs/"+id.String(), nil, ts.adminCookie(t))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeBody(t, resp)
	assert.Equal(t, true, payload["success"])
}

func TestAdminDeleteJob_NotFound(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()

	ts.jobs.On("Delete", mock.Anything, id).Return(repository.NewRecordNotFound())

	resp := ts.request(t, http.MethodDelete, "/api/admin/jobs/"+id.String(), nil, ts.adminCookie(t))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminListJobs_StatusFilter(t *testing.T) {
	ts := newTestServer(t)

	ts.jobs.On("List", mock.Anything, mock.MatchedBy(func(f board.JobFilter) bool {
		return !f.ActiveOnly && f.Status == board.JobStatusDraft
	})).Return([]*board.Job{}, 0, nil)

	resp := ts.request(t, http.MethodGet, "/api/admin/jobs?status=draft", nil, ts.adminCookie(t))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	badStatus := ts.request(t, http.MethodGet, "/api/admin/jobs?status=bogus", nil, ts.adminCookie(t))
	assert.Equal(t, http.StatusBadRequest, badStatus.StatusCode)
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)

	ts.jobs.On("CountByStatus", mock.Anything).Return(map[board.JobStatus]int{
		board.JobStatusActive: 3,
		board.JobStatusDraft:  1,
	}, nil)
	ts.apps.On("Count", mock.Anything).Return(7, nil)
	ts.subs.On("CountActive", mock.Anything).Return(12, nil)

	resp := ts.request(t, http.MethodGet, "/api/admin/stats", nil, ts.adminCookie(t))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeBody(t, resp)

	jobs := payload["jobs"].(map[string]any)
	assert.Equal(t, float64(4), jobs["total"])

	apps := payload["applications"].(map[string]any)
	assert.Equal(t, float64(7), apps["total"])

	subs := payload["subscribers"].(map[string]any)
	assert.Equal(t, float64(12), subs["active"])
}
