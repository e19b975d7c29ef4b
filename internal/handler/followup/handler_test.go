package followup

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BangJepp56/ini-dashboard-admin/internal/middleware"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/export"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/followup"
)

var fixedNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))

func setupRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators(middleware.DefaultValidationConfig()))

	repo := memory.NewFollowUpRepository()
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &model.FollowUp{
		ID:              id,
		PatientID:       uuid.New(),
		PatientName:     "Ani",
		DoctorName:      "dr. Sari",
		AppointmentDate: "2024-03-15",
		AppointmentTime: "09:00",
		Status:          model.FollowUpStatusScheduled,
		CreatedAt:       fixedNow.AddDate(0, 0, -1),
	}))

	now := func() time.Time { return fixedNow }
	h := NewHandler(
		followup.NewService(repo, memory.NewPatientRepository(), now),
		export.NewService(export.Options{Now: now}),
	)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, id
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSummary(t *testing.T) {
	r, _ := setupRouter(t)

	w := send(r, http.MethodGet, "/api/v1/follow-ups/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.FollowUpSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.FollowUpSummary{Total: 1, Today: 0, UpcomingWeek: 1}, resp.Data)
}

func TestUpdateStatus(t *testing.T) {
	r, id := setupRouter(t)
	path := "/api/v1/follow-ups/" + id.String() + "/status"

	w := send(r, http.MethodPatch, path, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.FollowUp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.FollowUpStatusCompleted, resp.Data.Status)

	w = send(r, http.MethodPatch, path, `{"status":"lost"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateRejectsPastSchedule(t *testing.T) {
	r, id := setupRouter(t)

	w := send(r, http.MethodPut, "/api/v1/follow-ups/"+id.String(),
		`{"appointment_date":"2024-03-12","appointment_time":"09:00","status":"scheduled"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = send(r, http.MethodPut, "/api/v1/follow-ups/"+id.String(),
		`{"appointment_date":"2024-03-18","appointment_time":"13:00","notes":"bawa hasil lab"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAndExport(t *testing.T) {
	r, id := setupRouter(t)

	w := send(r, http.MethodGet, "/api/v1/follow-ups/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Jadwal_Kontrol_")

	w = send(r, http.MethodDelete, "/api/v1/follow-ups/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(r, http.MethodGet, "/api/v1/follow-ups/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
