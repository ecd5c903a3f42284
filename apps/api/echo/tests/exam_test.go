package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtihani/portal/core/exam"
	"github.com/mtihani/portal/core/user"
	testutil "github.com/mtihani/portal/tests"
)

func Test_examApi_timetable(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	date := time.Date(2026, time.November, 12, 0, 0, 0, 0, time.UTC)
	algo := testutil.CreateTimetableEntry(t, examRepo, "BSc CS", 5, "Algorithms", "CS501", date, "10:30-13:30", "Hall A")
	dbms := testutil.CreateTimetableEntry(t, examRepo, "BSc CS", 5, "Databases", "CS502", date.AddDate(0, 0, 2), "10:30-13:30", "Hall B")
	calc := testutil.CreateTimetableEntry(t, examRepo, "BSc IT", 3, "Calculus", "IT301", date, "14:00-17:00", "Hall A")

	studentToken := getToken(t, student)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/exams/timetable", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Any signed-in user reads it", path: "/v1/exams/timetable", token: studentToken,
			wantCode: http.StatusOK, wantData: marchallList(t, algo, dbms, calc),
		},
		{
			name: "Filter by program", path: "/v1/exams/timetable?program=BSc+IT", token: studentToken,
			wantCode: http.StatusOK, wantData: marchallList(t, calc),
		},
		{
			name: "Filter by semester", path: "/v1/exams/timetable?semester=5", token: studentToken,
			wantCode: http.StatusOK, wantData: marchallList(t, algo, dbms),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("Create is admin-only", func(t *testing.T) {
		body := []byte(`{"program": "BSc CS", "semester": 5, "subject": "Networks", "code": "CS503", "date": "2026-11-16T00:00:00Z", "slot": "10:30-13:30", "venue": "Hall C"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/timetable", studentToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodPost, "/v1/exams/timetable", adminToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created exam.TimetableEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "CS503", created.Code)
	})

	t.Run("Delete is admin-only", func(t *testing.T) {
		path := fmt.Sprintf("/v1/exams/timetable?id=%d", calc.ID)
		req, rec := newAuthRequest(http.MethodDelete, path, studentToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodDelete, path, adminToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		entries, err := examRepo.FilterTimetable(exam.QueryFilter{Program: "BSc IT"})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func Test_examApi_hallTickets(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	studentToken := getToken(t, student)
	adminToken := getToken(t, admin)

	t.Run("No ticket yet", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/hall-ticket", studentToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Issuing is admin-only", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"student_id": %d, "program": "BSc CS", "semester": 5, "seat_number": "A-112", "venue": "Hall A"}`, student.ID))
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/hall-tickets", studentToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodPost, "/v1/exams/hall-tickets", adminToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Student reads own ticket", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/hall-ticket?semester=5", studentToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var ticket exam.HallTicket
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		assert.Equal(t, student.ID, ticket.StudentID)
		assert.Equal(t, "A-112", ticket.SeatNumber)
	})
}

func Test_examApi_marks(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero01", "hero@test.cd", "", []string{user.RoleStudent}, true)
	faculty := testutil.CreateUser(t, usrRepo, "Prof", "prof01", "prof@test.cd", "", []string{user.RoleFaculty}, true)
	rival := testutil.CreateUser(t, usrRepo, "Rival", "rival01", "rival@test.cd", "", []string{user.RoleFaculty}, true)
	admin := testutil.CreateUser(t, usrRepo, "Admin", "admin01", "admin@test.cd", "", []string{user.RoleAdmin}, true)

	studentToken := getToken(t, student)
	facultyToken := getToken(t, faculty)
	adminToken := getToken(t, admin)

	t.Run("Entry is faculty-only", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"student_id": %d, "subject": "Algorithms", "code": "CS501", "score": 72, "out_of": 100}`, student.ID))
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/marks", studentToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Score cannot exceed out_of", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"student_id": %d, "subject": "Algorithms", "code": "CS501", "score": 101, "out_of": 100}`, student.ID))
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/marks", facultyToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var entry exam.MarksEntry
	t.Run("Faculty enters a draft", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"student_id": %d, "subject": "Algorithms", "code": "CS501", "score": 72, "out_of": 100}`, student.ID))
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/marks", facultyToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, exam.StatusDraft, entry.Status)
		assert.Equal(t, faculty.ID, entry.EnteredBy)
	})

	t.Run("Draft is not a result yet", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/results", studentToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("Only the entering faculty submits", func(t *testing.T) {
		path := fmt.Sprintf("/v1/exams/marks/%d/submit", entry.ID)
		req, rec := newAuthRequest(http.MethodPut, path, getToken(t, rival))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodPut, path, facultyToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, exam.StatusSubmitted, entry.Status)
	})

	t.Run("Publication is admin-only", func(t *testing.T) {
		body := []byte(`{"code": "CS501"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/publish", facultyToken, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodPost, "/v1/exams/publish", adminToken, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"published":1`)
	})

	t.Run("Nothing left to publish", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/exams/publish", adminToken, []byte(`{"code": "CS501"}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Student sees own published results only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/results", studentToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var results []exam.MarksEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 1)
		assert.Equal(t, exam.StatusPublished, results[0].Status)
		assert.Equal(t, student.ID, results[0].StudentID)
	})

	t.Run("Faculty sees their entered marks", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/marks", facultyToken)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var entries []exam.MarksEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, faculty.ID, entries[0].EnteredBy)
	})

	t.Run("Results endpoint is student-only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/exams/results", facultyToken)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
