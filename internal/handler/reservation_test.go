package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/jv1nicius/keyControlBack/internal/repository"
)

var (
	lockRoomQ          = regexp.QuoteMeta(`SELECT id, name, key_name FROM rooms WHERE id = ? FOR UPDATE`)
	getResponsibleQ    = regexp.QuoteMeta(`SELECT id, name, siap, cpf, birth_date FROM responsibles WHERE id = ?`)
	listRoomResQ       = regexp.QuoteMeta(`SELECT id, room_id, responsible_id, start_time, end_time FROM reservations WHERE room_id = ?`)
	insertReservationQ = regexp.QuoteMeta(`INSERT INTO reservations (room_id, responsible_id, start_time, end_time) VALUES (?, ?, ?, ?)`)
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	h := NewReservationHandler(
		repository.NewRoomRepo(db),
		repository.NewResponsibleRepo(db),
		repository.NewReservationRepo(db),
	)
	return h, mock
}

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response %q is not valid JSON: %v", rec.Body.String(), err)
	}
	return body
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet database expectations: %v", err)
	}
}

func roomRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "key_name"}).
		AddRow(1, "Physics Lab", "lab-03")
}

func responsibleRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "siap", "cpf", "birth_date"}).
		AddRow(2, "Ana Souza", "1234567", "11122233344", time.Date(1990, time.March, 12, 0, 0, 0, 0, time.UTC))
}

func reservationColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_id", "responsible_id", "start_time", "end_time"})
}

func TestReservationCreateBindFailure(t *testing.T) {
	h, mock := newReservationHandler(t)
	c, rec := postJSON(t, "/reservations", `{"room_id":`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	expectationsMet(t, mock)
}

func TestReservationCreateMissingRoomAnswers404(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(9).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// Timestamps are garbage on purpose: the missing room must answer
	// first, never the validation error.
	body := `{"room_id":9,"responsible_id":2,"start_time":"not-a-date","end_time":"also-bad"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := decodeError(t, rec); got.Error != "room not found" {
		t.Errorf("error = %q, want room not found", got.Error)
	}
	expectationsMet(t, mock)
}

func TestReservationCreateMissingResponsibleAnswers404(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(1).WillReturnRows(roomRow())
	mock.ExpectQuery(getResponsibleQ).WithArgs(9).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	body := `{"room_id":1,"responsible_id":9,"start_time":"2025-08-17T14:00:00","end_time":"2025-08-17T16:00:00"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := decodeError(t, rec); got.Error != "responsible not found" {
		t.Errorf("error = %q, want responsible not found", got.Error)
	}
	expectationsMet(t, mock)
}

func TestReservationCreateAggregatesTimestampErrors(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(1).WillReturnRows(roomRow())
	mock.ExpectQuery(getResponsibleQ).WithArgs(2).WillReturnRows(responsibleRow())
	mock.ExpectRollback()

	body := `{"room_id":1,"responsible_id":2,"start_time":"yesterday","end_time":"later"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	got := decodeError(t, rec)
	if got.Error != "invalid data" {
		t.Errorf("error = %q, want invalid data", got.Error)
	}
	if _, ok := got.Details["start_time"]; !ok {
		t.Errorf("details = %v, want start_time reported", got.Details)
	}
	if _, ok := got.Details["end_time"]; !ok {
		t.Errorf("details = %v, both failing fields must be reported together", got.Details)
	}
	expectationsMet(t, mock)
}

func TestReservationCreateConflict(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(1).WillReturnRows(roomRow())
	mock.ExpectQuery(getResponsibleQ).WithArgs(2).WillReturnRows(responsibleRow())
	mock.ExpectQuery(listRoomResQ).WithArgs(1).WillReturnRows(reservationColumns().
		AddRow(5, 1, 2,
			time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 17, 12, 0, 0, 0, time.UTC)))
	mock.ExpectRollback()

	body := `{"room_id":1,"responsible_id":2,"start_time":"2025-08-17T11:00:00","end_time":"2025-08-17T13:00:00"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := decodeError(t, rec); got.Error != "the room is not available for the requested period" {
		t.Errorf("error = %q, want the availability message", got.Error)
	}
	expectationsMet(t, mock)
}

func TestReservationCreateRejectsStartNotBeforeEnd(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(1).WillReturnRows(roomRow())
	mock.ExpectQuery(getResponsibleQ).WithArgs(2).WillReturnRows(responsibleRow())
	mock.ExpectQuery(listRoomResQ).WithArgs(1).WillReturnRows(reservationColumns())
	mock.ExpectRollback()

	body := `{"room_id":1,"responsible_id":2,"start_time":"2025-08-17T14:00:00","end_time":"2025-08-17T14:00:00"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	got := decodeError(t, rec)
	if msg := got.Details["start_time"]; !strings.Contains(msg, "before end_time") {
		t.Errorf("details[start_time] = %q, want ordering message", msg)
	}
	expectationsMet(t, mock)
}

func TestReservationCreate(t *testing.T) {
	h, mock := newReservationHandler(t)
	mock.ExpectBegin()
	mock.ExpectQuery(lockRoomQ).WithArgs(1).WillReturnRows(roomRow())
	mock.ExpectQuery(getResponsibleQ).WithArgs(2).WillReturnRows(responsibleRow())
	mock.ExpectQuery(listRoomResQ).WithArgs(1).WillReturnRows(reservationColumns())
	mock.ExpectExec(insertReservationQ).
		WithArgs(1, 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	body := `{"room_id":1,"responsible_id":2,"start_time":"2025-08-17T14:00:00","end_time":"2025-08-17T16:00:00"}`
	c, rec := postJSON(t, "/reservations", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	var res struct {
		ID     uint64 `json:"id"`
		RoomID uint64 `json:"room_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("response %q is not valid JSON: %v", rec.Body.String(), err)
	}
	if res.ID != 7 || res.RoomID != 1 {
		t.Errorf("created reservation = %+v, want id 7 in room 1", res)
	}
	expectationsMet(t, mock)
}
