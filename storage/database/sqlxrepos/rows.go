package sqlxrepos

import (
	"time"

	"github.com/mtihani/portal/core/exam"
)

type timetableRow struct {
	ID       int       `db:"id"`
	Program  string    `db:"program"`
	Semester int       `db:"semester"`
	Subject  string    `db:"subject"`
	Code     string    `db:"code"`
	Date     time.Time `db:"date"`
	Slot     string    `db:"slot"`
	Venue    string    `db:"venue"`
}

func (r timetableRow) toEntry() exam.TimetableEntry {
	return exam.TimetableEntry{
		ID:       r.ID,
		Program:  r.Program,
		Semester: r.Semester,
		Subject:  r.Subject,
		Code:     r.Code,
		Date:     r.Date,
		Slot:     r.Slot,
		Venue:    r.Venue,
	}
}

type hallTicketRow struct {
	ID         int       `db:"id"`
	StudentID  int       `db:"student_id"`
	Program    string    `db:"program"`
	Semester   int       `db:"semester"`
	SeatNumber string    `db:"seat_number"`
	Venue      string    `db:"venue"`
	IssuedAt   time.Time `db:"issued_at"`
}

func (r hallTicketRow) toTicket() exam.HallTicket {
	return exam.HallTicket{
		ID:         r.ID,
		StudentID:  r.StudentID,
		Program:    r.Program,
		Semester:   r.Semester,
		SeatNumber: r.SeatNumber,
		Venue:      r.Venue,
		IssuedAt:   r.IssuedAt,
	}
}

type marksRow struct {
	ID        int       `db:"id"`
	StudentID int       `db:"student_id"`
	Subject   string    `db:"subject"`
	Code      string    `db:"code"`
	Score     int       `db:"score"`
	OutOf     int       `db:"out_of"`
	Status    string    `db:"status"`
	EnteredBy int       `db:"entered_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r marksRow) toEntry() exam.MarksEntry {
	return exam.MarksEntry{
		ID:        r.ID,
		StudentID: r.StudentID,
		Subject:   r.Subject,
		Code:      r.Code,
		Score:     r.Score,
		OutOf:     r.OutOf,
		Status:    r.Status,
		EnteredBy: r.EnteredBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
