package exam

import (
	"time"

	"github.com/mtihani/portal/core"
)

// Marks entry statuses. Draft entries are editable by the entering faculty;
// submitted entries await publication; published entries are visible to the
// student and immutable.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusPublished = "published"
)

type TimetableEntry struct {
	ID       int       `json:"id"`
	Program  string    `json:"program"`
	Semester int       `json:"semester"`
	Subject  string    `json:"subject"`
	Code     string    `json:"code"`
	Date     time.Time `json:"date"`
	Slot     string    `json:"slot"` // e.g. "10:30-13:30"
	Venue    string    `json:"venue"`
}

type NewTimetableEntry struct {
	Program  string    `json:"program" validate:"required"`
	Semester int       `json:"semester" validate:"required,min=1,max=12"`
	Subject  string    `json:"subject" validate:"required"`
	Code     string    `json:"code" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Slot     string    `json:"slot" validate:"required"`
	Venue    string    `json:"venue" validate:"required"`
}

func (nt *NewTimetableEntry) Validate() error {
	nt.Program = core.CleanString(nt.Program)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Code = core.CleanString(nt.Code)
	nt.Venue = core.CleanString(nt.Venue)
	return core.Validate.Struct(nt)
}

type MarksEntry struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Subject   string    `json:"subject"`
	Code      string    `json:"code"`
	Score     int       `json:"score"`
	OutOf     int       `json:"out_of"`
	Status    string    `json:"status"`
	EnteredBy int       `json:"entered_by"` // faculty user ID
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type NewMarksEntry struct {
	StudentID int    `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Score     int    `json:"score" validate:"min=0,ltefield=OutOf"`
	OutOf     int    `json:"out_of" validate:"required,min=1"`
}

func (nm *NewMarksEntry) Validate() error {
	nm.Subject = core.CleanString(nm.Subject)
	nm.Code = core.CleanString(nm.Code)
	return core.Validate.Struct(nm)
}

// HallTicket admits a student to the exams of one semester. At most one
// ticket exists per student and semester; reissuing replaces it.
type HallTicket struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	Program    string    `json:"program"`
	Semester   int       `json:"semester"`
	SeatNumber string    `json:"seat_number"`
	Venue      string    `json:"venue"`
	IssuedAt   time.Time `json:"issued_at"` // UTC
}

type NewHallTicket struct {
	StudentID  int    `json:"student_id" validate:"required"`
	Program    string `json:"program" validate:"required"`
	Semester   int    `json:"semester" validate:"required,min=1,max=12"`
	SeatNumber string `json:"seat_number" validate:"required"`
	Venue      string `json:"venue" validate:"required"`
}

func (nh *NewHallTicket) Validate() error {
	nh.Program = core.CleanString(nh.Program)
	nh.SeatNumber = core.CleanString(nh.SeatNumber)
	nh.Venue = core.CleanString(nh.Venue)
	return core.Validate.Struct(nh)
}

// QueryFilter narrows timetable queries.
type QueryFilter struct {
	Program  string `query:"program"`
	Semester int    `query:"semester"`
}

func (qf *QueryFilter) Clean() {
	qf.Program = core.CleanString(qf.Program)
}
