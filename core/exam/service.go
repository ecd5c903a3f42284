package exam

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyPublished = errors.New("marks entry is published and can no longer change")
	ErrNothingToPublish = errors.New("no submitted marks entries to publish")
)

type (
	Repository interface {
		CreateTimetableEntry(entry TimetableEntry) (TimetableEntry, error)
		FilterTimetable(filter QueryFilter) ([]TimetableEntry, error)
		DeleteTimetableEntriesByID(ids ...int) error

		CreateMarksEntry(entry MarksEntry) (MarksEntry, error)
		GetMarksEntryByID(id int) (MarksEntry, error)
		QueryMarksByStudent(studentID int) ([]MarksEntry, error)
		QueryMarksByFaculty(facultyID int) ([]MarksEntry, error)
		UpdateMarksEntry(entry MarksEntry) (MarksEntry, error)
		// PublishSubmittedMarks flips all submitted entries for the subject
		// code to published, returning the number published.
		PublishSubmittedMarks(code string) (int, error)

		// UpsertHallTicket replaces any existing ticket for the same student
		// and semester.
		UpsertHallTicket(ticket HallTicket) (HallTicket, error)
		GetHallTicketByStudent(studentID, semester int) (HallTicket, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) AddTimetableEntry(nt NewTimetableEntry) (TimetableEntry, error) {
	return svc.repo.CreateTimetableEntry(TimetableEntry{
		Program:  nt.Program,
		Semester: nt.Semester,
		Subject:  nt.Subject,
		Code:     nt.Code,
		Date:     nt.Date,
		Slot:     nt.Slot,
		Venue:    nt.Venue,
	})
}

func (svc *Service) Timetable(filter QueryFilter) ([]TimetableEntry, error) {
	filter.Clean()
	return svc.repo.FilterTimetable(filter)
}

func (svc *Service) DeleteTimetableEntries(ids ...int) error {
	return svc.repo.DeleteTimetableEntriesByID(ids...)
}

// EnterMarks records a draft marks entry for the given faculty member.
func (svc *Service) EnterMarks(nm NewMarksEntry, facultyID int) (MarksEntry, error) {
	now := time.Now().UTC()
	return svc.repo.CreateMarksEntry(MarksEntry{
		StudentID: nm.StudentID,
		Subject:   nm.Subject,
		Code:      nm.Code,
		Score:     nm.Score,
		OutOf:     nm.OutOf,
		Status:    StatusDraft,
		EnteredBy: facultyID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) GetMarksEntry(id int) (MarksEntry, error) {
	return svc.repo.GetMarksEntryByID(id)
}

// SubmitMarks moves a draft entry to submitted. Published entries never change.
func (svc *Service) SubmitMarks(id int) (MarksEntry, error) {
	entry, err := svc.repo.GetMarksEntryByID(id)
	if err != nil {
		return MarksEntry{}, err
	}
	if entry.Status == StatusPublished {
		return MarksEntry{}, ErrAlreadyPublished
	}
	entry.Status = StatusSubmitted
	entry.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMarksEntry(entry)
}

// PublishResults publishes every submitted entry for the subject code.
func (svc *Service) PublishResults(code string) (int, error) {
	n, err := svc.repo.PublishSubmittedMarks(code)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNothingToPublish
	}
	return n, nil
}

// StudentResults returns only published entries; drafts and submissions stay
// invisible to students.
func (svc *Service) StudentResults(studentID int) ([]MarksEntry, error) {
	entries, err := svc.repo.QueryMarksByStudent(studentID)
	if err != nil {
		return nil, err
	}
	published := make([]MarksEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == StatusPublished {
			published = append(published, e)
		}
	}
	return published, nil
}

func (svc *Service) FacultyMarks(facultyID int) ([]MarksEntry, error) {
	return svc.repo.QueryMarksByFaculty(facultyID)
}

func (svc *Service) IssueHallTicket(nh NewHallTicket) (HallTicket, error) {
	return svc.repo.UpsertHallTicket(HallTicket{
		StudentID:  nh.StudentID,
		Program:    nh.Program,
		Semester:   nh.Semester,
		SeatNumber: nh.SeatNumber,
		Venue:      nh.Venue,
		IssuedAt:   time.Now().UTC(),
	})
}

func (svc *Service) StudentHallTicket(studentID, semester int) (HallTicket, error) {
	return svc.repo.GetHallTicketByStudent(studentID, semester)
}
