package inmemdb

import (
	"sort"

	"github.com/mtihani/portal/core/exam"
)

type examRepository struct {
	db *examTables
}

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) CreateTimetableEntry(entry exam.TimetableEntry) (exam.TimetableEntry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.ttPK++
	entry.ID = repo.db.ttPK
	repo.db.timetable[entry.ID] = &entry
	return entry, nil
}

func (repo *examRepository) FilterTimetable(filter exam.QueryFilter) ([]exam.TimetableEntry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]exam.TimetableEntry, 0, len(repo.db.timetable))
	for _, e := range repo.db.timetable {
		if filter.Program != "" && e.Program != filter.Program {
			continue
		}
		if filter.Semester != 0 && e.Semester != filter.Semester {
			continue
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

func (repo *examRepository) DeleteTimetableEntriesByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.timetable, id)
	}
	return nil
}

func (repo *examRepository) CreateMarksEntry(entry exam.MarksEntry) (exam.MarksEntry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.marksPK++
	entry.ID = repo.db.marksPK
	repo.db.marks[entry.ID] = &entry
	return entry, nil
}

func (repo *examRepository) GetMarksEntryByID(id int) (exam.MarksEntry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if entry, ok := repo.db.marks[id]; ok {
		return *entry, nil
	}
	return exam.MarksEntry{}, exam.ErrNotFound
}

func (repo *examRepository) QueryMarksByStudent(studentID int) ([]exam.MarksEntry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.filterMarks(func(e *exam.MarksEntry) bool { return e.StudentID == studentID }), nil
}

func (repo *examRepository) QueryMarksByFaculty(facultyID int) ([]exam.MarksEntry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.filterMarks(func(e *exam.MarksEntry) bool { return e.EnteredBy == facultyID }), nil
}

func (repo *examRepository) UpdateMarksEntry(entry exam.MarksEntry) (exam.MarksEntry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.marks[entry.ID]; !ok {
		return exam.MarksEntry{}, exam.ErrNotFound
	}
	repo.db.marks[entry.ID] = &entry
	return entry, nil
}

func (repo *examRepository) PublishSubmittedMarks(code string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for _, e := range repo.db.marks {
		if e.Code == code && e.Status == exam.StatusSubmitted {
			e.Status = exam.StatusPublished
			n++
		}
	}
	return n, nil
}

func (repo *examRepository) UpsertHallTicket(ticket exam.HallTicket) (exam.HallTicket, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, t := range repo.db.tickets {
		if t.StudentID == ticket.StudentID && t.Semester == ticket.Semester {
			delete(repo.db.tickets, id)
		}
	}
	repo.db.ticketPK++
	ticket.ID = repo.db.ticketPK
	repo.db.tickets[ticket.ID] = &ticket
	return ticket, nil
}

// GetHallTicketByStudent returns the student's ticket for the semester;
// semester 0 means the most recently issued one.
func (repo *examRepository) GetHallTicketByStudent(studentID, semester int) (exam.HallTicket, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var found *exam.HallTicket
	for _, t := range repo.db.tickets {
		if t.StudentID != studentID {
			continue
		}
		if semester != 0 {
			if t.Semester == semester {
				return *t, nil
			}
			continue
		}
		if found == nil || t.IssuedAt.After(found.IssuedAt) {
			found = t
		}
	}
	if found == nil {
		return exam.HallTicket{}, exam.ErrNotFound
	}
	return *found, nil
}

func (repo *examRepository) filterMarks(keep func(*exam.MarksEntry) bool) []exam.MarksEntry {
	entries := make([]exam.MarksEntry, 0)
	for _, e := range repo.db.marks {
		if keep(e) {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
