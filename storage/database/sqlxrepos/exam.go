package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mtihani/portal/core/exam"
)

type examRepository struct {
	db *sqlx.DB
}

func NewExamRepository(db *sqlx.DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateTimetableEntry(entry exam.TimetableEntry) (exam.TimetableEntry, error) {
	const query = `
		INSERT INTO timetable_entry (program, semester, subject, code, date, slot, venue)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.Get(&entry.ID, query,
		entry.Program, entry.Semester, entry.Subject, entry.Code, entry.Date, entry.Slot, entry.Venue)
	if err != nil {
		return exam.TimetableEntry{}, err
	}
	return entry, nil
}

func (repo *examRepository) FilterTimetable(filter exam.QueryFilter) ([]exam.TimetableEntry, error) {
	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)
	if filter.Program != "" {
		args = append(args, filter.Program)
		where = append(where, `program = ?`)
	}
	if filter.Semester != 0 {
		args = append(args, filter.Semester)
		where = append(where, `semester = ?`)
	}

	query := `SELECT id, program, semester, subject, code, date, slot, venue FROM timetable_entry`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY date`

	var rows []timetableRow
	if err := repo.db.Select(&rows, repo.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	entries := make([]exam.TimetableEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}

func (repo *examRepository) DeleteTimetableEntriesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM timetable_entry WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}

func (repo *examRepository) CreateMarksEntry(entry exam.MarksEntry) (exam.MarksEntry, error) {
	const query = `
		INSERT INTO marks_entry (student_id, subject, code, score, out_of, status, entered_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := repo.db.Get(&entry.ID, query,
		entry.StudentID, entry.Subject, entry.Code, entry.Score, entry.OutOf,
		entry.Status, entry.EnteredBy, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return exam.MarksEntry{}, err
	}
	return entry, nil
}

func (repo *examRepository) GetMarksEntryByID(id int) (exam.MarksEntry, error) {
	var row marksRow
	err := repo.db.Get(&row, `SELECT * FROM marks_entry WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return exam.MarksEntry{}, exam.ErrNotFound
	}
	if err != nil {
		return exam.MarksEntry{}, err
	}
	return row.toEntry(), nil
}

func (repo *examRepository) QueryMarksByStudent(studentID int) ([]exam.MarksEntry, error) {
	return repo.selectMarks(`student_id = $1`, studentID)
}

func (repo *examRepository) QueryMarksByFaculty(facultyID int) ([]exam.MarksEntry, error) {
	return repo.selectMarks(`entered_by = $1`, facultyID)
}

func (repo *examRepository) UpdateMarksEntry(entry exam.MarksEntry) (exam.MarksEntry, error) {
	const query = `
		UPDATE marks_entry
		SET score = $1, out_of = $2, status = $3, updated_at = $4
		WHERE id = $5`
	res, err := repo.db.Exec(query, entry.Score, entry.OutOf, entry.Status, entry.UpdatedAt, entry.ID)
	if err != nil {
		return exam.MarksEntry{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.MarksEntry{}, exam.ErrNotFound
	}
	return entry, nil
}

func (repo *examRepository) PublishSubmittedMarks(code string) (int, error) {
	res, err := repo.db.Exec(
		`UPDATE marks_entry SET status = $1, updated_at = NOW() WHERE code = $2 AND status = $3`,
		exam.StatusPublished, code, exam.StatusSubmitted)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (repo *examRepository) UpsertHallTicket(ticket exam.HallTicket) (exam.HallTicket, error) {
	const query = `
		INSERT INTO hall_ticket (student_id, program, semester, seat_number, venue, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, semester) DO UPDATE
		SET program = EXCLUDED.program, seat_number = EXCLUDED.seat_number,
			venue = EXCLUDED.venue, issued_at = EXCLUDED.issued_at
		RETURNING id`
	err := repo.db.Get(&ticket.ID, query,
		ticket.StudentID, ticket.Program, ticket.Semester, ticket.SeatNumber, ticket.Venue, ticket.IssuedAt)
	if err != nil {
		return exam.HallTicket{}, err
	}
	return ticket, nil
}

// GetHallTicketByStudent returns the student's ticket for the semester;
// semester 0 means the most recently issued one.
func (repo *examRepository) GetHallTicketByStudent(studentID, semester int) (exam.HallTicket, error) {
	query := `SELECT * FROM hall_ticket WHERE student_id = $1`
	args := []interface{}{studentID}
	if semester != 0 {
		query += ` AND semester = $2`
		args = append(args, semester)
	}
	query += ` ORDER BY issued_at DESC LIMIT 1`

	var row hallTicketRow
	err := repo.db.Get(&row, query, args...)
	if err == sql.ErrNoRows {
		return exam.HallTicket{}, exam.ErrNotFound
	}
	if err != nil {
		return exam.HallTicket{}, err
	}
	return row.toTicket(), nil
}

func (repo *examRepository) selectMarks(where string, args ...interface{}) ([]exam.MarksEntry, error) {
	var rows []marksRow
	if err := repo.db.Select(&rows, `SELECT * FROM marks_entry WHERE `+where+` ORDER BY id`, args...); err != nil {
		return nil, err
	}
	entries := make([]exam.MarksEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}
