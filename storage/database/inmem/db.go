// Package inmemdb provides in-memory repositories used in development and
// tests; data does not survive a restart.
package inmemdb

import (
	"sync"

	"github.com/mtihani/portal/core/exam"
	"github.com/mtihani/portal/core/user"
)

type DB struct {
	user *userTable
	exam *examTables
}

func NewDB() *DB {
	return &DB{
		user: &userTable{table: make(map[int]*user.User)},
		exam: &examTables{
			timetable: make(map[int]*exam.TimetableEntry),
			marks:     make(map[int]*exam.MarksEntry),
			tickets:   make(map[int]*exam.HallTicket),
		},
	}
}

type userTable struct {
	mutex sync.RWMutex
	table map[int]*user.User
	pk    int
}

type examTables struct {
	mutex     sync.RWMutex
	timetable map[int]*exam.TimetableEntry
	marks     map[int]*exam.MarksEntry
	tickets   map[int]*exam.HallTicket
	ttPK      int
	marksPK   int
	ticketPK  int
}
