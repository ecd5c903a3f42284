package testutil

import (
	"testing"
	"time"

	"github.com/mtihani/portal/core/exam"
	"github.com/mtihani/portal/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateTimetableEntry(
	t *testing.T,
	repo exam.Repository,
	program string,
	semester int,
	subject, code string,
	date time.Time,
	slot, venue string,
) exam.TimetableEntry {
	entry, err := repo.CreateTimetableEntry(exam.TimetableEntry{
		Program:  program,
		Semester: semester,
		Subject:  subject,
		Code:     code,
		Date:     date.UTC(),
		Slot:     slot,
		Venue:    venue,
	})
	if err != nil {
		t.Fatalf("CreateTimetableEntry() failed: %v", err)
	}
	return entry
}

func CreateMarksEntry(
	t *testing.T,
	repo exam.Repository,
	studentID int,
	subject, code string,
	score, outOf int,
	status string,
	enteredBy int,
) exam.MarksEntry {
	now := time.Now().UTC()
	entry, err := repo.CreateMarksEntry(exam.MarksEntry{
		StudentID: studentID,
		Subject:   subject,
		Code:      code,
		Score:     score,
		OutOf:     outOf,
		Status:    status,
		EnteredBy: enteredBy,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateMarksEntry() failed: %v", err)
	}
	return entry
}
