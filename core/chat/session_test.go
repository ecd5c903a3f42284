package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtihani/portal/core/assistant"
)

func newTestSession(role assistant.Role) *Session {
	s := NewSession(assistant.NewEngine(assistant.DefaultConfig()), Options{
		Role: role,
		Page: assistant.PageDashboard,
	})
	// deliver replies synchronously
	s.afterFunc = func(d time.Duration, f func()) { f() }
	return s
}

func Test_Session_openGreetsOnce(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	assert.Equal(t, StateClosed, s.State())

	s.Open()
	assert.Equal(t, StateOpen, s.State())

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, SenderAssistant, msgs[0].Sender)
	assert.Contains(t, msgs[0].Text, "Mtihani")

	// minimize/restore does not re-greet
	s.Minimize()
	assert.Equal(t, StateMinimized, s.State())
	s.Open()
	assert.Equal(t, StateOpen, s.State())
	assert.Len(t, s.Messages(), 1)
}

func Test_Session_submit(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	s.Open()

	dec, err := s.Submit("exam schedule")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Contains(t, dec.ResponseText, "Exam Timetable")

	msgs := s.Messages()
	require.Len(t, msgs, 3) // greeting, user, reply
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, "exam schedule", msgs[1].Text)
	assert.Equal(t, SenderAssistant, msgs[2].Sender)
	assert.Equal(t, dec.ResponseText, msgs[2].Text)
	assert.Equal(t, StateOpen, s.State())
}

func Test_Session_submitWhenClosed(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)

	_, err := s.Submit("exam schedule")
	assert.Equal(t, ErrSessionClosed, err)
}

func Test_Session_inputCap(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	s.Open()

	long := "results " + strings.Repeat("x", 600)
	_, err := s.Submit(long)
	require.NoError(t, err)

	msgs := s.Messages()
	assert.Len(t, msgs[1].Text, 500)
}

func Test_Session_lateReplyDropped(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	var pending []func()
	s.afterFunc = func(d time.Duration, f func()) { pending = append(pending, f) }

	s.Open()
	_, err := s.Submit("exam schedule")
	require.NoError(t, err)

	// conversation closes before the typing window elapses
	s.Close()
	for _, f := range pending {
		f()
	}

	for _, msg := range s.Messages() {
		assert.NotEqual(t, SenderAssistant, msg.Sender)
	}
}

func Test_Session_handleAction(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	s.Open()

	route, err := s.HandleAction(assistant.Action{Kind: assistant.ActionNavigate, Target: "/student/results"})
	require.NoError(t, err)
	assert.Equal(t, "/student/results", route)
	assert.Len(t, s.Messages(), 1) // navigation does not touch history

	route, err = s.HandleAction(assistant.Action{Kind: assistant.ActionQuery, Target: "hall ticket"})
	require.NoError(t, err)
	assert.Empty(t, route)
	assert.Len(t, s.Messages(), 3)
}

func Test_Session_pageContextFollowsNavigation(t *testing.T) {
	s := newTestSession(assistant.RoleStudent)
	s.Open()

	s.SetPage(assistant.PageKTSection)
	dec, err := s.Submit("what is this page")
	require.NoError(t, err)
	assert.Contains(t, dec.ResponseText, "KT")
}
