package assistant

// Role is the portal role the assistant answers for.
// It is supplied by the caller per invocation and never mutated here.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
	RoleGuest   Role = "guest"
)

// CleanRole maps unknown or absent roles to RoleGuest.
func CleanRole(role Role) Role {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return role
	}
	return RoleGuest
}

// Page identifies the portal page the user is on; it only selects contextual help.
type Page string

const (
	PageGeneral    Page = "general"
	PageDashboard  Page = "dashboard"
	PageResults    Page = "results"
	PageTimetable  Page = "timetable"
	PageKTSection  Page = "kt-section"
	PageMarksEntry Page = "marks-entry"
	PageProctoring Page = "proctoring"
)

type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionQuery    ActionKind = "query"
)

// Action is a suggested follow-up attached to a Decision: either a route to
// navigate to, or a canned query that re-enters the pipeline.
type Action struct {
	Label  string     `json:"label"`
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target"`
}

// Decision is the single output record of one pipeline run.
type Decision struct {
	ResponseText string   `json:"response_text"`
	Actions      []Action `json:"actions"`
	Allowed      bool     `json:"allowed"`
}

// NavRoutes enumerates the valid navigation targets per role.
// Every navigate Action emitted for a role targets one of these.
var NavRoutes = map[Role][]string{
	RoleStudent: {
		"/student/dashboard",
		"/student/exam-timetable",
		"/student/results",
		"/student/hall-ticket",
		"/student/kt",
		"/student/revaluation",
		"/student/fees",
	},
	RoleFaculty: {
		"/faculty/dashboard",
		"/faculty/marks-entry",
		"/faculty/duties",
		"/faculty/evaluation",
	},
	RoleAdmin: {
		"/admin/dashboard",
		"/admin/timetable",
		"/admin/allocation",
		"/admin/results",
		"/admin/system",
	},
	RoleGuest: {
		"/login",
		"/signup",
	},
}
