package assistant

// IntentRule maps a pattern to a canned response and its suggested follow-ups.
// Rules are ordered and immutable at run time; the first match wins.
// A nil Roles slice means the rule applies to any role.
type IntentRule struct {
	Name     string
	Match    Matcher
	Roles    []Role
	Response string
	Actions  []Action
}

func (r IntentRule) appliesTo(role Role) bool {
	if r.Roles == nil {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// defaultIntentRules builds the router table. Order encodes precedence:
// greetings and identity first, explicit can't-do phrasings next, then
// role-scoped topics, then general topics.
func defaultIntentRules() []IntentRule {
	return []IntentRule{
		{
			Name:  "greeting",
			Match: keywords("hello", "good morning", "good afternoon", "good evening", "greetings", "how are you"),
			Response: "Hello! I'm the Mtihani assistant. Ask me about exam schedules, results, " +
				"hall tickets or anything else on the portal.",
		},
		{
			Name:     "farewell",
			Match:    keywords("thank", "bye", "goodbye", "see you"),
			Response: "You're welcome! Come back any time you have a question about your exams.",
		},
		{
			Name:  "identity",
			Match: keywords("who are you", "your name", "what are you", "what can you do"),
			Response: "I'm the Mtihani portal assistant. I answer questions about exam schedules, " +
				"results, hall tickets, KT applications and more, and I can take you straight to the right page.",
		},

		// explicit can't-do phrasings, ahead of the topic rules so e.g.
		// "change my marks" never reads as a marks query
		{
			Name:  "tamper-request",
			Match: AllOf{keywords("change", "update", "increase", "fix"), keywords("my marks", "my grade", "my result", "my attendance")},
			Response: "I can't modify academic records. Marks and results are maintained by faculty " +
				"through official channels. If you believe there is an error, apply for revaluation.",
		},
		{
			Name:  "prediction-request",
			Match: keywords("will i pass", "will i fail", "am i going to pass", "predict my"),
			Response: "I can't predict results. Results are published on the portal after official " +
				"evaluation is complete.",
		},
		{
			Name:  "waiver-request",
			Match: keywords("bypass", "exception", "waive", "exempt"),
			Response: "Exam rules and eligibility criteria can't be waived through this portal. " +
				"Please contact the examination cell for special-case requests.",
		},

		// student topics
		{
			Name: "student-exam-schedule",
			Match: AnyOf{
				AllOf{Keyword("exam"), keywords("schedule", "when", "timetable", "date")},
				Keyword("timetable"),
			},
			Roles: []Role{RoleStudent},
			Response: "Your complete Exam Timetable is under Exams → Exam Timetable. It lists the date, " +
				"time and venue for every paper this semester.",
			Actions: []Action{
				{Label: "Open Exam Timetable", Kind: ActionNavigate, Target: "/student/exam-timetable"},
				{Label: "Hall ticket", Kind: ActionQuery, Target: "hall ticket"},
			},
		},
		{
			Name:  "guest-exam-schedule",
			Match: AllOf{Keyword("exam"), keywords("schedule", "when", "timetable", "date")},
			Roles: []Role{RoleGuest},
			Response: "Exam timetables are published on the portal each semester. Sign in to see the " +
				"schedule for your own programme.",
			Actions: []Action{
				{Label: "Sign in", Kind: ActionNavigate, Target: "/login"},
			},
		},
		{
			Name:  "student-results",
			Match: keywords("result", "grade", "gpa", "marksheet", "marks", "score"),
			Roles: []Role{RoleStudent},
			Response: "Semester results appear under Results as soon as they are published. You can view " +
				"grades per subject and download your marksheet from there.",
			Actions: []Action{
				{Label: "View Results", Kind: ActionNavigate, Target: "/student/results"},
				{Label: "Apply for revaluation", Kind: ActionQuery, Target: "revaluation"},
			},
		},
		{
			Name:  "student-hall-ticket",
			Match: keywords("hall ticket", "hallticket", "admit card"),
			Roles: []Role{RoleStudent},
			Response: "Hall tickets are issued about two weeks before exams begin. Download yours from " +
				"the Hall Ticket section and carry a printed copy to every paper.",
			Actions: []Action{
				{Label: "Download Hall Ticket", Kind: ActionNavigate, Target: "/student/hall-ticket"},
			},
		},
		{
			Name:  "student-kt",
			Match: keywords("kt", "backlog", "atkt", "supplementary"),
			Roles: []Role{RoleStudent},
			Response: "The KT section tracks your backlog subjects. You can apply for KT exams there " +
				"before the application deadline each semester.",
			Actions: []Action{
				{Label: "Open KT Section", Kind: ActionNavigate, Target: "/student/kt"},
			},
		},
		{
			Name:  "placement",
			Match: keywords("placement", "internship", "recruit"),
			Roles: []Role{RoleStudent, RoleGuest},
			Response: "Placement and internship drives are run by the Training & Placement cell. " +
				"Notices and eligibility lists are posted on the dashboard notice board.",
		},
		{
			Name:  "student-revaluation",
			Match: keywords("revaluation", "recheck", "reassess", "photocopy of answer"),
			Roles: []Role{RoleStudent},
			Response: "You can apply for revaluation within 10 days of result publication. " +
				"The per-paper fee is refunded if your grade improves.",
			Actions: []Action{
				{Label: "Apply for Revaluation", Kind: ActionNavigate, Target: "/student/revaluation"},
			},
		},
		{
			Name:  "student-attendance",
			Match: Keyword("attendance"),
			Roles: []Role{RoleStudent},
			Response: "Attendance is maintained by your department. You need the minimum required " +
				"attendance to be eligible to sit for exams; shortfalls are flagged on your dashboard.",
		},
		{
			Name:  "fees",
			Match: keywords("fee", "payment", "receipt"),
			Roles: []Role{RoleStudent, RoleGuest},
			Response: "Exam fees are paid online through the Fees section; keep the receipt number for " +
				"reference. Late payment attracts a fine per the academic calendar.",
		},

		// faculty topics
		{
			Name:  "faculty-marks-entry",
			Match: AnyOf{AllOf{Keyword("marks"), keywords("entry", "enter", "fill", "upload", "submit")}, Keyword("grading")},
			Roles: []Role{RoleFaculty},
			Response: "Enter marks for your allotted papers under Marks Entry. Entries can be saved as " +
				"draft and must be submitted before the moderation deadline.",
			Actions: []Action{
				{Label: "Open Marks Entry", Kind: ActionNavigate, Target: "/faculty/marks-entry"},
			},
		},
		{
			Name:  "faculty-duties",
			Match: keywords("duty", "duties", "proctor", "invigilat", "supervision"),
			Roles: []Role{RoleFaculty},
			Response: "Your invigilation and proctoring duties are listed under Duties, with date, slot " +
				"and room. Swap requests go through the exam cell.",
			Actions: []Action{
				{Label: "View Duties", Kind: ActionNavigate, Target: "/faculty/duties"},
			},
		},
		{
			Name:  "faculty-evaluation",
			Match: keywords("evaluation", "evaluate", "assessment", "answer sheet"),
			Roles: []Role{RoleFaculty},
			Response: "Evaluation assignments and deadlines are under Evaluation. Completed bundles are " +
				"marked off automatically once you submit the marks.",
			Actions: []Action{
				{Label: "Open Evaluation", Kind: ActionNavigate, Target: "/faculty/evaluation"},
			},
		},

		// admin topics
		{
			Name: "admin-scheduling",
			Match: AnyOf{
				AllOf{Keyword("exam"), keywords("schedule", "timetable")},
				Keyword("create timetable"),
				Keyword("scheduling"),
			},
			Roles: []Role{RoleAdmin},
			Response: "Exam timetables are created and edited under Timetable. Publishing a timetable " +
				"notifies all enrolled students and allotted faculty.",
			Actions: []Action{
				{Label: "Manage Timetable", Kind: ActionNavigate, Target: "/admin/timetable"},
			},
		},
		{
			Name:  "admin-allocation",
			Match: keywords("allocation", "allocate", "assign faculty", "assign duty"),
			Roles: []Role{RoleAdmin},
			Response: "Faculty allocation and duty assignment are under Allocation. Conflicts with " +
				"teaching hours are highlighted before you confirm.",
			Actions: []Action{
				{Label: "Open Allocation", Kind: ActionNavigate, Target: "/admin/allocation"},
			},
		},
		{
			Name:  "admin-publication",
			Match: AnyOf{AllOf{Keyword("result"), keywords("publish", "publication", "declare")}, Keyword("publish")},
			Roles: []Role{RoleAdmin},
			Response: "Results are published per programme under Results once moderation is complete. " +
				"Publication is final; corrections afterwards go through the revaluation flow.",
			Actions: []Action{
				{Label: "Manage Results", Kind: ActionNavigate, Target: "/admin/results"},
			},
		},
		{
			Name:  "admin-system",
			Match: keywords("system status", "server", "backend", "database", "logs"),
			Roles: []Role{RoleAdmin},
			Response: "System health, job queues and audit logs are under System. Database and backup " +
				"status refresh every minute.",
			Actions: []Action{
				{Label: "Open System Status", Kind: ActionNavigate, Target: "/admin/system"},
			},
		},

		// general topics
		{
			Name:  "contact",
			Match: keywords("contact", "phone", "reach", "office", "exam cell"),
			Response: "You can reach the examination cell at examcell@mtihani.edu or at the office " +
				"(Admin Block, Room 12) between 10am and 5pm on working days.",
		},
		{
			Name:  "deadlines",
			Match: keywords("deadline", "last date", "due date"),
			Response: "All current deadlines for fee payment, KT applications and revaluation are listed in " +
				"the academic calendar on your dashboard notice board.",
		},
		{
			Name:  "help",
			Match: keywords("help", "support", "assist", "confused", "lost"),
			Response: "Tell me what you're looking for, like exam schedules, results, hall tickets or fees, " +
				"and I'll point you to the right page.",
		},
	}
}

// pageHelpMatcher recognizes "what is this page" style queries; the response
// is then selected by the caller-supplied page context.
func pageHelpMatcher() Matcher {
	return keywords("what is this page", "this page", "where am i", "what page")
}

func defaultPageHelp() map[Page]string {
	return map[Page]string{
		PageDashboard: "This is your dashboard: a summary of upcoming exams, recent notices and quick " +
			"links to the sections you use most.",
		PageResults: "This page lists your semester results. Once a result is published you can view " +
			"per-subject grades and download the marksheet.",
		PageTimetable: "This page shows the exam timetable: the date, time and venue for each paper.",
		PageKTSection: "This page tracks your KT (backlog) subjects and lets you apply for KT exams " +
			"before the deadline.",
		PageMarksEntry: "This page is where faculty enter and submit marks for their allotted papers.",
		PageProctoring: "This page lists invigilation duties and proctoring assignments by date and slot.",
		PageGeneral: "You're on the Mtihani exam portal. Use the sidebar to reach timetables, results, " +
			"hall tickets and the rest.",
	}
}

// defaultFallbacks returns the role-appropriate no-match responses, each with
// up to two quick-action suggestions.
func defaultFallbacks() map[Role]IntentRule {
	return map[Role]IntentRule{
		RoleStudent: {
			Name: "fallback-student",
			Response: "I'm not sure about that one. I can help with exam schedules, results, hall " +
				"tickets, KT applications and revaluation.",
			Actions: []Action{
				{Label: "Exam schedule", Kind: ActionQuery, Target: "exam schedule"},
				{Label: "View results", Kind: ActionQuery, Target: "view results"},
			},
		},
		RoleFaculty: {
			Name: "fallback-faculty",
			Response: "I'm not sure about that one. I can help with marks entry, invigilation duties " +
				"and evaluation assignments.",
			Actions: []Action{
				{Label: "Marks entry", Kind: ActionQuery, Target: "marks entry"},
				{Label: "My duties", Kind: ActionQuery, Target: "my duties"},
			},
		},
		RoleAdmin: {
			Name: "fallback-admin",
			Response: "I'm not sure about that one. I can help with exam scheduling, faculty " +
				"allocation, result publication and system status.",
			Actions: []Action{
				{Label: "Exam scheduling", Kind: ActionQuery, Target: "exam scheduling"},
				{Label: "System status", Kind: ActionQuery, Target: "system status"},
			},
		},
		RoleGuest: {
			Name: "fallback-guest",
			Response: "I'm not sure about that one. Sign in for personalized help. Meanwhile I can " +
				"tell you about exam schedules, placements and fees.",
			Actions: []Action{
				{Label: "Sign in", Kind: ActionNavigate, Target: "/login"},
				{Label: "Exam schedule", Kind: ActionQuery, Target: "when is the exam"},
			},
		},
	}
}
