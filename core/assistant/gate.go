package assistant

// Authorization denial messages. Each names the missing access level so the
// user knows what to do next; there is deliberately no generic "access denied".
const (
	MsgOtherStudentData = "I can only help with your own records. For questions about another person's " +
		"academic information, please ask them to sign in themselves or contact the exam cell."
	MsgSystemAccess = "System and infrastructure details require administrator access. " +
		"I can help with your own academic queries instead."
	MsgNeedsFacultyAccess = "That operation requires faculty or admin access. As a student you can view " +
		"your timetable, results and hall tickets here."
	MsgNeedsAdminAccess = "That operation requires admin access. You can manage marks entry, invigilation " +
		"duties and evaluations from your faculty dashboard."
	MsgSignInRequired = "Please sign in to your account to access results, marks and other academic records."
)

// GateRule denies a topic for a set of roles. A nil Roles slice denies the
// topic for every role. Rules are ordered; the first applicable match wins.
type GateRule struct {
	Match   Matcher
	Roles   []Role // roles the rule denies; nil means all
	Message string
}

func (r GateRule) appliesTo(role Role) bool {
	if r.Roles == nil {
		return true
	}
	for _, denied := range r.Roles {
		if denied == role {
			return true
		}
	}
	return false
}

// defaultGateRules builds the role-gate table. The asymmetry is intentional:
// the same keyword ("result") is allowed for student, faculty and admin under
// different intent rules but forbidden outright for guests.
func defaultGateRules() []GateRule {
	return []GateRule{
		// no role may query another identity's records
		{
			Match: keywords(
				"other student", "another student", "other user", "another user",
				"someone else", "classmate's", "my friend's marks", "my friend's result",
			),
			Roles:   nil,
			Message: MsgOtherStudentData,
		},
		// system/administration vocabulary: admins only
		{
			Match: AnyOf{
				Keyword("database"),
				Keyword("backend"),
				Keyword("server"),
				AllOf{Keyword("system"), keywords("access", "login", "admin", "status")},
			},
			Roles:   []Role{RoleStudent, RoleFaculty, RoleGuest},
			Message: MsgSystemAccess,
		},
		// faculty/admin-only operations, attempted by a student
		{
			Match: AnyOf{
				AllOf{Keyword("marks"), keywords("entry", "enter", "fill", "upload")},
				Keyword("publish result"),
				Keyword("result publication"),
				Keyword("faculty allocation"),
				Keyword("duty assignment"),
				Keyword("assign duty"),
			},
			Roles:   []Role{RoleStudent},
			Message: MsgNeedsFacultyAccess,
		},
		// admin-only operations, attempted by faculty
		{
			Match: AnyOf{
				Keyword("publish result"),
				Keyword("result publication"),
				Keyword("declare result"),
				AllOf{keywords("schedule", "timetable"), keywords("create", "change", "modify", "set up")},
				Keyword("faculty allocation"),
				Keyword("allocate faculty"),
			},
			Roles:   []Role{RoleFaculty},
			Message: MsgNeedsAdminAccess,
		},
		// academic records require an account
		{
			Match: keywords(
				"result", "marks", "grade", "marksheet", "hall ticket", "admit card",
				"kt", "backlog", "atkt",
			),
			Roles:   []Role{RoleGuest},
			Message: MsgSignInRequired,
		},
	}
}

// checkAuthorization evaluates the gate table for the caller's role.
func checkAuthorization(q query, role Role, rules []GateRule) verdict {
	for _, rule := range rules {
		if rule.appliesTo(role) && rule.Match.Match(q.text) {
			return verdict{blocked: true, category: CategoryRestrictedTopic, message: rule.Message}
		}
	}
	return verdict{}
}
