// Package assistant implements the portal assistant's query interpretation
// and policy-gated response engine. Given one line of user text, the caller's
// role and the current page, it classifies intent, enforces content policy
// and role authorization, and synthesizes a Decision (text plus optional
// suggested actions). The pipeline is a pure function over an immutable rule
// configuration and takes exactly one terminal path per invocation.
package assistant

// Config is the full, immutable rule configuration of one Engine.
// It is constructed once at startup and shared read-only across invocations.
type Config struct {
	Policy    PolicyPatterns
	Gate      []GateRule
	Intents   []IntentRule
	PageHelp  map[Page]string
	PageQuery Matcher
	Fallback  map[Role]IntentRule
}

// DefaultConfig returns the built-in rule tables.
func DefaultConfig() Config {
	return Config{
		Policy:    DefaultPolicyPatterns(),
		Gate:      defaultGateRules(),
		Intents:   defaultIntentRules(),
		PageHelp:  defaultPageHelp(),
		PageQuery: pageHelpMatcher(),
		Fallback:  defaultFallbacks(),
	}
}

type Engine struct {
	cfg    Config
	policy *policyFilter
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		policy: newPolicyFilter(cfg.Policy),
	}
}

// Interpret runs the full pipeline for one user input. It is total: every
// input yields exactly one Decision and no error. An unknown or absent role
// is treated as guest; an unknown page as general.
func (e *Engine) Interpret(rawText string, role Role, page Page) Decision {
	role = CleanRole(role)
	q := normalize(rawText)

	if v := e.policy.check(q); v.blocked {
		return synthesize(nil, v)
	}
	if v := checkAuthorization(q, role, e.cfg.Gate); v.blocked {
		return synthesize(nil, v)
	}
	if rule := e.matchIntent(q, role, page); rule != nil {
		return synthesize(rule, verdict{})
	}
	fb := e.cfg.Fallback[role]
	return synthesize(&fb, verdict{})
}

// matchIntent evaluates the ordered router table; first match wins.
// Page-context help is keyed by the caller's page and sits between the rule
// table and the fallback.
func (e *Engine) matchIntent(q query, role Role, page Page) *IntentRule {
	for i := range e.cfg.Intents {
		rule := &e.cfg.Intents[i]
		if rule.appliesTo(role) && rule.Match.Match(q.text) {
			return rule
		}
	}
	if e.cfg.PageQuery != nil && e.cfg.PageQuery.Match(q.text) {
		help, ok := e.cfg.PageHelp[page]
		if !ok {
			help = e.cfg.PageHelp[PageGeneral]
		}
		if help != "" {
			return &IntentRule{Name: "page-help", Response: help}
		}
	}
	return nil
}

// synthesize produces the final Decision. Actions are never attached to a
// denied response, and the rule's action list is copied so no caller can
// mutate the shared tables.
func synthesize(matched *IntentRule, v verdict) Decision {
	if v.blocked {
		return Decision{ResponseText: v.message, Actions: []Action{}, Allowed: false}
	}
	actions := make([]Action, len(matched.Actions))
	copy(actions, matched.Actions)
	return Decision{ResponseText: matched.Response, Actions: actions, Allowed: true}
}
