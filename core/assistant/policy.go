package assistant

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Refusal and guard messages. Prohibited and inappropriate content each get a
// distinct, uniform refusal so the reply never leaks what the text would
// otherwise have matched.
const (
	MsgProhibited = "I cannot assist with that request. I can help with academic processes instead, " +
		"try asking about exam schedules, results or timetables."
	MsgInappropriate = "Please help me maintain a professional environment. " +
		"I am happy to assist with exam-related questions."
	MsgTooShort = "Could you be more specific? Try asking about exam schedules, results or hall tickets."
)

type PolicyCategory string

const (
	CategorySecurityBypass  PolicyCategory = "security-bypass"
	CategoryDestructive     PolicyCategory = "destructive-action"
	CategoryScriptInjection PolicyCategory = "script-injection"
	CategoryProfanity       PolicyCategory = "profanity"
	CategorySolicitation    PolicyCategory = "solicitation"
	CategoryLowInformation  PolicyCategory = "low-information"
	CategoryRestrictedTopic PolicyCategory = "restricted-topic"
)

// verdict is produced and consumed within one pipeline run.
type verdict struct {
	blocked  bool
	category PolicyCategory
	message  string
}

// PolicyPatterns holds the content-moderation keyword lists by category.
// Prohibited categories (security bypass, destructive actions, script
// injection) are evaluated before inappropriate ones (profanity, spam).
type PolicyPatterns struct {
	SecurityBypass  []string `yaml:"security_bypass"`
	Destructive     []string `yaml:"destructive"`
	ScriptInjection []string `yaml:"script_injection"`
	Profanity       []string `yaml:"profanity"`
	Solicitation    []string `yaml:"solicitation"`
}

// DefaultPolicyPatterns returns the built-in moderation lists.
func DefaultPolicyPatterns() PolicyPatterns {
	return PolicyPatterns{
		SecurityBypass: []string{
			"hack",
			"exploit",
			"unauthorized access",
			"sql injection",
			"steal credential",
			"credentials",
			"secret key",
			"access token",
			"session token",
			"password dump",
			"brute force",
		},
		Destructive: []string{
			"delete database",
			"delete all records",
			"drop database",
			"drop table",
			"truncate",
			"wipe the",
			"erase all",
		},
		ScriptInjection: []string{
			"javascript:",
			"onerror=",
			"onload=",
			"eval(",
			"document.cookie",
		},
		Profanity: []string{
			"stupid",
			"idiot",
			"shut up",
			"damn you",
			"useless bot",
		},
		Solicitation: []string{
			"buy now",
			"free money",
			"lottery",
			"click here",
			"limited offer",
			"earn cash",
		},
	}
}

// LoadPolicyPatterns reads moderation lists from a YAML file.
// Falls back to the defaults when path is empty or the file does not exist.
func LoadPolicyPatterns(path string) (PolicyPatterns, error) {
	if path == "" {
		return DefaultPolicyPatterns(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicyPatterns(), nil
		}
		return PolicyPatterns{}, err
	}
	var p PolicyPatterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return PolicyPatterns{}, err
	}
	return p, nil
}

type policyRule struct {
	category PolicyCategory
	match    Matcher
}

// policyFilter holds the compiled rule sets; read-only after construction.
type policyFilter struct {
	prohibited    []policyRule
	inappropriate []policyRule
}

func newPolicyFilter(p PolicyPatterns) *policyFilter {
	return &policyFilter{
		prohibited: []policyRule{
			{CategorySecurityBypass, keywords(p.SecurityBypass...)},
			{CategoryDestructive, keywords(p.Destructive...)},
			{CategoryScriptInjection, keywords(p.ScriptInjection...)},
		},
		inappropriate: []policyRule{
			{CategoryProfanity, keywords(p.Profanity...)},
			{CategorySolicitation, keywords(p.Solicitation...)},
		},
	}
}

// check classifies the normalized input against the moderation rule sets.
// Policy runs before any business-intent matching so no downstream rule can
// be reached with disallowed text.
func (f *policyFilter) check(q query) verdict {
	// usability guard, not a security one
	if len(q.text) < 2 {
		return verdict{blocked: true, category: CategoryLowInformation, message: MsgTooShort}
	}
	for _, rule := range f.prohibited {
		if rule.match.Match(q.text) {
			return verdict{blocked: true, category: rule.category, message: MsgProhibited}
		}
	}
	for _, rule := range f.inappropriate {
		if rule.match.Match(q.text) {
			return verdict{blocked: true, category: rule.category, message: MsgInappropriate}
		}
	}
	return verdict{}
}
