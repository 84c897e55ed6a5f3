package transformer

import "strings"

// Rule rewrites the lines it matches.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string
	// Match reports whether the rule applies to line (without its terminator).
	Match func(line string) bool
	// Rewrite returns the replacement for a matched line. Returning line
	// unchanged is how a rule declines to rewrite.
	Rewrite func(line string) string
}

// Table is an ordered rule list; the first matching rule wins.
type Table []Rule

// Lookup returns the first rule matching line.
func (t Table) Lookup(line string) (Rule, bool) {
	for _, r := range t {
		if r.Match(line) {
			return r, true
		}
	}
	return Rule{}, false
}

// Apply returns the rewritten form of line, or line itself if no rule matches.
func (t Table) Apply(line string) string {
	r, ok := t.Lookup(line)
	if !ok {
		return line
	}
	return r.Rewrite(line)
}

// ValueFunc yields a replacement value, or false when the value is absent.
type ValueFunc func() (string, bool)

// Lookuper is satisfied by property sets and resolved configurations.
type Lookuper interface {
	Lookup(key string) (string, bool)
}

// Const always yields v.
func Const(v string) ValueFunc {
	return func() (string, bool) { return v, true }
}

// FromKey yields the value of key in src.
func FromKey(src Lookuper, key string) ValueFunc {
	return func() (string, bool) { return src.Lookup(key) }
}

// MatchesKey reports whether line assigns key, i.e. starts with "key="
// after leading blanks. Commented lines and longer keys sharing a suffix
// or prefix do not match.
func MatchesKey(line, key string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), key+"=")
}

// KeyRule matches "key=" lines and replaces them with "key=<value>".
// When value reports absent the line passes through unchanged.
func KeyRule(key string, value ValueFunc) Rule {
	return Rule{
		Name:  key,
		Match: func(line string) bool { return MatchesKey(line, key) },
		Rewrite: func(line string) string {
			v, ok := value()
			if !ok {
				return line
			}
			return key + "=" + v
		},
	}
}

// GuardedKeyRule is KeyRule that only matches while guard returns true;
// otherwise the line falls through to later rules and, usually, passes
// through unchanged.
func GuardedKeyRule(key string, guard func() bool, value ValueFunc) Rule {
	r := KeyRule(key, value)
	r.Match = func(line string) bool { return guard() && MatchesKey(line, key) }
	return r
}
