package scoring

import "log"

// RuleSet is the ordered rule list of one test. Resolution takes the first match, so the order
// must be the deterministic storage order (min_score, id).
type RuleSet []Rule

// scope returns the dimension a rule applies to; "" is the total score.
func (r Rule) scope() string {
	if r.DimensionCode == nil {
		return ""
	}
	return *r.DimensionCode
}

func (r Rule) contains(score int) bool {
	if score < r.MinScore {
		return false
	}
	return r.MaxScore == nil || *r.MaxScore >= score
}

// Label returns the rule's title and description.
func (r Rule) Label() Label {
	l := Label{Title: r.ResultRange}
	if r.Description != nil {
		l.Description = *r.Description
	}
	return l
}

// Match returns the first rule scoped to dimension (empty for the total score) whose range
// contains score.
func (rs RuleSet) Match(score int, dimension string) (Rule, bool) {
	for _, r := range rs {
		if r.scope() == dimension && r.contains(score) {
			return r, true
		}
	}
	return Rule{}, false
}

// MatchExact returns the first total-score rule whose min_score equals score.
func (rs RuleSet) MatchExact(score int) (Rule, bool) {
	for _, r := range rs {
		if r.scope() == "" && r.MinScore == score {
			return r, true
		}
	}
	return Rule{}, false
}

// Resolve formats the label of the matching rule, or returns fallback.
func (rs RuleSet) Resolve(score int, dimension, fallback string) string {
	if r, ok := rs.Match(score, dimension); ok {
		return r.Label().String()
	}
	if dimension == "" {
		log.Printf("scoring: no total rule matches score %d", score)
	} else {
		log.Printf("scoring: no %s rule matches score %d", dimension, score)
	}
	return fallback
}
