package services

import (
	_ "embed"
	"fmt"

	"psytest/scoring"

	"gopkg.in/yaml.v3"
)

//go:embed norms.yaml
var normsYAML []byte

var referenceNorms = mustParseNorms(normsYAML)

func mustParseNorms(data []byte) map[scoring.TestType][]CreateRuleRequest {
	var norms map[scoring.TestType][]CreateRuleRequest
	if err := yaml.Unmarshal(data, &norms); err != nil {
		panic(fmt.Sprintf("services: bad embedded norms: %v", err))
	}
	return norms
}

// withNorms appends the reference norms of the test type for every scope the given rules leave
// uncovered. Authored rules always win over the norms of the same scope.
func withNorms(testType string, rules []CreateRuleRequest) []CreateRuleRequest {
	norms := referenceNorms[scoring.ParseTestType(testType)]
	if len(norms) == 0 {
		return rules
	}

	covered := make(map[string]bool, len(rules))
	for _, r := range rules {
		covered[r.scope()] = true
	}

	out := append([]CreateRuleRequest(nil), rules...)
	for _, n := range norms {
		if !covered[n.scope()] {
			out = append(out, n)
		}
	}
	return out
}
