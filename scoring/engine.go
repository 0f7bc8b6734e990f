package scoring

// outcome is what a strategy computes before assembly.
type outcome struct {
	total      int
	primary    string
	dimensions []DimensionResult
}

// Strategy scores the answers of one test type.
type Strategy interface {
	Score(answers []Answer, rules RuleSet) outcome
}

// Engine routes a submission to the strategy of its test type.
type Engine struct {
	strategies map[TestType]Strategy
}

// NewEngine installs the built-in strategies.
func NewEngine() *Engine {
	return &Engine{
		strategies: map[TestType]Strategy{
			TypeAdditive: additiveStrategy{},
			TypeMBTI:     mbtiStrategy{},
			TypeHPLP:     hplpStrategy{},
			TypeMPS:      mpsStrategy{},
		},
	}
}

// Score validates and scores a submission. Rules must be in storage order.
func (e *Engine) Score(testType string, answers []Answer, rules []Rule) (*Result, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	s, ok := e.strategies[ParseTestType(testType)]
	if !ok {
		s = additiveStrategy{}
	}
	return assemble(s.Score(answers, RuleSet(rules))), nil
}

// assemble builds the persisted shape; dimensions are never nil.
func assemble(o outcome) *Result {
	dims := o.dimensions
	if dims == nil {
		dims = []DimensionResult{}
	}
	return &Result{
		TotalScore: o.total,
		Result:     o.primary,
		Dimensions: dims,
	}
}

// dimensionTally accumulates scores per dimension code in a fixed emit order.
type dimensionTally struct {
	order  []string
	scores map[string]int
}

func newDimensionTally(codes ...string) *dimensionTally {
	t := &dimensionTally{order: codes, scores: make(map[string]int, len(codes))}
	for _, c := range codes {
		t.scores[c] = 0
	}
	return t
}

func (t *dimensionTally) add(code string, score int) {
	t.scores[code] += score
}

// resolve emits every dimension, falling back to the score itself when no rule matches.
func (t *dimensionTally) resolve(rules RuleSet) []DimensionResult {
	out := make([]DimensionResult, 0, len(t.order))
	for _, code := range t.order {
		score := t.scores[code]
		out = append(out, DimensionResult{
			Code:        code,
			Score:       score,
			ResultRange: rules.Resolve(score, code, itoa(score)),
		})
	}
	return out
}
