package scoring

type additiveStrategy struct{}

func (additiveStrategy) Score(answers []Answer, rules RuleSet) outcome {
	var total PointValue
	for _, a := range answers {
		total += a.Points()
	}
	return outcome{
		total:   int(total),
		primary: rules.Resolve(int(total), "", UndefinedResult),
	}
}
