package scoring

// MPS dimension codes. HST and ADT are roll-ups of the base dimensions.
const (
	DimSelfOriented       = "SOP"
	DimOtherOriented      = "OOP"
	DimSociallyPrescribed = "SPP"
	DimEmotion            = "EMO"
	DimCognitive          = "CB"
	DimHighStandards      = "HST"
	DimAdaptation         = "ADT"
)

var mpsDimensions = []string{
	DimSelfOriented,
	DimOtherOriented,
	DimSociallyPrescribed,
	DimEmotion,
	DimCognitive,
	DimHighStandards,
	DimAdaptation,
}

var mpsRollup = map[string]string{
	DimSelfOriented:       DimHighStandards,
	DimOtherOriented:      DimHighStandards,
	DimSociallyPrescribed: DimHighStandards,
	DimEmotion:            DimAdaptation,
	DimCognitive:          DimAdaptation,
}

// mpsItems maps question order index to its base dimension and roll-up.
var mpsItems = withRollups(indexTable(map[string][]int{
	DimSelfOriented:       {2, 4, 14, 15, 26},
	DimOtherOriented:      {10, 11, 12, 19, 24},
	DimSociallyPrescribed: {1, 6, 21, 25, 29},
	DimEmotion:            {3, 5, 7, 9, 13, 17, 22, 23, 28},
	DimCognitive:          {8, 16, 18, 20, 27},
}))

type mpsStrategy struct{}

func (mpsStrategy) Score(answers []Answer, rules RuleSet) outcome {
	tally := newDimensionTally(mpsDimensions...)
	total := 0
	for _, a := range answers {
		total += int(a.Points())
		for _, code := range mpsItems[a.OrderIndex] {
			tally.add(code, int(a.Points()))
		}
	}

	primary := UndefinedResult
	if r, ok := rules.Match(tally.scores[DimHighStandards], DimHighStandards); ok {
		primary = r.Label().String()
	}
	return outcome{
		total:      total,
		primary:    primary,
		dimensions: tally.resolve(rules),
	}
}

func withRollups(table map[int][]string) map[int][]string {
	for idx, codes := range table {
		var extra []string
		for _, c := range codes {
			if r, ok := mpsRollup[c]; ok {
				extra = append(extra, r)
			}
		}
		table[idx] = append(codes, extra...)
	}
	return table
}
