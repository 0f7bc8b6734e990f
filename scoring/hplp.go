package scoring

// HPLP dimension codes in emit order.
const (
	DimHealthResponsibility  = "HR"
	DimPhysicalActivity      = "PA"
	DimNutrition             = "N"
	DimInterpersonalRelation = "IR"
	DimStressManagement      = "SM"
	DimSpiritualGrowth       = "SG"
)

var hplpDimensions = []string{
	DimHealthResponsibility,
	DimPhysicalActivity,
	DimNutrition,
	DimInterpersonalRelation,
	DimStressManagement,
	DimSpiritualGrowth,
}

// hplpItems maps question order index to its dimension.
var hplpItems = indexTable(map[string][]int{
	DimInterpersonalRelation: {4, 10, 17, 23, 30},
	DimStressManagement:      {5, 11, 18, 25, 33},
	DimHealthResponsibility:  {1, 6, 12, 14, 19, 24, 28, 32, 35, 38, 40},
	DimNutrition:             {3, 9, 16, 22, 27, 34},
	DimPhysicalActivity:      {2, 8, 15, 21, 26, 31, 37, 39},
	DimSpiritualGrowth:       {7, 13, 20, 29, 36},
})

type hplpStrategy struct{}

func (hplpStrategy) Score(answers []Answer, rules RuleSet) outcome {
	tally := newDimensionTally(hplpDimensions...)
	total := 0
	for _, a := range answers {
		total += int(a.Points())
		for _, code := range hplpItems[a.OrderIndex] {
			tally.add(code, int(a.Points()))
		}
	}
	return outcome{
		total:      total,
		primary:    rules.Resolve(total, "", UndefinedResult),
		dimensions: tally.resolve(rules),
	}
}

// indexTable inverts dimension -> indices into index -> dimensions.
func indexTable(byDimension map[string][]int) map[int][]string {
	out := make(map[int][]string)
	for code, indices := range byDimension {
		for _, idx := range indices {
			out[idx] = append(out[idx], code)
		}
	}
	return out
}
