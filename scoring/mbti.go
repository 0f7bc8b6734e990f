package scoring

import "log"

var traitLetters = map[TraitCode]byte{
	1: 'E', 2: 'I',
	3: 'N', 4: 'S',
	5: 'F', 6: 'T',
	7: 'J', 8: 'P',
}

var letterWeights = map[byte]int{
	'E': 1000, 'I': 2000,
	'S': 100, 'N': 200,
	'T': 10, 'F': 20,
	'J': 1, 'P': 2,
}

// mbtiAxis is one letter pair answered by a window of questions. The second letter wins ties.
type mbtiAxis struct {
	first, second byte
	from, to      int
}

var mbtiAxes = [4]mbtiAxis{
	{first: 'E', second: 'I', from: 1, to: 7},
	{first: 'S', second: 'N', from: 8, to: 14},
	{first: 'F', second: 'T', from: 15, to: 21},
	{first: 'P', second: 'J', from: 22, to: 28},
}

type mbtiStrategy struct{}

func (mbtiStrategy) Score(answers []Answer, rules RuleSet) outcome {
	code := MBTIType(answers)
	total := EncodeMBTI(code)

	primary := code
	if r, ok := rules.MatchExact(total); ok {
		primary = r.Label().String()
	} else {
		log.Printf("scoring: no rule for MBTI type %s (%d)", code, total)
	}
	return outcome{total: total, primary: primary}
}

// MBTIType counts trait letters per axis window and returns the 4-letter type code.
func MBTIType(answers []Answer) string {
	var counts [4]map[byte]int
	for i := range counts {
		counts[i] = map[byte]int{}
	}

	for _, a := range answers {
		if a.OrderIndex <= 0 {
			continue
		}
		letter, ok := traitLetters[a.Trait()]
		if !ok {
			continue
		}
		for i, ax := range mbtiAxes {
			if a.OrderIndex >= ax.from && a.OrderIndex <= ax.to {
				if letter == ax.first || letter == ax.second {
					counts[i][letter]++
				}
				break
			}
		}
	}

	code := make([]byte, 4)
	for i, ax := range mbtiAxes {
		if counts[i][ax.first] > counts[i][ax.second] {
			code[i] = ax.first
		} else {
			code[i] = ax.second
		}
	}
	return string(code)
}

// EncodeMBTI sums the per-letter weights of a type code.
func EncodeMBTI(code string) int {
	total := 0
	for i := 0; i < len(code); i++ {
		total += letterWeights[code[i]]
	}
	return total
}

// DecodeMBTI recovers the type code from an encoded score.
func DecodeMBTI(score int) (string, bool) {
	if score < 0 {
		return "", false
	}
	digits := [4]int{score / 1000, score / 100 % 10, score / 10 % 10, score % 10}
	pairs := [4][2]byte{{'E', 'I'}, {'S', 'N'}, {'T', 'F'}, {'J', 'P'}}

	code := make([]byte, 4)
	for i, d := range digits {
		switch d {
		case 1:
			code[i] = pairs[i][0]
		case 2:
			code[i] = pairs[i][1]
		default:
			return "", false
		}
	}
	return string(code), true
}
