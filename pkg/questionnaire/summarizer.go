package questionnaire

import (
	"fmt"
	"sort"
	"strings"
)

// NoConcerns is returned when a record exists but no category qualifies.
const NoConcerns = "No significant concerns identified"

const separator = " | "

// Category is a concern area a questionnaire item contributes to.
type Category int

const (
	CategoryDepression Category = iota
	CategoryAnxiety
	CategoryStress
	CategoryIsolation
	CategoryFinancial
	CategoryAcademic
)

func (c Category) String() string {
	for _, r := range rules {
		if r.Category == c {
			return r.Name
		}
	}
	return "unknown"
}

// Comparison decides on which side of the threshold a mean counts as a concern.
type Comparison int

const (
	AtLeast Comparison = iota // mean >= threshold
	AtMost                    // mean <= threshold, low score is the concern
)

func (c Comparison) holds(mean, threshold float64) bool {
	if c == AtMost {
		return mean <= threshold
	}
	return mean >= threshold
}

// Rule describes how one category is scored and labelled.
type Rule struct {
	Category    Category
	Name        string
	Prefix      string
	Threshold   float64
	Compare     Comparison
	Title       string
	ScaleTag    string
	Denominator int
}

func (r Rule) label(mean float64) string {
	return fmt.Sprintf("%s (%s: %.1f/%d)", r.Title, r.ScaleTag, mean, r.Denominator)
}

// rules is iterated in order; the output joins labels in this order.
var rules = []Rule{
	{Category: CategoryDepression, Name: "depression", Prefix: "phq", Threshold: 2, Compare: AtLeast, Title: "Depression concerns", ScaleTag: "PHQ", Denominator: 3},
	{Category: CategoryAnxiety, Name: "anxiety", Prefix: "ghq", Threshold: 2, Compare: AtLeast, Title: "Anxiety concerns", ScaleTag: "GHQ", Denominator: 3},
	{Category: CategoryStress, Name: "stress", Prefix: "pss", Threshold: 2, Compare: AtLeast, Title: "Stress concerns", ScaleTag: "PSS", Denominator: 3},
	{Category: CategoryIsolation, Name: "isolation", Prefix: "ucla", Threshold: 3, Compare: AtLeast, Title: "Social isolation concerns", ScaleTag: "UCLA", Denominator: 4},
	{Category: CategoryFinancial, Name: "financial", Prefix: "fin", Threshold: 3, Compare: AtLeast, Title: "Financial stress concerns", ScaleTag: "Score", Denominator: 4},
	{Category: CategoryAcademic, Name: "academic", Prefix: "acad", Threshold: 2, Compare: AtMost, Title: "Low academic motivation", ScaleTag: "Score", Denominator: 4},
}

// Rules returns a copy of the scoring table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// CategoryOf returns the category of an item code by case-sensitive prefix.
func CategoryOf(itemCode string) (Category, bool) {
	for _, r := range rules {
		if strings.HasPrefix(itemCode, r.Prefix) {
			return r.Category, true
		}
	}
	return 0, false
}

// CategoryScore is the aggregate of one answered category.
type CategoryScore struct {
	Rule     Rule
	Mean     float64
	Items    int
	Included bool
	Label    string
}

// Breakdown scores every category that has at least one answered item,
// in table order. Unknown item codes are ignored.
func Breakdown(responses map[string]float64) []CategoryScore {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	// fixed summation order keeps the result independent of map iteration
	sort.Strings(codes)

	sums := make(map[Category]float64, len(rules))
	counts := make(map[Category]int, len(rules))
	for _, code := range codes {
		cat, ok := CategoryOf(code)
		if !ok {
			continue
		}
		sums[cat] += responses[code]
		counts[cat]++
	}

	var scores []CategoryScore
	for _, r := range rules {
		n := counts[r.Category]
		if n == 0 {
			continue
		}
		mean := sums[r.Category] / float64(n)
		score := CategoryScore{Rule: r, Mean: mean, Items: n}
		if r.Compare.holds(mean, r.Threshold) {
			score.Included = true
			score.Label = r.label(mean)
		}
		scores = append(scores, score)
	}
	return scores
}

// Summarize reduces questionnaire responses to a short concern summary
// suitable as prompt context.
func Summarize(responses map[string]float64) string {
	var labels []string
	for _, s := range Breakdown(responses) {
		if s.Included {
			labels = append(labels, s.Label)
		}
	}
	if len(labels) == 0 {
		return NoConcerns
	}
	return strings.Join(labels, separator)
}
