package healthplan

import (
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const shortSleepHours = 7

// Guidance looks up the condition notes and lifestyle tips that apply to an
// intake. Notes follow the order conditions were given; each condition
// contributes once.
func Guidance(tables *catalog.Planner, in model.UserIntake) (notes, tips []string) {
	notes = make([]string, 0)
	seen := map[string]bool{}
	for _, c := range in.Medical.Conditions {
		key := strings.ToLower(strings.TrimSpace(c))
		if seen[key] {
			continue
		}
		seen[key] = true
		notes = append(notes, tables.ConditionNotes[key]...)
	}

	tips = make([]string, 0)
	tips = append(tips, tables.GoalTips[string(in.Goal.Goal)]...)
	tips = append(tips, tables.StressTips[string(in.Activity.StressLevel)]...)
	if in.Activity.SleepHours > 0 && in.Activity.SleepHours < shortSleepHours {
		tips = append(tips, tables.SleepTips...)
	}
	tips = append(tips, tables.GeneralTips...)
	return notes, tips
}
