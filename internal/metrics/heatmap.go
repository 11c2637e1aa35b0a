package metrics

import "sort"

// Heatmap is the reviewer × author PR-count matrix. Reviewers index the rows,
// authors the columns.
type Heatmap struct {
	Reviewers []string
	Authors   []string
	Counts    [][]int
	Max       int
}

// ReviewerAuthorHeatmap groups cycle-time facts into a PR-count matrix.
// Facts with an empty reviewer or author are skipped.
func ReviewerAuthorHeatmap(facts []PRCycleTimeFact) *Heatmap {
	counts := make(map[string]map[string]int)
	authorSet := make(map[string]bool)

	for _, f := range facts {
		if f.Reviewer == "" || f.Author == "" {
			continue
		}
		if counts[f.Reviewer] == nil {
			counts[f.Reviewer] = make(map[string]int)
		}
		counts[f.Reviewer][f.Author]++
		authorSet[f.Author] = true
	}

	hm := &Heatmap{}
	for r := range counts {
		hm.Reviewers = append(hm.Reviewers, r)
	}
	for a := range authorSet {
		hm.Authors = append(hm.Authors, a)
	}
	sort.Strings(hm.Reviewers)
	sort.Strings(hm.Authors)

	hm.Counts = make([][]int, len(hm.Reviewers))
	for i, r := range hm.Reviewers {
		hm.Counts[i] = make([]int, len(hm.Authors))
		for j, a := range hm.Authors {
			n := counts[r][a]
			hm.Counts[i][j] = n
			if n > hm.Max {
				hm.Max = n
			}
		}
	}
	return hm
}
