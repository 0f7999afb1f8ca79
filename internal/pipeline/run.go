package pipeline

import (
	"github.com/jonathan/trend-resolver/internal/types"
)

// Run is the accumulator threaded through every state of one pipeline invocation.
// All maps are keyed by candidate text. It is owned by a single Orchestrator call.
type Run struct {
	ID    string
	State State
	// History lists the states executed, in order
	History []State

	Candidates []types.TrendCandidate
	index      map[string]int

	ManualQueries         map[string][]types.Query
	ManualResults         map[string][]types.SearchResult
	ManualClassifications map[string]types.Classification

	ModelQueries         map[string][]types.Query
	ModelResults         map[string][]types.SearchResult
	ModelClassifications map[string]types.Classification

	FinalResults         map[string][]types.SearchResult
	FinalClassifications map[string]types.Classification

	// Entertainment and NonEntertainment partition the candidates by trend text,
	// each in aggregation order.
	Entertainment    []string
	NonEntertainment []string
	confirmedBy      map[string]types.QueryTier

	Failures []*StageError
	// EvidenceGaps lists classifications made with zero search results
	EvidenceGaps []EvidenceGap
}

// EvidenceGap marks a candidate classified with zero search results at one state.
// It is a defined outcome for that tier, not a failure.
type EvidenceGap struct {
	State State
	Trend string
}

// NewRun creates an empty run in the Aggregate state.
func NewRun(id string) *Run {
	return &Run{
		ID:                    id,
		State:                 StateAggregate,
		index:                 make(map[string]int),
		ManualQueries:         make(map[string][]types.Query),
		ManualResults:         make(map[string][]types.SearchResult),
		ManualClassifications: make(map[string]types.Classification),
		ModelQueries:          make(map[string][]types.Query),
		ModelResults:          make(map[string][]types.SearchResult),
		ModelClassifications:  make(map[string]types.Classification),
		FinalResults:          make(map[string][]types.SearchResult),
		FinalClassifications:  make(map[string]types.Classification),
		confirmedBy:           make(map[string]types.QueryTier),
	}
}

// SetCandidates installs the aggregated candidate list.
func (r *Run) SetCandidates(cs []types.TrendCandidate) {
	r.Candidates = cs
	r.index = make(map[string]int, len(cs))
	for i, c := range cs {
		r.index[c.Text] = i
	}
}

// Candidate returns the current (possibly enriched) candidate for a trend text.
func (r *Run) Candidate(text string) (types.TrendCandidate, bool) {
	i, ok := r.index[text]
	if !ok {
		return types.TrendCandidate{}, false
	}
	return r.Candidates[i], true
}

func (r *Run) replaceCandidate(c types.TrendCandidate) {
	if i, ok := r.index[c.Text]; ok {
		r.Candidates[i] = c
	}
}

// IsEntertainment reports whether a trend is currently in the entertainment partition.
func (r *Run) IsEntertainment(text string) bool {
	_, ok := r.confirmedBy[text]
	return ok
}

// ConfirmedBy returns the tier that placed a trend in the entertainment partition.
func (r *Run) ConfirmedBy(text string) (types.QueryTier, bool) {
	tier, ok := r.confirmedBy[text]
	return tier, ok
}

// markEntertainment moves a trend into the entertainment partition. A trend already
// there is left alone so it can never appear twice.
func (r *Run) markEntertainment(text string, tier types.QueryTier) {
	if r.IsEntertainment(text) {
		return
	}
	r.confirmedBy[text] = tier
	r.NonEntertainment = remove(r.NonEntertainment, text)
	r.Entertainment = r.inOrder(append(r.Entertainment, text))
}

func (r *Run) markNonEntertainment(text string) {
	if r.IsEntertainment(text) {
		return
	}
	for _, t := range r.NonEntertainment {
		if t == text {
			return
		}
	}
	r.NonEntertainment = r.inOrder(append(r.NonEntertainment, text))
}

// inOrder sorts trend texts by aggregation position.
func (r *Run) inOrder(texts []string) []string {
	for i := 1; i < len(texts); i++ {
		for j := i; j > 0 && r.index[texts[j]] < r.index[texts[j-1]]; j-- {
			texts[j], texts[j-1] = texts[j-1], texts[j]
		}
	}
	return texts
}

func remove(list []string, text string) []string {
	out := list[:0]
	for _, t := range list {
		if t != text {
			out = append(out, t)
		}
	}
	return out
}

func (r *Run) fail(kind ErrorKind, state State, trend string, cause error) *StageError {
	e := &StageError{Kind: kind, State: state, Trend: trend, Cause: cause}
	r.Failures = append(r.Failures, e)
	return e
}

// FailuresOf returns the recorded failures of one kind.
func (r *Run) FailuresOf(kind ErrorKind) []*StageError {
	var out []*StageError
	for _, f := range r.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// FinalQueries returns the query set used for a trend's final pass: the set from the tier
// that confirmed it, or the other tier's set when that one is empty.
func (r *Run) FinalQueries(text string) []types.Query {
	manual, model := r.ManualQueries[text], r.ModelQueries[text]
	if r.confirmedBy[text] == types.TierModel {
		if len(model) > 0 {
			return model
		}
		return manual
	}
	if len(manual) > 0 {
		return manual
	}
	return model
}

// Results returns one ClassifiedTrend per candidate in aggregation order. Candidates that
// went through the final pass carry its results and verdict; the rest carry the verdict
// of the last tier that saw them and no results.
func (r *Run) Results() []types.ClassifiedTrend {
	out := make([]types.ClassifiedTrend, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		ct := types.ClassifiedTrend{Candidate: c, FinalSearchResults: []types.SearchResult{}}
		if cls, ok := r.FinalClassifications[c.Text]; ok {
			ct.FinalClassification = cls
			ct.ResolvedAt = types.ResolvedFinal
			if res := r.FinalResults[c.Text]; res != nil {
				ct.FinalSearchResults = res
			}
		} else if cls, ok := r.ModelClassifications[c.Text]; ok {
			ct.FinalClassification = cls
			ct.ResolvedAt = types.ResolvedModel
		} else if cls, ok := r.ManualClassifications[c.Text]; ok {
			ct.FinalClassification = cls
			ct.ResolvedAt = types.ResolvedManual
		} else {
			ct.FinalClassification = types.NoEvidence()
			ct.ResolvedAt = types.ResolvedManual
		}
		out = append(out, ct)
	}
	return out
}

// Summary counts the outcome of a run. Entertainment and NonEntertainment follow each
// trend's final verdict; Confirmed is the number of trends that entered the final pass.
type Summary struct {
	Candidates       int
	Entertainment    int
	NonEntertainment int
	Confirmed        int
	Escalated        int
	Upgraded         int
	FinalPass        int
	NoEvidence       int
	Failures         map[ErrorKind]int
}

// Summarize reports verdict counts, tier sizes and failure counts.
func (r *Run) Summarize() Summary {
	s := Summary{
		Candidates: len(r.Candidates),
		Confirmed:  len(r.Entertainment),
		Escalated:  len(r.ModelClassifications),
		FinalPass:  len(r.FinalClassifications),
		NoEvidence: len(r.EvidenceGaps),
		Failures:   make(map[ErrorKind]int),
	}
	for _, t := range r.Results() {
		if t.FinalClassification.IsEntertainment {
			s.Entertainment++
		} else {
			s.NonEntertainment++
		}
	}
	for _, tier := range r.confirmedBy {
		if tier == types.TierModel {
			s.Upgraded++
		}
	}
	for _, f := range r.Failures {
		s.Failures[f.Kind]++
	}
	return s
}
