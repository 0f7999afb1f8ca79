package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/trend-resolver/internal/types"
)

func runWith(state State, candidates int, ent, nonEnt []string) *Run {
	run := NewRun("test")
	cs := make([]types.TrendCandidate, candidates)
	for i := range cs {
		cs[i] = types.TrendCandidate{Text: string(rune('a' + i))}
	}
	run.SetCandidates(cs)
	run.State = state
	run.Entertainment = ent
	run.NonEntertainment = nonEnt
	return run
}

func TestNextState(t *testing.T) {
	tests := []struct {
		name string
		run  *Run
		want State
	}{
		{"empty batch ends", runWith(StateAggregate, 0, nil, nil), StateDone},
		{"aggregate to manual", runWith(StateAggregate, 2, nil, nil), StateGenerateManualQueries},
		{"manual generation to test", runWith(StateGenerateManualQueries, 2, nil, nil), StateTestManualQueries},
		{"manual test to classify", runWith(StateTestManualQueries, 2, nil, nil), StateClassifyManual},
		{"escalate unresolved", runWith(StateClassifyManual, 2, []string{"a"}, []string{"b"}), StateGenerateModelQueries},
		{"skip model tier", runWith(StateClassifyManual, 2, []string{"a", "b"}, nil), StateExecuteFinalSearches},
		{"model generation to test", runWith(StateGenerateModelQueries, 1, nil, []string{"a"}), StateTestModelQueries},
		{"model test to classify", runWith(StateTestModelQueries, 1, nil, []string{"a"}), StateClassifyModel},
		{"model tier to final", runWith(StateClassifyModel, 2, []string{"a"}, []string{"b"}), StateExecuteFinalSearches},
		{"nothing confirmed ends", runWith(StateClassifyModel, 1, nil, []string{"a"}), StateDone},
		{"final search to classify", runWith(StateExecuteFinalSearches, 1, []string{"a"}, nil), StateClassifyFinal},
		{"final classify ends", runWith(StateClassifyFinal, 1, []string{"a"}, nil), StateDone},
		{"done stays done", runWith(StateDone, 1, nil, nil), StateDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextState(tt.run))
		})
	}
}

func TestNextState_IsPure(t *testing.T) {
	run := runWith(StateClassifyManual, 2, []string{"a"}, []string{"b"})
	first := NextState(run)
	assert.Equal(t, first, NextState(run))
	assert.Equal(t, StateClassifyManual, run.State)
}

func TestStateRegistry_DependenciesAreRegistered(t *testing.T) {
	for name, def := range StateRegistry {
		assert.Equal(t, name, def.Name)
		for _, dep := range def.Dependencies {
			_, ok := StateRegistry[dep]
			assert.True(t, ok, "%s depends on unregistered %s", name, dep)
		}
	}
}
