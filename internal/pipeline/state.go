// Package pipeline orchestrates trend resolution: aggregation, tiered query generation,
// test searches, escalation classification and the final exhaustive pass.
package pipeline

// State names one stage of a pipeline run.
type State string

// Pipeline states in execution order.
const (
	StateAggregate             State = "aggregate"
	StateGenerateManualQueries State = "generate_manual_queries"
	StateTestManualQueries     State = "test_manual_queries"
	StateClassifyManual        State = "classify_manual"
	StateGenerateModelQueries  State = "generate_model_queries"
	StateTestModelQueries      State = "test_model_queries"
	StateClassifyModel         State = "classify_model"
	StateExecuteFinalSearches  State = "execute_final_searches"
	StateClassifyFinal         State = "classify_final"
	StateDone                  State = "done"
)

// Stage categories group states by tier.
const (
	CategoryIngest   = "ingest"
	CategoryManual   = "manual"
	CategoryModel    = "model"
	CategoryFinal    = "final"
	CategoryTerminal = "terminal"
)

// StateDefinition describes a state and the states that must have completed before it.
type StateDefinition struct {
	Name         State
	Category     string
	Dependencies []State
}

// StateRegistry holds every state definition.
var StateRegistry = map[State]StateDefinition{
	StateAggregate: {
		Name:     StateAggregate,
		Category: CategoryIngest,
	},
	StateGenerateManualQueries: {
		Name:         StateGenerateManualQueries,
		Category:     CategoryManual,
		Dependencies: []State{StateAggregate},
	},
	StateTestManualQueries: {
		Name:         StateTestManualQueries,
		Category:     CategoryManual,
		Dependencies: []State{StateGenerateManualQueries},
	},
	StateClassifyManual: {
		Name:         StateClassifyManual,
		Category:     CategoryManual,
		Dependencies: []State{StateTestManualQueries},
	},
	StateGenerateModelQueries: {
		Name:         StateGenerateModelQueries,
		Category:     CategoryModel,
		Dependencies: []State{StateClassifyManual},
	},
	StateTestModelQueries: {
		Name:         StateTestModelQueries,
		Category:     CategoryModel,
		Dependencies: []State{StateGenerateModelQueries},
	},
	StateClassifyModel: {
		Name:         StateClassifyModel,
		Category:     CategoryModel,
		Dependencies: []State{StateTestModelQueries},
	},
	StateExecuteFinalSearches: {
		Name:         StateExecuteFinalSearches,
		Category:     CategoryFinal,
		Dependencies: []State{StateClassifyManual},
	},
	StateClassifyFinal: {
		Name:         StateClassifyFinal,
		Category:     CategoryFinal,
		Dependencies: []State{StateExecuteFinalSearches},
	},
	StateDone: {
		Name:     StateDone,
		Category: CategoryTerminal,
	},
}

// NextState is the pure routing function of the state machine. It reads only the run's
// current state, its candidate count and its two partitions.
func NextState(run *Run) State {
	switch run.State {
	case StateAggregate:
		if len(run.Candidates) == 0 {
			return StateDone
		}
		return StateGenerateManualQueries
	case StateGenerateManualQueries:
		return StateTestManualQueries
	case StateTestManualQueries:
		return StateClassifyManual
	case StateClassifyManual:
		if len(run.NonEntertainment) > 0 {
			return StateGenerateModelQueries
		}
		return StateExecuteFinalSearches
	case StateGenerateModelQueries:
		return StateTestModelQueries
	case StateTestModelQueries:
		return StateClassifyModel
	case StateClassifyModel:
		if len(run.Entertainment) == 0 {
			return StateDone
		}
		return StateExecuteFinalSearches
	case StateExecuteFinalSearches:
		return StateClassifyFinal
	default:
		return StateDone
	}
}
