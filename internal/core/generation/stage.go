package generation

// Stage is a step of a generation run.
type Stage string

const (
	StageValidating Stage = "validating"
	StageRendering  Stage = "rendering"
	StageWriting    Stage = "writing"
	StagePatching   Stage = "patching"
	StageDone       Stage = "done"
	StageError      Stage = "error"
)

// validTransitions lists the stages reachable from each stage. Error is reachable
// from every non-terminal stage.
var validTransitions = map[Stage][]Stage{
	StageValidating: {StageRendering, StageError},
	StageRendering:  {StageWriting, StageError},
	StageWriting:    {StagePatching, StageDone, StageError},
	StagePatching:   {StageDone, StageError},
}

// CanTransition reports whether a run may move from one stage to the next.
func CanTransition(from, to Stage) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageError
}
