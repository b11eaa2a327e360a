package streaming

// State is the lifecycle stage of a chunk position.
//
//	Unloaded → Generating → Meshing → Ready
//	Ready → Dirty → Meshing
//	any → Unloading → Unloaded
type State int

const (
	Unloaded State = iota
	Generating
	Meshing
	Ready
	Dirty
	Unloading
)

var stateNames = [...]string{
	Unloaded:   "unloaded",
	Generating: "generating",
	Meshing:    "meshing",
	Ready:      "ready",
	Dirty:      "dirty",
	Unloading:  "unloading",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
