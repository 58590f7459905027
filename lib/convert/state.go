package convert

import "strconv"

// A State is a stage of a conversion run.
type State uint32

const (
	// Idle is before the job is submitted.
	Idle State = iota
	// PackingImages is writing the packed PNG files.
	PackingImages
	// ConvertingNative is running the native converter.
	ConvertingNative
	// Completed means every file was converted.
	Completed
	// Cancelled means the user cancelled the run. It is not a failure.
	Cancelled
	// Failed means the run stopped with an error.
	Failed
)

var stateNames = [...]string{
	Idle:             "idle",
	PackingImages:    "packing images",
	ConvertingNative: "converting native",
	Completed:        "completed",
	Cancelled:        "cancelled",
	Failed:           "failed",
}

func (s State) String() string {
	if i := uint32(s); i < uint32(len(stateNames)) {
		return stateNames[i]
	}
	return "State(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// Terminal returns true for the states which end a run.
func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}
