package fulfillment

// State is the position of one workflow execution. It is transient: the engine
// keeps it only while the execution runs.
type State string

const (
	Charging  State = "CHARGING"
	Updating  State = "UPDATING"
	Notifying State = "NOTIFYING"
	Completed State = "COMPLETED"
	Failed    State = "FAILED"
)

// IsTerminal reports whether no further step will run.
func (s State) IsTerminal() bool {
	return s == Completed || s == Failed
}

func (s State) String() string {
	return string(s)
}
