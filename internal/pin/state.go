// internal/pin/state.go
package pin

// State is the UI-facing authentication state. The consuming popup is driven
// entirely by these values plus the outcomes of Set/Verify/Update.
type State string

const (
	StateNeedsSetup    State = "needs_setup"
	StateNeedsLogin    State = "needs_login"
	StateChangingPIN   State = "changing_pin"
	StateAuthenticated State = "authenticated"
)

// InitialState picks the state an interface should start in.
func InitialState(pinSet bool) State {
	if pinSet {
		return StateNeedsLogin
	}
	return StateNeedsSetup
}

// Next returns the state following a successful operation in the current
// state. Unknown combinations leave the state unchanged; there is no
// terminal state, sessions last until an explicit log-out.
func (s State) Next(event Event) State {
	switch {
	case s == StateNeedsSetup && event == EventPINSet:
		return StateNeedsLogin
	case s == StateNeedsLogin && event == EventPINVerified:
		return StateAuthenticated
	case s == StateAuthenticated && event == EventChangeRequested:
		return StateChangingPIN
	case s == StateChangingPIN && event == EventPINUpdated:
		return StateNeedsLogin
	case s == StateAuthenticated && event == EventLoggedOut:
		return StateNeedsLogin
	case s == StateChangingPIN && event == EventChangeCancelled:
		return StateAuthenticated
	}
	return s
}

// Event is a successful UI-level operation that can advance the state.
type Event string

const (
	EventPINSet          Event = "pin_set"
	EventPINVerified     Event = "pin_verified"
	EventPINUpdated      Event = "pin_updated"
	EventChangeRequested Event = "change_requested"
	EventChangeCancelled Event = "change_cancelled"
	EventLoggedOut       Event = "logged_out"
)
