package reconcilepayment

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "ReconcilePayment"
)

// Command represents the callback of the checkout provider for one session.
type Command struct {
	SessionID core.SessionIDString
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(sessionID core.SessionIDString) Command {
	return Command{
		SessionID: sessionID,
	}
}
