package cancelpayment

const (
	commandType = "CancelPayment"
)

// Command represents the payer abandoning a checkout session. It carries no data.
type Command struct{}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}
