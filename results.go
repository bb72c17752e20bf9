package skinmarket

// CheckResult captures any non-error result of a pre-flight check, to make
// sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte

	// Log is human readable data for a client.
	Log string
}

// DeliverResult captures the result of a successfully delivered
// transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte

	// Log is human readable data for a client.
	Log string

	// Events emitted during the delivery, in emission order. They are
	// published to subscribers only after the transaction state has been
	// committed.
	Events []Event
}

// Event is an observable notification emitted by a handler, for example
// when a listing is created or purchased.
type Event struct {
	Type       string
	Attributes []Attribute
}

// Attribute is a single key/value pair of event metadata.
type Attribute struct {
	Key   string
	Value string
}

// Attr is a shorthand to build an event attribute.
func Attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}
