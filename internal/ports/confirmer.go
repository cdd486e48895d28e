package ports

// Confirmer asks the operator a yes/no question before a destructive step,
// such as overwriting an existing column. Implementations must answer false
// when the answer cannot be read instead of blocking forever.
type Confirmer interface {
	Confirm(question string) bool
}
