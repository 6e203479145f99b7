package ui

// Confirmer shows a yes/no prompt and calls onConfirm only on "yes".
type Confirmer interface {
	Confirm(title string, onConfirm func())
}

// Alerter surfaces a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// ConfirmFunc adapts a plain func to Confirmer.
type ConfirmFunc func(title string, onConfirm func())

func (f ConfirmFunc) Confirm(title string, onConfirm func()) { f(title, onConfirm) }

// AlertFunc adapts a plain func to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// DeleteConfirmTitle is the prompt shown before a matter is removed.
const DeleteConfirmTitle = "ARE YOU SURE ?"
