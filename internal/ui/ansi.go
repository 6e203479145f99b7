package ui

import (
	"fmt"
	"io"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, Current().Success.Render(symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, Current().Error.Render(symCross+" "+msg)) }
