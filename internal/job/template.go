package job

import "strings"

// Template renders the user message sent with each snippet.
type Template struct {
	Instruction string
}

// Render joins the instruction and the code the way every request is phrased:
// "<instruction> for the following code \n <code>".
func (t Template) Render(code string) string {
	return strings.TrimSpace(t.Instruction) + " for the following code \n " + code
}
