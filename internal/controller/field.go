package controller

// Field is a plain Input for callers with no interactive text field, such as
// the CLI. The zero value is an empty field.
type Field struct {
	Text string
}

func (f *Field) Value() string     { return f.Text }
func (f *Field) SetValue(s string) { f.Text = s }
