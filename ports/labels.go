package ports

// LabelSource supplies a display name for a raw sensitive-attribute value.
// The interactive console prompt is one implementation; a fixed mapping is
// another, which keeps the core testable without interactive input.
type LabelSource interface {
	NameFor(value int) (string, error)
}

// LabelSourceFunc adapts a plain function to a LabelSource
type LabelSourceFunc func(value int) (string, error)

// NameFor implements LabelSource
func (f LabelSourceFunc) NameFor(value int) (string, error) {
	return f(value)
}
