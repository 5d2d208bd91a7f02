package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form values such as dimension lists.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value exposed by a session.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current configuration and live statistics.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Flatten returns every parameter as alternating key/value pairs, suitable
// for structured loggers.
func (s ParameterSnapshot) Flatten() []any {
	var out []any
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out = append(out, p.Key, p.Value)
		}
	}
	return out
}

// Lookup returns the parameter stored under key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider exposes a snapshot of the session state.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// ParameterControl describes an adjustable integer parameter that should be
// exposed on the HUD. Bounds are optional.
type ParameterControl struct {
	Key   string
	Label string
	Step  int

	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}
