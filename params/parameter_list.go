package params

import (
	"errors"
	"slices"
)

// ParameterList is an ordered, name-addressable collection of parameters.
//
// Order is insertion order and is preserved across removals and clones.
// Names are unique within a list.
type ParameterList struct {
	parameters []*Parameter
}

// NewParameterList builds a list from the given parameters. Nil entries and
// duplicate names are rejected.
func NewParameterList(parameters ...*Parameter) (*ParameterList, error) {
	list := &ParameterList{}

	for _, parameter := range parameters {
		if err := list.Add(parameter); err != nil {
			return nil, err
		}
	}

	return list, nil
}

// Add appends a parameter to the list.
func (pl *ParameterList) Add(parameter *Parameter) error {
	if parameter == nil {
		return ErrNilParameter
	}

	if pl.Has(parameter.Name()) {
		return errors.Join(ErrDuplicateParameter, errors.New("parameter name: "+parameter.Name()))
	}

	pl.parameters = append(pl.parameters, parameter)

	return nil
}

// Get returns the parameter with the name.
func (pl *ParameterList) Get(name string) (*Parameter, bool) {
	for _, parameter := range pl.parameters {
		if parameter.Name() == name {
			return parameter, true
		}
	}

	return nil, false
}

// Has reports whether a parameter with the name is in the list.
func (pl *ParameterList) Has(name string) bool {
	_, found := pl.Get(name)

	return found
}

// Len returns the number of parameters in the list.
func (pl *ParameterList) Len() int {
	return len(pl.parameters)
}

// At returns the parameter at the index, in insertion order.
func (pl *ParameterList) At(index int) *Parameter {
	return pl.parameters[index]
}

// Names returns the parameter names in insertion order.
func (pl *ParameterList) Names() []string {
	names := make([]string, 0, len(pl.parameters))
	for _, parameter := range pl.parameters {
		names = append(names, parameter.Name())
	}

	return names
}

// ValueOf returns the value of the named parameter.
func (pl *ParameterList) ValueOf(name string) (float64, error) {
	parameter, found := pl.Get(name)
	if !found {
		return 0, parameterNotFound(name)
	}

	return parameter.Value(), nil
}

// SetValueOf sets the value of the named parameter. Constraint violations
// pass through unchanged.
func (pl *ParameterList) SetValueOf(name string, value float64) error {
	parameter, found := pl.Get(name)
	if !found {
		return parameterNotFound(name)
	}

	return parameter.SetValue(value)
}

// Delete removes the named parameter from the list and closes it.
func (pl *ParameterList) Delete(name string) error {
	index := slices.IndexFunc(pl.parameters, func(parameter *Parameter) bool {
		return parameter.Name() == name
	})
	if index < 0 {
		return parameterNotFound(name)
	}

	parameter := pl.parameters[index]
	pl.parameters = slices.Delete(pl.parameters, index, index+1)

	return parameter.Close()
}

// Clone returns a deep copy: every parameter is cloned, honoring the
// ownership modes of its constraint and listeners.
func (pl *ParameterList) Clone() *ParameterList {
	clone := &ParameterList{}

	if len(pl.parameters) > 0 {
		clone.parameters = make([]*Parameter, 0, len(pl.parameters))
		for _, parameter := range pl.parameters {
			clone.parameters = append(clone.parameters, parameter.Clone())
		}
	}

	return clone
}

func parameterNotFound(name string) error {
	return errors.Join(ErrParameterNotFound, errors.New("parameter name: "+name))
}
