// ABOUTME: Parameter manager for the numeric form fields
// ABOUTME: Handles value adjustments with boundary checking and reset to defaults

package tui

import "ifl-sequencer/config"

// Parameter names, also used for name-based reset
const (
	paramSeed       = "Seed"
	paramListLength = "List Length"
	paramMinLength  = "Min Length"
	paramMaxLength  = "Max Length"
)

// Parameter is a numeric form field bound to a value it edits in place
type Parameter struct {
	Name  string
	Value *int
	Min   int
	Max   int
	Step  int
}

// ParamManager manages numeric field selection and adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	newVal := *param.Value + param.Step
	if newVal > param.Max {
		return false
	}

	*param.Value = newVal

	return true
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	newVal := *param.Value - param.Step
	if newVal < param.Min {
		return false
	}

	*param.Value = newVal

	return true
}

// ResetToDefaults resets the length parameters; the seed is left alone
func (pm *ParamManager) ResetToDefaults(defaults config.Defaults) {
	for i := range pm.params {
		p := &pm.params[i]
		switch p.Name {
		case paramListLength:
			*p.Value = defaults.SequenceLength
		case paramMinLength:
			*p.Value = defaults.MinLength
		case paramMaxLength:
			*p.Value = defaults.MaxLength
		}
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
