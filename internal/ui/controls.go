package ui

import (
	"image"
	"math"
	"strconv"

	"lattice-life/internal/core"
)

type controlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controls tracks the HUD's adjustable integer parameters.
type controls struct {
	states []controlState
	setter core.IntParameterSetter
}

func newControls(src any) *controls {
	c := &controls{}
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			if ctrl.Type != core.ParamTypeInt {
				continue
			}
			c.states = append(c.states, controlState{control: ctrl, value: "--"})
		}
	}
	if setter, ok := src.(core.IntParameterSetter); ok {
		c.setter = setter
	}
	return c
}

func (c *controls) refresh(snap core.ParameterSnapshot) {
	for i := range c.states {
		state := &c.states[i]
		param, ok := snap.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			state.hasValue = false
			state.value = "--"
			continue
		}
		state.intValue = parsed
		state.value = strconv.Itoa(parsed)
		state.hasValue = true
	}
}

func (c *controls) target(state *controlState, direction int) int {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin {
		target = max(target, int(math.Round(state.control.Min)))
	}
	if state.control.HasMax {
		target = min(target, int(math.Round(state.control.Max)))
	}
	return target
}

func (c *controls) canAdjust(i, direction int) bool {
	if c.setter == nil || direction == 0 || i < 0 || i >= len(c.states) {
		return false
	}
	state := &c.states[i]
	return state.hasValue && c.target(state, direction) != state.intValue
}

func (c *controls) adjust(i, direction int) bool {
	if !c.canAdjust(i, direction) {
		return false
	}
	state := &c.states[i]
	target := c.target(state, direction)
	if !c.setter.SetIntParameter(state.control.Key, target) {
		return false
	}
	state.intValue = target
	state.value = strconv.Itoa(target)
	return true
}

func (c *controls) layout(width, top int) {
	for i := range c.states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		c.states[i].top = rowTop
		c.states[i].minusRect = minusRect
		c.states[i].plusRect = plusRect
	}
}

// hit maps a panel-local click to a control index and direction.
func (c *controls) hit(x, y int) (int, int, bool) {
	p := image.Pt(x, y)
	for i := range c.states {
		if p.In(c.states[i].minusRect) {
			return i, -1, true
		}
		if p.In(c.states[i].plusRect) {
			return i, 1, true
		}
	}
	return 0, 0, false
}

const (
	panelPadding   = 12
	lineHeight     = 36
	textLine       = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
)
