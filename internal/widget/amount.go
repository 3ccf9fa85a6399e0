package widget

import "fmt"

type AmountConfig struct {
	Default int
	Min     int
	Max     int
}

func (c AmountConfig) Validate() error {
	if c.Min < 1 {
		return fmt.Errorf("amount min must be positive, got %d", c.Min)
	}
	if c.Max < c.Min {
		return fmt.Errorf("amount max %d is below min %d", c.Max, c.Min)
	}
	if c.Default < c.Min || c.Default > c.Max {
		return fmt.Errorf("amount default %d is outside [%d, %d]", c.Default, c.Min, c.Max)
	}
	return nil
}

// Amount is the quantity stepper. Its owner is told about every accepted change.
type Amount struct {
	cfg     AmountConfig
	value   int
	updated func(int)
}

func NewAmount(cfg AmountConfig, value int, updated func(int)) *Amount {
	a := &Amount{cfg: cfg, value: cfg.Default}
	if a.inRange(value) {
		a.value = value
	}
	a.updated = updated
	return a
}

func (a *Amount) Value() int {
	return a.value
}

// SetValue ignores values outside the bounds and values equal to the current one.
// It reports whether the value changed.
func (a *Amount) SetValue(v int) bool {
	if v == a.value || !a.inRange(v) {
		return false
	}

	a.value = v
	if a.updated != nil {
		a.updated(v)
	}
	return true
}

func (a *Amount) Increase() bool {
	return a.SetValue(a.value + 1)
}

func (a *Amount) Decrease() bool {
	return a.SetValue(a.value - 1)
}

func (a *Amount) AtMin() bool { return a.value <= a.cfg.Min }
func (a *Amount) AtMax() bool { return a.value >= a.cfg.Max }

func (a *Amount) inRange(v int) bool {
	return v >= a.cfg.Min && v <= a.cfg.Max
}
