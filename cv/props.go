package cv

import (
	"fmt"
	"sync/atomic"
)

// Props stores device configuration that can be read from the tick goroutine
// without locks. All properties must be registered before any reads take
// place.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first
// using Register.
func (p *Props) Set(key string, value interface{}) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	set, ok := p.setters[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := set(value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (interface{}, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return prop.Load(), nil
}

// Register adds a new property.
func (p *Props) Register(key string, set setter, init interface{}) (*atomic.Value, error) {
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	return &prop, set(init, &prop)
}

func (p *Props) MustRegister(key string, set setter, init interface{}) *atomic.Value {
	if prop, err := p.Register(key, set, init); err != nil {
		panic(err)
	} else {
		return prop
	}
}

type setter func(val interface{}, dest *atomic.Value) error

func coerceInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("value is not an int: %v", v)
	}
}

func setInt(min, max int) setter {
	return func(v interface{}, dest *atomic.Value) error {
		n, err := coerceInt(v)
		if err != nil {
			return err
		}
		if n < min || n > max {
			return fmt.Errorf("property value is not in valid range %v - %v: %v", min, max, n)
		}
		dest.Store(n)
		return nil
	}
}

func setBool(v interface{}, dest *atomic.Value) error {
	if b, ok := v.(bool); ok {
		dest.Store(b)
		return nil
	}
	return fmt.Errorf("value is not a bool: %v", v)
}

// setChoice accepts only values from the given label set.
func setChoice(options []string) setter {
	return func(v interface{}, dest *atomic.Value) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("value is not a string: %v", v)
		}
		for _, opt := range options {
			if s == opt {
				dest.Store(s)
				return nil
			}
		}
		return fmt.Errorf("value is not one of %v: %v", options, s)
	}
}

// withHook runs f after a successful store. Used to restage patterns and
// re-arm the clock timer when a property changes.
func withHook(set setter, f func()) setter {
	return func(v interface{}, dest *atomic.Value) error {
		if err := set(v, dest); err != nil {
			return err
		}
		f()
		return nil
	}
}
