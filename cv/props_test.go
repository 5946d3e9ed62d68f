package cv

import (
	"strings"
	"testing"
)

func TestPropsUnknownKey(t *testing.T) {
	p := NewProps()
	if err := p.Set("bogus", 1); err == nil {
		t.Error("want error setting unknown property")
	}
	if _, err := p.Get("bogus"); err == nil {
		t.Error("want error getting unknown property")
	}
}

func TestPropsSetGet(t *testing.T) {
	p := NewProps()
	p.MustRegister("level", setInt(0, 100), 50)

	if v, err := p.Get("level"); err != nil || v != 50 {
		t.Errorf("want initial 50, got %v (%v)", v, err)
	}
	if err := p.Set("level", 80); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Get("level"); v != 80 {
		t.Errorf("want 80, got %v", v)
	}
}

func TestPropsValidation(t *testing.T) {
	p := NewProps()
	p.MustRegister("level", setInt(0, 100), 50)
	p.MustRegister("mode", setChoice([]string{"a", "b"}), "a")
	p.MustRegister("on", setBool, false)

	if err := p.Set("level", 101); err == nil {
		t.Error("want range error")
	}
	if err := p.Set("level", "high"); err == nil {
		t.Error("want type error")
	}
	if err := p.Set("mode", "c"); err == nil {
		t.Error("want choice error")
	}
	if err := p.Set("on", 1); err == nil {
		t.Error("want bool type error")
	}

	// rejected writes leave the stored value untouched
	if v, _ := p.Get("level"); v != 50 {
		t.Errorf("want 50 after rejected writes, got %v", v)
	}

	// floats coerce to ints so analog-mapped values round-trip
	if err := p.Set("level", 42.0); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Get("level"); v != 42 {
		t.Errorf("want coerced 42, got %v", v)
	}
}

func TestPropsSetErrorNamesKey(t *testing.T) {
	p := NewProps()
	p.MustRegister("level", setInt(0, 100), 50)
	err := p.Set("level", 200)
	if err == nil || !strings.Contains(err.Error(), "level") {
		t.Errorf("want error naming the property, got %v", err)
	}
}

func TestPropsHook(t *testing.T) {
	p := NewProps()
	var fired int
	p.MustRegister("level", withHook(setInt(0, 100), func() { fired++ }), 50)

	fired = 0
	if err := p.Set("level", 60); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Errorf("want hook fired once, got %d", fired)
	}
	if err := p.Set("level", 200); err == nil {
		t.Fatal("want range error")
	}
	if fired != 1 {
		t.Errorf("hook fired on a rejected write: %d", fired)
	}
}
