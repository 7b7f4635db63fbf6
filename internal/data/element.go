package data

import "fmt"

// Element is the magic school a skill belongs to.
type Element string

const (
	ElementFire  Element = "fire"
	ElementWater Element = "water"
	ElementAir   Element = "air"
	ElementEarth Element = "earth"
)

// Elements lists every element in authoring order.
var Elements = []Element{ElementFire, ElementWater, ElementAir, ElementEarth}

// Valid reports whether e is one of the known elements.
func (e Element) Valid() bool {
	switch e {
	case ElementFire, ElementWater, ElementAir, ElementEarth:
		return true
	default:
		return false
	}
}

// ParseElement converts a catalog string into an Element.
func ParseElement(s string) (Element, error) {
	e := Element(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown element %q", s)
	}
	return e, nil
}

// ElementPair is an unordered pair of elements used as the combination key.
// Always build it through NewElementPair so that (A,B) and (B,A) compare equal.
type ElementPair struct {
	First  Element
	Second Element
}

// NewElementPair returns the canonical (sorted) pair for a and b.
func NewElementPair(a, b Element) ElementPair {
	if b < a {
		a, b = b, a
	}
	return ElementPair{First: a, Second: b}
}

func (p ElementPair) String() string {
	return string(p.First) + "+" + string(p.Second)
}
