package page

import "fmt"

// Strategy is how a locator identifies an element.
type Strategy string

const (
	ByCSS    Strategy = "css"
	ByID     Strategy = "id"
	ByTestID Strategy = "testid"
)

// Locator is a (strategy, value) pair identifying one page element.
// Named locators are fixed at page-object construction and stay stable for
// the lifetime of the page under test.
type Locator struct {
	Strategy Strategy
	Value    string
}

// CSS locates by CSS selector.
func CSS(selector string) Locator {
	return Locator{Strategy: ByCSS, Value: selector}
}

// ID locates by element id attribute.
func ID(id string) Locator {
	return Locator{Strategy: ByID, Value: id}
}

// TestID locates by data-testid attribute.
func TestID(id string) Locator {
	return Locator{Strategy: ByTestID, Value: id}
}

// Selector renders the locator as a CSS selector string.
func (l Locator) Selector() string {
	switch l.Strategy {
	case ByID:
		return "#" + l.Value
	case ByTestID:
		return fmt.Sprintf("[data-testid=%q]", l.Value)
	default:
		return l.Value
	}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Value)
}
