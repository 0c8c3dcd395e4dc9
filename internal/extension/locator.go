package extension

import "fmt"

// FactoryLocator is the default Locator: a registered map of class locator
// strings to constructor functions. Registration happens at wiring time,
// before the registry is first used.
type FactoryLocator struct {
	factories map[string]func() any
}

func NewFactoryLocator() *FactoryLocator {
	return &FactoryLocator{factories: make(map[string]func() any)}
}

func (l *FactoryLocator) Register(class string, factory func() any) {
	l.factories[class] = factory
}

func (l *FactoryLocator) Materialize(class string) (any, error) {
	factory, ok := l.factories[class]
	if !ok {
		return nil, fmt.Errorf("no factory registered for class %s", class)
	}
	return factory(), nil
}
