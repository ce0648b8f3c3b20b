package model

// Decorator adjusts a form definition after it has been built, for example by
// applying a copy overlay.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate returns a copy of form with every decorator applied in order and
// checks the result still satisfies Validate.
func Decorate(form FormModel, decorators ...Decorator) (FormModel, error) {
	out := form.Clone()
	for _, d := range decorators {
		if d == nil {
			continue
		}
		if err := d.Decorate(&out); err != nil {
			return FormModel{}, err
		}
	}
	if err := Validate(out); err != nil {
		return FormModel{}, err
	}
	return out, nil
}
