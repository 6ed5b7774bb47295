package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:   id,
			Name: name,
			Min:  0,
			Max:  1,
			Kind: KindFloat,
		},
	}
}

// Group sets the display group
func (b *Builder) Group(group string) *Builder {
	b.param.Group = group
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value (plain, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Toggle creates a boolean parameter
func (b *Builder) Toggle() *Builder {
	b.param.Kind = KindToggle
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	return b
}

// Choice creates a parameter selecting one of count options
func (b *Builder) Choice(count int32) *Builder {
	b.param.Kind = KindChoice
	b.param.Min = 0
	b.param.Max = float64(count - 1)
	b.param.StepCount = count - 1
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter holding its default value
func (b *Builder) Build() *Parameter {
	p := b.param
	p.DefaultValue = p.clamp(p.DefaultValue)
	p.Reset()
	return p
}
