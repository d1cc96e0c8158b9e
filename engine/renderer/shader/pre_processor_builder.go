package shader

// PreProcessorBuilderOption is a functional option applied to the pre-processor during
// construction via NewPreProcessor.
type PreProcessorBuilderOption func(*preProcessor)

// WithStruct registers a struct declaration for include and group annotations.
//
// Parameters:
//   - name: the annotation argument
//   - source: the WGSL struct declaration
//   - typeName: the WGSL type name source declares
//
// Returns:
//   - PreProcessorBuilderOption: a function that applies the struct option to a pre-processor
func WithStruct(name, source, typeName string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.structRegistry[name] = registryEntry{Source: source, Type: typeName}
	}
}

// WithConst registers a u32 constant for const annotations.
//
// Parameters:
//   - name: the WGSL constant name
//   - value: the value
//
// Returns:
//   - PreProcessorBuilderOption: a function that applies the constant option to a pre-processor
func WithConst(name string, value uint32) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.constRegistry[name] = value
	}
}
