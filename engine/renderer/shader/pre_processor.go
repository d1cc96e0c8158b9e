package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/gpu/uniform"
)

// Struct and constant names known to every PreProcessor.
const (
	StructVertex = "vertex"
	StructFrame  = "frame"
	StructObject = "object"

	ConstMaxDirectionalLights = "MAX_DIRECTIONAL_LIGHTS"
)

// registryEntry pairs a WGSL struct declaration with the type name it declares.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[string]registryEntry
	constRegistry        map[string]uint32
	addressSpaceRegistry map[string]string

	declarations []Annotation
}

// PreProcessor expands //@hh: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces every annotation in source with its WGSL expansion. Each struct is
	// included at most once.
	//
	// Parameters:
	//   - source: WGSL source with annotations
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: error if an annotation is malformed or names an unregistered struct or constant
	Process(source string) (string, error)

	// Declarations returns the group annotations of the last Process call in source order.
	//
	// Returns:
	//   - []Annotation: the bound variable declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor that knows the vertex layout, the frame and object
// uniform blocks and the directional light limit.
//
// Parameters:
//   - options: a variadic list of PreProcessorBuilderOption functions
//
// Returns:
//   - PreProcessor: the pre-processor
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{
		structRegistry: map[string]registryEntry{
			StructVertex: {Source: geometry.VertexSource, Type: "VertexInput"},
			StructFrame:  {Source: uniform.FrameSource, Type: uniform.FrameTypeName},
			StructObject: {Source: uniform.ObjectSource, Type: uniform.ObjectTypeName},
		},
		constRegistry: map[string]uint32{
			ConstMaxDirectionalLights: light.MaxDirectionalLights,
		},
		addressSpaceRegistry: map[string]string{
			AddressSpaceUniform: "var<uniform>",
			AddressSpaceRead:    "var<storage, read>",
		},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", a.Line, a.Args[0])
			}
			if !included[a.Args[0]] {
				included[a.Args[0]] = true
				out = append(out, strings.TrimRight(entry.Source, "\n"))
			}
		case AnnotationTypeGroup:
			entry, ok := p.structRegistry[a.Args[4]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown struct %q", a.Line, a.Args[4])
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[2]], a.Args[3], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeConst:
			v, ok := p.constRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown constant %q", a.Line, a.Args[0])
			}
			out = append(out, fmt.Sprintf("const %s: u32 = %du;", a.Args[0], v))
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
