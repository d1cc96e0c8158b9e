// Package shader pre-processes WGSL source. Single-line comments starting with //@hh: are
// annotations that the PreProcessor replaces with generated WGSL, so the uniform struct
// layouts and array sizes are declared once, next to the Go code that packs them.
//
// Syntax:
//
//	//@hh:include <struct>                              injects a registered struct declaration
//	//@hh:group <group> <binding> <space> <var> <struct> declares a bound variable of a registered struct
//	//@hh:const <NAME>                                  declares a registered u32 constant
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks an annotation inside a WGSL comment line.
const annotationPrefix = "@hh:"

// AnnotationType identifies the kind of annotation.
type AnnotationType string

const (
	AnnotationTypeInclude AnnotationType = "include"
	AnnotationTypeGroup   AnnotationType = "group"
	AnnotationTypeConst   AnnotationType = "const"
)

// Address spaces accepted by the group annotation.
const (
	AddressSpaceUniform = "uniform"
	AddressSpaceRead    = "storage_read"
)

// Annotation is one parsed annotation line.
type Annotation struct {
	Type AnnotationType
	Args []string
	Line int

	// Group and Binding are set for group annotations.
	Group   *int
	Binding *int
}

// argCounts is the number of arguments each annotation takes.
var argCounts = map[AnnotationType]int{
	AnnotationTypeInclude: 1,
	AnnotationTypeGroup:   5,
	AnnotationTypeConst:   1,
}

var validAddressSpaces = []string{AddressSpaceUniform, AddressSpaceRead}

// parseAnnotation parses line as an annotation.
//
// Parameters:
//   - line: one line of WGSL source
//   - lineNumber: the 1-based line number, for error messages
//
// Returns:
//   - *Annotation: the annotation, nil if the line is not one
//   - error: error if the line is a malformed annotation
func parseAnnotation(line string, lineNumber int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), annotationPrefix)
	if !ok {
		return nil, nil
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNumber)
	}

	a := &Annotation{Type: AnnotationType(fields[0]), Args: fields[1:], Line: lineNumber}
	want, ok := argCounts[a.Type]
	if !ok {
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNumber, a.Type)
	}
	if len(a.Args) != want {
		return nil, fmt.Errorf("line %d: %s takes %d arguments, got %d", lineNumber, a.Type, want, len(a.Args))
	}

	if a.Type == AnnotationTypeGroup {
		group, err := strconv.Atoi(a.Args[0])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group %q", lineNumber, a.Args[0])
		}
		binding, err := strconv.Atoi(a.Args[1])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding %q", lineNumber, a.Args[1])
		}
		if !slices.Contains(validAddressSpaces, a.Args[2]) {
			return nil, fmt.Errorf("line %d: invalid address space %q", lineNumber, a.Args[2])
		}
		a.Group, a.Binding = &group, &binding
	}
	return a, nil
}
