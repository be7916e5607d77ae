// Package attr holds the symbol model for rglue: the functions, arguments,
// and export attributes parsed out of annotated C++ source files.
//
// Everything here is plain immutable-after-construction data. The parser
// package builds these records once per scanned file; the generators consume
// them read-only.
package attr

import "strings"

// Attribute kinds recognized in [[rglue::...]] comments.
const (
	AttributeExport     = "export"
	AttributeInterfaces = "interfaces"
)

// Interface identifies an export surface declared by a source file.
type Interface string

const (
	// InterfaceR exposes functions to the R runtime via generated wrappers.
	InterfaceR Interface = "r"

	// InterfaceCpp exposes functions to other C++ packages via registered
	// symbol pointers.
	InterfaceCpp Interface = "cpp"
)

// Type is a C++ type reference. Equality is by name.
type Type struct {
	Name string
}

// IsVoid reports whether this is the void return type.
func (t Type) IsVoid() bool {
	return t.Name == "void"
}

func (t Type) String() string {
	return t.Name
}

// Argument is a single parameter of an exported function. DefaultValue is
// the raw C++ expression text, empty when the parameter has no default.
type Argument struct {
	Name         string
	Type         Type
	DefaultValue string
}

// Function is a C++ function declaration tagged for export.
type Function struct {
	Type      Type // return type
	Name      string
	Arguments []Argument
}

// Empty reports whether this function carries no declaration (an attribute
// that was not followed by a parseable function).
func (f Function) Empty() bool {
	return f.Name == ""
}

// IsHidden reports whether the function uses the R hidden-name convention
// (a leading dot).
func (f Function) IsHidden() bool {
	return strings.HasPrefix(f.Name, ".")
}

// RenamedTo returns a value copy of the function under a different name.
// The copy shares nothing mutable with the original: the same parsed
// function is presented under different export names to different
// generators, and aliasing the argument slice would let one view corrupt
// another.
func (f Function) RenamedTo(name string) Function {
	args := make([]Argument, len(f.Arguments))
	copy(args, f.Arguments)
	return Function{
		Type:      f.Type,
		Name:      name,
		Arguments: args,
	}
}

// Signature renders the canonical validation key for this function under
// the given exported name: "retType name(argType1, argType2)". The call-shim
// registry, the re-export header's validation call, and the runtime check
// all use exactly this string.
func (f Function) Signature(name string) string {
	var sb strings.Builder
	sb.WriteString(f.Type.Name)
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString("(")
	for i, arg := range f.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Type.Name)
	}
	sb.WriteString(")")
	return sb.String()
}

// String renders the full declaration for embedding in generated C++,
// including default values: "retType name(type1 a1 = d1, type2 a2)".
func (f Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Type.Name)
	sb.WriteString(" ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, arg := range f.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Type.Name)
		sb.WriteString(" ")
		sb.WriteString(arg.Name)
		if arg.DefaultValue != "" {
			sb.WriteString(" = ")
			sb.WriteString(arg.DefaultValue)
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// Attribute is one parsed [[rglue::...]] annotation, together with the
// function declaration that followed it (for export attributes) and any
// preceding roxygen documentation lines.
type Attribute struct {
	Name     string   // attribute kind (AttributeExport, AttributeInterfaces, ...)
	Params   []string // raw parameter list from the attribute
	Function Function
	Roxygen  []string // documentation lines, already re-prefixed for R
}

// IsExportedFunction reports whether this attribute tags a function for
// export (as opposed to other attribute kinds).
func (a Attribute) IsExportedFunction() bool {
	return a.Name == AttributeExport && !a.Function.Empty()
}

// ExportedName is the name the function is exported under: the attribute's
// first parameter when present, otherwise the declared function name.
func (a Attribute) ExportedName() string {
	if len(a.Params) > 0 && a.Params[0] != "" {
		return a.Params[0]
	}
	return a.Function.Name
}

// SourceFileAttributes is the ordered collection of attributes parsed from
// one source file, plus the export surfaces the file declares. Built fresh
// per scanned file and read-only afterward.
type SourceFileAttributes struct {
	SourceFile string
	Attributes []Attribute
	Interfaces []Interface
}

// HasInterface reports whether the file declared the given export surface.
func (s *SourceFileAttributes) HasInterface(iface Interface) bool {
	for _, i := range s.Interfaces {
		if i == iface {
			return true
		}
	}
	return false
}
