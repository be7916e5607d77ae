package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rglue/rglue/attr"
)

const convolveSource = `#include <Rcpp.h>
using namespace Rcpp;

// [[rglue::interfaces(r, cpp)]]

//' Convolve two numeric vectors.
//'
//' @param a first vector
// [[rglue::export]]
NumericVector convolve(NumericVector a, NumericVector b) {
    NumericVector out(a.size() + b.size() - 1);
    return out;
}

// [[rglue::export(lag2)]]
IntegerVector lagTwo(IntegerVector x, int k = 2L) {
    return x;
}

// not an attribute, just a comment
static double helper(double x) { return x; }

// [[rglue::export]]
void reset_state(std::string name = "default", bool hard = false) {
}
`

func TestParseExports(t *testing.T) {
	s := Parse("src/convolve.cpp", convolveSource)
	require.NotNil(t, s)
	assert.Equal(t, "src/convolve.cpp", s.SourceFile)

	assert.True(t, s.HasInterface(attr.InterfaceR))
	assert.True(t, s.HasInterface(attr.InterfaceCpp))

	var exports []attr.Attribute
	for _, a := range s.Attributes {
		if a.IsExportedFunction() {
			exports = append(exports, a)
		}
	}
	require.Len(t, exports, 3)

	convolve := exports[0]
	assert.Equal(t, "convolve", convolve.ExportedName())
	assert.Equal(t, "NumericVector", convolve.Function.Type.Name)
	require.Len(t, convolve.Function.Arguments, 2)
	assert.Equal(t, "a", convolve.Function.Arguments[0].Name)
	assert.Equal(t, "NumericVector", convolve.Function.Arguments[0].Type.Name)
	require.Len(t, convolve.Roxygen, 3)
	assert.Equal(t, "#' Convolve two numeric vectors.", convolve.Roxygen[0])
	assert.Equal(t, "#' @param a first vector", convolve.Roxygen[2])

	lag := exports[1]
	assert.Equal(t, "lag2", lag.ExportedName())
	assert.Equal(t, "lagTwo", lag.Function.Name)
	require.Len(t, lag.Function.Arguments, 2)
	assert.Equal(t, "2L", lag.Function.Arguments[1].DefaultValue)
	assert.Empty(t, lag.Roxygen)

	reset := exports[2]
	assert.Equal(t, "reset_state", reset.ExportedName())
	assert.True(t, reset.Function.Type.IsVoid())
	require.Len(t, reset.Function.Arguments, 2)
	assert.Equal(t, "std::string", reset.Function.Arguments[0].Type.Name)
	assert.Equal(t, `"default"`, reset.Function.Arguments[0].DefaultValue)
	assert.Equal(t, "false", reset.Function.Arguments[1].DefaultValue)
}

func TestParseDefaultsToRInterface(t *testing.T) {
	s := Parse("src/a.cpp", "// [[rglue::export]]\nint one() { return 1; }\n")
	assert.True(t, s.HasInterface(attr.InterfaceR))
	assert.False(t, s.HasInterface(attr.InterfaceCpp))
}

func TestParseMultilineDeclaration(t *testing.T) {
	src := `// [[rglue::export]]
double weighted_mean(NumericVector x,
                     NumericVector w,
                     bool narm = false) {
    return 0.0;
}
`
	s := Parse("src/wm.cpp", src)
	require.Len(t, s.Attributes, 1)
	fn := s.Attributes[0].Function
	assert.Equal(t, "weighted_mean", fn.Name)
	require.Len(t, fn.Arguments, 3)
	assert.Equal(t, "w", fn.Arguments[1].Name)
	assert.Equal(t, "false", fn.Arguments[2].DefaultValue)
}

func TestParseReferenceAndTemplateTypes(t *testing.T) {
	src := `// [[rglue::export]]
int total(const std::map<std::string, int>& counts, List items) { return 0; }
`
	s := Parse("src/t.cpp", src)
	require.Len(t, s.Attributes, 1)
	fn := s.Attributes[0].Function
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, "counts", fn.Arguments[0].Name)
	assert.Equal(t, "const std::map<std::string, int>&", fn.Arguments[0].Type.Name)
	assert.Equal(t, "items", fn.Arguments[1].Name)
}

func TestParseDefaultWithNestedCommas(t *testing.T) {
	src := `// [[rglue::export]]
NumericVector pad(NumericVector x, NumericVector fill = NumericVector::create(0, 0)) { return x; }
`
	s := Parse("src/p.cpp", src)
	fn := s.Attributes[0].Function
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, "NumericVector::create(0, 0)", fn.Arguments[1].DefaultValue)
}

func TestDanglingExportAttribute(t *testing.T) {
	src := "// [[rglue::export]]\n// just another comment\n"
	s := Parse("src/d.cpp", src)
	require.Len(t, s.Attributes, 1)
	assert.False(t, s.Attributes[0].IsExportedFunction())
}

func TestNoAttributes(t *testing.T) {
	s := Parse("src/plain.cpp", "int main() { return 0; }\n")
	assert.Empty(t, s.Attributes)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports.cpp")
	require.NoError(t, os.WriteFile(path, []byte(convolveSource), 0644))

	s, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.SourceFile)
	assert.Len(t, s.Attributes, 4) // interfaces + three exports
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.cpp"))
	require.Error(t, err)
}
