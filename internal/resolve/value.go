package resolve

import "github.com/go-jsresolve/jsresolve/internal/pkgvalue"

// Value et al. are aliases onto internal/pkgvalue, which exists precisely so
// internal/pkgjson (the PackageConfigReader) and this package can share one
// definition of the spec.md §3 algebraic value type without an import
// cycle. See internal/pkgvalue for the full documentation.
type (
	Value     = pkgvalue.Value
	Entry     = pkgvalue.Entry
	ValueKind = pkgvalue.Kind
)

const (
	ValNull    = pkgvalue.Null
	ValString  = pkgvalue.String
	ValList    = pkgvalue.List
	ValMap     = pkgvalue.Map
	ValInvalid = pkgvalue.Invalid
)

func StringValue(s string) Value { return pkgvalue.Str(s) }
func NullValue() Value           { return pkgvalue.Nul() }

// ValidateMapKeys adapts pkgvalue.Value.CheckMapKeys into this package's
// Error/Kind taxonomy (spec.md §7).
func ValidateMapKeys(v Value) error {
	ok, badKey, mixed := v.CheckMapKeys()
	if ok {
		return nil
	}
	if mixed {
		return newErr(KindInvalidPackageConfig,
			"object cannot mix subpath keys and condition keys (key %q)", badKey)
	}
	return newErr(KindInvalidPackageConfig, "numeric key %q is not allowed", badKey)
}
