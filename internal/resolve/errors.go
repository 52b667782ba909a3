package resolve

import "fmt"

// Kind enumerates the error taxonomy from spec.md §7. These are kinds, not
// Go types, per the spec's own wording -- callers switch on Kind rather than
// using errors.As against a family of structs.
type Kind uint8

const (
	KindNone Kind = iota
	KindInvalidArgType
	KindInvalidModuleSpecifier
	KindInvalidPackageConfig
	KindInvalidPackageTarget
	KindPackageSubpathNotExported
	KindPackageImportNotDefined
	KindModuleNotFound
	KindUnsupportedDirectoryImport
	KindNetworkImportDisallowed
	KindInputTypeNotAllowed
	KindManifestDependencyMissing
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgType:
		return "InvalidArgType"
	case KindInvalidModuleSpecifier:
		return "InvalidModuleSpecifier"
	case KindInvalidPackageConfig:
		return "InvalidPackageConfig"
	case KindInvalidPackageTarget:
		return "InvalidPackageTarget"
	case KindPackageSubpathNotExported:
		return "PackageSubpathNotExported"
	case KindPackageImportNotDefined:
		return "PackageImportNotDefined"
	case KindModuleNotFound:
		return "ModuleNotFound"
	case KindUnsupportedDirectoryImport:
		return "UnsupportedDirectoryImport"
	case KindNetworkImportDisallowed:
		return "NetworkImportDisallowed"
	case KindInputTypeNotAllowed:
		return "InputTypeNotAllowed"
	case KindManifestDependencyMissing:
		return "ManifestDependencyMissing"
	default:
		return "None"
	}
}

// Error is the one error type this package raises; Kind carries the
// taxonomy. Suggestion is filled in by internal/cjssuggest on
// ModuleNotFound/UnsupportedDirectoryImport per spec.md §7.
type Error struct {
	Kind       Kind
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
