package domain

import "github.com/cockroachdb/errors"

// Sentinel errors for declaration lookup and type resolution. Detailed
// errors are marked with one of these so callers can test with errors.Is.
var (
	ErrUnresolvedTypeKind    = errors.New("unresolved type kind")
	ErrDuplicateNamedType    = errors.New("duplicate named type")
	ErrUnknownDeclaration    = errors.New("unknown declaration")
	ErrAmbiguousDeclaration  = errors.New("ambiguous declaration")
	ErrInvalidIndexSignature = errors.New("invalid index signature")
	ErrMissingPropertyType   = errors.New("missing property type")
)

// DuplicateNamedType reports that more than one enum (or literal-union alias) uses name.
func DuplicateNamedType(kind, name string, files ...string) error {
	err := errors.Newf("multiple %ss named %q", kind, name)
	if len(files) > 0 {
		err = errors.WithDetailf(err, "declared in %v", files)
	}
	return errors.WithHint(errors.Mark(err, ErrDuplicateNamedType),
		"rename one of the declarations; enum and literal union names must be unique")
}

// UnknownDeclaration reports that no declaration of an accepted kind is named name.
func UnknownDeclaration(name string) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("no matching declaration for %q", name), ErrUnknownDeclaration),
		"make sure the file declaring it is inside a search directory and not excluded")
}

// AmbiguousDeclaration reports that several declarations match name.
func AmbiguousDeclaration(name string, count int) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("%d declarations match %q", count, name), ErrAmbiguousDeclaration),
		"declaration names must be unique across the search directories")
}
