package resolver

import (
	"github.com/cockroachdb/errors"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

var (
	ErrUnresolvedTypeKind    = domain.ErrUnresolvedTypeKind
	ErrDuplicateNamedType    = domain.ErrDuplicateNamedType
	ErrUnknownDeclaration    = domain.ErrUnknownDeclaration
	ErrAmbiguousDeclaration  = domain.ErrAmbiguousDeclaration
	ErrInvalidIndexSignature = domain.ErrInvalidIndexSignature
	ErrMissingPropertyType   = domain.ErrMissingPropertyType

	// ErrFinished is returned by Resolve once the run has been finished.
	ErrFinished = errors.New("resolver already finished")
)

func unresolvedTypeKind(node *domain.TypeNode) error {
	syntax := "unknown"
	if node != nil && node.Syntax != "" {
		syntax = node.Syntax
	}
	err := errors.Newf("unknown type: %s", syntax)
	if node != nil {
		err = errors.WithDetailf(err, "written as %s", node.String())
	}
	return errors.WithHint(errors.Mark(err, ErrUnresolvedTypeKind),
		"use a class, interface, union, array or primitive type instead")
}

func invalidIndexSignature(owner string, key TypeExpression) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("index signature on %q has key type %s", owner, key.String()), ErrInvalidIndexSignature),
		"only string keys are supported: [key: string]: T")
}

func missingPropertyType(owner, property string) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("property %q of %q has no type", property, owner), ErrMissingPropertyType),
		"annotate the property with an explicit type")
}

func duplicateNamedType(kind string, decls []*domain.Declaration) error {
	paths := make([]string, len(decls))
	for i, d := range decls {
		paths[i] = d.File
	}
	return domain.DuplicateNamedType(kind, decls[0].Name, paths...)
}
