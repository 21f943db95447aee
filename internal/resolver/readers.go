package resolver

import "github.com/griffnb/core-tsdoc/internal/domain"

// AnnotationReader picks the first annotation among candidates present on a site.
type AnnotationReader interface {
	Hint(site domain.Site, candidates ...string) string
}

// DescriptionReader returns the documentation text of a site.
type DescriptionReader interface {
	Description(site domain.Site) string
}

// SiteAnnotations checks decorators first, then JSDoc tags.
type SiteAnnotations struct{}

func (SiteAnnotations) Hint(site domain.Site, candidates ...string) string {
	if site == nil {
		return ""
	}
	annotations := site.Annotated()
	for _, source := range []domain.AnnotationSource{domain.DecoratorAnnotation, domain.DocTagAnnotation} {
		for _, a := range annotations {
			if a.Source == source && contains(candidates, a.Name) {
				return a.Name
			}
		}
	}
	return ""
}

// SiteDocs returns the JSDoc text of a site.
type SiteDocs struct{}

func (SiteDocs) Description(site domain.Site) string {
	if site == nil {
		return ""
	}
	return site.Documentation()
}
