package gen

import (
	"io"
	"os"

	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/orchestrator"
	"github.com/griffnb/core-tsdoc/internal/resolver"
)

type graphProperty struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type graphReference struct {
	Key                string          `json:"key"`
	Name               string          `json:"name"`
	TypeArguments      []string        `json:"typeArguments,omitempty"`
	Description        string          `json:"description,omitempty"`
	Properties         []graphProperty `json:"properties"`
	AdditionalProperty *graphProperty  `json:"additionalProperty,omitempty"`
	TypeArgument       string          `json:"typeArgument,omitempty"`
}

// graphOf lists the table entries in completion order.
func graphOf(table *resolver.Table) []graphReference {
	graph := make([]graphReference, 0, table.Len())
	_ = table.Range(func(ref *resolver.Reference) error {
		entry := graphReference{
			Key:           ref.Key,
			Name:          ref.Name,
			TypeArguments: ref.TypeArguments,
			Description:   ref.Description,
			Properties:    make([]graphProperty, 0, len(ref.Properties)),
		}
		for _, p := range ref.Properties {
			entry.Properties = append(entry.Properties, toGraphProperty(p))
		}
		if ref.AdditionalProperty != nil {
			additional := toGraphProperty(*ref.AdditionalProperty)
			entry.AdditionalProperty = &additional
		}
		if ref.TypeArgument != nil {
			entry.TypeArgument = ref.TypeArgument.String()
		}
		graph = append(graph, entry)
		return nil
	})
	return graph
}

func toGraphProperty(p resolver.Property) graphProperty {
	return graphProperty{
		Name:        p.Name,
		Type:        p.Type.String(),
		Required:    p.Required,
		Description: p.Description,
	}
}

func (g *Gen) writeGraph(w io.Writer, service *orchestrator.Service) error {
	b, err := g.jsonIndent(graphOf(service.Table()))
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func (g *Gen) writeGraphFile(file string, service *orchestrator.Service) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := g.writeGraph(f, service); err != nil {
		return err
	}
	console.Logger.Debug("create reference graph at %+v", file)
	return nil
}
