package resolver

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

func TestResolver_Keywords(t *testing.T) {
	r := New(newIndex(t))

	tests := []struct {
		name string
		node *domain.TypeNode
		want TypeExpression
	}{
		{"nil node is void", nil, PrimitiveOf(Void)},
		{"void", domain.Keyword(domain.KeywordVoid), PrimitiveOf(Void)},
		{"string", str(), PrimitiveOf(String)},
		{"boolean", boolean(), PrimitiveOf(Boolean)},
		{"number defaults to double", num(), PrimitiveOf(Double)},
		{"any", domain.Keyword(domain.KeywordAny), Object()},
		{"object", domain.Keyword(domain.KeywordObject), Object()},
		{"unknown", domain.Keyword(domain.KeywordUnknown), Object()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustResolve(t, r, tt.node))
		})
	}
}

func TestResolver_NumberHints(t *testing.T) {
	tests := []struct {
		name   string
		member *domain.Member
		want   Primitive
	}{
		{"no hint", domain.Property("n", num()), Double},
		{"IsInt decorator", annotated(domain.Property("n", num()), domain.DecoratorAnnotation, "IsInt"), Integer},
		{"IsLong decorator", annotated(domain.Property("n", num()), domain.DecoratorAnnotation, "IsLong"), Long},
		{"IsFloat doc tag", annotated(domain.Property("n", num()), domain.DocTagAnnotation, "IsFloat"), Float},
		{"IsDouble doc tag", annotated(domain.Property("n", num()), domain.DocTagAnnotation, "IsDouble"), Double},
		{"unrelated annotation", annotated(domain.Property("n", num()), domain.DecoratorAnnotation, "IsOptional"), Double},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			r := New(newIndex(t))

			// Act
			expr := mustResolve(t, r, tt.member.Type)

			// Assert
			assert.Equal(t, PrimitiveOf(tt.want), expr)
		})
	}

	t.Run("decorators win over doc tags", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t))
		member := annotated(domain.Property("n", num()), domain.DocTagAnnotation, "IsFloat")
		member = annotated(member, domain.DecoratorAnnotation, "IsLong")

		// Act
		expr := mustResolve(t, r, member.Type)

		// Assert
		assert.Equal(t, PrimitiveOf(Long), expr)
	})
}

func TestResolver_Arrays(t *testing.T) {
	r := New(newIndex(t))

	t.Run("array syntax", func(t *testing.T) {
		expr := mustResolve(t, r, domain.ArrayOf(str()))

		assert.Equal(t, ArrayOf(PrimitiveOf(String)), expr)
	})

	t.Run("nested list vocabulary", func(t *testing.T) {
		// Arrange
		node := domain.Ref("Array", domain.Ref("Array", str()))

		// Act
		expr := mustResolve(t, r, node)

		// Assert
		assert.Equal(t, ArrayOf(ArrayOf(PrimitiveOf(String))), expr)
	})

	t.Run("readonly arrays", func(t *testing.T) {
		expr := mustResolve(t, r, domain.Ref("ReadonlyArray", num()))

		assert.Equal(t, ArrayOf(PrimitiveOf(Double)), expr)
	})
}

func TestResolver_Unions(t *testing.T) {
	user := iface("User", domain.Property("id", str()))
	account := iface("Account", domain.Property("id", str()))
	r := New(newIndex(t, user, account))

	tests := []struct {
		name string
		node *domain.TypeNode
		want TypeExpression
	}{
		{"scalar or array of the same primitive", domain.UnionOf(str(), domain.ArrayOf(str())), ArrayOf(PrimitiveOf(String))},
		{"array first", domain.UnionOf(domain.ArrayOf(num()), num()), ArrayOf(PrimitiveOf(Double))},
		{"same reference", domain.UnionOf(domain.Ref("User"), domain.ArrayOf(domain.Ref("User"))), ArrayOf(RefTo("User"))},
		{"different primitives", domain.UnionOf(str(), num()), Object()},
		{"array of a different primitive", domain.UnionOf(str(), domain.ArrayOf(num())), Object()},
		{"different references", domain.UnionOf(domain.Ref("User"), domain.ArrayOf(domain.Ref("Account"))), Object()},
		{"two arrays", domain.UnionOf(domain.ArrayOf(str()), domain.ArrayOf(str())), Object()},
		{"three members", domain.UnionOf(str(), domain.ArrayOf(str()), boolean()), Object()},
		{"nullable", domain.UnionOf(str(), domain.Keyword(domain.KeywordNull)), Object()},
		{"optional", domain.UnionOf(str(), domain.Keyword(domain.KeywordNull), domain.Keyword(domain.KeywordUndefined)), Object()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustResolve(t, r, tt.node))
		})
	}

	t.Run("member errors are returned", func(t *testing.T) {
		errorTests := []struct {
			name     string
			node     *domain.TypeNode
			sentinel error
		}{
			{"unknown scalar and array", domain.UnionOf(domain.Ref("Missing"), domain.ArrayOf(domain.Ref("Missing"))), ErrUnknownDeclaration},
			{"unknown with null", domain.UnionOf(domain.Ref("Missing"), domain.Keyword(domain.KeywordNull)), ErrUnknownDeclaration},
			{"unsupported member", domain.UnionOf(domain.Unsupported("tuple_type"), domain.ArrayOf(str())), ErrUnresolvedTypeKind},
			{"three members", domain.UnionOf(str(), num(), domain.Ref("Missing")), ErrUnknownDeclaration},
		}

		for _, tt := range errorTests {
			t.Run(tt.name, func(t *testing.T) {
				// Act
				_, err := r.Resolve(tt.node, EmptyBinding)

				// Assert
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
				assert.Contains(t, err.Error(), "union member")
			})
		}
	})

	t.Run("property typed with an unknown union", func(t *testing.T) {
		// Arrange
		holder := iface("Holder", domain.Property("a", domain.UnionOf(domain.Ref("Missing"), domain.ArrayOf(domain.Ref("Missing")))))
		r := New(newIndex(t, holder))

		// Act
		_, err := r.Resolve(domain.Ref("Holder"), EmptyBinding)

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownDeclaration))
	})

	t.Run("opaque unions leave no table entries", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t, user, account))

		// Act
		expr := mustResolve(t, r, domain.UnionOf(domain.Ref("User"), domain.Ref("Account")))

		// Assert
		assert.Equal(t, Object(), expr)
		assert.Equal(t, 0, r.Table().Len())
	})

	t.Run("collapsed unions keep their entries", func(t *testing.T) {
		r := New(newIndex(t, user, account))

		expr := mustResolve(t, r, domain.UnionOf(domain.Ref("User"), domain.ArrayOf(domain.Ref("User"))))

		assert.Equal(t, ArrayOf(RefTo("User")), expr)
		assert.Equal(t, []string{"User"}, r.Table().Keys())
	})

	t.Run("entries kept before an opaque union survive", func(t *testing.T) {
		// Arrange
		holder := iface("Holder",
			domain.Property("owner", domain.Ref("User")),
			domain.Property("either", domain.UnionOf(domain.Ref("User"), domain.Ref("Account"))),
		)
		r := New(newIndex(t, user, account, holder))

		// Act
		mustResolve(t, r, domain.Ref("Holder"))
		_, err := r.Finish()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"User", "Holder"}, r.Table().Keys())
		assert.Equal(t, Object(), mustProperty(t, mustReference(t, r, "Holder"), "either").Type)
	})
}

func TestResolver_Vocabulary(t *testing.T) {
	user := iface("User", domain.Property("id", str()))

	t.Run("async wrapper is transparent", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t, user))

		// Act
		wrapped := mustResolve(t, r, domain.Ref("Promise", domain.Ref("User")))
		plain := mustResolve(t, r, domain.Ref("User"))

		// Assert
		assert.Equal(t, plain, wrapped)
		assert.Equal(t, PrimitiveOf(String), mustResolve(t, r, domain.Ref("Promise", str())))
		assert.Equal(t, 1, r.Table().Len())
	})

	t.Run("binary carriers", func(t *testing.T) {
		r := New(newIndex(t))

		assert.Equal(t, PrimitiveOf(Buffer), mustResolve(t, r, domain.Ref("Buffer")))
		assert.Equal(t, PrimitiveOf(Buffer), mustResolve(t, r, domain.Ref("DownloadBinaryData")))
	})

	t.Run("dates", func(t *testing.T) {
		r := New(newIndex(t))
		dateOnly := annotated(domain.Property("born", domain.Ref("Date")), domain.DecoratorAnnotation, "IsDate")

		assert.Equal(t, PrimitiveOf(DateTime), mustResolve(t, r, domain.Ref("Date")))
		assert.Equal(t, PrimitiveOf(Date), mustResolve(t, r, dateOnly.Type))
	})

	t.Run("custom vocabulary", func(t *testing.T) {
		// Arrange
		vocab := DefaultVocabulary()
		vocab.Async = append(vocab.Async, "Observable")
		vocab.Binary = []string{"Blob"}
		r := New(newIndex(t), WithVocabulary(vocab))

		// Act & Assert
		assert.Equal(t, PrimitiveOf(String), mustResolve(t, r, domain.Ref("Observable", str())))
		assert.Equal(t, PrimitiveOf(Buffer), mustResolve(t, r, domain.Ref("Blob")))
		_, err := r.Resolve(domain.Ref("Buffer"), EmptyBinding)
		assert.True(t, errors.Is(err, ErrUnknownDeclaration))
	})
}

func TestResolver_Enums(t *testing.T) {
	t.Run("literal initializers and ordinals", func(t *testing.T) {
		// Arrange
		status := enumDecl("Status",
			domain.EnumMember{Name: "Active", Value: &domain.Literal{Value: "active", Raw: `"active"`}},
			domain.EnumMember{Name: "Gone"},
			domain.EnumMember{Name: "Ten", Value: &domain.Literal{Value: float64(10), Raw: "10"}},
		)
		r := New(newIndex(t, status))

		// Act
		expr := mustResolve(t, r, domain.Ref("Status"))

		// Assert
		assert.Equal(t, EnumOf([]any{"active", 1, float64(10)}), expr)
		assert.Equal(t, 0, r.Table().Len())
	})

	t.Run("duplicate enums", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t, enumDecl("Status", domain.EnumMember{Name: "A"}), enumDecl("Status", domain.EnumMember{Name: "B"})))

		// Act
		_, err := r.Resolve(domain.Ref("Status"), EmptyBinding)

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateNamedType))
	})

	t.Run("literal union alias", func(t *testing.T) {
		// Arrange
		size := alias("Size", domain.UnionOf(domain.LiteralOf("s", `"s"`), domain.LiteralOf("m", `"m"`)))
		r := New(newIndex(t, size))

		// Act
		expr := mustResolve(t, r, domain.Ref("Size"))

		// Assert
		assert.Equal(t, EnumOf([]any{"s", "m"}), expr)
	})

	t.Run("duplicate literal union aliases", func(t *testing.T) {
		size := alias("Size", domain.UnionOf(domain.LiteralOf("s", `"s"`), domain.LiteralOf("m", `"m"`)))
		other := alias("Size", domain.LiteralOf("l", `"l"`))
		r := New(newIndex(t, size, other))

		_, err := r.Resolve(domain.Ref("Size"), EmptyBinding)

		assert.True(t, errors.Is(err, ErrDuplicateNamedType))
	})
}

func TestResolver_Aliases(t *testing.T) {
	t.Run("aliases of non-object types are transparent", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t,
			alias("Id", str()),
			alias("Ids", domain.ArrayOf(domain.Ref("Id"))),
		))

		// Act
		expr := mustResolve(t, r, domain.Ref("Ids"))

		// Assert
		assert.Equal(t, ArrayOf(PrimitiveOf(String)), expr)
		assert.Equal(t, 0, r.Table().Len())
	})

	t.Run("hints on the alias apply to its target", func(t *testing.T) {
		count := alias("Count", num())
		count.Annotations = []domain.Annotation{{Name: "IsInt", Source: domain.DocTagAnnotation}}
		r := New(newIndex(t, count))

		assert.Equal(t, PrimitiveOf(Integer), mustResolve(t, r, domain.Ref("Count")))
	})

	t.Run("self referencing alias resolves to object", func(t *testing.T) {
		r := New(newIndex(t, alias("Json", domain.ArrayOf(domain.Ref("Json")))))

		assert.Equal(t, ArrayOf(Object()), mustResolve(t, r, domain.Ref("Json")))
	})

	t.Run("object literal alias is a reference", func(t *testing.T) {
		// Arrange
		point := alias("Point", domain.ObjectLiteral(domain.Property("x", num()), domain.OptionalProperty("y", num())))
		r := New(newIndex(t, point))

		// Act
		expr := mustResolve(t, r, domain.Ref("Point"))

		// Assert
		assert.Equal(t, RefTo("Point"), expr)
		ref := mustReference(t, r, "Point")
		assert.Equal(t, []string{"x", "y"}, propertyNames(ref))
		assert.False(t, mustProperty(t, ref, "y").Required)
	})
}

func TestResolver_InlineObjects(t *testing.T) {
	t.Run("type literals are resolved in place and never cached", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t))
		node := domain.ObjectLiteral(
			domain.Property("name", str()),
			domain.OptionalProperty("tags", domain.ArrayOf(str())),
		)

		// Act
		expr := mustResolve(t, r, node)

		// Assert
		require.Equal(t, KindInlineObject, expr.Kind)
		require.Len(t, expr.Properties, 2)
		assert.Equal(t, Property{Name: "name", Type: PrimitiveOf(String), Required: true}, expr.Properties[0])
		assert.Equal(t, Property{Name: "tags", Type: ArrayOf(PrimitiveOf(String))}, expr.Properties[1])
		assert.Equal(t, 0, r.Table().Len())
	})

	t.Run("index signature on a literal", func(t *testing.T) {
		r := New(newIndex(t))

		expr := mustResolve(t, r, domain.ObjectLiteral(domain.IndexSignature(str(), num())))

		require.NotNil(t, expr.Additional)
		assert.Equal(t, PrimitiveOf(Double), expr.Additional.Type)
	})
}

func TestResolver_UnsupportedSyntax(t *testing.T) {
	r := New(newIndex(t))

	tests := []struct {
		name   string
		node   *domain.TypeNode
		syntax string
	}{
		{"tuple", domain.Unsupported("tuple_type"), "tuple_type"},
		{"intersection", domain.Unsupported("intersection_type"), "intersection_type"},
		{"function", &domain.TypeNode{Kind: domain.NodeFunction, Syntax: "function_type"}, "function_type"},
		{"bare literal", domain.LiteralOf("x", `"x"`), "literal_type"},
		{"null", domain.Keyword(domain.KeywordNull), "predefined_type"},
		{"never", domain.Keyword(domain.KeywordNever), "predefined_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.node, EmptyBinding)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnresolvedTypeKind))
			assert.Contains(t, err.Error(), tt.syntax)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestResolver_UnknownDeclaration(t *testing.T) {
	r := New(newIndex(t, iface("Order", domain.Property("customer", domain.Ref("Customer")))))

	_, err := r.Resolve(domain.Ref("Order"), EmptyBinding)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDeclaration))
	assert.Contains(t, err.Error(), `resolving type "Order"`)
	assert.Contains(t, err.Error(), "Customer")
}

func TestResolver_StatusWrappers(t *testing.T) {
	t.Run("undeclared wrapper keeps its name and carries the argument", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t, iface("User", domain.Property("id", str()))))

		// Act
		expr := mustResolve(t, r, domain.Ref("NewResource", domain.Ref("User")))

		// Assert
		assert.Equal(t, "NewResource", expr.Ref)
		require.NotNil(t, expr.TypeArgument)
		assert.Equal(t, RefTo("User"), *expr.TypeArgument)

		entry := mustReference(t, r, "NewResource")
		require.NotNil(t, entry.TypeArgument)
		assert.Equal(t, RefTo("User"), *entry.TypeArgument)
		assert.Empty(t, entry.Properties)
		mustReference(t, r, "User")
	})

	t.Run("declared wrapper is resolved with its argument", func(t *testing.T) {
		// Arrange
		wrapper := generic(class("RequestAccepted", domain.Property("body", domain.Ref("T"))), "T")
		r := New(newIndex(t, wrapper))

		// Act
		expr := mustResolve(t, r, domain.Ref("RequestAccepted", str()))

		// Assert
		assert.Equal(t, "RequestAccepted", expr.Ref)
		entry := mustReference(t, r, "RequestAccepted")
		assert.Equal(t, PrimitiveOf(String), mustProperty(t, entry, "body").Type)
		assert.Equal(t, PrimitiveOf(String), *entry.TypeArgument)
	})
}

func TestResolver_Overrides(t *testing.T) {
	// Arrange
	order := iface("Order",
		domain.Property("total", domain.Ref("Money")),
		domain.Property("secret", domain.Ref("Secret")),
		domain.Property("secrets", domain.ArrayOf(domain.Ref("Secret"))),
		domain.Property("id", str()),
	)
	r := New(newIndex(t, order), WithOverrides(map[string]string{
		"Money":  "string",
		"Secret": "",
	}))

	// Act
	mustResolve(t, r, domain.Ref("Order"))

	// Assert
	ref := mustReference(t, r, "Order")
	assert.Equal(t, []string{"total", "id"}, propertyNames(ref))
	assert.Equal(t, PrimitiveOf(String), mustProperty(t, ref, "total").Type)
}

func TestResolver_Finish(t *testing.T) {
	t.Run("hooks run once in registration order", func(t *testing.T) {
		// Arrange
		r := New(newIndex(t, iface("User", domain.Property("id", str()))))
		var calls []string
		r.OnFinish(func(table *Table) error {
			calls = append(calls, "first")
			assert.Equal(t, 1, table.Len())
			return nil
		})
		r.OnFinish(func(table *Table) error {
			calls = append(calls, "second")
			return nil
		})
		mustResolve(t, r, domain.Ref("User"))

		// Act
		table, err := r.Finish()
		require.NoError(t, err)
		again, err := r.Finish()

		// Assert
		require.NoError(t, err)
		assert.Same(t, table, again)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("resolve fails after finish", func(t *testing.T) {
		r := New(newIndex(t))
		_, err := r.Finish()
		require.NoError(t, err)

		_, err = r.Resolve(str(), EmptyBinding)

		assert.ErrorIs(t, err, ErrFinished)
	})

	t.Run("hook errors abort the run", func(t *testing.T) {
		r := New(newIndex(t))
		r.OnFinish(func(*Table) error { return errors.New("boom") })

		_, err := r.Finish()

		assert.EqualError(t, err, "boom")
	})
}
