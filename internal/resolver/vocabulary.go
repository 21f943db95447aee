package resolver

// Hint maps an annotation name to the primitive it selects.
type Hint struct {
	Name      string
	Primitive Primitive
}

// Vocabulary the reference names with built-in meaning.
type Vocabulary struct {
	// Binary names that resolve to buffer
	Binary []string
	// Async wrappers resolved to their single argument
	Async []string
	// List names resolved to an array of their single argument
	List []string
	// Date names resolved to datetime (or date, with a hint)
	Date []string
	// StatusWrappers keep their own name and carry the resolved argument
	StatusWrappers []string

	// NumberHints candidates for number, checked in order
	NumberHints []Hint
	// DateHints candidates for dates, checked in order
	DateHints []Hint
}

// DefaultVocabulary returns the names recognized out of the box.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Binary:         []string{"Buffer", "DownloadBinaryData", "DownloadResource"},
		Async:          []string{"Promise"},
		List:           []string{"Array", "ReadonlyArray"},
		Date:           []string{"Date"},
		StatusWrappers: []string{"NewResource", "RequestAccepted", "MovedPermanently", "MovedTemporarily"},
		NumberHints: []Hint{
			{Name: "IsInt", Primitive: Integer},
			{Name: "IsLong", Primitive: Long},
			{Name: "IsFloat", Primitive: Float},
			{Name: "IsDouble", Primitive: Double},
		},
		DateHints: []Hint{
			{Name: "IsDate", Primitive: Date},
			{Name: "IsDateTime", Primitive: DateTime},
		},
	}
}

func (v Vocabulary) IsBinary(name string) bool        { return contains(v.Binary, name) }
func (v Vocabulary) IsAsync(name string) bool         { return contains(v.Async, name) }
func (v Vocabulary) IsList(name string) bool          { return contains(v.List, name) }
func (v Vocabulary) IsDate(name string) bool          { return contains(v.Date, name) }
func (v Vocabulary) IsStatusWrapper(name string) bool { return contains(v.StatusWrappers, name) }

func hintNames(hints []Hint) []string {
	names := make([]string, len(hints))
	for i, h := range hints {
		names[i] = h.Name
	}
	return names
}

func hintPrimitive(hints []Hint, name string) (Primitive, bool) {
	for _, h := range hints {
		if h.Name == name {
			return h.Primitive, true
		}
	}
	return "", false
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
