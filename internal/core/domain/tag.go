package domain

// TagType classifies what a semantic tag describes.
type TagType string

// Recognised tag types.
const (
	TagTypeCategory    TagType = "category"
	TagTypeKeyword     TagType = "keyword"
	TagTypeEntity      TagType = "entity"
	TagTypeSource      TagType = "source"
	TagTypeContentType TagType = "content_type"
	TagTypeTemporal    TagType = "temporal"
	TagTypeHierarchy   TagType = "hierarchy"
	TagTypePriority    TagType = "priority"
	TagTypeSentiment   TagType = "sentiment"
)

// TagSource records how a tag came to exist.
type TagSource string

// Recognised tag sources.
const (
	TagSourceDerived   TagSource = "derived"
	TagSourceHeuristic TagSource = "heuristic"
	TagSourceSystem    TagSource = "system"
	TagSourceUser      TagSource = "user"
)

// SemanticTag is a typed, ranked tag attached to a content record.
type SemanticTag struct {
	// Name is the tag text, lowercase.
	Name string

	// Type classifies the tag.
	Type TagType

	// Relevance ranks the tag against its siblings, 0-1.
	Relevance float64

	// Confidence is how certain the tagger is, 0-1.
	Confidence float64

	// Source records the tag's provenance.
	Source TagSource

	// Metadata holds free-form annotations.
	Metadata map[string]string
}

// TagKey is the identity of a tag. Two tags with the same name and
// type are duplicates regardless of score.
type TagKey struct {
	Name string
	Type TagType
}

// Key returns the identity key for deduplication.
func (t SemanticTag) Key() TagKey {
	return TagKey{Name: t.Name, Type: t.Type}
}

// TagSuggestion is a completion offered for a partial tag query.
type TagSuggestion struct {
	// Name is the suggested tag name.
	Name string

	// Type classifies the suggestion.
	Type TagType

	// Confidence ranks the suggestion, 0-1.
	Confidence float64
}
