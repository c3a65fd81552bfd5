package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSemanticConnection_Other tests undirected endpoint lookup
func TestSemanticConnection_Other(t *testing.T) {
	edge := SemanticConnection{FromID: "a", ToID: "b", Strength: 0.5}

	assert.Equal(t, "b", edge.Other("a"))
	assert.Equal(t, "a", edge.Other("b"))
	assert.Equal(t, "", edge.Other("c"))
}

// TestContentType_IsValid tests content type validation
func TestContentType_IsValid(t *testing.T) {
	for _, ct := range []ContentType{
		ContentTypeText, ContentTypeImage, ContentTypeWeb, ContentTypePDF, ContentTypeMixed,
	} {
		assert.True(t, ct.IsValid(), "expected %q to be valid", ct)
	}
	assert.False(t, ContentType("audio").IsValid())
}

// TestPriority_Rank tests priority ordering
func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
}

// TestGeneratedTask_Key tests title normalisation in the dedupe key
func TestGeneratedTask_Key(t *testing.T) {
	a := GeneratedTask{Title: "Call Sarah ", Category: CategoryBusiness}
	b := GeneratedTask{Title: "call sarah", Category: CategoryBusiness}
	c := GeneratedTask{Title: "call sarah", Category: CategoryPersonal}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
