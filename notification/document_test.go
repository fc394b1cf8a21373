package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intranet/entity"
)

func TestMemoryDocument_ClassMutations(t *testing.T) {
	doc := NewMemoryDocument()
	require.NoError(t, doc.Append(entity.Notification{ID: "a", Classes: []string{BaseClass}}))

	require.NoError(t, doc.AddClass("a", ShowClass))
	require.NoError(t, doc.AddClass("a", ShowClass))
	el, _ := doc.Get("a")
	assert.Equal(t, "notification show", el.ClassName())

	require.NoError(t, doc.RemoveClass("a", ShowClass))
	el, _ = doc.Get("a")
	assert.Equal(t, "notification", el.ClassName())
}

func TestMemoryDocument_GetReturnsCopy(t *testing.T) {
	doc := NewMemoryDocument()
	require.NoError(t, doc.Append(entity.Notification{ID: "a", Classes: []string{BaseClass}}))

	el, _ := doc.Get("a")
	el.Classes[0] = "changed"

	again, _ := doc.Get("a")
	assert.Equal(t, BaseClass, again.Classes[0])
}

func TestMemoryDocument_MissingElement(t *testing.T) {
	doc := NewMemoryDocument()

	assert.ErrorIs(t, doc.AddClass("x", ShowClass), ErrNotFound)
	assert.ErrorIs(t, doc.RemoveClass("x", ShowClass), ErrNotFound)
	assert.ErrorIs(t, doc.Remove("x"), ErrNotFound)
	_, ok := doc.Get("x")
	assert.False(t, ok)
}
