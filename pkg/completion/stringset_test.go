package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSetInsertErase(t *testing.T) {
	s := NewStringSet()
	assert.True(t, s.Insert("b"))
	assert.True(t, s.Insert("a"))
	assert.False(t, s.Insert("a"))
	assert.Equal(t, []string{"a", "b"}, s.Members())

	assert.True(t, s.Erase("a"))
	assert.False(t, s.Erase("a"))
	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
	assert.Equal(t, 1, s.Len())
}

func TestStringSetCompletion(t *testing.T) {
	s := NewStringSet("ab", "ac")

	assert.Equal(t, 2, s.NumberOfCompletions("a"))
	assert.Equal(t, "a", s.Complete("a"))
	assert.Equal(t, []string{"ab"}, s.Completions("ab"))
	assert.Equal(t, "foo", s.Complete("foo"))
	assert.Equal(t, 2, s.NumberOfCompletions(""))
}

func TestStringSetCompleteLongestCommonPrefix(t *testing.T) {
	s := NewStringSet("scene_alpha", "scene_almond", "sun", "scenery")

	assert.Equal(t, "scene", s.Complete("sc"))
	assert.Equal(t, "scene_al", s.Complete("scene_"))
	assert.Equal(t, "sun", s.Complete("su"))

	completions := s.Completions("scene")
	require.Len(t, completions, 3)
	assert.Equal(t, []string{"scene_almond", "scene_alpha", "scenery"}, completions)
}

func TestStringSetEmpty(t *testing.T) {
	s := NewStringSet()
	assert.Equal(t, "", s.Complete(""))
	assert.Empty(t, s.Completions(""))
	assert.Equal(t, 0, s.NumberOfCompletions("x"))
}
