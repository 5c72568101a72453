package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersAdd(t *testing.T) {
	h := NewHeaders()

	require.NoError(t, h.Add("Content-Type", "text/plain"))

	err := h.Add("content-type", "text/html")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	values, ok := h.Values("CONTENT-TYPE")
	assert.True(t, ok)
	assert.Equal(t, []string{"text/plain"}, values)
}

func TestHeadersAppend(t *testing.T) {
	h := NewHeaders()

	require.NoError(t, h.Append("Accept", "a"))
	require.NoError(t, h.Append("accept", "b"))
	require.NoError(t, h.Append("ACCEPT", "c"))

	values, ok := h.Values("Accept")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, values)
	assert.Equal(t, 1, h.Len())
}

func TestHeadersValidation(t *testing.T) {
	testcases := []struct {
		desc  string
		name  string
		value string
	}{
		{desc: "separator in value", name: "X", value: "a;b"},
		{desc: "trailing separator", name: "X", value: "a;"},
		{desc: "empty name", name: "", value: "a"},
		{desc: "space in name", name: "X Y", value: "a"},
		{desc: "colon in name", name: "X:", value: "a"},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			h := NewHeaders()

			assert.ErrorIs(t, h.Add(tc.name, tc.value), ErrValidation)
			assert.ErrorIs(t, h.Append(tc.name, tc.value), ErrValidation)
			assert.Zero(t, h.Len())
		})
	}
}

func TestHeadersCaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"X-Token", "x-token"},
		{"etag", "ETag"},
		{"A", "a"},
	}
	for _, pair := range pairs {
		upper, lower := pair[0], pair[1]

		h := NewHeaders()
		require.NoError(t, h.Add(upper, "v"))

		assert.True(t, h.Has(lower))
		v, ok := h.Get(lower)
		assert.True(t, ok)
		assert.Equal(t, "v", v)

		assert.ErrorIs(t, h.Add(lower, "w"), ErrInvalidOperation)

		h.Del(lower)
		assert.False(t, h.Has(upper))
		assert.Zero(t, h.Len())
	}
}

func TestHeadersGet(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.Append("abc", "abc"))
	require.NoError(t, h.Append("abc", "def"))

	v, ok := h.Get("abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	v, ok = h.Get("jkl")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestHeadersValuesIsCopy(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.Append("abc", "abc"))

	values, _ := h.Values("abc")
	values[0] = "changed"

	v, _ := h.Get("abc")
	assert.Equal(t, "abc", v)

	_, ok := h.Values("missing")
	assert.False(t, ok)
}

func TestHeadersOrder(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.Append("B", "1"))
	require.NoError(t, h.Append("a", "2"))
	require.NoError(t, h.Append("C", "3"))
	require.NoError(t, h.Append("b", "4"))

	assert.Equal(t, []string{"B", "a", "C"}, h.Names())

	h.Del("a")
	require.NoError(t, h.Append("A", "5"))
	assert.Equal(t, []string{"B", "C", "A"}, h.Names())

	var seen [][]string
	h.Range(func(name string, values []string) bool {
		seen = append(seen, append([]string{name}, values...))
		return true
	})
	assert.Equal(t, [][]string{{"B", "1", "4"}, {"C", "3"}, {"A", "5"}}, seen)
}

func TestHeadersRangeStops(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.Append("A", "1"))
	require.NoError(t, h.Append("B", "2"))

	calls := 0
	h.Range(func(string, []string) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

func TestHeadersFields(t *testing.T) {
	h, err := HeadersFrom(map[string][]string{
		"A": {"a"},
		"B": {"b", "c"},
	})
	require.NoError(t, err)

	fields := h.Fields()
	assert.Equal(t, map[string][]string{"A": {"a"}, "B": {"b", "c"}}, fields)

	fields["A"][0] = "changed"
	v, _ := h.Get("A")
	assert.Equal(t, "a", v)

	_, err = HeadersFrom(map[string][]string{"A": {"a;b"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHeadersClone(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.Append("A", "1"))

	clone := h.Clone()
	require.NoError(t, clone.Append("A", "2"))
	require.NoError(t, clone.Append("B", "3"))

	values, _ := h.Values("A")
	assert.Equal(t, []string{"1"}, values)
	assert.False(t, h.Has("B"))
	assert.Equal(t, []string{"A", "B"}, clone.Names())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "a", Join([]string{"a"}))
	assert.Equal(t, "form-data; name=\"f\"", Join([]string{"form-data", "name=\"f\""}))
}
