package magnet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Push(t *testing.T) {
	var v Value[string]
	assert.False(t, v.IsSet())

	v.Push("a")
	assert.True(t, v.IsSet())
	assert.False(t, v.IsSequence())

	v.Push("b")
	v.Push("c")
	assert.True(t, v.IsSequence())
	assert.Equal(t, []string{"a", "b", "c"}, v.Items())

	first, ok := v.First()
	assert.True(t, ok)
	assert.Equal(t, "a", first)
}

func TestValue_EmptySequenceIsSet(t *testing.T) {
	v := Sequence[string]()
	assert.True(t, v.IsSet())
	assert.Equal(t, 0, v.Len())
}

func TestValue_JSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		seq  bool
	}{
		{name: "scalar", json: `"a"`, seq: false},
		{name: "sequence", json: `["a","b"]`, seq: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value[string]
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.seq, v.IsSequence())

			out, err := json.Marshal(v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(out))
		})
	}
}

func TestValue_JSONListScalar(t *testing.T) {
	var kt Value[[]string]
	require.NoError(t, json.Unmarshal([]byte(`["x","y"]`), &kt))
	assert.False(t, kt.IsSequence())
	assert.Equal(t, [][]string{{"x", "y"}}, kt.Items())

	require.NoError(t, json.Unmarshal([]byte(`[["x"],["y"]]`), &kt))
	assert.True(t, kt.IsSequence())
	assert.Equal(t, 2, kt.Len())
}

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet("b", "a", "b")
	s.Add("c", "a")

	assert.Equal(t, []string{"b", "a", "c"}, s.Items())
	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
	assert.Equal(t, 3, s.Len())

	var zero OrderedSet
	assert.NotNil(t, zero.Items())
	zero.Add("x")
	assert.Equal(t, []string{"x"}, zero.Items())
}

func TestParams(t *testing.T) {
	var p Params
	p.Push("zz", "1")
	p.Push("aa", "2")
	p.Set("zz", Scalar("3"))
	assert.Equal(t, []string{"zz", "aa"}, p.Keys())

	p.Del("zz")
	assert.Equal(t, []string{"aa"}, p.Keys())
	_, ok := p.Get("zz")
	assert.False(t, ok)
}

func TestParams_JSONKeepsOrder(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{"zz":"1","aa":["2","3"],"mm":"4"}`), &p))
	assert.Equal(t, []string{"zz", "aa", "mm"}, p.Keys())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"zz":"1","aa":["2","3"],"mm":"4"}`, string(out))
}

func TestMagnet_JSON(t *testing.T) {
	m := Decode("magnet:?xt=urn:btih:" + leavesHash + "&dn=x&tr=a&tr=b&foo=bar")
	out, err := json.Marshal(m)
	require.NoError(t, err)

	var back Magnet
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, m.InfoHash, back.InfoHash)
	assert.Equal(t, m.Announce, back.Announce)
	assert.Equal(t, m.TR.Items(), back.TR.Items())
	assert.Equal(t, m.Extra.Keys(), back.Extra.Keys())
	assert.Equal(t, Encode(m), Encode(&back))
}
