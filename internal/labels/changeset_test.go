package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func changeSet(add, remove []string) ChangeSet {
	s := NewChangeSet()
	for _, l := range add {
		s.Add(l)
	}
	for _, l := range remove {
		s.Remove(l)
	}
	return s
}

func TestChangeSet(t *testing.T) {
	t.Run("追加は重複しない", func(t *testing.T) {
		s := NewChangeSet()
		s.Add("a")
		s.Add("b")
		s.Add("b")
		s.Add("c")

		assert.Equal(t, []string{"a", "b", "c"}, s.ToAdd())
		assert.Empty(t, s.ToRemove())
		assert.Empty(t, s.ToAddAndRemove())
	})

	t.Run("追加と削除を別々に保持する", func(t *testing.T) {
		s := changeSet([]string{"a", "c"}, []string{"b"})

		assert.Equal(t, []string{"a", "c"}, s.ToAdd())
		assert.Equal(t, []string{"b"}, s.ToRemove())
		assert.Empty(t, s.ToAddAndRemove())
	})

	t.Run("追加と削除の両方にあるラベルを検出する", func(t *testing.T) {
		s := changeSet([]string{"a", "c"}, []string{"a"})

		assert.Equal(t, []string{"a", "c"}, s.ToAdd())
		assert.Equal(t, []string{"a"}, s.ToRemove())
		assert.Equal(t, []string{"a"}, s.ToAddAndRemove())
	})

	t.Run("ゼロ値でも使える", func(t *testing.T) {
		var s ChangeSet
		assert.True(t, s.IsEmpty())
		s.Remove("x")
		assert.True(t, s.Removes("x"))
		assert.False(t, s.Adds("x"))
		assert.False(t, s.IsEmpty())
	})

	t.Run("返されたスライスを変更しても影響しない", func(t *testing.T) {
		s := changeSet([]string{"a"}, nil)
		got := s.ToAdd()
		got[0] = "z"
		assert.Equal(t, []string{"a"}, s.ToAdd())
	})
}

func TestChangeSet_String(t *testing.T) {
	assert.Equal(t, `{"toAdd":[],"toRemove":[]}`, NewChangeSet().String())
	assert.Equal(t, `{"toAdd":["conflict"],"toRemove":["behind"]}`,
		changeSet([]string{"conflict"}, []string{"behind"}).String())
}

func TestMerge(t *testing.T) {
	t.Run("空のマージは空", func(t *testing.T) {
		m := Merge()
		assert.Empty(t, m.ToAdd())
		assert.Empty(t, m.ToRemove())
		assert.Empty(t, m.ToAddAndRemove())
		assert.True(t, m.IsEmpty())
	})

	t.Run("和集合を取り、衝突を検出する", func(t *testing.T) {
		s := changeSet([]string{"a", "b", "c"}, []string{"d", "e", "f", "honk"})
		u := changeSet([]string{"1", "2", "3", "honk"}, []string{"4", "5", "6"})

		m := Merge(s, u)

		assert.ElementsMatch(t, []string{"a", "b", "c", "1", "2", "3", "honk"}, m.ToAdd())
		assert.ElementsMatch(t, []string{"d", "e", "f", "4", "5", "6", "honk"}, m.ToRemove())
		assert.Equal(t, []string{"honk"}, m.ToAddAndRemove())
	})

	t.Run("可換", func(t *testing.T) {
		a := changeSet([]string{"x"}, []string{"y"})
		b := changeSet([]string{"y", "z"}, nil)

		assert.Equal(t, Merge(a, b).ToAdd(), Merge(b, a).ToAdd())
		assert.Equal(t, Merge(a, b).ToRemove(), Merge(b, a).ToRemove())
	})

	t.Run("結合的", func(t *testing.T) {
		a := changeSet([]string{"x"}, nil)
		b := changeSet(nil, []string{"x"})
		c := changeSet([]string{"w"}, []string{"v"})

		left := Merge(Merge(a, b), c)
		right := Merge(a, Merge(b, c))

		assert.Equal(t, left.ToAdd(), right.ToAdd())
		assert.Equal(t, left.ToRemove(), right.ToRemove())
		assert.Equal(t, left.ToAddAndRemove(), right.ToAddAndRemove())
	})

	t.Run("入力をコピーする", func(t *testing.T) {
		a := changeSet([]string{"x"}, nil)
		m := Merge(a)
		m.Add("y")

		assert.Equal(t, []string{"x"}, a.ToAdd())
		assert.Equal(t, []string{"x", "y"}, m.ToAdd())
	})

	t.Run("単一ルールの出力には衝突がない", func(t *testing.T) {
		yes := true
		for _, r := range DefaultRules(DefaultLabelNames()) {
			for _, state := range []string{"behind", "clean", "dirty"} {
				set := r.Evaluate(mergeableData(&yes, state))
				assert.Empty(t, set.ToAddAndRemove())
			}
		}
	})
}
