package jsonnode

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNodeConstructors(t *testing.T) {
	helper := NewTestHelper(t)

	tests := []struct {
		name string
		node *Node
		kind Kind
	}{
		{"Null", Null(), KindNull},
		{"Bool", NewBool(true), KindBool},
		{"Number", NewNumber(1.5), KindNumber},
		{"Int", NewInt(-3), KindNumber},
		{"String", NewString("s"), KindString},
		{"Array", NewArray(), KindArray},
		{"Object", NewObject(), KindObject},
		{"NilNode", nil, KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper.AssertEqual(tt.kind, tt.node.Kind())
			helper.AssertEqual(tt.kind == KindArray || tt.kind == KindObject, tt.node.IsContainer())
		})
	}

	t.Run("KindNames", func(t *testing.T) {
		helper.AssertEqual("object", KindObject.String())
		helper.AssertEqual("kind(9)", Kind(9).String())
		helper.AssertTrue(KindBool.Valid())
		helper.AssertFalse(Kind(0).Valid())
	})

	t.Run("NilItemsBecomeNull", func(t *testing.T) {
		arr := NewArray(NewInt(1), nil)
		helper.AssertEqual(2, arr.Len())
		helper.AssertTrue(arr.At(1) == Null())
	})

	t.Run("NewLong", func(t *testing.T) {
		big := int64(math.MaxInt64)

		cfg := DefaultConfig()
		helper.AssertTrue(cfg.NewLong(big).IsNumber())

		cfg.LongAsString = true
		n := cfg.NewLong(big)
		helper.AssertTrue(n.IsString())
		helper.AssertEqual("9223372036854775807", n.Text())
		helper.AssertEqual(big, n.Int64())
		helper.AssertEqual(`"9223372036854775807"`, n.String())

		var nilCfg *Config
		helper.AssertTrue(nilCfg.NewLong(7).IsNumber())
	})

	t.Run("NullInstances", func(t *testing.T) {
		cfg := DefaultConfig()
		helper.AssertTrue(cfg.Null() == Null())

		cfg.ReuseNullInstance = false
		a, b := cfg.Null(), cfg.Null()
		helper.AssertTrue(a.IsNull())
		helper.AssertFalse(a == b)
		helper.AssertTrue(a.Equal(b))
	})
}

func TestNodeAccess(t *testing.T) {
	helper := NewTestHelper(t)
	root := helper.MustParse(`{"b":1,"a":[true,"x",null],"c":{"d":2}}`)

	t.Run("Objects", func(t *testing.T) {
		helper.AssertEqual(3, root.Len())
		helper.AssertEqual([]string{"b", "a", "c"}, root.Keys())
		helper.AssertTrue(root.HasKey("a"))
		helper.AssertFalse(root.HasKey("z"))
		helper.AssertNil(root.Get("z"))
		helper.AssertEqual("fallback", root.GetOrDefault("z", NewString("fallback")).Text())
		helper.AssertEqual(1, root.GetOrDefault("b", nil).Int())
		helper.AssertEqual(1, root.At(0).Int(), "At on objects follows insertion order")
	})

	t.Run("Arrays", func(t *testing.T) {
		arr := root.Get("a")
		helper.AssertEqual(3, arr.Len())
		helper.AssertTrue(arr.At(0).Bool())
		helper.AssertNil(arr.At(3))
		helper.AssertNil(arr.At(-1))
		helper.AssertNil(arr.Get("x"))
		helper.AssertNil(arr.Keys())
	})

	t.Run("Scalars", func(t *testing.T) {
		s := NewString("x")
		helper.AssertEqual(0, s.Len())
		helper.AssertNil(s.At(0))
		helper.AssertNil(s.Get("x"))
		helper.AssertNil(s.Values())

		var missing *Node
		helper.AssertEqual(0, missing.Len())
		helper.AssertNil(missing.Get("x"))
	})

	t.Run("Iterators", func(t *testing.T) {
		var keys []string
		for key, value := range root.All() {
			keys = append(keys, key)
			helper.AssertNotNil(value)
		}
		helper.AssertEqual([]string{"b", "a", "c"}, keys)

		helper.AssertEqual(3, len(slices.Collect(root.Children())))

		var leaves []string
		for leaf := range root.DeepChildren() {
			leaves = append(leaves, leaf.Text())
		}
		helper.AssertEqual([]string{"1", "true", "x", "null", "2"}, leaves)

		count := 0
		for range root.DeepChildren() {
			count++
			if count == 2 {
				break
			}
		}
		helper.AssertEqual(2, count)

		for _, v := range root.Get("a").All() {
			helper.AssertNotNil(v)
		}
		helper.AssertEqual(3, len(root.Values()))
	})
}

func TestNodeMutation(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("ObjectSetOverwritesInPlace", func(t *testing.T) {
		obj := NewObject()
		helper.AssertNoError(obj.Set("a", NewInt(1)))
		helper.AssertNoError(obj.Set("b", NewInt(2)))
		helper.AssertNoError(obj.Set("a", NewInt(3)))
		helper.AssertNoError(obj.Set("c", nil))
		helper.AssertEqual(`{"a":3,"b":2,"c":null}`, obj.String())
	})

	t.Run("ArraySetAppends", func(t *testing.T) {
		arr := NewArray()
		helper.AssertNoError(arr.Set("ignored", NewInt(1)))
		helper.AssertNoError(arr.Append(NewInt(2)))
		helper.AssertNoError(arr.SetAt(2, NewInt(3)))
		helper.AssertNoError(arr.SetAt(0, NewInt(0)))
		helper.AssertErrorIs(arr.SetAt(9, NewInt(9)), ErrInvalidPath)
		helper.AssertEqual(`[0,2,3]`, arr.String())
	})

	t.Run("ScalarMutationFails", func(t *testing.T) {
		n := NewNumber(1)
		helper.AssertErrorIs(n.Set("a", nil), ErrTypeMismatch)
		helper.AssertErrorIs(n.Append(nil), ErrTypeMismatch)
		helper.AssertErrorIs(n.SetAt(0, nil), ErrTypeMismatch)
		helper.AssertErrorIs(Null().Set("a", nil), ErrTypeMismatch)
	})

	t.Run("Remove", func(t *testing.T) {
		obj := helper.MustParse(`{"a":1,"b":2,"c":3}`)
		helper.AssertEqual(2, obj.Remove("b").Int())
		helper.AssertNil(obj.Remove("b"))
		helper.AssertEqual([]string{"a", "c"}, obj.Keys())
		helper.AssertEqual(3, obj.Get("c").Int(), "index rebuilt after removal")

		helper.AssertEqual(1, obj.RemoveAt(0).Int())
		helper.AssertEqual(`{"c":3}`, obj.String())
		helper.AssertNil(obj.RemoveAt(5))

		arr := helper.MustParse(`[1,2,3]`)
		helper.AssertEqual(2, arr.RemoveAt(1).Int())
		helper.AssertEqual(`[1,3]`, arr.String())
		helper.AssertNil(NewString("x").RemoveAt(0))
	})

	t.Run("RemoveNodeByIdentity", func(t *testing.T) {
		arr := helper.MustParse(`[1,1]`)
		second := arr.At(1)
		helper.AssertTrue(arr.RemoveNode(second) == second)
		helper.AssertEqual(`[1]`, arr.String())
		helper.AssertNil(arr.RemoveNode(NewInt(1)), "equal but distinct nodes are not removed")

		obj := helper.MustParse(`{"a":{"x":1},"b":2}`)
		helper.AssertNotNil(obj.RemoveNode(obj.Get("a")))
		helper.AssertEqual([]string{"b"}, obj.Keys())
		helper.AssertNil(obj.RemoveNode(nil))
	})
}

func TestNodeCloneAndEqual(t *testing.T) {
	helper := NewTestHelper(t)

	root := helper.MustParse(NewTestDataGenerator().GenerateComplexJSON())
	root.Get("meta").SetInline(true)

	clone := root.Clone()
	helper.AssertTrue(root.Equal(clone))
	helper.AssertSameTree(root, clone)
	helper.AssertTrue(clone.Get("meta").Inline())

	helper.AssertNoError(clone.GetPath("users[0]").Set("name", NewString("Zed")))
	helper.AssertEqual("Alice", root.GetPath("users[0].name").Text(), "clone is deep")
	helper.AssertFalse(root.Equal(clone))

	t.Run("ObjectOrderIgnored", func(t *testing.T) {
		a := helper.MustParse(`{"x":1,"y":[1,2]}`)
		b := helper.MustParse(`{"y":[1,2],"x":1}`)
		helper.AssertTrue(a.Equal(b))
		helper.AssertFalse(a.Equal(helper.MustParse(`{"x":1,"y":[2,1]}`)))
		helper.AssertFalse(a.Equal(helper.MustParse(`{"x":1}`)))
	})

	t.Run("Scalars", func(t *testing.T) {
		helper.AssertTrue(NewNumber(1).Equal(NewInt(1)))
		helper.AssertFalse(NewNumber(1).Equal(NewString("1")))
		helper.AssertFalse(NewNumber(math.NaN()).Equal(NewNumber(math.NaN())))
		helper.AssertTrue((*Node)(nil).Equal(Null()))
		helper.AssertTrue(Null().Clone() == Null())
	})

	t.Run("FreshNullIsCopied", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ReuseNullInstance = false
		fresh := cfg.Null()
		helper.AssertFalse(fresh == Null())

		clone := fresh.Clone()
		helper.AssertTrue(clone.IsNull())
		helper.AssertFalse(clone == fresh)
		helper.AssertFalse(clone == Null())

		helper.AssertNoError(fresh.UnmarshalJSON([]byte(`1`)))
		helper.AssertTrue(clone.IsNull())
	})
}

func TestNodeCoercion(t *testing.T) {
	helper := NewTestHelper(t)

	tests := []struct {
		name  string
		node  *Node
		text  string
		float float64
		boolV bool
	}{
		{"Number", NewNumber(2.75), "2.75", 2.75, true},
		{"Zero", NewNumber(0), "0", 0, false},
		{"NumericString", NewString(" 42.5 "), " 42.5 ", 42.5, true},
		{"WordString", NewString("hello"), "hello", 0, true},
		{"FalseString", NewString("FALSE"), "FALSE", 0, false},
		{"EmptyString", NewString(""), "", 0, false},
		{"True", NewBool(true), "true", 1, true},
		{"False", NewBool(false), "false", 0, false},
		{"Null", Null(), "null", 0, false},
		{"Array", NewArray(NewInt(1)), "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper.AssertEqual(tt.text, tt.node.Text())
			helper.AssertEqual(tt.float, tt.node.Float())
			helper.AssertEqual(tt.boolV, tt.node.Bool())
		})
	}

	t.Run("Integers", func(t *testing.T) {
		helper.AssertEqual(2, NewNumber(2.9).Int())
		helper.AssertEqual(-2, NewNumber(-2.9).Int())
		helper.AssertEqual(int64(math.MaxInt64), NewNumber(1e300).Int64())
		helper.AssertEqual(int64(0), NewNumber(math.NaN()).Int64())
		helper.AssertEqual(int64(-12), NewString("-12").Int64())
		helper.AssertFalse(NewNumber(math.NaN()).Bool())
	})
}

func TestNodeNativeConversion(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("Interface", func(t *testing.T) {
		root := helper.MustParse(`{"a":[1,"x",null,false],"b":{}}`)
		want := map[string]any{
			"a": []any{1.0, "x", nil, false},
			"b": map[string]any{},
		}
		if diff := cmp.Diff(want, root.Interface()); diff != "" {
			t.Errorf("Interface mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FromAny", func(t *testing.T) {
		n, err := FromAny(map[string]any{
			"z":     1,
			"a":     []any{true, "s", nil, int64(7), uint8(2), float32(0.5)},
			"m":     map[string]*Node{"k": NewString("v")},
			"list":  []string{"x", "y"},
			"nums":  []float64{1.5},
			"num":   json.Number("3.25"),
			"node":  NewArray(NewInt(1)),
			"nodes": []*Node{NewBool(false)},
		})
		require.NoError(t, err)
		helper.AssertEqual([]string{"a", "list", "m", "node", "nodes", "num", "nums", "z"}, n.Keys())
		helper.AssertEqual(`[true,"s",null,7,2,0.5]`, n.Get("a").String())
		helper.AssertEqual(3.25, n.Get("num").Float())
		helper.AssertEqual(`{"k":"v"}`, n.Get("m").String())
	})

	t.Run("FromAnyErrors", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		helper.AssertErrorIs(err, ErrTypeMismatch)

		_, err = FromAny(json.Number("nope"))
		helper.AssertErrorIs(err, ErrTypeMismatch)

		var deep any = "leaf"
		for range DefaultMaxNestingDepth + 2 {
			deep = []any{deep}
		}
		_, err = FromAny(deep)
		helper.AssertErrorIs(err, ErrDepthLimit)
	})

	t.Run("EncodingJSON", func(t *testing.T) {
		type envelope struct {
			Payload *Node `json:"payload"`
		}
		in := envelope{Payload: helper.MustParse(`{"a":[1,2]}`)}

		data, err := json.Marshal(in)
		require.NoError(t, err)
		helper.AssertEqual(`{"payload":{"a":[1,2]}}`, string(data))

		var out envelope
		require.NoError(t, json.Unmarshal(data, &out))
		helper.AssertTrue(in.Payload.Equal(out.Payload))

		helper.AssertError(Null().UnmarshalJSON([]byte(`{}`)))
	})
}
