package jsonnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const pathTestDoc = `{
	"users": [{"name": "Alice", "tags": ["x", "y"]}, {"name": "Bob"}],
	"a/b": {"~k": 1},
	"10": "ten",
	"m": {"0": "zero"},
	"s": "scalar"
}`

func TestGetPath(t *testing.T) {
	helper := NewTestHelper(t)
	root := helper.MustParse(pathTestDoc)

	tests := []struct {
		path string
		want string
	}{
		{"users[0].name", "Alice"},
		{"users.1.name", "Bob"},
		{"users[0].tags[1]", "y"},
		{"/users/0/tags/1", "y"},
		{"/a~1b/~0k", "1"},
		{"10", "ten"},
		{"m.0", "zero"},
		{"/m/0", "zero"},
		{"s", "scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n := root.GetPath(tt.path)
			require.NotNil(t, n)
			helper.AssertEqual(tt.want, n.Text())
		})
	}

	t.Run("EmptyPathIsRoot", func(t *testing.T) {
		helper.AssertTrue(root.GetPath("") == root)
	})

	t.Run("Missing", func(t *testing.T) {
		for _, path := range []string{"users[5].name", "users[-1]", "users[0].name.first", "nope", "s.x", "/users/9"} {
			helper.AssertNil(root.GetPath(path), path)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, path := range []string{"users[0", "users[x]", "users[]", "users[0]name", "users]"} {
			helper.AssertNil(root.GetPath(path), path)
		}
	})

	t.Run("ReadsDoNotMutate", func(t *testing.T) {
		before := root.String()
		root.GetPath("x.y[3].z")
		helper.AssertEqual(before, root.String())
	})
}

func TestSetPath(t *testing.T) {
	helper := NewTestHelper(t)

	t.Run("CreatesIntermediates", func(t *testing.T) {
		root := NewObject()
		helper.AssertNoError(root.SetPath("a.b[1].c", NewString("v")))
		helper.AssertEqual(`{"a":{"b":[null,{"c":"v"}]}}`, root.String())
	})

	t.Run("PointerAppend", func(t *testing.T) {
		root := NewObject()
		helper.AssertNoError(root.SetPath("/list/-", NewInt(1)))
		helper.AssertNoError(root.SetPath("/list/-", NewInt(2)))
		helper.AssertEqual(`{"list":[1,2]}`, root.String())
	})

	t.Run("Overwrite", func(t *testing.T) {
		root := helper.MustParse(pathTestDoc)
		helper.AssertNoError(root.SetPath("users[1].name", NewString("Carol")))
		helper.AssertEqual("Carol", root.GetPath("/users/1/name").Text())
	})

	t.Run("NumericKeyOnObject", func(t *testing.T) {
		root := helper.MustParse(pathTestDoc)
		helper.AssertNoError(root.SetPath("m.1", NewString("one")))
		helper.AssertEqual([]string{"0", "1"}, root.Get("m").Keys())
		helper.AssertEqual("one", root.Get("m").Get("1").Text())
	})

	t.Run("Errors", func(t *testing.T) {
		root := helper.MustParse(pathTestDoc)
		before := root.String()

		helper.AssertErrorIs(root.SetPath("", NewInt(1)), ErrInvalidPath)
		helper.AssertErrorIs(root.SetPath("a[", NewInt(1)), ErrInvalidPath)
		helper.AssertErrorIs(root.SetPath("s.x.y", NewInt(1)), ErrTypeMismatch)
		helper.AssertEqual(before, root.String())
	})
}

func TestDeletePath(t *testing.T) {
	helper := NewTestHelper(t)

	root := helper.MustParse(pathTestDoc)

	removed := root.DeletePath("users[0]")
	require.NotNil(t, removed)
	helper.AssertEqual("Alice", removed.Get("name").Text())
	helper.AssertEqual(1, root.Get("users").Len())

	helper.AssertEqual(1, root.DeletePath("/a~1b/~0k").Int())
	helper.AssertEqual(0, root.Get("a/b").Len())

	helper.AssertEqual("zero", root.DeletePath("m.0").Text())
	helper.AssertEqual("ten", root.DeletePath("10").Text())
	helper.AssertFalse(root.HasKey("10"))

	for _, path := range []string{"", "missing.x", "users[9]", "s.x", "users[0"} {
		helper.AssertNil(root.DeletePath(path), path)
	}
}

func TestPathRef(t *testing.T) {
	helper := NewTestHelper(t)
	root := helper.MustParse(pathTestDoc)

	r, err := root.PathRef("users[1].age")
	require.NoError(t, err)
	helper.AssertFalse(r.Exists())
	helper.AssertFalse(root.GetPath("users[1]").HasKey("age"))

	helper.AssertNoError(r.SetInt(30))
	helper.AssertEqual(30, root.GetPath("users.1.age").Int())
	helper.AssertEqual("users[1].age", r.Path())

	_, err = root.PathRef("")
	helper.AssertErrorIs(err, ErrInvalidPath)

	var nodeErr *NodeError
	require.True(t, errors.As(err, &nodeErr))
	helper.AssertEqual("path", nodeErr.Op)
}
