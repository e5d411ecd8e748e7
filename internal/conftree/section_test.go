package conftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyrig/chassis/internal/atom"
	"github.com/skyrig/chassis/internal/entityid"
)

// buildTree constructs:
//
//	app (value "demo")
//	├── $timeout = 30
//	├── log
//	│   ├── $level = debug
//	│   └── sink[0] (value "file"),  sink[1] (value "stdout")
//	│       └── sink[file] has $path = /var/log/app.log
//	└── db (value "main") with $dsn
func buildTree() *Section {
	root := NewRoot("app", "demo")
	root.AddAttr("timeout", "30")

	log := root.AddSection("log", "")
	log.AddAttr("level", "debug")
	fileSink := log.AddSection("sink", "file")
	fileSink.AddAttr("path", "/var/log/app.log")
	log.AddSection("sink", "stdout")

	db := root.AddSection("db", "main")
	db.AddAttr("dsn", "dealer::I9973OD")
	return root
}

func TestLookupsAndSentinels(t *testing.T) {
	root := buildTree()

	assert.Equal(t, "app", root.Name())
	assert.Equal(t, "demo", root.Value())
	assert.True(t, root.IsRoot())

	log := root.Child("log")
	require.True(t, log.Exists())
	assert.Equal(t, "debug", log.Attr("level").Value())

	// Case-insensitive name matching.
	assert.True(t, root.Child("LOG").Exists())
	assert.True(t, log.Attr("LEVEL").Exists())

	// Misses return sentinels, never nil.
	ghost := root.Child("ghost")
	require.NotNil(t, ghost)
	assert.False(t, ghost.Exists())
	assert.False(t, ghost.Attr("anything").Exists())
	assert.Same(t, EmptySection(), ghost)

	assert.False(t, root.ChildAt(99).Exists())
	assert.False(t, log.AttrAt(-1).Exists())
}

func TestNavigate(t *testing.T) {
	root := buildTree()
	log := root.Child("log")

	testCases := []struct {
		name     string
		from     *Section
		path     string
		expected string // expected Value() of the target
		exists   bool
	}{
		{name: "attr from root", from: root, path: "log/$level", expected: "debug", exists: true},
		{name: "root-anchored from nested", from: log, path: "/db/$dsn", expected: "dealer::I9973OD", exists: true},
		{name: "parent step", from: log, path: "../db", expected: "main", exists: true},
		{name: "child by index", from: log, path: "[0]", expected: "file", exists: true},
		{name: "attr by index", from: log, path: "$[0]", expected: "debug", exists: true},
		{name: "child by value query", from: root, path: "log/sink[stdout]", expected: "stdout", exists: true},
		{name: "child by attr query", from: root, path: "log/sink[path=/var/log/app.log]", expected: "file", exists: true},
		{name: "miss is sentinel", from: root, path: "log/ghost", exists: false},
		{name: "query miss is sentinel", from: root, path: "log/sink[syslog]", exists: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := tc.from.Navigate(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.exists, node.Exists())
			if tc.exists {
				assert.Equal(t, tc.expected, node.Value())
			}
		})
	}
}

func TestNavigateErrors(t *testing.T) {
	root := buildTree()

	_, err := root.Navigate("")
	require.Error(t, err)

	_, err = root.Navigate("log/$level/deeper")
	require.Error(t, err, "attributes cannot be navigated into")

	_, err = root.Navigate("log/[zz]")
	require.Error(t, err)

	// Required prefix turns a miss into an error.
	_, err = root.Navigate("!log/ghost")
	require.Error(t, err)

	node, err := root.Navigate("!log/$level")
	require.NoError(t, err)
	assert.Equal(t, "debug", node.Value())
}

func TestPath(t *testing.T) {
	root := buildTree()

	assert.Equal(t, "/", root.Path())
	assert.Equal(t, "/log", root.Child("log").Path())
	assert.Equal(t, "/log/$level", root.Child("log").Attr("level").Path())
	assert.Equal(t, "/db/$dsn", root.Child("db").Attr("dsn").Path())

	// Duplicate names render as indexes.
	log := root.Child("log")
	assert.Equal(t, "/log/[0]", log.ChildAt(0).Path())
	assert.Equal(t, "/log/[1]", log.ChildAt(1).Path())
}

func TestTypedGetters(t *testing.T) {
	root := buildTree()

	timeout, err := root.Attr("timeout").AsInt(0)
	require.NoError(t, err)
	assert.Equal(t, int64(30), timeout)

	// Absent nodes return defaults without error.
	v, err := root.Attr("ghost").AsInt(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, "fallback", root.Child("ghost").AsString("fallback"))

	// Conversion failures surface as errors, not zero values.
	_, err = root.Child("db").Attr("dsn").AsInt(0)
	require.Error(t, err)

	id, err := root.Child("db").Attr("dsn").AsEntityID(entityid.EntityID{})
	require.NoError(t, err)
	assert.Equal(t, "dealer::I9973OD", id.String())

	a, err := root.AsAtom(atom.Zero)
	require.NoError(t, err)
	assert.Equal(t, "demo", a.String())

	_, err = root.Child("log").Attr("level").AsBool(false)
	require.Error(t, err, "debug is not a boolean")

	f, err := root.Attr("timeout").AsFloat(0)
	require.NoError(t, err)
	assert.Equal(t, 30.0, f)
}
