package confhcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBuildsTree(t *testing.T) {
	text := `
id          = "demo"
environment = "prod"

log {
  level = "debug"

  sink "file" {
    path = "/var/log/app.log"
  }
}

db "main" {
  timeout = 30
  replica = false
}
`
	root, err := Read("main.cfg", text)
	require.NoError(t, err)

	assert.Equal(t, RootName, root.Name())
	assert.Equal(t, "demo", root.Attr("id").Value())
	assert.Equal(t, "prod", root.Attr("environment").Value())

	log := root.Child("log")
	require.True(t, log.Exists())
	assert.Equal(t, "debug", log.Attr("level").Value())

	sink := log.Child("sink")
	require.True(t, sink.Exists())
	assert.Equal(t, "file", sink.Value(), "first block label becomes the section value")
	assert.Equal(t, "/var/log/app.log", sink.Attr("path").Value())

	db := root.Child("db")
	require.True(t, db.Exists())
	timeout, err := db.Attr("timeout").AsInt(0)
	require.NoError(t, err)
	assert.Equal(t, int64(30), timeout)
	replica, err := db.Attr("replica").AsBool(true)
	require.NoError(t, err)
	assert.False(t, replica)
}

func TestReadAttributeSourceOrder(t *testing.T) {
	root, err := Read("order.cfg", "b = 1\na = 2\nc = 3\n")
	require.NoError(t, err)

	attrs := root.Attrs()
	require.Len(t, attrs, 3)
	assert.Equal(t, "b", attrs[0].Name())
	assert.Equal(t, "a", attrs[1].Name())
	assert.Equal(t, "c", attrs[2].Name())
}

func TestReadNavigationContract(t *testing.T) {
	root, err := Read("nav.cfg", `
log {
  level = "debug"
  sink "file" { path = "/tmp/x" }
  sink "stdout" {}
}
`)
	require.NoError(t, err)

	node, err := root.Navigate("log/sink[file]/$path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", node.Value())
}

func TestReadErrors(t *testing.T) {
	// Syntax error.
	_, err := Read("bad.cfg", "log {\n  level = ")
	require.Error(t, err)

	// Unresolved traversal: the pipeline should have expanded everything
	// before the reader runs.
	_, err = Read("trav.cfg", "a = some.variable\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "self-contained")
}
