package view_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/core/view"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
)

func defaultViewConfig() *config.ViewConfig {
	return &config.NewConfig().Pipelines.View
}

func TestTemplateResolver_ResolveAndRender(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/index.html":       {Data: []byte("<title>{{ .Title }}</title>")},
		"templates/admin/about.html": {Data: []byte("about")},
		"templates/notes.txt":        {Data: []byte("ignored")},
	}

	r, err := view.NewTemplateResolver(fsys, defaultViewConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin/about", "index"}, r.Names())

	v, err := r.Resolve("index")
	require.NoError(t, err)
	assert.Equal(t, "index", v.Name())

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, map[string]any{"Title": "<Welcome>"}))
	assert.Equal(t, "<title>&lt;Welcome&gt;</title>", buf.String())
}

func TestTemplateResolver_RenderNilModel(t *testing.T) {
	fsys := fstest.MapFS{"templates/index.html": {Data: []byte("<title>static</title>")}}

	r, err := view.NewTemplateResolver(fsys, defaultViewConfig())
	require.NoError(t, err)
	v, err := r.Resolve("index")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf, nil))
	assert.Equal(t, "<title>static</title>", buf.String())
}

func TestTemplateResolver_UnknownView(t *testing.T) {
	fsys := fstest.MapFS{"templates/index.html": {Data: []byte("x")}}

	r, err := view.NewTemplateResolver(fsys, defaultViewConfig())
	require.NoError(t, err)

	_, err = r.Resolve("missing")
	assert.ErrorIs(t, err, exception.ErrViewNotFound)
	assert.Contains(t, err.Error(), "templates/missing.html")
}

func TestTemplateResolver_CustomPrefixAndSuffix(t *testing.T) {
	fsys := fstest.MapFS{"pages/index.tmpl": {Data: []byte("tmpl")}}

	r, err := view.NewTemplateResolver(fsys, &config.ViewConfig{Prefix: "pages/", Suffix: ".tmpl"})
	require.NoError(t, err)
	_, err = r.Resolve("index")
	assert.NoError(t, err)
}

func TestTemplateResolver_StartupFailures(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		fsys := fstest.MapFS{"templates/index.html": {Data: []byte("{{ .Title ")}}
		_, err := view.NewTemplateResolver(fsys, defaultViewConfig())
		require.Error(t, err)
		assert.True(t, exception.IsAppError(err))
		assert.Contains(t, err.Error(), "templates/index.html")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := view.NewTemplateResolver(fstest.MapFS{}, defaultViewConfig())
		assert.Error(t, err)
	})

	t.Run("no matching files", func(t *testing.T) {
		fsys := fstest.MapFS{"templates/readme.md": {Data: []byte("x")}}
		_, err := view.NewTemplateResolver(fsys, defaultViewConfig())
		assert.Error(t, err)
	})
}
