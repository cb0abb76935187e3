package view

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

const moduleName = "view"

// TemplateResolver resolves views to html/template files read from an fs.FS.
// All templates below the prefix are parsed once, at construction.
type TemplateResolver struct {
	prefix    string
	suffix    string
	templates map[string]*template.Template
}

// NewTemplateResolver parses every "<prefix>**/*<suffix>" file in fsys.
// The view name of a file is its path with prefix and suffix removed,
// so "templates/index.html" becomes "index".
func NewTemplateResolver(fsys fs.FS, cfg *config.ViewConfig) (*TemplateResolver, error) {
	root := strings.TrimSuffix(cfg.Prefix, "/")
	if root == "" {
		root = "."
	}

	r := &TemplateResolver{
		prefix:    cfg.Prefix,
		suffix:    cfg.Suffix,
		templates: make(map[string]*template.Template),
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, cfg.Suffix) {
			return nil
		}
		name := r.viewName(p, root)
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		tpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("template %s: %w", p, err)
		}
		r.templates[name] = tpl
		return nil
	})
	if err != nil {
		return nil, exception.NewAppError(moduleName, "failed to load templates", err)
	}
	if len(r.templates) == 0 {
		return nil, exception.NewAppErrorf(moduleName, "no '*%s' templates found under '%s'", cfg.Suffix, cfg.Prefix)
	}

	logger.Debugf("Loaded views: %s", strings.Join(r.Names(), ", "))
	return r, nil
}

func (r *TemplateResolver) viewName(p, root string) string {
	name := p
	if root != "." {
		name = strings.TrimPrefix(name, root+"/")
	}
	return strings.TrimSuffix(name, r.suffix)
}

// Resolve returns the view registered under name.
// Unknown names yield an error wrapping exception.ErrViewNotFound.
func (r *TemplateResolver) Resolve(name string) (View, error) {
	tpl, ok := r.templates[path.Clean(name)]
	if !ok {
		return nil, exception.NewAppErrorf(moduleName, "cannot resolve view '%s' (%s%s%s)", name, r.prefix, name, r.suffix, exception.ErrViewNotFound)
	}
	return &templateView{name: name, tpl: tpl}, nil
}

// Names returns the sorted names of all loaded views.
func (r *TemplateResolver) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type templateView struct {
	name string
	tpl  *template.Template
}

func (v *templateView) Name() string { return v.name }

func (v *templateView) Render(w io.Writer, model map[string]any) error {
	return v.tpl.Execute(w, model)
}

var _ Resolver = (*TemplateResolver)(nil)
