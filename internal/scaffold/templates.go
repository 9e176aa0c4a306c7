package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed all:templates
var templateFS embed.FS

// DefaultTemplateName is the template used when none is requested.
const DefaultTemplateName = "minimal"

// sourceDirToken is the template directory that expands to the project's
// source root.
const sourceDirToken = "__source__"

// Template describes a starter layout.
type Template struct {
	// Name is the template identifier (minimal, app).
	Name string

	// Description explains what the template adds.
	Description string

	// Default indicates the template used when --template is omitted.
	Default bool
}

var templates = map[string]Template{
	"minimal": {
		Name:        "minimal",
		Description: "Manifest and source directory only",
		Default:     true,
	},
	"app": {
		Name:        "app",
		Description: "Runnable application with a main function, README and .gitignore",
	},
}

// GetTemplate returns a template by name.
func GetTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(TemplateNames(), ", "))
	}
	return t, nil
}

// Templates returns all available templates.
func Templates() []Template {
	return []Template{templates["minimal"], templates["app"]}
}

// TemplateNames returns all template names.
func TemplateNames() []string {
	return []string{"minimal", "app"}
}

// TemplateData holds the values substituted into template files.
type TemplateData struct {
	Name        string
	Group       string
	Version     string
	Description string
}

// File is a rendered template file.
type File struct {
	// SourcePath is the path within the embedded filesystem.
	SourcePath string

	// TargetPath is the slash-separated output path relative to the project
	// directory, with the source token expanded and the .tmpl suffix removed.
	TargetPath string

	Content []byte
}

// renderTemplate renders every file of the named template. sourceRel is the
// slash-separated source root relative to the project directory.
func renderTemplate(name, sourceRel string, data TemplateData) ([]File, error) {
	root := path.Join("templates", name)
	if _, err := fs.Stat(templateFS, root); err != nil {
		// Templates without extra files have no directory.
		return nil, nil
	}

	var files []File
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".tmpl") {
			return nil
		}

		content, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}

		rendered, err := renderFile(p, content, data)
		if err != nil {
			return err
		}

		files = append(files, File{
			SourcePath: p,
			TargetPath: targetPath(strings.TrimPrefix(p, root+"/"), sourceRel),
			Content:    rendered,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking template %s: %w", name, err)
	}
	return files, nil
}

func renderFile(name string, content []byte, data TemplateData) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// targetPath maps a template-relative path to its output path: the source
// token becomes the source root, a "dot-" prefix becomes ".", and the .tmpl
// suffix is dropped.
func targetPath(rel, sourceRel string) string {
	segs := strings.Split(strings.TrimSuffix(rel, ".tmpl"), "/")
	for i, s := range segs {
		if s == sourceDirToken {
			segs[i] = sourceRel
		}
	}
	last := len(segs) - 1
	if strings.HasPrefix(segs[last], "dot-") {
		segs[last] = "." + strings.TrimPrefix(segs[last], "dot-")
	}
	return path.Join(segs...)
}
