package component

import (
	"path"
	"strings"

	"github.com/go-drift/lite/pkg/core"
)

// Definition describes a component type.
type Definition struct {
	// Tag is the element name the definition mounts on, e.g. "count-component".
	Tag string

	// Dir is the directory, within the loader's file system, holding the
	// default template and style files.
	Dir string

	// Template is inline markup. When empty the markup is loaded from
	// TemplatePath, which defaults to Dir/<Base>.html.
	Template     string
	TemplatePath string

	// Style is inline CSS. When empty the style is loaded from StylePath,
	// which defaults to Dir/<Base>.css. A missing style is not an error.
	Style     string
	StylePath string

	// Setup runs before the template is inserted. It declares state.
	Setup func(*Scope)

	// Bind runs after the template is inserted. It registers handlers.
	Bind func(*Instance)

	// Teardown runs when the instance is released.
	Teardown func(*Instance)
}

// Scope is what Setup sees.
type Scope struct {
	Component *core.Component
}

// Base returns the capitalised first dash-separated segment of the tag:
// "count-component" becomes "Count".
func (d *Definition) Base() string {
	name, _, _ := strings.Cut(d.Tag, "-")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (d *Definition) templatePath() string {
	if d.TemplatePath != "" {
		return d.TemplatePath
	}
	return path.Join(d.Dir, d.Base()+".html")
}

func (d *Definition) stylePath() string {
	if d.StylePath != "" {
		return d.StylePath
	}
	return path.Join(d.Dir, d.Base()+".css")
}
