package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type Pages struct {
	home  *template.Template
	games *template.Template
}

func NewPages() (*Pages, error) {
	funcs := template.FuncMap{"euro": Euro}

	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}

	home, err := extend(base, "templates/home.html")
	if err != nil {
		return nil, err
	}
	games, err := extend(base, "templates/games.html")
	if err != nil {
		return nil, err
	}
	return &Pages{home: home, games: games}, nil
}

// extend parses a page on top of its own copy of the layout.
func extend(base *template.Template, page string) (*template.Template, error) {
	t, err := base.Clone()
	if err != nil {
		return nil, err
	}
	return t.ParseFS(templateFS, page)
}

func (p *Pages) Render(w io.Writer, v View) error {
	if v.Page == PageHome {
		return p.home.Execute(w, v)
	}
	return p.games.Execute(w, v)
}
