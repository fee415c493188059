package apidocs

import (
	"bytes"
	"html/template"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
)

type Opts func(*config)

// configures the Doc middlewares
type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
	// When this return value is false, 403 will be responsed.
	Authorizer func(*http.Request) bool
}

// WithAuthorizer restricts access to the documentation pages.
func WithAuthorizer(authorizer func(*http.Request) bool) Opts {
	return func(cfg *config) {
		cfg.Authorizer = authorizer
	}
}

// Doc creates a middleware serving an API reference page and the raw OpenAPI
// document under basePath. Register it with echo.Pre so it runs before routing.
func Doc(basePath string, apiJSON []byte, opts ...Opts) echo.MiddlewareFunc {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	docPath := path.Join(basePath, "apidocs")

	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, cfg)
	uiHTML := buf.String()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			if reqPath != docPath && reqPath != cfg.SpecURL {
				return next(c)
			}

			if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
				return c.String(http.StatusForbidden, "Forbidden")
			}

			if reqPath == docPath {
				return c.HTML(http.StatusOK, uiHTML)
			}
			return c.JSONBlob(http.StatusOK, apiJSON)
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>API documentation</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
