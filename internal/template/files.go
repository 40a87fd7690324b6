package template

import (
	"path"

	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/internal/manifest"
)

// Module IDs of the generated sources. The file path is the ID plus the
// style's extension.
var (
	moduleApp               = path.Join(defs.SrcDir, "app")
	moduleDB                = path.Join(defs.ConfigDir, "db")
	moduleUser              = path.Join(defs.ModelsDir, "User.model")
	moduleExampleController = path.Join(defs.ControllersDir, "example.controller")
	moduleExampleRoute      = path.Join(defs.RoutesDir, "example.route")
	moduleAuthController    = path.Join(defs.ControllersDir, "auth.controller")
	moduleAuthRoute         = path.Join(defs.RoutesDir, "auth.route")
	moduleAuthMiddleware    = path.Join(defs.MiddlewaresDir, "auth.middleware")
)

// fileSpec produces one file of the scaffold. Both functions are pure in
// the TemplateContext.
type fileSpec struct {
	auth    bool // Emitted only when the auth feature is enabled.
	path    func(c *TemplateContext) string
	content func(e *Engine, c *TemplateContext) (string, error)
}

// sourceSpec builds a fileSpec for a JavaScript module whose body comes
// from the named template fragment.
func sourceSpec(module, fragment string, auth bool, imports func(c *TemplateContext) []Import, defaultExport string) fileSpec {
	return fileSpec{
		auth: auth,
		path: func(c *TemplateContext) string { return c.Style.FilePath(module) },
		content: func(e *Engine, c *TemplateContext) (string, error) {
			body, err := e.renderer.Render(fragment, c)
			if err != nil {
				return "", err
			}
			return c.Style.Render(Source{
				Module:  module,
				Imports: imports(c),
				Body:    string(body),
				Default: defaultExport,
			}), nil
		},
	}
}

// staticPath returns a path function for a file whose name never varies.
func staticPath(p string) func(*TemplateContext) string {
	return func(*TemplateContext) string { return p }
}

// fileSpecs returns the ordered list composed by Engine.Compose.
func fileSpecs() []fileSpec {
	return []fileSpec{
		sourceSpec(moduleApp, "app.js.tmpl", false, func(c *TemplateContext) []Import {
			imps := []Import{
				{Default: "express", Package: manifest.Express.Name},
				{Default: "dotenv", Package: manifest.Dotenv.Name},
				{Default: "connectDB", Module: moduleDB},
				{Default: "exampleRoute", Module: moduleExampleRoute},
			}
			if c.IncludeAuth {
				imps = append(imps, Import{Default: "authRoute", Module: moduleAuthRoute})
			}
			return imps
		}, ""),

		sourceSpec(moduleDB, "db.js.tmpl", false, func(*TemplateContext) []Import {
			return []Import{
				{Default: "mongoose", Package: manifest.Mongoose.Name},
				{Default: "dotenv", Package: manifest.Dotenv.Name},
			}
		}, "connectDB"),

		sourceSpec(moduleUser, "user.model.js.tmpl", false, func(c *TemplateContext) []Import {
			imps := []Import{{Default: "mongoose", Package: manifest.Mongoose.Name}}
			if c.IncludeAuth {
				imps = append(imps,
					Import{Default: "bcrypt", Package: manifest.BcryptJS.Name},
					Import{Default: "jwt", Package: manifest.JSONWebToken.Name},
				)
			}
			return imps
		}, "mongoose.model('User', userSchema)"),

		sourceSpec(moduleExampleController, "example.controller.js.tmpl", false, func(*TemplateContext) []Import {
			return []Import{{Default: "User", Module: moduleUser}}
		}, ""),

		sourceSpec(moduleExampleRoute, "example.route.js.tmpl", false, func(c *TemplateContext) []Import {
			imps := []Import{
				{Default: "express", Package: manifest.Express.Name},
				{Named: []string{"getAllUsers", "createUser"}, Module: moduleExampleController},
			}
			if c.IncludeAuth {
				imps = append(imps, Import{Named: []string{"protect"}, Module: moduleAuthMiddleware})
			}
			return imps
		}, "router"),

		sourceSpec(moduleAuthController, "auth.controller.js.tmpl", true, func(*TemplateContext) []Import {
			return []Import{{Default: "User", Module: moduleUser}}
		}, ""),

		sourceSpec(moduleAuthRoute, "auth.route.js.tmpl", true, func(*TemplateContext) []Import {
			return []Import{
				{Default: "express", Package: manifest.Express.Name},
				{Named: []string{"register", "login", "getMe"}, Module: moduleAuthController},
				{Named: []string{"protect"}, Module: moduleAuthMiddleware},
			}
		}, "router"),

		sourceSpec(moduleAuthMiddleware, "auth.middleware.js.tmpl", true, func(*TemplateContext) []Import {
			return []Import{
				{Default: "jwt", Package: manifest.JSONWebToken.Name},
				{Default: "User", Module: moduleUser},
			}
		}, ""),

		{
			path: staticPath(defs.EnvFile),
			content: func(e *Engine, c *TemplateContext) (string, error) {
				out, err := e.renderer.Render("env.tmpl", c)
				return string(out), err
			},
		},

		{
			path: staticPath(defs.GitignoreFile),
			content: func(e *Engine, c *TemplateContext) (string, error) {
				out, err := e.renderer.Render("gitignore.tmpl", c)
				return string(out), err
			},
		},

		{
			path:    staticPath(defs.ReadmeFile),
			content: readmeContent,
		},

		{
			path: staticPath(defs.PackageJSON),
			content: func(_ *Engine, c *TemplateContext) (string, error) {
				return string(packageManifest(c).Bytes()), nil
			},
		},
	}
}

// activeSpecs returns the specs emitted for c, in composition order.
func activeSpecs(c *TemplateContext) []fileSpec {
	all := fileSpecs()
	specs := make([]fileSpec, 0, len(all))
	for _, spec := range all {
		if spec.auth && !c.IncludeAuth {
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// packageManifest builds the package.json model for c.
func packageManifest(c *TemplateContext) *manifest.PackageJSON {
	return manifest.New(manifest.Options{
		Name:        c.Slug,
		Entry:       c.Entry,
		Type:        c.Style.PackageType(),
		IncludeAuth: c.IncludeAuth,
	})
}

// sourceDir documents a directory holding generated sources.
type sourceDir struct {
	Path        string
	Description string
}

var sourceDirs = []sourceDir{
	{defs.ConfigDir, "Database configuration"},
	{defs.ControllersDir, "Business logic for routes"},
	{defs.ModelsDir, "Mongoose schemas and models"},
	{defs.RoutesDir, "API route definitions"},
	{defs.MiddlewaresDir, "Custom Express middlewares"},
}

// readmeExample is a generated source quoted in the README quick start.
type readmeExample struct {
	Label string
	Path  string
	Code  string
}

// quickStartModules are quoted in the README, in this order.
var quickStartModules = []struct{ label, module string }{
	{"Model", moduleUser},
	{"Controller", moduleExampleController},
	{"Route", moduleExampleRoute},
}

// readmeData is the README fragment's input.
type readmeData struct {
	*TemplateContext
	Dirs     []sourceDir
	Files    []string
	Examples []readmeExample
}

// readmeContent documents exactly the files and endpoints emitted for c.
func readmeContent(e *Engine, c *TemplateContext) (string, error) {
	var files []string
	used := make(map[string]bool)
	specs := make(map[string]fileSpec)
	for _, spec := range activeSpecs(c) {
		p := spec.path(c)
		files = append(files, p)
		used[path.Dir(p)] = true
		specs[p] = spec
	}

	var dirs []sourceDir
	for _, d := range sourceDirs {
		if used[d.Path] {
			dirs = append(dirs, d)
		}
	}

	examples := make([]readmeExample, 0, len(quickStartModules))
	for _, m := range quickStartModules {
		p := c.Style.FilePath(m.module)
		code, err := specs[p].content(e, c)
		if err != nil {
			return "", err
		}
		examples = append(examples, readmeExample{Label: m.label, Path: p, Code: code})
	}

	out, err := e.renderer.Render("README.md.tmpl", readmeData{
		TemplateContext: c,
		Dirs:            dirs,
		Files:           files,
		Examples:        examples,
	})
	return string(out), err
}
