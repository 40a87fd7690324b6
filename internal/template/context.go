package template

import (
	"path"
	"strings"

	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/pkg/models"
)

// TemplateContext provides data for rendering the scaffold's template
// fragments. It is derived once from a Configuration and read by every
// file spec, so no two files can disagree about naming or features.
type TemplateContext struct {
	// Project
	ProjectName string
	Slug        string // Derived package and database name.

	// Package manager
	PackageManager string
	InstallArgv    []string // e.g. ["npm", "install"]
	InstallCommand string   // e.g. "npm install"
	DevCommand     string   // e.g. "npm run dev"
	StartCommand   string   // e.g. "npm run start"

	// Module style
	Style ModuleStyle
	Ext   string // "js" or "mjs"
	Entry string // Entry point path, e.g. "src/app.js"

	// Features
	IncludeAuth bool

	// Runtime environment defaults written to .env
	Port         string
	MongoURI     string
	JWTSecret    string
	JWTExpiresIn string

	// Route mounts
	ExampleMount string
	AuthMount    string
}

// NewTemplateContext derives the rendering context for cfg.
func NewTemplateContext(cfg models.Configuration) *TemplateContext {
	style := StyleFor(cfg.ModuleSystem)
	slug := cfg.Slug()
	pm := cfg.PackageManager
	if !pm.IsValid() {
		pm = models.PackageManagerNPM
	}

	return &TemplateContext{
		ProjectName:    cfg.ProjectName,
		Slug:           slug,
		PackageManager: string(pm),
		InstallArgv:    pm.InstallCommand(),
		InstallCommand: strings.Join(pm.InstallCommand(), " "),
		DevCommand:     pm.RunScript("dev"),
		StartCommand:   pm.RunScript("start"),
		Style:          style,
		Ext:            style.Ext(),
		Entry:          style.FilePath(moduleApp),
		IncludeAuth:    cfg.IncludeAuth,
		Port:           defs.DefaultPort,
		MongoURI:       "mongodb://localhost:27017/" + slug + "-db",
		JWTSecret:      defs.DefaultJWTSecret,
		JWTExpiresIn:   defs.DefaultJWTExpiresIn,
		ExampleMount:   defs.ExampleMount,
		AuthMount:      defs.AuthMount,
	}
}

// Endpoint is an HTTP route exposed by the generated server.
type Endpoint struct {
	Method      string
	Path        string
	Description string
	Protected   bool // Requires a bearer token.
}

// Endpoints lists the routes the generated server registers.
func (c *TemplateContext) Endpoints() []Endpoint {
	eps := []Endpoint{
		{Method: "GET", Path: "/", Description: "Health check"},
		{Method: "GET", Path: c.ExampleMount, Description: "List users"},
		{Method: "POST", Path: c.ExampleMount, Description: "Create a user", Protected: c.IncludeAuth},
	}
	if c.IncludeAuth {
		eps = append(eps,
			Endpoint{Method: "POST", Path: path.Join(c.AuthMount, "register"), Description: "Register and receive a token"},
			Endpoint{Method: "POST", Path: path.Join(c.AuthMount, "login"), Description: "Log in and receive a token"},
			Endpoint{Method: "GET", Path: path.Join(c.AuthMount, "me"), Description: "Current user", Protected: true},
		)
	}
	return eps
}

// EnvVar is a variable written to .env.
type EnvVar struct {
	Name  string
	Value string
}

// EnvVars lists the .env entries in file order.
func (c *TemplateContext) EnvVars() []EnvVar {
	vars := []EnvVar{
		{Name: defs.EnvPort, Value: c.Port},
		{Name: defs.EnvMongoURI, Value: c.MongoURI},
	}
	if c.IncludeAuth {
		vars = append(vars,
			EnvVar{Name: defs.EnvJWTSecret, Value: c.JWTSecret},
			EnvVar{Name: defs.EnvJWTExpiresIn, Value: c.JWTExpiresIn},
		)
	}
	return vars
}
