package template

import (
	"strings"
	"testing"
)

func TestModuleStyleSpecifier(t *testing.T) {
	tests := []struct {
		style    ModuleStyle
		importer string
		target   string
		want     string
	}{
		{CommonJS, "src/app", "src/config/db", "./config/db"},
		{ESModule, "src/app", "src/config/db", "./config/db.mjs"},
		{CommonJS, "src/routes/example.route", "src/controllers/example.controller", "../controllers/example.controller"},
		{ESModule, "src/routes/auth.route", "src/middlewares/auth.middleware", "../middlewares/auth.middleware.mjs"},
		{CommonJS, "src/controllers/a", "src/controllers/b", "./b"},
		{CommonJS, "index", "src/app", "./src/app"},
	}

	for _, tt := range tests {
		t.Run(tt.style.String()+"_"+tt.importer, func(t *testing.T) {
			if got := tt.style.Specifier(tt.importer, tt.target); got != tt.want {
				t.Errorf("Specifier(%q, %q) = %q, want %q", tt.importer, tt.target, got, tt.want)
			}
		})
	}
}

func TestModuleStyleImportStatement(t *testing.T) {
	tests := []struct {
		name  string
		style ModuleStyle
		imp   Import
		want  string
	}{
		{"cjs_default_package", CommonJS, Import{Default: "express", Package: "express"}, "const express = require('express');"},
		{"esm_default_package", ESModule, Import{Default: "express", Package: "express"}, "import express from 'express';"},
		{"cjs_named_module", CommonJS, Import{Named: []string{"a", "b"}, Module: "src/x"}, "const { a, b } = require('./x');"},
		{"esm_named_module", ESModule, Import{Named: []string{"a", "b"}, Module: "src/x"}, "import { a, b } from './x.mjs';"},
		{"esm_default_and_named", ESModule, Import{Default: "d", Named: []string{"n"}, Package: "p"}, "import d, { n } from 'p';"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.ImportStatement("src/app", tt.imp); got != tt.want {
				t.Errorf("ImportStatement = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModuleStyleExports(t *testing.T) {
	if got := CommonJS.ExportConst("login"); got != "exports.login" {
		t.Errorf("CommonJS.ExportConst = %q", got)
	}
	if got := ESModule.ExportConst("login"); got != "export const login" {
		t.Errorf("ESModule.ExportConst = %q", got)
	}
	if got := CommonJS.DefaultExport("router"); got != "module.exports = router;" {
		t.Errorf("CommonJS.DefaultExport = %q", got)
	}
	if got := ESModule.DefaultExport("router"); got != "export default router;" {
		t.Errorf("ESModule.DefaultExport = %q", got)
	}
	if CommonJS.PackageType() != "" || ESModule.PackageType() != "module" {
		t.Error("unexpected package types")
	}
}

func TestModuleStyleRender(t *testing.T) {
	src := Source{
		Module:  "src/routes/example.route",
		Imports: []Import{{Default: "express", Package: "express"}},
		Body:    "\nconst router = express.Router();\n\n",
		Default: "router",
	}

	got := ESModule.Render(src)
	want := "import express from 'express';\n\nconst router = express.Router();\n\nexport default router;\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	noImports := CommonJS.Render(Source{Module: "src/a", Body: "x();"})
	if noImports != "x();\n" {
		t.Errorf("Render without imports = %q", noImports)
	}
	if strings.Contains(noImports, "module.exports") {
		t.Error("default export emitted without Default")
	}
}
