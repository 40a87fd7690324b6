package template

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRendererRender(t *testing.T) {
	t.Run("successful_render", func(t *testing.T) {
		fs := fstest.MapFS{
			"README.md.tmpl": &fstest.MapFile{
				Data: []byte("# {{.ProjectName}}\n\nPort: {{.Port}}\n"),
			},
		}
		r := NewRenderer(fs)

		data := map[string]string{
			"ProjectName": "shop-api",
			"Port":        "5000",
		}

		result, err := r.Render("README.md.tmpl", data)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}

		expected := "# shop-api\n\nPort: 5000\n"
		if string(result) != expected {
			t.Errorf("Render result = %q, want %q", string(result), expected)
		}
	})

	t.Run("missing_key_strict_mode", func(t *testing.T) {
		fs := fstest.MapFS{
			"test.tmpl": &fstest.MapFile{
				Data: []byte("app.use('{{.Mount}}', {{.Router}});"),
			},
		}
		r := NewRenderer(fs)

		data := map[string]string{"Mount": "/api/example"}

		_, err := r.Render("test.tmpl", data)
		if err == nil {
			t.Fatal("expected error for missing key")
		}
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("expected ErrMissingTemplateKey, got: %v", err)
		}
	})

	t.Run("nonexistent_template", func(t *testing.T) {
		r := NewRenderer(fstest.MapFS{})

		_, err := r.Render("nonexistent.tmpl", nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got: %v", err)
		}
	})

	t.Run("parse_error", func(t *testing.T) {
		fs := fstest.MapFS{
			"broken.tmpl": &fstest.MapFile{Data: []byte("{{if .X}}never closed")},
		}
		r := NewRenderer(fs)

		_, err := r.Render("broken.tmpl", map[string]bool{"X": true})
		if err == nil {
			t.Fatal("expected parse error")
		}
		if errors.Is(err, ErrMissingTemplateKey) || errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("parse error wrapped as wrong sentinel: %v", err)
		}
	})

	t.Run("data_delimiters_written_verbatim", func(t *testing.T) {
		fs := fstest.MapFS{
			"name.tmpl": &fstest.MapFile{Data: []byte("name: {{.Name}}")},
		}
		r := NewRenderer(fs)

		result, err := r.Render("name.tmpl", map[string]string{"Name": "API {{v2}}"})
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if string(result) != "name: API {{v2}}" {
			t.Errorf("result = %q", result)
		}
	})

	t.Run("javascript_template_literal_allowed", func(t *testing.T) {
		fs := fstest.MapFS{
			"db.tmpl": &fstest.MapFile{
				Data: []byte("console.log(`MongoDB Connected: ${conn.connection.host}`);"),
			},
		}
		r := NewRenderer(fs)

		result, err := r.Render("db.tmpl", nil)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(result), "${conn.connection.host}") {
			t.Errorf("template literal lost: %s", result)
		}
	})

	t.Run("conditionals", func(t *testing.T) {
		fs := fstest.MapFS{
			"route.tmpl": &fstest.MapFile{
				Data: []byte(`router.post('/', {{if .IncludeAuth}}protect, {{end}}createUser);`),
			},
		}
		r := NewRenderer(fs)

		tests := []struct {
			auth bool
			want string
		}{
			{true, "router.post('/', protect, createUser);"},
			{false, "router.post('/', createUser);"},
		}
		for _, tt := range tests {
			result, err := r.Render("route.tmpl", map[string]bool{"IncludeAuth": tt.auth})
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if string(result) != tt.want {
				t.Errorf("auth=%v: result = %q, want %q", tt.auth, result, tt.want)
			}
		}
	})

	t.Run("empty_template", func(t *testing.T) {
		fs := fstest.MapFS{
			"empty.tmpl": &fstest.MapFile{Data: []byte("")},
		}
		r := NewRenderer(fs)

		result, err := r.Render("empty.tmpl", nil)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("result = %q, want empty", result)
		}
	})
}

func TestTemplateFuncs(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data any
		want string
	}{
		{
			name: "jsString_plain",
			tmpl: `{{jsString .}}`,
			data: "shop api",
			want: `"shop api"`,
		},
		{
			name: "jsString_escapes_quotes",
			tmpl: `{{jsString .}}`,
			data: `say "hi"`,
			want: `"say \"hi\""`,
		},
		{
			name: "fence_trims_trailing_newlines",
			tmpl: `{{fence "js" .}}`,
			data: "const a = 1;\n\n",
			want: "```js\nconst a = 1;\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(fstest.MapFS{
				"f.tmpl": &fstest.MapFile{Data: []byte(tt.tmpl)},
			})
			got, err := r.Render("f.tmpl", tt.data)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	fsys, err := EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates error: %v", err)
	}
	r := NewRenderer(fsys)

	for _, name := range []string{
		"app.js.tmpl",
		"db.js.tmpl",
		"user.model.js.tmpl",
		"example.controller.js.tmpl",
		"example.route.js.tmpl",
		"auth.controller.js.tmpl",
		"auth.route.js.tmpl",
		"auth.middleware.js.tmpl",
		"env.tmpl",
		"gitignore.tmpl",
	} {
		for _, c := range testContexts() {
			if _, err := r.Render(name, c); err != nil {
				t.Errorf("Render(%s, %s/auth=%v) error: %v", name, c.Style, c.IncludeAuth, err)
			}
		}
	}
}
