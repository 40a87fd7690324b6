package wizard

import (
	"path/filepath"
	"slices"

	"github.com/expressjet/expressjet/internal/config"
)

// DefaultQuestions returns the scaffold questions in order:
// 1. Project name
// 2. Package manager
// 3. Module system
// 4. Authentication
//
// The project name defaults to the base name of projectRoot. Select
// defaults come from defaults (the user's stored preferences) or the
// built-in defaults. A question is skipped when its answer is already
// present in the WizardResult passed to Run.
func DefaultQuestions(projectRoot string, defaults config.Input) []Question {
	defaultProjectName := filepath.Base(projectRoot)
	if defaultProjectName == "." || defaultProjectName == string(filepath.Separator) {
		defaultProjectName = "my-express-api"
	}

	pm := string(config.DefaultPackageManager)
	if defaults.PackageManager != "" {
		pm = string(config.NormalizePackageManager(defaults.PackageManager))
	}
	ms := string(config.DefaultModuleSystem)
	if defaults.ModuleSystem != "" {
		ms = string(config.NormalizeModuleSystem(defaults.ModuleSystem))
	}
	auth := "false"
	if defaults.IncludeAuth != nil && *defaults.IncludeAuth {
		auth = "true"
	}

	return []Question{
		// 1. Project Name
		{
			ID:          IDProjectName,
			Type:        QuestionTypeInput,
			Title:       "Enter project name",
			Description: "Used for the package name and the default database name.",
			Default:     defaultProjectName,
			Required:    true,
			Condition:   func(r *WizardResult) bool { return r.ProjectName == "" },
		},
		// 2. Package Manager
		{
			ID:          IDPackageManager,
			Type:        QuestionTypeSelect,
			Title:       "Select package manager",
			Description: "Used to install dependencies and in the README commands.",
			Options: defaultFirst([]Option{
				{Label: "npm", Value: "npm"},
				{Label: "yarn", Value: "yarn"},
			}, pm),
			Default:   pm,
			Required:  true,
			Condition: func(r *WizardResult) bool { return r.PackageManager == "" },
		},
		// 3. Module System
		{
			ID:          IDModuleSystem,
			Type:        QuestionTypeSelect,
			Title:       "Select module system",
			Description: "Every generated source file follows the same convention.",
			Options: defaultFirst([]Option{
				{Label: "CommonJS", Value: "commonjs", Desc: "require/module.exports, .js files"},
				{Label: "ES Modules", Value: "esm", Desc: "import/export, .mjs files"},
			}, ms),
			Default:   ms,
			Required:  true,
			Condition: func(r *WizardResult) bool { return r.ModuleSystem == "" },
		},
		// 4. Authentication
		{
			ID:          IDIncludeAuth,
			Type:        QuestionTypeSelect,
			Title:       "Include JWT authentication?",
			Description: "Adds register/login routes, a protect middleware and password hashing.",
			Options: defaultFirst([]Option{
				{Label: "No", Value: "false", Desc: "Example CRUD routes only"},
				{Label: "Yes", Value: "true", Desc: "bcryptjs + jsonwebtoken"},
			}, auth),
			Default:   auth,
			Required:  true,
			Condition: func(r *WizardResult) bool { return r.IncludeAuth == "" },
		},
	}
}

// defaultFirst moves the option with value def to the front.
func defaultFirst(opts []Option, def string) []Option {
	i := slices.IndexFunc(opts, func(o Option) bool { return o.Value == def })
	if i <= 0 {
		return opts
	}
	out := make([]Option, 0, len(opts))
	out = append(out, opts[i])
	out = append(out, opts[:i]...)
	return append(out, opts[i+1:]...)
}

// FilteredQuestions returns questions filtered by their conditions.
// Questions whose conditions return false are excluded.
func FilteredQuestions(questions []Question, result *WizardResult) []Question {
	filtered := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Condition == nil || q.Condition(result) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// QuestionByID finds a question by its ID.
func QuestionByID(questions []Question, id string) *Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}
