// Package wizard provides the interactive huh-based questionnaire that
// collects scaffold choices for "expressjet new".
package wizard

import (
	"errors"

	"github.com/expressjet/expressjet/internal/config"
)

// Question IDs, matching the config keys they fill.
const (
	IDProjectName    = "project_name"
	IDPackageManager = config.KeyPackageManager
	IDModuleSystem   = config.KeyModuleSystem
	IDIncludeAuth    = config.KeyIncludeAuth
)

// WizardResult holds the user's answers. Empty fields were not answered.
type WizardResult struct {
	ProjectName    string
	PackageManager string // "npm" or "yarn"
	ModuleSystem   string // "commonjs" or "esm"
	IncludeAuth    string // "true" or "false"
}

// Input converts the answers into a resolver layer.
func (r *WizardResult) Input() config.Input {
	in := config.Input{
		ProjectName:    r.ProjectName,
		PackageManager: r.PackageManager,
		ModuleSystem:   r.ModuleSystem,
	}
	switch r.IncludeAuth {
	case "true":
		in.IncludeAuth = config.Bool(true)
	case "false":
		in.IncludeAuth = config.Bool(false)
	}
	return in
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string                   // Unique identifier
	Type        QuestionType             // Select or Input
	Title       string                   // Question title
	Description string                   // Additional description
	Options     []Option                 // Options for select questions
	Default     string                   // Default value
	Required    bool                     // Whether the field is required
	Condition   func(*WizardResult) bool // Condition for showing this question
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
