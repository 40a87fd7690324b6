package defs

// Root-level files written into every scaffold.
const (
	// EnvFile holds the runtime environment variables of the generated server.
	EnvFile = ".env"

	// GitignoreFile is the generated project's ignore list.
	GitignoreFile = ".gitignore"

	// ReadmeFile documents the generated files and endpoints.
	ReadmeFile = "README.md"

	// PackageJSON is the npm package manifest.
	PackageJSON = "package.json"
)

// Source directories of the generated project.
const (
	SrcDir         = "src"
	ConfigDir      = "src/config"
	ModelsDir      = "src/models"
	ControllersDir = "src/controllers"
	RoutesDir      = "src/routes"
	MiddlewaresDir = "src/middlewares"
)

// Route mount points registered by the generated application module.
const (
	ExampleMount = "/api/example"
	AuthMount    = "/api/auth"
)

// Environment variable names and defaults written to .env.
const (
	EnvPort         = "PORT"
	EnvMongoURI     = "MONGO_URI"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiresIn = "JWT_EXPIRES_IN"

	DefaultPort         = "5000"
	DefaultJWTSecret    = "replace-with-a-long-random-secret"
	DefaultJWTExpiresIn = "7d"
)

// Locations of expressjet's own user defaults.
const (
	// ConfigHomeDir is created under the user's home directory.
	ConfigHomeDir = ".expressjet"

	// ConfigFileName is the defaults file inside ConfigHomeDir.
	ConfigFileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. EXPRESSJET_PACKAGE_MANAGER.
	EnvPrefix = "EXPRESSJET"
)
