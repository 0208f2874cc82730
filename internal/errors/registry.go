package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Operation errors (D001-D009)

	"D001": {
		Category: CategoryOperation,
		Message:  "Container not found",
		Detail:   "No element with the container ID exists in the document.",
	},
	"D002": {
		Category: CategoryOperation,
		Message:  "Element not found",
		Detail:   "No element with the given ID exists in the document.",
	},
	"D003": {
		Category: CategoryOperation,
		Message:  "Input cannot be empty",
		Detail:   "The form is missing, has no input, or its input is blank after trimming.",
	},
	"D004": {
		Category: CategoryOperation,
		Message:  "Error display missing",
		Detail:   "The document has no error-display element, so the message could not be shown.",
	},

	// Fixture errors (D010-D019)

	"D010": {
		Category: CategoryFixture,
		Message:  "Fixture parse failed",
		Detail:   "The HTML fixture could not be parsed.",
	},
	"D011": {
		Category: CategoryFixture,
		Message:  "Fixture not found",
		Detail:   "The HTML fixture file does not exist or cannot be read.",
	},
	"D012": {
		Category: CategoryFixture,
		Message:  "Document render failed",
		Detail:   "The document could not be written out as HTML.",
	},

	// Config errors (D020-D029)

	"D020": {
		Category: CategoryConfig,
		Message:  "Config parse failed",
		Detail:   "domhelper.json is not valid JSON.",
	},
	"D021": {
		Category: CategoryConfig,
		Message:  "Config not found",
		Detail:   "No domhelper.json was found.",
	},
	"D022": {
		Category: CategoryConfig,
		Message:  "Invalid config",
		Detail:   "A configuration value is out of range.",
	},

	// Script errors (D030-D039)

	"D030": {
		Category: CategoryScript,
		Message:  "Unknown operation",
		Detail:   "The script names an operation that does not exist.",
	},
	"D031": {
		Category: CategoryScript,
		Message:  "Wrong number of arguments",
		Detail:   "The operation was given fewer arguments than it needs.",
	},
	"D032": {
		Category: CategoryScript,
		Message:  "Unterminated quote",
		Detail:   "A quoted argument is missing its closing quote.",
	},
	"D033": {
		Category: CategoryScript,
		Message:  "Script read failed",
		Detail:   "The script could not be read, or one of its lines is too long.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
