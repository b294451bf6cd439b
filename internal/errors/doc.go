// Package errors provides typed errors with exit codes for generate-cloud-init.
//
// # Error Types
//
// RenderError is the base error type. It carries a Kind, a user-facing
// message, an optional remediation hint and a wrapped cause:
//
//	type RenderError struct {
//	    Kind    Kind   // Error classification
//	    Message string // User-facing message
//	    Hint    string // What the user should do about it
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Each kind maps to an exit code:
//
//	ExitGeneralError          = 1  // General/unknown errors
//	ExitMissingRequiredValue  = 2  // Required environment input absent
//	ExitNoKeysFound           = 3  // No SSH key resolvable from any source
//	ExitTemplateNotFound      = 4  // Template file missing
//	ExitUnresolvedPlaceholder = 5  // Token left after substitution
//	ExitMalformedOutput       = 6  // Rendered document is not valid YAML
//	ExitConfigError           = 7  // Settings file unreadable or invalid
//
// # Error Constructors
//
//	errors.MissingRequiredValue("DOTFILES_REPO_URL").
//	    WithHint("export DOTFILES_REPO_URL=https://example.com/dotfiles.git")
//	errors.TemplateNotFound("cloud-init/user-data.yaml.tmpl")
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
