// Package logging provides logging utilities for generate-cloud-init.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("key source empty", "source", src.Name())
//	logging.Warn("unparsable public key", "source", name, "err", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Rendering %s...", templatePath)
//	logging.UserSuccess("Wrote %s", outputPath)
//	logging.UserWarning("Key %d could not be parsed", i)
//	logging.UserError("Render failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// SetUserOutput redirects both streams, which command tests use to capture
// output.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
