// Package errors provides the classified errors docpress returns from its
// package boundaries.
//
// Packages wrap low-level failures with fmt.Errorf internally and classify
// them once, where they leave the package:
//
//	return errors.WrapError(err, errors.CategorySidebar, "read directory").
//		WithPath(dir).
//		Build()
//
// The command line maps the category to an exit code with CLIErrorAdapter.
package errors
