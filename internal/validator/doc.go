// Package validator validates wordlist files and aggregates the results
// into a manifest.
//
// A Validator is bound to a root directory. ValidateAll discovers every
// wordlist below the root, runs each through the validation pipeline and
// folds the results into a model.Manifest. ValidateFile validates a single
// path; a path that does not exist yields a model.ErrorResult instead of a
// WordlistFile.
package validator
