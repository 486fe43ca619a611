// Package gen validates fixed query templates offline and generates typed
// Go functions for them.
//
// # Pipeline
//
// The generator runs in two phases over a YAML manifest:
//
//	Manifest (qbsql.gen.yaml)
//	        ↓
//	   Validate: compile every template against the catalog
//	             with type-representative stub variables
//	        ↓
//	   Generate: one Go function per template (dave/jennifer),
//	             formatted with golang.org/x/tools/imports
//
// Validation runs in the build pipeline so a template that names a missing
// field, an illegal operator, or an undeclared variable fails the build
// instead of the first request that exercises it.
//
// # Manifest
//
// The manifest declares the output package, an optional schema catalog, and
// the templates:
//
//	package: queries
//	schema: catalog.yaml
//	templates:
//	  - name: customers_over
//	    query: select display_name, balance from Customer where balance > min
//	    vars:
//	      - name: min
//	        type: float
//
// Variable types are string, int, float, bool, date, []string, []int, and
// []float. Each template becomes a function taking one typed parameter per
// declared variable and returning (*qbsql.Query, error):
//
//	query, err := queries.CustomersOver(1000)
//
// # Error Handling
//
// Failures use structured error types: ManifestError for manifest shape
// problems, TemplateError (carrying the template name) for validation
// failures, ConfigError for generator misconfiguration, and GenerationError
// for write failures. Matching sentinels (ErrInvalidManifest,
// ErrValidationFailed, ErrInvalidConfig, ErrGenerationFailed) support
// errors.Is checks.
package gen
