package domain

import "errors"

// ============================================================================
// Specification Errors
// ============================================================================

// Loading errors
var (
	ErrSpecNotFound      = errors.New("specification file not found")
	ErrUnsupportedFormat = errors.New("specification must be a .json, .yml or .yaml file")
	ErrEmptySpec         = errors.New("specification document is empty")
)

// Validation errors
var (
	ErrUnknownSpecVersion = errors.New("specification does not declare a supported version marker")
	ErrSchemaUnavailable  = errors.New("no meta-schema available for this specification version")
	ErrInvalidSpec        = errors.New("specification does not conform to its meta-schema")
	ErrUnresolvableRef    = errors.New("specification contains an unresolvable $ref")
)

// ============================================================================
// Dispatch Errors
// ============================================================================

var (
	ErrAPINotFound         = errors.New("mounted API not found")
	ErrInvalidAPIID        = errors.New("mounted API id must be a UUID")
	ErrInvalidDeploymentID = errors.New("deployment id must be a UUID")
	ErrNoRoutes            = errors.New("specification declares no paths to mount")
	ErrMissingSpecSource   = errors.New("either a spec file or an inline spec is required")
)

// ============================================================================
// Deployment Errors
// ============================================================================

// Validation errors
var (
	ErrUnsupportedCloud    = errors.New("unsupported cloud provider")
	ErrStageRequired       = errors.New("stage must be set when the settings file contains more than one config")
	ErrMissingDeployTarget = errors.New("resource group and subscription must be set to remove the application stack")
	ErrMissingAppLocation  = errors.New("stage and app location must be set when no settings file is provided")
)

// Operation errors
var (
	ErrDeploymentNotFound    = errors.New("deployment not found")
	ErrDeployFailed          = errors.New("cloud deployment failed")
	ErrImportRejected        = errors.New("gateway rejected the imported specification")
	ErrAppDeployUnsupported  = errors.New("app deployment is not supported for this provider")
	ErrSpecDeployUnsupported = errors.New("spec deployment is not supported for this provider")
)
