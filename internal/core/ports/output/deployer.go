package ports

import (
	"context"

	"api-dispatcher-service/internal/core/domain"
)

// AppDeployment carries everything a provider needs to publish a running
// application (as opposed to a bare gateway import).
type AppDeployment struct {
	SettingsFile string // optional JSON/YAML settings file; config is generated when empty
	AppLocation  string // application source directory to deploy from
	Stage        string
	ProjectName  string
	Service      string // GCP service name / Azure app name
}

// CloudDeployer publishes API specifications and applications to one cloud
// provider. Spec deployment targets the provider's API gateway; app
// deployment targets its application platform. Providers return a Release
// describing what they created so Undeploy* can remove it later.
type CloudDeployer interface {
	DeploySpec(ctx context.Context, doc *domain.Document, stage string) (*domain.Release, error)
	UndeploySpec(ctx context.Context, rel *domain.Release) error
	DeployApp(ctx context.Context, app AppDeployment) (*domain.Release, error)
	UndeployApp(ctx context.Context, rel *domain.Release) error
}
