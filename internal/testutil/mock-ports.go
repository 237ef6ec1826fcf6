package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
)

// MockCloudDeployer is a mock of CloudDeployer.
type MockCloudDeployer struct {
	mock.Mock
}

func (m *MockCloudDeployer) DeploySpec(ctx context.Context, doc *domain.Document, stage string) (*domain.Release, error) {
	args := m.Called(ctx, doc, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Release), args.Error(1)
}

func (m *MockCloudDeployer) UndeploySpec(ctx context.Context, rel *domain.Release) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockCloudDeployer) DeployApp(ctx context.Context, app ports.AppDeployment) (*domain.Release, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Release), args.Error(1)
}

func (m *MockCloudDeployer) UndeployApp(ctx context.Context, rel *domain.Release) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

// MockDeploymentLedger is a mock of DeploymentLedger.
type MockDeploymentLedger struct {
	mock.Mock
}

func (m *MockDeploymentLedger) Record(ctx context.Context, d *domain.Deployment) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeploymentLedger) Get(ctx context.Context, id uuid.UUID) (*domain.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentLedger) List(ctx context.Context) ([]*domain.Deployment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deployment), args.Error(1)
}

func (m *MockDeploymentLedger) SetStatus(ctx context.Context, id uuid.UUID, status domain.DeploymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockSpecFetcher is a mock of SpecFetcher.
type MockSpecFetcher struct {
	mock.Mock
}

func (m *MockSpecFetcher) Fetch(ctx context.Context, remote, ref string, dirs []string, dest string) error {
	args := m.Called(ctx, remote, ref, dirs, dest)
	return args.Error(0)
}
