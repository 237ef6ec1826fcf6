package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
	"api-dispatcher-service/internal/specfile"
)

// DeployerFactory returns the deployer adapter for a cloud name.
type DeployerFactory func(cloud string) (ports.CloudDeployer, error)

// DeployService pushes specs and apps to cloud providers and records every
// deployment in the ledger so undeploy works across restarts.
type DeployService struct {
	factory DeployerFactory
	ledger  ports.DeploymentLedger
}

func NewDeployService(factory DeployerFactory, ledger ports.DeploymentLedger) *DeployService {
	return &DeployService{factory: factory, ledger: ledger}
}

// DeploySpec imports a specification into the provider's API gateway. A
// partial failure (imported but not staged) is recorded as FAILED so the
// imported gateway resource can still be cleaned up later.
func (s *DeployService) DeploySpec(ctx context.Context, doc *domain.Document, cloud, stage, settingsFile string) (*domain.Deployment, error) {
	deployer, err := s.factory(strings.ToLower(cloud))
	if err != nil {
		return nil, err
	}
	if settingsFile != "" {
		if stage, err = resolveStage(settingsFile, stage); err != nil {
			return nil, err
		}
	}
	if stage == "" {
		stage = "dev"
	}

	rel, deployErr := deployer.DeploySpec(ctx, doc, stage)
	if deployErr != nil && rel == nil {
		return nil, deployErr
	}

	d := s.record(domain.DeploymentKindSpec, cloud, stage, doc.Title(), rel, deployErr)
	if err := s.ledger.Record(ctx, d); err != nil {
		return nil, fmt.Errorf("record deployment: %w", err)
	}
	return d, deployErr
}

// DeployApp publishes an application through the provider's platform.
func (s *DeployService) DeployApp(ctx context.Context, cloud string, app ports.AppDeployment) (*domain.Deployment, error) {
	deployer, err := s.factory(strings.ToLower(cloud))
	if err != nil {
		return nil, err
	}
	if app.SettingsFile != "" {
		if app.Stage, err = resolveStage(app.SettingsFile, app.Stage); err != nil {
			return nil, err
		}
	}

	rel, deployErr := deployer.DeployApp(ctx, app)
	if deployErr != nil && rel == nil {
		return nil, deployErr
	}

	title := app.ProjectName
	if title == "" {
		title = app.Service
	}
	d := s.record(domain.DeploymentKindApp, cloud, app.Stage, title, rel, deployErr)
	if err := s.ledger.Record(ctx, d); err != nil {
		return nil, fmt.Errorf("record deployment: %w", err)
	}
	return d, deployErr
}

// Undeploy removes the provider-side resources of a recorded deployment.
func (s *DeployService) Undeploy(ctx context.Context, id uuid.UUID) error {
	d, err := s.ledger.Get(ctx, id)
	if err != nil {
		return err
	}
	if d.Status == domain.DeploymentStatusRemoved {
		return domain.ErrDeploymentNotFound
	}

	deployer, err := s.factory(strings.ToLower(d.Cloud))
	if err != nil {
		return err
	}
	switch d.Kind {
	case domain.DeploymentKindApp:
		err = deployer.UndeployApp(ctx, &d.Release)
	default:
		err = deployer.UndeploySpec(ctx, &d.Release)
	}
	if err != nil {
		return err
	}
	return s.ledger.SetStatus(ctx, id, domain.DeploymentStatusRemoved)
}

func (s *DeployService) Get(ctx context.Context, id uuid.UUID) (*domain.Deployment, error) {
	return s.ledger.Get(ctx, id)
}

func (s *DeployService) List(ctx context.Context) ([]*domain.Deployment, error) {
	return s.ledger.List(ctx)
}

func (s *DeployService) record(kind domain.DeploymentKind, cloud, stage, title string, rel *domain.Release, deployErr error) *domain.Deployment {
	status := domain.DeploymentStatusActive
	if deployErr != nil {
		status = domain.DeploymentStatusFailed
	}
	now := time.Now()
	d := &domain.Deployment{
		ID:        uuid.New(),
		Kind:      kind,
		Cloud:     strings.ToLower(cloud),
		Stage:     stage,
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rel != nil {
		d.Release = *rel
	}
	return d
}

// resolveStage picks the stage to deploy from a settings file: an explicit
// stage wins, a single-stage file implies its only stage, anything else
// needs the caller to choose.
func resolveStage(settingsFile, stage string) (string, error) {
	if stage != "" {
		return stage, nil
	}
	settings, err := specfile.Load(settingsFile)
	if err != nil {
		return "", err
	}
	if len(settings) != 1 {
		return "", domain.ErrStageRequired
	}
	for name := range settings {
		return name, nil
	}
	return "", domain.ErrStageRequired
}
