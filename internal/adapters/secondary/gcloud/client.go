// Package gcloud publishes applications to Google App Engine through the
// gcloud CLI, which is the supported automation surface for App Engine
// deploys.
package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"api-dispatcher-service/internal/adapters/secondary/cloudcli"
	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
)

type Deployer struct {
	runner cloudcli.Runner
}

func New() *Deployer {
	return &Deployer{runner: cloudcli.ExecRunner{}}
}

// NewWithRunner wires an explicit command runner, for tests.
func NewWithRunner(runner cloudcli.Runner) *Deployer {
	return &Deployer{runner: runner}
}

func (d *Deployer) DeploySpec(ctx context.Context, doc *domain.Document, stage string) (*domain.Release, error) {
	return nil, fmt.Errorf("%w: gcp", domain.ErrSpecDeployUnsupported)
}

func (d *Deployer) UndeploySpec(ctx context.Context, rel *domain.Release) error {
	return fmt.Errorf("%w: gcp", domain.ErrSpecDeployUnsupported)
}

// DeployApp runs `gcloud app deploy` against the settings file or the app
// source directory. Without either an app.yaml for the standard Go runtime
// is generated in the working directory.
func (d *Deployer) DeployApp(ctx context.Context, app ports.AppDeployment) (*domain.Release, error) {
	service := app.Service
	if service == "" {
		service = "default"
	}

	args := []string{"app", "deploy", "--quiet", "--format", "json"}
	switch {
	case app.SettingsFile != "":
		args = append(args, app.SettingsFile)
	case app.AppLocation != "":
		args = append(args, app.AppLocation)
	default:
		if err := writeAppConfig(service); err != nil {
			return nil, err
		}
	}

	out, err := d.runner.Run(ctx, "gcloud", args...)
	if err != nil {
		return nil, fmt.Errorf("gcloud app deploy: %w", err)
	}

	var result struct {
		Versions []struct {
			ID string `json:"id"`
		} `json:"versions"`
	}
	if err := json.Unmarshal([]byte(cloudcli.TrimOutput(out)), &result); err != nil {
		return nil, fmt.Errorf("decode gcloud output: %w", err)
	}
	if len(result.Versions) == 0 {
		return nil, fmt.Errorf("%w: gcloud reported no deployed versions", domain.ErrDeployFailed)
	}

	rel := &domain.Release{Service: service}
	for _, v := range result.Versions {
		rel.Versions = append(rel.Versions, v.ID)
	}
	return rel, nil
}

// UndeployApp moves serving traffic to a version outside the release, then
// deletes the release's versions. App Engine refuses to delete a version
// that still receives traffic.
func (d *Deployer) UndeployApp(ctx context.Context, rel *domain.Release) error {
	if len(rel.Versions) == 0 {
		return fmt.Errorf("%w: release has no recorded versions", domain.ErrDeploymentNotFound)
	}
	service := rel.Service
	if service == "" {
		service = "default"
	}

	if err := d.migrateTraffic(ctx, service, rel.Versions); err != nil {
		return err
	}

	args := append([]string{"app", "versions", "delete", "--service", service, "--quiet", "--format", "json"}, rel.Versions...)
	if _, err := d.runner.Run(ctx, "gcloud", args...); err != nil {
		return fmt.Errorf("gcloud versions delete: %w", err)
	}
	return nil
}

func (d *Deployer) migrateTraffic(ctx context.Context, service string, deployed []string) error {
	out, err := d.runner.Run(ctx, "gcloud", "app", "versions", "list", "--service", service, "--format", "json")
	if err != nil {
		return fmt.Errorf("gcloud versions list: %w", err)
	}
	var versions []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(cloudcli.TrimOutput(out)), &versions); err != nil {
		return fmt.Errorf("decode gcloud output: %w", err)
	}

	ours := make(map[string]bool, len(deployed))
	for _, id := range deployed {
		ours[id] = true
	}
	for _, v := range versions {
		if ours[v.ID] {
			continue
		}
		_, err := d.runner.Run(ctx, "gcloud", "app", "services", "set-traffic", service,
			"--splits="+v.ID+"=1", "--quiet")
		if err != nil {
			return fmt.Errorf("gcloud set-traffic: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: no version left to receive traffic for service %s", domain.ErrDeployFailed, service)
}

func writeAppConfig(service string) error {
	config := map[string]any{
		"runtime": "go122",
		"env":     "standard",
		"service": service,
	}
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode app.yaml: %w", err)
	}
	if err := os.WriteFile("app.yaml", b, 0o644); err != nil {
		return fmt.Errorf("write app.yaml: %w", err)
	}
	return nil
}
