// Package azure publishes applications to Azure App Service through the az
// CLI (`az webapp up` has no SDK equivalent for source deploys).
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"api-dispatcher-service/internal/adapters/secondary/cloudcli"
	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
	"api-dispatcher-service/internal/specfile"
)

// Settings keys forwarded to `az webapp up` as flags.
var settingsFlags = []string{"location", "plan", "sku", "resource-group", "subscription"}

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
	return nil, fmt.Errorf("%w: azure", domain.ErrSpecDeployUnsupported)
}

func (d *Deployer) UndeploySpec(ctx context.Context, rel *domain.Release) error {
	return fmt.Errorf("%w: azure", domain.ErrSpecDeployUnsupported)
}

// DeployApp runs `az webapp up`. Deployment parameters come from the
// settings file when given, otherwise from the local az defaults (active
// subscription and the resource group a dry run would pick).
func (d *Deployer) DeployApp(ctx context.Context, app ports.AppDeployment) (*domain.Release, error) {
	if app.Service == "" {
		return nil, fmt.Errorf("%w: azure needs an application name", domain.ErrMissingAppLocation)
	}

	rel := &domain.Release{Service: app.Service}
	args := []string{"webapp", "up", "-n", app.Service}
	if app.SettingsFile != "" {
		settings, err := specfile.Load(app.SettingsFile)
		if err != nil {
			return nil, err
		}
		rel.ResourceGroup, _ = settings["resource-group"].(string)
		rel.Subscription, _ = settings["subscription"].(string)
		args = append(args, "--verbose", "--output", "json")
		for _, flag := range settingsFlags {
			if value, ok := settings[flag].(string); ok && value != "" {
				args = append(args, "--"+flag, value)
			}
		}
	} else {
		var err error
		if rel.ResourceGroup, rel.Subscription, err = d.discoverDefaults(ctx); err != nil {
			return nil, err
		}
	}

	out, err := d.runner.Run(ctx, "az", args...)
	if err != nil {
		return nil, fmt.Errorf("az webapp up: %w", err)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(cloudcli.TrimOutput(out)), &result); err != nil {
		return nil, fmt.Errorf("decode az output: %w", err)
	}
	if _, ok := result["app_url"]; !ok {
		return nil, fmt.Errorf("%w: az reported no app URL", domain.ErrDeployFailed)
	}
	return rel, nil
}

// UndeployApp deletes the resource group holding the deployed application.
func (d *Deployer) UndeployApp(ctx context.Context, rel *domain.Release) error {
	if rel.ResourceGroup == "" || rel.Subscription == "" {
		return domain.ErrMissingDeployTarget
	}
	out, err := d.runner.Run(ctx, "az", "group", "delete", "-n", rel.ResourceGroup,
		"--yes", "--subscription", rel.Subscription)
	if err != nil {
		return fmt.Errorf("az group delete: %w", err)
	}
	// az is silent on success; any text is an error report.
	if msg := strings.TrimSpace(cloudcli.TrimOutput(out)); msg != "" {
		return fmt.Errorf("%w: %s", domain.ErrDeployFailed, msg)
	}
	return nil
}

func (d *Deployer) discoverDefaults(ctx context.Context) (resourceGroup, subscription string, err error) {
	out, err := d.runner.Run(ctx, "az", "account", "list")
	if err != nil {
		return "", "", fmt.Errorf("az account list: %w", err)
	}
	var accounts []struct {
		IsDefault bool   `json:"isDefault"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal([]byte(cloudcli.TrimOutput(out)), &accounts); err != nil {
		return "", "", fmt.Errorf("decode az output: %w", err)
	}
	for _, account := range accounts {
		if account.IsDefault {
			subscription = account.Name
		}
	}

	out, err = d.runner.Run(ctx, "az", "webapp", "up", "-n", "test", "--dryrun")
	if err != nil {
		return "", "", fmt.Errorf("az webapp up dry run: %w", err)
	}
	var dryRun struct {
		ResourceGroup string `json:"resourcegroup"`
	}
	if err := json.Unmarshal([]byte(cloudcli.TrimOutput(out)), &dryRun); err != nil {
		return "", "", fmt.Errorf("decode az output: %w", err)
	}
	return dryRun.ResourceGroup, subscription, nil
}
