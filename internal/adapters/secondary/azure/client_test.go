package azure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]byte), called.Error(1)
}

func TestDeployer_DeploySpec_Unsupported(t *testing.T) {
	d := NewWithRunner(new(mockRunner))

	_, err := d.DeploySpec(context.Background(), &domain.Document{}, "dev")
	assert.ErrorIs(t, err, domain.ErrSpecDeployUnsupported)
}

func TestDeployer_DeployApp_MissingName(t *testing.T) {
	d := NewWithRunner(new(mockRunner))

	_, err := d.DeployApp(context.Background(), ports.AppDeployment{})
	assert.ErrorIs(t, err, domain.ErrMissingAppLocation)
}

func TestDeployer_DeployApp_WithSettings(t *testing.T) {
	runner := new(mockRunner)
	d := NewWithRunner(runner)

	runner.On("Run", mock.Anything, "az",
		[]string{"webapp", "up", "-n", "petstore", "--verbose", "--output", "json",
			"--location", "westeurope", "--sku", "F1",
			"--resource-group", "petstore-rg", "--subscription", "pay-as-you-go"}).
		Return([]byte(`{"app_url": "https://petstore.azurewebsites.net"}`), nil)

	rel, err := d.DeployApp(context.Background(), ports.AppDeployment{
		Service:      "petstore",
		SettingsFile: "testdata/settings.json",
	})
	require.NoError(t, err)
	assert.Equal(t, "petstore", rel.Service)
	assert.Equal(t, "petstore-rg", rel.ResourceGroup)
	assert.Equal(t, "pay-as-you-go", rel.Subscription)
	runner.AssertExpectations(t)
}

func TestDeployer_DeployApp_DiscoversDefaults(t *testing.T) {
	runner := new(mockRunner)
	d := NewWithRunner(runner)

	runner.On("Run", mock.Anything, "az", []string{"account", "list"}).
		Return([]byte(`[{"isDefault": false, "name": "other"}, {"isDefault": true, "name": "primary"}]`), nil)
	runner.On("Run", mock.Anything, "az", []string{"webapp", "up", "-n", "test", "--dryrun"}).
		Return([]byte(`{"resourcegroup": "default_rg"}`), nil)
	runner.On("Run", mock.Anything, "az", []string{"webapp", "up", "-n", "petstore"}).
		Return([]byte(`{"app_url": "https://petstore.azurewebsites.net"}`), nil)

	rel, err := d.DeployApp(context.Background(), ports.AppDeployment{Service: "petstore"})
	require.NoError(t, err)
	assert.Equal(t, "default_rg", rel.ResourceGroup)
	assert.Equal(t, "primary", rel.Subscription)
}

func TestDeployer_DeployApp_NoAppURL(t *testing.T) {
	runner := new(mockRunner)
	d := NewWithRunner(runner)

	runner.On("Run", mock.Anything, "az", mock.Anything).
		Return([]byte(`{"status": "failed"}`), nil)

	_, err := d.DeployApp(context.Background(), ports.AppDeployment{
		Service:      "petstore",
		SettingsFile: "testdata/settings.json",
	})
	assert.ErrorIs(t, err, domain.ErrDeployFailed)
}

func TestDeployer_UndeployApp(t *testing.T) {
	runner := new(mockRunner)
	d := NewWithRunner(runner)

	runner.On("Run", mock.Anything, "az",
		[]string{"group", "delete", "-n", "petstore-rg", "--yes", "--subscription", "pay-as-you-go"}).
		Return([]byte("\n"), nil)

	err := d.UndeployApp(context.Background(), &domain.Release{
		ResourceGroup: "petstore-rg",
		Subscription:  "pay-as-you-go",
	})
	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestDeployer_UndeployApp_MissingTarget(t *testing.T) {
	d := NewWithRunner(new(mockRunner))

	err := d.UndeployApp(context.Background(), &domain.Release{ResourceGroup: "petstore-rg"})
	assert.ErrorIs(t, err, domain.ErrMissingDeployTarget)
}

func TestDeployer_UndeployApp_ErrorOutput(t *testing.T) {
	runner := new(mockRunner)
	d := NewWithRunner(runner)

	runner.On("Run", mock.Anything, "az", mock.Anything).
		Return([]byte("resource group could not be deleted\n"), nil)

	err := d.UndeployApp(context.Background(), &domain.Release{
		ResourceGroup: "petstore-rg",
		Subscription:  "pay-as-you-go",
	})
	assert.ErrorIs(t, err, domain.ErrDeployFailed)
}
