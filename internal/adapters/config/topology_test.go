package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rollout/internal/adapters/config"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const paymentsTopology = `{
  "DEV": {
    "maven": {
      "job_name": "deploy-payments-dev",
      "nodes": [{"url": "dev-1.internal", "token": "t1"}, {"url": "dev-2.internal", "token": "t2"}]
    },
    "npm": {"job_name": "deploy-web-dev", "nodes": []}
  },
  "UAT": {
    "maven": {"job_name": "deploy-payments-uat", "nodes": [{"url": "uat-1.internal", "token": ""}]}
  }
}`

func newProvider(t *testing.T, files map[string]string) (*config.TopologyProvider, *mocks.MockLogger) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	log := mocks.NewMockLogger(gomock.NewController(t))
	return config.NewTopologyProvider(dir, log), log
}

func TestTopologyProvider_Load(t *testing.T) {
	p, _ := newProvider(t, map[string]string{"payments.json": paymentsTopology})

	topo, err := p.Load("payments")
	require.NoError(t, err)

	assert.Equal(t, domain.TopologyFromResource, topo.Source())
	assert.Equal(t, []string{"DEV", "UAT"}, topo.Environments())

	target, ok := topo.Target("DEV", domain.BuildTypeMaven)
	require.True(t, ok)
	assert.Equal(t, "deploy-payments-dev", target.JobName)
	assert.Equal(t, "dev-1.internal,dev-2.internal", target.ArgString())
	assert.Equal(t, "t2", target.Nodes[1].Token)

	target, ok = topo.Target("DEV", domain.BuildTypeNPM)
	require.True(t, ok)
	assert.Empty(t, target.ArgString())

	_, ok = topo.Target("UAT", domain.BuildTypeNPM)
	assert.False(t, ok)
}

func TestTopologyProvider_LoadErrors(t *testing.T) {
	p, _ := newProvider(t, map[string]string{"broken.json": "{not json"})

	_, err := p.Load("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())

	_, err = p.Load("../etc/passwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())

	_, err = p.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestTopologyProvider_Resolve(t *testing.T) {
	t.Run("resource by project key", func(t *testing.T) {
		p, _ := newProvider(t, map[string]string{"payments.json": paymentsTopology})

		topo, err := p.Resolve(domain.RunState{"RUNDECK_PROJECT": "payments"})
		require.NoError(t, err)
		assert.Equal(t, "payments", topo.Key())
	})

	t.Run("inline override replaces resource", func(t *testing.T) {
		p, log := newProvider(t, map[string]string{"payments.json": paymentsTopology})
		log.EXPECT().Info(gomock.Any())

		topo, err := p.Resolve(domain.RunState{
			"RUNDECK_PROJECT": "payments",
			"RUNDECK_JOB":     "hotfix-job",
			"RUNDECK_NODES":   "n1,n2",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TopologyInline, topo.Source())

		target, ok := topo.Target(domain.InlineEnvironment, domain.BuildTypeMaven)
		require.True(t, ok)
		assert.Equal(t, "hotfix-job", target.JobName)
		assert.Equal(t, "n1,n2", target.ArgString())

		_, ok = topo.Target("DEV", domain.BuildTypeMaven)
		assert.False(t, ok, "resource environments must not leak into inline topology")
	})

	t.Run("job without nodes is not an override", func(t *testing.T) {
		p, _ := newProvider(t, nil)

		_, err := p.Resolve(domain.RunState{"RUNDECK_JOB": "job"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())
	})

	t.Run("neither source", func(t *testing.T) {
		p, _ := newProvider(t, nil)

		_, err := p.Resolve(domain.RunState{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())
	})
}
