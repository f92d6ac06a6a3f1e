package dispatcher_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/rollout/internal/core/ports/mocks"
	"go.trai.ch/rollout/internal/engine/dispatcher"
	"go.uber.org/mock/gomock"
)

var session = domain.Session{Token: "tok"}

type fixture struct {
	jobs       *mocks.MockJobService
	watcher    *mocks.MockExecutionWatcher
	dispatcher *dispatcher.Dispatcher
}

func newFixture(t *testing.T, parallelism int) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	jobs := mocks.NewMockJobService(ctrl)
	w := mocks.NewMockExecutionWatcher(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).Return(t.Context(), vertex).AnyTimes()

	settings := domain.DefaultSettings()
	settings.Service.Username = "deployer"
	settings.Service.Password = "secret"
	settings.Parallelism = parallelism

	return &fixture{
		jobs:       jobs,
		watcher:    w,
		dispatcher: dispatcher.New(jobs, w, log, tel, settings),
	}
}

func devOnlyTopology() *domain.Topology {
	return domain.NewResourceTopology("payments", map[string]map[domain.BuildType]domain.EnvironmentTarget{
		"DEV": {
			domain.BuildTypeMaven: {
				JobName: "job-dev",
				Nodes:   []domain.Node{{URL: "dev1", Token: "a"}, {URL: "dev2", Token: "b"}},
			},
		},
	})
}

func TestDispatch_RunAndWait_PartialTopology(t *testing.T) {
	f := newFixture(t, 1)
	budget := domain.WatchBudget{Timeout: time.Minute, Interval: 10 * time.Second}

	f.jobs.EXPECT().Authenticate(gomock.Any(), "deployer", "secret").Return(session, nil).Times(1)
	f.jobs.EXPECT().RunJob(gomock.Any(), session, domain.JobRequest{
		JobName:   "job-dev",
		ArgString: "dev1,dev2",
		Options:   map[string]string{"BUILD_TAG": "1.0"},
	}).Return("42", nil)
	f.watcher.EXPECT().Watch(gomock.Any(), session, "42", budget).
		Return(domain.WatchResult{Status: domain.StatusSucceeded, Polls: 3})

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     devOnlyTopology(),
		Environments: []string{"DEV", "UAT"},
		BuildType:    domain.BuildTypeMaven,
		Mode:         domain.ModeRun,
		Options:      map[string]string{"BUILD_TAG": "1.0"},
		Wait:         true,
		Budget:       budget,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, "DEV", outcomes[0].Environment)
	assert.Equal(t, "job-dev", outcomes[0].JobName)
	assert.Equal(t, "42", outcomes[0].ExecutionID)
	assert.Equal(t, domain.StatusSucceeded, outcomes[0].Status)
	assert.True(t, outcomes[0].Succeeded())
	require.NoError(t, outcomes[0].Err)

	assert.Equal(t, "UAT", outcomes[1].Environment)
	assert.Equal(t, domain.FailureNotConfigured, outcomes[1].Failure)
	assert.ErrorContains(t, outcomes[1].Err, domain.ErrEnvironmentNotConfigured.Error())
}

func TestDispatch_CollidingEnvironmentNamesAreNotDispatched(t *testing.T) {
	f := newFixture(t, 1)
	target := func(job string) map[domain.BuildType]domain.EnvironmentTarget {
		return map[domain.BuildType]domain.EnvironmentTarget{
			domain.BuildTypeNPM: {JobName: job, Nodes: []domain.Node{{URL: "n1"}}},
		}
	}
	topology := domain.NewResourceTopology("web", map[string]map[domain.BuildType]domain.EnvironmentTarget{
		"dev": target("job-dev-lower"),
		"DEV": target("job-dev-upper"),
	})

	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), session, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Session, req domain.JobRequest) (string, error) {
			assert.Equal(t, "job-dev-lower", req.JobName)
			return "5", nil
		}).Times(1)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     topology,
		Environments: []string{"dev", "DEV"},
		BuildType:    domain.BuildTypeNPM,
		Mode:         domain.ModeRun,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, domain.StatusRunning, outcomes[0].Status)
	assert.Equal(t, "DEV", outcomes[1].Environment)
	assert.Equal(t, domain.FailureKeyConflict, outcomes[1].Failure)
	assert.ErrorContains(t, outcomes[1].Err, domain.ErrEnvironmentKeyConflict.Error())
	assert.Empty(t, outcomes[1].JobName)
}

func TestDispatch_NothingConfigured_SkipsAuthentication(t *testing.T) {
	f := newFixture(t, 1)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     devOnlyTopology(),
		Environments: []string{"UAT", "PROD"},
		BuildType:    domain.BuildTypeMaven,
		Mode:         domain.ModeRun,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, domain.FailureNotConfigured, o.Failure)
	}
}

func TestDispatch_AuthenticationFailureIsFatal(t *testing.T) {
	f := newFixture(t, 1)
	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Session{}, domain.ErrAuthenticationFailed)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     devOnlyTopology(),
		Environments: []string{"DEV"},
		BuildType:    domain.BuildTypeMaven,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrAuthenticationFailed.Error())
	assert.Nil(t, outcomes)
}

func TestDispatch_NoEnvironments(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:  devOnlyTopology(),
		BuildType: domain.BuildTypeMaven,
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNoEnvironments.Error())
}

func TestDispatch_RunFailures(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		err     error
		failure domain.FailureKind
	}{
		{name: "transport error", err: errors.New("connection refused"), failure: domain.FailureDispatch},
		{name: "missing execution id", id: "", failure: domain.FailureDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 1)
			f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)
			f.jobs.EXPECT().RunJob(gomock.Any(), session, gomock.Any()).Return(tt.id, tt.err)

			outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
				Topology:     devOnlyTopology(),
				Environments: []string{"DEV"},
				BuildType:    domain.BuildTypeMaven,
				Wait:         true,
			})
			require.NoError(t, err)
			require.Len(t, outcomes, 1)
			assert.Equal(t, tt.failure, outcomes[0].Failure)
			assert.Equal(t, "dispatch_failed", outcomes[0].State())
			assert.ErrorContains(t, outcomes[0].Err, domain.ErrDispatchFailed.Error())
		})
	}
}

func TestDispatch_WatchResults(t *testing.T) {
	tests := []struct {
		status  domain.ExecutionStatus
		failure domain.FailureKind
	}{
		{domain.StatusFailed, domain.FailureExecution},
		{domain.StatusTimedOut, domain.FailureTimeout},
		{domain.StatusUnknown, domain.FailureTransport},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newFixture(t, 1)
			f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)
			f.jobs.EXPECT().RunJob(gomock.Any(), session, gomock.Any()).Return("9", nil)
			f.watcher.EXPECT().Watch(gomock.Any(), session, "9", gomock.Any()).
				Return(domain.WatchResult{Status: tt.status, Err: errors.New("watch ended")})

			outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
				Topology:     devOnlyTopology(),
				Environments: []string{"DEV"},
				BuildType:    domain.BuildTypeMaven,
				Wait:         true,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.status, outcomes[0].Status)
			assert.Equal(t, tt.failure, outcomes[0].Failure)
			assert.Equal(t, string(tt.status), outcomes[0].State())
			assert.False(t, outcomes[0].Succeeded())
		})
	}
}

func TestDispatch_NoWait(t *testing.T) {
	f := newFixture(t, 1)
	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), session, gomock.Any()).Return("5", nil)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     devOnlyTopology(),
		Environments: []string{"DEV"},
		BuildType:    domain.BuildTypeMaven,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, outcomes[0].Status)
	assert.True(t, outcomes[0].Succeeded())
}

func TestDispatch_Schedule(t *testing.T) {
	f := newFixture(t, 1)
	now := time.Date(2026, 5, 4, 22, 15, 0, 0, time.Local)
	f.dispatcher.SetNow(func() time.Time { return now })

	topo := domain.NewResourceTopology("payments", map[string]map[domain.BuildType]domain.EnvironmentTarget{
		"DEV": {domain.BuildTypeNPM: {JobName: "job-dev", Nodes: []domain.Node{{URL: "dev1"}}}},
		"UAT": {domain.BuildTypeNPM: {JobName: "job-uat", Nodes: []domain.Node{{URL: "uat1"}}}},
	})

	want := now.Add(2 * time.Hour)
	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil).Times(1)
	f.jobs.EXPECT().ScheduleJob(gomock.Any(), session, gomock.Any(), want).Return("", nil).Times(2)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     topo,
		Environments: []string{"DEV", "UAT"},
		BuildType:    domain.BuildTypeNPM,
		Mode:         domain.ModeSchedule,
		Delay:        2 * time.Hour,
		Wait:         true,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, domain.StatusScheduled, o.Status)
		assert.True(t, o.Succeeded())
	}
	assert.Equal(t, "2026-05-05T00:15:00", want.Format(domain.ScheduleTimeLayout))
}

func TestDispatch_Inline(t *testing.T) {
	f := newFixture(t, 1)
	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)
	f.jobs.EXPECT().RunJob(gomock.Any(), session, domain.JobRequest{
		JobName:   "adhoc",
		ArgString: "n1,n2",
	}).Return("77", nil)

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     domain.NewInlineTopology("adhoc", "n1, n2"),
		Environments: []string{"DEV", "UAT"},
		BuildType:    domain.BuildTypeDocker,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.InlineEnvironment, outcomes[0].Environment)
	assert.Equal(t, "running", outcomes[0].Properties()["DEPLOY_STATUS"])
}

func TestDispatch_ParallelKeepsOrder(t *testing.T) {
	f := newFixture(t, 4)

	envs := []string{"E1", "E2", "E3", "E4", "E5", "E6"}
	targets := map[string]map[domain.BuildType]domain.EnvironmentTarget{}
	for _, e := range envs {
		targets[e] = map[domain.BuildType]domain.EnvironmentTarget{
			domain.BuildTypeTar: {JobName: "job-" + e, Nodes: []domain.Node{{URL: e}}},
		}
	}

	var mu sync.Mutex
	inFlight, peak := 0, 0

	f.jobs.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil).Times(1)
	f.jobs.EXPECT().RunJob(gomock.Any(), session, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Session, req domain.JobRequest) (string, error) {
			mu.Lock()
			inFlight++
			peak = max(peak, inFlight)
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return "id-" + req.ArgString, nil
		}).Times(len(envs))

	outcomes, err := f.dispatcher.Dispatch(t.Context(), dispatcher.Request{
		Topology:     domain.NewResourceTopology("p", targets),
		Environments: envs,
		BuildType:    domain.BuildTypeTar,
	})
	require.NoError(t, err)
	require.Len(t, outcomes, len(envs))
	for i, e := range envs {
		assert.Equal(t, e, outcomes[i].Environment)
		assert.Equal(t, "id-"+e, outcomes[i].ExecutionID)
	}
	assert.LessOrEqual(t, peak, 4)
}
