package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flowlogic-ai/lead-intake/internal/config"
	"github.com/flowlogic-ai/lead-intake/internal/model"
	"github.com/flowlogic-ai/lead-intake/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testSubmission() *model.LeadSubmission {
	return &model.LeadSubmission{
		Name:            "Dana Reyes",
		Email:           "dana@acmefreight.test",
		Phone:           "555-0142",
		Company:         "Acme Freight",
		Industry:        "logistics",
		BusinessSize:    model.Size21To50,
		AutomationGoals: []string{"reduce manual data entry"},
		Timeline:        model.Timeline1To3Mo,
		Budget:          model.Budget25To50K,
		ProjectIdeas: []model.ProjectIdea{
			{Title: "Invoice capture", Priority: "high"},
		},
	}
}

type fixture struct {
	presence *mockPresence
	research *mockResearcher
	guides   *mockGuideGenerator
	crm      *mockRecorder
	notify   *mockNotifier
	orch     *Orchestrator
	store    store.Store
}

func newFixture(t *testing.T, crmConfigured bool) *fixture {
	t.Helper()
	f := &fixture{
		presence: &mockPresence{},
		research: &mockResearcher{},
		guides:   &mockGuideGenerator{},
		crm:      &mockRecorder{configured: crmConfigured},
		notify:   &mockNotifier{},
		store:    newTestStore(t),
	}
	f.orch = New(&config.Config{}, f.store, f.presence, f.research, f.guides, f.crm, f.notify)
	return f
}

func rec(id string) *model.CRMRecord {
	return &model.CRMRecord{ID: id}
}

func TestRun_AllStagesSucceed(t *testing.T) {
	f := newFixture(t, true)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(nil)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{OverallScore: 70})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&model.ResearchResult{IndustryInsights: "thin margins"}, nil)
	f.crm.On("FindOrCreateClient", mock.Anything, mock.Anything).Return(rec("client-1"), false, nil)
	f.crm.On("CreateContact", mock.Anything, mock.Anything, "client-1").Return(rec("contact-1"), nil)
	f.crm.On("CreateIntakeForm", mock.Anything, mock.Anything, mock.Anything, "client-1", "contact-1").Return(rec("intake-1"), nil)
	f.guides.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.StyleGuideSet{CompanyGuide: model.StyleGuide{Title: "Company"}, ContactGuide: model.StyleGuide{Title: "Contact"}}, nil)
	f.crm.On("CreateStyleGuide", mock.Anything, mock.Anything, "Client", "client-1").Return(rec("guide-1"), nil)
	f.crm.On("CreateStyleGuide", mock.Anything, mock.Anything, "Contact", "contact-1").Return(rec("guide-2"), nil)
	f.crm.On("CreateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "client-1").Return(rec("proposal-1"), nil)
	f.crm.On("CreateEstimates", mock.Anything, mock.Anything, "proposal-1").
		Return([]model.CRMRecord{{ID: "est-1"}, {ID: "est-2"}}, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.True(t, result.AckSent)
	assert.True(t, result.SalesSent)
	require.NotNil(t, result.Score)
	assert.Equal(t, 140, result.Score.MaxScore)
	require.NotNil(t, result.CRM)
	assert.Equal(t, "client-1", result.CRM.Client.ID)
	assert.Len(t, result.CRM.Estimates, 2)

	run, err := f.store.GetRun(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	require.NotNil(t, run.Result)
	assert.True(t, run.Result.Success)

	f.crm.AssertExpectations(t)
	f.notify.AssertExpectations(t)
}

func TestRun_ClientFailureSkipsContact(t *testing.T) {
	f := newFixture(t, true)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(nil)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&model.ResearchResult{}, nil)
	f.crm.On("FindOrCreateClient", mock.Anything, mock.Anything).Return(nil, false, assert.AnError)
	f.crm.On("CreateIntakeForm", mock.Anything, mock.Anything, mock.Anything, "", "").Return(rec("intake-1"), nil)
	f.guides.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.crm.On("CreateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "").Return(rec("proposal-1"), nil)
	f.crm.On("CreateEstimates", mock.Anything, mock.Anything, "proposal-1").Return([]model.CRMRecord{{ID: "est-1"}}, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
	// Score, presence, research, and notification still completed.
	assert.NotNil(t, result.Score)
	assert.NotNil(t, result.WebPresence)
	assert.True(t, result.SalesSent)

	f.crm.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything, mock.Anything)

	run, err := f.store.GetRun(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusDegraded, run.Status)

	stages, err := f.store.ListStages(context.Background(), result.RunID)
	require.NoError(t, err)
	byName := map[string]model.StageResult{}
	for _, s := range stages {
		byName[s.Name] = s
	}
	assert.Equal(t, model.StageStatusFailed, byName["client"].Status)
	assert.Equal(t, model.StageStatusSkipped, byName["contact"].Status)
	assert.Equal(t, model.StageStatusComplete, byName["intake_form"].Status)
}

func TestRun_ResearchErrorNonFatal(t *testing.T) {
	f := newFixture(t, false)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(nil)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)
	f.guides.On("Generate", mock.Anything, mock.Anything, (*model.ResearchResult)(nil)).Return(nil, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		(*model.ResearchResult)(nil), (*model.StyleGuideSet)(nil)).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Research)
	assert.True(t, result.SalesSent)
	f.notify.AssertExpectations(t)
}

func TestRun_UnconfiguredCRMSkipsRecording(t *testing.T) {
	f := newFixture(t, false)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(nil)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.guides.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(&model.StyleGuideSet{}, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.CRM)
	assert.NotNil(t, result.StyleGuides)
	f.crm.AssertNotCalled(t, "FindOrCreateClient", mock.Anything, mock.Anything)
}

func TestRun_AckFailureIsCollected(t *testing.T) {
	f := newFixture(t, false)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(assert.AnError)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.guides.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.False(t, result.AckSent)
	assert.True(t, result.SalesSent)
}

// unavailableStore fails run creation; nothing else should be reached once
// the run row is absent.
type unavailableStore struct {
	store.Store
}

func (unavailableStore) CreateRun(context.Context, *model.LeadSubmission) (*model.Run, error) {
	return nil, errors.New("audit db down")
}

func TestRun_StoreFailureDoesNotAbort(t *testing.T) {
	f := newFixture(t, true)
	f.orch = New(&config.Config{}, unavailableStore{}, f.presence, f.research, f.guides, f.crm, f.notify)

	f.notify.On("SendAck", mock.Anything, mock.Anything).Return(nil)
	f.presence.On("Analyze", mock.Anything, mock.Anything).Return(&model.WebPresenceScore{OverallScore: 55})
	f.research.On("Research", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&model.ResearchResult{}, nil)
	f.crm.On("FindOrCreateClient", mock.Anything, mock.Anything).Return(rec("client-1"), false, nil)
	f.crm.On("CreateContact", mock.Anything, mock.Anything, "client-1").Return(rec("contact-1"), nil)
	f.crm.On("CreateIntakeForm", mock.Anything, mock.Anything, mock.Anything, "client-1", "contact-1").Return(rec("intake-1"), nil)
	f.guides.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	f.crm.On("CreateProposal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "client-1").Return(rec("proposal-1"), nil)
	f.crm.On("CreateEstimates", mock.Anything, mock.Anything, "proposal-1").Return([]model.CRMRecord{{ID: "est-1"}}, nil)
	f.notify.On("SendSalesNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.orch.Run(context.Background(), testSubmission())

	// The audit store is degraded; the evaluation is not.
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.RunID)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "create run")

	assert.True(t, result.AckSent)
	assert.True(t, result.SalesSent)
	assert.NotNil(t, result.Score)
	assert.NotNil(t, result.WebPresence)
	assert.Equal(t, "client-1", result.CRM.Client.ID)

	f.notify.AssertCalled(t, "SendAck", mock.Anything, mock.Anything)
	f.presence.AssertCalled(t, "Analyze", mock.Anything, mock.Anything)
	f.crm.AssertExpectations(t)
	f.notify.AssertExpectations(t)
}
