package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowlogic-ai/lead-intake/internal/model"
)

type mockPresence struct {
	mock.Mock
}

func (m *mockPresence) Analyze(ctx context.Context, sub *model.LeadSubmission) *model.WebPresenceScore {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.WebPresenceScore)
}

type mockResearcher struct {
	mock.Mock
}

func (m *mockResearcher) Research(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore) (*model.ResearchResult, error) {
	args := m.Called(ctx, sub, score, presence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResearchResult), args.Error(1)
}

type mockGuideGenerator struct {
	mock.Mock
}

func (m *mockGuideGenerator) Generate(ctx context.Context, sub *model.LeadSubmission, research *model.ResearchResult) (*model.StyleGuideSet, error) {
	args := m.Called(ctx, sub, research)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StyleGuideSet), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
	configured bool
}

func (m *mockRecorder) Configured() bool {
	return m.configured
}

func (m *mockRecorder) FindOrCreateClient(ctx context.Context, sub *model.LeadSubmission) (*model.CRMRecord, bool, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.CRMRecord), args.Bool(1), args.Error(2)
}

func (m *mockRecorder) CreateContact(ctx context.Context, sub *model.LeadSubmission, clientID string) (*model.CRMRecord, error) {
	args := m.Called(ctx, sub, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRMRecord), args.Error(1)
}

func (m *mockRecorder) CreateIntakeForm(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, clientID, contactID string) (*model.CRMRecord, error) {
	args := m.Called(ctx, sub, score, clientID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRMRecord), args.Error(1)
}

func (m *mockRecorder) CreateStyleGuide(ctx context.Context, guide *model.StyleGuide, relProp, relID string) (*model.CRMRecord, error) {
	args := m.Called(ctx, guide, relProp, relID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRMRecord), args.Error(1)
}

func (m *mockRecorder) CreateProposal(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, research *model.ResearchResult, clientID string) (*model.CRMRecord, error) {
	args := m.Called(ctx, sub, score, research, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRMRecord), args.Error(1)
}

func (m *mockRecorder) CreateEstimates(ctx context.Context, sub *model.LeadSubmission, proposalID string) ([]model.CRMRecord, error) {
	args := m.Called(ctx, sub, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CRMRecord), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendAck(ctx context.Context, sub *model.LeadSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockNotifier) SendSalesNotification(ctx context.Context, sub *model.LeadSubmission, score *model.LeadScore, presence *model.WebPresenceScore, research *model.ResearchResult, guides *model.StyleGuideSet) error {
	args := m.Called(ctx, sub, score, presence, research, guides)
	return args.Error(0)
}
