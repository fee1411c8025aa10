package notify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowlogic-ai/lead-intake/pkg/postmark"
)

type mockMailClient struct {
	mock.Mock
}

func (m *mockMailClient) SendEmail(ctx context.Context, req postmark.EmailRequest) (*postmark.EmailResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postmark.EmailResponse), args.Error(1)
}
