package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"actadash/internal/blob"
	"actadash/internal/jobs"
	"actadash/internal/models"
)

// ProjectStore is a mock for api.ProjectStore.
type ProjectStore struct {
	mock.Mock
}

func (m *ProjectStore) GetProject(ctx context.Context, id string) (*models.ProjectRecord, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*models.ProjectRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) ListProjects(ctx context.Context) ([]models.ProjectRecord, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.ProjectRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) ListProjectsByManager(ctx context.Context, email string) ([]models.ProjectRecord, error) {
	args := m.Called(ctx, email)
	if list, ok := args.Get(0).([]models.ProjectRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// DocumentResolver is a mock for api.DocumentResolver.
type DocumentResolver struct {
	mock.Mock
}

func (m *DocumentResolver) Resolve(ctx context.Context, projectID string, format blob.Format) (blob.Result, error) {
	args := m.Called(ctx, projectID, format)
	return args.Get(0).(blob.Result), args.Error(1)
}

func (m *DocumentResolver) Mint(ctx context.Context, res *blob.Result) error {
	args := m.Called(ctx, res)
	if fn, ok := args.Get(0).(func(*blob.Result)); ok {
		fn(res)
		return nil
	}
	return args.Error(0)
}

// Generator is a mock for api.Generator.
type Generator struct {
	mock.Mock
}

func (m *Generator) Trigger(ctx context.Context, projectID, pmEmail string) (*jobs.Job, error) {
	args := m.Called(ctx, projectID, pmEmail)
	if job, ok := args.Get(0).(*jobs.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Generator) TriggerAll(ctx context.Context, projectIDs []string, pmEmail string) ([]string, []string) {
	args := m.Called(ctx, projectIDs, pmEmail)
	return args.Get(0).([]string), args.Get(1).([]string)
}

func (m *Generator) Status(actaID string) (*jobs.Job, error) {
	args := m.Called(actaID)
	if job, ok := args.Get(0).(*jobs.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

// ApprovalNotifier is a mock for api.ApprovalNotifier.
type ApprovalNotifier struct {
	mock.Mock
}

func (m *ApprovalNotifier) SendApprovalEmail(ctx context.Context, actaID, clientEmail string) (*models.ApprovalEmailResponse, error) {
	args := m.Called(ctx, actaID, clientEmail)
	if resp, ok := args.Get(0).(*models.ApprovalEmailResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
