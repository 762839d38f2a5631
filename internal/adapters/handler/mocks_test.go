package handler

import (
	"context"
	"resizer/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthorizer struct {
	identity domain.Identity
	err      error
}

func (m *MockAuthorizer) Require() (domain.Identity, error) {
	return m.identity, m.err
}

type MockUploads struct{ mock.Mock }

func (m *MockUploads) Start(ctx context.Context, file domain.SourceFile, opts domain.UploadOptions) (string, error) {
	args := m.Called(ctx, file, opts)
	return args.String(0), args.Error(1)
}

type MockProbe struct{ mock.Mock }

func (m *MockProbe) NaturalSize(ctx context.Context, url string) (domain.Size, error) {
	args := m.Called(ctx, url)
	size, _ := args.Get(0).(domain.Size)
	return size, args.Error(1)
}

type MockTransformations struct{ mock.Mock }

func (m *MockTransformations) Submit(ctx context.Context, identity domain.Identity,
	req domain.TransformationRequest) (domain.TransformationResult, error) {
	args := m.Called(ctx, identity, req)
	result, _ := args.Get(0).(domain.TransformationResult)
	return result, args.Error(1)
}

func (m *MockTransformations) Download(ctx context.Context, url, dir, format string) (string, error) {
	args := m.Called(ctx, url, dir, format)
	return args.String(0), args.Error(1)
}

type MockJobs struct{ mock.Mock }

func (m *MockJobs) Fetch(ctx context.Context, identity domain.Identity) ([]domain.Job, error) {
	args := m.Called(ctx, identity)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobs) Delete(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockJobs) SetQuery(query string) {
	m.Called(query)
}

func (m *MockJobs) SetStatus(status domain.JobStatus) {
	m.Called(status)
}

func (m *MockJobs) Filtered() []domain.Job {
	args := m.Called()
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs
}

func (m *MockJobs) Select(jobID string) {
	m.Called(jobID)
}

func (m *MockJobs) Selected() (domain.Job, bool) {
	args := m.Called()
	job, _ := args.Get(0).(domain.Job)
	return job, args.Bool(1)
}

func (m *MockJobs) Find(jobID string) (domain.Job, error) {
	args := m.Called(jobID)
	job, _ := args.Get(0).(domain.Job)
	return job, args.Error(1)
}
