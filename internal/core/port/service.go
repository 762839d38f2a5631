package port

import (
	"context"
	"resizer/internal/core/domain"
)

type ResizeService interface {
	// Submit sends a transformation request. token may be empty.
	Submit(ctx context.Context, token string, req domain.TransformationRequest) (domain.TransformationResult, error)
	// ListJobs returns all jobs recorded for userID.
	ListJobs(ctx context.Context, token, userID string) ([]domain.JobRecord, error)
	// DeleteJob removes a single job.
	DeleteJob(ctx context.Context, token, jobID string) error
}

type AuthService interface {
	// SignUp registers an account and returns the response status code.
	SignUp(ctx context.Context, form domain.SignupForm) (int, error)
	// LogIn returns the raw login response body.
	LogIn(ctx context.Context, form domain.LoginForm) ([]byte, error)
}
