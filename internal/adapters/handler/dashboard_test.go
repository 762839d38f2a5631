package handler

import (
	"bytes"
	"errors"
	"resizer/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var dashboardJobs = []domain.Job{
	{
		ID:               "a1",
		FileName:         "cat.png",
		TargetDimensions: "800 × 600",
		OutputFormat:     "JPG",
		CreatedAt:        "Mar 5, 2024 • 14:07",
		Status:           domain.StatusReady,
		ResizedURL:       "https://cdn.example.org/r/a1.jpg",
		OriginalURL:      "https://cdn.example.org/cat.png",
	},
	{
		ID:               "b2",
		FileName:         "dog.webp",
		TargetDimensions: "1280 × 720",
		OutputFormat:     "WEBP",
		CreatedAt:        "Mar 6, 2024 • 09:30",
		Status:           domain.StatusReady,
	},
}

func TestDashboardView_List(t *testing.T) {
	tests := []struct {
		name     string
		opts     ListOptions
		filtered []domain.Job
		contains []string
		wantErr  bool
	}{
		{
			name:     "table",
			opts:     ListOptions{Status: domain.StatusAll},
			filtered: dashboardJobs,
			contains: []string{"ID", "FILE", "a1", "cat.png", "800 × 600", "dog.webp", "WEBP", "Ready"},
		},
		{
			name:     "empty",
			opts:     ListOptions{Query: "zebra", Status: domain.StatusAll, Output: OutputTable},
			contains: []string{"No resizes found"},
		},
		{
			name:    "unknown output",
			opts:    ListOptions{Output: "csv"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jobs := &MockJobs{}
			jobs.On("Fetch", mock.Anything, user).Return(dashboardJobs, nil).Once()
			jobs.On("SetQuery", tc.opts.Query).Once()
			jobs.On("SetStatus", tc.opts.Status).Once()
			jobs.On("Filtered").Return(tc.filtered).Once()

			out := new(bytes.Buffer)
			view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, out)

			err := view.List(t.Context(), tc.opts)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, out.String(), s)
			}
			jobs.AssertExpectations(t)
		})
	}
}

func TestDashboardView_ListYAML(t *testing.T) {
	jobs := &MockJobs{}
	jobs.On("Fetch", mock.Anything, user).Return(dashboardJobs, nil)
	jobs.On("SetQuery", "cat")
	jobs.On("SetStatus", domain.StatusReady)
	jobs.On("Filtered").Return(dashboardJobs[:1])

	out := new(bytes.Buffer)
	view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, out)

	require.NoError(t, view.List(t.Context(), ListOptions{Query: "cat", Status: domain.StatusReady, Output: OutputYAML}))

	var got []domain.Job
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, dashboardJobs[:1], got)
}

func TestDashboardView_ListFetchFailure(t *testing.T) {
	jobs := &MockJobs{}
	jobs.On("Fetch", mock.Anything, user).Return(nil, errors.New("Failed to fetch resizes"))

	view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, new(bytes.Buffer))

	err := view.List(t.Context(), ListOptions{})
	require.Error(t, err)
	jobs.AssertNotCalled(t, "Filtered")
}

func TestDashboardView_Show(t *testing.T) {
	jobs := &MockJobs{}
	jobs.On("Fetch", mock.Anything, user).Return(dashboardJobs, nil)
	jobs.On("Select", "a1").Once()
	jobs.On("Selected").Return(dashboardJobs[0], true).Once()

	out := new(bytes.Buffer)
	view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, out)

	require.NoError(t, view.Show(t.Context(), "a1", ""))
	assert.Contains(t, out.String(), "File:       cat.png\n")
	assert.Contains(t, out.String(), "Resized:    https://cdn.example.org/r/a1.jpg\n")
	jobs.AssertExpectations(t)
}

func TestDashboardView_ShowMissing(t *testing.T) {
	jobs := &MockJobs{}
	jobs.On("Fetch", mock.Anything, user).Return(dashboardJobs, nil)
	jobs.On("Select", "zz")
	jobs.On("Selected").Return(nil, false)

	view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, new(bytes.Buffer))

	assert.ErrorIs(t, view.Show(t.Context(), "zz", ""), domain.ErrJobNotFound)
}

func TestDashboardView_Delete(t *testing.T) {
	tests := []struct {
		name        string
		confirm     bool
		deleteErr   error
		wantDeleted bool
		wantErr     bool
	}{
		{name: "confirmed", confirm: true, wantDeleted: true},
		{name: "declined", confirm: false},
		{name: "server error", confirm: true, deleteErr: errors.New("Failed to delete resize"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jobs := &MockJobs{}
			jobs.On("Fetch", mock.Anything, user).Return(dashboardJobs, nil)
			jobs.On("Find", "a1").Return(dashboardJobs[0], nil)
			if tc.confirm {
				jobs.On("Delete", mock.Anything, "a1").Return(tc.deleteErr).Once()
			}

			view := NewDashboardView(&MockAuthorizer{identity: user}, jobs, new(bytes.Buffer))

			var asked domain.Job
			deleted, err := view.Delete(t.Context(), "a1", func(job domain.Job) bool {
				asked = job
				return tc.confirm
			})

			assert.Equal(t, tc.wantDeleted, deleted)
			assert.Equal(t, "cat.png", asked.FileName)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			if !tc.confirm {
				jobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
			jobs.AssertExpectations(t)
		})
	}
}

func TestDashboardView_RequiresLogin(t *testing.T) {
	jobs := &MockJobs{}
	view := NewDashboardView(&MockAuthorizer{err: domain.ErrNotAuthenticated}, jobs, new(bytes.Buffer))

	err := view.List(t.Context(), ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = view.Delete(t.Context(), "a1", func(domain.Job) bool { return true })
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	jobs.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}
