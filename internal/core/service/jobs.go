package service

import (
	"context"
	"fmt"
	"resizer/internal/core/domain"
	"resizer/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

// JobRegistry is the dashboard model: the fetched job list, the selected
// job and the active filters.
type JobRegistry struct {
	service  port.ResizeService
	notifier port.Notifier
	location *time.Location

	identity domain.Identity
	jobs     []domain.Job
	selected string
	query    string
	status   domain.JobStatus
}

func NewJobRegistry(service port.ResizeService, notifier port.Notifier, location *time.Location) *JobRegistry {
	if location == nil {
		location = time.Local
	}

	return &JobRegistry{
		service:  service,
		notifier: notifier,
		location: location,
		status:   domain.StatusAll,
	}
}

// Fetch replaces the job list with the server's. On failure the list is
// emptied and the error is surfaced.
func (r *JobRegistry) Fetch(ctx context.Context, identity domain.Identity) ([]domain.Job, error) {
	if identity.UserID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	l := log.With().Str("userId", identity.UserID).Logger()
	r.identity = identity

	records, err := r.service.ListJobs(ctx, identity.AccessToken, identity.UserID)
	if err != nil {
		l.Error().Err(err).Msg("failed to fetch jobs")
		r.jobs = nil
		r.reconcileSelection()
		r.notifier.Notify(domain.UserMessage(err), domain.Error)
		return nil, fmt.Errorf("error fetching jobs: %w", err)
	}

	jobs := make([]domain.Job, len(records))
	for i, record := range records {
		jobs[i] = domain.NewJob(record, r.location)
	}

	r.jobs = jobs
	r.reconcileSelection()
	l.Debug().Int("jobs", len(jobs)).Msg("fetched jobs")

	return r.Jobs(), nil
}

// Delete removes a job and re-fetches the list. Confirmation is the
// caller's responsibility. On failure the list is left untouched.
func (r *JobRegistry) Delete(ctx context.Context, jobID string) error {
	if r.identity.UserID == "" {
		return domain.ErrNotAuthenticated
	}

	l := log.With().Str("jobId", jobID).Logger()

	if err := r.service.DeleteJob(ctx, r.identity.AccessToken, jobID); err != nil {
		l.Error().Err(err).Msg("failed to delete job")
		r.notifier.Notify(domain.UserMessage(err), domain.Error)
		return fmt.Errorf("error deleting job: %w", err)
	}

	l.Info().Msg("deleted job")
	r.notifier.Notify("Resize deleted", domain.Success)

	_, err := r.Fetch(ctx, r.identity)

	return err
}

func (r *JobRegistry) Jobs() []domain.Job {
	jobs := make([]domain.Job, len(r.jobs))
	copy(jobs, r.jobs)

	return jobs
}

// Filtered projects the job list through the query and status filter.
func (r *JobRegistry) Filtered() []domain.Job {
	var jobs []domain.Job
	for _, job := range r.jobs {
		if job.MatchesFilter(r.query, r.status) {
			jobs = append(jobs, job)
		}
	}

	return jobs
}

func (r *JobRegistry) SetQuery(query string) {
	r.query = query
}

func (r *JobRegistry) SetStatus(status domain.JobStatus) {
	r.status = status
}

func (r *JobRegistry) Select(jobID string) {
	r.selected = jobID
}

func (r *JobRegistry) SelectedID() string {
	return r.selected
}

// Selected returns the selected job if it is part of the filtered list.
func (r *JobRegistry) Selected() (domain.Job, bool) {
	for _, job := range r.Filtered() {
		if job.ID == r.selected {
			return job, true
		}
	}

	return domain.Job{}, false
}

// Find looks a job up in the full list, ignoring filters.
func (r *JobRegistry) Find(jobID string) (domain.Job, error) {
	for _, job := range r.jobs {
		if job.ID == jobID {
			return job, nil
		}
	}

	return domain.Job{}, domain.ErrJobNotFound
}

func (r *JobRegistry) reconcileSelection() {
	if _, err := r.Find(r.selected); err == nil {
		return
	}

	if len(r.jobs) == 0 {
		r.selected = ""
		return
	}

	r.selected = r.jobs[0].ID
}
