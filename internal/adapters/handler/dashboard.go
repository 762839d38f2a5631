package handler

import (
	"context"
	"fmt"
	"io"
	"resizer/internal/core/domain"
	"resizer/internal/core/service"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

type Jobs interface {
	Fetch(ctx context.Context, identity domain.Identity) ([]domain.Job, error)
	Delete(ctx context.Context, jobID string) error
	SetQuery(query string)
	SetStatus(status domain.JobStatus)
	Filtered() []domain.Job
	Select(jobID string)
	Selected() (domain.Job, bool)
	Find(jobID string) (domain.Job, error)
}

type ListOptions struct {
	Query  string
	Status domain.JobStatus
	Output string
}

// DashboardView renders the job list and its detail pane.
type DashboardView struct {
	auth service.Authorizer
	jobs Jobs
	out  io.Writer
}

func NewDashboardView(auth service.Authorizer, jobs Jobs, out io.Writer) *DashboardView {
	return &DashboardView{auth: auth, jobs: jobs, out: out}
}

func (v *DashboardView) List(ctx context.Context, opts ListOptions) error {
	if err := v.fetch(ctx); err != nil {
		return err
	}

	v.jobs.SetQuery(opts.Query)
	v.jobs.SetStatus(opts.Status)
	jobs := v.jobs.Filtered()

	log.Debug().Int("jobs", len(jobs)).Str("query", opts.Query).Msg("listing jobs")

	switch opts.Output {
	case OutputYAML:
		if jobs == nil {
			jobs = []domain.Job{}
		}
		return v.writeYAML(jobs)
	case OutputTable, "":
		if len(jobs) == 0 {
			_, err := fmt.Fprintln(v.out, "No resizes found")
			return err
		}
		return v.writeTable(jobs)
	default:
		return fmt.Errorf("unknown output %q, want %s or %s", opts.Output, OutputTable, OutputYAML)
	}
}

func (v *DashboardView) Show(ctx context.Context, jobID, output string) error {
	if err := v.fetch(ctx); err != nil {
		return err
	}

	v.jobs.Select(jobID)
	job, ok := v.jobs.Selected()
	if !ok {
		return domain.ErrJobNotFound
	}

	if output == OutputYAML {
		return v.writeYAML(job)
	}

	var b strings.Builder
	for _, row := range [][2]string{
		{"ID", job.ID},
		{"File", job.FileName},
		{"Dimensions", job.TargetDimensions},
		{"Format", job.OutputFormat},
		{"Created", job.CreatedAt},
		{"Status", string(job.Status)},
		{"Resized", job.ResizedURL},
		{"Original", job.OriginalURL},
	} {
		fmt.Fprintf(&b, "%-11s %s\n", row[0]+":", row[1])
	}

	_, err := io.WriteString(v.out, b.String())

	return err
}

// Delete removes a job once confirm approves it. It reports whether the job
// was deleted.
func (v *DashboardView) Delete(ctx context.Context, jobID string, confirm func(domain.Job) bool) (bool, error) {
	if err := v.fetch(ctx); err != nil {
		return false, err
	}

	job, err := v.jobs.Find(jobID)
	if err != nil {
		return false, err
	}

	if !confirm(job) {
		log.Debug().Str("jobId", jobID).Msg("delete not confirmed")
		return false, nil
	}

	if err := v.jobs.Delete(ctx, jobID); err != nil {
		return false, err
	}

	return true, nil
}

func (v *DashboardView) fetch(ctx context.Context) error {
	identity, err := v.auth.Require()
	if err != nil {
		return err
	}

	_, err = v.jobs.Fetch(ctx, identity)

	return err
}

func (v *DashboardView) writeTable(jobs []domain.Job) error {
	rows := make([][]string, len(jobs))
	for i, job := range jobs {
		rows[i] = []string{job.ID, job.FileName, job.TargetDimensions, job.OutputFormat, job.CreatedAt, string(job.Status)}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "FILE", "SIZE", "FORMAT", "CREATED", "STATUS").
		Rows(rows...)

	_, err := fmt.Fprintln(v.out, t.String())

	return err
}

func (v *DashboardView) writeYAML(value any) error {
	enc := yaml.NewEncoder(v.out)
	enc.SetIndent(2)

	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("error encoding yaml: %w", err)
	}

	return enc.Close()
}
