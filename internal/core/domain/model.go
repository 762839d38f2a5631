package domain

import (
	"context"
	"time"
)

// Identity is the user identity read once per command from the session store.
type Identity struct {
	UserID      string
	AccessToken string
}

type Size struct {
	Width  int
	Height int
}

type Preset struct {
	Label  string
	Width  int
	Height int
}

// SourceFile is a local file selected for upload.
type SourceFile struct {
	Name     string
	MimeType string
	Data     []byte
}

func (f SourceFile) Size() int64 {
	return int64(len(f.Data))
}

type UploadOptions struct {
	// Format asks the hosting service to store the image in this format.
	// Empty leaves the source format untouched.
	Format string `json:"format,omitempty"`
}

type Crop struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type TransformationRequest struct {
	ImageLink         string `json:"imageLink"`
	ImageFormat       string `json:"imageFormat"`
	ManageAspectRatio bool   `json:"manageAspectRatio"`
	Size              string `json:"size"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	OutputFormat      string `json:"outputFormat"`
	UserID            string `json:"userId"`
	Rotate            int    `json:"rotate,omitempty"`
	Crop              *Crop  `json:"crop,omitempty"`
	Filter            string `json:"filter,omitempty"`
}

type TransformationResult struct {
	Success         bool   `json:"success"`
	ResizedImageURL string `json:"resizedImageUrl"`
	Message         string `json:"message"`
}

// JobRecord is a job as reported by the resize service.
type JobRecord struct {
	ID              string
	UserID          string
	ImageLink       string
	ResizedImageURL string
	ImageFormat     string
	OutputFormat    string
	Width           string
	Height          string
	CreatedAt       string
}

type JobStatus string

const (
	StatusReady      JobStatus = "Ready"
	StatusProcessing JobStatus = "Processing"
	StatusFailed     JobStatus = "Failed"
)

// StatusAll matches every job when used as a status filter.
const StatusAll JobStatus = "All"

type Job struct {
	ID               string    `json:"id" yaml:"id"`
	FileName         string    `json:"fileName" yaml:"fileName"`
	TargetDimensions string    `json:"targetDimensions" yaml:"targetDimensions"`
	OutputFormat     string    `json:"outputFormat" yaml:"outputFormat"`
	CreatedAt        string    `json:"createdAt" yaml:"createdAt"`
	Status           JobStatus `json:"status" yaml:"status"`
	ResizedURL       string    `json:"resizedUrl" yaml:"resizedUrl"`
	OriginalURL      string    `json:"originalUrl" yaml:"originalUrl"`
}

type NotificationKind string

const (
	Success NotificationKind = "success"
	Error   NotificationKind = "error"
)

type Notification struct {
	Message string
	Kind    NotificationKind
	Shown   time.Time
}

// UploadState is one of UploadIdle, UploadInFlight, UploadSucceeded,
// UploadFailed or UploadAborted.
type UploadState interface {
	uploadState()
}

type UploadIdle struct{}

type UploadInFlight struct {
	ID     string
	Cancel context.CancelFunc
}

type UploadSucceeded struct {
	URL string
}

type UploadFailed struct {
	Err error
}

type UploadAborted struct{}

func (UploadIdle) uploadState()      {}
func (UploadInFlight) uploadState()  {}
func (UploadSucceeded) uploadState() {}
func (UploadFailed) uploadState()    {}
func (UploadAborted) uploadState()   {}

type SignupForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginForm struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}
