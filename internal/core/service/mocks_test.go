package service

import (
	"context"
	"resizer/internal/core/domain"
	"sync"
)

type mockNotifier struct {
	mutex    sync.Mutex
	messages []string
	kinds    []domain.NotificationKind
}

func (m *mockNotifier) Notify(message string, kind domain.NotificationKind) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.messages = append(m.messages, message)
	m.kinds = append(m.kinds, kind)
}

func (m *mockNotifier) count() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.messages)
}

func (m *mockNotifier) last() (string, domain.NotificationKind) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.messages) == 0 {
		return "", ""
	}
	return m.messages[len(m.messages)-1], m.kinds[len(m.kinds)-1]
}

type mockStorage struct {
	raw     []byte
	loadErr error
	saveErr error
	deleted bool
}

func (m *mockStorage) Load() ([]byte, error) {
	return m.raw, m.loadErr
}

func (m *mockStorage) Save(record []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.raw = record
	return nil
}

func (m *mockStorage) Delete() error {
	m.raw = nil
	m.deleted = true
	return nil
}

type mockHost struct {
	mutex   sync.Mutex
	url     string
	err     error
	calls   int
	uris    []string
	opts    []domain.UploadOptions
	block   bool
	started chan struct{}
}

func (m *mockHost) Upload(ctx context.Context, dataURI string, opts domain.UploadOptions) (string, error) {
	m.mutex.Lock()
	m.calls++
	m.uris = append(m.uris, dataURI)
	m.opts = append(m.opts, opts)
	block := m.block
	m.mutex.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	return m.url, m.err
}

func (m *mockHost) callCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls
}

type mockResizeService struct {
	records      [][]domain.JobRecord
	listErr      error
	listCalls    int
	deleteErr    error
	deleted      []string
	submitResult domain.TransformationResult
	submitErr    error
	submitted    []domain.TransformationRequest
	tokens       []string
	release      chan struct{}
}

func (m *mockResizeService) Submit(_ context.Context, token string,
	req domain.TransformationRequest) (domain.TransformationResult, error) {
	m.tokens = append(m.tokens, token)
	m.submitted = append(m.submitted, req)
	if m.release != nil {
		<-m.release
	}
	return m.submitResult, m.submitErr
}

// ListJobs returns the next queued page of records, repeating the last one.
func (m *mockResizeService) ListJobs(_ context.Context, token, _ string) ([]domain.JobRecord, error) {
	m.tokens = append(m.tokens, token)
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.records) == 0 {
		return nil, nil
	}
	i := min(m.listCalls-1, len(m.records)-1)
	return m.records[i], nil
}

func (m *mockResizeService) DeleteJob(_ context.Context, token, jobID string) error {
	m.tokens = append(m.tokens, token)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, jobID)
	return nil
}

type mockAuthService struct {
	status     int
	signupErr  error
	loginBody  []byte
	loginErr   error
	signups    []domain.SignupForm
	logins     []domain.LoginForm
}

func (m *mockAuthService) SignUp(_ context.Context, form domain.SignupForm) (int, error) {
	m.signups = append(m.signups, form)
	return m.status, m.signupErr
}

func (m *mockAuthService) LogIn(_ context.Context, form domain.LoginForm) ([]byte, error) {
	m.logins = append(m.logins, form)
	return m.loginBody, m.loginErr
}

type mockSaver struct {
	path  string
	err   error
	calls []string
}

func (m *mockSaver) SaveResult(_ context.Context, url, dir, name string) (string, error) {
	m.calls = append(m.calls, url+"|"+dir+"|"+name)
	if m.err != nil {
		return "", m.err
	}
	return m.path, nil
}
