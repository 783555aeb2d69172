package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/board"
	"github.com/spec-kit/seatboard/internal/events"
	"github.com/spec-kit/seatboard/internal/photo"
	"github.com/spec-kit/seatboard/internal/repository"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// PhotoService stores normalised staff photos and links them to employees.
type PhotoService struct {
	repo       repository.PhotoRepository
	boards     *BoardService
	normalizer photo.Normalizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PhotoDependencies encapsulates collaborators of the photo service.
type PhotoDependencies struct {
	Repo       repository.PhotoRepository
	Boards     *BoardService
	Normalizer photo.Normalizer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewPhotoService constructs the service.
func NewPhotoService(deps PhotoDependencies) *PhotoService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	normalizer := deps.Normalizer
	if normalizer.MaxWidth == 0 {
		normalizer = photo.NewNormalizer(0, 0, 0)
	}
	return &PhotoService{
		repo:       deps.Repo,
		boards:     deps.Boards,
		normalizer: normalizer,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Upload normalises raw and attaches it to the employee.
func (s *PhotoService) Upload(ctx context.Context, employeeID string, raw []byte) (string, error) {
	if err := s.requireEmployee(employeeID); err != nil {
		return "", err
	}
	data, err := s.normalizer.Normalize(raw)
	if err != nil {
		return "", err
	}
	if err := s.repo.Put(ctx, employeeID, data); err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("store photo: %w", err))
	}
	handle := photo.Handle(employeeID)
	if err := s.boards.Update(ctx, "photo_upload", func(m *board.Model) error {
		return m.SetPhoto(employeeID, &handle)
	}); err != nil {
		return "", err
	}
	s.publish(ctx, employeeID, &handle)
	s.logger.Info("photo uploaded", zap.String("employee_id", employeeID), zap.Int("bytes", len(data)))
	return handle, nil
}

// Get returns the stored JPEG bytes for the employee.
func (s *PhotoService) Get(ctx context.Context, employeeID string) ([]byte, error) {
	data, err := s.repo.Get(ctx, employeeID)
	if errors.Is(err, repository.ErrPhotoNotFound) {
		return nil, apperrors.NewNotFound("photo", map[string]any{"employeeId": employeeID})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load photo: %w", err))
	}
	return data, nil
}

// Resolve returns the photo handle recorded on the employee.
func (s *PhotoService) Resolve(employeeID string) (string, error) {
	var handle *string
	found := false
	s.boards.View(func(m *board.Model) {
		if e, ok := m.EmployeeByID(employeeID); ok {
			found = true
			handle = e.Photo
		}
	})
	if !found {
		return "", apperrors.NewNotFound("employee", map[string]any{"id": employeeID})
	}
	if handle == nil {
		return "", apperrors.NewNotFound("photo", map[string]any{"employeeId": employeeID})
	}
	return *handle, nil
}

// Remove detaches and deletes the employee's photo.
func (s *PhotoService) Remove(ctx context.Context, employeeID string) error {
	if err := s.boards.Update(ctx, "photo_remove", func(m *board.Model) error {
		return m.SetPhoto(employeeID, nil)
	}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("delete photo: %w", err))
	}
	s.publish(ctx, employeeID, nil)
	return nil
}

// SetPosition adjusts the vertical crop offset; the stored value is clamped to 0..100.
func (s *PhotoService) SetPosition(ctx context.Context, employeeID string, posY int) (int, error) {
	var applied int
	err := s.boards.Update(ctx, "photo_position", func(m *board.Model) error {
		var err error
		applied, err = m.SetPhotoPosition(employeeID, posY)
		return err
	})
	return applied, err
}

// UploadFile is one file of a bulk upload.
type UploadFile struct {
	Filename string
	Data     []byte
}

// BulkResult reports how each file of a bulk upload was handled.
type BulkResult struct {
	Matched   []BulkMatch `json:"matched"`
	Unmatched []string    `json:"unmatched"`
	Failed    []string    `json:"failed"`
}

// BulkMatch pairs a file with the employee it was attached to.
type BulkMatch struct {
	Filename   string `json:"filename"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// BulkUpload attaches each file to the employee whose name exactly matches the
// file name ("홍길동.jpg" or "홍길동_기획팀.jpg").
func (s *PhotoService) BulkUpload(ctx context.Context, files []UploadFile) BulkResult {
	result := BulkResult{Matched: []BulkMatch{}, Unmatched: []string{}, Failed: []string{}}
	for _, f := range files {
		name := photo.NameFromFilename(f.Filename)
		id := s.employeeIDByExactName(name)
		if id == "" {
			result.Unmatched = append(result.Unmatched, f.Filename)
			continue
		}
		if _, err := s.Upload(ctx, id, f.Data); err != nil {
			s.logger.Warn("bulk photo upload failed", zap.String("filename", f.Filename), zap.Error(err))
			result.Failed = append(result.Failed, f.Filename)
			continue
		}
		result.Matched = append(result.Matched, BulkMatch{Filename: f.Filename, EmployeeID: id, Name: name})
	}
	s.logger.Info("bulk photo upload",
		zap.Int("matched", len(result.Matched)),
		zap.Int("unmatched", len(result.Unmatched)),
		zap.Int("failed", len(result.Failed)))
	return result
}

func (s *PhotoService) employeeIDByExactName(name string) string {
	if name == "" {
		return ""
	}
	id := ""
	s.boards.View(func(m *board.Model) {
		for _, e := range m.Employees() {
			if e.Name == name {
				id = e.ID
				return
			}
		}
	})
	return id
}

func (s *PhotoService) requireEmployee(employeeID string) error {
	found := false
	s.boards.View(func(m *board.Model) {
		_, found = m.EmployeeByID(employeeID)
	})
	if !found {
		return apperrors.NewNotFound("employee", map[string]any{"id": employeeID})
	}
	return nil
}

func (s *PhotoService) publish(ctx context.Context, employeeID string, handle *string) {
	if s.dispatcher == nil {
		return
	}
	payload := events.PhotoUpdatedPayload{EmployeeID: employeeID, Handle: handle}
	if err := s.dispatcher.Publish(ctx, events.New(events.EventPhotoUpdated, ActorFromContext(ctx), payload)); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(events.EventPhotoUpdated)), zap.Error(err))
	}
}
