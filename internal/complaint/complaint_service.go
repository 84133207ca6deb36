// Package complaint handles resident complaints: submission with automatic
// triage, listing, and administrator edits and status changes.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"aura/backend/internal/config"
	"aura/backend/internal/models"
	"aura/backend/internal/storage"

	"go.uber.org/zap"
)

var (
	// ErrValidation wraps every input error; see ValidationError for the field.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidStatus is returned for a status outside the complaint enum.
	ErrInvalidStatus = errors.New("invalid complaint status")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Analyzer attaches a triage to complaint text. It never fails.
type Analyzer interface {
	AnalyzeComplaint(ctx context.Context, description, propertyName string) models.TriageResult
}

// PropertyLookup resolves a property id to its listing.
type PropertyLookup interface {
	Get(id string) (models.Property, error)
}

// Notifier is told about complaints that need immediate admin attention.
type Notifier interface {
	ComplaintFiled(c models.Complaint)
}

// SubmitInput is what a resident provides when filing a complaint.
type SubmitInput struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	PropertyID  string `json:"propertyId"`
}

// Stats summarizes the complaint store for the admin dashboard.
type Stats struct {
	Total      int                            `json:"total"`
	Open       int                            `json:"open"`
	ByStatus   map[models.ComplaintStatus]int `json:"byStatus"`
	ByCategory map[models.Category]int        `json:"byCategory"`
}

// Service handles the business logic for complaints.
type Service struct {
	Storage    storage.Storage
	analyzer   Analyzer
	properties PropertyLookup
	notifier   Notifier
	log        *zap.SugaredLogger

	numberMu   sync.Mutex
	lastNumber int64
	now        func() time.Time
}

// NewService creates a new complaint service. properties and notifier may be nil.
func NewService(s storage.Storage, analyzer Analyzer, properties PropertyLookup, notifier Notifier, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		Storage:    s,
		analyzer:   analyzer,
		properties: properties,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
	}
}

// Submit files a complaint for the session user. The triage is computed once
// here and stored with the record.
func (s *Service) Submit(ctx context.Context, session models.Session, in SubmitInput) (*models.Complaint, error) {
	subject := strings.TrimSpace(in.Subject)
	description := strings.TrimSpace(in.Description)
	if subject == "" {
		return nil, &ValidationError{Field: "subject"}
	}
	if description == "" {
		return nil, &ValidationError{Field: "description"}
	}

	propertyID, propertyName := s.resolveProperty(strings.TrimSpace(in.PropertyID))

	c := &models.Complaint{
		Number:       s.nextNumber(),
		UserEmail:    session.Email,
		Subject:      subject,
		Description:  description,
		PropertyID:   propertyID,
		PropertyName: propertyName,
		Analysis:     s.analyzer.AnalyzeComplaint(ctx, description, propertyName),
		Status:       models.ComplaintUnderReview,
	}
	if err := s.Storage.CreateComplaint(ctx, c); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.log.Infow("Complaint filed",
		"complaint_id", c.ID, "number", c.Number, "category", c.Analysis.Category,
		"priority", c.Analysis.Priority, "source", c.Analysis.Source)

	s.publish(ctx, models.EventComplaintCreated, c.ID, c.Status)
	if c.Analysis.Priority == models.PriorityHigh && s.notifier != nil {
		s.notifier.ComplaintFiled(*c)
	}
	return c, nil
}

// resolveProperty returns an empty reference for unknown ids.
func (s *Service) resolveProperty(id string) (string, string) {
	if id == "" || s.properties == nil {
		return "", ""
	}
	p, err := s.properties.Get(id)
	if err != nil {
		s.log.Debugw("Complaint references unknown property", "property_id", id)
		return "", ""
	}
	return p.ID, p.Name
}

// nextNumber returns "CMP-<unix millis>", strictly increasing within the process.
func (s *Service) nextNumber() string {
	s.numberMu.Lock()
	defer s.numberMu.Unlock()

	n := s.now().UnixMilli()
	if n <= s.lastNumber {
		n = s.lastNumber + 1
	}
	s.lastNumber = n
	return config.ComplaintNumberPrefix + strconv.FormatInt(n, 10)
}

// ListMine returns the session user's complaints in filing order.
func (s *Service) ListMine(ctx context.Context, session models.Session) ([]models.Complaint, error) {
	return s.Storage.ListComplaintsByUser(ctx, session.Email)
}

// List returns all complaints, or only those with status when it is non-empty.
func (s *Service) List(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	all, err := s.Storage.ListComplaints(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}

	filtered := make([]models.Complaint, 0, len(all))
	for _, c := range all {
		if c.Status == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Complaint, error) {
	return s.Storage.GetComplaint(ctx, id)
}

// Update edits subject, description, property or status. The stored analysis
// is kept as is.
func (s *Service) Update(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	if patch.Subject != nil && strings.TrimSpace(*patch.Subject) == "" {
		return nil, &ValidationError{Field: "subject"}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, &ValidationError{Field: "description"}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.PropertyID != nil {
		propertyID, propertyName := s.resolveProperty(strings.TrimSpace(*patch.PropertyID))
		patch.PropertyID, patch.PropertyName = &propertyID, &propertyName
	}

	c, err := s.Storage.UpdateComplaint(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventComplaintUpdated, c.ID, c.Status)
	return c, nil
}

// SetStatus moves a complaint to any of the three statuses.
func (s *Service) SetStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	c, err := s.Storage.UpdateComplaint(ctx, id, models.ComplaintPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	s.log.Infow("Complaint status changed", "complaint_id", id, "status", status)
	s.publish(ctx, models.EventComplaintUpdated, c.ID, c.Status)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Storage.DeleteComplaint(ctx, id); err != nil {
		return err
	}
	s.log.Infow("Complaint deleted", "complaint_id", id)
	s.publish(ctx, models.EventComplaintDeleted, id, "")
	return nil
}

// Stats counts complaints per status and category. Open means not resolved.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.Storage.ListComplaints(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Total:      len(all),
		ByStatus:   make(map[models.ComplaintStatus]int, len(models.ComplaintStatuses)),
		ByCategory: make(map[models.Category]int),
	}
	for _, st := range models.ComplaintStatuses {
		stats.ByStatus[st] = 0
	}
	for _, c := range all {
		stats.ByStatus[c.Status]++
		stats.ByCategory[c.Analysis.Category]++
		if c.Status != models.ComplaintResolved {
			stats.Open++
		}
	}
	return stats, nil
}

func (s *Service) publish(ctx context.Context, kind models.EventKind, id string, status models.ComplaintStatus) {
	event := models.Event{Kind: kind, RecordID: id, Status: string(status), At: s.now()}
	if err := s.Storage.PublishEvent(ctx, event); err != nil {
		s.log.Warnw("Failed to publish admin event", "kind", kind, "record_id", id, "error", err)
	}
}
