package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateService owns certificate requests and issued certificates.
type CertificateService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewCertificateService(db *gorm.DB, invalidator *cache.Coordinator) *CertificateService {
	return &CertificateService{db: db, invalidator: invalidator}
}

// Request files a certificate request for a completed enrollment.
func (s *CertificateService) Request(ctx context.Context, userID, courseID uint) (*models.CertificateRequest, error) {
	db := s.db.WithContext(ctx)

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !enrollment.IsCompleted {
		return nil, ErrCourseNotCompleted
	}

	var existing models.CertificateRequest
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ? AND status IN ?",
		userID, courseID, false, []string{"PENDING", "APPROVED"}).First(&existing).Error; err == nil {
		return nil, ErrAlreadyRequested
	}

	request := models.CertificateRequest{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateResource(ctx, cache.ResourceCertificates)
	return &request, nil
}

// Approve issues a certificate for a pending request.
func (s *CertificateService) Approve(ctx context.Context, requestID, adminID uint) (*models.Certificate, error) {
	db := s.db.WithContext(ctx)

	var request models.CertificateRequest
	if err := db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Status != "PENDING" {
		return nil, ErrInvalidState
	}

	now := time.Now()
	certificate := models.Certificate{
		UserID:            request.UserID,
		CourseID:          request.CourseID,
		CertificateNumber: newCertificateNumber(),
		IssuedAt:          now,
	}
	if err := db.Create(&certificate).Error; err != nil {
		return nil, err
	}

	request.Status = "APPROVED"
	request.ApprovedAt = &now
	request.ApprovedBy = &adminID
	if err := db.Save(&request).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCertificates, certificate.ID)
	return &certificate, nil
}

// ListForUser returns the user's issued certificates, newest first.
func (s *CertificateService) ListForUser(ctx context.Context, userID uint) ([]models.Certificate, error) {
	store := s.invalidator.Store()
	key := cache.UserListKey(cache.ResourceCertificates, userID, cache.ListFilter{}, cache.SortSpec{Field: "issued_at", Desc: true}, 0, 0)

	var cached []models.Certificate
	if store.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var certificates []models.Certificate
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return nil, err
	}

	store.SetJSON(ctx, key, certificates, 0)
	return certificates, nil
}

func newCertificateNumber() string {
	return "CM-" + strings.ToUpper(uuid.NewString()[:8])
}
