package service

import (
	"errors"
	"time"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService is the state machine governing how a relationship edge is
// proposed, auto-resolved, accepted, or declined. Accepted requests write
// into the relationship ledger.
type RequestService struct {
	db        *gorm.DB
	relations *RelationService
}

func NewRequestService(db *gorm.DB, relations *RelationService) *RequestService {
	return &RequestService{db: db, relations: relations}
}

// SubmitResult is the outcome of a request submission: either a pending
// request row, or (for follows to public accounts) an immediately created
// edge with no request row at all.
type SubmitResult struct {
	AutoAccepted bool
	Request      *models.ConnectionRequest
	Edge         *models.RelationshipEdge
}

// Submit proposes a relationship of the given kind from requester to
// requested. Follows to public accounts skip the pending state entirely.
func (s *RequestService) Submit(requesterID, requestedID string, kind models.RelationKind) (*SubmitResult, error) {
	if requesterID == requestedID {
		return nil, apperr.Validation("cannot send a request to yourself")
	}
	if !kind.Valid() {
		return nil, apperr.Validation("unrecognized relation kind")
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", requestedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("target user not found")
		}
		return nil, apperr.Internal("failed to look up target user", err)
	}

	var pendingCount int64
	err := s.db.Model(&models.ConnectionRequest{}).
		Where("requester_id = ? AND requested_id = ? AND kind = ? AND status = ?",
			requesterID, requestedID, kind, models.StatusPending).
		Count(&pendingCount).Error
	if err != nil {
		return nil, apperr.Internal("failed to query pending requests", err)
	}
	if pendingCount > 0 {
		return nil, apperr.Conflict("a request of this kind is already pending")
	}

	exists, err := s.relations.EdgeExists(requesterID, requestedID, kind)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("relationship of this kind already established")
	}

	// Following a public account never produces a pending row.
	if kind == models.KindFollow && !target.IsPrivate {
		edge, err := s.relations.CreateEdge(requesterID, requestedID, kind)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{AutoAccepted: true, Edge: edge}, nil
	}

	request := models.ConnectionRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		RequestedID: requestedID,
		Kind:        kind,
		Status:      models.StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, apperr.Internal("failed to create request", err)
	}
	return &SubmitResult{Request: &request}, nil
}

// Accept resolves a pending request into an established edge. Only the
// addressee may accept. Edge creation and the status update are one logical
// transition: if the edge create fails the status must not change.
func (s *RequestService) Accept(requestID, actingUserID string) (*models.RelationshipEdge, error) {
	request, err := s.pendingOwnedBy(requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	var edge *models.RelationshipEdge
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		edge, txErr = s.relations.WithTx(tx).CreateEdge(request.RequesterID, request.RequestedID, request.Kind)
		if txErr != nil {
			return txErr
		}

		now := time.Now()
		return tx.Model(request).
			Updates(map[string]interface{}{"status": models.StatusAccepted, "decided_at": now}).Error
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Internal("failed to accept request", err)
	}
	return edge, nil
}

// Decline marks a pending request declined. Terminal: no edge is created and
// no further action is possible on this row.
func (s *RequestService) Decline(requestID, actingUserID string) (*models.ConnectionRequest, error) {
	request, err := s.pendingOwnedBy(requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Model(request).
		Updates(map[string]interface{}{"status": models.StatusDeclined, "decided_at": now}).Error
	if err != nil {
		return nil, apperr.Internal("failed to decline request", err)
	}
	request.Status = models.StatusDeclined
	request.DecidedAt = &now
	return request, nil
}

// ListIncoming returns the user's pending requests, most recent first, with
// requester identity loaded for display.
func (s *RequestService) ListIncoming(userID string) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	err := s.db.
		Where("requested_id = ? AND status = ?", userID, models.StatusPending).
		Order("created_at DESC").
		Preload("Requester").
		Find(&requests).Error
	if err != nil {
		return nil, apperr.Internal("failed to list incoming requests", err)
	}
	return requests, nil
}

func (s *RequestService) pendingOwnedBy(requestID, actingUserID string) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("request not found")
		}
		return nil, apperr.Internal("failed to look up request", err)
	}

	if request.RequestedID != actingUserID {
		return nil, apperr.Forbidden("only the addressee may decide a request")
	}
	if request.Status != models.StatusPending {
		return nil, apperr.Validation("request is not pending")
	}
	return &request, nil
}
