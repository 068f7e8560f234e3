package handler

import (
	"net/http"
	"time"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/models"
	"mingle/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationHandler serves connection requests, relationship listings, and
// block management.
type RelationHandler struct {
	Requests  *service.RequestService
	Relations *service.RelationService
	Blocks    *service.BlockService
}

// SubmitRequestInput defines the structure for submitting a connection request.
type SubmitRequestInput struct {
	RequestedID string `json:"requested_id" binding:"required"`
	Kind        string `json:"kind" binding:"required" example:"FOLLOW"`
}

// RequestResponse defines the structure for a connection request.
type RequestResponse struct {
	ID          string              `json:"id"`
	RequesterID string              `json:"requester_id"`
	RequestedID string              `json:"requested_id"`
	Kind        string              `json:"kind"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	DecidedAt   *time.Time          `json:"decided_at,omitempty"`
	Requester   *PublicUserResponse `json:"requester,omitempty"`
}

func newRequestResponse(request models.ConnectionRequest, withRequester bool) RequestResponse {
	resp := RequestResponse{
		ID:          request.ID,
		RequesterID: request.RequesterID,
		RequestedID: request.RequestedID,
		Kind:        string(request.Kind),
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		DecidedAt:   request.DecidedAt,
	}
	if withRequester {
		requester := newPublicUserResponse(request.Requester)
		resp.Requester = &requester
	}
	return resp
}

// EdgeResponse defines the structure for an established relationship edge.
type EdgeResponse struct {
	SubjectID string    `json:"subject_id"`
	ObjectID  string    `json:"object_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func newEdgeResponse(edge models.RelationshipEdge) EdgeResponse {
	return EdgeResponse{
		SubjectID: edge.SubjectID,
		ObjectID:  edge.ObjectID,
		Kind:      string(edge.Kind),
		CreatedAt: edge.CreatedAt,
	}
}

// SubmitRequest godoc
// @Summary      Submit a connection request
// @Description  Proposes a relationship to another user. Follows to public accounts are accepted immediately and return the created edge.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SubmitRequestInput true "Request Info"
// @Success      201  {object}  RequestResponse
// @Failure      400  {object}  ErrorResponse "Bad kind or self-target"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already pending or already connected"
// @Router       /requests [post]
func (h *RelationHandler) SubmitRequest(c *gin.Context) {
	viewerID := auth.UserID(c)

	var input SubmitRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Requests.Submit(viewerID, input.RequestedID, models.RelationKind(input.Kind))
	if err != nil {
		respondError(c, err)
		return
	}

	if result.AutoAccepted {
		c.JSON(http.StatusCreated, gin.H{
			"auto_accepted": true,
			"edge":          newEdgeResponse(*result.Edge),
		})
		return
	}
	c.JSON(http.StatusCreated, newRequestResponse(*result.Request, false))
}

// AcceptRequest godoc
// @Summary      Accept a connection request
// @Description  Accepts a pending request addressed to the caller, establishing the relationship edge.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  EdgeResponse
// @Failure      400  {object}  ErrorResponse "Request is not pending"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the addressee"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /requests/{id}/accept [post]
func (h *RelationHandler) AcceptRequest(c *gin.Context) {
	viewerID := auth.UserID(c)

	edge, err := h.Requests.Accept(c.Param("id"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEdgeResponse(*edge))
}

// DeclineRequest godoc
// @Summary      Decline a connection request
// @Description  Declines a pending request addressed to the caller. No edge is created.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  RequestResponse
// @Failure      400  {object}  ErrorResponse "Request is not pending"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the addressee"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /requests/{id}/decline [post]
func (h *RelationHandler) DeclineRequest(c *gin.Context) {
	viewerID := auth.UserID(c)

	request, err := h.Requests.Decline(c.Param("id"), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRequestResponse(*request, false))
}

// ListIncomingRequests godoc
// @Summary      List incoming requests
// @Description  Lists the caller's pending requests, most recent first, with requester identity.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   RequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /requests/incoming [get]
func (h *RelationHandler) ListIncomingRequests(c *gin.Context) {
	viewerID := auth.UserID(c)

	requests, err := h.Requests.ListIncoming(viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, newRequestResponse(request, true))
	}
	c.JSON(http.StatusOK, responses)
}

// GetRelations godoc
// @Summary      List relationship counterparts
// @Description  Lists counterpart user IDs for one relationship category of the caller.
// @Tags         relations
// @Produce      json
// @Security     BearerAuth
// @Param        kind query     string  true  "Category (acquaintances, strangers, following, followers)"
// @Success      200  {object}  map[string][]string "{"user_ids": [...]}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/relations [get]
func (h *RelationHandler) GetRelations(c *gin.Context) {
	viewerID := auth.UserID(c)

	var (
		ids []string
		err error
	)
	switch c.Query("kind") {
	case "acquaintances":
		ids, err = h.Relations.ListUndirected(viewerID, models.KindAcquaintance)
	case "strangers":
		ids, err = h.Relations.ListUndirected(viewerID, models.KindStranger)
	case "following":
		ids, err = h.Relations.ListFollowing(viewerID)
	case "followers":
		ids, err = h.Relations.ListFollowers(viewerID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'kind' query parameter (acquaintances, strangers, following, followers) is required."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"user_ids": ids})
}

// BlockUser godoc
// @Summary      Block a user
// @Description  Creates a directed block towards the target user. Idempotent.
// @Tags         blocks
// @Security     BearerAuth
// @Param        id   path  string  true  "Target User ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse "Self-target"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /users/{id}/block [put]
func (h *RelationHandler) BlockUser(c *gin.Context) {
	viewerID := auth.UserID(c)

	if err := h.Blocks.Block(viewerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnblockUser godoc
// @Summary      Unblock a user
// @Description  Removes a directed block if present. Succeeds even if absent.
// @Tags         blocks
// @Security     BearerAuth
// @Param        id   path  string  true  "Target User ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /users/{id}/block [delete]
func (h *RelationHandler) UnblockUser(c *gin.Context) {
	viewerID := auth.UserID(c)

	if err := h.Blocks.Unblock(viewerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
