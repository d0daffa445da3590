package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC CreateTicketExecutor
	getTicketUC    GetTicketExecutor
	listTicketsUC  ListTicketsExecutor
	statsUC        GetTicketStatsExecutor
	updateTicketUC UpdateTicketExecutor
	deleteTicketUC DeleteTicketExecutor
	addCommentUC   AddCommentExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC CreateTicketExecutor,
	getTicketUC GetTicketExecutor,
	listTicketsUC ListTicketsExecutor,
	statsUC GetTicketStatsExecutor,
	updateTicketUC UpdateTicketExecutor,
	deleteTicketUC DeleteTicketExecutor,
	addCommentUC AddCommentExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		getTicketUC:    getTicketUC,
		listTicketsUC:  listTicketsUC,
		statsUC:        statsUC,
		updateTicketUC: updateTicketUC,
		deleteTicketUC: deleteTicketUC,
		addCommentUC:   addCommentUC,
		logger:         logger,
	}
}

// currentActor builds the actor from the identity the auth middleware stored.
func currentActor(c *gin.Context) (access.Actor, error) {
	userID, rawRole, err := utils.GetAuthIdentity(c)
	if err != nil {
		return access.Actor{}, err
	}
	role, err := user.ParseRole(rawRole)
	if err != nil {
		return access.Actor{}, errors.NewUnauthorizedError("Invalid token")
	}
	return access.Actor{ID: userID, Role: role}, nil
}

func parseTicketID(c *gin.Context) (string, error) {
	return utils.ParseUUIDParam(c, "id", "ticket")
}

// CreateTicket godoc
//
//	@Summary	Create a ticket
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		dto.CreateTicketRequest	true	"Ticket"
//	@Success	201		{object}	utils.APIResponse{data=dto.TicketResponse}
//	@Failure	422		{object}	utils.APIResponse
//	@Router		/tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err, "user_id", actor.ID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket godoc
//
//	@Summary		Get a ticket
//	@Description	Includes comments and attachments. Internal comments are omitted for customers.
//	@Tags			tickets
//	@Produce		json
//	@Security		Bearer
//	@Param			id	path		string	true	"Ticket ID"	format(uuid)
//	@Success		200	{object}	utils.APIResponse{data=dto.TicketDetailResponse}
//	@Failure		403	{object}	utils.APIResponse
//	@Failure		404	{object}	utils.APIResponse
//	@Router			/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Actor:    actor,
		TicketID: ticketID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets godoc
//
//	@Summary	List tickets
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Param		page			query		int		false	"Page (default 1)"
//	@Param		limit			query		int		false	"Page size (default 10, max 100)"
//	@Param		sortBy			query		string	false	"Sort key"	Enums(createdAt, updatedAt, priority, status, ticketNumber)
//	@Param		sortOrder		query		string	false	"Sort order"	Enums(asc, desc)
//	@Param		status			query		string	false	"Status"
//	@Param		priority		query		string	false	"Priority"
//	@Param		assignedToId	query		string	false	"Assignee"
//	@Param		createdById		query		string	false	"Creator"
//	@Param		category		query		string	false	"Category"
//	@Param		tags			query		string	false	"Comma separated tags"
//	@Param		search			query		string	false	"Search title, description and number"
//	@Param		startDate		query		string	false	"Created at or after"
//	@Param		endDate			query		string	false	"Created at or before"
//	@Success	200				{object}	utils.APIResponse{data=[]dto.TicketResponse}
//	@Router		/tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Actor:  actor,
		Filter: filter,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Meta, "")
}

// GetStats godoc
//
//	@Summary	Ticket statistics
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.StatsResponse}
//	@Router		/tickets/stats [get]
func (h *TicketHandler) GetStats(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket godoc
//
//	@Summary		Update a ticket
//	@Description	Customers may edit content of their own tickets; status and assignee changes from customers are ignored.
//	@Tags			tickets
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string					true	"Ticket ID"	format(uuid)
//	@Param			request	body		dto.UpdateTicketRequest	true	"Fields to change"
//	@Success		200		{object}	utils.APIResponse{data=dto.TicketResponse}
//	@Failure		403		{object}	utils.APIResponse
//	@Failure		404		{object}	utils.APIResponse
//	@Router			/tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		Actor:    actor,
		TicketID: ticketID,
		Patch:    req.Patch(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket godoc
//
//	@Summary	Delete a ticket
//	@Tags		tickets
//	@Produce	json
//	@Security	Bearer
//	@Param		id	path		string	true	"Ticket ID"	format(uuid)
//	@Success	200	{object}	utils.APIResponse
//	@Failure	403	{object}	utils.APIResponse
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		Actor:    actor,
		TicketID: ticketID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted successfully", nil)
}

// AddComment godoc
//
//	@Summary	Comment on a ticket
//	@Tags		tickets
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		string					true	"Ticket ID"	format(uuid)
//	@Param		request	body		dto.AddCommentRequest	true	"Comment"
//	@Success	201		{object}	utils.APIResponse{data=dto.CommentResponse}
//	@Failure	403		{object}	utils.APIResponse
//	@Router		/tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		Actor:      actor,
		TicketID:   ticketID,
		Content:    req.Content,
		IsInternal: req.IsInternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}
