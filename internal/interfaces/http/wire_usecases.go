package http

import (
	authUsecases "github.com/cloudcare/helpdesk/internal/application/auth/usecases"
	ticketUsecases "github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Auth
	registerUC       *authUsecases.RegisterUseCase
	loginUC          *authUsecases.LoginUseCase
	refreshTokenUC   *authUsecases.RefreshTokenUseCase
	logoutUC         *authUsecases.LogoutUseCase
	getCurrentUserUC *authUsecases.GetCurrentUserUseCase
	changePasswordUC *authUsecases.ChangePasswordUseCase

	// Ticket
	createTicketUC *ticketUsecases.CreateTicketUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	ticketStatsUC  *ticketUsecases.GetTicketStatsUseCase
	updateTicketUC *ticketUsecases.UpdateTicketUseCase
	deleteTicketUC *ticketUsecases.DeleteTicketUseCase
	addCommentUC   *ticketUsecases.AddCommentUseCase
}
