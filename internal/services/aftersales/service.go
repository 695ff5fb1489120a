// Package aftersales exposes refund/exchange/repair tickets and their
// conversations.
package aftersales

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/aftersales"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves after-sales operations against the gateway backend.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs an after-sales service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("aftersales")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// CreateTicket opens a ticket against an order.
func (s *Service) CreateTicket(ctx context.Context, orderID string, kind aftersales.TicketType, reason string) (aftersales.Ticket, error) {
	orderID = strings.TrimSpace(orderID)
	reason = strings.TrimSpace(reason)
	if orderID == "" {
		return aftersales.Ticket{}, fmt.Errorf("order id is required")
	}
	if reason == "" {
		return aftersales.Ticket{}, fmt.Errorf("reason is required")
	}
	switch kind {
	case aftersales.TypeRefund, aftersales.TypeExchange, aftersales.TypeRepair:
	default:
		return aftersales.Ticket{}, fmt.Errorf("unknown ticket type %q", kind)
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.OrderByID(s.mocks.Load(), orderID); !ok {
			return aftersales.Ticket{}, api.NewError(http.StatusNotFound, "not_found", "order "+orderID+" not found")
		}
		now := s.mocks.Now()
		ticket := aftersales.Ticket{
			ID:        "mock-ticket-" + uuid.NewString(),
			OrderID:   orderID,
			Type:      kind,
			Reason:    reason,
			Status:    aftersales.StatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.mocks.Update(mock.CreateTicket(ticket))
		return ticket, nil
	}

	return api.Do[aftersales.Ticket](ctx, s.rt, api.Descriptor{
		Method: http.MethodPost,
		URL:    s.cfg.GatewayBaseURL + "/api/v1/aftersales/tickets",
		Body: api.JSONBody(map[string]any{
			"orderId": orderID,
			"type":    kind,
			"reason":  reason,
		}),
		Timeout: s.cfg.RequestTimeout,
	})
}

// ListTickets returns the buyer's tickets, newest first.
func (s *Service) ListTickets(ctx context.Context) ([]aftersales.Ticket, error) {
	if s.cfg.IsolatedMock {
		return mock.Tickets(s.mocks.Load()), nil
	}
	return api.Do[[]aftersales.Ticket](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/aftersales/tickets",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Ticket returns one ticket by id.
func (s *Service) Ticket(ctx context.Context, id string) (aftersales.Ticket, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return aftersales.Ticket{}, fmt.Errorf("ticket id is required")
	}

	if s.cfg.IsolatedMock {
		t, ok := mock.TicketByID(s.mocks.Load(), id)
		if !ok {
			return aftersales.Ticket{}, api.NewError(http.StatusNotFound, "not_found", "ticket "+id+" not found")
		}
		return t, nil
	}

	return api.Do[aftersales.Ticket](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/aftersales/tickets/" + url.PathEscape(id),
		Timeout: s.cfg.RequestTimeout,
	})
}

// Messages returns a ticket's conversation, oldest first.
func (s *Service) Messages(ctx context.Context, ticketID string) ([]aftersales.Message, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, fmt.Errorf("ticket id is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.TicketByID(s.mocks.Load(), ticketID); !ok {
			return nil, api.NewError(http.StatusNotFound, "not_found", "ticket "+ticketID+" not found")
		}
		return mock.TicketMessages(s.mocks.Load(), ticketID), nil
	}

	return api.Do[[]aftersales.Message](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/aftersales/tickets/" + url.PathEscape(ticketID) + "/messages",
		Timeout: s.cfg.RequestTimeout,
	})
}

// PostMessage appends a buyer message to a ticket conversation.
func (s *Service) PostMessage(ctx context.Context, ticketID, content string) (aftersales.Message, error) {
	ticketID = strings.TrimSpace(ticketID)
	content = strings.TrimSpace(content)
	if ticketID == "" {
		return aftersales.Message{}, fmt.Errorf("ticket id is required")
	}
	if content == "" {
		return aftersales.Message{}, fmt.Errorf("content is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.TicketByID(s.mocks.Load(), ticketID); !ok {
			return aftersales.Message{}, api.NewError(http.StatusNotFound, "not_found", "ticket "+ticketID+" not found")
		}
		msg := aftersales.Message{
			ID:        "mock-msg-" + uuid.NewString(),
			TicketID:  ticketID,
			Author:    "buyer",
			Content:   content,
			CreatedAt: s.mocks.Now(),
		}
		s.mocks.Update(mock.PostTicketMessage(msg))
		return msg, nil
	}

	return api.Do[aftersales.Message](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/aftersales/tickets/" + url.PathEscape(ticketID) + "/messages",
		Body:    api.JSONBody(map[string]string{"content": content}),
		Timeout: s.cfg.RequestTimeout,
	})
}
