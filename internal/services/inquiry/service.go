// Package inquiry exposes quote inquiries and their conversations.
package inquiry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/inquiry"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves inquiry operations against the gateway backend.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs an inquiry service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("inquiry")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// Create opens an inquiry. SKU id and quantity are optional context for the
// supplier.
func (s *Service) Create(ctx context.Context, subject, skuID string, quantity int) (inquiry.Inquiry, error) {
	subject = strings.TrimSpace(subject)
	skuID = strings.TrimSpace(skuID)
	if subject == "" {
		return inquiry.Inquiry{}, fmt.Errorf("subject is required")
	}

	if s.cfg.IsolatedMock {
		now := s.mocks.Now()
		inq := inquiry.Inquiry{
			ID:        "mock-inq-" + uuid.NewString(),
			SKUID:     skuID,
			Subject:   subject,
			Quantity:  quantity,
			Status:    inquiry.StatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.mocks.Update(mock.CreateInquiry(inq))
		return inq, nil
	}

	return api.Do[inquiry.Inquiry](ctx, s.rt, api.Descriptor{
		Method: http.MethodPost,
		URL:    s.cfg.GatewayBaseURL + "/api/v1/inquiries",
		Body: api.JSONBody(map[string]any{
			"subject":  subject,
			"skuId":    skuID,
			"quantity": quantity,
		}),
		Timeout: s.cfg.RequestTimeout,
	})
}

// List returns the buyer's inquiries, newest first.
func (s *Service) List(ctx context.Context) ([]inquiry.Inquiry, error) {
	if s.cfg.IsolatedMock {
		return mock.Inquiries(s.mocks.Load()), nil
	}
	return api.Do[[]inquiry.Inquiry](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/inquiries",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Get returns one inquiry by id.
func (s *Service) Get(ctx context.Context, id string) (inquiry.Inquiry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return inquiry.Inquiry{}, fmt.Errorf("inquiry id is required")
	}

	if s.cfg.IsolatedMock {
		inq, ok := mock.InquiryByID(s.mocks.Load(), id)
		if !ok {
			return inquiry.Inquiry{}, api.NewError(http.StatusNotFound, "not_found", "inquiry "+id+" not found")
		}
		return inq, nil
	}

	return api.Do[inquiry.Inquiry](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/inquiries/" + url.PathEscape(id),
		Timeout: s.cfg.RequestTimeout,
	})
}

// Messages returns an inquiry's conversation, oldest first.
func (s *Service) Messages(ctx context.Context, inquiryID string) ([]inquiry.Message, error) {
	inquiryID = strings.TrimSpace(inquiryID)
	if inquiryID == "" {
		return nil, fmt.Errorf("inquiry id is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.InquiryByID(s.mocks.Load(), inquiryID); !ok {
			return nil, api.NewError(http.StatusNotFound, "not_found", "inquiry "+inquiryID+" not found")
		}
		return mock.InquiryMessages(s.mocks.Load(), inquiryID), nil
	}

	return api.Do[[]inquiry.Message](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/inquiries/" + url.PathEscape(inquiryID) + "/messages",
		Timeout: s.cfg.RequestTimeout,
	})
}

// PostMessage appends a buyer message to an inquiry conversation.
func (s *Service) PostMessage(ctx context.Context, inquiryID, content string) (inquiry.Message, error) {
	inquiryID = strings.TrimSpace(inquiryID)
	content = strings.TrimSpace(content)
	if inquiryID == "" {
		return inquiry.Message{}, fmt.Errorf("inquiry id is required")
	}
	if content == "" {
		return inquiry.Message{}, fmt.Errorf("content is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.InquiryByID(s.mocks.Load(), inquiryID); !ok {
			return inquiry.Message{}, api.NewError(http.StatusNotFound, "not_found", "inquiry "+inquiryID+" not found")
		}
		msg := inquiry.Message{
			ID:        "mock-msg-" + uuid.NewString(),
			InquiryID: inquiryID,
			Author:    "buyer",
			Content:   content,
			CreatedAt: s.mocks.Now(),
		}
		s.mocks.Update(mock.PostInquiryMessage(msg))
		return msg, nil
	}

	return api.Do[inquiry.Message](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/inquiries/" + url.PathEscape(inquiryID) + "/messages",
		Body:    api.JSONBody(map[string]string{"content": content}),
		Timeout: s.cfg.RequestTimeout,
	})
}
