package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eyestyle"
	"eyestyle/internal/repository"
)

var ErrIncompleteContactForm = errors.New("name, email and message are required")

// ContactService stores contact-form submissions.
type ContactService struct {
	contact repository.Contact
	now     func() time.Time
}

func NewContactService(contact repository.Contact) *ContactService {
	return &ContactService{contact: contact, now: time.Now}
}

var _ Contact = (*ContactService)(nil)

// Submit validates and stores one submission.
func (s *ContactService) Submit(ctx context.Context, msg eyestyle.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Message == "" || !strings.Contains(msg.Email, "@") {
		return ErrIncompleteContactForm
	}
	msg.CreatedAt = s.now().UTC()
	_, err := s.contact.Save(ctx, msg)
	return err
}
