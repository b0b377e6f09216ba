// Package model holds the records kept in the portfolio collections.
package model

import "time"

// Service is an offering listed on the services page.
type Service struct {
	ID          string  `json:"id" yaml:"-"`
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
}

func (s *Service) RecordID() string      { return s.ID }
func (s *Service) SetRecordID(id string) { s.ID = id }

// PortfolioItem is one entry of the portfolio gallery.
type PortfolioItem struct {
	ID          string `json:"id" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Media       string `json:"media" yaml:"media"`
}

func (p *PortfolioItem) RecordID() string      { return p.ID }
func (p *PortfolioItem) SetRecordID(id string) { p.ID = id }

// Contact is a message left through one of the contact endpoints.
// Service is nil when the visitor did not pick one.
type Contact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	Service      *string   `json:"service"`
	ServicePrice int       `json:"servicePrice"`
	Attachment   string    `json:"attachment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c *Contact) RecordID() string      { return c.ID }
func (c *Contact) SetRecordID(id string) { c.ID = id }

// ServiceName returns the chosen service or "" when none was given.
func (c *Contact) ServiceName() string {
	if c.Service == nil {
		return ""
	}
	return *c.Service
}

// StampCreated records the insertion time. The store calls it exactly once.
func (c *Contact) StampCreated(t time.Time) { c.CreatedAt = t.UTC() }
