// Package store persists the portfolio collections, one SQLite file each.
package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/model"
)

type (
	Services  = Collection[model.Service, *model.Service]
	Portfolio = Collection[model.PortfolioItem, *model.PortfolioItem]
	Contacts  = Collection[model.Contact, *model.Contact]
)

// Store groups the three collections. It is built once at startup and
// handed to whatever needs it.
//
// Layout:
//
//	data_dir/
//	  services.db
//	  portfolio.db
//	  contacts.db
type Store struct {
	Services  *Services
	Portfolio *Portfolio
	Contacts  *Contacts
}

// Open opens every collection under dir, creating dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("create data dir", err)
	}

	s := &Store{}
	var err error

	if s.Services, err = OpenCollection[model.Service](filepath.Join(dir, "services.db"), "service"); err != nil {
		return nil, err
	}
	if s.Portfolio, err = OpenCollection[model.PortfolioItem](filepath.Join(dir, "portfolio.db"), "portfolio item"); err != nil {
		s.Close()
		return nil, err
	}
	if s.Contacts, err = OpenCollection[model.Contact](filepath.Join(dir, "contacts.db"), "contact"); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close closes every open collection.
func (s *Store) Close() error {
	var errs []error
	if s.Services != nil {
		errs = append(errs, s.Services.Close())
	}
	if s.Portfolio != nil {
		errs = append(errs, s.Portfolio.Close())
	}
	if s.Contacts != nil {
		errs = append(errs, s.Contacts.Close())
	}
	return errors.Join(errs...)
}
