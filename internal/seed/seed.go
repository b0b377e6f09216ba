// Package seed fills the services and portfolio collections from YAML or
// from the built-in site content.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio-server/internal/model"
	"github.com/Zachkp/portfolio-server/internal/store"
)

// Data is the content of a seed file:
//
//	services:
//	  - name: Web Design
//	    price: 1500
//	    description: ...
//	portfolio:
//	  - title: ...
//	    media: /images/...
type Data struct {
	Services  []model.Service       `yaml:"services"`
	Portfolio []model.PortfolioItem `yaml:"portfolio"`
}

// Result reports what Apply inserted and which collections it left alone.
type Result struct {
	Services  int
	Portfolio int
	Skipped   []string
}

// Parse decodes seed YAML. Unknown keys are rejected; an empty document
// is an empty seed.
func Parse(b []byte) (*Data, error) {
	var d Data
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &d, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

// Apply inserts d into s. A collection that already has records is
// skipped unless force is set, in which case the records are added on top.
func Apply(ctx context.Context, s *store.Store, d *Data, force bool, log logrus.FieldLogger) (*Result, error) {
	res := &Result{}

	n, err := s.Services.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && !force {
		res.Skipped = append(res.Skipped, "services")
		log.WithField("existing", n).Info("services already seeded, skipping")
	} else {
		for i := range d.Services {
			svc := d.Services[i]
			if _, err := s.Services.Insert(ctx, &svc); err != nil {
				return res, err
			}
			res.Services++
		}
	}

	n, err = s.Portfolio.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && !force {
		res.Skipped = append(res.Skipped, "portfolio")
		log.WithField("existing", n).Info("portfolio already seeded, skipping")
	} else {
		for i := range d.Portfolio {
			item := d.Portfolio[i]
			if _, err := s.Portfolio.Insert(ctx, &item); err != nil {
				return res, err
			}
			res.Portfolio++
		}
	}

	return res, nil
}
