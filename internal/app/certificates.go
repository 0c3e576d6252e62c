package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/filter"
	"github.com/okian/skillport/internal/domain/model"
	"github.com/okian/skillport/pkg/logger"
)

// DefaultCertificateBaseURL prefixes the document URL of issued certificates.
const DefaultCertificateBaseURL = "https://certificates.example.com"

// resolvingCertificates fills blank member and class names from the
// referenced records before every certificate write.
type resolvingCertificates struct {
	repository.Store[model.Certificate]
	svc *Service
}

func (r *resolvingCertificates) Create(ctx context.Context, rec model.Certificate) (model.Certificate, error) {
	if err := r.svc.resolveNames(ctx, &rec); err != nil {
		return model.Certificate{}, err
	}
	return r.Store.Create(ctx, rec)
}

func (r *resolvingCertificates) Update(ctx context.Context, id string, rec model.Certificate) (model.Certificate, error) {
	if err := r.svc.resolveNames(ctx, &rec); err != nil {
		return model.Certificate{}, err
	}
	return r.Store.Update(ctx, id, rec)
}

// resolveNames copies the member and class names into c when they are blank.
// A reference that does not resolve fails with repository.ErrUnresolvedRef.
func (s *Service) resolveNames(ctx context.Context, c *model.Certificate) error {
	if strings.TrimSpace(c.MemberName) == "" {
		m, err := s.stores.Members.Get(ctx, c.MemberID)
		if err != nil {
			return unresolved("member", c.MemberID, err)
		}
		c.MemberName = m.Name
	}
	if strings.TrimSpace(c.ClassName) == "" {
		cl, err := s.stores.Classes.Get(ctx, c.ClassID)
		if err != nil {
			return unresolved("class", c.ClassID, err)
		}
		c.ClassName = cl.ClassName
	}
	return nil
}

func unresolved(kind, id string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", repository.ErrUnresolvedRef, kind, id, err)
}

// certificateURL is the document location of an issued certificate.
func (s *Service) certificateURL(id string) string {
	return s.certificateBase + "/" + id + ".pdf"
}

// IssueCertificate marks a certificate issued and attaches its document URL.
// Issuing an issued certificate returns it unchanged.
func (s *Service) IssueCertificate(ctx context.Context, id string) (model.Certificate, error) {
	c, err := s.stores.Certificates.Get(ctx, id)
	if err != nil {
		return model.Certificate{}, err
	}
	if c.IsIssued {
		return c, nil
	}
	c.IsIssued = true
	c.CertificateURL = model.Str(s.certificateURL(c.ID))
	out, err := s.stores.Certificates.Update(ctx, id, c)
	if err != nil {
		return model.Certificate{}, err
	}
	s.logger.Info(ctx, "certificate issued",
		logger.String("certificate", out.ID),
		logger.String("member", out.MemberName),
		logger.String("class", out.ClassName),
	)
	return out, nil
}

// IssuePending issues every certificate not issued yet and returns them.
func (s *Service) IssuePending(ctx context.Context) ([]model.Certificate, error) {
	const view = "certificate_issue"
	defer s.observe(view, time.Now())

	certs, err := snapshot(ctx, repository.EntityCertificates, s.stores.Certificates, "")
	if err != nil {
		return nil, err
	}
	pending := filter.CertificateCriteria{State: filter.Pending}.Apply(certs)
	out := make([]model.Certificate, 0, len(pending))
	for _, c := range pending {
		issued, err := s.IssueCertificate(ctx, c.ID)
		if err != nil {
			return out, err
		}
		out = append(out, issued)
	}
	return out, nil
}

// SearchCertificates filters the certificate register, newest first.
func (s *Service) SearchCertificates(ctx context.Context, c filter.CertificateCriteria) ([]model.Certificate, error) {
	const view = "certificates"
	defer s.observe(view, time.Now())

	certs, err := snapshot(ctx, repository.EntityCertificates, s.stores.Certificates, "-created_date")
	if err != nil {
		return nil, err
	}
	return c.Apply(certs), nil
}
