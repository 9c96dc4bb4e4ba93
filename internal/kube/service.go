// Package kube manages the single shared floor-plan asset: one well-known
// SVG file describing the library's shelf cubes.
package kube

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/libris/libris/internal/platform/apperr"
	"github.com/libris/libris/internal/platform/validate"
)

// FileName is the fixed name of the asset; there is exactly one per install.
const FileName = "kubes.svg"

// MaxBytes caps the SVG payload at 1 MiB.
const MaxBytes = 1 << 20

type Service struct {
	dir    string
	logger *slog.Logger
}

func NewService(dir string, logger *slog.Logger) *Service {
	return &Service{
		dir:    dir,
		logger: logger,
	}
}

func (service *Service) path() string {
	return filepath.Join(service.dir, FileName)
}

// Create stores the asset. It fails with a conflict if one already exists;
// replacing goes through Update so accidental overwrites need intent.
func (service *Service) Create(content []byte) error {
	if err := validateSVG(content); err != nil {
		return err
	}

	if _, err := os.Stat(service.path()); err == nil {
		return apperr.Conflict("Kube file already exists")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return apperr.Internal(err)
	}

	if err := service.write(content); err != nil {
		return err
	}

	service.logger.Info("kube_created", slog.Int("size", len(content)))
	return nil
}

// Update replaces the existing asset. Absent asset is a 404: clients must
// Create first.
func (service *Service) Update(content []byte) error {
	if err := validateSVG(content); err != nil {
		return err
	}

	if _, err := os.Stat(service.path()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFoundMsg("Kube file not found")
		}
		return apperr.Internal(err)
	}

	if err := service.write(content); err != nil {
		return err
	}

	service.logger.Info("kube_updated", slog.Int("size", len(content)))
	return nil
}

// Get returns the asset bytes.
func (service *Service) Get() ([]byte, error) {
	content, err := os.ReadFile(service.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFoundMsg("Kube file not found")
		}
		return nil, apperr.Internal(err)
	}
	return content, nil
}

// Delete removes the asset.
func (service *Service) Delete() error {
	if err := os.Remove(service.path()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFoundMsg("Kube file not found")
		}
		return apperr.Internal(err)
	}

	service.logger.Info("kube_deleted")
	return nil
}

func (service *Service) write(content []byte) error {
	if err := os.MkdirAll(service.dir, 0o755); err != nil {
		return apperr.Internal(err)
	}
	if err := os.WriteFile(service.path(), content, 0o644); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// validateSVG is a cheap structural sniff, not an XML parse: the trimmed
// content must open as SVG or XML and contain an <svg element somewhere.
func validateSVG(content []byte) error {
	if len(content) == 0 {
		return validate.RequiredError("content", "No content provided")
	}
	if len(content) > MaxBytes {
		return validate.RequiredError("content", "File too large. Maximum size: 1MB.")
	}

	trimmed := bytes.TrimSpace(content)
	opensWell := bytes.HasPrefix(trimmed, []byte("<svg")) || bytes.HasPrefix(trimmed, []byte("<?xml"))
	if !opensWell || !bytes.Contains(trimmed, []byte("<svg")) {
		return validate.RequiredError("content", "Content is not a valid SVG document")
	}
	return nil
}
