package playbook

import (
	"errors"

	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/assets"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/render"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
)

// Sentinel errors for library operations.
var (
	// ErrSourceUnavailable is returned when a source file is missing or
	// unreadable.
	ErrSourceUnavailable = source.ErrUnavailable
	ErrEmptySource       = errors.New("playbook text cannot be empty")

	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Construction errors.
	ErrInvalidRules     = render.ErrInvalidRules
	ErrInvalidTemplate  = render.ErrInvalidTemplate
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Asset lookup errors.
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
)
