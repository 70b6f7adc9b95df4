package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"doc-intelligence/internal/domain"
)

// Validator rejects files pdfcpu cannot read even in relaxed mode.
type Validator struct {
	conf *model.Configuration
}

// NewValidator creates a relaxed pdfcpu validator.
func NewValidator() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Validate reads and validates the file structure.
func (v *Validator) Validate(path string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from the caller's batch
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, v.conf)
	if err != nil {
		return fmt.Errorf("%w: pdfcpu read: %v", domain.ErrInvalidFile, err)
	}
	if ctx.PageCount == 0 {
		return domain.ErrDocumentEmpty
	}
	return nil
}
