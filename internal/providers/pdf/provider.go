// Package pdf renders proforma documents to PDF with maroto.
package pdf

import (
	"context"
	"io"

	"github.com/movelar/proforma/internal/proforma/domain"
)

type Provider interface {
	GenerateProforma(ctx context.Context, doc domain.Document) (io.Reader, error)
}
