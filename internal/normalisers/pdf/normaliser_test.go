package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".pdf"}, New().SupportedExtensions())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_NotAPDF(t *testing.T) {
	raw := &domain.RawFile{Name: "fake.pdf", Extension: ".pdf", Content: []byte("plain text pretending to be a pdf")}

	result, err := New().Normalise(context.Background(), raw)

	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Contains(t, err.Error(), "fake.pdf")
	assert.Nil(t, result)
}

func TestNormalise_Empty(t *testing.T) {
	_, err := New().Normalise(context.Background(), &domain.RawFile{Name: "empty.pdf"})
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
}

func TestNormalise_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Normalise(ctx, &domain.RawFile{Name: "a.pdf", Content: []byte("%PDF-1.4")})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
