package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wilcommerce/catalog/pkg/errors"
)

func TestNewBrand_Success(t *testing.T) {
	b, err := NewBrand("Acme", "acme")

	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", b.ID.String())
	assert.Equal(t, "Acme", b.Name)
	assert.Equal(t, "acme", b.URL)
	assert.False(t, b.Deleted)
	assert.NotZero(t, b.CreatedAt)
}

func TestNewBrand_RequiredArguments(t *testing.T) {
	tests := []struct {
		name    string
		argName string
		argURL  string
		wantMsg string
	}{
		{"empty name", "", "acme", "name is required"},
		{"whitespace name", "   ", "acme", "name is required"},
		{"empty url", "Acme", "", "url is required"},
		{"whitespace url", "Acme", "  ", "url is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBrand(tt.argName, tt.argURL)

			assert.Nil(t, b)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBrand_ChangeName(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	require.NoError(t, b.ChangeName("Acme Corp"))
	assert.Equal(t, "Acme Corp", b.Name)

	err := b.ChangeName("")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")
}

func TestBrand_ChangeURL(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	require.NoError(t, b.ChangeURL("acme-corp"))
	assert.Equal(t, "acme-corp", b.URL)

	assert.ErrorIs(t, b.ChangeURL(""), apperrors.ErrInvalidInput)
}

func TestBrand_ChangeDescription_AcceptsEmpty(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	b.ChangeDescription("makers of everything")
	assert.Equal(t, "makers of everything", b.Description)

	b.ChangeDescription("")
	assert.Empty(t, b.Description)
}

func TestBrand_SetLogo(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	logo := &Image{MimeType: "image/png", Data: []byte{0x89, 0x50}}
	require.NoError(t, b.SetLogo(logo))
	assert.Equal(t, logo, b.Logo)

	assert.ErrorIs(t, b.SetLogo(nil), apperrors.ErrInvalidInput)
}

func TestBrand_SetSeoData(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	seo := &SeoData{Title: "Acme products"}
	require.NoError(t, b.SetSeoData(seo))
	assert.Equal(t, seo, b.Seo)

	assert.ErrorIs(t, b.SetSeoData(nil), apperrors.ErrInvalidInput)
}

func TestBrand_DeleteRestore_GuardedToggle(t *testing.T) {
	b, _ := NewBrand("Acme", "acme")

	require.NoError(t, b.Delete())
	assert.True(t, b.Deleted)

	err := b.Delete()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	require.NoError(t, b.Restore())
	assert.False(t, b.Deleted)

	err = b.Restore()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}
