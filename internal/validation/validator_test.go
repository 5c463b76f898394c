package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/validation"
)

type createFolderInput struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Color string `json:"color" validate:"required,hexcolor"`
}

func TestValidateAccepts(t *testing.T) {
	v := validation.New()
	err := v.Validate(createFolderInput{Name: "Work", Color: "#ff5733"})
	assert.NoError(t, err)
}

func TestValidateRejectsBadColor(t *testing.T) {
	v := validation.New()
	err := v.Validate(createFolderInput{Name: "Work", Color: "red"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)

	details, ok := derr.Details.(map[string]string)
	require.True(t, ok)
	// JSON tag name, not struct field name
	assert.Contains(t, details, "color")
}

func TestValidateRejectsMissingName(t *testing.T) {
	v := validation.New()
	err := v.Validate(createFolderInput{Color: "#ffffff"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	details := derr.Details.(map[string]string)
	assert.Equal(t, "is required", details["name"])
}
