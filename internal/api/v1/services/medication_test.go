package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/medinfo"
)

func TestMedicationLookup(t *testing.T) {
	service := NewMedicationService(medinfo.NewSource(nil), nil)

	info, err := service.Lookup(context.Background(), "A048123100")
	require.NoError(t, err)
	assert.Equal(t, "PANADOL 500MG (ACETAMINOPHEN)", info.Name)
}

func TestMedicationLookup_TrimsCode(t *testing.T) {
	service := NewMedicationService(medinfo.NewSource(nil), nil)

	info, err := service.Lookup(context.Background(), "  A048123100  ")
	require.NoError(t, err)
	assert.Equal(t, "PANADOL 500MG (ACETAMINOPHEN)", info.Name)
}

func TestMedicationLookup_UnknownCode(t *testing.T) {
	service := NewMedicationService(medinfo.NewSource(nil), nil)

	info, err := service.Lookup(context.Background(), "ZZZ999")
	require.NoError(t, err)
	assert.Equal(t, "未知藥品", info.Name)
}

func TestMedicationLookup_EmptyCode(t *testing.T) {
	service := NewMedicationService(medinfo.NewSource(nil), nil)

	tests := []string{"", "   "}
	for _, code := range tests {
		_, err := service.Lookup(context.Background(), code)
		requireAPIError(t, err, apierrors.KindBadRequest)
	}
}
