package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ClinicConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("CLINIC_ANALYSIS_TREATMENT_NAME", "First Visit Consultation")
	os.Setenv("CLINIC_STOCK_ALERT_THRESHOLD", "10")
	defer func() {
		os.Unsetenv("CLINIC_ANALYSIS_TREATMENT_NAME")
		os.Unsetenv("CLINIC_STOCK_ALERT_THRESHOLD")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify clinic config
	assert.Equal(t, "First Visit Consultation", cfg.Clinic.AnalysisTreatmentName)
	assert.Equal(t, 10, cfg.Clinic.StockAlertThreshold)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("CLINIC_ANALYSIS_TREATMENT_NAME")
	os.Unsetenv("CLINIC_STOCK_ALERT_THRESHOLD")
	os.Unsetenv("CLINIC_DEFAULT_SLOT")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "Initial Skin Analysis & Consultation", cfg.Clinic.AnalysisTreatmentName)
	assert.Equal(t, 5, cfg.Clinic.StockAlertThreshold)
	assert.Equal(t, "10:00", cfg.Clinic.DefaultSlotTime)
	assert.Equal(t, "clinic_desk", cfg.Database.Database)
}
