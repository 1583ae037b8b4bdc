// Package fhir imports patient records from Synthea-generated FHIR R4
// Bundle files.
package fhir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// genderLabels maps FHIR administrative gender codes to the display values
// stored on patient records.
var genderLabels = map[string]string{
	"male":    "男性",
	"female":  "女性",
	"other":   "其他",
	"unknown": "未知",
}

// bundle is the subset of a FHIR Bundle we read.
type bundle struct {
	ResourceType string  `json:"resourceType"`
	Entry        []entry `json:"entry"`
}

type entry struct {
	Resource resource `json:"resource"`
}

type resource struct {
	ResourceType string      `json:"resourceType"`
	Name         []humanName `json:"name"`
	BirthDate    string      `json:"birthDate"`
	Gender       string      `json:"gender"`
}

type humanName struct {
	Use    string   `json:"use"`
	Family string   `json:"family"`
	Given  []string `json:"given"`
}

// Importer reads Bundle JSON files and inserts the patients they contain.
type Importer struct {
	patients repository.PatientRepository
	logger   *zap.Logger
}

// NewImporter creates an Importer writing through the given repository.
func NewImporter(patients repository.PatientRepository, logger *zap.Logger) *Importer {
	return &Importer{patients: patients, logger: logger}
}

// ImportDir walks every *.json file in dir and imports the patients found,
// returning how many were inserted. Entries missing a name, birth date, or
// gender are skipped.
func (imp *Importer) ImportDir(ctx context.Context, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("failed to list bundle files: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no bundle files found in %s", dir)
	}

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(len(files)),
		mpb.PrependDecorators(
			decor.Name("importing bundles"),
			decor.CountersNoUnit(" %d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	imported := 0
	for _, file := range files {
		count, err := imp.importFile(ctx, file)
		if err != nil {
			imp.logger.Warn("failed to import bundle, skipping",
				zap.String("file", filepath.Base(file)),
				zap.Error(err))
			bar.Increment()
			continue
		}
		imported += count
		bar.Increment()
	}
	progress.Wait()

	imp.logger.Info("import finished",
		zap.Int("files", len(files)),
		zap.Int("patients", imported))
	return imported, nil
}

func (imp *Importer) importFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return 0, fmt.Errorf("failed to parse bundle: %w", err)
	}
	if b.ResourceType != "Bundle" {
		return 0, fmt.Errorf("not a FHIR bundle: %s", b.ResourceType)
	}

	count := 0
	for _, e := range b.Entry {
		patient, ok := patientFromResource(e.Resource)
		if !ok {
			continue
		}
		if err := imp.patients.CreatePatient(ctx, patient); err != nil {
			return count, fmt.Errorf("failed to insert patient %q: %w", patient.Name, err)
		}
		count++
	}
	return count, nil
}

// patientFromResource extracts a patient record from a Patient resource
// using its official name. Family name precedes given names, matching the
// local naming convention.
func patientFromResource(r resource) (*model.Patient, bool) {
	if r.ResourceType != "Patient" {
		return nil, false
	}

	var official *humanName
	for i := range r.Name {
		if r.Name[i].Use == "official" {
			official = &r.Name[i]
			break
		}
	}
	if official == nil {
		return nil, false
	}

	fullName := official.Family + strings.Join(official.Given, " ")

	code := strings.ToLower(r.Gender)
	if code == "" {
		code = "unknown"
	}
	gender, ok := genderLabels[code]
	if !ok || fullName == "" || r.BirthDate == "" {
		return nil, false
	}

	return &model.Patient{
		Name:      fullName,
		BirthDate: r.BirthDate,
		Gender:    gender,
	}, true
}
