// Package export writes clinic reports to Excel workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

// Report bundles the data included in one export run.
type Report struct {
	Appointments  []model.Appointment
	Prescriptions []model.Prescription
	Patients      map[int]model.Patient
	Doctors       map[int]model.Doctor
}

// ToExcel writes the report as a two-sheet workbook at outputFilePath.
func ToExcel(report Report, outputFilePath string) error {
	file := xlsx.NewFile()

	apptSheet, err := file.AddSheet("Appointments")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := apptSheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Date"
	headerRow.AddCell().Value = "Type"
	headerRow.AddCell().Value = "Patient"
	headerRow.AddCell().Value = "Doctor"
	headerRow.AddCell().Value = "Reason"
	headerRow.AddCell().Value = "Has Summary"
	headerRow.AddCell().Value = "Tags"
	headerRow.AddCell().Value = "Created At"

	for _, a := range report.Appointments {
		row := apptSheet.AddRow()
		row.AddCell().Value = fmt.Sprint(a.ID)
		row.AddCell().Value = a.AppointmentDate
		row.AddCell().Value = a.AppointmentType
		row.AddCell().Value = report.Patients[a.PatientID].Name
		row.AddCell().Value = report.Doctors[a.DoctorID].Name
		row.AddCell().Value = a.Reason
		if a.Summary != nil && *a.Summary != "" {
			row.AddCell().Value = "yes"
		} else {
			row.AddCell().Value = "no"
		}
		if a.Tags != nil {
			row.AddCell().Value = *a.Tags
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = a.CreatedAt.Format(time.RFC3339)
	}

	rxSheet, err := file.AddSheet("Prescriptions")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	rxHeader := rxSheet.AddRow()
	rxHeader.AddCell().Value = "ID"
	rxHeader.AddCell().Value = "Medication"
	rxHeader.AddCell().Value = "Code"
	rxHeader.AddCell().Value = "Dosage"
	rxHeader.AddCell().Value = "Frequency"
	rxHeader.AddCell().Value = "Prescribed On"
	rxHeader.AddCell().Value = "Patient"
	rxHeader.AddCell().Value = "Doctor"

	for _, p := range report.Prescriptions {
		row := rxSheet.AddRow()
		row.AddCell().Value = fmt.Sprint(p.ID)
		row.AddCell().Value = p.MedicationName
		if p.MedicationCode != nil {
			row.AddCell().Value = *p.MedicationCode
		} else {
			row.AddCell().Value = ""
		}
		row.AddCell().Value = p.Dosage
		row.AddCell().Value = p.Frequency
		row.AddCell().Value = p.PrescribedOn
		row.AddCell().Value = report.Patients[p.PatientID].Name
		row.AddCell().Value = report.Doctors[p.DoctorID].Name
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
