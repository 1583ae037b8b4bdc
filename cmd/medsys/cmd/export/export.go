package export

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/willyyyaj/medical-system/internal/app"
	"github.com/willyyyaj/medical-system/internal/app/export"
	"github.com/willyyyaj/medical-system/internal/app/model"
)

const listLimit = 1000

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "out", "o", "clinic-report.xlsx", "output workbook path")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export appointments and prescriptions to an Excel workbook",
	Long: `Export appointments and prescriptions to an Excel workbook.

- One sheet per record type, with patient and doctor names resolved`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := app.InitializeStore()
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()

		ctx := context.Background()

		patients, err := store.ListPatients(ctx, 0, listLimit)
		if err != nil {
			log.Fatal(err)
		}
		doctors, err := store.ListDoctors(ctx, 0, listLimit)
		if err != nil {
			log.Fatal(err)
		}

		report := export.Report{
			Patients: lo.KeyBy(patients, func(p model.Patient) int { return p.ID }),
			Doctors:  lo.KeyBy(doctors, func(d model.Doctor) int { return d.ID }),
		}

		for _, patient := range patients {
			appointments, err := store.ListAppointmentsByPatient(ctx, patient.ID)
			if err != nil {
				log.Fatal(err)
			}
			report.Appointments = append(report.Appointments, appointments...)

			prescriptions, err := store.ListPrescriptionsByPatient(ctx, patient.ID)
			if err != nil {
				log.Fatal(err)
			}
			report.Prescriptions = append(report.Prescriptions, prescriptions...)
		}

		if err := export.ToExcel(report, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
