//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/willyyyaj/medical-system/internal/api/server"
	"github.com/willyyyaj/medical-system/internal/api/v1/routes"
	"github.com/willyyyaj/medical-system/internal/api/v1/services"
	"github.com/willyyyaj/medical-system/internal/app/notify"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

var storeSet = wire.NewSet(
	provideSecrets,
	provideLogger,
	provideStore,
	wire.Bind(new(repository.UserRepository), new(*repository.Store)),
	wire.Bind(new(repository.PatientRepository), new(*repository.Store)),
	wire.Bind(new(repository.DoctorRepository), new(*repository.Store)),
	wire.Bind(new(repository.AppointmentRepository), new(*repository.Store)),
	wire.Bind(new(repository.TaskRepository), new(*repository.Store)),
	wire.Bind(new(repository.PrescriptionRepository), new(*repository.Store)),
)

var serviceSet = wire.NewSet(
	provideServerConfig,
	provideTokenIssuer,
	provideGeminiClient,
	provideAssistant,
	provideValidator,
	provideTranscriber,
	provideAudioArchive,
	provideRedis,
	provideMedicationSource,
	notify.NewHub,
	services.NewAuthService,
	services.NewPatientService,
	services.NewDoctorService,
	services.NewAppointmentService,
	services.NewTaskService,
	services.NewPrescriptionService,
	services.NewDashboardService,
	services.NewAIService,
	services.NewValidationService,
	services.NewMedicationService,
	wire.Struct(new(routes.ServiceContainer), "*"),
)

// InitializeServer wires the full API server from environment configuration.
func InitializeServer() (*server.Server, error) {
	wire.Build(storeSet, serviceSet, server.NewServer)
	return nil, nil
}

// InitializeStore wires only the database layer, for CLI subcommands that
// work on the data directly.
func InitializeStore() (*repository.Store, error) {
	wire.Build(storeSet)
	return nil, nil
}
