package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glowpoint/clinic-desk/internal/application/services"
	"github.com/glowpoint/clinic-desk/internal/domain/entities"
	"github.com/glowpoint/clinic-desk/pkg/config"
	apperrors "github.com/glowpoint/clinic-desk/pkg/errors"
)

const analysisName = "Initial Skin Analysis & Consultation"

func clinicConfig() config.ClinicConfig {
	return config.ClinicConfig{
		AnalysisTreatmentName: analysisName,
		StockAlertThreshold:   5,
		DefaultSlotTime:       "10:00",
	}
}

func newBookingService(
	appointments *MockAppointmentRepository,
	patients *MockPatientRepository,
	doctors *MockDoctorRepository,
	treatments *MockTreatmentRepository,
) *services.BookingService {
	return services.NewBookingService(appointments, patients, doctors, treatments, nil, clinicConfig())
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 3).Format("2006-01-02")
}

func analysisTreatment() *entities.Treatment {
	return &entities.Treatment{ID: "t-analysis", Name: analysisName, DurationMinutes: 30, Price: 0}
}

func facialTreatment() *entities.Treatment {
	return &entities.Treatment{ID: "t-facial", Name: "Hydrating Facial", DurationMinutes: 60, Price: 450000}
}

func TestBookingService_Book(t *testing.T) {
	doctor := &entities.Doctor{ID: "d-1", Name: "dr. Maya"}

	t.Run("injects analysis treatment for first-time patient", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-1", FullName: "Sari", HasInitialSkinAnalysis: false}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-1").Return(patient, nil)
		treatments.On("GetByName", mock.Anything, analysisName).Return(analysisTreatment(), nil)
		treatments.On("GetByID", mock.Anything, "t-analysis").Return(analysisTreatment(), nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return len(a.TreatmentIDs) == 2 &&
				a.TreatmentIDs[0] == "t-analysis" &&
				a.TreatmentIDs[1] == "t-facial" &&
				a.IsInitialSkinAnalysis &&
				a.Status == entities.AppointmentStatusBooked
		})).Return(nil)

		appointment, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-1",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         futureDate(),
			StartTime:    "13:00",
		})

		assert.NoError(t, err)
		assert.Equal(t, 90, appointment.DurationMinutes)
		assert.Equal(t, "14:30", appointment.EndTime)
		appointments.AssertExpectations(t)
	})

	t.Run("injection is idempotent when request already carries the analysis", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-1", HasInitialSkinAnalysis: false}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-1").Return(patient, nil)
		treatments.On("GetByName", mock.Anything, analysisName).Return(analysisTreatment(), nil)
		treatments.On("GetByID", mock.Anything, "t-analysis").Return(analysisTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return len(a.TreatmentIDs) == 1 && a.TreatmentIDs[0] == "t-analysis"
		})).Return(nil)

		appointment, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-1",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-analysis"},
			Date:         futureDate(),
		})

		assert.NoError(t, err)
		assert.Equal(t, 30, appointment.DurationMinutes)
		appointments.AssertExpectations(t)
	})

	t.Run("does not inject for returning patient", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-2", HasInitialSkinAnalysis: true}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-2").Return(patient, nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return len(a.TreatmentIDs) == 1 &&
				a.TreatmentIDs[0] == "t-facial" &&
				!a.IsInitialSkinAnalysis
		})).Return(nil)

		_, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-2",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         futureDate(),
		})

		assert.NoError(t, err)
		treatments.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	})

	t.Run("uses the default slot when no start time given", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-2", HasInitialSkinAnalysis: true}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-2").Return(patient, nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.Anything).Return(nil)

		appointment, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-2",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         futureDate(),
		})

		assert.NoError(t, err)
		assert.Equal(t, "10:00", appointment.StartTime)
		assert.Equal(t, "11:00", appointment.EndTime)
	})

	t.Run("rejects a date in the past", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		_, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-1",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         "2020-01-01",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("allows booking for today", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-2", HasInitialSkinAnalysis: true}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-2").Return(patient, nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-2",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         time.Now().Format("2006-01-02"),
		})

		assert.NoError(t, err)
		appointments.AssertExpectations(t)
	})

	t.Run("clamps the end time at the end of the day", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		patient := &entities.Patient{ID: "p-2", HasInitialSkinAnalysis: true}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		patients.On("GetByID", mock.Anything, "p-2").Return(patient, nil)
		treatments.On("GetByID", mock.Anything, "t-facial").Return(facialTreatment(), nil)
		appointments.On("Create", mock.Anything, mock.Anything).Return(nil)

		appointment, err := service.Book(context.Background(), &services.BookingRequest{
			PatientID:    "p-2",
			DoctorID:     "d-1",
			TreatmentIDs: []string{"t-facial"},
			Date:         futureDate(),
			StartTime:    "23:30",
		})

		assert.NoError(t, err)
		assert.Equal(t, "23:59", appointment.EndTime)
	})

	t.Run("registers and indexes a walk-in before the appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		search := new(MockPatientSearchRepository)
		service := services.NewBookingService(appointments, patients, doctors, treatments, search, clinicConfig())

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)
		treatments.On("GetByName", mock.Anything, analysisName).Return(analysisTreatment(), nil)
		treatments.On("GetByID", mock.Anything, "t-analysis").Return(analysisTreatment(), nil)
		patients.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Patient) bool {
			return p.FullName == "Dewi" && !p.HasInitialSkinAnalysis && p.ID != ""
		})).Return(nil)
		search.On("Index", mock.Anything, mock.Anything).Return(nil)
		appointments.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Book(context.Background(), &services.BookingRequest{
			NewPatient: &services.NewPatientRecord{
				FullName:  "Dewi",
				Phone:     "0812000111",
				BirthDate: "1994-05-01",
			},
			DoctorID: "d-1",
			Date:     futureDate(),
		})

		assert.NoError(t, err)
		patients.AssertExpectations(t)
		search.AssertExpectations(t)
	})

	t.Run("validation failures", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		patients := new(MockPatientRepository)
		doctors := new(MockDoctorRepository)
		treatments := new(MockTreatmentRepository)
		service := newBookingService(appointments, patients, doctors, treatments)

		cases := []struct {
			name string
			req  *services.BookingRequest
		}{
			{"missing date", &services.BookingRequest{PatientID: "p-1", DoctorID: "d-1"}},
			{"malformed date", &services.BookingRequest{PatientID: "p-1", DoctorID: "d-1", Date: "next tuesday"}},
			{"past date", &services.BookingRequest{PatientID: "p-1", DoctorID: "d-1", Date: "2020-01-01"}},
			{"missing doctor", &services.BookingRequest{PatientID: "p-1", Date: futureDate()}},
			{"no patient selection", &services.BookingRequest{DoctorID: "d-1", Date: futureDate()}},
			{"walk-in missing phone", &services.BookingRequest{
				NewPatient: &services.NewPatientRecord{FullName: "Dewi", BirthDate: "1994-05-01"},
				DoctorID:   "d-1",
				Date:       futureDate(),
			}},
		}

		doctors.On("GetByID", mock.Anything, "d-1").Return(doctor, nil)

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.Book(context.Background(), tc.req)
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
			})
		}

		appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
