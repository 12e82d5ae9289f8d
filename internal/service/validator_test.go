package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/magscene/magsav/internal/entity"
)

func TestValidateVehicle(t *testing.T) {
	year := 1900
	mileage := -1

	err := ValidateVehicle(entity.Vehicle{
		Name:    "Master",
		Type:    entity.VehicleVan,
		Status:  entity.VehicleStatus("PARKED"),
		Year:    &year,
		Mileage: &mileage,
	})
	require.ErrorIs(t, err, entity.ErrValidation)

	var fields []string
	for _, f := range err.(*entity.ValidationError).Fields {
		fields = append(fields, f.Field)
	}

	require.Equal(t, []string{"licensePlate", "brand", "model", "status", "year", "mileage"}, fields)

	require.NoError(t, ValidateVehicle(entity.Vehicle{
		Name:         "Master",
		LicensePlate: "AB-123-CD",
		Brand:        "Renault",
		Model:        "Master",
		Type:         entity.VehicleVan,
		Status:       entity.VehicleAvailable,
	}))
}

func TestValidateContract(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	amount := decimal.NewFromInt(-5)

	err := ValidateContract(entity.Contract{
		ContractNumber: "CT-1",
		ClientID:       1,
		Type:           entity.ContractRental,
		Status:         entity.ContractActive,
		StartDate:      start,
		EndDate:        &end,
		Amount:         &amount,
	})
	require.ErrorIs(t, err, entity.ErrValidation)
	require.Contains(t, err.Error(), "endDate")
	require.Contains(t, err.Error(), "amount")

	err = ValidateContract(entity.Contract{ContractNumber: "CT-2", Type: entity.ContractRental, Status: entity.ContractDraft})
	require.Contains(t, err.Error(), "clientId")
	require.Contains(t, err.Error(), "startDate")
}

func TestValidateContactFields(t *testing.T) {
	cases := []struct {
		name  string
		email string
		phone string
		ok    bool
	}{
		{name: "valid", email: "contact@magscene.fr", phone: "+33 6 12 34 56 78", ok: true},
		{name: "blank optional", email: " ", phone: "", ok: true},
		{name: "display name email", email: "Bob <bob@example.com>", phone: "0612345678"},
		{name: "letters in phone", email: "bob@example.com", phone: "06-CALL-ME"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePersonnel(entity.Personnel{
				FirstName: "Bob",
				LastName:  "Martin",
				Type:      entity.PersonnelFreelance,
				Email:     &tc.email,
				Phone:     &tc.phone,
			})

			if tc.ok {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, entity.ErrValidation)
		})
	}
}

func TestNumber(t *testing.T) {
	at := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	a := number("SAV", at)
	b := number("SAV", at)

	require.Regexp(t, `^SAV-251020-[0-9A-F]{8}$`, a)
	require.NotEqual(t, a, b)
}
