package vehicle

import "testing"

func TestParseFuelType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FuelType
		wantErr  bool
	}{
		{"Petrol", "petrol", FuelPetrol, false},
		{"Diesel uppercase", "DIESEL", FuelDiesel, false},
		{"LPG mixed case", "Lpg", FuelLPG, false},
		{"Electric with whitespace", " electric ", FuelElectric, false},
		{"CNG", "cng", FuelCNG, false},
		{"Hybrid", "hybrid", FuelHybrid, false},
		{"Unknown", "steam", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFuelType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFuelType(%q) error = nil, expected an error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFuelType(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseFuelType(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{
		Price:                   60000,
		ManufactureYear:         2023,
		FuelType:                FuelDiesel,
		CityName:                "Bucharest",
		CombinedFuelConsumption: 6.0,
	}
	if err := valid.Validate(2026); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}

	invalid := Profile{
		Price:                   0,
		ManufactureYear:         2030,
		FuelType:                "steam",
		CombinedFuelConsumption: -1,
	}
	if err := invalid.Validate(2026); err == nil {
		t.Error("Validate() = nil, expected an error listing every violation")
	}
}

func TestProfileAgeYears(t *testing.T) {
	profile := Profile{ManufactureYear: 2020}

	if age := profile.AgeYears(2026); age != 6 {
		t.Errorf("AgeYears(2026) = %d, expected 6", age)
	}
	// Registrations dated next model year clamp to zero.
	if age := profile.AgeYears(2019); age != 0 {
		t.Errorf("AgeYears(2019) = %d, expected 0", age)
	}
}
