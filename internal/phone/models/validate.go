package models

import (
	"strings"
	"unicode"

	dErrors "phoneinventory/pkg/domain-errors"
)

// AllowedNetworks is the fixed vocabulary for network technologies, in the
// order used for user-facing messages.
var AllowedNetworks = []string{"GSM", "HSPA", "LTE", "3G", "4G", "5G"}

var allowedNetworkSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedNetworks))
	for _, n := range AllowedNetworks {
		set[n] = struct{}{}
	}
	return set
}()

// Validators are pure functions over a single attribute. They never touch the
// store and report the first violated constraint as a validation error.

func ValidateSerialNumber(serial string) error {
	if len([]rune(serial)) != 11 || !isAlphanumeric(serial) {
		return dErrors.New(dErrors.CodeValidation, "serial number must be exactly 11 alphanumeric characters")
	}
	return nil
}

func ValidateIMEI(imei string) error {
	if len(imei) != 15 || !isDigits(imei) {
		return dErrors.New(dErrors.CodeValidation, "IMEI must be exactly 15 digits")
	}
	return nil
}

func ValidateModel(model string) error {
	if len([]rune(model)) < 2 || !isAlphanumeric(model) {
		return dErrors.New(dErrors.CodeValidation, "model must be alphanumeric and at least 2 characters long")
	}
	return nil
}

func ValidateBrand(brand string) error {
	if len([]rune(brand)) < 2 || !isAlphabetic(brand) {
		return dErrors.New(dErrors.CodeValidation, "brand must contain only letters and be at least 2 characters long")
	}
	return nil
}

// ValidateNetworkTechnologies rejects empty input and values outside the fixed
// vocabulary. Duplicates and ordering are preserved, not rejected.
func ValidateNetworkTechnologies(technologies []string) error {
	if len(technologies) == 0 {
		return dErrors.New(dErrors.CodeValidation, "network technologies must be provided as a non-empty list")
	}
	for _, tech := range technologies {
		if _, ok := allowedNetworkSet[tech]; !ok {
			return dErrors.Newf(dErrors.CodeValidation, "network technologies must be among: %s", strings.Join(AllowedNetworks, ", "))
		}
	}
	return nil
}

func ValidateNumberOfCameras(cameras int) error {
	if cameras < 1 || cameras > 3 {
		return dErrors.New(dErrors.CodeValidation, "number of cameras must be an integer between 1 and 3")
	}
	return nil
}

func ValidateNumberOfCores(cores int) error {
	if cores < 1 {
		return dErrors.New(dErrors.CodeValidation, "number of cores must be an integer greater than or equal to 1")
	}
	return nil
}

func ValidateWeight(weight int) error {
	if weight <= 0 {
		return dErrors.New(dErrors.CodeValidation, "weight must be a positive integer (in grams)")
	}
	return nil
}

func ValidateBatteryCapacity(capacity int) error {
	if capacity <= 0 {
		return dErrors.New(dErrors.CodeValidation, "battery capacity must be a positive integer (in mAh)")
	}
	return nil
}

func ValidateCost(cost float64) error {
	if cost <= 0 {
		return dErrors.New(dErrors.CodeValidation, "cost must be a positive number")
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
