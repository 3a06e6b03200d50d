package models

import "strings"

// technologyDelimiter joins the network technology list into its canonical
// stored form. Splitting the canonical string reconstructs the input order.
const technologyDelimiter = ","

// Phone is the sole entity: one mobile-phone inventory record.
//
// Invariants:
//   - every attribute satisfies its validator before the record is stored or updated
//   - SerialNumber and IMEI are globally unique
//   - SerialNumber, IMEI, Model and Brand are write-once (set at creation only)
type Phone struct {
	ID                  int64    `json:"id"`
	SerialNumber        string   `json:"serial_number"`
	IMEI                string   `json:"imei"`
	Model               string   `json:"model"`
	Brand               string   `json:"brand"`
	NetworkTechnologies []string `json:"network_technologies"`
	NumberOfCameras     int      `json:"number_of_cameras"`
	NumberOfCores       int      `json:"number_of_cores"`
	Weight              int      `json:"weight"`
	BatteryCapacity     int      `json:"battery_capacity"`
	Cost                float64  `json:"cost"`
}

// New validates the ten raw field values in a fixed order and assembles a
// record. The first invalid field aborts construction; a Phone is never
// partially built. The ID stays zero until the store assigns one.
func New(
	serialNumber, imei, model, brand string,
	networkTechnologies []string,
	numberOfCameras, numberOfCores, weight, batteryCapacity int,
	cost float64,
) (*Phone, error) {
	if err := ValidateSerialNumber(serialNumber); err != nil {
		return nil, err
	}
	if err := ValidateIMEI(imei); err != nil {
		return nil, err
	}
	if err := ValidateModel(model); err != nil {
		return nil, err
	}
	if err := ValidateBrand(brand); err != nil {
		return nil, err
	}
	if err := ValidateNetworkTechnologies(networkTechnologies); err != nil {
		return nil, err
	}
	if err := ValidateNumberOfCameras(numberOfCameras); err != nil {
		return nil, err
	}
	if err := ValidateNumberOfCores(numberOfCores); err != nil {
		return nil, err
	}
	if err := ValidateWeight(weight); err != nil {
		return nil, err
	}
	if err := ValidateBatteryCapacity(batteryCapacity); err != nil {
		return nil, err
	}
	if err := ValidateCost(cost); err != nil {
		return nil, err
	}
	return &Phone{
		SerialNumber:        serialNumber,
		IMEI:                imei,
		Model:               model,
		Brand:               brand,
		NetworkTechnologies: append([]string(nil), networkTechnologies...),
		NumberOfCameras:     numberOfCameras,
		NumberOfCores:       numberOfCores,
		Weight:              weight,
		BatteryCapacity:     batteryCapacity,
		Cost:                cost,
	}, nil
}

// CanonicalTechnologies returns the delimiter-joined on-disk representation of
// the network technology list.
func (p *Phone) CanonicalTechnologies() string {
	return JoinTechnologies(p.NetworkTechnologies)
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (p *Phone) Clone() *Phone {
	clone := *p
	clone.NetworkTechnologies = append([]string(nil), p.NetworkTechnologies...)
	return &clone
}

// JoinTechnologies canonicalizes an ordered technology list for storage.
func JoinTechnologies(technologies []string) string {
	return strings.Join(technologies, technologyDelimiter)
}

// SplitTechnologies reconstructs the ordered list from its canonical string.
func SplitTechnologies(canonical string) []string {
	if canonical == "" {
		return nil
	}
	return strings.Split(canonical, technologyDelimiter)
}
