package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"phoneinventory/internal/phone/models"
	"phoneinventory/internal/phone/service"
	dErrors "phoneinventory/pkg/domain-errors"
)

// createFieldOrder fixes the order in which missing keys and type mismatches
// are reported, matching the validator order of the entity constructor.
var createFieldOrder = []string{
	models.FieldSerialNumber,
	models.FieldIMEI,
	models.FieldModel,
	models.FieldBrand,
	models.FieldNetworkTechnologies,
	models.FieldNumberOfCameras,
	models.FieldNumberOfCores,
	models.FieldWeight,
	models.FieldBatteryCapacity,
	models.FieldCost,
}

// decodeCreateRequest reads the create payload. Every domain field is
// required; wrong JSON types are rejected before any validator runs. Creation
// is strict about types (no string-to-number coercion), unlike the update and
// filter paths.
func decodeCreateRequest(r *http.Request) (service.CreateInput, error) {
	var in service.CreateInput

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return in, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}

	targets := map[string]any{
		models.FieldSerialNumber:        &in.SerialNumber,
		models.FieldIMEI:                &in.IMEI,
		models.FieldModel:               &in.Model,
		models.FieldBrand:               &in.Brand,
		models.FieldNetworkTechnologies: &in.NetworkTechnologies,
		models.FieldNumberOfCameras:     &in.NumberOfCameras,
		models.FieldNumberOfCores:       &in.NumberOfCores,
		models.FieldWeight:              &in.Weight,
		models.FieldBatteryCapacity:     &in.BatteryCapacity,
		models.FieldCost:                &in.Cost,
	}

	for _, name := range createFieldOrder {
		value, ok := raw[name]
		if !ok {
			return in, dErrors.Newf(dErrors.CodeBadRequest, "missing required field: %s", name)
		}
		if err := json.Unmarshal(value, targets[name]); err != nil {
			field, _ := models.FieldByName(name)
			return in, dErrors.Newf(dErrors.CodeBadRequest, "invalid type for field %s: expected %s", name, field.Kind)
		}
	}
	return in, nil
}

// decodeUpdateRequest reads the update payload as an ordered sequence of
// field changes. JSON objects do not round-trip key order through Go maps, so
// the decoder walks the document tokens directly; the service processes
// changes in exactly the order the client supplied them.
func decodeUpdateRequest(r *http.Request) ([]service.FieldChange, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}

	var changes []service.FieldChange
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
		}
		changes = append(changes, service.FieldChange{Name: key, Value: value})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return changes, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("unexpected end of body")
		}
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q", want)
	}
	return nil
}
