package models

import (
	"encoding/json"
	"strconv"

	dErrors "phoneinventory/pkg/domain-errors"
)

// Kind is the declared type of a field for coercion purposes.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindStringList:
		return "list of strings"
	default:
		return "string"
	}
}

// FieldSpec binds a column name to its declared kind, identity flag, and the
// typed accessors the update and filter paths share. The registry replaces the
// original runtime column reflection with a static table.
type FieldSpec struct {
	Name string
	Kind Kind
	// Identity fields are write-once: set at creation, rejected on update.
	Identity bool
	// Get reads the field's typed value for in-memory filtering.
	Get func(*Phone) any
	// Set validates the typed value and applies it. Nil for identity fields.
	Set func(*Phone, any) error
}

// FieldSerialNumber and friends name the table's columns as they appear on the
// wire and in storage.
const (
	FieldID                  = "id"
	FieldSerialNumber        = "serial_number"
	FieldIMEI                = "imei"
	FieldModel               = "model"
	FieldBrand               = "brand"
	FieldNetworkTechnologies = "network_technologies"
	FieldNumberOfCameras     = "number_of_cameras"
	FieldNumberOfCores       = "number_of_cores"
	FieldWeight              = "weight"
	FieldBatteryCapacity     = "battery_capacity"
	FieldCost                = "cost"
)

var fieldRegistry = map[string]FieldSpec{
	FieldID: {
		Name: FieldID, Kind: KindInt, Identity: true,
		Get: func(p *Phone) any { return int(p.ID) },
	},
	FieldSerialNumber: {
		Name: FieldSerialNumber, Kind: KindString, Identity: true,
		Get: func(p *Phone) any { return p.SerialNumber },
	},
	FieldIMEI: {
		Name: FieldIMEI, Kind: KindString, Identity: true,
		Get: func(p *Phone) any { return p.IMEI },
	},
	FieldModel: {
		Name: FieldModel, Kind: KindString, Identity: true,
		Get: func(p *Phone) any { return p.Model },
	},
	FieldBrand: {
		Name: FieldBrand, Kind: KindString, Identity: true,
		Get: func(p *Phone) any { return p.Brand },
	},
	FieldNetworkTechnologies: {
		Name: FieldNetworkTechnologies, Kind: KindStringList,
		Get: func(p *Phone) any { return p.CanonicalTechnologies() },
		Set: func(p *Phone, v any) error {
			technologies := v.([]string)
			if err := ValidateNetworkTechnologies(technologies); err != nil {
				return err
			}
			p.NetworkTechnologies = append([]string(nil), technologies...)
			return nil
		},
	},
	FieldNumberOfCameras: {
		Name: FieldNumberOfCameras, Kind: KindInt,
		Get: func(p *Phone) any { return p.NumberOfCameras },
		Set: func(p *Phone, v any) error {
			if err := ValidateNumberOfCameras(v.(int)); err != nil {
				return err
			}
			p.NumberOfCameras = v.(int)
			return nil
		},
	},
	FieldNumberOfCores: {
		Name: FieldNumberOfCores, Kind: KindInt,
		Get: func(p *Phone) any { return p.NumberOfCores },
		Set: func(p *Phone, v any) error {
			if err := ValidateNumberOfCores(v.(int)); err != nil {
				return err
			}
			p.NumberOfCores = v.(int)
			return nil
		},
	},
	FieldWeight: {
		Name: FieldWeight, Kind: KindInt,
		Get: func(p *Phone) any { return p.Weight },
		Set: func(p *Phone, v any) error {
			if err := ValidateWeight(v.(int)); err != nil {
				return err
			}
			p.Weight = v.(int)
			return nil
		},
	},
	FieldBatteryCapacity: {
		Name: FieldBatteryCapacity, Kind: KindInt,
		Get: func(p *Phone) any { return p.BatteryCapacity },
		Set: func(p *Phone, v any) error {
			if err := ValidateBatteryCapacity(v.(int)); err != nil {
				return err
			}
			p.BatteryCapacity = v.(int)
			return nil
		},
	},
	FieldCost: {
		Name: FieldCost, Kind: KindFloat,
		Get: func(p *Phone) any { return p.Cost },
		Set: func(p *Phone, v any) error {
			if err := ValidateCost(v.(float64)); err != nil {
				return err
			}
			p.Cost = v.(float64)
			return nil
		},
	},
}

// FieldByName looks a field up in the static registry.
func FieldByName(name string) (FieldSpec, bool) {
	field, ok := fieldRegistry[name]
	return field, ok
}

// CoercePath parses a raw URL path value into the field's declared type.
// Used by the filter endpoint; shares error wording with CoerceJSON.
func (f FieldSpec) CoercePath(raw string) (any, error) {
	switch f.Kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, f.coercionError()
		}
		return n, nil
	case KindFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, f.coercionError()
		}
		return x, nil
	case KindStringList:
		// Filtering matches substring containment against the canonical string,
		// so the raw value passes through untyped.
		return raw, nil
	default:
		return raw, nil
	}
}

// CoerceJSON converts a decoded JSON value into the field's declared type.
// Numbers arrive as json.Number; numeric strings are accepted the way the
// original service's int()/float() coercion accepted them.
func (f FieldSpec) CoerceJSON(value any) (any, error) {
	switch f.Kind {
	case KindInt:
		switch v := value.(type) {
		case json.Number:
			n, err := strconv.Atoi(v.String())
			if err != nil {
				return nil, f.coercionError()
			}
			return n, nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, f.coercionError()
			}
			return n, nil
		default:
			return nil, f.coercionError()
		}
	case KindFloat:
		switch v := value.(type) {
		case json.Number:
			x, err := v.Float64()
			if err != nil {
				return nil, f.coercionError()
			}
			return x, nil
		case string:
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, f.coercionError()
			}
			return x, nil
		default:
			return nil, f.coercionError()
		}
	case KindStringList:
		items, ok := value.([]any)
		if !ok {
			return nil, f.coercionError()
		}
		technologies := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, f.coercionError()
			}
			technologies = append(technologies, s)
		}
		return technologies, nil
	default:
		s, ok := value.(string)
		if !ok {
			return nil, f.coercionError()
		}
		return s, nil
	}
}

func (f FieldSpec) coercionError() error {
	return dErrors.Newf(dErrors.CodeBadRequest, "invalid type for field %s: expected %s", f.Name, f.Kind)
}
