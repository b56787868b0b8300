// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/shopspring/decimal"
)

// ParameterChangedMsg signals a slider moved. Key is one of the refdata
// slider keys.
type ParameterChangedMsg struct {
	Key   string
	Value decimal.Decimal
}

// ChargingPresetChangedMsg signals a different charging mix was picked
type ChargingPresetChangedMsg struct {
	Key string
}

// ParametersResetMsg asks the root model to restore the loaded profile
type ParametersResetMsg struct{}

// VehiclesSelectedMsg signals a new subscription/lease pair
type VehiclesSelectedMsg struct {
	EVID  string
	ICEID string
}

// SaveProfileMsg asks the root model to write the current profile
type SaveProfileMsg struct{}
