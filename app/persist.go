package app

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/beamtime/entity"
)

var validate = validator.New()

func (s State) Serialize() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// Deserialize decodes persisted state. Anything that does not decode or
// holds out-of-range values yields DefaultState.
func Deserialize(data []byte) State {
	state, err := decode(data)
	if err != nil {
		log.WithError(err).Warn("Saved state is malformed, using defaults")
		return DefaultState()
	}
	return state
}

func decode(data []byte) (State, error) {
	state := DefaultState()
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}
	if state.CeBrA.Detectors == nil {
		state.CeBrA.Detectors = []entity.Detector{}
	}
	if err := validate.Struct(state); err != nil {
		return State{}, fmt.Errorf("invalid state: %w", err)
	}
	return state, nil
}
