package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/born-ml/minimize/internal/optim"
)

// BatchKindHookFunc decodes batch optimizer names such as "lbfgs".
func BatchKindHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(optim.BatchGD) {
			return data, nil
		}
		return optim.ParseBatchKind(strings.TrimSpace(data.(string)))
	}
}

// StochKindHookFunc decodes stochastic optimizer names such as "adagrad".
func StochKindHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(optim.StochSG) {
			return data, nil
		}
		return optim.ParseStochKind(strings.TrimSpace(data.(string)))
	}
}
