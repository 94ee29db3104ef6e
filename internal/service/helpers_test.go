package service

import (
	"encoding/json"
	"path"
)

func roundTripJSON(value, dest interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func globMatch(pattern, key string) bool {
	ok, _ := path.Match(pattern, key)
	return ok
}

func floatPtr(v float64) *float64 { return &v }
