package allocation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedObject is a JSON object whose keys are written in the order they
// were added, so that a report reads in the same order as its table.
type orderedObject struct {
	keys   []string
	values []any
}

// add appends a field.
func (o *orderedObject) add(key string, value any) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
}

// addNonZero appends a number field unless it is 0.
func (o *orderedObject) addNonZero(key string, value float64) {
	if value != 0 {
		o.add(key, value)
	}
}

// MarshalJSON implements json.Marshaler.
func (o orderedObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
