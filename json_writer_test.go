package allocation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestOrderedObject(t *testing.T) {
	tcs := []struct {
		name string
		fill func(o *orderedObject)
		want string
	}{
		{"empty", func(o *orderedObject) {}, `{}`},
		{"insertion order", func(o *orderedObject) {
			o.add("z", 1)
			o.add("a", "hello")
		}, `{"z":1,"a":"hello"}`},
		{"zero numbers skipped", func(o *orderedObject) {
			o.add("a", 0)
			o.addNonZero("b", 0)
			o.addNonZero("c", -0.5)
		}, `{"a":0,"c":-0.5}`},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var o orderedObject
			tc.fill(&o)
			got, err := o.MarshalJSON()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestOrderedObject_Error(t *testing.T) {
	var o orderedObject
	o.add("risk", math.Inf(1))
	if _, err := o.MarshalJSON(); err == nil || !strings.Contains(err.Error(), `"risk"`) {
		t.Errorf("got error %v, want an error naming the field", err)
	}
}

func TestTotalsMarshalJSON(t *testing.T) {
	s := NewStore()
	s.AppendAsset("Stocks")
	s.SetInvestment("Stocks", 100)
	s.SetExpectedReturn("Stocks", 5)

	got, err := json.Marshal(Recompute(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"total_investment":100,"total_return":0.05,"total_risk":0,"total_ratio":1,` +
		`"allocations":[{"name":"Stocks","investment":100,"investment_ratio":1,"expected_return":5}]}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
