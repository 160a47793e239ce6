package simpleexcel

import (
	"reflect"
	"testing"
)

type rosterRow struct {
	Shift  string            `excel:"shift"`
	Cells  map[string]string `excel:"day"`
	Hidden int               `excel:"-"`
	Hours  float64
	secret string
}

func TestConvertToDynamicData_ShouldValidDynamicObject(t *testing.T) {
	testCases := map[string]struct {
		input  interface{}
		output interface{}
	}{
		"struct with map": {
			input: rosterRow{
				Shift:  "Morning",
				Cells:  map[string]string{"Monday": "Sarah", "Tuesday": "Emma"},
				Hidden: 7,
				Hours:  8,
				secret: "x",
			},
			output: map[string]interface{}{
				"shift":       "Morning",
				"day_Monday":  "Sarah",
				"day_Tuesday": "Emma",
				"Hours":       8.0,
			},
		},
		"slice of struct pointers": {
			input: []*rosterRow{
				{Shift: "Night", Cells: map[string]string{"Sunday": "Ryan"}},
				{Shift: "Split"},
			},
			output: []map[string]interface{}{
				{"shift": "Night", "day_Sunday": "Ryan", "Hours": 0.0},
				{"shift": "Split", "Hours": 0.0},
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			flattened, err := ConvertToDynamicData(tc.input)
			if err != nil {
				t.Fatalf("ConvertToDynamicData failed: %v", err)
			}
			if !reflect.DeepEqual(flattened, tc.output) {
				t.Errorf("Expected %v, got %v", tc.output, flattened)
			}
		})
	}
}

func TestConvertToDynamicData_RejectsScalars(t *testing.T) {
	if _, err := ConvertToDynamicData(42); err == nil {
		t.Fatal("expected an error for a scalar input")
	}
	if _, err := ConvertToDynamicData([]int{1, 2}); err == nil {
		t.Fatal("expected an error for a slice of scalars")
	}
}
