package cube

import (
	"testing"
	"time"
)

func year(y int) time.Time {
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildCoords(t *testing.T) {
	g := Group{
		Year: 2030,
		Keys: []string{"a", "b", "c"},
		Records: map[string]Index{
			"a": {Temperature: 2.0, GCM: "modelB", Scenario: "rcp45", Time: year(2030)},
			"b": {Temperature: 1.5, GCM: "modelA", Scenario: "rcp45", Time: year(2030)},
			"c": {Temperature: 1.5, GCM: "modelA", Scenario: "ssp585", Time: year(2031)},
		},
	}

	cs := BuildCoords(g)
	if want := []float64{1.5, 2.0}; len(cs.Temperatures) != 2 || cs.Temperatures[0] != want[0] || cs.Temperatures[1] != want[1] {
		t.Errorf("Temperatures = %v, want %v", cs.Temperatures, want)
	}
	if len(cs.GCMs) != 2 || cs.GCMs[0] != "modelA" || cs.GCMs[1] != "modelB" {
		t.Errorf("GCMs = %v, want [modelA modelB]", cs.GCMs)
	}
	if len(cs.Scenarios) != 2 || cs.Scenarios[0] != "rcp45" || cs.Scenarios[1] != "ssp585" {
		t.Errorf("Scenarios = %v, want [rcp45 ssp585]", cs.Scenarios)
	}
	if len(cs.Times) != 2 || !cs.Times[0].Equal(year(2030)) || !cs.Times[1].Equal(year(2031)) {
		t.Errorf("Times = %v, want [2030 2031]", cs.Times)
	}

	cs.Native = append(cs.Native, NativeAxis{Name: "latitude", Values: []float64{10, 20}})
	wantShape := []int{2, 2, 2, 2, 2}
	if got := cs.Shape(); !shapeEqual(got, wantShape) {
		t.Errorf("Shape() = %v, want %v", got, wantShape)
	}
}

func TestCoordSpaceOffset(t *testing.T) {
	cs := &CoordSpace{
		Temperatures: []float64{1.5, 2.0},
		GCMs:         []string{"modelA"},
		Scenarios:    []string{"rcp45"},
		Times:        []time.Time{year(2030)},
		Native:       []NativeAxis{{Name: "latitude", Values: []float64{10, 20, 30}}},
	}

	off, err := cs.offset(Index{Temperature: 2.0, GCM: "modelA", Scenario: "rcp45", Time: year(2030)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if off != 3 {
		t.Errorf("offset = %d, want 3 (second temperature slab)", off)
	}

	_, err = cs.offset(Index{Temperature: 3.0, GCM: "modelA", Scenario: "rcp45", Time: year(2030)})
	if err == nil {
		t.Error("expected an error for a temperature outside the coordinate space")
	}
}
