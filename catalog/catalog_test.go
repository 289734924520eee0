package catalog

import "testing"

func TestServiceInputValidate(t *testing.T) {
	cases := []struct {
		name string
		in   ServiceInput
		ok   bool
	}{
		{"complete", ServiceInput{Name: "Corte", Price: 40, Duration: 30}, true},
		{"duration defaults", ServiceInput{Name: "Barba", Price: 30}, true},
		{"missing name", ServiceInput{Price: 40, Duration: 30}, false},
		{"zero price", ServiceInput{Name: "Corte", Duration: 30}, false},
		{"negative price", ServiceInput{Name: "Corte", Price: -1, Duration: 30}, false},
		{"negative duration", ServiceInput{Name: "Corte", Price: 40, Duration: -15}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.validate(); got != tc.ok {
				t.Fatalf("validate() = %v, want %v", got, tc.ok)
			}
		})
	}
}

func TestValidateAppliesDefaultDuration(t *testing.T) {
	in := ServiceInput{Name: "Sobrancelha", Price: 15}
	if !in.validate() {
		t.Fatal("expected valid input")
	}
	if in.Duration != defaultDuration {
		t.Fatalf("expected duration %d, got %d", defaultDuration, in.Duration)
	}
}
