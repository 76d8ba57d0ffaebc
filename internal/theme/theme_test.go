package theme

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		system   Scheme
		override Scheme
		want     Scheme
	}{
		{"override dark wins", Light, Dark, Dark},
		{"override light wins", Dark, Light, Light},
		{"system dark when deferred", Dark, System, Dark},
		{"system light when deferred", Light, System, Light},
		{"unknown system resolves light", System, System, Light},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.system, tc.override); got != tc.want {
				t.Errorf("Resolve(%s, %s) = %s, want %s", tc.system, tc.override, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse("dark"); !ok {
		t.Error("Expected dark to parse")
	}
	if _, ok := Parse("solarized"); ok {
		t.Error("Expected unknown scheme to be rejected")
	}
}
