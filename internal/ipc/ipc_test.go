package ipc

import "testing"

func TestValidateTable(t *testing.T) {
	t.Parallel()
	if err := ValidateTable(); err != nil {
		t.Fatalf("ValidateTable() = %v, want nil", err)
	}
}

func TestEnableFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   Command
		want Command
		ok   bool
	}{
		{GetSpeechInterruptForCharacters, EnableSpeechInterruptForCharacters, true},
		{GetSpeakTypedWords, EnableSpeakTypedWords, true},
		{GetSpeakTypedCharacters, EnableSpeakTypedCharacters, true},
		{DisableSpeakTypedWords, "", false},
		{EnableSpeakTypedWords, "", false},
		{Command("bogus"), "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()
			got, ok := EnableFor(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("EnableFor(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestQueriesAndDisablesAligned(t *testing.T) {
	t.Parallel()
	if len(Queries) != len(Disables) {
		t.Fatalf("len(Queries) = %d, len(Disables) = %d", len(Queries), len(Disables))
	}
	for i, q := range Queries {
		suffix := string(q)[len("get"):]
		if want := Command("disable" + suffix); Disables[i] != want {
			t.Errorf("Disables[%d] = %q, want %q", i, Disables[i], want)
		}
	}
}

func TestResult_Truthy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string one", "1", true},
		{"string other", "enabled", false},
		{"json number one", float64(1), true},
		{"json number zero", float64(0), false},
		{"int", 2, true},
		{"nil", nil, false},
		{"unexpected type", []string{"true"}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Result{Command: GetSpeakTypedWords, Value: tt.value}
			if got := r.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}
