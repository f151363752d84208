package config

import "testing"

func TestBuildType(t *testing.T) {
	tests := []struct {
		release string
		want    string
	}{
		{release: "", want: "DEBUG"},
		{release: "off", want: "DEBUG"},
		{release: "on", want: "RELEASE"},
		{release: "ON", want: "RELEASE"},
	}

	for _, tt := range tests {
		s, _, _ := testStore(t)
		s.local["release"] = tt.release
		if got := s.BuildType(); got != tt.want {
			t.Errorf("BuildType with release=%q = %q, want %q", tt.release, got, tt.want)
		}
	}
}

func TestAlertAndWarnings(t *testing.T) {
	s, _, _ := testStore(t)

	if s.Alert() || s.Warnings() {
		t.Error("alert/warnings should default to off")
	}

	s.local["alert"] = "on"
	s.local["warnings"] = "TRUE"
	if !s.Alert() {
		t.Error("Alert() = false with alert=on")
	}
	if !s.Warnings() {
		t.Error("Warnings() = false with warnings=TRUE")
	}
}

func TestBMCInfo(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *BMC
		wantErr bool
	}{
		{name: "unset", value: "", want: nil},
		{
			name:  "openbmc defaults",
			value: "openbmc;10.1.2.3",
			want:  &BMC{Kind: "OpenBMC", IP: "10.1.2.3", User: "root", Password: "0penBmc"},
		},
		{
			name:  "ilo with credentials",
			value: "ilo;192.168.0.10;admin;secret",
			want:  &BMC{Kind: "iLO", IP: "192.168.0.10", User: "admin", Password: "secret"},
		},
		{name: "unknown kind", value: "drac;10.0.0.1", wantErr: true},
		{name: "missing ip", value: "ilo", wantErr: true},
		{name: "bad ip", value: "ilo;300.1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := testStore(t)
			s.local["bmc"] = tt.value

			got, err := s.BMCInfo()
			if tt.wantErr {
				if err == nil {
					t.Fatal("BMCInfo = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BMCInfo = %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("BMCInfo = %+v, want nil", got)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("BMCInfo = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}
