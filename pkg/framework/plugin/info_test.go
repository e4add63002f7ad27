package plugin

import (
	"testing"

	"github.com/google/uuid"
)

func TestUIDGeneration(t *testing.T) {
	tests := []string{
		"com.clapgo.examples.gain",
		"com.mycompany.newplugin",
		"com.mycompany.anotherplugin",
	}

	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			info := Info{ID: id}
			if info.UID() != info.UID() {
				t.Errorf("UID generation is not deterministic for %s", id)
			}

			u := uuid.UUID(info.UID())
			if u.Version() != 5 {
				t.Errorf("expected a version 5 UUID, got %d", u.Version())
			}
			if u.Variant() != uuid.RFC4122 {
				t.Errorf("unexpected variant %v", u.Variant())
			}
			if _, err := uuid.Parse(info.UIDString()); err != nil {
				t.Errorf("UIDString not parseable: %v", err)
			}
		})
	}
}

func TestUIDUniqueness(t *testing.T) {
	plugins := []string{
		"com.company1.plugin1",
		"com.company1.plugin2",
		"com.company2.plugin1",
		"com.different.name",
	}

	uids := make(map[[16]byte]string)
	for _, pluginID := range plugins {
		uid := Info{ID: pluginID}.UID()
		if existingID, exists := uids[uid]; exists {
			t.Errorf("UID collision between %s and %s", pluginID, existingID)
		}
		uids[uid] = pluginID
	}
}

func TestUIDValidation(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{"Valid plugin ID", Info{ID: "com.example.plugin"}, false},
		{"Empty plugin ID", Info{ID: ""}, true},
		{"Blank plugin ID", Info{ID: "   "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.ValidateUID()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsInstrument(t *testing.T) {
	if !(Info{Category: "Instrument|Synth"}).IsInstrument() {
		t.Error("category should mark an instrument")
	}
	if !(Info{Features: []string{"instrument", "stereo"}}).IsInstrument() {
		t.Error("feature tag should mark an instrument")
	}
	if (Info{Category: "Fx"}).IsInstrument() {
		t.Error("effect reported as instrument")
	}
}
