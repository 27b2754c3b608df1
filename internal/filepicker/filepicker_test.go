package filepicker

import (
	"errors"
	"testing"

	"github.com/sqweek/dialog"
)

func TestRunResults(t *testing.T) {
	p := New("")
	boom := errors.New("no display")

	tests := []struct {
		name    string
		path    string
		err     error
		wantOK  bool
		wantErr bool
	}{
		{"picked", "/tmp/human.glb", nil, true, false},
		{"cancelled", "", dialog.ErrCancelled, false, false},
		{"failed", "", boom, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok, err := p.run(func() (string, error) { return tt.path, tt.err })
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, boom) {
				t.Errorf("error does not wrap cause: %v", err)
			}
			if ok && path != tt.path {
				t.Errorf("path = %q, want %q", path, tt.path)
			}
		})
	}
}

func TestFiltersCoverEveryKind(t *testing.T) {
	for _, k := range []Kind{KindModel, KindPose, KindImage} {
		f, ok := filters[k]
		if !ok || f.desc == "" || len(f.exts) == 0 {
			t.Errorf("kind %d has no filter", k)
		}
	}
}
