// Package filepicker shows native file dialogs and error message boxes.
package filepicker

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/logger"
)

// Kind selects the file filter of a dialog.
type Kind int

const (
	KindModel Kind = iota
	KindPose
	KindImage
)

type filter struct {
	desc string
	exts []string
}

var filters = map[Kind]filter{
	KindModel: {"3D models", []string{"glb", "gltf"}},
	KindPose:  {"Pose files", []string{"json"}},
	KindImage: {"PNG images", []string{"png"}},
}

// Picker opens native dialogs. The zero value is not usable; use New.
type Picker struct {
	startDir string
	log      *zap.Logger
}

// New creates a picker whose dialogs start in startDir.
func New(startDir string) *Picker {
	return &Picker{startDir: startDir, log: logger.Named("filepicker")}
}

// Open asks for an existing file. ok is false when the user cancelled.
func (p *Picker) Open(kind Kind, title string) (path string, ok bool, err error) {
	return p.run(p.builder(kind, title).Load)
}

// Save asks for a destination file. ok is false when the user cancelled.
func (p *Picker) Save(kind Kind, title, suggested string) (path string, ok bool, err error) {
	b := p.builder(kind, title)
	if suggested != "" {
		b = b.SetStartFile(suggested)
	}
	return p.run(b.Save)
}

// Error shows a modal error message.
func (p *Picker) Error(title, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.log.Error(title, zap.String("message", msg))
	dialog.Message("%s", msg).Title(title).Error()
}

func (p *Picker) builder(kind Kind, title string) *dialog.FileBuilder {
	f := filters[kind]
	b := dialog.File().Title(title).Filter(f.desc, f.exts...)
	if p.startDir != "" {
		b = b.SetStartDir(p.startDir)
	}
	return b
}

func (p *Picker) run(show func() (string, error)) (string, bool, error) {
	path, err := show()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("file dialog: %w", err)
	}
	return path, true, nil
}
