package binding

import (
	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/facecube/engine/core"
	"github.com/spaghettifunk/facecube/engine/dice"
)

// Bindable is the view of a content record the binding layer needs.
type Bindable interface {
	// Eligible reports whether the record asked to be shown on the cube.
	Eligible() bool
	// ImageRef is the reference of the picture drawn on the bound face.
	ImageRef() string
}

/**
 * @brief A revealed selection. Epoch is strictly increasing across settles,
 * so selecting the same face twice yields two distinct panels.
 */
type Panel[R Bindable] struct {
	Face   dice.Face
	Epoch  uint64
	Record R
}

// Presenter shows and hides the detail panel for the selected record.
type Presenter[R Bindable] interface {
	Reveal(p Panel[R])
	Hide()
	// ScrollTo brings the panel into view. Called after Reveal for every settle.
	ScrollTo(p Panel[R])
}

// Layer binds up to six records to the cube faces, slot k to face k.
type Layer[R Bindable] struct {
	presenter Presenter[R]
	slots     [dice.FaceCount]R
	bound     [dice.FaceCount]bool
	count     int
	epoch     uint64
	showing   *Panel[R]
	log       *log.Logger
}

func NewLayer[R Bindable](presenter Presenter[R]) *Layer[R] {
	return &Layer[R]{
		presenter: presenter,
		log:       core.LogWith("layer", "binding"),
	}
}

// Bind rebuilds the slots from scratch. Records that are not eligible or have
// no image are skipped; anything past the sixth usable record is dropped.
func (l *Layer[R]) Bind(records []R) {
	var zero R
	for i := range l.slots {
		l.slots[i] = zero
		l.bound[i] = false
	}
	l.count = 0

	skipped := 0
	for _, r := range records {
		if !r.Eligible() || r.ImageRef() == "" {
			continue
		}
		if l.count == dice.FaceCount {
			skipped++
			continue
		}
		l.slots[l.count] = r
		l.bound[l.count] = true
		l.count++
	}
	if skipped > 0 {
		l.log.Warn("more records than faces, truncated", "dropped", skipped)
	}
	l.log.Debug("bound", "records", len(records), "slots", l.count)

	l.refresh()
}

// refresh keeps the showing panel in sync with the new slot content.
func (l *Layer[R]) refresh() {
	if l.showing == nil || l.presenter == nil {
		return
	}
	r, ok := l.Slot(l.showing.Face)
	if !ok {
		l.showing = nil
		l.presenter.Hide()
		return
	}
	l.showing.Record = r
	l.presenter.Reveal(*l.showing)
}

// Slot returns the record bound to face.
func (l *Layer[R]) Slot(face dice.Face) (R, bool) {
	if !face.Valid() || !l.bound[face-1] {
		var zero R
		return zero, false
	}
	return l.slots[face-1], true
}

func (l *Layer[R]) Bound() int {
	return l.count
}

func (l *Layer[R]) Epoch() uint64 {
	return l.epoch
}

// Showing returns the panel currently revealed, if any.
func (l *Layer[R]) Showing() (Panel[R], bool) {
	if l.showing == nil {
		return Panel[R]{}, false
	}
	return *l.showing, true
}

// FaceImages maps each bound face to its image reference.
func (l *Layer[R]) FaceImages() map[dice.Face]string {
	out := make(map[dice.Face]string, l.count)
	for i := 0; i < dice.FaceCount; i++ {
		if l.bound[i] {
			out[dice.Face(i+1)] = l.slots[i].ImageRef()
		}
	}
	return out
}

// OnFaceSettled is wired as the cube's settle callback.
func (l *Layer[R]) OnFaceSettled(face dice.Face) {
	l.epoch++
	r, ok := l.Slot(face)
	if !ok {
		l.log.Debug("settled on empty face", "face", face, "epoch", l.epoch)
		l.showing = nil
		if l.presenter != nil {
			l.presenter.Hide()
		}
		return
	}

	p := Panel[R]{Face: face, Epoch: l.epoch, Record: r}
	l.showing = &p
	l.log.Debug("reveal", "face", face, "epoch", l.epoch)
	if l.presenter != nil {
		l.presenter.Reveal(p)
		l.presenter.ScrollTo(p)
	}
}
