package relation

import "slices"

// axisState tracks whether an axis ordering was supplied by the caller.
// The only transition is axisAuto -> axisFixed.
type axisState int

const (
	axisAuto axisState = iota
	axisFixed
)

// axis is a label registry: a dense label <-> index mapping.
// labels[i] is the label with index i, and index[labels[i]] == i.
type axis struct {
	state  axisState
	index  map[string]int
	labels []string
}

func newAxis() axis {
	return axis{index: make(map[string]int)}
}

func (a *axis) fixed() bool { return a.state == axisFixed }

func (a *axis) has(label string) bool {
	_, ok := a.index[label]
	return ok
}

// add appends label with the next free index if it is not yet known.
func (a *axis) add(label string) {
	if a.has(label) {
		return
	}
	a.index[label] = len(a.labels)
	a.labels = append(a.labels, label)
}

// fix replaces the registry with labels in the given order and marks the
// axis fixed. When a label repeats, its last occurrence decides its position.
func (a *axis) fix(labels []string) {
	last := make(map[string]int, len(labels))
	for i, l := range labels {
		last[l] = i
	}
	a.index = make(map[string]int, len(last))
	a.labels = make([]string, 0, len(last))
	for i, l := range labels {
		if last[l] == i {
			a.add(l)
		}
	}
	a.state = axisFixed
}

// sort reassigns indices in byte-wise lexicographic label order.
func (a *axis) sort() {
	slices.Sort(a.labels)
	for i, l := range a.labels {
		a.index[l] = i
	}
}

func (a *axis) len() int { return len(a.labels) }

func (a *axis) ordered() []string { return slices.Clone(a.labels) }
