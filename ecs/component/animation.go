package component

// DefaultAnimation is the frame set key used by single-sequence tiles.
const DefaultAnimation = "default"

// Animation cycles Sprite.Image through the frame keys of the current set.
// Index advances by FPS*dt and wraps.
type Animation struct {
	Sets    map[string][]string
	Current string
	Index   float64
	FPS     float64
}

// Frame returns the frame key for the current index, or "" if the set is empty.
func (a *Animation) Frame() string {
	frames := a.Sets[a.Current]
	if len(frames) == 0 {
		return ""
	}
	i := int(a.Index) % len(frames)
	if i < 0 {
		i = 0
	}
	return frames[i]
}

var AnimationComponent = NewComponent[Animation]()
