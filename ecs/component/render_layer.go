package component

// Draw layers, rendered in ascending order.
const (
	LayerWater = iota
	LayerBackground
	LayerShadow
	LayerMain
	LayerTop
)

// RenderLayer is used to sort draw order deterministically. Within LayerMain
// sprites are sorted by their bottom edge plus YSortOffset.
type RenderLayer struct {
	Index       int
	YSortOffset float64
}

var RenderLayerComponent = NewComponent[RenderLayer]()
