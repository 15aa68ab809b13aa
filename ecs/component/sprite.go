package component

// Sprite is a drawable image reference. Image is a key into the asset library;
// W and H are the sprite size in pixels and drive centring and y-sorting.
// Every entity with a Sprite belongs to the all-entities group.
type Sprite struct {
	Image string
	W     float64
	H     float64
}

var SpriteComponent = NewComponent[Sprite]()
