package accordion

// Item associates one identifier with a Group. It derives everything from the
// group on each call, so two Items with the same id in one Group always agree.
type Item struct {
	group *Group
	id    string
}

// NewItem binds id to g. A nil group yields ErrContextMissing.
func NewItem(g *Group, id string) (Item, error) {
	if g == nil {
		return Item{}, ErrContextMissing
	}
	return g.Item(id), nil
}

func (it Item) ID() string { return it.id }

// IsOpen reports the item's state in its group.
func (it Item) IsOpen() bool {
	return it.mustGroup().IsOpen(it.id)
}

// Toggle applies the group's transition rule to this item.
func (it Item) Toggle() {
	it.mustGroup().Toggle(it.id)
}

func (it Item) mustGroup() *Group {
	if it.group == nil {
		panic(ErrContextMissing)
	}
	return it.group
}
