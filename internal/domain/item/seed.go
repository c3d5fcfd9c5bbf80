package item

// SeedItems returns the records inserted into an empty table on bootstrap.
func SeedItems() []NewItem {
	return []NewItem{
		newSeed("Sample Item 1", "This is the first sample item"),
		newSeed("Sample Item 2", "This is the second sample item"),
		newSeed("Sample Item 3", "This is the third sample item"),
	}
}

func newSeed(name, description string) NewItem {
	return NewItem{Name: &name, Description: &description}
}
