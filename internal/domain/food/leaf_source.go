package food

// LeafSource is the tagged result of resolving a leaf reference. It is
// either a concrete food item (a direct child, or a user-preferred
// substitution for a canonical ingredient) or a virtual item
// synthesized from a canonical ingredient's default macros.
type LeafSource struct {
	item           *Item
	canonical      *CanonicalIngredient
	userPreference bool
}

// ConcreteLeaf wraps an existing food item.
func ConcreteLeaf(item Item, userPreference bool) LeafSource {
	return LeafSource{item: &item, userPreference: userPreference}
}

// SynthesizedLeaf wraps a canonical ingredient's defaults.
func SynthesizedLeaf(c CanonicalIngredient) LeafSource {
	return LeafSource{canonical: &c}
}

// ID returns the ingredient ID contributions are keyed by: the item's
// own ID for concrete leaves, "canonical:<id>" for synthesized ones.
func (s LeafSource) ID() string {
	if s.item != nil {
		return s.item.ID
	}
	return SyntheticID(s.canonical.ID)
}

// IsSynthesized reports whether the leaf was fabricated from canonical
// defaults rather than backed by a stored item.
func (s LeafSource) IsSynthesized() bool {
	return s.canonical != nil
}

// IsUserPreference reports whether a user substitution selected the item.
func (s LeafSource) IsUserPreference() bool {
	return s.userPreference
}

// Snapshot captures the leaf's current nutrition density as a
// FlattenedIngredient with zero accumulated amount. The snapshot is
// taken once per leaf ID per traversal; later contributions only add
// grams.
func (s LeafSource) Snapshot() FlattenedIngredient {
	if s.item != nil {
		return FlattenedIngredient{
			ID:               s.item.ID,
			Name:             s.item.Name,
			Kind:             s.item.Kind,
			CaloriesPer100g:  s.item.CaloriesPer100g,
			ProteinPer100g:   s.item.ProteinPer100g,
			CarbsPer100g:     s.item.CarbsPer100g,
			FatPer100g:       s.item.FatPer100g,
			Micronutrients:   s.item.Micronutrients,
			IsUserPreference: s.userPreference,
		}
	}
	return FlattenedIngredient{
		ID:              SyntheticID(s.canonical.ID),
		Name:            s.canonical.Name,
		Kind:            KindIngredient,
		CaloriesPer100g: s.canonical.CaloriesPer100g,
		ProteinPer100g:  s.canonical.ProteinPer100g,
		CarbsPer100g:    s.canonical.CarbsPer100g,
		FatPer100g:      s.canonical.FatPer100g,
		IsCanonical:     true,
	}
}
